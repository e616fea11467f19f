// Command seed bulk-loads a synthetic catalog so search and browse screens
// have something to show in development. Run it once against a fresh
// database; existing brand+name pairs are skipped.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"cigarrank/database"
	"cigarrank/internal/api/models"
	"cigarrank/internal/config"

	"gorm.io/gorm/clause"
)

// 1x1 transparent PNG
const placeholderImage = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

var brands = []string{
	"Montecristo", "Cohiba", "Padron", "Arturo Fuente", "Drew Estate", "Oliva",
	"My Father", "Romeo y Julieta", "Partagas", "Hoyo de Monterrey", "Davidoff",
	"Ashton", "La Flor Dominicana", "Camacho", "Alec Bradley", "Rocky Patel",
	"Macanudo", "Perdomo", "CAO", "Nub", "Tatuaje", "Illusione", "Foundation",
	"Punch", "5 Vegas", "Gran Habano", "Avo", "Kristoff", "San Cristobal",
	"E.P. Carrillo", "Warped", "RoMa Craft", "Crowned Heads", "Diesel",
	"Aging Room", "Liga", "Man O' War", "Gurkha", "Acid", "Tabak Especial",
	"Undercrown", "Herrera Esteli", "La Aroma de Cuba", "Don Pepin Garcia",
	"Jaime Garcia", "El Titan de Bronze", "Plasencia", "AJ Fernandez",
	"Eiroa", "Aladino", "Dunbarton", "Mbombay", "Quesada", "Casa Magna",
	"Espinosa", "601", "La Palina", "CLE", "Alec & Bradley", "Nestor Miranda",
}

var origins = []string{"Cuba", "Nicaragua", "Dominican Republic", "Honduras", "Ecuador", "Mexico", "Brazil", "Costa Rica", "Peru"}

var wrappers = []string{
	"Habano", "Maduro", "Connecticut Shade", "Connecticut Broadleaf",
	"Ecuadorian Sun Grown", "Cameroon", "Corojo", "Oscuro", "Candela",
	"Brazilian Maduro", "Indonesian", "Mexican San Andres", "Sumatra",
	"Dominican Sun Grown", "Nicaraguan Sun Grown", "Criollo",
}

var strengths = []string{"Mild", "Mild-Medium", "Medium", "Medium-Full", "Full"}

var sizes = []string{
	"Robusto (5 x 50)", "Toro (6 x 50)", "Churchill (7 x 48)",
	"Corona (5.5 x 42)", "Petit Corona (4.5 x 42)", "Torpedo (6 x 52)",
	"Gordo (6 x 60)", "Perfecto (5.5 x 54)", "Lancero (7 x 38)",
	"Double Corona (7.5 x 50)", "Panatela (6 x 34)", "Lonsdale (6.5 x 42)",
	"Belicoso (5.5 x 52)", "Pyramid (6 x 52)", "Gran Corona (6.5 x 46)",
	"Short Robusto (4.5 x 50)", "Salomon (7 x 57)", "Figurado (6 x 54)",
}

var flavorGroups = [][]string{
	{"Coffee", "Chocolate", "Cream"},
	{"Cedar", "Leather", "Earth"},
	{"Pepper", "Spice", "Nuts"},
	{"Cocoa", "Coffee", "Espresso"},
	{"Honey", "Vanilla", "Toast"},
	{"Wood", "Cedar", "Tobacco"},
	{"Earth", "Leather", "Coffee"},
	{"Cream", "Nuts", "Caramel"},
	{"Spice", "Cinnamon", "Clove"},
	{"Cherry", "Plum", "Dried Fruit"},
	{"Almond", "Hazelnut", "Walnut"},
	{"Floral", "Herb", "Tea"},
	{"Cocoa", "Dark Chocolate", "Mocha"},
	{"Toast", "Bread", "Grain"},
	{"Caramel", "Toffee", "Butterscotch"},
}

var series = []string{
	"Reserve", "Limited Edition", "Vintage", "Anniversary", "Classic", "Premium",
	"Selection", "Signature", "Private Reserve", "Special Edition", "Grand Reserve",
	"Master Blend", "Collector's Edition", "Heritage", "Legacy", "Tradition",
	"Excellence", "Prestige", "Imperial", "Royal", "Supreme", "Elite",
	"Original", "Reserva", "Especial", "Connecticut", "Maduro", "Natural",
}

var priceRanges = []string{
	"4-6", "5-8", "6-9", "7-10", "8-11", "9-12", "10-13", "11-14",
	"12-16", "15-20", "18-23", "20-25", "25-30", "30-40", "40-50", "50-75",
}

func main() {
	count := flag.Int("count", 1000, "number of cigars to generate")
	seed := flag.Int64("seed", 42, "rng seed, fixed by default for reproducible catalogs")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	cigars := generateCigars(rng, *count)

	// Brand+name dedup so rerunning doesn't pile up near-identical rows
	seen := make(map[string]struct{}, len(cigars))
	unique := cigars[:0]
	for _, c := range cigars {
		key := c.Brand + "|" + c.Name
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(unique, 200)
	if result.Error != nil {
		logger.Error("bulk insert failed", "error", result.Error)
		os.Exit(1)
	}

	logger.Info("catalog seeded", "generated", *count, "unique", len(unique), "inserted", result.RowsAffected)
}

func generateCigars(rng *rand.Rand, count int) []models.Cigar {
	cigars := make([]models.Cigar, 0, count)

	for i := 0; i < count; i++ {
		brand := pick(rng, brands)
		line := pick(rng, series)
		sizeName := pick(rng, sizes)
		origin := pick(rng, origins)
		wrapper := pick(rng, wrappers)

		name := brand + " " + line
		if rng.Float64() <= 0.3 {
			vitola := strings.TrimSpace(strings.SplitN(sizeName, "(", 2)[0])
			name = name + " " + vitola
		}

		binder, filler := originComponents(origin)
		if origin == "Cuba" {
			wrapper = "Habano"
		}

		priceRange := pick(rng, priceRanges)
		barcode := fmt.Sprintf("750105530%04d", i+500)

		c := models.Cigar{
			Name:        name,
			Brand:       brand,
			Image:       placeholderImage,
			Images:      []string{},
			Strength:    pick(rng, strengths),
			FlavorNotes: pick(rng, flavorGroups),
			Origin:      origin,
			Wrapper:     &wrapper,
			Binder:      &binder,
			Filler:      &filler,
			Size:        &sizeName,
			PriceRange:  &priceRange,
			Barcode:     &barcode,
		}
		c.ApplyPriceBounds()
		cigars = append(cigars, c)
	}
	return cigars
}

// originComponents picks binder and filler tobaccos consistent with where
// the cigar is rolled.
func originComponents(origin string) (binder, filler string) {
	switch origin {
	case "Cuba":
		return "Cuban", "Cuban"
	case "Nicaragua":
		return "Nicaraguan", "Nicaraguan"
	case "Dominican Republic":
		return "Dominican", "Dominican"
	case "Honduras":
		return "Honduran", "Honduran/Nicaraguan"
	default:
		return origin, origin
	}
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}
