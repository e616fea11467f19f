package database

import (
	"fmt"
	"log/slog"

	"cigarrank/internal/api/models"

	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// SeedCigars inserts the curated sample catalog when the cigars table is empty.
func SeedCigars(db *gorm.DB, logger *slog.Logger) error {
	var count int64
	if err := db.Model(&models.Cigar{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count cigars: %w", err)
	}
	if count > 0 {
		return nil
	}

	logger.Info("Seeding database with sample cigars...")

	samples := []models.Cigar{
		{
			Name:        "Montecristo No. 2",
			Brand:       "Montecristo",
			Strength:    "Medium",
			FlavorNotes: []string{"Cocoa", "Coffee", "Cedar"},
			Origin:      "Cuba",
			Wrapper:     strPtr("Habano"),
			Binder:      strPtr("Cuban"),
			Filler:      strPtr("Cuban"),
			Size:        strPtr("Torpedo (6.1 x 52)"),
			PriceRange:  strPtr("25-30"),
			Barcode:     strPtr("7501055300013"),
		},
		{
			Name:        "Padron 1964 Anniversary",
			Brand:       "Padron",
			Strength:    "Full",
			FlavorNotes: []string{"Chocolate", "Coffee", "Nuts"},
			Origin:      "Nicaragua",
			Wrapper:     strPtr("Nicaraguan Maduro"),
			Binder:      strPtr("Nicaraguan"),
			Filler:      strPtr("Nicaraguan"),
			Size:        strPtr("Robusto (5 x 50)"),
			PriceRange:  strPtr("15-20"),
			Barcode:     strPtr("7501055300020"),
		},
		{
			Name:        "Arturo Fuente Opus X",
			Brand:       "Arturo Fuente",
			Strength:    "Full",
			FlavorNotes: []string{"Spice", "Leather", "Pepper"},
			Origin:      "Dominican Republic",
			Wrapper:     strPtr("Dominican Sun Grown"),
			Binder:      strPtr("Dominican"),
			Filler:      strPtr("Dominican"),
			Size:        strPtr("Robusto (5.25 x 50)"),
			PriceRange:  strPtr("20-25"),
			Barcode:     strPtr("7501055300037"),
		},
		{
			Name:        "Cohiba Behike 52",
			Brand:       "Cohiba",
			Strength:    "Medium-Full",
			FlavorNotes: []string{"Honey", "Wood", "Floral"},
			Origin:      "Cuba",
			Wrapper:     strPtr("Habano"),
			Binder:      strPtr("Cuban"),
			Filler:      strPtr("Cuban"),
			Size:        strPtr("Laguito No. 4 (4.3 x 52)"),
			PriceRange:  strPtr("40-50"),
			Barcode:     strPtr("7501055300044"),
		},
		{
			Name:        "Drew Estate Liga Privada No. 9",
			Brand:       "Drew Estate",
			Strength:    "Full",
			FlavorNotes: []string{"Cocoa", "Earth", "Espresso"},
			Origin:      "Nicaragua",
			Wrapper:     strPtr("Connecticut Broadleaf Maduro"),
			Binder:      strPtr("Honduran"),
			Filler:      strPtr("Nicaraguan"),
			Size:        strPtr("Toro (6 x 52)"),
			PriceRange:  strPtr("12-15"),
			Barcode:     strPtr("7501055300051"),
		},
	}

	for i := range samples {
		samples[i].Images = []string{}
		samples[i].ApplyPriceBounds()
	}

	if err := db.Create(&samples).Error; err != nil {
		return fmt.Errorf("seed cigars: %w", err)
	}

	logger.Info("Seeded sample cigars", "count", len(samples))
	return nil
}
