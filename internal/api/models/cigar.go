package models

import (
	"strconv"
	"strings"
	"time"
)

type Cigar struct {
	ID          int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string   `json:"name" gorm:"not null;index"`
	Brand       string   `json:"brand" gorm:"not null;index"`
	Image       string   `json:"image" gorm:"type:text"` // base64 or empty
	Images      []string `json:"images" gorm:"serializer:json"`
	Strength    string   `json:"strength" gorm:"index"`
	FlavorNotes []string `json:"flavor_notes" gorm:"serializer:json"`
	Origin      string   `json:"origin" gorm:"index"`
	Wrapper     *string  `json:"wrapper,omitempty"`
	Binder      *string  `json:"binder,omitempty"`
	Filler      *string  `json:"filler,omitempty"`
	Size        *string  `json:"size,omitempty"`

	// PriceRange is the display string ("25-30"); the numeric bounds are derived
	// from it at write time and are what search filters on.
	PriceRange *string  `json:"price_range,omitempty"`
	PriceMin   *float64 `json:"-" gorm:"index"`
	PriceMax   *float64 `json:"-" gorm:"index"`

	Barcode *string `json:"barcode,omitempty" gorm:"index"`

	// Derived from the ratings table, recomputed on every rating write.
	AverageRating float64 `json:"average_rating" gorm:"not null;default:0"`
	RatingCount   int64   `json:"rating_count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Cigar) TableName() string {
	return "cigars"
}

// ParsePriceRange turns a display range like "25-30" (or a single "25")
// into numeric bounds. Returns nils when the string is empty or unparseable.
func ParsePriceRange(priceRange string) (*float64, *float64) {
	s := strings.TrimSpace(strings.TrimPrefix(priceRange, "$"))
	if s == "" {
		return nil, nil
	}
	parts := strings.SplitN(s, "-", 2)
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, nil
	}
	hi := lo
	if len(parts) == 2 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err == nil {
			hi = v
		}
	}
	return &lo, &hi
}

// ApplyPriceBounds fills the derived numeric columns from the display string.
func (c *Cigar) ApplyPriceBounds() {
	if c.PriceRange == nil {
		c.PriceMin, c.PriceMax = nil, nil
		return
	}
	c.PriceMin, c.PriceMax = ParsePriceRange(*c.PriceRange)
}

// Summary is the fixed projection returned by search, favorites and barcode hits.
type CigarSummary struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand"`
	Image         string  `json:"image"`
	Strength      string  `json:"strength"`
	Origin        string  `json:"origin"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
	PriceRange    *string `json:"price_range,omitempty"`
}
