package dto

import (
	"cigarrank/internal/api/models"
)

// CreateCigarDTO used for POST /api/cigars
type CreateCigarDTO struct {
	Name        string   `json:"name" binding:"required"`
	Brand       string   `json:"brand" binding:"required"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Strength    string   `json:"strength" binding:"required"`
	FlavorNotes []string `json:"flavor_notes"`
	Origin      string   `json:"origin" binding:"required"`
	Wrapper     *string  `json:"wrapper,omitempty"`
	Binder      *string  `json:"binder,omitempty"`
	Filler      *string  `json:"filler,omitempty"`
	Size        *string  `json:"size,omitempty"`
	PriceRange  *string  `json:"price_range,omitempty"`
	Barcode     *string  `json:"barcode,omitempty"`
}

// ToModel converts the request into a fresh cigar record with zeroed
// aggregate fields.
func (d *CreateCigarDTO) ToModel() *models.Cigar {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	notes := d.FlavorNotes
	if notes == nil {
		notes = []string{}
	}
	return &models.Cigar{
		Name:        d.Name,
		Brand:       d.Brand,
		Image:       d.Image,
		Images:      images,
		Strength:    d.Strength,
		FlavorNotes: notes,
		Origin:      d.Origin,
		Wrapper:     d.Wrapper,
		Binder:      d.Binder,
		Filler:      d.Filler,
		Size:        d.Size,
		PriceRange:  d.PriceRange,
		Barcode:     d.Barcode,
	}
}

// ScanLabelRequest: payload for AI label identification
type ScanLabelRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// ScanBarcodeRequest: payload for barcode lookup
type ScanBarcodeRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}
