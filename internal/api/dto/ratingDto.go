package dto

import (
	"time"

	"cigarrank/internal/api/models"
)

// CreateRatingDTO for creating or updating a rating
type CreateRatingDTO struct {
	CigarID int64   `json:"cigar_id" binding:"required"`
	Rating  float64 `json:"rating" binding:"required,min=1,max=10"`
}

// RatingRow for listing the ratings of a cigar
type RatingRow struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModelToRatingRow(rating *models.Rating) RatingRow {
	return RatingRow{
		ID:        rating.ID,
		UserID:    rating.UserID,
		Rating:    rating.Rating,
		CreatedAt: rating.CreatedAt,
	}
}

// UserRatingResponse for returning a user's own rating on one cigar
type UserRatingResponse struct {
	ID        int64     `json:"id"`
	CigarID   int64     `json:"cigar_id"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MyRatingResponse pairs a rating with the cigar it belongs to, for the
// my-ratings listing
type MyRatingResponse struct {
	CigarID   int64     `json:"cigar_id"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Image     string    `json:"image"`
	Rating    float64   `json:"rating"`
	UpdatedAt time.Time `json:"updated_at"`
}
