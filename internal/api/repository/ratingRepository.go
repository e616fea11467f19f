package repository

import (
	"cigarrank/internal/api/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(rating *models.Rating) error
	Update(rating *models.Rating) error
	GetByUserAndCigar(userID string, cigarID int64) (*models.Rating, error)
	GetByCigar(cigarID int64, limit int) ([]models.Rating, error)
	GetByUser(userID string) ([]models.Rating, error)
	CalculateAverageRating(cigarID int64) (float64, error)
	CountRatings(cigarID int64) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create a new rating
func (r *ratingRepository) Create(rating *models.Rating) error {
	return r.db.Create(rating).Error
}

// Update an existing rating
func (r *ratingRepository) Update(rating *models.Rating) error {
	return r.db.Save(rating).Error
}

// GetByUserAndCigar retrieves a user's rating for a specific cigar
func (r *ratingRepository) GetByUserAndCigar(userID string, cigarID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("user_id = ? AND cigar_id = ?", userID, cigarID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// GetByCigar retrieves the most recent ratings for a cigar, capped at limit
func (r *ratingRepository) GetByCigar(cigarID int64, limit int) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Where("cigar_id = ?", cigarID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// GetByUser retrieves all ratings by a user, newest first, with cigar data
func (r *ratingRepository) GetByUser(userID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Where("user_id = ?", userID).
		Preload("Cigar").
		Order("updated_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// CalculateAverageRating calculates the average rating for a cigar
func (r *ratingRepository) CalculateAverageRating(cigarID int64) (float64, error) {
	var avg struct {
		Average float64
	}

	err := r.db.Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0) as average").
		Where("cigar_id = ?", cigarID).
		Scan(&avg).Error

	if err != nil {
		return 0, err
	}

	return avg.Average, nil
}

// CountRatings counts the total number of ratings for a cigar
func (r *ratingRepository) CountRatings(cigarID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Rating{}).Where("cigar_id = ?", cigarID).Count(&count).Error
	return count, err
}
