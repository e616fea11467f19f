package repository

import (
	"cigarrank/internal/api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(commentID int64) (*models.Comment, error)
	GetByCigar(cigarID int64, limit int) ([]models.Comment, error)
	GetByUser(userID string) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID retrieves a comment by its ID
func (r *commentRepository) GetByID(commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("id = ?", commentID).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByCigar retrieves the most recent comments for a cigar, capped at limit.
// Replies whose parent falls outside the window are dropped by the thread
// builder, not here.
func (r *commentRepository) GetByCigar(cigarID int64, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("cigar_id = ?", cigarID).
		Order("created_at DESC").
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetByUser retrieves all comments by a user, newest first, with cigar data
func (r *commentRepository) GetByUser(userID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("user_id = ?", userID).
		Preload("Cigar").
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
