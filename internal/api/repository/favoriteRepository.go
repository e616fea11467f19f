package repository

import (
	"context"
	"fmt"

	"cigarrank/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID string, cigarID int64) error
	Remove(ctx context.Context, userID string, cigarID int64) error
	ListCigarIDs(ctx context.Context, userID string) ([]int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add bookmarks a cigar for a user. Idempotent: re-adding is a no-op.
func (r *favoriteRepository) Add(ctx context.Context, userID string, cigarID int64) error {
	fav := &models.Favorite{
		UserID:  userID,
		CigarID: cigarID,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(fav).Error
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

// Remove un-bookmarks a cigar. Removing an absent favorite is a no-op.
func (r *favoriteRepository) Remove(ctx context.Context, userID string, cigarID int64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND cigar_id = ?", userID, cigarID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) ListCigarIDs(ctx context.Context, userID string) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Pluck("cigar_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return ids, nil
}
