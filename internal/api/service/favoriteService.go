package service

import (
	"context"
	"errors"

	"cigarrank/internal/api/models"
	"cigarrank/internal/api/repository"

	"gorm.io/gorm"
)

type FavoriteService interface {
	Add(ctx context.Context, userID string, cigarID int64) error
	Remove(ctx context.Context, userID string, cigarID int64) error
	List(ctx context.Context, userID string) ([]models.CigarSummary, error)
	ListIDs(ctx context.Context, userID string) ([]int64, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	cigarRepo    *repository.CigarRepo
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, cigarRepo *repository.CigarRepo) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		cigarRepo:    cigarRepo,
	}
}

// Add bookmarks a cigar. The cigar must exist; re-adding is a no-op.
func (s *favoriteService) Add(ctx context.Context, userID string, cigarID int64) error {
	if _, err := s.cigarRepo.GetByID(ctx, cigarID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCigarNotFound
		}
		return err
	}
	return s.favoriteRepo.Add(ctx, userID, cigarID)
}

// Remove un-bookmarks a cigar. Removing an absent favorite succeeds.
func (s *favoriteService) Remove(ctx context.Context, userID string, cigarID int64) error {
	return s.favoriteRepo.Remove(ctx, userID, cigarID)
}

// List returns summaries of the caller's favorites, most recently added
// first where the projection query preserves it.
func (s *favoriteService) List(ctx context.Context, userID string) ([]models.CigarSummary, error) {
	ids, err := s.favoriteRepo.ListCigarIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries, err := s.cigarRepo.SummariesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []models.CigarSummary{}
	}

	// IN queries don't preserve input order; reorder to match the favorites list
	byID := make(map[int64]models.CigarSummary, len(summaries))
	for _, s := range summaries {
		byID[s.ID] = s
	}
	ordered := make([]models.CigarSummary, 0, len(summaries))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered, nil
}

// ListIDs returns just the favorited cigar ids, for embedding in the user
// payload of auth responses.
func (s *favoriteService) ListIDs(ctx context.Context, userID string) ([]int64, error) {
	ids, err := s.favoriteRepo.ListCigarIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
