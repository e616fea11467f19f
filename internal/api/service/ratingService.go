package service

import (
	"context"
	"errors"
	"math"

	"cigarrank/internal/api/dto"
	"cigarrank/internal/api/models"
	"cigarrank/internal/api/repository"

	"gorm.io/gorm"
)

const cigarRatingsLimit = 100

type RatingService interface {
	CreateOrUpdateRating(ctx context.Context, userID string, input *dto.CreateRatingDTO) (*models.Rating, error)
	GetCigarRatings(ctx context.Context, cigarID int64) ([]dto.RatingRow, error)
	GetUserRating(ctx context.Context, userID string, cigarID int64) (*dto.UserRatingResponse, error)
	GetMyRatings(ctx context.Context, userID string) ([]dto.MyRatingResponse, error)
}

// CigarAggregateStore is the slice of the cigar repository the rating
// service needs: existence checks and aggregate writes.
type CigarAggregateStore interface {
	GetByID(ctx context.Context, id int64) (*models.Cigar, error)
	UpdateAggregate(ctx context.Context, id int64, average float64, count int64) error
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	cigarRepo  CigarAggregateStore
}

func NewRatingService(ratingRepo repository.RatingRepository, cigarRepo CigarAggregateStore) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		cigarRepo:  cigarRepo,
	}
}

// CreateOrUpdateRating upserts a user's rating for a cigar and recomputes
// the cigar's aggregate fields. One row per (user, cigar) pair.
func (s *ratingService) CreateOrUpdateRating(ctx context.Context, userID string, input *dto.CreateRatingDTO) (*models.Rating, error) {
	if _, err := s.cigarRepo.GetByID(ctx, input.CigarID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCigarNotFound
		}
		return nil, err
	}

	rating, err := s.ratingRepo.GetByUserAndCigar(userID, input.CigarID)
	switch {
	case err == nil:
		rating.Rating = input.Rating
		if err := s.ratingRepo.Update(rating); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		rating = &models.Rating{
			UserID:  userID,
			CigarID: input.CigarID,
			Rating:  input.Rating,
		}
		if err := s.ratingRepo.Create(rating); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.recomputeAggregate(ctx, input.CigarID); err != nil {
		return nil, err
	}

	return rating, nil
}

// recomputeAggregate refreshes the cigar's average (rounded to one decimal)
// and count from the ratings table.
func (s *ratingService) recomputeAggregate(ctx context.Context, cigarID int64) error {
	count, err := s.ratingRepo.CountRatings(cigarID)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	avg, err := s.ratingRepo.CalculateAverageRating(cigarID)
	if err != nil {
		return err
	}

	return s.cigarRepo.UpdateAggregate(ctx, cigarID, roundAverage(avg), count)
}

// roundAverage rounds to one decimal, the precision stored on the cigar.
func roundAverage(avg float64) float64 {
	return math.Round(avg*10) / 10
}

// GetCigarRatings lists the most recent ratings left on a cigar.
func (s *ratingService) GetCigarRatings(ctx context.Context, cigarID int64) ([]dto.RatingRow, error) {
	if _, err := s.cigarRepo.GetByID(ctx, cigarID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCigarNotFound
		}
		return nil, err
	}

	ratings, err := s.ratingRepo.GetByCigar(cigarID, cigarRatingsLimit)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.RatingRow, 0, len(ratings))
	for i := range ratings {
		rows = append(rows, dto.FromModelToRatingRow(&ratings[i]))
	}
	return rows, nil
}

// GetUserRating returns the caller's rating for a cigar, or nil when they
// have not rated it. The nil maps to a JSON null at the handler.
func (s *ratingService) GetUserRating(ctx context.Context, userID string, cigarID int64) (*dto.UserRatingResponse, error) {
	rating, err := s.ratingRepo.GetByUserAndCigar(userID, cigarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &dto.UserRatingResponse{
		ID:        rating.ID,
		CigarID:   rating.CigarID,
		Rating:    rating.Rating,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}, nil
}

// GetMyRatings lists everything the caller has rated, most recent first.
func (s *ratingService) GetMyRatings(ctx context.Context, userID string) ([]dto.MyRatingResponse, error) {
	ratings, err := s.ratingRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.MyRatingResponse, 0, len(ratings))
	for i := range ratings {
		r := &ratings[i]
		rows = append(rows, dto.MyRatingResponse{
			CigarID:   r.CigarID,
			Name:      r.Cigar.Name,
			Brand:     r.Cigar.Brand,
			Image:     r.Cigar.Image,
			Rating:    r.Rating,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return rows, nil
}
