package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cigarrank/internal/api/repository"
	"cigarrank/internal/cache"
	"cigarrank/internal/stores"

	"gorm.io/gorm"
)

// StoreService resolves current retailer prices for a cigar, serving from
// the short-lived cache when possible and scraping otherwise.
type StoreService struct {
	cigarRepo  *repository.CigarRepo
	scraper    *stores.Scraper
	priceCache *cache.PriceCache
	timeout    time.Duration
	logger     *slog.Logger
}

func NewStoreService(cigarRepo *repository.CigarRepo, scraper *stores.Scraper, priceCache *cache.PriceCache, timeout time.Duration, logger *slog.Logger) *StoreService {
	return &StoreService{
		cigarRepo:  cigarRepo,
		scraper:    scraper,
		priceCache: priceCache,
		timeout:    timeout,
		logger:     logger,
	}
}

// GetPrices returns one entry per supported retailer. Retailers that fail
// or time out come back as placeholder entries with a search link, so the
// response shape is stable regardless of scraping luck.
func (s *StoreService) GetPrices(ctx context.Context, cigarID int64) ([]stores.StorePrice, error) {
	cigar, err := s.cigarRepo.GetByID(ctx, cigarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCigarNotFound
		}
		return nil, err
	}

	if prices, ok := s.priceCache.GetPrices(ctx, cigarID); ok {
		return prices, nil
	}

	scrapeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prices := s.scraper.FetchAll(scrapeCtx, cigar.Name, cigar.Brand)
	s.priceCache.SetPrices(ctx, cigarID, prices)

	s.logger.Debug("scraped retailer prices", "cigar_id", cigarID, "results", len(prices))
	return prices, nil
}
