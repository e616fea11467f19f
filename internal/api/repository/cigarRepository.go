package repository

import (
	"context"
	"fmt"

	"cigarrank/internal/api/models"

	"gorm.io/gorm"
)

// SearchFilters carries the optional query parameters of GET /cigars/search.
type SearchFilters struct {
	Query    string
	Strength string
	Origin   string
	Size     string
	Wrapper  string
	MinPrice *float64
	MaxPrice *float64
}

const searchLimit = 50

// summaryColumns is the fixed projection used by search, favorites and scans.
const summaryColumns = "id, name, brand, image, strength, origin, average_rating, rating_count, price_range"

type CigarRepo struct {
	db *gorm.DB
}

func NewCigarRepo(db *gorm.DB) *CigarRepo {
	return &CigarRepo{db: db}
}

func (r *CigarRepo) GetByID(ctx context.Context, id int64) (*models.Cigar, error) {
	var c models.Cigar
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CigarRepo) Create(ctx context.Context, c *models.Cigar) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create cigar: %w", err)
	}
	// GORM will populate c.ID and c.CreatedAt
	return nil
}

func (r *CigarRepo) Update(ctx context.Context, id int64, c *models.Cigar) error {
	// ensure ID set for Save
	c.ID = id
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("update cigar: %w", err)
	}
	return nil
}

// UpdateAggregate persists the derived rating fields onto the cigar row.
func (r *CigarRepo) UpdateAggregate(ctx context.Context, id int64, average float64, count int64) error {
	err := r.db.WithContext(ctx).Model(&models.Cigar{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"average_rating": average,
			"rating_count":   count,
		}).Error
	if err != nil {
		return fmt.Errorf("update cigar aggregate: %w", err)
	}
	return nil
}

// Search applies the optional filters and returns up to 50 summaries sorted
// by descending average rating. Free text matches name, brand and flavor
// notes case-insensitively; categorical filters are substring matches on
// their field; price bounds filter on the derived numeric columns.
func (r *CigarRepo) Search(ctx context.Context, f SearchFilters) ([]models.CigarSummary, error) {
	q := r.db.WithContext(ctx).Model(&models.Cigar{})

	if f.Query != "" {
		p := "%" + f.Query + "%"
		// flavor_notes is a JSON array column; matching its text rendering
		// mirrors the original substring semantics
		q = q.Where("name ILIKE ? OR brand ILIKE ? OR flavor_notes::text ILIKE ?", p, p, p)
	}
	if f.Strength != "" {
		q = q.Where("strength ILIKE ?", "%"+f.Strength+"%")
	}
	if f.Origin != "" {
		q = q.Where("origin ILIKE ?", "%"+f.Origin+"%")
	}
	if f.Size != "" {
		q = q.Where("size ILIKE ?", "%"+f.Size+"%")
	}
	if f.Wrapper != "" {
		q = q.Where("wrapper ILIKE ?", "%"+f.Wrapper+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("price_max >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price_min <= ?", *f.MaxPrice)
	}

	var list []models.CigarSummary
	err := q.Select(summaryColumns).
		Order("average_rating DESC").
		Limit(searchLimit).
		Scan(&list).Error
	if err != nil {
		return nil, fmt.Errorf("search cigars: %w", err)
	}
	return list, nil
}

func (r *CigarRepo) FindByBarcode(ctx context.Context, barcode string) (*models.Cigar, error) {
	var c models.Cigar
	if err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByBrandOrName returns the first cigar whose brand or name matches
// either value, used to resolve AI label scans against the catalog.
func (r *CigarRepo) FindByBrandOrName(ctx context.Context, brand, name string) (*models.Cigar, error) {
	q := r.db.WithContext(ctx)

	var conds []string
	var args []any
	if brand != "" {
		conds = append(conds, "brand ILIKE ?")
		args = append(args, "%"+brand+"%")
	}
	if name != "" {
		conds = append(conds, "name ILIKE ?")
		args = append(args, "%"+name+"%")
	}
	if len(conds) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	where := conds[0]
	for _, c := range conds[1:] {
		where += " OR " + c
	}

	var c models.Cigar
	if err := q.Where(where, args...).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// SummariesByIDs returns projections for the given ids, capped at 100 rows.
func (r *CigarRepo) SummariesByIDs(ctx context.Context, ids []int64) ([]models.CigarSummary, error) {
	var list []models.CigarSummary
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Model(&models.Cigar{}).
		Select(summaryColumns).
		Where("id IN ?", ids).
		Limit(100).
		Scan(&list).Error
	if err != nil {
		return nil, fmt.Errorf("cigars by ids: %w", err)
	}
	return list, nil
}
