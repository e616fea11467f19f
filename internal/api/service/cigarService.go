package service

import (
	"context"
	"errors"
	"log/slog"

	"cigarrank/internal/api/dto"
	"cigarrank/internal/api/models"
	"cigarrank/internal/api/repository"
	"cigarrank/internal/vision"

	"gorm.io/gorm"
)

var ErrCigarNotFound = errors.New("cigar not found")

// ScanOutcome is what a label scan resolves to. Identified reports whether
// the scan resolved to a catalog entry; AIInfo carries the model's fields
// even when no catalog match exists.
type ScanOutcome struct {
	Identified bool              `json:"identified"`
	Cigar      *models.Cigar     `json:"cigar,omitempty"`
	AIInfo     *vision.LabelInfo `json:"ai_info,omitempty"`
	Message    string            `json:"message,omitempty"`
	Raw        string            `json:"raw_response,omitempty"`
}

type CigarService struct {
	repo   *repository.CigarRepo
	vision *vision.Client
	logger *slog.Logger
}

func NewCigarService(repo *repository.CigarRepo, visionClient *vision.Client, logger *slog.Logger) *CigarService {
	return &CigarService{
		repo:   repo,
		vision: visionClient,
		logger: logger,
	}
}

// Search returns up to 50 summaries matching the filters, best rated first.
func (s *CigarService) Search(ctx context.Context, filters repository.SearchFilters) ([]models.CigarSummary, error) {
	list, err := s.repo.Search(ctx, filters)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.CigarSummary{}
	}
	return list, nil
}

func (s *CigarService) GetByID(ctx context.Context, id int64) (*models.Cigar, error) {
	cigar, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCigarNotFound
		}
		return nil, err
	}
	return cigar, nil
}

// Create inserts a new catalog entry with zeroed aggregates.
func (s *CigarService) Create(ctx context.Context, input *dto.CreateCigarDTO) (*models.Cigar, error) {
	cigar := input.ToModel()
	cigar.ApplyPriceBounds()

	if err := s.repo.Create(ctx, cigar); err != nil {
		return nil, err
	}
	return cigar, nil
}

// UploadImage attaches a base64 image to a cigar. The first upload also
// becomes the primary image.
func (s *CigarService) UploadImage(ctx context.Context, id int64, imageBase64 string) (*models.Cigar, error) {
	cigar, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cigar.Images = append(cigar.Images, imageBase64)
	if cigar.Image == "" {
		cigar.Image = imageBase64
	}

	if err := s.repo.Update(ctx, id, cigar); err != nil {
		return nil, err
	}
	return cigar, nil
}

// ScanBarcode looks up a cigar by its barcode. A miss is not an error.
func (s *CigarService) ScanBarcode(ctx context.Context, barcode string) (*models.Cigar, error) {
	cigar, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cigar, nil
}

// ScanLabel asks the vision model to identify a band photo and resolves the
// answer against the catalog. Model-level failures and catalog misses
// degrade to an unidentified outcome; only upstream transport or API errors
// surface as errors.
func (s *CigarService) ScanLabel(ctx context.Context, imageBase64 string) (*ScanOutcome, error) {
	result, err := s.vision.IdentifyLabel(ctx, imageBase64)
	if err != nil {
		return nil, err
	}

	var cigar *models.Cigar
	if result.Info != nil && (result.Info.Brand != "" || result.Info.Name != "") {
		match, err := s.repo.FindByBrandOrName(ctx, result.Info.Brand, result.Info.Name)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("label scan catalog lookup failed", "error", err)
			}
		} else {
			cigar = match
		}
	}

	outcome := resolveScanOutcome(result, cigar)
	if !outcome.Identified {
		s.logger.Warn("label scan unidentified", "message", outcome.Message)
	}
	return outcome, nil
}

// resolveScanOutcome maps a model reply plus an optional catalog match to
// the scan contract: Identified is true only when the catalog lookup hit.
// The model's fields survive on the miss path so clients can still display
// what the band said.
func resolveScanOutcome(result *vision.ScanResult, cigar *models.Cigar) *ScanOutcome {
	if result.Info == nil {
		msg := result.ErrMessage
		if msg == "" {
			msg = "Unable to parse AI response"
		}
		return &ScanOutcome{
			Identified: false,
			Message:    msg,
			Raw:        result.Raw,
		}
	}

	if cigar != nil {
		return &ScanOutcome{
			Identified: true,
			Cigar:      cigar,
			AIInfo:     result.Info,
		}
	}

	return &ScanOutcome{
		Identified: false,
		AIInfo:     result.Info,
		Message:    "Cigar identified but not in database",
	}
}
