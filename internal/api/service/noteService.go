package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"cigarrank/internal/api/dto"
	"cigarrank/internal/api/models"
	"cigarrank/internal/api/repository"

	"gorm.io/gorm"
)

const maxNoteLength = 1000

var (
	ErrNoteTooLong  = errors.New("note exceeds maximum length of 1000 characters")
	ErrNoteNotFound = errors.New("note not found")
)

type NoteService interface {
	GetNote(ctx context.Context, userID string, cigarID int64) (*dto.NoteResponse, error)
	UpsertNote(ctx context.Context, userID string, cigarID int64, text string) (*dto.NoteResponse, error)
	DeleteNote(ctx context.Context, userID string, cigarID int64) error
}

type noteService struct {
	noteRepo  repository.NoteRepository
	cigarRepo *repository.CigarRepo
}

func NewNoteService(noteRepo repository.NoteRepository, cigarRepo *repository.CigarRepo) NoteService {
	return &noteService{
		noteRepo:  noteRepo,
		cigarRepo: cigarRepo,
	}
}

// GetNote returns the caller's note for a cigar. No note is an empty note,
// not an error, so clients can render a blank editor without special cases.
func (s *noteService) GetNote(ctx context.Context, userID string, cigarID int64) (*dto.NoteResponse, error) {
	note, err := s.noteRepo.GetByUserAndCigar(userID, cigarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.NoteResponse{CigarID: cigarID, Text: ""}, nil
		}
		return nil, err
	}

	updatedAt := note.UpdatedAt
	return &dto.NoteResponse{
		CigarID:   note.CigarID,
		Text:      note.Text,
		UpdatedAt: &updatedAt,
	}, nil
}

// UpsertNote creates or replaces the caller's note for a cigar. The length
// cap counts runes, not bytes.
func (s *noteService) UpsertNote(ctx context.Context, userID string, cigarID int64, text string) (*dto.NoteResponse, error) {
	if utf8.RuneCountInString(text) > maxNoteLength {
		return nil, ErrNoteTooLong
	}

	if _, err := s.cigarRepo.GetByID(ctx, cigarID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCigarNotFound
		}
		return nil, err
	}

	note, err := s.noteRepo.GetByUserAndCigar(userID, cigarID)
	switch {
	case err == nil:
		note.Text = text
		if err := s.noteRepo.Update(note); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		note = &models.Note{
			UserID:  userID,
			CigarID: cigarID,
			Text:    text,
		}
		if err := s.noteRepo.Create(note); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	updatedAt := note.UpdatedAt
	return &dto.NoteResponse{
		CigarID:   note.CigarID,
		Text:      note.Text,
		UpdatedAt: &updatedAt,
	}, nil
}

// DeleteNote removes the caller's note. Deleting a note that does not exist
// is an error, unlike reading one.
func (s *noteService) DeleteNote(ctx context.Context, userID string, cigarID int64) error {
	existed, err := s.noteRepo.Delete(userID, cigarID)
	if err != nil {
		return err
	}
	if !existed {
		return ErrNoteNotFound
	}
	return nil
}
