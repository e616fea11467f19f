package service

import (
	"context"
	"strings"
	"testing"

	"cigarrank/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockNoteRepository mocks the NoteRepository interface
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) GetByUserAndCigar(userID string, cigarID int64) (*models.Note, error) {
	args := m.Called(userID, cigarID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteRepository) Create(note *models.Note) error {
	args := m.Called(note)
	return args.Error(0)
}

func (m *MockNoteRepository) Update(note *models.Note) error {
	args := m.Called(note)
	return args.Error(0)
}

func (m *MockNoteRepository) Delete(userID string, cigarID int64) (bool, error) {
	args := m.Called(userID, cigarID)
	return args.Bool(0), args.Error(1)
}

func TestUpsertNote_TooLong(t *testing.T) {
	svc := NewNoteService(new(MockNoteRepository), nil)

	_, err := svc.UpsertNote(context.Background(), "user-1", 1, strings.Repeat("a", 1001))
	assert.ErrorIs(t, err, ErrNoteTooLong)
}

func TestUpsertNote_LengthCountsRunes(t *testing.T) {
	// The cap counts characters, not bytes: 1001 two-byte runes exceed it
	// for the same reason 1001 ASCII ones do
	repo := new(MockNoteRepository)
	svc := &noteService{noteRepo: repo, cigarRepo: nil}

	text := strings.Repeat("ñ", 1001)
	_, err := svc.UpsertNote(context.Background(), "user-1", 1, text)
	assert.ErrorIs(t, err, ErrNoteTooLong)
}

func TestGetNote_MissingIsEmpty(t *testing.T) {
	repo := new(MockNoteRepository)
	svc := NewNoteService(repo, nil)

	repo.On("GetByUserAndCigar", "user-1", int64(7)).Return(nil, gorm.ErrRecordNotFound)

	note, err := svc.GetNote(context.Background(), "user-1", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), note.CigarID)
	assert.Empty(t, note.Text)
	assert.Nil(t, note.UpdatedAt)
}

func TestDeleteNote_Missing(t *testing.T) {
	repo := new(MockNoteRepository)
	svc := NewNoteService(repo, nil)

	repo.On("Delete", "user-1", int64(7)).Return(false, nil)

	err := svc.DeleteNote(context.Background(), "user-1", 7)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestDeleteNote_Existing(t *testing.T) {
	repo := new(MockNoteRepository)
	svc := NewNoteService(repo, nil)

	repo.On("Delete", "user-1", int64(7)).Return(true, nil)

	err := svc.DeleteNote(context.Background(), "user-1", 7)
	assert.NoError(t, err)
}
