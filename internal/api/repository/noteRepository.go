package repository

import (
	"cigarrank/internal/api/models"

	"gorm.io/gorm"
)

type NoteRepository interface {
	GetByUserAndCigar(userID string, cigarID int64) (*models.Note, error)
	Create(note *models.Note) error
	Update(note *models.Note) error
	Delete(userID string, cigarID int64) (bool, error)
}

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) GetByUserAndCigar(userID string, cigarID int64) (*models.Note, error) {
	var note models.Note
	err := r.db.Where("user_id = ? AND cigar_id = ?", userID, cigarID).
		First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) Create(note *models.Note) error {
	return r.db.Create(note).Error
}

func (r *noteRepository) Update(note *models.Note) error {
	return r.db.Save(note).Error
}

// Delete removes a note; the bool reports whether a row actually existed.
func (r *noteRepository) Delete(userID string, cigarID int64) (bool, error) {
	result := r.db.Where("user_id = ? AND cigar_id = ?", userID, cigarID).
		Delete(&models.Note{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
