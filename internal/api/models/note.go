package models

import "time"

// Note is a private per-user annotation on a cigar, independent of ratings
// and comments. Text is capped at 1000 characters at the service layer.
type Note struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_notes_user_cigar"`
	CigarID   int64     `json:"cigar_id" gorm:"not null;uniqueIndex:idx_notes_user_cigar"`
	Text      string    `json:"text" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Cigar Cigar `json:"-" gorm:"foreignKey:CigarID;constraint:OnDelete:CASCADE;"`
}

func (Note) TableName() string {
	return "notes"
}
