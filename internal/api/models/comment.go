package models

import "time"

type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	CigarID   int64     `json:"cigar_id" gorm:"not null;index"`
	Text      string    `json:"text" gorm:"not null;type:text"`
	Images    []string  `json:"images" gorm:"serializer:json"`
	ParentID  *int64    `json:"parent_id,omitempty" gorm:"index"` // nil for root comments
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Cigar Cigar `json:"cigar,omitempty" gorm:"foreignKey:CigarID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
