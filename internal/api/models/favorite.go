package models

import "time"

type Favorite struct {
	ID      int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_cigar" json:"user_id"`
	CigarID int64     `gorm:"not null;uniqueIndex:idx_favorites_user_cigar" json:"cigar_id"`
	AddedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`

	// Associations
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Cigar *Cigar `gorm:"foreignKey:CigarID" json:"cigar,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
