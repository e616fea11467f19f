package dto

import (
	"time"
)

// CreateCommentDTO for creating a comment or a reply
type CreateCommentDTO struct {
	CigarID  int64    `json:"cigar_id" binding:"required"`
	Text     string   `json:"text" binding:"required,min=1,max=5000"`
	ParentID *int64   `json:"parent_id,omitempty"`
	Images   []string `json:"images"`
}

// CommentResponse is a comment enriched with its author's username and its
// direct replies. Only one level of replies is materialized.
type CommentResponse struct {
	ID        int64             `json:"id"`
	UserID    string            `json:"user_id"`
	Username  string            `json:"username"`
	CigarID   int64             `json:"cigar_id"`
	Text      string            `json:"text"`
	ParentID  *int64            `json:"parent_id,omitempty"`
	Images    []string          `json:"images"`
	CreatedAt time.Time         `json:"created_at"`
	Replies   []CommentResponse `json:"replies"`
}

// MyCommentResponse pairs a comment with the cigar it was left on
type MyCommentResponse struct {
	ID        int64     `json:"id"`
	CigarID   int64     `json:"cigar_id"`
	CigarName string    `json:"cigar_name"`
	Brand     string    `json:"brand"`
	Text      string    `json:"text"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
