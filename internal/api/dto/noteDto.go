package dto

import "time"

// UpsertNoteRequest for PUT /notes/:cigar_id. The length cap is also
// enforced at the service layer so it holds for non-HTTP callers.
type UpsertNoteRequest struct {
	Text string `json:"text" binding:"max=1000"`
}

// NoteResponse for returning a private note. A missing note serializes as
// an empty text, never as an error.
type NoteResponse struct {
	CigarID   int64      `json:"cigar_id"`
	Text      string     `json:"text"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
