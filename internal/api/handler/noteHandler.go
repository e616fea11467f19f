package handler

import (
	"errors"
	"net/http"
	"strconv"

	"cigarrank/internal/api/dto"
	"cigarrank/internal/api/service"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	noteService service.NoteService
}

func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// RegisterRoutes registers the private note routes. All of them require
// authentication since notes are only visible to their owner.
func (h *NoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:cigar_id", h.Get)
	rg.PUT("/:cigar_id", h.Upsert)
	rg.DELETE("/:cigar_id", h.Delete)
}

// Get returns the caller's note for a cigar, empty when none exists.
// GET /api/notes/:cigar_id
func (h *NoteHandler) Get(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	cigarID, err := strconv.ParseInt(c.Param("cigar_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cigar ID"})
		return
	}

	note, err := h.noteService.GetNote(c.Request.Context(), userID.(string), cigarID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, note)
}

// Upsert creates or replaces the caller's note for a cigar.
// PUT /api/notes/:cigar_id
func (h *NoteHandler) Upsert(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	cigarID, err := strconv.ParseInt(c.Param("cigar_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cigar ID"})
		return
	}

	var req dto.UpsertNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.noteService.UpsertNote(c.Request.Context(), userID.(string), cigarID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoteTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Note exceeds maximum length of 1000 characters"})
		case errors.Is(err, service.ErrCigarNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Cigar not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, note)
}

// Delete removes the caller's note. 404 when there was none.
// DELETE /api/notes/:cigar_id
func (h *NoteHandler) Delete(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	cigarID, err := strconv.ParseInt(c.Param("cigar_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cigar ID"})
		return
	}

	if err := h.noteService.DeleteNote(c.Request.Context(), userID.(string), cigarID); err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Note deleted",
	})
}
