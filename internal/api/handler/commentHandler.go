package handler

import (
	"errors"
	"net/http"
	"strconv"

	"cigarrank/internal/api/dto"
	"cigarrank/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// RegisterRoutes registers comment routes. Reading a cigar's thread is
// public; posting and the my-comments listing are authenticated.
func (h *CommentHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/:cigar_id", h.GetThread)

	authed.POST("", h.Create)
	authed.GET("/my-comments", h.GetMyComments)
}

// Create posts a comment or reply on a cigar.
// POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), userID.(string), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCigarNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Cigar not found"})
		case errors.Is(err, service.ErrParentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Parent comment not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// GetThread returns the cigar's comments as root comments with replies.
// GET /api/comments/:cigar_id
func (h *CommentHandler) GetThread(c *gin.Context) {
	cigarID, err := strconv.ParseInt(c.Param("cigar_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cigar ID"})
		return
	}

	thread, err := h.commentService.GetThread(c.Request.Context(), cigarID)
	if err != nil {
		if errors.Is(err, service.ErrCigarNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cigar not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, thread)
}

// GetMyComments lists the caller's comments with cigar names.
// GET /api/comments/my-comments
func (h *CommentHandler) GetMyComments(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	comments, err := h.commentService.GetMyComments(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, comments)
}
