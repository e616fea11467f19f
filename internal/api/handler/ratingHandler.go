package handler

import (
	"errors"
	"net/http"
	"strconv"

	"cigarrank/internal/api/dto"
	"cigarrank/internal/api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// RegisterRoutes registers rating routes. Listing a cigar's ratings is
// public; everything touching the caller's own ratings is authenticated.
func (h *RatingHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/cigar/:id", h.ListForCigar)

	authed.POST("", h.CreateOrUpdate)
	authed.GET("/user/:id", h.GetUserRating)
	authed.GET("/my-ratings", h.GetMyRatings)
}

// CreateOrUpdate upserts the caller's rating and refreshes the cigar's
// aggregate fields.
// POST /api/ratings
func (h *RatingHandler) CreateOrUpdate(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateRatingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratingService.CreateOrUpdateRating(c.Request.Context(), userID.(string), &req)
	if err != nil {
		if errors.Is(err, service.ErrCigarNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cigar not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToRatingRow(rating))
}

// ListForCigar lists the most recent ratings on a cigar.
// GET /api/ratings/cigar/:id
func (h *RatingHandler) ListForCigar(c *gin.Context) {
	cigarID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cigar ID"})
		return
	}

	ratings, err := h.ratingService.GetCigarRatings(c.Request.Context(), cigarID)
	if err != nil {
		if errors.Is(err, service.ErrCigarNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cigar not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ratings)
}

// GetUserRating returns the caller's rating for one cigar, or JSON null if
// they have not rated it.
// GET /api/ratings/user/:id
func (h *RatingHandler) GetUserRating(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	cigarID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cigar ID"})
		return
	}

	rating, err := h.ratingService.GetUserRating(c.Request.Context(), userID.(string), cigarID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rating)
}

// GetMyRatings lists everything the caller has rated with cigar details.
// GET /api/ratings/my-ratings
func (h *RatingHandler) GetMyRatings(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ratings, err := h.ratingService.GetMyRatings(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ratings)
}
