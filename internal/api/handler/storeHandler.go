package handler

import (
	"errors"
	"net/http"
	"strconv"

	"cigarrank/internal/api/service"

	"github.com/gin-gonic/gin"
)

type StoreHandler struct {
	storeService *service.StoreService
}

func NewStoreHandler(storeService *service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

func (h *StoreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id", h.GetPrices)
}

// GetPrices returns per-retailer price entries for a cigar, served from
// cache when fresh.
// GET /api/stores/:id
func (h *StoreHandler) GetPrices(c *gin.Context) {
	cigarID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cigar ID"})
		return
	}

	prices, err := h.storeService.GetPrices(c.Request.Context(), cigarID)
	if err != nil {
		if errors.Is(err, service.ErrCigarNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cigar not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cigar_id": cigarID,
		"stores":   prices,
	})
}
