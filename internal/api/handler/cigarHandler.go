package handler

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"cigarrank/internal/api/dto"
	"cigarrank/internal/api/repository"
	"cigarrank/internal/api/service"

	"github.com/gin-gonic/gin"
)

// 5 MB, matching the upload cap of typical band photos
const maxUploadBytes = 5 << 20

type CigarHandler struct {
	cigarService *service.CigarService
}

func NewCigarHandler(cigarService *service.CigarService) *CigarHandler {
	return &CigarHandler{cigarService: cigarService}
}

// RegisterRoutes registers cigar routes. Reads are public; writes and AI
// scans go on the authenticated group.
func (h *CigarHandler) RegisterRoutes(public, authed *gin.RouterGroup, scanLimiter gin.HandlerFunc) {
	public.GET("/search", h.Search)
	public.GET("/:id", h.GetByID)

	authed.POST("", h.Create)
	authed.POST("/add", h.CreateForm)
	authed.POST("/:id/upload-image", h.UploadImage)
	authed.POST("/scan-label", scanLimiter, h.ScanLabel)
	authed.POST("/scan-barcode", h.ScanBarcode)
}

// Search filters the catalog.
// GET /api/cigars/search?q=&strength=&origin=&size=&wrapper=&min_price=&max_price=
func (h *CigarHandler) Search(c *gin.Context) {
	filters := repository.SearchFilters{
		Query:    c.Query("q"),
		Strength: c.Query("strength"),
		Origin:   c.Query("origin"),
		Size:     c.Query("size"),
		Wrapper:  c.Query("wrapper"),
	}

	if v := c.Query("min_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_price"})
			return
		}
		filters.MinPrice = &p
	}
	if v := c.Query("max_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price"})
			return
		}
		filters.MaxPrice = &p
	}

	results, err := h.cigarService.Search(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, results)
}

// GetByID returns the full cigar record.
// GET /api/cigars/:id
func (h *CigarHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cigar ID"})
		return
	}

	cigar, err := h.cigarService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCigarNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cigar not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cigar)
}

// Create inserts a catalog entry from a JSON body.
// POST /api/cigars
func (h *CigarHandler) Create(c *gin.Context) {
	var req dto.CreateCigarDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cigar, err := h.cigarService.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, cigar)
}

// CreateForm inserts a catalog entry from form fields, the mobile app's
// add-a-cigar flow. flavor_notes arrives comma separated.
// POST /api/cigars/add
func (h *CigarHandler) CreateForm(c *gin.Context) {
	name := c.PostForm("name")
	brand := c.PostForm("brand")
	strength := c.PostForm("strength")
	origin := c.PostForm("origin")
	if name == "" || brand == "" || strength == "" || origin == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, brand, strength and origin are required"})
		return
	}

	var notes []string
	for _, n := range strings.Split(c.PostForm("flavor_notes"), ",") {
		if n = strings.TrimSpace(n); n != "" {
			notes = append(notes, n)
		}
	}

	req := dto.CreateCigarDTO{
		Name:        name,
		Brand:       brand,
		Strength:    strength,
		FlavorNotes: notes,
		Origin:      origin,
		Wrapper:     optionalForm(c, "wrapper"),
		Binder:      optionalForm(c, "binder"),
		Filler:      optionalForm(c, "filler"),
		Size:        optionalForm(c, "size"),
		PriceRange:  optionalForm(c, "price_range"),
		Barcode:     optionalForm(c, "barcode"),
	}

	cigar, err := h.cigarService.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, cigar)
}

func optionalForm(c *gin.Context, field string) *string {
	if v := c.PostForm(field); v != "" {
		return &v
	}
	return nil
}

// UploadImage stores a multipart image upload as base64 on the cigar.
// POST /api/cigars/:id/upload-image
func (h *CigarHandler) UploadImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cigar ID"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cigar, err := h.cigarService.UploadImage(c.Request.Context(), id, base64.StdEncoding.EncodeToString(data))
	if err != nil {
		if errors.Is(err, service.ErrCigarNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cigar not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cigar)
}

// ScanLabel identifies a cigar from a band photo via the vision model.
// POST /api/cigars/scan-label
func (h *CigarHandler) ScanLabel(c *gin.Context) {
	var req dto.ScanLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.cigarService.ScanLabel(c.Request.Context(), req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Label identification failed"})
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// ScanBarcode looks up a cigar by exact barcode.
// POST /api/cigars/scan-barcode
func (h *CigarHandler) ScanBarcode(c *gin.Context) {
	var req dto.ScanBarcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cigar, err := h.cigarService.ScanBarcode(c.Request.Context(), req.Barcode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if cigar == nil {
		c.JSON(http.StatusOK, gin.H{
			"found":   false,
			"message": "Cigar not found for this barcode",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"found": true,
		"cigar": cigar,
	})
}
