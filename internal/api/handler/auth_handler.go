package handler

import (
	"context"
	"errors"
	"net/http"

	"cigarrank/internal/api/dto"
	"cigarrank/internal/api/models"
	"cigarrank/internal/api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService     service.AuthService
	favoriteService service.FavoriteService
}

func NewAuthHandler(authService service.AuthService, favoriteService service.FavoriteService) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		favoriteService: favoriteService,
	}
}

// RegisterRoutes registers the public auth routes on the open group and the
// account routes on the authenticated group.
func (h *AuthHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)

	authed.GET("/me", h.Me)
	authed.PUT("/profile", h.UpdateProfile)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailInUse):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		case errors.Is(err, service.ErrNameInUse):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token: token,
		User:  h.userPayload(c.Request.Context(), user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token: token,
		User:  h.userPayload(c.Request.Context(), user),
	})
}

// Me returns the authenticated user's account.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.authService.GetUser(userID.(string))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.userPayload(c.Request.Context(), user))
}

// UpdateProfile applies a partial update to the caller's account.
// PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.UpdateProfile(userID.(string), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameInUse):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, h.userPayload(c.Request.Context(), user))
}

// userPayload builds the public user view, including the favorites list so
// clients can render bookmark state without a second round trip.
func (h *AuthHandler) userPayload(ctx context.Context, user *models.User) dto.UserPayload {
	favorites, err := h.favoriteService.ListIDs(ctx, user.ID)
	if err != nil {
		favorites = []int64{}
	}

	prefs := user.Prefs
	if prefs == nil {
		prefs = map[string]string{}
	}

	return dto.UserPayload{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		ProfilePic: user.ProfilePic,
		Prefs:      prefs,
		Favorites:  favorites,
	}
}
