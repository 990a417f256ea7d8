package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yuna/nekotalk/internal/api/middleware"
	"github.com/yuna/nekotalk/internal/service"
	"gorm.io/gorm"
)

// UserHandler handles account endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler.
// Parameters:
//   - userService: user service instance.
// Returns:
//   - *UserHandler: initialized handler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type registerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Bio   string `json:"bio"`
}

// Register handles POST /api/v1/users.
// Creates an account and returns the user with a fresh session token.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	user, session, err := h.userService.Register(c.Request.Context(), req.Name, req.Email, req.Bio)
	if err != nil {
		if err == service.ErrEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  user,
		"token": session.Token,
	})
}

// Profile handles GET /api/v1/users/:id.
// Returns the public profile: post and following counts plus the user's
// cats with their follower counts.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.userService.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Me handles GET /api/v1/users/me.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

type updateProfileRequest struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

// UpdateMe handles PUT /api/v1/users/me.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), req.Name, req.Bio, req.AvatarURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile update failed"})
		return
	}
	c.JSON(http.StatusOK, user)
}
