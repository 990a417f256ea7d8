package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yuna/nekotalk/internal/api/middleware"
	"github.com/yuna/nekotalk/internal/domain"
	"github.com/yuna/nekotalk/internal/service"
	"gorm.io/gorm"
)

// CatHandler handles cat profile and follow endpoints.
type CatHandler struct {
	catService *service.CatService
}

// NewCatHandler creates a new cat handler.
func NewCatHandler(catService *service.CatService) *CatHandler {
	return &CatHandler{catService: catService}
}

type catRequest struct {
	Name        string `json:"name" binding:"required"`
	Breed       string `json:"breed" binding:"required"`
	Age         int    `json:"age" binding:"required,min=0"`
	Gender      string `json:"gender" binding:"required"`
	Personality string `json:"personality"`
	PhotoURL    string `json:"photo_url"`
}

// Create handles POST /api/v1/cats.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CatHandler) Create(c *gin.Context) {
	var req catRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	cat, err := h.catService.Create(c.Request.Context(), middleware.CurrentUserID(c), &domain.Cat{
		Name:        req.Name,
		Breed:       req.Breed,
		Age:         req.Age,
		Gender:      req.Gender,
		Personality: req.Personality,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register cat"})
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// ListMine handles GET /api/v1/cats.
func (h *CatHandler) ListMine(c *gin.Context) {
	cats, err := h.catService.ListByUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cats": cats})
}

// Get handles GET /api/v1/cats/:id.
func (h *CatHandler) Get(c *gin.Context) {
	detail, err := h.catService.Get(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cat not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cat"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

type catUpdateRequest struct {
	Name        string `json:"name"`
	Breed       string `json:"breed"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Personality string `json:"personality"`
	PhotoURL    string `json:"photo_url"`
}

// Update handles PUT /api/v1/cats/:id.
func (h *CatHandler) Update(c *gin.Context) {
	var req catUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	cat, err := h.catService.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), &domain.Cat{
		Name:        req.Name,
		Breed:       req.Breed,
		Age:         req.Age,
		Gender:      req.Gender,
		Personality: req.Personality,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		writeCatError(c, err, "Failed to update cat")
		return
	}
	c.JSON(http.StatusOK, cat)
}

// Delete handles DELETE /api/v1/cats/:id.
func (h *CatHandler) Delete(c *gin.Context) {
	if err := h.catService.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		writeCatError(c, err, "Failed to delete cat")
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleFollow handles POST /api/v1/cats/:id/follow.
// Follows the cat when not yet followed, unfollows otherwise.
func (h *CatHandler) ToggleFollow(c *gin.Context) {
	following, err := h.catService.ToggleFollow(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if err == service.ErrOwnCatFollow {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow your own cat"})
			return
		}
		writeCatError(c, err, "Failed to toggle follow")
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}

// Followers handles GET /api/v1/cats/:id/followers.
// An unknown cat yields an empty list.
func (h *CatHandler) Followers(c *gin.Context) {
	users, err := h.catService.Followers(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load followers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// FollowedByUser handles GET /api/v1/users/:id/following.
// Lists the cats the user follows, each with its owner and follower count.
func (h *CatHandler) FollowedByUser(c *gin.Context) {
	cats, err := h.catService.Following(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load followed cats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cats": cats})
}

func writeCatError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cat not found"})
	case err == service.ErrNotOwner:
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the owner of this cat"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
