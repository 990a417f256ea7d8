package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yuna/nekotalk/internal/api/middleware"
	"github.com/yuna/nekotalk/internal/service"
	"gorm.io/gorm"
)

// PostHandler handles timeline endpoints.
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

type createPostRequest struct {
	CatID       string `json:"cat_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
	ImageURL    string `json:"image_url"`
	VideoURL    string `json:"video_url"`
	Translation string `json:"translation"`
	Mood        string `json:"mood"`
	MoodFace    string `json:"mood_face"`
}

// Create handles POST /api/v1/posts.
// The translation trio is optional and attached verbatim when the author
// translated at compose time.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	post, err := h.postService.Create(c.Request.Context(), middleware.CurrentUserID(c), service.CreatePostInput{
		CatID:       req.CatID,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		VideoURL:    req.VideoURL,
		Translation: req.Translation,
		Mood:        req.Mood,
		MoodFace:    req.MoodFace,
	})
	if err != nil {
		writePostError(c, err, "Failed to create post")
		return
	}
	c.JSON(http.StatusCreated, post)
}

// Feed handles GET /api/v1/posts.
// Supports cursor pagination via before (RFC3339) and limit.
func (h *PostHandler) Feed(c *gin.Context) {
	before, limit, ok := pageParams(c)
	if !ok {
		return
	}
	views, err := h.postService.GetFeed(c.Request.Context(), middleware.CurrentUserID(c), before, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": views})
}

// ByCat handles GET /api/v1/cats/:id/posts.
func (h *PostHandler) ByCat(c *gin.Context) {
	before, limit, ok := pageParams(c)
	if !ok {
		return
	}
	views, err := h.postService.GetByCat(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), before, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": views})
}

// ByUser handles GET /api/v1/users/:id/posts.
func (h *PostHandler) ByUser(c *gin.Context) {
	before, limit, ok := pageParams(c)
	if !ok {
		return
	}
	views, err := h.postService.GetByUser(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), before, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": views})
}

// Get handles GET /api/v1/posts/:id, returning the post with its comments.
func (h *PostHandler) Get(c *gin.Context) {
	view, err := h.postService.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		writePostError(c, err, "Failed to load post")
		return
	}
	comments, err := h.postService.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": view, "comments": comments})
}

// Delete handles DELETE /api/v1/posts/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.postService.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		writePostError(c, err, "Failed to delete post")
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleLike handles POST /api/v1/posts/:id/like.
func (h *PostHandler) ToggleLike(c *gin.Context) {
	liked, err := h.postService.ToggleLike(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		writePostError(c, err, "Failed to toggle like")
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Comment handles POST /api/v1/posts/:id/comments.
func (h *PostHandler) Comment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}
	view, err := h.postService.Comment(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), req.Content)
	if err != nil {
		writePostError(c, err, "Failed to add comment")
		return
	}
	c.JSON(http.StatusCreated, view)
}

// LikedByMe handles GET /api/v1/users/me/likes.
func (h *PostHandler) LikedByMe(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	views, err := h.postService.ListLiked(c.Request.Context(), middleware.CurrentUserID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load liked posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": views})
}

// pageParams parses the before/limit query parameters, writing a 400 on a
// malformed cursor.
func pageParams(c *gin.Context) (time.Time, int, bool) {
	var before time.Time
	if raw := c.Query("before"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid before cursor, expected RFC3339"})
			return time.Time{}, 0, false
		}
		before = parsed
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return before, limit, true
}

func writePostError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case err == service.ErrNotOwner:
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the owner of this resource"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
