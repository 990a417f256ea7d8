package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yuna/nekotalk/internal/api/middleware"
	"github.com/yuna/nekotalk/internal/service"
)

// SearchHandler handles search endpoints.
type SearchHandler struct {
	postService *service.PostService
	catService  *service.CatService
}

// NewSearchHandler creates a new search handler.
// Parameters:
//   - postService: service for post content search.
//   - catService: service for breed search.
// Returns:
//   - *SearchHandler: initialized handler.
func NewSearchHandler(postService *service.PostService, catService *service.CatService) *SearchHandler {
	return &SearchHandler{postService: postService, catService: catService}
}

// Search handles GET /api/v1/search.
// The type parameter selects the mode: latest and popular search post
// content, breeds searches cat breeds.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter q"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	searchType := c.DefaultQuery("type", "latest")

	switch searchType {
	case "breeds":
		cats, err := h.catService.SearchByBreed(c.Request.Context(), query, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cats": cats})

	case "latest", "popular":
		views, err := h.postService.Search(c.Request.Context(), middleware.CurrentUserID(c), query, searchType, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"posts": views})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown search type: " + searchType})
	}
}
