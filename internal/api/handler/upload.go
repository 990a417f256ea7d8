package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yuna/nekotalk/internal/service"
)

// UploadHandler handles media uploads.
type UploadHandler struct {
	mediaService *service.MediaService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(mediaService *service.MediaService) *UploadHandler {
	return &UploadHandler{mediaService: mediaService}
}

// Upload handles POST /api/v1/upload.
// Accepts one multipart file under the "file" field and returns the
// stored media URL.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file field"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "画像のアップロードに失敗しました"})
		return
	}
	defer file.Close()

	result, err := h.mediaService.Upload(c.Request.Context(), file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		switch err {
		case service.ErrUnsupportedMedia:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported media type"})
		case service.ErrUploadTooLarge:
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Upload exceeds size limit"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "画像のアップロードに失敗しました"})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}
