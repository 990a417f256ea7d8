package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yuna/nekotalk/internal/api/middleware"
	"github.com/yuna/nekotalk/internal/service"
	"gorm.io/gorm"
)

// TranslateHandler handles the feeling translation endpoint.
type TranslateHandler struct {
	translateService *service.TranslateService
}

// NewTranslateHandler creates a new translate handler.
func NewTranslateHandler(translateService *service.TranslateService) *TranslateHandler {
	return &TranslateHandler{translateService: translateService}
}

type translateRequest struct {
	CatID       string `json:"cat_id" binding:"required"`
	Text        string `json:"text" binding:"required"`
	ImageBase64 string `json:"image_base64"`
}

// Translate handles POST /api/v1/translate.
// Runs the staged pipeline and returns the first-person translation with
// mood and face glyph. Pipeline failures map to one generic message; the
// model's raw output is never exposed.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *TranslateHandler) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "テキストを入力してください"})
		return
	}

	out, err := h.translateService.Translate(c.Request.Context(), middleware.CurrentUserID(c), req.CatID, req.Text, req.ImageBase64)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "猫が見つかりません"})
		case err == service.ErrNotOwner:
			c.JSON(http.StatusForbidden, gin.H{"error": "Not the owner of this cat"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "翻訳に失敗しました。もう一度お試しください"})
		}
		return
	}

	c.JSON(http.StatusOK, out)
}
