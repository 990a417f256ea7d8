package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yuna/nekotalk/internal/api/middleware"
	"github.com/yuna/nekotalk/internal/domain"
	"github.com/yuna/nekotalk/internal/service"
	"gorm.io/gorm"
)

// ConsultHandler handles the consultation endpoints.
type ConsultHandler struct {
	consultService *service.ConsultService
}

// NewConsultHandler creates a new consult handler.
func NewConsultHandler(consultService *service.ConsultService) *ConsultHandler {
	return &ConsultHandler{consultService: consultService}
}

type consultRequest struct {
	CatID       string   `json:"cat_id" binding:"required"`
	InputType   string   `json:"input_type" binding:"required"`
	InputText   string   `json:"input_text"`
	ImageBase64 string   `json:"image_base64"`
	Frames      []string `json:"frames"`
}

// Consult handles POST /api/v1/consult.
// The payload must match its input type; video consultations are rejected
// with 429 before the model runs when today's quota is used up.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ConsultHandler) Consult(c *gin.Context) {
	var req consultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "必要な情報が不足しています"})
		return
	}

	userID := middleware.CurrentUserID(c)
	profile, err := h.consultService.GetCatProfile(c.Request.Context(), userID, req.CatID)
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

	in, buildErr := buildConsultInput(profile, &req)
	if buildErr != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": buildErr})
		return
	}

	result, err := h.consultService.Consult(c.Request.Context(), userID, in)
	if err != nil {
		if err == service.ErrVideoQuotaExceeded {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "動画相談は1日3回までです"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "翻訳に失敗しました。もう一度お試しください"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feeling":     result.Feeling,
		"explanation": result.Explanation,
		"advice":      result.Advice,
		"mood":        result.Mood,
		"mood_face":   domain.ConsultMoodFaces[result.Mood],
	})
}

// buildConsultInput validates the payload against its declared type and
// returns a Japanese validation message when they do not match. The single
// input_text field doubles as the photo caption and the video note.
func buildConsultInput(profile domain.CatProfile, req *consultRequest) (domain.ConsultInput, string) {
	switch domain.InputType(req.InputType) {
	case domain.InputTypeText:
		in, err := domain.NewTextConsult(profile, req.InputText)
		if err != nil {
			return domain.ConsultInput{}, "テキストを入力してください"
		}
		return in, ""
	case domain.InputTypePhoto:
		in, err := domain.NewPhotoConsult(profile, req.ImageBase64, req.InputText)
		if err != nil {
			return domain.ConsultInput{}, "写真を選択してください"
		}
		return in, ""
	case domain.InputTypeVideo:
		in, err := domain.NewVideoConsult(profile, req.Frames, req.InputText)
		if err != nil {
			return domain.ConsultInput{}, "動画を選択してください"
		}
		return in, ""
	default:
		return domain.ConsultInput{}, "必要な情報が不足しています"
	}
}

type saveConsultRequest struct {
	CatID       string `json:"cat_id" binding:"required"`
	InputType   string `json:"input_type" binding:"required"`
	InputText   string `json:"input_text"`
	MediaURL    string `json:"media_url"`
	FrameCount  int    `json:"frame_count"`
	Feeling     string `json:"feeling" binding:"required"`
	Explanation string `json:"explanation" binding:"required"`
	Advice      string `json:"advice" binding:"required"`
	Mood        string `json:"mood" binding:"required"`
}

// Save handles POST /api/v1/consult/save.
func (h *ConsultHandler) Save(c *gin.Context) {
	var req saveConsultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "必要な情報が不足しています"})
		return
	}

	record, err := h.consultService.Save(c.Request.Context(), middleware.CurrentUserID(c), service.SaveInput{
		CatID:      req.CatID,
		InputType:  domain.InputType(req.InputType),
		InputText:  req.InputText,
		MediaURL:   req.MediaURL,
		FrameCount: req.FrameCount,
		Result: domain.ConsultResult{
			Feeling:     req.Feeling,
			Explanation: req.Explanation,
			Advice:      req.Advice,
			Mood:        domain.ConsultMood(req.Mood),
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存に失敗しました"})
		return
	}
	c.JSON(http.StatusCreated, record)
}

// History handles GET /api/v1/consult/history.
func (h *ConsultHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	views, err := h.consultService.History(c.Request.Context(), middleware.CurrentUserID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "履歴の取得に失敗しました"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultations": views})
}

// DeleteRecord handles DELETE /api/v1/consult/history/:id.
func (h *ConsultHandler) DeleteRecord(c *gin.Context) {
	err := h.consultService.DeleteRecord(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "相談が見つかりません"})
		case err == service.ErrNotOwner:
			c.JSON(http.StatusForbidden, gin.H{"error": "相談が見つかりません"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "削除に失敗しました"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// VideoCount handles GET /api/v1/consult/video-count.
func (h *ConsultHandler) VideoCount(c *gin.Context) {
	used, limit, err := h.consultService.VideoQuota(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "カウントの取得に失敗しました"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"used":      used,
		"limit":     limit,
		"remaining": int64(limit) - used,
	})
}
