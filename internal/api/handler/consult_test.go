package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yuna/nekotalk/internal/api/middleware"
	"github.com/yuna/nekotalk/internal/domain"
	"github.com/yuna/nekotalk/internal/logger"
	"github.com/yuna/nekotalk/internal/repository"
	"github.com/yuna/nekotalk/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeConsultant struct {
	calls int
	last  domain.ConsultInput
}

func (f *fakeConsultant) Consult(ctx context.Context, in domain.ConsultInput) (*domain.ConsultResult, error) {
	f.calls++
	f.last = in
	return &domain.ConsultResult{
		Feeling:     "楽しいニャ",
		Explanation: "explanation",
		Advice:      "advice",
		Mood:        domain.ConsultMoodCheerful,
	}, nil
}

type consultFixture struct {
	router     *gin.Engine
	consultant *fakeConsultant
	service    *service.ConsultService
	user       *domain.User
	catID      string
}

func newConsultFixture(t *testing.T) *consultFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	catRepo := repository.NewCatRepository(db)
	consultRepo := repository.NewConsultationRepository(db)

	user := &domain.User{ID: uuid.New().String(), Name: "ゆき", Email: "yuki@example.com"}
	cat := &domain.Cat{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Name:      "たま",
		Breed:     "雑種",
		Age:       2,
		Gender:    "メス",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := catRepo.Create(context.Background(), cat); err != nil {
		t.Fatalf("failed to seed cat: %v", err)
	}

	consultant := &fakeConsultant{}
	svc := service.NewConsultService(consultRepo, catRepo, consultant, logger.NewDefault(), 3)
	h := NewConsultHandler(svc)

	router := gin.New()
	router.POST("/consult", func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, user)
	}, h.Consult)

	return &consultFixture{
		router:     router,
		consultant: consultant,
		service:    svc,
		user:       user,
		catID:      cat.ID,
	}
}

func (f *consultFixture) post(t *testing.T, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/consult", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestConsultHandler_TextConsult(t *testing.T) {
	f := newConsultFixture(t)

	w := f.post(t, map[string]interface{}{
		"cat_id":     f.catID,
		"input_type": "text",
		"input_text": "よく鳴く",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp["mood"] != "ご機嫌" {
		t.Errorf("expected mood ご機嫌, got %v", resp["mood"])
	}
	if resp["mood_face"] != "^_^" {
		t.Errorf("expected face ^_^, got %v", resp["mood_face"])
	}
}

// input_text is the one free-text field across all three types: the
// consultation text, the photo caption, and the video note.
func TestConsultHandler_InputTextPerType(t *testing.T) {
	f := newConsultFixture(t)

	tests := []struct {
		name string
		body map[string]interface{}
		typ  domain.InputType
	}{
		{
			name: "text",
			body: map[string]interface{}{"cat_id": f.catID, "input_type": "text", "input_text": "よく鳴く"},
			typ:  domain.InputTypeText,
		},
		{
			name: "photo caption",
			body: map[string]interface{}{"cat_id": f.catID, "input_type": "photo", "input_text": "よく鳴く", "image_base64": "aW1n"},
			typ:  domain.InputTypePhoto,
		},
		{
			name: "video note",
			body: map[string]interface{}{"cat_id": f.catID, "input_type": "video", "input_text": "よく鳴く", "frames": []string{"ZnJhbWU="}},
			typ:  domain.InputTypeVideo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.post(t, tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
			if f.consultant.last.Type != tt.typ {
				t.Errorf("expected input type %s, got %s", tt.typ, f.consultant.last.Type)
			}
			if f.consultant.last.Text() != "よく鳴く" {
				t.Errorf("expected input text to reach the model, got %q", f.consultant.last.Text())
			}
		})
	}
}

func TestConsultHandler_PayloadTypeMismatch(t *testing.T) {
	f := newConsultFixture(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "text type without text",
			body: map[string]interface{}{"cat_id": f.catID, "input_type": "text"},
		},
		{
			name: "photo type without image",
			body: map[string]interface{}{"cat_id": f.catID, "input_type": "photo", "input_text": "ignored"},
		},
		{
			name: "video type without frames",
			body: map[string]interface{}{"cat_id": f.catID, "input_type": "video"},
		},
		{
			name: "unknown type",
			body: map[string]interface{}{"cat_id": f.catID, "input_type": "audio", "input_text": "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.post(t, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}

	if f.consultant.calls != 0 {
		t.Errorf("model must not be called on validation failure, got %d calls", f.consultant.calls)
	}
}

// The fourth video consultation of the day is rejected with 429 and the
// model is never reached.
func TestConsultHandler_VideoQuota(t *testing.T) {
	f := newConsultFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		w := f.post(t, map[string]interface{}{
			"cat_id":     f.catID,
			"input_type": "video",
			"frames":     []string{"ZnJhbWU="},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("video consult %d: expected 200, got %d: %s", i+1, w.Code, w.Body.String())
		}
		// Persist it the way the client would, so the quota counter advances
		if _, err := f.service.Save(ctx, f.user.ID, service.SaveInput{
			CatID:      f.catID,
			InputType:  domain.InputTypeVideo,
			FrameCount: 1,
			Result:     domain.ConsultResult{Feeling: "ニャ", Explanation: "e", Advice: "a", Mood: domain.ConsultMoodCheerful},
		}); err != nil {
			t.Fatalf("failed to save consultation: %v", err)
		}
	}

	callsBefore := f.consultant.calls
	w := f.post(t, map[string]interface{}{
		"cat_id":     f.catID,
		"input_type": "video",
		"frames":     []string{"ZnJhbWU="},
	})
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d: %s", w.Code, w.Body.String())
	}
	if f.consultant.calls != callsBefore {
		t.Error("model must not be called once the quota is spent")
	}
}

func TestConsultHandler_UnknownCat(t *testing.T) {
	f := newConsultFixture(t)

	w := f.post(t, map[string]interface{}{
		"cat_id":     "missing",
		"input_type": "text",
		"input_text": "よく鳴く",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
