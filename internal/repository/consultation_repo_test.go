package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yuna/nekotalk/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedConsultation(t *testing.T, repo *ConsultationRepository, userID string, inputType domain.InputType, createdAt time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), &domain.Consultation{
		ID:          uuid.New().String(),
		UserID:      userID,
		CatID:       "cat-1",
		InputType:   inputType,
		Feeling:     "ニャ",
		Explanation: "explanation",
		Advice:      "advice",
		Mood:        string(domain.DefaultConsultMood),
		CreatedAt:   createdAt,
	})
	if err != nil {
		t.Fatalf("failed to seed consultation: %v", err)
	}
}

func TestConsultationRepository_CountVideoToday(t *testing.T) {
	repo := NewConsultationRepository(newTestDB(t))
	ctx := context.Background()

	now := time.Now()
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	// Two videos today, one just before midnight, one today but text
	seedConsultation(t, repo, "user-1", domain.InputTypeVideo, midnight.Add(time.Hour))
	seedConsultation(t, repo, "user-1", domain.InputTypeVideo, now)
	seedConsultation(t, repo, "user-1", domain.InputTypeVideo, midnight.Add(-time.Minute))
	seedConsultation(t, repo, "user-1", domain.InputTypeText, now)
	// Another user's video must not count
	seedConsultation(t, repo, "user-2", domain.InputTypeVideo, now)

	count, err := repo.CountVideoToday(ctx, "user-1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 video consultations today, got %d", count)
	}
}

func TestConsultationRepository_CountVideoToday_WindowBoundary(t *testing.T) {
	repo := NewConsultationRepository(newTestDB(t))
	ctx := context.Background()

	now := time.Now()
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	// Exactly at midnight counts; one nanosecond before does not
	seedConsultation(t, repo, "user-1", domain.InputTypeVideo, midnight)
	seedConsultation(t, repo, "user-1", domain.InputTypeVideo, midnight.Add(-time.Nanosecond))

	count, err := repo.CountVideoToday(ctx, "user-1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1, got %d", count)
	}
}

func TestConsultationRepository_ListByUser(t *testing.T) {
	repo := NewConsultationRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		seedConsultation(t, repo, "user-1", domain.InputTypeText, base.Add(time.Duration(i)*time.Minute))
	}
	seedConsultation(t, repo, "user-2", domain.InputTypeText, base)

	records, err := repo.ListByUser(ctx, "user-1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	// Newest first
	for i := 1; i < len(records); i++ {
		if records[i].CreatedAt.After(records[i-1].CreatedAt) {
			t.Error("expected records ordered newest first")
		}
	}
}
