package repository

import (
	"context"
	"time"

	"github.com/yuna/nekotalk/internal/domain"
	"gorm.io/gorm"
)

// ConsultationRepository handles saved consultation records.
type ConsultationRepository struct {
	db *gorm.DB
}

// NewConsultationRepository creates a new ConsultationRepository.
func NewConsultationRepository(db *gorm.DB) *ConsultationRepository {
	return &ConsultationRepository{db: db}
}

// Create inserts a new consultation record.
func (r *ConsultationRepository) Create(ctx context.Context, c *domain.Consultation) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// GetByID retrieves a consultation by its ID.
func (r *ConsultationRepository) GetByID(ctx context.Context, id string) (*domain.Consultation, error) {
	var c domain.Consultation
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByUser retrieves a user's consultations, newest first.
func (r *ConsultationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Consultation, error) {
	var consultations []domain.Consultation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

// Delete removes a consultation record.
func (r *ConsultationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Consultation{}, "id = ?", id).Error
}

// CountVideoToday counts the user's video consultations since local midnight.
// The quota window resets at midnight in the server's local timezone.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: owner of the consultations.
//   - now: reference time whose local midnight starts the window.
// Returns:
//   - int64: number of video consultations in the current window.
//   - error: non-nil if the query fails.
func (r *ConsultationRepository) CountVideoToday(ctx context.Context, userID string, now time.Time) (int64, error) {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Consultation{}).
		Where("user_id = ? AND input_type = ? AND created_at >= ?", userID, domain.InputTypeVideo, midnight).
		Count(&count).Error
	return count, err
}
