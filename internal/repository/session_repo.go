package repository

import (
	"context"
	"time"

	"github.com/yuna/nekotalk/internal/domain"
	"gorm.io/gorm"
)

// SessionRepository handles session token persistence.
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session record.
func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetByToken retrieves a session by its token.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	if err := r.db.WithContext(ctx).First(&session, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes a session token.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&domain.Session{}, "token = ?", token).Error
}

// DeleteExpired removes all sessions past their expiry.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - now: reference time for the expiry comparison.
// Returns:
//   - int64: number of sessions removed.
//   - error: non-nil if the delete fails.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Session{}, "expires_at < ?", now)
	return res.RowsAffected, res.Error
}
