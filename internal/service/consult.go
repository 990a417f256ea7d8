package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yuna/nekotalk/internal/domain"
	"github.com/yuna/nekotalk/internal/logger"
	"github.com/yuna/nekotalk/internal/repository"
)

// ErrVideoQuotaExceeded indicates the user hit the daily video
// consultation cap. The quota is checked before any model call.
var ErrVideoQuotaExceeded = errors.New("daily video consultation quota exceeded")

// CatConsultant answers a single multi-modal consultation.
type CatConsultant interface {
	Consult(ctx context.Context, in domain.ConsultInput) (*domain.ConsultResult, error)
}

// ConsultService handles consultations: quota, pipeline, and history.
type ConsultService struct {
	consultRepo *repository.ConsultationRepository
	catRepo     *repository.CatRepository
	consultant  CatConsultant
	logger      *logger.Logger
	videoLimit  int
}

// NewConsultService creates a new consult service.
// Parameters:
//   - consultRepo: repository for saved consultations.
//   - catRepo: repository for cat lookups.
//   - consultant: model-backed consultant.
//   - log: logger instance.
//   - videoLimit: daily video consultation cap; 0 uses the default.
// Returns:
//   - *ConsultService: initialized consult service.
func NewConsultService(consultRepo *repository.ConsultationRepository, catRepo *repository.CatRepository, consultant CatConsultant, log *logger.Logger, videoLimit int) *ConsultService {
	if videoLimit <= 0 {
		videoLimit = domain.MaxVideoConsultationsPerDay
	}
	return &ConsultService{
		consultRepo: consultRepo,
		catRepo:     catRepo,
		consultant:  consultant,
		logger:      log,
		videoLimit:  videoLimit,
	}
}

// GetCatProfile loads a cat owned by the user and returns its profile.
// Returns ErrNotOwner when the cat belongs to someone else.
func (s *ConsultService) GetCatProfile(ctx context.Context, userID, catID string) (domain.CatProfile, error) {
	cat, err := s.catRepo.GetByID(ctx, catID)
	if err != nil {
		return domain.CatProfile{}, err
	}
	if cat.UserID != userID {
		return domain.CatProfile{}, ErrNotOwner
	}
	return cat.Profile(), nil
}

// Consult runs one consultation. Video consultations are rejected with
// ErrVideoQuotaExceeded before the model is called when the user has
// already used today's quota.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: requesting user.
//   - in: validated consultation input.
// Returns:
//   - *domain.ConsultResult: structured answer with mood.
//   - error: quota or pipeline error.
func (s *ConsultService) Consult(ctx context.Context, userID string, in domain.ConsultInput) (*domain.ConsultResult, error) {
	if in.Type == domain.InputTypeVideo {
		used, err := s.consultRepo.CountVideoToday(ctx, userID, time.Now())
		if err != nil {
			return nil, err
		}
		if used >= int64(s.videoLimit) {
			s.logger.WithFields(logger.Fields{
				logger.FieldUserID: userID,
				logger.FieldCount:  used,
			}).Warn("video consultation quota exceeded")
			return nil, ErrVideoQuotaExceeded
		}
	}

	return s.consultant.Consult(ctx, in)
}

// SaveInput carries the persistable parts of a finished consultation.
type SaveInput struct {
	CatID      string
	InputType  domain.InputType
	InputText  string
	MediaURL   string
	FrameCount int
	Result     domain.ConsultResult
}

// Save persists a finished consultation for the user's history.
func (s *ConsultService) Save(ctx context.Context, userID string, in SaveInput) (*domain.Consultation, error) {
	record := &domain.Consultation{
		ID:          uuid.New().String(),
		UserID:      userID,
		CatID:       in.CatID,
		InputType:   in.InputType,
		InputText:   in.InputText,
		MediaURL:    in.MediaURL,
		FrameCount:  in.FrameCount,
		Feeling:     in.Result.Feeling,
		Explanation: in.Result.Explanation,
		Advice:      in.Result.Advice,
		Mood:        string(in.Result.Mood),
		CreatedAt:   time.Now(),
	}
	if err := s.consultRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// History retrieves the user's saved consultations with cat refs.
func (s *ConsultService) History(ctx context.Context, userID string, limit int) ([]domain.ConsultationView, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	records, err := s.consultRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	catIDs := make([]string, 0, len(records))
	for _, r := range records {
		catIDs = append(catIDs, r.CatID)
	}
	refs, err := s.catRepo.GetRefs(ctx, catIDs)
	if err != nil {
		return nil, err
	}
	views := make([]domain.ConsultationView, 0, len(records))
	for _, r := range records {
		views = append(views, domain.ConsultationView{Consultation: r, Cat: refs[r.CatID]})
	}
	return views, nil
}

// DeleteRecord removes a saved consultation. Only the owner may delete.
func (s *ConsultService) DeleteRecord(ctx context.Context, userID, id string) error {
	record, err := s.consultRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record.UserID != userID {
		return ErrNotOwner
	}
	return s.consultRepo.Delete(ctx, id)
}

// VideoQuota reports the user's video consultations used today and the cap.
func (s *ConsultService) VideoQuota(ctx context.Context, userID string) (used int64, limit int, err error) {
	used, err = s.consultRepo.CountVideoToday(ctx, userID, time.Now())
	if err != nil {
		return 0, 0, err
	}
	return used, s.videoLimit, nil
}
