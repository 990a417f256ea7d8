package service

import (
	"context"

	"github.com/yuna/nekotalk/internal/domain"
	"github.com/yuna/nekotalk/internal/logger"
	"github.com/yuna/nekotalk/internal/repository"
)

// FeelingTranslator runs the staged behavior-to-feeling pipeline.
type FeelingTranslator interface {
	Translate(ctx context.Context, in domain.TranslateInput) (*domain.TranslateOutput, error)
}

// TranslateService resolves the cat and runs the feeling translation
// pipeline on its behalf.
type TranslateService struct {
	catRepo    *repository.CatRepository
	translator FeelingTranslator
	logger     *logger.Logger
}

// NewTranslateService creates a new translate service.
func NewTranslateService(catRepo *repository.CatRepository, translator FeelingTranslator, log *logger.Logger) *TranslateService {
	return &TranslateService{
		catRepo:    catRepo,
		translator: translator,
		logger:     log,
	}
}

// Translate turns a behavior description into the cat's first-person
// feeling. Only the cat's owner may request a translation.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: requesting user, must own the cat.
//   - catID: cat whose profile personalizes the pipeline.
//   - text: behavior description, required.
//   - imageBase64: optional photo accompanying the description.
// Returns:
//   - *domain.TranslateOutput: translation, mood, and face glyph.
//   - error: ErrNotOwner, or a pipeline error from the model stages.
func (s *TranslateService) Translate(ctx context.Context, userID, catID, text, imageBase64 string) (*domain.TranslateOutput, error) {
	cat, err := s.catRepo.GetByID(ctx, catID)
	if err != nil {
		return nil, err
	}
	if cat.UserID != userID {
		return nil, ErrNotOwner
	}

	return s.translator.Translate(ctx, domain.TranslateInput{
		Cat:         cat.Profile(),
		Text:        text,
		ImageBase64: imageBase64,
	})
}
