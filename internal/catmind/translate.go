package catmind

import (
	"context"
	"time"

	"github.com/yuna/nekotalk/internal/domain"
	"github.com/yuna/nekotalk/internal/logger"
)

// Translator runs the three-stage translation pipeline:
// behavior analysis, feeling translation, mood judgment.
type Translator struct {
	model  Generator
	logger *logger.Logger
}

// NewTranslator creates a Translator on top of a model client.
func NewTranslator(model Generator, log *logger.Logger) *Translator {
	return &Translator{model: model, logger: log}
}

// Translate runs the pipeline strictly in sequence: each stage's prompt
// embeds the previous stage's output, so no stage can start before the one
// before it resolves. Any stage failure aborts the invocation; there is no
// partial output.
func (t *Translator) Translate(ctx context.Context, in domain.TranslateInput) (*domain.TranslateOutput, error) {
	start := time.Now()

	analysis, err := t.analyzeBehavior(ctx, in.Cat, in.Text, in.ImageBase64)
	if err != nil {
		return nil, err
	}

	translation, err := t.translateFeeling(ctx, in.Cat, analysis)
	if err != nil {
		return nil, err
	}

	mood, err := t.judgeMood(ctx, translation.Translation)
	if err != nil {
		return nil, err
	}

	logger.With(logger.Fields{
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
		logger.FieldMood:       string(mood.Mood),
	}).Info(ctx, "translation pipeline completed")

	return &domain.TranslateOutput{
		Translation: translation.Translation,
		Mood:        mood.Mood,
		MoodFace:    mood.Face,
		Analysis:    analysis,
	}, nil
}
