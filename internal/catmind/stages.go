package catmind

import (
	"context"

	"github.com/yuna/nekotalk/internal/domain"
	"github.com/yuna/nekotalk/internal/logger"
	"github.com/yuna/nekotalk/internal/prompts"
)

// Each stage is one prompt + model call + parse unit. Stages share no state
// beyond the previous stage's output; each is testable in isolation against
// a fake Generator.

// analyzeBehavior runs stage 1: a neutral, non-roleplay description of what
// the cat is doing and why cats generally do it.
func (t *Translator) analyzeBehavior(ctx context.Context, cat domain.CatProfile, text, imageBase64 string) (domain.AnalysisResult, error) {
	parts := make([]Part, 0, 2)
	if imageBase64 != "" {
		parts = append(parts, ImagePart(imageBase64, ""))
	}
	parts = append(parts, TextPart(prompts.BuildBehaviorAnalysis(cat, text)))

	raw, err := t.model.Generate(ctx, "", parts)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	obj, err := decodeObject(raw)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	return domain.AnalysisResult{
		Behavior: stringField(obj, "behavior"),
		Context:  stringField(obj, "context"),
	}, nil
}

// translateFeeling runs stage 2: the analysis rephrased in first person as
// the cat, in cat-speech register.
func (t *Translator) translateFeeling(ctx context.Context, cat domain.CatProfile, analysis domain.AnalysisResult) (domain.TranslationResult, error) {
	raw, err := t.model.Generate(ctx, "", []Part{
		TextPart(prompts.BuildFeelingTranslation(cat, analysis)),
	})
	if err != nil {
		return domain.TranslationResult{}, err
	}

	obj, err := decodeObject(raw)
	if err != nil {
		return domain.TranslationResult{}, err
	}

	return domain.TranslationResult{Translation: stringField(obj, "translation")}, nil
}

// judgeMood runs stage 3 on the translated text alone. The profile is
// deliberately withheld so mood is inferred purely from the phrased feeling.
func (t *Translator) judgeMood(ctx context.Context, translation string) (domain.MoodResult, error) {
	raw, err := t.model.Generate(ctx, "", []Part{
		TextPart(prompts.BuildMoodJudgment(translation)),
	})
	if err != nil {
		return domain.MoodResult{}, err
	}

	obj, err := decodeObject(raw)
	if err != nil {
		return domain.MoodResult{}, err
	}

	mood := stringField(obj, "mood")
	if !domain.IsValidTranslateMood(mood) {
		// Degraded-but-valid beats rejecting an otherwise usable translation.
		logger.FromContext(ctx).WithField(logger.FieldMood, mood).
			Warn("mood outside translator enum, substituting default")
		fallback := domain.DefaultTranslateMood
		return domain.MoodResult{Mood: fallback, Face: domain.TranslateMoodFaces[fallback]}, nil
	}

	m := domain.TranslateMood(mood)
	return domain.MoodResult{Mood: m, Face: domain.TranslateMoodFaces[m]}, nil
}
