package catmind

import (
	"context"
	"time"

	"github.com/yuna/nekotalk/internal/domain"
	"github.com/yuna/nekotalk/internal/logger"
	"github.com/yuna/nekotalk/internal/prompts"
)

// Consultant answers the richer "consult about my cat" feature in one model
// call: the system prompt carries the profile, role-play rules, and the
// ten-mood rubric, and the user content carries the media. A single call
// keeps per-frame-batch cost flat where three chained calls would not.
type Consultant struct {
	model  Generator
	logger *logger.Logger
}

// NewConsultant creates a Consultant on top of a model client.
func NewConsultant(model Generator, log *logger.Logger) *Consultant {
	return &Consultant{model: model, logger: log}
}

// Consult performs one consultation. The caller has already validated the
// input shape and enforced the video quota.
func (c *Consultant) Consult(ctx context.Context, in domain.ConsultInput) (*domain.ConsultResult, error) {
	start := time.Now()

	raw, err := c.model.Generate(ctx, prompts.BuildConsultSystem(in.Cat), buildUserContent(in))
	if err != nil {
		return nil, err
	}

	result, err := parseConsultResponse(ctx, raw)
	if err != nil {
		return nil, err
	}

	logger.With(logger.Fields{
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
		logger.FieldInputType:  string(in.Type),
		logger.FieldMood:       string(result.Mood),
	}).Info(ctx, "consultation completed")

	return result, nil
}

// buildUserContent assembles the content blocks for the input type.
// Ordering is part of the contract: for video, the intro text precedes the
// frames in original temporal order, with the optional note last.
func buildUserContent(in domain.ConsultInput) []Part {
	switch in.Type {
	case domain.InputTypeText:
		return []Part{TextPart(prompts.ConsultTextPrefix + in.Text())}

	case domain.InputTypePhoto:
		return []Part{
			ImagePart(in.Image(), ""),
			TextPart(prompts.ConsultPhotoCaption(in.Text())),
		}

	case domain.InputTypeVideo:
		frames := in.Frames()
		parts := make([]Part, 0, len(frames)+2)
		parts = append(parts, TextPart(prompts.ConsultVideoIntro(len(frames))))
		for _, frame := range frames {
			parts = append(parts, ImagePart(frame, ""))
		}
		if in.Text() != "" {
			parts = append(parts, TextPart(prompts.ConsultVideoNote(in.Text())))
		}
		return parts
	}

	return nil
}

// parseConsultResponse validates JSON-ness and mood membership in the
// ten-value set, substituting the default mood on violation.
func parseConsultResponse(ctx context.Context, raw string) (*domain.ConsultResult, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	mood := stringField(obj, "mood")
	if !domain.IsValidConsultMood(mood) {
		logger.FromContext(ctx).WithField(logger.FieldMood, mood).
			Warn("mood outside consultant enum, substituting default")
		mood = string(domain.DefaultConsultMood)
	}

	return &domain.ConsultResult{
		Feeling:     stringField(obj, "feeling"),
		Explanation: stringField(obj, "explanation"),
		Advice:      stringField(obj, "advice"),
		Mood:        domain.ConsultMood(mood),
	}, nil
}
