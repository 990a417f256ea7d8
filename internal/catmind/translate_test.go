package catmind

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yuna/nekotalk/internal/domain"
	"github.com/yuna/nekotalk/internal/logger"
)

type generateCall struct {
	system string
	parts  []Part
}

// fakeModel replays canned responses in call order and records every call.
type fakeModel struct {
	responses []string
	failAt    int // 1-based call index that fails; 0 never fails
	err       error
	calls     []generateCall
}

func (f *fakeModel) Generate(ctx context.Context, systemPrompt string, parts []Part) (string, error) {
	f.calls = append(f.calls, generateCall{system: systemPrompt, parts: parts})
	n := len(f.calls)
	if f.failAt != 0 && n == f.failAt {
		err := f.err
		if err == nil {
			err = ErrGenerationFailed
		}
		return "", err
	}
	if n > len(f.responses) {
		return "", ErrGenerationFailed
	}
	return f.responses[n-1], nil
}

func testCat() domain.CatProfile {
	return domain.CatProfile{
		Name:        "たま",
		Breed:       "スコティッシュフォールド",
		Age:         3,
		Gender:      "オス",
		Personality: "甘えん坊",
	}
}

func promptText(parts []Part) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

func TestTranslator_Translate(t *testing.T) {
	model := &fakeModel{responses: []string{
		`{"behavior": "おもちゃを凝視して腰を落としている", "context": "狩猟本能による待ち伏せ姿勢"}`,
		`{"translation": "あのおもちゃ、ずっと狙ってたニャ！絶対捕まえるニャン！"}`,
		`{"mood": "集中", "face": ">w<"}`,
	}}
	translator := NewTranslator(model, logger.NewDefault())

	out, err := translator.Translate(context.Background(), domain.TranslateInput{
		Cat:  testCat(),
		Text: "おもちゃをじっと見て腰を振っている",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(model.calls) != 3 {
		t.Fatalf("expected 3 model calls, got %d", len(model.calls))
	}
	if out.Translation != "あのおもちゃ、ずっと狙ってたニャ！絶対捕まえるニャン！" {
		t.Errorf("unexpected translation: %q", out.Translation)
	}
	if out.Mood != domain.TranslateMoodFocused {
		t.Errorf("expected mood 集中, got %q", out.Mood)
	}
	if out.MoodFace != ">w<" {
		t.Errorf("expected face >w<, got %q", out.MoodFace)
	}
	if out.Analysis.Behavior == "" || out.Analysis.Context == "" {
		t.Errorf("expected analysis to be carried through, got %+v", out.Analysis)
	}

	// Stage 1 sees the owner's description and the cat profile
	stage1 := promptText(model.calls[0].parts)
	if !strings.Contains(stage1, "おもちゃをじっと見て腰を振っている") {
		t.Error("stage 1 prompt missing the behavior description")
	}
	if !strings.Contains(stage1, "たま") {
		t.Error("stage 1 prompt missing the cat name")
	}

	// Stage 2 embeds stage 1's output
	stage2 := promptText(model.calls[1].parts)
	if !strings.Contains(stage2, "おもちゃを凝視して腰を落としている") {
		t.Error("stage 2 prompt missing the analyzed behavior")
	}
	if !strings.Contains(stage2, "狩猟本能による待ち伏せ姿勢") {
		t.Error("stage 2 prompt missing the analyzed context")
	}
}

// Stage 3 judges mood from the translated text alone: neither the owner's
// original description nor the profile may leak into its prompt.
func TestTranslator_MoodJudgedFromTranslationOnly(t *testing.T) {
	model := &fakeModel{responses: []string{
		`{"behavior": "走り回る", "context": "運動欲求"}`,
		`{"translation": "楽しいニャ！"}`,
		`{"mood": "ごきげん", "face": "^_^"}`,
	}}
	translator := NewTranslator(model, logger.NewDefault())

	_, err := translator.Translate(context.Background(), domain.TranslateInput{
		Cat:  testCat(),
		Text: "部屋中を走り回っている",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stage3 := promptText(model.calls[2].parts)
	if !strings.Contains(stage3, "楽しいニャ！") {
		t.Error("stage 3 prompt missing the translation")
	}
	if strings.Contains(stage3, "部屋中を走り回っている") {
		t.Error("stage 3 prompt leaked the original description")
	}
	if strings.Contains(stage3, "たま") || strings.Contains(stage3, "甘えん坊") {
		t.Error("stage 3 prompt leaked the cat profile")
	}
}

func TestTranslator_ImageGoesFirstInStageOne(t *testing.T) {
	model := &fakeModel{responses: []string{
		`{"behavior": "箱に入っている", "context": "狭い場所を好む習性"}`,
		`{"translation": "この箱は渡さないニャ"}`,
		`{"mood": "集中", "face": ">w<"}`,
	}}
	translator := NewTranslator(model, logger.NewDefault())

	_, err := translator.Translate(context.Background(), domain.TranslateInput{
		Cat:         testCat(),
		Text:        "箱から出てこない",
		ImageBase64: "aW1hZ2VkYXRh",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parts := model.calls[0].parts
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts in stage 1, got %d", len(parts))
	}
	if !parts[0].IsImage() {
		t.Error("expected the image part first")
	}
	if parts[1].IsImage() {
		t.Error("expected the prompt text second")
	}

	// Later stages are text only
	for i, call := range model.calls[1:] {
		for _, p := range call.parts {
			if p.IsImage() {
				t.Errorf("stage %d unexpectedly carries an image", i+2)
			}
		}
	}
}

// A mood outside the five-value set degrades to the default instead of
// failing the whole translation.
func TestTranslator_UnknownMoodFallsBack(t *testing.T) {
	model := &fakeModel{responses: []string{
		`{"behavior": "寝ている", "context": "休息"}`,
		`{"translation": "眠いニャ"}`,
		`{"mood": "purple", "face": "???"}`,
	}}
	translator := NewTranslator(model, logger.NewDefault())

	out, err := translator.Translate(context.Background(), domain.TranslateInput{
		Cat:  testCat(),
		Text: "ずっと寝ている",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Mood != domain.DefaultTranslateMood {
		t.Errorf("expected default mood, got %q", out.Mood)
	}
	if out.MoodFace != domain.TranslateMoodFaces[domain.DefaultTranslateMood] {
		t.Errorf("expected default face, got %q", out.MoodFace)
	}
	if out.Translation != "眠いニャ" {
		t.Errorf("translation should survive the fallback, got %q", out.Translation)
	}
}

// The canonical face map wins over whatever face the model returns.
func TestTranslator_FaceComesFromMoodMap(t *testing.T) {
	model := &fakeModel{responses: []string{
		`{"behavior": "すり寄る", "context": "愛着行動"}`,
		`{"translation": "なでてほしいニャン"}`,
		`{"mood": "甘え", "face": "absolutely wrong"}`,
	}}
	translator := NewTranslator(model, logger.NewDefault())

	out, err := translator.Translate(context.Background(), domain.TranslateInput{
		Cat:  testCat(),
		Text: "足にすり寄ってくる",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.MoodFace != "^w^" {
		t.Errorf("expected ^w^ from the mood map, got %q", out.MoodFace)
	}
}

func TestTranslator_StageFailureAborts(t *testing.T) {
	tests := []struct {
		name      string
		failAt    int
		wantCalls int
	}{
		{name: "stage 1 fails", failAt: 1, wantCalls: 1},
		{name: "stage 2 fails", failAt: 2, wantCalls: 2},
		{name: "stage 3 fails", failAt: 3, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &fakeModel{
				responses: []string{
					`{"behavior": "b", "context": "c"}`,
					`{"translation": "t"}`,
					`{"mood": "ごきげん", "face": "^_^"}`,
				},
				failAt: tt.failAt,
			}
			translator := NewTranslator(model, logger.NewDefault())

			out, err := translator.Translate(context.Background(), domain.TranslateInput{
				Cat:  testCat(),
				Text: "なにかしている",
			})
			if err == nil {
				t.Fatal("expected an error")
			}
			if out != nil {
				t.Error("expected no partial output on failure")
			}
			if len(model.calls) != tt.wantCalls {
				t.Errorf("expected %d calls, got %d", tt.wantCalls, len(model.calls))
			}
		})
	}
}

// A structurally broken stage response aborts with the parse sentinel.
func TestTranslator_MalformedStageResponse(t *testing.T) {
	model := &fakeModel{responses: []string{
		"猫はかわいいですね。",
	}}
	translator := NewTranslator(model, logger.NewDefault())

	_, err := translator.Translate(context.Background(), domain.TranslateInput{
		Cat:  testCat(),
		Text: "なにかしている",
	})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if len(model.calls) != 1 {
		t.Errorf("expected the pipeline to stop after stage 1, got %d calls", len(model.calls))
	}
}
