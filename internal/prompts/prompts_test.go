package prompts

import (
	"strings"
	"testing"

	"github.com/yuna/nekotalk/internal/domain"
)

func TestBuildBehaviorAnalysis(t *testing.T) {
	cat := domain.CatProfile{Name: "たま", Breed: "雑種", Age: 3, Gender: "オス", Personality: "臆病"}

	p := BuildBehaviorAnalysis(cat, "ソファの下に隠れている")
	for _, want := range []string{"たま", "雑種", "3歳", "オス", "臆病", "ソファの下に隠れている", "behavior", "context"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildBehaviorAnalysis_EmptyPersonality(t *testing.T) {
	cat := domain.CatProfile{Name: "たま", Breed: "雑種", Age: 3, Gender: "オス"}

	p := BuildBehaviorAnalysis(cat, "寝ている")
	if !strings.Contains(p, "特になし") {
		t.Error("empty personality should render as 特になし")
	}
}

func TestBuildMoodJudgment_ListsAllFiveMoods(t *testing.T) {
	p := BuildMoodJudgment("楽しいニャ")
	for mood, face := range domain.TranslateMoodFaces {
		if !strings.Contains(p, string(mood)) {
			t.Errorf("prompt missing mood %q", mood)
		}
		if !strings.Contains(p, face) {
			t.Errorf("prompt missing face %q", face)
		}
	}
}

func TestBuildConsultSystem_ListsAllTenMoods(t *testing.T) {
	cat := domain.CatProfile{Name: "たま", Breed: "雑種", Age: 3, Gender: "オス"}

	p := BuildConsultSystem(cat)
	for mood := range domain.ConsultMoodFaces {
		if !strings.Contains(p, string(mood)) {
			t.Errorf("system prompt missing mood %q", mood)
		}
	}
	if !strings.Contains(p, "feeling") || !strings.Contains(p, "advice") {
		t.Error("system prompt missing the JSON contract fields")
	}
}

func TestConsultPhotoCaption(t *testing.T) {
	if got := ConsultPhotoCaption(""); got != "この写真の猫の気持ちを教えてニャ" {
		t.Errorf("unexpected default caption: %q", got)
	}
	if got := ConsultPhotoCaption("丸まっている"); !strings.Contains(got, "丸まっている") {
		t.Errorf("caption not carried through: %q", got)
	}
}
