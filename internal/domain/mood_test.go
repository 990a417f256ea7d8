package domain

import "testing"

func TestTranslateMoodSet(t *testing.T) {
	if len(TranslateMoodFaces) != 5 {
		t.Fatalf("expected 5 translator moods, got %d", len(TranslateMoodFaces))
	}
	for mood, face := range TranslateMoodFaces {
		if !IsValidTranslateMood(string(mood)) {
			t.Errorf("mood %q not recognized as valid", mood)
		}
		if face == "" {
			t.Errorf("mood %q has no face glyph", mood)
		}
	}
	if !IsValidTranslateMood(string(DefaultTranslateMood)) {
		t.Error("default translator mood must be inside the set")
	}
	if IsValidTranslateMood("purple") {
		t.Error("arbitrary strings must not validate")
	}
}

func TestConsultMoodSet(t *testing.T) {
	if len(ConsultMoodFaces) != 10 {
		t.Fatalf("expected 10 consultant moods, got %d", len(ConsultMoodFaces))
	}
	for mood, face := range ConsultMoodFaces {
		if !IsValidConsultMood(string(mood)) {
			t.Errorf("mood %q not recognized as valid", mood)
		}
		if face == "" {
			t.Errorf("mood %q has no face glyph", mood)
		}
	}
	if !IsValidConsultMood(string(DefaultConsultMood)) {
		t.Error("default consultant mood must be inside the set")
	}
}

// The two vocabularies never validate against each other's set except where
// a word happens to exist in both (不安 is the only shared spelling).
func TestMoodVocabulariesAreSeparate(t *testing.T) {
	if IsValidConsultMood("ごきげん") {
		t.Error("translator spelling ごきげん must not be a consultant mood")
	}
	if IsValidTranslateMood("ご機嫌") {
		t.Error("consultant spelling ご機嫌 must not be a translator mood")
	}
	if IsValidTranslateMood("リラックス") {
		t.Error("consultant-only moods must not validate as translator moods")
	}
}
