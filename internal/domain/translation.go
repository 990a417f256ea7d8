package domain

// AnalysisResult is the behavior analyst's output, stage 1 of the
// three-stage translation pipeline.
type AnalysisResult struct {
	Behavior string `json:"behavior"`
	Context  string `json:"context"`
}

// TranslationResult is the feeling translator's output, stage 2.
type TranslationResult struct {
	Translation string `json:"translation"`
}

// MoodResult is the mood judge's output, stage 3.
type MoodResult struct {
	Mood TranslateMood `json:"mood"`
	Face string        `json:"face"`
}

// TranslateInput is the request for the three-stage pipeline.
type TranslateInput struct {
	Cat         CatProfile
	Text        string
	ImageBase64 string
}

// TranslateOutput is the merged result of all three stages.
type TranslateOutput struct {
	Translation string         `json:"translation"`
	Mood        TranslateMood  `json:"mood"`
	MoodFace    string         `json:"moodFace"`
	Analysis    AnalysisResult `json:"analysis"`
}
