package domain

import (
	"errors"
	"time"
)

// InputType discriminates the consultation payload shape.
type InputType string

const (
	InputTypeText  InputType = "text"
	InputTypePhoto InputType = "photo"
	InputTypeVideo InputType = "video"
)

// MaxVideoFrames bounds the frame batch extracted upstream from a video.
const MaxVideoFrames = 10

// MaxVideoConsultationsPerDay caps video consultations per user per day.
const MaxVideoConsultationsPerDay = 3

// ErrInvalidConsultInput indicates the payload does not match its input type.
var ErrInvalidConsultInput = errors.New("consult input does not match its type")

// ConsultInput is the tagged union over the three consultation shapes.
// Exactly one payload shape is populated, consistent with Type; use one of
// the constructors so the illegal combinations stay unrepresentable.
type ConsultInput struct {
	Cat  CatProfile
	Type InputType

	text   string
	image  string
	frames []string
}

// NewTextConsult builds a text consultation. Text must be non-empty.
func NewTextConsult(cat CatProfile, text string) (ConsultInput, error) {
	if text == "" {
		return ConsultInput{}, ErrInvalidConsultInput
	}
	return ConsultInput{Cat: cat, Type: InputTypeText, text: text}, nil
}

// NewPhotoConsult builds a photo consultation from one base64 image and an
// optional caption.
func NewPhotoConsult(cat CatProfile, imageBase64, caption string) (ConsultInput, error) {
	if imageBase64 == "" {
		return ConsultInput{}, ErrInvalidConsultInput
	}
	return ConsultInput{Cat: cat, Type: InputTypePhoto, image: imageBase64, text: caption}, nil
}

// NewVideoConsult builds a video consultation from an ordered non-empty
// frame batch and an optional supplementary note.
func NewVideoConsult(cat CatProfile, frames []string, note string) (ConsultInput, error) {
	if len(frames) == 0 || len(frames) > MaxVideoFrames {
		return ConsultInput{}, ErrInvalidConsultInput
	}
	copied := make([]string, len(frames))
	copy(copied, frames)
	return ConsultInput{Cat: cat, Type: InputTypeVideo, frames: copied, text: note}, nil
}

// Text returns the free-text component (consult text, photo caption, or
// video note; may be empty for photo/video).
func (in ConsultInput) Text() string { return in.text }

// Image returns the base64 photo for photo consultations.
func (in ConsultInput) Image() string { return in.image }

// Frames returns the ordered frame batch for video consultations.
func (in ConsultInput) Frames() []string { return in.frames }

// ConsultResult is the consultant's final structured answer.
type ConsultResult struct {
	Feeling     string      `json:"feeling"`
	Explanation string      `json:"explanation"`
	Advice      string      `json:"advice"`
	Mood        ConsultMood `json:"mood"`
}

// Consultation is a saved consultation record.
type Consultation struct {
	ID          string    `gorm:"type:text;primaryKey" json:"id"`
	UserID      string    `gorm:"type:text;not null;index:idx_consultations_user" json:"user_id"`
	CatID       string    `gorm:"type:text;not null;index:idx_consultations_cat" json:"cat_id"`
	InputType   InputType `gorm:"type:text;not null;index:idx_consultations_type" json:"input_type"`
	InputText   string    `gorm:"type:text" json:"input_text,omitempty"`
	MediaURL    string    `gorm:"type:text" json:"media_url,omitempty"`
	FrameCount  int       `json:"frame_count,omitempty"`
	Feeling     string    `gorm:"type:text;not null" json:"feeling"`
	Explanation string    `gorm:"type:text;not null" json:"explanation"`
	Advice      string    `gorm:"type:text;not null" json:"advice"`
	Mood        string    `gorm:"type:text;not null" json:"mood"`
	CreatedAt   time.Time `gorm:"index:idx_consultations_created" json:"created_at"`
}

// TableName returns the database table name for Consultation.
func (Consultation) TableName() string {
	return "consultations"
}

// ConsultationView is a consultation decorated with its cat ref.
type ConsultationView struct {
	Consultation
	Cat CatRef `json:"cat"`
}
