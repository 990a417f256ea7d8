package domain

// TranslateMood is one of the five moods the quick translator may assign.
// The set is closed: the pipeline never returns a value outside it.
type TranslateMood string

const (
	TranslateMoodFocused     TranslateMood = "集中"
	TranslateMoodAffection   TranslateMood = "甘え"
	TranslateMoodIndifferent TranslateMood = "無関心"
	TranslateMoodHappy       TranslateMood = "ごきげん"
	TranslateMoodAnxious     TranslateMood = "不安"
)

// TranslateMoodFaces maps each translator mood to its fixed face glyph.
var TranslateMoodFaces = map[TranslateMood]string{
	TranslateMoodFocused:     ">w<",
	TranslateMoodAffection:   "^w^",
	TranslateMoodIndifferent: "-_-",
	TranslateMoodHappy:       "^_^",
	TranslateMoodAnxious:     "O_O",
}

// DefaultTranslateMood is substituted when the model returns a mood outside
// the five-value set.
const DefaultTranslateMood = TranslateMoodHappy

// ConsultMood is one of the ten moods the consultant may assign.
// Disjoint from TranslateMood; the two vocabularies are never merged.
type ConsultMood string

const (
	ConsultMoodCheerful  ConsultMood = "ご機嫌"
	ConsultMoodRelaxed   ConsultMood = "リラックス"
	ConsultMoodNeedy     ConsultMood = "甘えたい"
	ConsultMoodAnxious   ConsultMood = "不安"
	ConsultMoodIrritated ConsultMood = "イライラ"
	ConsultMoodExcited   ConsultMood = "興奮"
	ConsultMoodAlert     ConsultMood = "警戒"
	ConsultMoodBored     ConsultMood = "退屈"
	ConsultMoodSleepy    ConsultMood = "眠い"
	ConsultMoodHungry    ConsultMood = "お腹すいた"
)

// ConsultMoodFaces maps each consultant mood to its fixed face glyph.
var ConsultMoodFaces = map[ConsultMood]string{
	ConsultMoodCheerful:  "^_^",
	ConsultMoodRelaxed:   "-w-",
	ConsultMoodNeedy:     "^w^",
	ConsultMoodAnxious:   "O_O",
	ConsultMoodIrritated: ">_<",
	ConsultMoodExcited:   ">w<",
	ConsultMoodAlert:     "o_o",
	ConsultMoodBored:     "-_-",
	ConsultMoodSleepy:    "=w=",
	ConsultMoodHungry:    "T_T",
}

// DefaultConsultMood is substituted when the model returns a mood outside
// the ten-value set.
const DefaultConsultMood = ConsultMoodCheerful

// IsValidTranslateMood reports whether m is a member of the five-value set.
func IsValidTranslateMood(m string) bool {
	_, ok := TranslateMoodFaces[TranslateMood(m)]
	return ok
}

// IsValidConsultMood reports whether m is a member of the ten-value set.
func IsValidConsultMood(m string) bool {
	_, ok := ConsultMoodFaces[ConsultMood(m)]
	return ok
}
