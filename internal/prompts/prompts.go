package prompts

import (
	"fmt"
	"strings"

	"github.com/yuna/nekotalk/internal/domain"
)

// ============================================================================
// 三段階翻訳パイプラインのプロンプト
// ============================================================================

// BuildBehaviorAnalysis returns the stage-1 prompt. The model acts as a
// neutral behavior analyst, not in character as the cat.
func BuildBehaviorAnalysis(cat domain.CatProfile, text string) string {
	return fmt.Sprintf(`猫の行動を客観的に分析してください。

猫の情報:
- 名前: %s
- 猫種: %s
- 年齢: %d歳
- 性別: %s
- 性格: %s

飼い主からの相談: %s

以下のJSON形式のみで回答してください:
{"behavior": "観察された行動の客観的な説明", "context": "その行動が起きる一般的な文脈や理由"}`,
		cat.Name, cat.Breed, cat.Age, cat.Gender, personalityOrNA(cat), text)
}

// BuildFeelingTranslation returns the stage-2 prompt. The model answers in
// first person as the cat, in cat-speech register, reflecting age and
// personality, 2-3 sentences.
func BuildFeelingTranslation(cat domain.CatProfile, analysis domain.AnalysisResult) string {
	return fmt.Sprintf(`あなたは猫の気持ちを翻訳する専門家です。以下の行動分析結果をもとに、猫の一人称（ニャ語）で気持ちを表現してください。

猫の情報:
- 名前: %s（%s、%d歳、%s）
- 性格: %s

行動分析:
- 行動: %s
- 文脈: %s

ルール:
- 「〜ニャ」「〜だニャン」など猫語を使う
- 猫の性格や年齢を反映させる
- 2-3文程度

以下のJSON形式のみで回答してください:
{"translation": "猫語での気持ち表現"}`,
		cat.Name, cat.Breed, cat.Age, cat.Gender, personalityOrNA(cat),
		analysis.Behavior, analysis.Context)
}

// BuildMoodJudgment returns the stage-3 prompt. Only the translated text is
// given: mood is inferred from the phrased feeling alone, with no profile
// context.
func BuildMoodJudgment(translation string) string {
	return fmt.Sprintf(`以下の猫語翻訳から、猫の気分を判定してください。

翻訳: %s

気分は以下の5種類から1つ選んでください:
- 集中: 何かに夢中、狩猟本能
- 甘え: 甘えたい、寂しい、構ってほしい
- 無関心: 興味なし、どうでもいい
- ごきげん: 嬉しい、満足、楽しい
- 不安: 怖い、心配、パニック

また、対応する顔文字も選んでください:
- 集中: >w<
- 甘え: ^w^
- 無関心: -_-
- ごきげん: ^_^
- 不安: O_O

以下のJSON形式のみで回答してください:
{"mood": "気分", "face": "顔文字"}`, translation)
}

// ============================================================================
// 相談機能（単発呼び出し）のプロンプト
// ============================================================================

// BuildConsultSystem returns the consultant system prompt: cat profile,
// role-play instructions, the ten-mood rubric, and the JSON-only contract.
func BuildConsultSystem(cat domain.CatProfile) string {
	return fmt.Sprintf(`あなたは猫の気持ちを翻訳する専門家です。
ユーザーが飼い猫の行動について相談します。猫の一人称（ニャ語）で、その猫になりきって気持ちを伝えてください。

## 猫の情報
- 名前: %s
- 猫種: %s
- 年齢: %d歳
- 性別: %s
- 性格: %s

## 回答ルール
1. 猫の一人称で話す（「〜ニャ」「〜だニャン」など猫語を使う）
2. その猫の性格や年齢を考慮して回答する
3. 以下のJSON形式で回答する:

`+"```json"+`
{
  "feeling": "猫の気持ちを猫語で表現（2-3文）",
  "explanation": "飼い主向けの行動の説明（人間の言葉で）",
  "advice": "飼い主へのアドバイス（人間の言葉で）",
  "mood": "以下から1つ選択: %s"
}
`+"```"+`

必ず上記のJSON形式のみで回答してください。JSON以外のテキストは含めないでください。`,
		cat.Name, cat.Breed, cat.Age, cat.Gender, personalityOrNA(cat),
		consultMoodList())
}

// ConsultTextPrefix prefixes the owner's free-text description.
const ConsultTextPrefix = "猫の行動: "

// ConsultPhotoCaption wraps the owner's caption for a photo consultation.
func ConsultPhotoCaption(caption string) string {
	if caption == "" {
		return "この写真の猫の気持ちを教えてニャ"
	}
	return "写真の猫の行動について: " + caption
}

// ConsultVideoIntro announces the frame batch before the images.
func ConsultVideoIntro(frameCount int) string {
	return fmt.Sprintf("以下は猫の動画から抽出した%d枚のフレームです。動きのパターンから気持ちを読み取ってください。", frameCount)
}

// ConsultVideoNote wraps the optional supplementary note after the frames.
func ConsultVideoNote(note string) string {
	return "補足: " + note
}

func personalityOrNA(cat domain.CatProfile) string {
	if cat.Personality == "" {
		return "特になし"
	}
	return cat.Personality
}

func consultMoodList() string {
	moods := []string{
		string(domain.ConsultMoodCheerful),
		string(domain.ConsultMoodRelaxed),
		string(domain.ConsultMoodNeedy),
		string(domain.ConsultMoodAnxious),
		string(domain.ConsultMoodIrritated),
		string(domain.ConsultMoodExcited),
		string(domain.ConsultMoodAlert),
		string(domain.ConsultMoodBored),
		string(domain.ConsultMoodSleepy),
		string(domain.ConsultMoodHungry),
	}
	return strings.Join(moods, ", ")
}
