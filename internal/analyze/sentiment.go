// Package analyze provides the lightweight sentiment and toxicity scoring
// that runs after language detection. Both scorers are total functions:
// any text yields a well-formed result.
package analyze

import (
	"strings"
	"unicode"
)

// Sentiment labels form a closed set.
const (
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
	LabelPositive = "positive"
)

// SentimentResult is the scorer's output. ModelUsed names the lexicon that
// produced the verdict so callers can tell multilingual results apart.
type SentimentResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	ModelUsed  string  `json:"model_used"`
}

// Valence lexicons. Values are in [-1, 1]; magnitude encodes strength.
// The multilingual table carries romanized and native-script Indic words
// so code-mixed text scores on both halves.
var englishValence = map[string]float64{
	"good": 0.6, "great": 0.8, "awesome": 0.9, "excellent": 0.9,
	"wonderful": 0.9, "amazing": 0.9, "love": 0.8, "like": 0.4,
	"happy": 0.7, "nice": 0.5, "best": 0.8, "fantastic": 0.9,
	"enjoy": 0.6, "beautiful": 0.7, "perfect": 0.9, "thanks": 0.5,
	"recommend": 0.6, "fun": 0.6, "cool": 0.5, "glad": 0.6,

	"bad": -0.6, "terrible": -0.9, "awful": -0.9, "horrible": -0.9,
	"hate": -0.8, "worst": -0.9, "sad": -0.6, "angry": -0.7,
	"disappointed": -0.7, "poor": -0.5, "boring": -0.5, "ugly": -0.6,
	"annoying": -0.6, "useless": -0.7, "waste": -0.6, "broken": -0.5,
	"slow": -0.4, "wrong": -0.4, "problem": -0.4, "never": -0.3,
}

var indicValence = map[string]float64{
	// Romanized
	"khush": 0.7, "khushi": 0.7, "mast": 0.7, "badhiya": 0.7,
	"accha": 0.6, "achha": 0.6, "acha": 0.6, "sundar": 0.6,
	"zabardast": 0.9, "kamaal": 0.8, "maja": 0.7, "mazaa": 0.7,
	"dhanyawad": 0.5, "shukriya": 0.5, "chhan": 0.6, "romba": 0.2,
	"nalla": 0.6, "semma": 0.8, "superu": 0.7,

	"bura": -0.6, "kharab": -0.6, "bekar": -0.7, "bakwas": -0.8,
	"ganda": -0.6, "dukhi": -0.6, "naraz": -0.6, "bore": -0.4,
	"mosam": -0.3, "kashtam": -0.6, "vaippu": -0.4,

	// Native script
	"खुश":    0.7,
	"अच्छा":  0.6,
	"सुंदर":  0.6,
	"मस्त":   0.7,
	"छान":    0.6,
	"बुरा":   -0.6,
	"खराब":   -0.6,
	"बेकार":  -0.7,
	"बकवास":  -0.8,
	"दुखी":   -0.6,
	"நல்ல":   0.6,
	"மோசம்":  -0.6,
}

var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "nahi": {}, "nahin": {}, "na": {},
	"mat": {}, "nako": {}, "illa": {}, "illai": {}, "नहीं": {}, "नको": {},
}

// PredictSentiment scores text against the valence lexicons. The language
// code (normalized, suffix allowed) picks the lexicon mix; unknown or
// empty codes use both.
func PredictSentiment(text, language string) SentimentResult {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return SentimentResult{Label: LabelNeutral, Confidence: 0.5, ModelUsed: "valence_lexicon"}
	}

	useEnglish, useIndic, model := lexiconMix(language)

	var score float64
	hits := 0
	negate := false
	for _, token := range tokens {
		if _, ok := negators[token]; ok {
			negate = true
			continue
		}
		v, ok := 0.0, false
		if useEnglish {
			v, ok = englishValence[token]
		}
		if !ok && useIndic {
			v, ok = indicValence[token]
		}
		if !ok {
			continue
		}
		if negate {
			v = -v
			negate = false
		}
		score += v
		hits++
	}

	if hits == 0 {
		return SentimentResult{Label: LabelNeutral, Confidence: 0.5, ModelUsed: model}
	}

	avg := score / float64(hits)
	label := LabelNeutral
	switch {
	case avg > 0.15:
		label = LabelPositive
	case avg < -0.15:
		label = LabelNegative
	}

	// Confidence grows with both valence strength and hit coverage.
	coverage := float64(hits) / float64(len(tokens))
	confidence := 0.5 + 0.4*abs(avg) + 0.1*coverage
	if confidence > 0.99 {
		confidence = 0.99
	}
	return SentimentResult{Label: label, Confidence: confidence, ModelUsed: model}
}

func lexiconMix(language string) (useEnglish, useIndic bool, model string) {
	base := strings.ToLower(language)
	if i := strings.IndexByte(base, '_'); i > 0 {
		// Mixed tags score on both lexicons.
		return true, true, "valence_lexicon_multilingual"
	}
	switch base {
	case "eng":
		return true, false, "valence_lexicon_english"
	case "hin", "mar", "tam", "tel", "ben", "guj", "pan", "kan", "mal":
		return true, true, "valence_lexicon_multilingual"
	default:
		return true, true, "valence_lexicon"
	}
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		core := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
		})
		if core != "" {
			out = append(out, core)
		}
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
