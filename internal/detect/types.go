package detect

// Dominant script buckets reported by the composition analyzer.
const (
	ScriptIndic = "indic"
	ScriptLatin = "latin"
	ScriptOther = "other"
)

// ScriptComposition is the per-character breakdown of a text into writing
// systems. It is recomputed for every request and never cached.
type ScriptComposition struct {
	TotalChars     int            `json:"total_chars"`
	IndicPct       float64        `json:"indic_percentage"`
	LatinPct       float64        `json:"latin_percentage"`
	NumericPct     float64        `json:"numeric_percentage"`
	PunctuationPct float64        `json:"punctuation_percentage"`
	OtherPct       float64        `json:"other_percentage"`
	ScriptCounts   map[string]int `json:"script_counts"`
	IsCodeMixed    bool           `json:"is_code_mixed"`
	DominantScript string         `json:"dominant_script"`
}

// Guess is a single language candidate produced by one of the detectors.
type Guess struct {
	Language    string  `json:"language"`
	Confidence  float64 `json:"confidence"`
	Method      string  `json:"method"`
	Script      string  `json:"script,omitempty"`
	IsCodeMixed bool    `json:"is_code_mixed,omitempty"`
}

// Candidate is one of the statistical classifier's top-k predictions.
type Candidate struct {
	Language   string  `json:"language"`
	Script     string  `json:"script"`
	Confidence float64 `json:"confidence"`
}

// Prediction is the statistical classifier adapter's output.
type Prediction struct {
	Language       string      `json:"detected_language"`
	Script         string      `json:"script"`
	Confidence     float64     `json:"confidence"`
	IsCodeMixed    bool        `json:"is_code_mixed"`
	Candidates     []Candidate `json:"all_predictions,omitempty"`
	Threshold      float64     `json:"adaptive_threshold"`
	LengthCategory string      `json:"text_length_category"`
}

// EnsembleScores is the per-component score breakdown of a fusion decision.
type EnsembleScores struct {
	ClassifierScore  float64 `json:"glotlid_score"`
	RomanizedScore   float64 `json:"romanized_score"`
	LatinPct         float64 `json:"latin_percentage"`
	CombinedScore    float64 `json:"combined_score"`
	ClassifierWeight float64 `json:"glotlid_weight,omitempty"`
	RomanizedWeight  float64 `json:"romanized_weight,omitempty"`
}

// EnsembleResult is the fusion engine's decision. Explanation carries the
// numeric comparison that triggered the chosen branch; downstream failure
// analysis parses it, so every branch must fill it in.
type EnsembleResult struct {
	FinalLanguage   string         `json:"final_language"`
	FinalConfidence float64        `json:"final_confidence"`
	Method          string         `json:"detection_method"`
	Scores          EnsembleScores `json:"ensemble_scores"`
	Classifier      Guess          `json:"glotlid_prediction"`
	Romanized       Guess          `json:"romanized_prediction"`
	Explanation     string         `json:"decision_explanation"`
	IsCodeMixed     bool           `json:"is_code_mixed"`
}

// TokenStats is the token-level breakdown from the code-mixing detector.
type TokenStats struct {
	TotalWords    int     `json:"total_words"`
	IndicTokens   int     `json:"indic_tokens"`
	EnglishTokens int     `json:"english_tokens"`
	NeutralTokens int     `json:"neutral_tokens"`
	IndicRatio    float64 `json:"indic_ratio"`
	EnglishRatio  float64 `json:"english_ratio"`
	NeutralRatio  float64 `json:"neutral_ratio"`
}

// MarkerStats counts raw lexicon hits for each side of a potential mix.
type MarkerStats struct {
	IndicMarkers   int      `json:"indian_word_count"`
	EnglishMarkers int      `json:"english_word_count"`
	IndicMatched   []string `json:"indian_matched_words,omitempty"`
	EnglishMatched []string `json:"english_matched_words,omitempty"`
}

// ScriptDiversity reports whether both scripts appear with enough mass.
type ScriptDiversity struct {
	HasDiversity  bool    `json:"has_diversity"`
	IndicChars    int     `json:"devanagari_chars"`
	LatinChars    int     `json:"latin_chars"`
	IndicPct      float64 `json:"devanagari_percentage"`
	LatinPct      float64 `json:"latin_percentage"`
	MinIndicChars int     `json:"min_devanagari_required"`
	MinLatinChars int     `json:"min_latin_required"`
}

// CodeMixResult is the code-mixing detector's structured output.
type CodeMixResult struct {
	IsCodeMixed       bool            `json:"is_code_mixed"`
	PrimaryLanguage   string          `json:"primary_language,omitempty"`
	Confidence        float64         `json:"confidence"`
	Method            string          `json:"method"`
	TextCategory      string          `json:"text_category,omitempty"`
	AdaptiveThreshold float64         `json:"adaptive_threshold_used,omitempty"`
	Tokens            TokenStats      `json:"token_analysis"`
	Scripts           ScriptDiversity `json:"script_diversity"`
	Markers           MarkerStats     `json:"pattern_based"`
}

// LanguageInfo summarises what kind of language the final code names.
type LanguageInfo struct {
	IsIndian        bool   `json:"is_indian_language"`
	IsInternational bool   `json:"is_international_language"`
	IsCodeMixed     bool   `json:"is_code_mixed"`
	IsRomanized     bool   `json:"is_romanized"`
	DisplayName     string `json:"language_name"`
}

// ScriptAnalysis wraps the script-based detector's raw output.
type ScriptAnalysis struct {
	DetectedScript string         `json:"detected_script"`
	ScriptCounts   map[string]int `json:"script_counts"`
}

// Result is the compact detection answer.
type Result struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
}

// DetailedResult is the full diagnostic envelope returned when the caller
// asks for detail. It is a read-only snapshot; nothing mutates it after
// construction.
type DetailedResult struct {
	Language         string            `json:"language"`
	Confidence       float64           `json:"confidence"`
	Method           string            `json:"method"`
	TextLength       int               `json:"text_length"`
	IsShortText      bool              `json:"is_short_text"`
	IsVeryShortText  bool              `json:"is_very_short_text"`
	Composition      ScriptComposition `json:"composition"`
	ScriptAnalysis   ScriptAnalysis    `json:"script_analysis"`
	Classifier       Prediction        `json:"glotlid_analysis"`
	Romanized        Guess             `json:"romanized_analysis"`
	Info             LanguageInfo      `json:"language_info"`
	OriginalLanguage string            `json:"original_language,omitempty"`
	Ensemble         *EnsembleResult   `json:"ensemble_analysis,omitempty"`
	CodeMix          *CodeMixResult    `json:"code_mixing_analysis,omitempty"`
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
