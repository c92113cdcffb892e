package detect

import (
	"regexp"
	"strings"
)

// Method tags reported by the code-mixing detector, ordered by decreasing
// reliability. The tag set is closed; downstream tooling matches on it.
const (
	MixMethodScriptDiversity = "script_diversity"
	MixMethodTokenAnalysis   = "token_analysis_adaptive"
	MixMethodPatternBased    = "pattern_based"
	MixMethodNone            = "none"
)

// Text length categories used to pick the adaptive token-ratio threshold.
const (
	TextCategoryShort  = "short"
	TextCategoryMedium = "medium"
	TextCategoryLong   = "long"
)

// adaptiveThreshold picks the token-ratio cutoff for the text's length band.
// Short samples are statistically noisier, so they need a higher ratio
// before we call them mixed.
func adaptiveThreshold(runeLen int, cfg *Config) (float64, string) {
	switch {
	case runeLen <= 15:
		return cfg.AdaptiveThresholdShort, TextCategoryShort
	case runeLen <= 30:
		return cfg.AdaptiveThresholdMedium, TextCategoryMedium
	default:
		return cfg.AdaptiveThresholdLong, TextCategoryLong
	}
}

func containsIndicRune(s string) bool {
	for _, r := range s {
		if _, ok := indicScriptOf(r); ok {
			return true
		}
	}
	return false
}

func matchesAny(patterns []*regexp.Regexp, token string) bool {
	for _, p := range patterns {
		if p.MatchString(token) {
			return true
		}
	}
	return false
}

// classifyTokens buckets every whitespace token into indic, english or
// neutral. Native-script characters decide first, then the English marker
// lexicon, then the romanized Indic lexicons. Tokens shorter than two
// letters after punctuation trimming are neutral: one-letter tokens collide
// with too many markers to carry signal.
func classifyTokens(tokens []string) TokenStats {
	stats := TokenStats{TotalWords: len(tokens)}
	if stats.TotalWords == 0 {
		return stats
	}
	for _, raw := range tokens {
		t := trimTokenPunct(raw)
		switch {
		case containsIndicRune(raw):
			stats.IndicTokens++
		case len(t) < 2:
			stats.NeutralTokens++
		case matchesAny(englishMarkerPatterns, t):
			stats.EnglishTokens++
		case tokenIsRomanizedIndic(t):
			stats.IndicTokens++
		default:
			stats.NeutralTokens++
		}
	}
	total := float64(stats.TotalWords)
	stats.IndicRatio = float64(stats.IndicTokens) / total
	stats.EnglishRatio = float64(stats.EnglishTokens) / total
	stats.NeutralRatio = float64(stats.NeutralTokens) / total
	return stats
}

func tokenIsRomanizedIndic(token string) bool {
	for _, lex := range romanizedLexiconOrder {
		for _, p := range romanizedPatterns[lex] {
			if p.MatchString(token) {
				return true
			}
		}
	}
	return false
}

// dominantIndicLexicon picks the romanized lexicon with the most hits,
// resolving ties by the fixed lexicon order. Returns "" when nothing hit.
func dominantIndicLexicon(scores romanizedScores) string {
	best, bestCount := "", 0
	for _, lex := range romanizedLexiconOrder {
		if lex == "generic_indic" {
			continue
		}
		if n := scores.counts[lex]; n > bestCount {
			best, bestCount = lex, n
		}
	}
	if best == "" {
		if scores.counts["generic_indic"] > 0 {
			return "hin"
		}
		return ""
	}
	return lexiconLang[best]
}

// analyzeScriptDiversity decides whether the text carries enough characters
// of both scripts to call it mixed on composition alone. The absolute
// minimums scale with text length so a stray native-script emoji caption
// does not flip a long English post.
func analyzeScriptDiversity(comp ScriptComposition, cfg *Config) ScriptDiversity {
	indicChars := 0
	for _, n := range comp.ScriptCounts {
		indicChars += n
	}
	latinChars := int(comp.LatinPct / 100 * float64(comp.TotalChars))

	minIndic := comp.TotalChars * 5 / 100
	if minIndic < 2 {
		minIndic = 2
	}
	minLatin := comp.TotalChars * 10 / 100
	if minLatin < 3 {
		minLatin = 3
	}

	return ScriptDiversity{
		HasDiversity: indicChars >= minIndic && latinChars >= minLatin &&
			comp.IndicPct >= 10 && comp.LatinPct >= 20,
		IndicChars:    indicChars,
		LatinChars:    latinChars,
		IndicPct:      comp.IndicPct,
		LatinPct:      comp.LatinPct,
		MinIndicChars: minIndic,
		MinLatinChars: minLatin,
	}
}

// DetectCodeMixing runs the three-priority ladder over the text. It never
// fails: empty or whitespace-only input yields not-mixed at confidence 0.
func DetectCodeMixing(text string, comp ScriptComposition, cfg *Config) CodeMixResult {
	tokens := strings.Fields(strings.ToLower(text))
	runeLen := len([]rune(strings.TrimSpace(text)))

	threshold, category := adaptiveThreshold(runeLen, cfg)
	result := CodeMixResult{
		Method:            MixMethodNone,
		TextCategory:      category,
		AdaptiveThreshold: threshold,
		Scripts:           analyzeScriptDiversity(comp, cfg),
	}
	if len(tokens) == 0 {
		return result
	}

	result.Tokens = classifyTokens(tokens)

	scores := scoreRomanizedPatterns(strings.ToLower(text))
	indicMarkers := 0
	var indicMatched []string
	for _, lex := range romanizedLexiconOrder {
		indicMarkers += scores.counts[lex]
		indicMatched = append(indicMatched, scores.matched[lex]...)
	}
	englishMarkers, englishMatched := countMatches(englishMarkerPatterns, strings.ToLower(text))
	result.Markers = MarkerStats{
		IndicMarkers:   indicMarkers,
		EnglishMarkers: englishMarkers,
		IndicMatched:   indicMatched,
		EnglishMatched: englishMatched,
	}

	indicPrimary := dominantIndicLexicon(scores)
	if indicPrimary == "" && result.Tokens.IndicTokens > 0 {
		// Native-script tokens without romanized markers: let the script
		// analyzer name the language.
		if lang, _ := DetectScriptLanguage(text); lang != "" {
			indicPrimary = lang
		}
	}
	if indicPrimary == "" {
		indicPrimary = "hin"
	}

	// Priority 1: both scripts present with real mass. Primary follows
	// script dominance; on the Latin side the token split decides whether
	// the Latin half is romanized Indic or English.
	if result.Scripts.HasDiversity {
		result.IsCodeMixed = true
		result.Method = MixMethodScriptDiversity
		result.Confidence = min64(0.92, 0.60+min64(comp.IndicPct, comp.LatinPct)/100)
		switch {
		case comp.IndicPct > comp.LatinPct:
			result.PrimaryLanguage = indicPrimary
		case result.Tokens.IndicTokens > result.Tokens.EnglishTokens:
			result.PrimaryLanguage = indicPrimary
		default:
			result.PrimaryLanguage = "eng"
		}
		return result
	}

	// Priority 2: both token ratios clear the length-adaptive threshold.
	// Primary is whichever ratio is larger; a tie falls back to raw marker
	// counts.
	if result.Tokens.IndicRatio >= threshold && result.Tokens.EnglishRatio >= threshold {
		result.IsCodeMixed = true
		result.Method = MixMethodTokenAnalysis
		result.Confidence = min64(0.90, 0.50+(result.Tokens.IndicRatio+result.Tokens.EnglishRatio)/2)
		switch {
		case result.Tokens.IndicRatio > result.Tokens.EnglishRatio:
			result.PrimaryLanguage = indicPrimary
		case result.Tokens.EnglishRatio > result.Tokens.IndicRatio:
			result.PrimaryLanguage = "eng"
		case indicMarkers >= englishMarkers:
			result.PrimaryLanguage = indicPrimary
		default:
			result.PrimaryLanguage = "eng"
		}
		return result
	}

	// Priority 3: raw marker counts on both sides, last resort.
	if indicMarkers >= cfg.CodeMixMinMarkers && englishMarkers >= cfg.CodeMixMinMarkers &&
		indicMarkers+englishMarkers >= cfg.CodeMixMinMarkers*2 {
		result.IsCodeMixed = true
		result.Method = MixMethodPatternBased
		result.Confidence = min64(0.80, 0.50+0.05*float64(indicMarkers+englishMarkers))
		if indicMarkers > englishMarkers {
			result.PrimaryLanguage = indicPrimary
		} else {
			result.PrimaryLanguage = "eng"
		}
		return result
	}

	return result
}
