package detect

import "fmt"

// Method tags emitted by the fusion engine. The set is closed; downstream
// failure-analysis tooling matches on these exact strings.
const (
	MethodHighConfidence     = "glotlid_preferred_high_confidence"
	MethodClassifierConfGap  = "glotlid_preferred_conf_gap"
	MethodRomanizedConfGap   = "romanized_preferred_conf_gap"
	MethodWeightedClassifier = "ensemble_weighted_glotlid"
	MethodWeightedRomanized  = "ensemble_weighted_romanized"
	MethodLowLatin           = "glotlid_preferred_low_latin"
	MethodClassifierOnly     = "glotlid_only"
	MethodClassifierDefault  = "glotlid_default"
)

// latinLetterPct measures Latin share over alphabetic characters only.
// Unlike the composition percentages it ignores digits, punctuation and
// whitespace, so "ok!!" and "ok" weigh the same.
func latinLetterPct(text string) float64 {
	latin, other := 0, 0
	for _, r := range text {
		switch {
		case isLatinLetter(r):
			latin++
		default:
			if _, ok := indicScriptOf(r); ok {
				other++
			}
		}
	}
	if latin+other == 0 {
		return 0
	}
	return float64(latin) / float64(latin+other) * 100
}

// ensembleWeights picks the component weights for the text's Latin band.
// More Latin shifts weight toward the romanized signal.
func ensembleWeights(latinPct float64, cfg *Config) (classifierW, romanizedW float64) {
	switch {
	case latinPct > cfg.EnsembleLatinHighPct:
		return 0.30, 0.70
	case latinPct > cfg.EnsembleLatinMediumPct:
		return 0.40, 0.60
	default:
		return cfg.EnsembleWeightGlotlid, cfg.EnsembleWeightRoman
	}
}

// Fuse combines the statistical classifier's guess and the romanized
// detector's guess into one decision. The ladder is evaluated top to
// bottom and the first applicable rule wins. Every branch records the
// numeric comparison that triggered it in Explanation; that string is part
// of the contract, not cosmetic logging.
func Fuse(text string, classifier, romanized Guess, cfg *Config) EnsembleResult {
	latinPct := latinLetterPct(text)
	result := EnsembleResult{
		Classifier: classifier,
		Romanized:  romanized,
		Scores: EnsembleScores{
			ClassifierScore: classifier.Confidence,
			RomanizedScore:  romanized.Confidence,
			LatinPct:        latinPct,
		},
	}

	// Rule 1: a very confident classifier wins unconditionally.
	if classifier.Confidence >= cfg.EnsembleHighConfidence {
		result.FinalLanguage = classifier.Language
		result.FinalConfidence = clamp01(classifier.Confidence)
		result.Method = MethodHighConfidence
		result.IsCodeMixed = classifier.IsCodeMixed
		result.Explanation = fmt.Sprintf(
			"classifier confidence %.3f >= high-confidence threshold %.2f",
			classifier.Confidence, cfg.EnsembleHighConfidence)
		return result
	}

	// Rule 2: Latin-dominant text with a romanized candidate gets weighted
	// fusion with a confidence-gap short-circuit.
	if romanized.Language != "" && latinPct > 60 {
		w1, w2 := ensembleWeights(latinPct, cfg)
		combined := classifier.Confidence*w1 + romanized.Confidence*w2
		result.Scores.ClassifierWeight = w1
		result.Scores.RomanizedWeight = w2
		result.Scores.CombinedScore = combined

		gap := classifier.Confidence - romanized.Confidence
		if gap < 0 {
			gap = -gap
		}
		if gap > cfg.EnsembleConfGap {
			if classifier.Confidence > romanized.Confidence {
				result.FinalLanguage = classifier.Language
				result.FinalConfidence = clamp01(classifier.Confidence)
				result.Method = MethodClassifierConfGap
				result.IsCodeMixed = classifier.IsCodeMixed
				result.Explanation = fmt.Sprintf(
					"confidence gap %.3f > %.2f, classifier %.3f beats romanized %.3f",
					gap, cfg.EnsembleConfGap, classifier.Confidence, romanized.Confidence)
			} else {
				result.FinalLanguage = romanized.Language
				result.FinalConfidence = clamp01(romanized.Confidence)
				result.Method = MethodRomanizedConfGap
				result.Explanation = fmt.Sprintf(
					"confidence gap %.3f > %.2f, romanized %.3f beats classifier %.3f",
					gap, cfg.EnsembleConfGap, romanized.Confidence, classifier.Confidence)
			}
			return result
		}

		// Scores are close: language-family tie-break, then raw confidence.
		switch {
		case IsIndianLanguage(romanized.Language) && romanized.Confidence > classifier.Confidence:
			result.FinalLanguage = romanized.Language
			result.FinalConfidence = clamp01(combined)
			result.Method = MethodWeightedRomanized
			result.Explanation = fmt.Sprintf(
				"close scores (gap %.3f), romanized names Indic %q at %.3f > classifier %.3f, combined %.3f (weights %.2f/%.2f)",
				gap, romanized.Language, romanized.Confidence, classifier.Confidence, combined, w1, w2)
		case IsIndianLanguage(classifier.Language) && !IsIndianLanguage(romanized.Language):
			result.FinalLanguage = classifier.Language
			result.FinalConfidence = clamp01(combined)
			result.Method = MethodWeightedClassifier
			result.IsCodeMixed = classifier.IsCodeMixed
			result.Explanation = fmt.Sprintf(
				"close scores (gap %.3f), classifier names Indic %q while romanized %q is not, combined %.3f",
				gap, classifier.Language, romanized.Language, combined)
		case classifier.Confidence >= romanized.Confidence:
			result.FinalLanguage = classifier.Language
			result.FinalConfidence = clamp01(combined)
			result.Method = MethodWeightedClassifier
			result.IsCodeMixed = classifier.IsCodeMixed
			result.Explanation = fmt.Sprintf(
				"close scores (gap %.3f), classifier %.3f >= romanized %.3f, combined %.3f",
				gap, classifier.Confidence, romanized.Confidence, combined)
		default:
			result.FinalLanguage = romanized.Language
			result.FinalConfidence = clamp01(combined)
			result.Method = MethodWeightedRomanized
			result.Explanation = fmt.Sprintf(
				"close scores (gap %.3f), romanized %.3f > classifier %.3f, combined %.3f",
				gap, romanized.Confidence, classifier.Confidence, combined)
		}
		return result
	}

	// Rule 3: not Latin-dominant, the classifier stands alone.
	if latinPct <= 60 {
		result.FinalLanguage = classifier.Language
		result.FinalConfidence = clamp01(classifier.Confidence)
		result.Method = MethodLowLatin
		result.IsCodeMixed = classifier.IsCodeMixed
		result.Explanation = fmt.Sprintf(
			"latin share %.1f%% <= 60%%, trusting classifier %q at %.3f",
			latinPct, classifier.Language, classifier.Confidence)
		return result
	}

	// Rule 4: Latin-dominant but no romanized candidate at all.
	if romanized.Language == "" {
		result.FinalLanguage = classifier.Language
		result.FinalConfidence = clamp01(classifier.Confidence)
		result.Method = MethodClassifierOnly
		result.IsCodeMixed = classifier.IsCodeMixed
		result.Explanation = fmt.Sprintf(
			"no romanized candidate, classifier %q at %.3f",
			classifier.Language, classifier.Confidence)
		return result
	}

	result.FinalLanguage = classifier.Language
	result.FinalConfidence = clamp01(classifier.Confidence)
	result.Method = MethodClassifierDefault
	result.IsCodeMixed = classifier.IsCodeMixed
	result.Explanation = fmt.Sprintf(
		"no ladder rule applied, defaulting to classifier %q at %.3f",
		classifier.Language, classifier.Confidence)
	return result
}
