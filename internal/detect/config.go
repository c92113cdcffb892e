package detect

import (
	"fmt"
	"sort"
)

// Config holds every tunable threshold of the detection pipeline. A single
// process-wide instance backs the default Detector, but every constructor
// accepts an override so tests can inject fixtures without touching shared
// state.
//
// Updates via Update are whitelisted by key; reads are deliberately not
// snapshotted per request, so an administrative update racing an in-flight
// detection may observe a blend of old and new values. That is accepted and
// documented behaviour, not a bug to fix with per-request copies.
type Config struct {
	MinTextLength int     // shortest text the classifier will look at
	MaxTextLength int     // hard validation cap; longer input is rejected
	ShortTextLen  int     // at/below this, the short-text sub-ladder applies
	VeryShortText int     // at/below this, almost nothing but the classifier is trusted
	EarlyMinLen   int     // romanized early detection disabled at/below this length

	ClassifierThreshold          float64 // base confidence floor for the statistical model
	HighConfidence               float64
	MediumConfidence             float64
	LowConfidence                float64
	ClassifierOverrideThreshold  float64 // classifier confidence that overrides a romanized hit
	RomanizedEarlyThreshold      float64 // romanized confidence for the early-return path
	ShortTextRomanizedThreshold  float64
	ShortTextClassifierThreshold float64
	ShortTextScriptPct           float64

	StrongScriptPct   float64 // % Indic chars for script-only detection
	CodeMixedMinPct   float64
	CodeMixedMaxPct   float64
	MinorScriptMinPct float64
	MinorScriptMaxPct float64
	LatinDominancePct float64

	CodeMixTokenThreshold      float64
	CodeMixMinMarkers          int
	SoftCodeMixThreshold       float64
	AggressiveCodeMixThreshold float64
	AdaptiveThresholdShort     float64 // texts up to 15 chars
	AdaptiveThresholdMedium    float64 // 16-30 chars
	AdaptiveThresholdLong      float64 // 31+ chars

	EnsembleEnabled        bool
	EnsembleHighConfidence float64 // classifier wins outright above this
	EnsembleWeightGlotlid  float64
	EnsembleWeightRoman    float64
	EnsembleMinCombined    float64
	EnsembleConfGap        float64
	EnsembleLatinHighPct   float64
	EnsembleLatinMediumPct float64

	UseTransliteration   bool    // cross-validate romanized hits via transliteration
	TranslitQualityMin   float64 // fraction of output runes that must land in the native range
	TranslitBlendWeight  float64 // weight of the transliteration ratio in the blended score
	PreserveEnglish      bool    // hybrid converter: keep English tokens as-is
	PreserveCapitalized  bool
	PreserveAllCaps      bool
	EnglishWordMinLength int
	MinConversionConf    float64
}

// DefaultConfig returns the tuned production defaults. The magic values are
// carried over from live-traffic calibration; the ensemble Latin bands and
// the 0.30 confidence gap in particular have no principled derivation and
// are exposed here so they can be re-tuned without code changes.
func DefaultConfig() *Config {
	return &Config{
		MinTextLength: 3,
		MaxTextLength: 50000,
		ShortTextLen:  10,
		VeryShortText: 5,
		EarlyMinLen:   8,

		ClassifierThreshold:          0.5,
		HighConfidence:               0.8,
		MediumConfidence:             0.6,
		LowConfidence:                0.4,
		ClassifierOverrideThreshold:  0.9,
		RomanizedEarlyThreshold:      0.75,
		ShortTextRomanizedThreshold:  0.85,
		ShortTextClassifierThreshold: 0.4,
		ShortTextScriptPct:           25,

		StrongScriptPct:   50,
		CodeMixedMinPct:   20,
		CodeMixedMaxPct:   50,
		MinorScriptMinPct: 5,
		MinorScriptMaxPct: 20,
		LatinDominancePct: 70,

		CodeMixTokenThreshold:      0.15,
		CodeMixMinMarkers:          2,
		SoftCodeMixThreshold:       0.05,
		AggressiveCodeMixThreshold: 0.15,
		AdaptiveThresholdShort:     0.12,
		AdaptiveThresholdMedium:    0.10,
		AdaptiveThresholdLong:      0.08,

		EnsembleEnabled:        true,
		EnsembleHighConfidence: 0.90,
		EnsembleWeightGlotlid:  0.60,
		EnsembleWeightRoman:    0.40,
		EnsembleMinCombined:    0.65,
		EnsembleConfGap:        0.30,
		EnsembleLatinHighPct:   80,
		EnsembleLatinMediumPct: 70,

		UseTransliteration:   true,
		TranslitQualityMin:   0.30,
		TranslitBlendWeight:  0.60,
		PreserveEnglish:      true,
		PreserveCapitalized:  true,
		PreserveAllCaps:      true,
		EnglishWordMinLength: 2,
		MinConversionConf:    0.3,
	}
}

// configSetters maps the external (wire) key of every updatable threshold to
// its setter. Boolean fields treat values > 0.5 as true. Keys unknown to
// this table are rejected, never silently dropped.
var configSetters = map[string]func(*Config, float64){
	"min_text_length":                    func(c *Config, v float64) { c.MinTextLength = int(v) },
	"max_text_length":                    func(c *Config, v float64) { c.MaxTextLength = int(v) },
	"short_text_threshold":               func(c *Config, v float64) { c.ShortTextLen = int(v) },
	"very_short_text_threshold":          func(c *Config, v float64) { c.VeryShortText = int(v) },
	"disable_early_detection_threshold":  func(c *Config, v float64) { c.EarlyMinLen = int(v) },
	"glotlid_threshold":                  func(c *Config, v float64) { c.ClassifierThreshold = v },
	"high_confidence_threshold":          func(c *Config, v float64) { c.HighConfidence = v },
	"medium_confidence_threshold":        func(c *Config, v float64) { c.MediumConfidence = v },
	"low_confidence_threshold":           func(c *Config, v float64) { c.LowConfidence = v },
	"glotlid_override_threshold":         func(c *Config, v float64) { c.ClassifierOverrideThreshold = v },
	"romanized_early_detection_threshold": func(c *Config, v float64) { c.RomanizedEarlyThreshold = v },
	"short_text_romanized_threshold":     func(c *Config, v float64) { c.ShortTextRomanizedThreshold = v },
	"short_text_glotlid_threshold":       func(c *Config, v float64) { c.ShortTextClassifierThreshold = v },
	"short_text_script_threshold":        func(c *Config, v float64) { c.ShortTextScriptPct = v },
	"strong_script_threshold":            func(c *Config, v float64) { c.StrongScriptPct = v },
	"code_mixed_min_threshold":           func(c *Config, v float64) { c.CodeMixedMinPct = v },
	"code_mixed_max_threshold":           func(c *Config, v float64) { c.CodeMixedMaxPct = v },
	"minor_script_min_threshold":         func(c *Config, v float64) { c.MinorScriptMinPct = v },
	"minor_script_max_threshold":         func(c *Config, v float64) { c.MinorScriptMaxPct = v },
	"latin_dominance_threshold":          func(c *Config, v float64) { c.LatinDominancePct = v },
	"code_mixed_token_threshold":         func(c *Config, v float64) { c.CodeMixTokenThreshold = v },
	"code_mixed_min_markers":             func(c *Config, v float64) { c.CodeMixMinMarkers = int(v) },
	"soft_code_mixing_threshold":         func(c *Config, v float64) { c.SoftCodeMixThreshold = v },
	"aggressive_code_mixing_threshold":   func(c *Config, v float64) { c.AggressiveCodeMixThreshold = v },
	"adaptive_threshold_short_text":      func(c *Config, v float64) { c.AdaptiveThresholdShort = v },
	"adaptive_threshold_medium_text":     func(c *Config, v float64) { c.AdaptiveThresholdMedium = v },
	"adaptive_threshold_long_text":       func(c *Config, v float64) { c.AdaptiveThresholdLong = v },
	"ensemble_enabled":                   func(c *Config, v float64) { c.EnsembleEnabled = v > 0.5 },
	"glotlid_high_confidence_threshold":  func(c *Config, v float64) { c.EnsembleHighConfidence = v },
	"ensemble_weight_glotlid_default":    func(c *Config, v float64) { c.EnsembleWeightGlotlid = v },
	"ensemble_weight_romanized_default":  func(c *Config, v float64) { c.EnsembleWeightRoman = v },
	"ensemble_min_combined_confidence":   func(c *Config, v float64) { c.EnsembleMinCombined = v },
	"ensemble_conf_gap_threshold":        func(c *Config, v float64) { c.EnsembleConfGap = v },
	"ensemble_latin_threshold_high":      func(c *Config, v float64) { c.EnsembleLatinHighPct = v },
	"ensemble_latin_threshold_medium":    func(c *Config, v float64) { c.EnsembleLatinMediumPct = v },
	"use_indic_nlp_enhanced":             func(c *Config, v float64) { c.UseTransliteration = v > 0.5 },
	"transliteration_quality_threshold":  func(c *Config, v float64) { c.TranslitQualityMin = v },
	"transliteration_blend_weight":       func(c *Config, v float64) { c.TranslitBlendWeight = v },
	"preserve_english_tokens":            func(c *Config, v float64) { c.PreserveEnglish = v > 0.5 },
	"preserve_capitalized_words":         func(c *Config, v float64) { c.PreserveCapitalized = v > 0.5 },
	"preserve_all_caps":                  func(c *Config, v float64) { c.PreserveAllCaps = v > 0.5 },
	"english_word_min_length":            func(c *Config, v float64) { c.EnglishWordMinLength = int(v) },
	"min_conversion_confidence":          func(c *Config, v float64) { c.MinConversionConf = v },
}

// Update applies the given threshold changes. The whole update is rejected
// if any key is unknown, so a typo cannot half-apply an operator's change.
func (c *Config) Update(changes map[string]float64) error {
	unknown := make([]string, 0)
	for key := range changes {
		if _, ok := configSetters[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown detection config keys: %v", unknown)
	}
	for key, value := range changes {
		configSetters[key](c, value)
	}
	return nil
}

// Keys returns the sorted whitelist of updatable config keys.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(configSetters))
	for k := range configSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy, handy for tests that tweak single thresholds.
func (c *Config) Snapshot() Config {
	return *c
}
