package detect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrTextTooLong rejects input past the configured cap. It is a validation
// error, distinct from a low-confidence result: the text was refused, not
// analyzed.
var ErrTextTooLong = errors.New("text exceeds maximum length")

// Orchestrator method tags outside the ensemble's own set.
const (
	MethodEmptyText           = "empty_text"
	MethodRomanizedEarly      = "romanized_indic_early_detection"
	MethodClassifierVeryHigh  = "glotlid_high_confidence"
	MethodClassifierCodeMixed = "glotlid_code_mixed"
	MethodScriptBased         = "script_based"
	MethodClassifierWithMix   = "glotlid_with_code_mixing"
	MethodScriptCodeMixed     = "script_code_mixed"
	MethodClassifierMedium    = "glotlid_medium_confidence"
	MethodCodeMixMedium       = "code_mixed_medium_confidence"
	MethodRomanizedOverride   = "romanized_over_glotlid"
	MethodRomanizedPattern    = "romanized_pattern"
	MethodClassifierLatin     = "glotlid_latin_dominant"
	MethodCodeMixFallback     = "code_mixing_fallback"
	MethodLatinDefault        = "latin_default_english"
	MethodClassifierLow       = "glotlid_low_confidence"
	MethodScriptTranslit      = "script_transliterated"
	MethodNoDetection         = "no_detection"
	MethodObscureFiltered     = "obscure_filtered"
	MethodObscureRescued      = "obscure_rescued_romanized"

	MethodClassifierVeryShort = "glotlid_very_short"
	MethodScriptVeryShort     = "script_very_short"
	MethodVeryShortNoResult   = "very_short_no_detection"
	MethodClassifierShort     = "glotlid_short_text"
	MethodScriptShort         = "script_short_text"
	MethodRomanizedShort      = "romanized_short_text"
	MethodLatinShortDefault   = "latin_short_default"
	MethodShortNoResult       = "short_no_detection"
)

// Detector is the top-level detection orchestrator. It is stateless across
// requests apart from the shared config and the lazily loaded classifier,
// so a single instance serves all goroutines.
type Detector struct {
	cfg        *Config
	classifier *Classifier
	log        *logrus.Entry
}

// New builds a Detector. A nil config uses the process defaults; tests
// inject a Snapshot-derived fixture instead of mutating shared state.
func New(cfg *Config) *Detector {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Detector{
		cfg:        cfg,
		classifier: NewClassifier(),
		log:        logrus.WithField("component", "detector"),
	}
}

// Config exposes the live configuration for administrative updates.
func (d *Detector) Config() *Config { return d.cfg }

// UpdateConfig applies threshold changes, rejecting the whole batch on any
// unknown key.
func (d *Detector) UpdateConfig(changes map[string]float64) error {
	if err := d.cfg.Update(changes); err != nil {
		return err
	}
	d.log.WithField("keys", len(changes)).Info("detection config updated")
	return nil
}

// Detect returns the compact detection answer. The only error it can
// return is input validation; every analyzable text yields a result, with
// the terminal fallback being ("unknown", 0.3, "no_detection").
func (d *Detector) Detect(text string) (Result, error) {
	detailed, err := d.DetectDetailed(text)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Language:   detailed.Language,
		Confidence: detailed.Confidence,
		Method:     detailed.Method,
	}, nil
}

// DetectDetailed runs the full pipeline and returns the diagnostic
// envelope.
func (d *Detector) DetectDetailed(text string) (*DetailedResult, error) {
	runes := []rune(text)
	if len(runes) > d.cfg.MaxTextLength {
		return nil, fmt.Errorf("%w: %d chars, limit %d", ErrTextTooLong, len(runes), d.cfg.MaxTextLength)
	}

	trimmed := strings.TrimSpace(text)
	runeLen := len([]rune(trimmed))

	result := &DetailedResult{
		TextLength:      runeLen,
		IsShortText:     runeLen <= d.cfg.ShortTextLen,
		IsVeryShortText: runeLen <= d.cfg.VeryShortText,
	}
	if trimmed == "" {
		result.Language = Unknown
		result.Method = MethodEmptyText
		result.Composition = AnalyzeComposition("")
		result.Info = BuildLanguageInfo(Unknown, false)
		return result, nil
	}

	comp := AnalyzeComposition(trimmed)
	result.Composition = comp

	scriptLang, scriptCounts := DetectScriptLanguage(trimmed)
	result.ScriptAnalysis = ScriptAnalysis{DetectedScript: scriptLang, ScriptCounts: scriptCounts}

	codeMix := DetectCodeMixing(trimmed, comp, d.cfg)
	result.CodeMix = &codeMix

	// Romanized detection only applies to Latin-heavy text; native-script
	// input never reaches it.
	var romLang string
	var romConf float64
	if comp.DominantScript == ScriptLatin {
		romLang, romConf = DetectRomanized(trimmed, d.cfg)
	}
	result.Romanized = Guess{Language: romLang, Confidence: romConf, Method: MethodRomanizedPattern}

	// Early romanized path: cheap, high-precision shortcut for clearly
	// romanized Indic text, skipped when a code-mix changes the reading.
	if comp.LatinPct > 60 && comp.IndicPct < 10 && !codeMix.IsCodeMixed &&
		runeLen > d.cfg.EarlyMinLen &&
		romLang != "" && romConf >= d.cfg.RomanizedEarlyThreshold {
		if qLang, qConf, reliable := QuickCheck(trimmed); reliable &&
			qConf >= d.cfg.ClassifierOverrideThreshold && !IsIndianLanguage(qLang) {
			d.log.WithFields(logrus.Fields{
				"romanized":       romLang,
				"quick_language":  qLang,
				"quick_confidence": qConf,
			}).Debug("quick classifier overrides early romanized result")
		} else {
			d.finish(result, romLang, romConf, MethodRomanizedEarly, true)
			return result, nil
		}
	}

	pred := d.classifier.Predict(trimmed, 3)
	result.Classifier = pred

	// Obscure-language filtering: known classifier false positives must not
	// reach users. Latin-dominant text gets one romanized rescue attempt.
	if pred.Language != "" && IsObscureLanguage(pred.Language) && pred.Confidence < d.cfg.HighConfidence {
		d.log.WithFields(logrus.Fields{
			"language":   pred.Language,
			"confidence": pred.Confidence,
		}).Debug("filtering obscure classifier result")
		if comp.DominantScript == ScriptLatin && romLang != "" {
			d.finish(result, romLang, romConf*0.9, MethodObscureRescued, true)
			return result, nil
		}
		d.finish(result, Unknown, pred.Confidence*0.5, MethodObscureFiltered, false)
		return result, nil
	}

	var ensemble *EnsembleResult
	if d.cfg.EnsembleEnabled && pred.Language != "" {
		classifierGuess := Guess{
			Language:    pred.Language,
			Confidence:  pred.Confidence,
			Method:      "glotlid",
			Script:      pred.Script,
			IsCodeMixed: pred.IsCodeMixed,
		}
		fused := Fuse(trimmed, classifierGuess, result.Romanized, d.cfg)
		ensemble = &fused
		result.Ensemble = ensemble
	}

	if result.IsShortText {
		d.shortTextLadder(result, comp, pred, romLang, romConf, scriptLang)
		return result, nil
	}

	// A confident code-mix verdict reframes every other signal: the
	// classifier and romanized results describe components of a blend, not
	// the whole text, so the mix itself is the answer.
	if codeMix.IsCodeMixed && codeMix.Confidence >= d.cfg.HighConfidence &&
		IsIndianLanguage(codeMix.PrimaryLanguage) {
		d.finish(result, codeMix.PrimaryLanguage+"_mixed", codeMix.Confidence, codeMix.Method, false)
		return result, nil
	}

	d.priorityLadder(result, comp, codeMix, pred, ensemble, romLang, romConf, scriptLang)
	return result, nil
}

// priorityLadder is the main decision ladder, evaluated top to bottom with
// the first matching rule winning. The terminal rule always matches, so
// the ladder is total.
func (d *Detector) priorityLadder(result *DetailedResult, comp ScriptComposition,
	codeMix CodeMixResult, pred Prediction, ensemble *EnsembleResult,
	romLang string, romConf float64, scriptLang string) {

	cfg := d.cfg

	// 1. Ensemble result above the minimum combined confidence.
	if ensemble != nil && ensemble.FinalLanguage != "" &&
		ensemble.FinalConfidence >= cfg.EnsembleMinCombined {
		lang := ensemble.FinalLanguage
		if ensemble.IsCodeMixed && codeMix.IsCodeMixed && IsIndianLanguage(lang) {
			lang += "_mixed"
		}
		d.finish(result, lang, ensemble.FinalConfidence, ensemble.Method, romLang == ensemble.FinalLanguage)
		return
	}

	// 2. Near-certain classifier wins outright.
	if pred.Confidence > 0.95 {
		d.finish(result, pred.Language, pred.Confidence, MethodClassifierVeryHigh, false)
		return
	}

	// 3. Classifier itself flags a mix.
	if pred.IsCodeMixed && pred.Confidence > cfg.ClassifierThreshold && pred.Language != "" {
		d.finish(result, pred.Language+"_mixed", pred.Confidence, MethodClassifierCodeMixed, false)
		return
	}

	// 4. Strong native-script presence beats statistics.
	if comp.IndicPct > cfg.StrongScriptPct && scriptLang != "" {
		conf := comp.IndicPct / 100
		if conf < 0.85 {
			conf = 0.85
		}
		d.finish(result, scriptLang, conf, MethodScriptBased, false)
		return
	}

	// 5. High-confidence classifier, cross-checked against code-mixing.
	// When the mix's primary is English the classifier names the Indic
	// component, so its language carries the tag instead.
	if pred.Confidence > cfg.HighConfidence && pred.Language != "" {
		if codeMix.IsCodeMixed && comp.LatinPct > cfg.LatinDominancePct {
			primary := codeMix.PrimaryLanguage
			if primary == "" || primary == "eng" {
				primary = pred.Language
			}
			d.log.WithFields(logrus.Fields{
				"classifier": pred.Language,
				"primary":    primary,
			}).Debug("relabelling high-confidence classifier result as code-mixed")
			d.finish(result, primary+"_mixed", pred.Confidence, MethodClassifierWithMix, false)
			return
		}
		d.finish(result, pred.Language, pred.Confidence, MethodClassifierVeryHigh, false)
		return
	}

	// 6. Indic share sits in the code-mixed band and the composition agrees.
	if comp.IndicPct > cfg.CodeMixedMinPct && comp.IndicPct <= cfg.CodeMixedMaxPct &&
		comp.IsCodeMixed && scriptLang != "" {
		d.finish(result, scriptLang+"_mixed", 0.75, MethodScriptCodeMixed, false)
		return
	}

	// 7. Medium-confidence classifier, corroborated against the code-mixing
	// detector first and the romanized detector second.
	if pred.Confidence > cfg.MediumConfidence && pred.Language != "" {
		if codeMix.IsCodeMixed && comp.LatinPct > cfg.LatinDominancePct {
			primary := codeMix.PrimaryLanguage
			if primary == "" || primary == "eng" {
				primary = pred.Language
			}
			d.log.WithFields(logrus.Fields{
				"classifier":      pred.Language,
				"classifier_conf": pred.Confidence,
				"mix_primary":     codeMix.PrimaryLanguage,
				"mix_conf":        codeMix.Confidence,
			}).Debug("code-mixing detector overrides medium-confidence classifier")
			d.finish(result, primary+"_mixed", 0.80, MethodCodeMixMedium, false)
			return
		}
		if romLang != "" {
			if romConf > pred.Confidence {
				d.log.WithFields(logrus.Fields{
					"classifier":      pred.Language,
					"classifier_conf": pred.Confidence,
					"romanized":       romLang,
					"romanized_conf":  romConf,
				}).Debug("romanized detector overrides medium-confidence classifier")
				d.finish(result, romLang, romConf, MethodRomanizedOverride, true)
				return
			}
			d.log.WithFields(logrus.Fields{
				"classifier":      pred.Language,
				"classifier_conf": pred.Confidence,
				"romanized":       romLang,
				"romanized_conf":  romConf,
			}).Debug("medium-confidence classifier retained over romanized candidate")
		}
		d.finish(result, pred.Language, pred.Confidence, MethodClassifierMedium, false)
		return
	}

	// 8. Very Latin-heavy text: romanized first, classifier only if
	// strictly more confident, then code-mix tagging, then bare English.
	if comp.LatinPct > cfg.LatinDominancePct {
		switch {
		case romLang != "" && romConf >= pred.Confidence:
			d.finish(result, romLang, romConf, MethodRomanizedPattern, true)
		case pred.Language != "" && pred.Confidence > romConf:
			d.finish(result, pred.Language, pred.Confidence, MethodClassifierLatin, false)
		case codeMix.IsCodeMixed && codeMix.PrimaryLanguage != "":
			d.finish(result, codeMix.PrimaryLanguage+"_mixed", codeMix.Confidence, MethodCodeMixFallback, false)
		default:
			d.finish(result, "eng", 0.5, MethodLatinDefault, false)
		}
		return
	}

	// 9. Any classifier answer beats nothing.
	if pred.Language != "" && pred.Language != Unknown {
		d.finish(result, pred.Language, pred.Confidence, MethodClassifierLow, false)
		return
	}

	// 10. Minor but real native-script presence.
	if comp.IndicPct > cfg.MinorScriptMinPct && scriptLang != "" {
		d.finish(result, scriptLang+"_transliterated", 0.6, MethodScriptTranslit, false)
		return
	}

	// 11. Guaranteed terminal state.
	d.finish(result, Unknown, 0.3, MethodNoDetection, false)
}

// shortTextLadder replaces the main ladder for short input, where pattern
// and ensemble signals are statistically meaningless.
func (d *Detector) shortTextLadder(result *DetailedResult, comp ScriptComposition,
	pred Prediction, romLang string, romConf float64, scriptLang string) {

	cfg := d.cfg

	if result.IsVeryShortText {
		switch {
		case pred.Language != "" && pred.Confidence >= cfg.ShortTextClassifierThreshold:
			d.finish(result, pred.Language, pred.Confidence, MethodClassifierVeryShort, false)
		case comp.IndicPct >= cfg.ShortTextScriptPct && scriptLang != "":
			d.finish(result, scriptLang, 0.6, MethodScriptVeryShort, false)
		default:
			d.finish(result, Unknown, 0.3, MethodVeryShortNoResult, false)
		}
		return
	}

	switch {
	case pred.Language != "" && pred.Confidence >= cfg.ShortTextClassifierThreshold:
		d.finish(result, pred.Language, pred.Confidence, MethodClassifierShort, false)
	case comp.IndicPct >= cfg.ShortTextScriptPct && scriptLang != "":
		d.finish(result, scriptLang, 0.65, MethodScriptShort, false)
	case romLang != "" && romConf >= cfg.ShortTextRomanizedThreshold:
		d.finish(result, romLang, romConf, MethodRomanizedShort, true)
	case comp.LatinPct > cfg.LatinDominancePct:
		d.finish(result, "eng", 0.45, MethodLatinShortDefault, false)
	default:
		d.finish(result, Unknown, 0.3, MethodShortNoResult, false)
	}
}

// finish normalizes the chosen code, retains the pre-normalization form
// when they differ, and fills in the language summary.
func (d *Detector) finish(result *DetailedResult, lang string, conf float64, method string, romanized bool) {
	normalized := Normalize(lang)
	if normalized != lang {
		result.OriginalLanguage = lang
	}
	result.Language = normalized
	result.Confidence = clamp01(conf)
	result.Method = method
	result.Info = BuildLanguageInfo(normalized, romanized)
}
