package detect

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/abadojack/whatlanggo"
	"github.com/pemistahl/lingua-go"
	"github.com/sirupsen/logrus"
)

// Classifier load states. A failed load is cached so a broken model
// degrades the process to "classifier unavailable" instead of paying the
// build cost again on every request.
type loadState int

const (
	stateNotLoaded loadState = iota
	stateLoading
	stateLoaded
	stateFailed
)

// classifierLanguages is the closed language set the statistical model is
// built over. Indian languages first, then the international set the
// service is expected to meet in practice.
var classifierLanguages = []lingua.Language{
	lingua.English,
	lingua.Hindi,
	lingua.Marathi,
	lingua.Tamil,
	lingua.Telugu,
	lingua.Bengali,
	lingua.Gujarati,
	lingua.Punjabi,
	lingua.Urdu,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Portuguese,
	lingua.Russian,
	lingua.Arabic,
	lingua.Chinese,
	lingua.Japanese,
}

var languageScripts = map[string]string{
	"hin": "Deva", "mar": "Deva", "ben": "Beng", "guj": "Gujr",
	"pan": "Guru", "tam": "Taml", "tel": "Telu", "urd": "Arab",
	"eng": "Latn", "spa": "Latn", "fra": "Latn", "deu": "Latn",
	"por": "Latn", "rus": "Cyrl", "ara": "Arab", "zho": "Hans",
	"jpn": "Jpan",
}

// Classifier wraps the character-n-gram language model behind lazy,
// at-most-once initialization. The model build is expensive (it loads all
// per-language n-gram tables), so construction is deferred until the first
// real prediction and the outcome, success or failure, sticks for the
// process lifetime.
type Classifier struct {
	mu       sync.Mutex
	state    loadState
	detector lingua.LanguageDetector
	loadErr  error
	log      *logrus.Entry
}

func NewClassifier() *Classifier {
	return &Classifier{
		log: logrus.WithField("component", "classifier"),
	}
}

// ensureLoaded transitions NotLoaded to Loaded or Failed exactly once.
// Concurrent first callers serialize on the mutex; later callers see the
// cached state immediately.
func (c *Classifier) ensureLoaded() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case stateLoaded:
		return nil
	case stateFailed:
		return c.loadErr
	}

	c.state = stateLoading
	c.log.Info("loading statistical language model")

	detector, err := buildDetector()
	if err != nil {
		c.state = stateFailed
		c.loadErr = err
		c.log.WithError(err).Error("language model load failed, classifier disabled")
		return err
	}
	c.detector = detector
	c.state = stateLoaded
	c.log.WithField("languages", len(classifierLanguages)).Info("language model ready")
	return nil
}

func buildDetector() (d lingua.LanguageDetector, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("language model build panicked: %v", r)
		}
	}()
	d = lingua.NewLanguageDetectorBuilder().
		FromLanguages(classifierLanguages...).
		WithPreloadedLanguageModels().
		Build()
	return d, nil
}

// Available reports whether the model is usable without triggering a load.
func (c *Classifier) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != stateFailed
}

// lengthBand returns the adaptive confidence threshold and category for the
// given rune length. The raw model under-performs on short input, so short
// text gets a markedly lower bar.
func lengthBand(runeLen int) (float64, string) {
	switch {
	case runeLen <= 10:
		return 0.40, "very_short"
	case runeLen <= 50:
		return 0.55, "short"
	case runeLen <= 200:
		return 0.70, "medium"
	case runeLen <= 500:
		return 0.80, "long"
	default:
		return 0.85, "very_long"
	}
}

func isoCode(lang lingua.Language) string {
	return strings.ToLower(lang.IsoCode639_3().String())
}

// Predict runs the model and returns the top-k candidates with a secondary
// code-mixed signal derived from the shape of the distribution. A model
// failure of any kind yields an unavailable prediction, never an error to
// the caller.
func (c *Classifier) Predict(text string, topK int) Prediction {
	unavailable := Prediction{Language: "", Confidence: 0}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return unavailable
	}
	if err := c.ensureLoaded(); err != nil {
		return unavailable
	}
	if topK <= 0 {
		topK = 3
	}

	runeLen := len([]rune(trimmed))
	threshold, category := lengthBand(runeLen)

	values, err := c.confidenceValues(trimmed)
	if err != nil {
		c.log.WithError(err).Warn("model invocation failed, treating as inconclusive")
		return unavailable
	}
	if len(values) == 0 {
		return unavailable
	}

	sort.SliceStable(values, func(i, j int) bool {
		return values[i].Value() > values[j].Value()
	})
	if values[0].Value() <= 0 {
		// No language got any probability mass (digits, emoji, punctuation).
		return unavailable
	}
	if len(values) > topK {
		values = values[:topK]
	}

	candidates := make([]Candidate, 0, len(values))
	for _, v := range values {
		code := isoCode(v.Language())
		candidates = append(candidates, Candidate{
			Language:   code,
			Script:     languageScripts[code],
			Confidence: v.Value(),
		})
	}

	top := candidates[0]
	mixed := false
	if len(candidates) > 1 {
		if candidates[1].Confidence > 0.20 {
			mixed = true
		}
		if top.Confidence < 0.70 {
			mixed = true
		}
	}

	return Prediction{
		Language:       top.Language,
		Script:         top.Script,
		Confidence:     clamp01(top.Confidence),
		IsCodeMixed:    mixed,
		Candidates:     candidates,
		Threshold:      threshold,
		LengthCategory: category,
	}
}

// confidenceValues isolates the model call behind a panic guard; any model
// panic is a transient, recoverable condition.
func (c *Classifier) confidenceValues(text string) (values []lingua.ConfidenceValue, err error) {
	defer func() {
		if r := recover(); r != nil {
			values = nil
			err = fmt.Errorf("model panicked: %v", r)
		}
	}()
	return c.detector.ComputeLanguageConfidenceValues(text), nil
}

// QuickCheck is a cheap trigram-based sanity check that needs no lazy model
// load. The early romanized path consults it to see whether the heavy
// classifier would overrule a pattern hit before committing to the
// short-circuit.
func QuickCheck(text string) (string, float64, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", 0, false
	}
	info := whatlanggo.Detect(trimmed)
	code := info.Lang.Iso6393()
	if code == "" {
		return "", 0, false
	}
	return code, clamp01(info.Confidence), info.IsReliable()
}
