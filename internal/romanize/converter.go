// Package romanize converts romanized Indic text back into native script on
// a per-token basis, preserving tokens that are better left in Latin
// (English words, acronyms, proper nouns). Detection uses it as a
// corroborating signal; the API exposes it directly for display purposes.
package romanize

import (
	"strings"
	"unicode"

	"github.com/sarveshkp/bhashik/internal/detect"
)

// Token actions recorded in the per-token detail.
const (
	ActionConverted = "converted"
	ActionPreserved = "preserved"
	ActionFailed    = "failed"
)

// TokenDetail records what happened to one input token.
type TokenDetail struct {
	Original  string `json:"original"`
	Output    string `json:"output"`
	Action    string `json:"action"`
	Reason    string `json:"reason,omitempty"`
}

// Stats summarises a conversion run.
type Stats struct {
	TotalTokens     int     `json:"total_tokens"`
	ConvertedTokens int     `json:"converted_tokens"`
	PreservedTokens int     `json:"preserved_tokens"`
	FailedTokens    int     `json:"failed_tokens"`
	ConversionRate  float64 `json:"conversion_rate"`
}

// Result is the converter's output. ConvertedText is always usable: a
// failed conversion degrades to the original token, never to an error.
type Result struct {
	ConvertedText    string        `json:"converted_text"`
	ConversionMethod string        `json:"conversion_method"`
	Statistics       Stats         `json:"statistics"`
	TokenDetails     []TokenDetail `json:"token_details,omitempty"`
}

// commonEnglishWords are high-frequency English tokens preserved as-is even
// when they would transliterate cleanly. The list targets social-media
// text, where these words pepper otherwise Indic sentences.
var commonEnglishWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "you": {}, "are": {}, "was": {},
	"with": {}, "this": {}, "that": {}, "have": {}, "from": {}, "they": {},
	"will": {}, "would": {}, "there": {}, "their": {}, "what": {}, "about": {},
	"which": {}, "when": {}, "your": {}, "can": {}, "said": {}, "all": {},
	"but": {}, "not": {}, "had": {}, "his": {}, "her": {}, "has": {},
	"more": {}, "one": {}, "out": {}, "very": {}, "just": {}, "good": {},
	"time": {}, "day": {}, "happy": {}, "love": {}, "nice": {}, "please": {},
	"thanks": {}, "okay": {}, "yes": {}, "today": {}, "tomorrow": {},
	"guys": {}, "bro": {}, "dude": {}, "movie": {}, "party": {}, "office": {},
}

// Converter applies the hybrid token policy. Zero value is not usable;
// call New.
type Converter struct {
	cfg *detect.Config
}

func New(cfg *detect.Config) *Converter {
	if cfg == nil {
		cfg = detect.DefaultConfig()
	}
	return &Converter{cfg: cfg}
}

// Convert transliterates each token of text into Devanagari unless a
// preservation rule applies. langCode is accepted for interface parity;
// only Devanagari-script targets are supported, and other codes fall back
// to pass-through.
func (c *Converter) Convert(text, langCode string, detailed bool) Result {
	result := Result{ConversionMethod: "rule_based_devanagari"}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		result.ConvertedText = ""
		return result
	}
	if langCode != "" && !targetsDevanagari(langCode) {
		result.ConvertedText = text
		result.ConversionMethod = "passthrough_unsupported_script"
		return result
	}

	tokens := strings.Fields(trimmed)
	out := make([]string, 0, len(tokens))
	result.Statistics.TotalTokens = len(tokens)

	for _, token := range tokens {
		output, action, reason := c.convertToken(token)
		out = append(out, output)
		switch action {
		case ActionConverted:
			result.Statistics.ConvertedTokens++
		case ActionPreserved:
			result.Statistics.PreservedTokens++
		default:
			result.Statistics.FailedTokens++
		}
		if detailed {
			result.TokenDetails = append(result.TokenDetails, TokenDetail{
				Original: token,
				Output:   output,
				Action:   action,
				Reason:   reason,
			})
		}
	}

	if result.Statistics.TotalTokens > 0 {
		result.Statistics.ConversionRate =
			float64(result.Statistics.ConvertedTokens) / float64(result.Statistics.TotalTokens)
	}
	result.ConvertedText = strings.Join(out, " ")
	return result
}

func (c *Converter) convertToken(token string) (output, action, reason string) {
	core, leading, trailing := splitPunct(token)
	if core == "" {
		return token, ActionPreserved, "punctuation"
	}
	if hasNonLatinLetter(core) {
		return token, ActionPreserved, "already_native"
	}

	lower := strings.ToLower(core)
	if c.cfg.PreserveAllCaps && len(core) > 1 && core == strings.ToUpper(core) && hasLetter(core) {
		return token, ActionPreserved, "all_caps"
	}
	if c.cfg.PreserveCapitalized && isCapitalized(core) {
		return token, ActionPreserved, "capitalized"
	}
	if c.cfg.PreserveEnglish && len(lower) >= c.cfg.EnglishWordMinLength {
		if _, ok := commonEnglishWords[lower]; ok {
			return token, ActionPreserved, "english_word"
		}
	}

	converted := detect.TransliterateToDevanagari(lower)
	if converted == lower || !hasDevanagari(converted) {
		return token, ActionFailed, "no_conversion"
	}
	return leading + converted + trailing, ActionConverted, ""
}

func targetsDevanagari(langCode string) bool {
	switch strings.ToLower(langCode) {
	case "hin", "mar", "hi", "mr", "nep", "san":
		return true
	default:
		return false
	}
}

func splitPunct(token string) (core, leading, trailing string) {
	runes := []rune(token)
	start, end := 0, len(runes)
	for start < end && !unicode.IsLetter(runes[start]) && !unicode.IsDigit(runes[start]) {
		start++
	}
	for end > start && !unicode.IsLetter(runes[end-1]) && !unicode.IsDigit(runes[end-1]) {
		end--
	}
	return string(runes[start:end]), string(runes[:start]), string(runes[end:])
}

func hasNonLatinLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z') {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func hasDevanagari(s string) bool {
	for _, r := range s {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}

func isCapitalized(s string) bool {
	runes := []rune(s)
	if len(runes) < 2 {
		return false
	}
	return unicode.IsUpper(runes[0]) && strings.ToLower(string(runes[1:])) == string(runes[1:])
}
