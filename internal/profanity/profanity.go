// Package profanity flags and masks offensive vocabulary across the
// supported languages, in both native script and romanized form. The
// lexicons are tiered by severity; the aggregate score feeds the toxicity
// scorer.
package profanity

import (
	"strings"
	"unicode"
)

type Severity int

const (
	SeverityMild Severity = iota + 1
	SeverityModerate
	SeverityStrong
)

func (s Severity) String() string {
	switch s {
	case SeverityMild:
		return "mild"
	case SeverityModerate:
		return "moderate"
	case SeverityStrong:
		return "strong"
	default:
		return "none"
	}
}

type entry struct {
	severity Severity
	language string
}

// lexicon maps a lowercased token to its severity and source language.
// Romanized spellings are listed alongside native script because mixed
// text uses both interchangeably.
var lexicon = map[string]entry{
	// English
	"damn":    {SeverityMild, "eng"},
	"hell":    {SeverityMild, "eng"},
	"crap":    {SeverityMild, "eng"},
	"stupid":  {SeverityMild, "eng"},
	"idiot":   {SeverityModerate, "eng"},
	"moron":   {SeverityModerate, "eng"},
	"bastard": {SeverityStrong, "eng"},
	"bitch":   {SeverityStrong, "eng"},
	"asshole": {SeverityStrong, "eng"},

	// Hindi, romanized and native
	"saala":   {SeverityMild, "hin"},
	"sala":    {SeverityMild, "hin"},
	"साला":    {SeverityMild, "hin"},
	"kamina":  {SeverityModerate, "hin"},
	"kameena": {SeverityModerate, "hin"},
	"कमीना":   {SeverityModerate, "hin"},
	"harami":  {SeverityStrong, "hin"},
	"हरामी":   {SeverityStrong, "hin"},
	"kutta":   {SeverityModerate, "hin"},
	"कुत्ता":  {SeverityModerate, "hin"},
	"gadha":   {SeverityMild, "hin"},
	"गधा":     {SeverityMild, "hin"},

	// Marathi
	"veda":   {SeverityMild, "mar"},
	"वेडा":   {SeverityMild, "mar"},
	"murkha": {SeverityModerate, "mar"},
	"मूर्ख":  {SeverityModerate, "mar"},

	// Tamil
	"loosu":  {SeverityMild, "tam"},
	"லூசு":   {SeverityMild, "tam"},
	"mental": {SeverityMild, "tam"},
	"naaye":  {SeverityStrong, "tam"},
	"நாயே":   {SeverityStrong, "tam"},
}

// Match is one flagged token.
type Match struct {
	Word     string `json:"word"`
	Language string `json:"language"`
	Severity string `json:"severity"`
	Position int    `json:"position"`
}

// Result is the filter's output. MaskedText always parallels the input
// token-for-token.
type Result struct {
	IsProfane     bool    `json:"is_profane"`
	Matches       []Match `json:"matches,omitempty"`
	SeverityScore float64 `json:"severity_score"`
	MaskedText    string  `json:"masked_text"`
}

// Check scans text for lexicon hits and returns matches, an aggregate
// severity score in [0,1] and a masked rendering. It never fails; empty
// input yields a clean result.
func Check(text string) Result {
	result := Result{MaskedText: text}
	if strings.TrimSpace(text) == "" {
		result.MaskedText = text
		return result
	}

	tokens := strings.Fields(text)
	masked := make([]string, len(tokens))
	total := 0
	for i, token := range tokens {
		masked[i] = token
		core := trimToken(token)
		if core == "" {
			continue
		}
		e, ok := lexicon[core]
		if !ok {
			continue
		}
		result.Matches = append(result.Matches, Match{
			Word:     core,
			Language: e.language,
			Severity: e.severity.String(),
			Position: i,
		})
		total += int(e.severity)
		masked[i] = maskToken(token, core)
	}

	if len(result.Matches) > 0 {
		result.IsProfane = true
		// Three strong hits saturate the score.
		score := float64(total) / float64(3*int(SeverityStrong))
		if score > 1 {
			score = 1
		}
		result.SeverityScore = score
		result.MaskedText = strings.Join(masked, " ")
	}
	return result
}

func trimToken(token string) string {
	// Marks stay: Indic matras and viramas are combining marks, and
	// trimming them would mangle native-script words.
	return strings.TrimFunc(strings.ToLower(token), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
	})
}

// maskToken replaces the offending core with asterisks, keeping the first
// rune and any surrounding punctuation.
func maskToken(token, core string) string {
	lower := strings.ToLower(token)
	idx := strings.Index(lower, core)
	if idx < 0 {
		return strings.Repeat("*", len([]rune(token)))
	}
	coreRunes := []rune(token[idx : idx+len(core)])
	maskedCore := string(coreRunes[0]) + strings.Repeat("*", len(coreRunes)-1)
	return token[:idx] + maskedCore + token[idx+len(core):]
}
