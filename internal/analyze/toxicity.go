package analyze

import (
	"github.com/sarveshkp/bhashik/internal/profanity"
)

// Toxicity categories form a fixed closed set; every call returns a score
// for each of them.
var ToxicityCategories = []string{
	"toxic", "severe_toxic", "obscene", "threat", "insult", "identity_hate",
}

var threatWords = map[string]struct{}{
	"kill": {}, "destroy": {}, "hurt": {}, "beat": {}, "punch": {},
	"maar": {}, "maarunga": {}, "todunga": {}, "मार": {}, "मारूंगा": {},
}

var insultWords = map[string]struct{}{
	"idiot": {}, "moron": {}, "stupid": {}, "fool": {}, "loser": {},
	"pagal": {}, "bewakoof": {}, "murkha": {}, "पागल": {}, "बेवकूफ": {},
}

// ScoreToxicity derives per-category scores from the profanity filter's
// severity signal plus small targeted word lists. It is deliberately
// conservative: scores reflect lexical evidence only, not context.
func ScoreToxicity(text string) map[string]float64 {
	scores := make(map[string]float64, len(ToxicityCategories))
	for _, cat := range ToxicityCategories {
		scores[cat] = 0
	}

	prof := profanity.Check(text)
	tokens := tokenize(text)

	if prof.IsProfane {
		scores["toxic"] = prof.SeverityScore
		scores["obscene"] = prof.SeverityScore * 0.8
		strong := 0
		for _, m := range prof.Matches {
			if m.Severity == "strong" {
				strong++
			}
		}
		if strong > 0 {
			scores["severe_toxic"] = clamp(0.4 + 0.2*float64(strong))
		}
	}

	threatHits, insultHits := 0, 0
	for _, token := range tokens {
		if _, ok := threatWords[token]; ok {
			threatHits++
		}
		if _, ok := insultWords[token]; ok {
			insultHits++
		}
	}
	if threatHits > 0 {
		scores["threat"] = clamp(0.3 + 0.25*float64(threatHits))
		scores["toxic"] = clamp(scores["toxic"] + 0.2)
	}
	if insultHits > 0 {
		scores["insult"] = clamp(0.35 + 0.2*float64(insultHits))
		scores["toxic"] = clamp(scores["toxic"] + 0.15)
	}

	// Identity hate needs a directed slur plus a target; the lexical
	// approximation is a strong profanity aimed at a second person.
	if prof.IsProfane && scores["severe_toxic"] > 0 && containsSecondPerson(text) {
		scores["identity_hate"] = scores["severe_toxic"] * 0.5
	}

	return scores
}

func containsSecondPerson(text string) bool {
	for _, token := range tokenize(text) {
		switch token {
		case "you", "your", "tu", "tum", "tera", "teri", "तू", "तुम", "nee", "unga":
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ToxicityLabel summarises the category map into a single flag with the
// maximum score, used by handlers that only need a headline verdict.
func ToxicityLabel(scores map[string]float64) (worst string, max float64) {
	worst = "toxic"
	for _, cat := range ToxicityCategories {
		if scores[cat] > max {
			worst, max = cat, scores[cat]
		}
	}
	return worst, max
}
