package detect

import "strings"

func trimTokenPunct(token string) string {
	return strings.Trim(strings.ToLower(token), `.,!?;:'"()[]{}`)
}

// romanizedScores holds raw lexicon hit counts per language.
type romanizedScores struct {
	counts  map[string]int
	matched map[string][]string
}

func scoreRomanizedPatterns(textLower string) romanizedScores {
	s := romanizedScores{
		counts:  map[string]int{},
		matched: map[string][]string{},
	}
	for _, lex := range romanizedLexiconOrder {
		n, words := countMatches(romanizedPatterns[lex], textLower)
		s.counts[lex] = n
		s.matched[lex] = words
	}
	return s
}

// DetectRomanizedPattern decides whether Latin-script text is a romanized
// Indian language using the marker lexicons alone. It returns the language
// code and a confidence in [0,1], or ("", 0) when nothing qualifies.
//
// A language is detected only when it has at least one hit AND either a
// strong marker is present, or it has two or more hits, or its hit ratio
// clears the per-language minimum while beating the competing language.
func DetectRomanizedPattern(text string) (string, float64) {
	if len(strings.TrimSpace(text)) < 3 {
		return "", 0
	}
	textLower := strings.ToLower(text)
	tokens := strings.Fields(textLower)
	totalWords := len(tokens)
	if totalWords == 0 {
		return "", 0
	}

	scores := scoreRomanizedPatterns(textLower)

	// Generic markers are shared between Marathi and Hindi at half weight;
	// Tamil's lexicon stands alone.
	marathiScore := (float64(scores.counts["marathi"]) + float64(scores.counts["generic_indic"])*0.5) / float64(totalWords)
	hindiScore := (float64(scores.counts["hindi"]) + float64(scores.counts["generic_indic"])*0.5) / float64(totalWords)
	tamilScore := float64(scores.counts["tamil"]) / float64(totalWords)

	var lang string
	var raw float64

	// Tamil first: its endings are the most distinctive. The weak path
	// still has to beat the competing scores; words like "yaar" sit in
	// more than one lexicon and must not hijack a Hindi sentence.
	if scores.counts["tamil"] >= 1 {
		switch {
		case anyWordPresent(tokens, strongTamilMarkers) || scores.counts["tamil"] >= 2:
			lang, raw = "tam", min64(0.95, tamilScore+0.4)
		case tamilScore >= 0.15 && tamilScore > hindiScore && tamilScore > marathiScore:
			lang, raw = "tam", tamilScore+0.3
		}
	}

	if lang == "" && scores.counts["marathi"] >= 1 {
		switch {
		case anyWordPresent(tokens, strongMarathiMarkers) || scores.counts["marathi"] >= 2:
			lang, raw = "mar", min64(0.90, marathiScore+0.3)
		case marathiScore > hindiScore && marathiScore >= 0.2:
			lang, raw = "mar", marathiScore+0.2
		}
	}

	if lang == "" && scores.counts["hindi"] >= 1 {
		switch {
		case anyWordPresent(tokens, strongHindiMarkers) || scores.counts["hindi"] >= 2:
			lang, raw = "hin", min64(0.90, hindiScore+0.3)
		case hindiScore > marathiScore && hindiScore >= 0.2:
			lang, raw = "hin", hindiScore+0.2
		}
	}

	// Generic fallback: enough shared Indic markers without a specific
	// language standing out defaults to Hindi at low confidence.
	if lang == "" && scores.counts["generic_indic"] >= 2 {
		genericRatio := float64(scores.counts["generic_indic"]) / float64(totalWords)
		if genericRatio >= 0.25 {
			lang, raw = "hin", genericRatio+0.1
		}
	}

	if lang == "" {
		return "", 0
	}
	return lang, clamp01(raw)
}

// DetectRomanized is the unified romanized detector. When transliteration
// cross-checking is enabled it converts the text into Devanagari with the
// rule table and blends conversion quality into the pattern confidence;
// otherwise (or when transliteration yields nothing usable) it degrades to
// the pattern-only path. It never fails.
func DetectRomanized(text string, cfg *Config) (string, float64) {
	if !cfg.UseTransliteration {
		return DetectRomanizedPattern(text)
	}
	if len(strings.TrimSpace(text)) < 3 {
		return "", 0
	}

	converted := TransliterateToDevanagari(text)
	ratio := devanagariRatio(converted)

	if ratio >= cfg.TranslitQualityMin {
		patternLang, patternConf := DetectRomanizedPattern(text)
		if patternLang != "" {
			w := cfg.TranslitBlendWeight
			combined := ratio*w + patternConf*(1-w)
			return patternLang, min64(0.95, combined)
		}
		// The rule table converts almost any Latin text, so conversion
		// quality alone proves nothing. The Hindi fallback needs at least
		// one lexicon hit as corroboration.
		scores := scoreRomanizedPatterns(strings.ToLower(text))
		total := 0
		for _, lex := range romanizedLexiconOrder {
			total += scores.counts[lex]
		}
		if total >= 1 {
			return "hin", min64(0.85, ratio+0.2)
		}
		return "", 0
	}
	return DetectRomanizedPattern(text)
}
