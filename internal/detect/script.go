package detect

// scriptRange is one closed Unicode block belonging to a supported Indic
// script, tagged with the language most commonly written in it. Devanagari
// is shared by Hindi, Marathi, Sanskrit and Nepali; it maps to Hindi here
// and the romanized/code-mixing detectors refine that choice later.
type scriptRange struct {
	name string
	lang string
	lo   rune
	hi   rune
}

var indicScriptRanges = []scriptRange{
	{"devanagari", "hin", 0x0900, 0x097F},
	{"bengali", "ben", 0x0980, 0x09FF},
	{"gurmukhi", "pan", 0x0A00, 0x0A7F},
	{"gujarati", "guj", 0x0A80, 0x0AFF},
	{"oriya", "ori", 0x0B00, 0x0B7F},
	{"tamil", "tam", 0x0B80, 0x0BFF},
	{"telugu", "tel", 0x0C00, 0x0C7F},
	{"kannada", "kan", 0x0C80, 0x0CFF},
	{"malayalam", "mal", 0x0D00, 0x0D7F},
	{"sinhala", "sin", 0x0D80, 0x0DFF},
}

func isLatinLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isDevanagari(r rune) bool {
	return r >= 0x0900 && r <= 0x097F
}

func indicScriptOf(r rune) (scriptRange, bool) {
	for _, sr := range indicScriptRanges {
		if r >= sr.lo && r <= sr.hi {
			return sr, true
		}
	}
	return scriptRange{}, false
}

// AnalyzeComposition classifies every code point of text into exactly one
// bucket and reports percentage composition. Empty input yields a zeroed
// composition, never an error or a division by zero.
func AnalyzeComposition(text string) ScriptComposition {
	runes := []rune(text)
	comp := ScriptComposition{
		TotalChars:     len(runes),
		ScriptCounts:   map[string]int{},
		DominantScript: ScriptOther,
	}
	if comp.TotalChars == 0 {
		return comp
	}

	var indic, latin, numeric, punct int
	for _, r := range runes {
		switch {
		case isLatinLetter(r):
			latin++
		case r >= '0' && r <= '9':
			numeric++
		case r == '.' || r == ',' || r == '!' || r == '?' || r == ';' || r == ':':
			punct++
		default:
			if sr, ok := indicScriptOf(r); ok {
				indic++
				comp.ScriptCounts[sr.name]++
			}
		}
	}

	total := float64(comp.TotalChars)
	other := comp.TotalChars - indic - latin - numeric - punct
	comp.IndicPct = float64(indic) / total * 100
	comp.LatinPct = float64(latin) / total * 100
	comp.NumericPct = float64(numeric) / total * 100
	comp.PunctuationPct = float64(punct) / total * 100
	comp.OtherPct = float64(other) / total * 100
	comp.IsCodeMixed = indic > 0 && latin > 0

	switch {
	case indic > latin:
		comp.DominantScript = ScriptIndic
	case latin > 0:
		comp.DominantScript = ScriptLatin
	}
	return comp
}

// DetectScriptLanguage guesses the language from native-script characters
// alone: the Indic script with the most characters wins. Returns an empty
// code when the text contains no Indic script at all.
func DetectScriptLanguage(text string) (string, map[string]int) {
	counts := map[string]int{}
	for _, r := range text {
		if sr, ok := indicScriptOf(r); ok {
			counts[sr.name]++
		}
	}
	if len(counts) == 0 {
		return "", counts
	}
	// Walk the range table instead of the map so ties resolve the same way
	// on every call.
	best, bestCount := "", 0
	for _, sr := range indicScriptRanges {
		if n := counts[sr.name]; n > bestCount {
			best, bestCount = sr.lang, n
		}
	}
	return best, counts
}
