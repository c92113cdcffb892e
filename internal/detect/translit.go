package detect

import "strings"

// Rule-based Latin-to-Devanagari transliteration, used only to corroborate
// the pattern-based romanized detector: text that converts cleanly into the
// native range is much more likely to be genuine romanized Indic than an
// accidental marker-word collision. The mapping is a pragmatic subset of
// the ITRANS scheme; it does not aim for publishable transliterations,
// only for a meaningful converted-character ratio.

type translitRule struct {
	latin       string
	independent string // standalone vowel or consonant with inherent 'a'
	matra       string // dependent vowel sign; empty for consonants
}

// Longest-match-first vowels. The inherent short 'a' after a consonant maps
// to no matra at all.
var devanagariVowels = []translitRule{
	{"aa", "आ", "ा"},
	{"ai", "ऐ", "ै"},
	{"au", "औ", "ौ"},
	{"ee", "ई", "ी"},
	{"ii", "ई", "ी"},
	{"oo", "ऊ", "ू"},
	{"uu", "ऊ", "ू"},
	{"a", "अ", ""},
	{"e", "ए", "े"},
	{"i", "इ", "ि"},
	{"o", "ओ", "ो"},
	{"u", "उ", "ु"},
}

// Longest-match-first consonants.
var devanagariConsonants = []translitRule{
	{"chh", "छ", ""},
	{"bh", "भ", ""},
	{"ch", "च", ""},
	{"dh", "ध", ""},
	{"gh", "घ", ""},
	{"jh", "झ", ""},
	{"kh", "ख", ""},
	{"ph", "फ", ""},
	{"sh", "श", ""},
	{"th", "थ", ""},
	{"b", "ब", ""},
	{"c", "च", ""},
	{"d", "द", ""},
	{"f", "फ", ""},
	{"g", "ग", ""},
	{"h", "ह", ""},
	{"j", "ज", ""},
	{"k", "क", ""},
	{"l", "ल", ""},
	{"m", "म", ""},
	{"n", "न", ""},
	{"p", "प", ""},
	{"q", "क", ""},
	{"r", "र", ""},
	{"s", "स", ""},
	{"t", "त", ""},
	{"v", "व", ""},
	{"w", "व", ""},
	{"x", "क्स", ""},
	{"y", "य", ""},
	{"z", "ज", ""},
}

func matchRule(rules []translitRule, s string) (translitRule, bool) {
	for _, r := range rules {
		if strings.HasPrefix(s, r.latin) {
			return r, true
		}
	}
	return translitRule{}, false
}

// TransliterateToDevanagari converts lowercase Latin text into Devanagari
// using the rule table above. Characters with no mapping pass through
// unchanged, so the caller can measure conversion quality as the fraction
// of output runes landing in the Devanagari block.
func TransliterateToDevanagari(text string) string {
	s := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(s))

	i := 0
	afterConsonant := false
	for i < len(s) {
		rest := s[i:]
		if r, ok := matchRule(devanagariConsonants, rest); ok {
			// A consonant cluster gets a virama between its members.
			if afterConsonant {
				b.WriteString("्")
			}
			b.WriteString(r.independent)
			afterConsonant = true
			i += len(r.latin)
			continue
		}
		if r, ok := matchRule(devanagariVowels, rest); ok {
			if afterConsonant {
				b.WriteString(r.matra)
			} else {
				b.WriteString(r.independent)
			}
			afterConsonant = false
			i += len(r.latin)
			continue
		}
		b.WriteByte(s[i])
		afterConsonant = false
		i++
	}
	return b.String()
}

// devanagariRatio reports what fraction of the output runes landed in the
// Devanagari block.
func devanagariRatio(converted string) float64 {
	count, total := 0, 0
	for _, r := range converted {
		total++
		if isDevanagari(r) {
			count++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}
