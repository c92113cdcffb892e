package detect

import "strings"

// Canonical language-code handling. Every code that leaves the detector
// passes through Normalize so downstream consumers (sentiment, toxicity,
// translation) only ever see canonical three-letter codes or the sentinel
// "unknown". The tables are static and versioned with the code, never
// inferred at runtime.

const Unknown = "unknown"

// codeNormalization maps variant and dialect codes to their canonical
// form. Close Hindi relatives collapse into "hin" because the downstream
// models treat them identically. Two-letter forms map to three-letter.
var codeNormalization = map[string]string{
	"hif": "hin", // Fiji Hindi
	"bho": "hin", // Bhojpuri
	"awa": "hin", // Awadhi
	"mag": "hin", // Magahi
	"mai": "hin", // Maithili
	"urd": "hin", // Urdu, same downstream handling
	"tcz": "mar", // Thado Chin, frequent classifier confusion with Marathi

	"pnb": "pan", // Western Punjabi

	"hi":    "hin",
	"en":    "eng",
	"en-us": "eng",
	"en-gb": "eng",
	"mr": "mar",
	"ta": "tam",
	"te": "tel",
	"bn": "ben",
	"gu": "guj",
	"pa": "pan",
	"ur": "hin",
	"kn": "kan",
	"ml": "mal",
	"or": "ori",
	"si": "sin",
	"es": "spa",
	"fr": "fra",
	"de": "deu",
	"pt": "por",
	"ru": "rus",
	"ar": "ara",
	"zh": "zho",
	"ja": "jpn",
}

// obscureLanguages are codes the statistical classifier is known to
// mis-assign to short or unusual text. They are a false-positive class:
// below the trust threshold they are filtered, never shown to users.
var obscureLanguages = map[string]struct{}{
	"ido": {}, // Ido
	"io":  {},
	"jbo": {}, // Lojban
	"vol": {}, // Volapük
	"ia":  {}, // Interlingua, 2-letter
	"ie":  {}, // Interlingue, 2-letter
	"epo": {}, // Esperanto
	"ina": {}, // Interlingua
	"ile": {}, // Interlingue
	"nov": {}, // Novial
	"lfn": {}, // Lingua Franca Nova
	"tlh": {}, // Klingon
	"avk": {}, // Kotava
	"zxx": {}, // no linguistic content
	"und": {}, // undetermined
	"mis": {}, // uncoded
}

var indianLanguageNames = map[string]string{
	"hin": "Hindi",
	"mar": "Marathi",
	"tam": "Tamil",
	"tel": "Telugu",
	"ben": "Bengali",
	"guj": "Gujarati",
	"pan": "Punjabi",
	"kan": "Kannada",
	"mal": "Malayalam",
	"ori": "Odia",
	"sin": "Sinhala",
	"urd": "Urdu",
	"asm": "Assamese",
	"nep": "Nepali",
	"san": "Sanskrit",
}

var internationalLanguageNames = map[string]string{
	"eng": "English",
	"spa": "Spanish",
	"fra": "French",
	"deu": "German",
	"por": "Portuguese",
	"rus": "Russian",
	"ara": "Arabic",
	"zho": "Chinese",
	"jpn": "Japanese",
	"ita": "Italian",
	"kor": "Korean",
}

// Recognised code suffixes appended by the orchestrator's tagging rules.
var codeSuffixes = []string{"_mixed", "_romanized", "_roman", "_transliterated"}

// splitSuffix separates a tagged code into its base code and suffix.
func splitSuffix(code string) (base, suffix string) {
	for _, s := range codeSuffixes {
		if strings.HasSuffix(code, s) {
			return strings.TrimSuffix(code, s), s
		}
	}
	return code, ""
}

// Normalize canonicalizes a raw detected code, preserving any tag suffix.
// Obscure and constructed-language codes collapse to "unknown" (dropping
// the suffix, since "unknown_mixed" is meaningless). Normalize is a fixed
// point: applying it twice equals applying it once.
func Normalize(code string) string {
	if code == "" {
		return Unknown
	}
	base, suffix := splitSuffix(code)
	base = strings.ToLower(strings.TrimSpace(base))
	if base == "" || base == Unknown {
		return Unknown
	}
	if canonical, ok := codeNormalization[base]; ok {
		base = canonical
	}
	if _, obscure := obscureLanguages[base]; obscure {
		return Unknown
	}
	return base + suffix
}

// IsObscureLanguage reports whether the bare code (suffix ignored) is in
// the known false-positive class.
func IsObscureLanguage(code string) bool {
	base, _ := splitSuffix(strings.ToLower(code))
	_, ok := obscureLanguages[base]
	return ok
}

// IsIndianLanguage reports whether the code (after canonicalization,
// suffix ignored) names a supported Indian language.
func IsIndianLanguage(code string) bool {
	base, _ := splitSuffix(strings.ToLower(code))
	if canonical, ok := codeNormalization[base]; ok {
		base = canonical
	}
	_, ok := indianLanguageNames[base]
	return ok
}

func IsInternationalLanguage(code string) bool {
	base, _ := splitSuffix(strings.ToLower(code))
	if canonical, ok := codeNormalization[base]; ok {
		base = canonical
	}
	_, ok := internationalLanguageNames[base]
	return ok
}

// DisplayName returns a human-readable name for a possibly tagged code.
func DisplayName(code string) string {
	base, suffix := splitSuffix(strings.ToLower(code))
	if canonical, ok := codeNormalization[base]; ok {
		base = canonical
	}
	name := ""
	if n, ok := indianLanguageNames[base]; ok {
		name = n
	} else if n, ok := internationalLanguageNames[base]; ok {
		name = n
	} else if base == Unknown || base == "" {
		return "Unknown"
	} else {
		name = strings.ToUpper(base)
	}
	switch suffix {
	case "_mixed":
		return name + " (code-mixed)"
	case "_romanized", "_roman":
		return name + " (romanized)"
	case "_transliterated":
		return name + " (transliterated)"
	}
	return name
}

// BuildLanguageInfo summarises the final code for API consumers.
func BuildLanguageInfo(code string, isRomanized bool) LanguageInfo {
	_, suffix := splitSuffix(strings.ToLower(code))
	return LanguageInfo{
		IsIndian:        IsIndianLanguage(code),
		IsInternational: IsInternationalLanguage(code),
		IsCodeMixed:     suffix == "_mixed",
		IsRomanized:     isRomanized || suffix == "_romanized" || suffix == "_roman" || suffix == "_transliterated",
		DisplayName:     DisplayName(code),
	}
}
