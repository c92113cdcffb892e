package detect

import "testing"

func TestDetectRomanizedPattern(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		want    string
		minConf float64
	}{
		{"romanized marathi", "Mi aaj khup khush ahe!", "mar", 0.8},
		{"romanized hindi", "Yaar kya kar raha hai tu", "hin", 0.8},
		{"romanized tamil", "Naan romba happy irukku", "tam", 0.8},
		{"plain english", "This is a wonderful product", "", 0},
		{"too short", "hi", "", 0},
		{"empty", "", "", 0},
	}
	for _, c := range cases {
		lang, conf := DetectRomanizedPattern(c.text)
		if lang != c.want {
			t.Fatalf("%s: lang=%q want=%q (conf=%.3f)", c.name, lang, c.want, conf)
		}
		if conf < c.minConf {
			t.Fatalf("%s: conf=%.3f want>=%.2f", c.name, conf, c.minConf)
		}
		if conf < 0 || conf > 1 {
			t.Fatalf("%s: confidence out of range: %.3f", c.name, conf)
		}
	}
}

func TestDetectRomanizedPattern_TamilPrecedence(t *testing.T) {
	// Tamil endings are distinctive enough to win even when generic markers
	// also fire.
	lang, conf := DetectRomanizedPattern("naan inniki romba busy ka")
	if lang != "tam" {
		t.Fatalf("expected tam, got %q at %.3f", lang, conf)
	}
}

func TestDetectRomanizedPattern_SharedMarkerDoesNotHijack(t *testing.T) {
	// "yaar" sits in both the Tamil and Hindi lexicons. A single shared
	// hit must lose to the language whose markers dominate the sentence.
	lang, conf := DetectRomanizedPattern("yaar kya scene hai")
	if lang != "hin" {
		t.Fatalf("expected hin, got %q at %.3f", lang, conf)
	}
	if conf < 0.8 {
		t.Fatalf("expected confident hindi result, got %.3f", conf)
	}
}

func TestDetectRomanized_BlendsTransliteration(t *testing.T) {
	cfg := DefaultConfig()
	lang, conf := DetectRomanized("Mi aaj khup khush ahe!", cfg)
	if lang != "mar" {
		t.Fatalf("expected mar, got %q", lang)
	}
	if conf < cfg.RomanizedEarlyThreshold {
		t.Fatalf("blended confidence %.3f below early threshold %.2f", conf, cfg.RomanizedEarlyThreshold)
	}
	if conf > 0.95 {
		t.Fatalf("blended confidence must be capped at 0.95, got %.3f", conf)
	}
}

func TestDetectRomanized_NoFalsePositiveOnEnglish(t *testing.T) {
	// English converts through the rule table too, so conversion quality
	// alone must never produce a Hindi verdict.
	cfg := DefaultConfig()
	lang, conf := DetectRomanized("This is a wonderful product and I love it", cfg)
	if lang != "" || conf != 0 {
		t.Fatalf("english text misdetected as %q at %.3f", lang, conf)
	}
}

func TestDetectRomanized_PatternOnlyWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UseTransliteration = false
	lang, _ := DetectRomanized("Mi aaj khup khush ahe!", cfg)
	if lang != "mar" {
		t.Fatalf("expected mar via pattern-only path, got %q", lang)
	}
}

func TestTransliterateToDevanagari(t *testing.T) {
	got := TransliterateToDevanagari("namaste")
	if got != "नमस्ते" {
		t.Fatalf("TransliterateToDevanagari(namaste)=%q want नमस्ते", got)
	}
}

func TestDevanagariRatio(t *testing.T) {
	if r := devanagariRatio("नमस्ते"); r != 1 {
		t.Fatalf("all-devanagari output must yield 1, got %.3f", r)
	}
	if r := devanagariRatio(""); r != 0 {
		t.Fatalf("empty output must yield 0, got %.3f", r)
	}
	if r := devanagariRatio("abc"); r != 0 {
		t.Fatalf("latin output must yield 0, got %.3f", r)
	}
}
