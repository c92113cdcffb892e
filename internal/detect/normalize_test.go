package detect

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hif", "hin"},
		{"bho", "hin"},
		{"awa", "hin"},
		{"mag", "hin"},
		{"mai", "hin"},
		{"urd", "hin"},
		{"tcz", "mar"},
		{"hi", "hin"},
		{"en", "eng"},
		{"mr", "mar"},
		{"hin", "hin"},
		{"eng", "eng"},
		{"ido", Unknown},
		{"jbo", Unknown},
		{"vol", Unknown},
		{"zxx", Unknown},
		{"und", Unknown},
		{"", Unknown},
		{Unknown, Unknown},
		{"mar_mixed", "mar_mixed"},
		{"hif_mixed", "hin_mixed"},
		{"hin_transliterated", "hin_transliterated"},
		{"ido_mixed", Unknown},
		{"HIN", "hin"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%q)=%q want=%q", c.in, got, c.want)
		}
	}
}

func TestNormalize_FixedPoint(t *testing.T) {
	inputs := []string{"hif", "hi", "ido", "mar_mixed", "eng", "", "xyz", "urd_mixed"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not a fixed point for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestNormalize_NoChains(t *testing.T) {
	// Every canonical target must itself be canonical already.
	for variant, canonical := range codeNormalization {
		if got := Normalize(canonical); got != canonical {
			t.Fatalf("table chain: %q -> %q -> %q", variant, canonical, got)
		}
	}
}

func TestLanguageClassification(t *testing.T) {
	if !IsIndianLanguage("hin") || !IsIndianLanguage("mar") || !IsIndianLanguage("hi") {
		t.Fatal("expected Indian language classification")
	}
	if IsIndianLanguage("eng") || IsIndianLanguage("unknown") {
		t.Fatal("non-Indian codes misclassified")
	}
	if !IsInternationalLanguage("eng") || !IsInternationalLanguage("fra") {
		t.Fatal("expected international classification")
	}
	if !IsIndianLanguage("mar_mixed") {
		t.Fatal("suffix must not hide the base language")
	}
	if !IsObscureLanguage("ido") || IsObscureLanguage("hin") {
		t.Fatal("obscure set misclassified")
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hin", "Hindi"},
		{"mar", "Marathi"},
		{"eng", "English"},
		{"mar_mixed", "Marathi (code-mixed)"},
		{"hin_romanized", "Hindi (romanized)"},
		{"hin_transliterated", "Hindi (transliterated)"},
		{"unknown", "Unknown"},
	}
	for _, c := range cases {
		if got := DisplayName(c.in); got != c.want {
			t.Fatalf("DisplayName(%q)=%q want=%q", c.in, got, c.want)
		}
	}
}

func TestBuildLanguageInfo(t *testing.T) {
	info := BuildLanguageInfo("mar_mixed", false)
	if !info.IsIndian || !info.IsCodeMixed || info.IsInternational {
		t.Fatalf("bad info for mar_mixed: %+v", info)
	}
	info = BuildLanguageInfo("mar", true)
	if !info.IsRomanized || info.IsCodeMixed {
		t.Fatalf("bad info for romanized mar: %+v", info)
	}
	info = BuildLanguageInfo("eng", false)
	if info.IsIndian || !info.IsInternational || info.IsRomanized {
		t.Fatalf("bad info for eng: %+v", info)
	}
}
