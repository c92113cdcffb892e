package detect

import "testing"

func TestDetectCodeMixing_EmptyAndWhitespace(t *testing.T) {
	cfg := DefaultConfig()
	for _, text := range []string{"", "   ", "\t\n"} {
		result := DetectCodeMixing(text, AnalyzeComposition(text), cfg)
		if result.IsCodeMixed || result.Confidence != 0 {
			t.Fatalf("whitespace input %q must not be mixed: %+v", text, result)
		}
	}
}

func TestDetectCodeMixing_TokenPath_IndicDominant(t *testing.T) {
	cfg := DefaultConfig()
	text := "Tu chup bhet yaar kya, guys continue!"
	result := DetectCodeMixing(text, AnalyzeComposition(text), cfg)

	if !result.IsCodeMixed {
		t.Fatalf("expected code-mixed, got %+v", result)
	}
	if result.Method != MixMethodTokenAnalysis {
		t.Fatalf("expected %s, got %s", MixMethodTokenAnalysis, result.Method)
	}
	if result.PrimaryLanguage != "mar" && result.PrimaryLanguage != "hin" {
		t.Fatalf("primary should be mar or hin, got %q", result.PrimaryLanguage)
	}
	if result.Confidence > 0.90 {
		t.Fatalf("token path confidence capped at 0.90, got %.3f", result.Confidence)
	}
	if result.Tokens.IndicTokens == 0 || result.Tokens.EnglishTokens == 0 {
		t.Fatalf("both sides need tokens: %+v", result.Tokens)
	}
}

func TestDetectCodeMixing_TokenPath_EnglishDominant(t *testing.T) {
	// An English sentence with one borrowed filler is still a mix, but the
	// primary language has to be English, not the filler's lexicon.
	cfg := DefaultConfig()
	text := "I really love this movie yaar but the traffic was bad"
	result := DetectCodeMixing(text, AnalyzeComposition(text), cfg)

	if !result.IsCodeMixed {
		t.Fatalf("expected code-mixed, got %+v", result)
	}
	if result.PrimaryLanguage != "eng" {
		t.Fatalf("english-dominant mix must name eng, got %q via %s", result.PrimaryLanguage, result.Method)
	}
	if result.Tokens.EnglishRatio <= result.Tokens.IndicRatio {
		t.Fatalf("fixture should be english-dominant: %+v", result.Tokens)
	}
}

func TestDetectCodeMixing_ScriptDiversityPath(t *testing.T) {
	cfg := DefaultConfig()
	text := "नमस्ते hello friend"
	result := DetectCodeMixing(text, AnalyzeComposition(text), cfg)

	if !result.IsCodeMixed {
		t.Fatalf("expected code-mixed, got %+v", result)
	}
	if result.Method != MixMethodScriptDiversity {
		t.Fatalf("expected %s, got %s", MixMethodScriptDiversity, result.Method)
	}
	if result.Confidence > 0.92 {
		t.Fatalf("script path confidence capped at 0.92, got %.3f", result.Confidence)
	}
	if result.PrimaryLanguage != "hin" {
		t.Fatalf("devanagari side should name hin, got %q", result.PrimaryLanguage)
	}
}

func TestDetectCodeMixing_PureLanguagesNotMixed(t *testing.T) {
	cfg := DefaultConfig()
	for _, text := range []string{
		"just some plain english text here",
		"सूर्य उगवला म्हणून प्रकाश पसरला",
		"Mi aaj khup khush ahe",
	} {
		result := DetectCodeMixing(text, AnalyzeComposition(text), cfg)
		if result.IsCodeMixed {
			t.Fatalf("%q wrongly flagged as mixed via %s", text, result.Method)
		}
	}
}

func TestAdaptiveThreshold_Bands(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		runeLen  int
		want     float64
		category string
	}{
		{1, cfg.AdaptiveThresholdShort, TextCategoryShort},
		{14, cfg.AdaptiveThresholdShort, TextCategoryShort},
		{15, cfg.AdaptiveThresholdShort, TextCategoryShort},
		{16, cfg.AdaptiveThresholdMedium, TextCategoryMedium},
		{29, cfg.AdaptiveThresholdMedium, TextCategoryMedium},
		{30, cfg.AdaptiveThresholdMedium, TextCategoryMedium},
		{31, cfg.AdaptiveThresholdLong, TextCategoryLong},
		{200, cfg.AdaptiveThresholdLong, TextCategoryLong},
	}
	for _, c := range cases {
		got, category := adaptiveThreshold(c.runeLen, cfg)
		if got != c.want || category != c.category {
			t.Fatalf("adaptiveThreshold(%d)=(%.2f,%s) want (%.2f,%s)",
				c.runeLen, got, category, c.want, c.category)
		}
	}
}

func TestClassifyTokens(t *testing.T) {
	stats := classifyTokens([]string{"tu", "chup", "guys", "continue", "zzqqx"})
	if stats.IndicTokens != 2 {
		t.Fatalf("expected 2 indic tokens, got %d", stats.IndicTokens)
	}
	if stats.EnglishTokens != 2 {
		t.Fatalf("expected 2 english tokens, got %d", stats.EnglishTokens)
	}
	if stats.NeutralTokens != 1 {
		t.Fatalf("expected 1 neutral token, got %d", stats.NeutralTokens)
	}
	sum := stats.IndicRatio + stats.EnglishRatio + stats.NeutralRatio
	if sum < 0.99 || sum > 1.01 {
		t.Fatalf("ratios must sum to 1, got %.3f", sum)
	}
}
