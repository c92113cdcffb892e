package detect

import (
	"sync"
	"testing"
)

func TestLengthBand_Boundaries(t *testing.T) {
	cases := []struct {
		runeLen  int
		want     float64
		category string
	}{
		{1, 0.40, "very_short"},
		{10, 0.40, "very_short"},
		{11, 0.55, "short"},
		{50, 0.55, "short"},
		{51, 0.70, "medium"},
		{200, 0.70, "medium"},
		{201, 0.80, "long"},
		{500, 0.80, "long"},
		{501, 0.85, "very_long"},
	}
	for _, c := range cases {
		got, category := lengthBand(c.runeLen)
		if got != c.want || category != c.category {
			t.Fatalf("lengthBand(%d)=(%.2f,%s) want (%.2f,%s)",
				c.runeLen, got, category, c.want, c.category)
		}
	}
}

func TestClassifier_EmptyInput(t *testing.T) {
	c := NewClassifier()
	pred := c.Predict("", 3)
	if pred.Language != "" || pred.Confidence != 0 {
		t.Fatalf("empty input must be unavailable, got %+v", pred)
	}
	pred = c.Predict("   \t ", 3)
	if pred.Language != "" {
		t.Fatalf("whitespace input must be unavailable, got %+v", pred)
	}
}

func TestClassifier_English(t *testing.T) {
	c := NewClassifier()
	pred := c.Predict("This is a wonderful product and the service was excellent", 3)
	if pred.Language != "eng" {
		t.Fatalf("expected eng, got %+v", pred)
	}
	if pred.Confidence <= 0 || pred.Confidence > 1 {
		t.Fatalf("confidence out of range: %.3f", pred.Confidence)
	}
	if len(pred.Candidates) == 0 || len(pred.Candidates) > 3 {
		t.Fatalf("expected 1..3 candidates, got %d", len(pred.Candidates))
	}
	if pred.LengthCategory != "medium" {
		t.Fatalf("expected medium length category, got %s", pred.LengthCategory)
	}
}

func TestClassifier_Devanagari(t *testing.T) {
	c := NewClassifier()
	pred := c.Predict("नमस्ते आप कैसे हैं आज का दिन बहुत अच्छा है", 3)
	if pred.Language != "hin" && pred.Language != "mar" {
		t.Fatalf("expected a devanagari language, got %+v", pred)
	}
}

func TestClassifier_ConcurrentFirstAccess(t *testing.T) {
	c := NewClassifier()
	var wg sync.WaitGroup
	results := make([]Prediction, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results[n] = c.Predict("hello there how are you doing today", 3)
		}(i)
	}
	wg.Wait()
	for i := 1; i < len(results); i++ {
		if results[i].Language != results[0].Language {
			t.Fatalf("concurrent first access diverged: %q vs %q",
				results[0].Language, results[i].Language)
		}
	}
}

func TestQuickCheck(t *testing.T) {
	if _, _, ok := QuickCheck(""); ok {
		t.Fatal("empty input must not be reliable")
	}
	lang, conf, _ := QuickCheck("The quick brown fox jumps over the lazy dog every single morning")
	if lang != "eng" {
		t.Fatalf("expected eng, got %q at %.3f", lang, conf)
	}
	if conf < 0 || conf > 1 {
		t.Fatalf("confidence out of range: %.3f", conf)
	}
}
