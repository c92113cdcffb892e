package detect

import (
	"sort"
	"testing"
)

func TestConfigUpdate_RejectsUnknownKeysAtomically(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Update(map[string]float64{
		"glotlid_threshold": 0.7,
		"definitely_bogus":  1.0,
	})
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if cfg.ClassifierThreshold != 0.5 {
		t.Fatalf("update must be all-or-nothing, threshold changed to %.2f", cfg.ClassifierThreshold)
	}
}

func TestConfigUpdate_AppliesKnownKeys(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Update(map[string]float64{
		"glotlid_threshold":          0.7,
		"ensemble_conf_gap_threshold": 0.25,
		"ensemble_enabled":           0,
		"code_mixed_min_markers":     3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ClassifierThreshold != 0.7 {
		t.Fatalf("glotlid_threshold not applied: %.2f", cfg.ClassifierThreshold)
	}
	if cfg.EnsembleConfGap != 0.25 {
		t.Fatalf("conf gap not applied: %.2f", cfg.EnsembleConfGap)
	}
	if cfg.EnsembleEnabled {
		t.Fatal("ensemble_enabled=0 should disable the ensemble")
	}
	if cfg.CodeMixMinMarkers != 3 {
		t.Fatalf("marker minimum not applied: %d", cfg.CodeMixMinMarkers)
	}
}

func TestConfigKeys_SortedAndComplete(t *testing.T) {
	cfg := DefaultConfig()
	keys := cfg.Keys()
	if !sort.StringsAreSorted(keys) {
		t.Fatal("Keys() must be sorted")
	}
	want := []string{"glotlid_threshold", "ensemble_enabled", "adaptive_threshold_short_text", "max_text_length"}
	for _, w := range want {
		found := false
		for _, k := range keys {
			if k == w {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected key %q in whitelist", w)
		}
	}
}

func TestConfigSnapshot_Independent(t *testing.T) {
	cfg := DefaultConfig()
	snap := cfg.Snapshot()
	if err := cfg.Update(map[string]float64{"glotlid_threshold": 0.9}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.ClassifierThreshold != 0.5 {
		t.Fatal("snapshot must not see later updates")
	}
}

func TestDefaultConfig_AdaptiveBandsOrdered(t *testing.T) {
	cfg := DefaultConfig()
	if !(cfg.AdaptiveThresholdShort > cfg.AdaptiveThresholdMedium &&
		cfg.AdaptiveThresholdMedium > cfg.AdaptiveThresholdLong) {
		t.Fatalf("adaptive thresholds must tighten with length: %.2f %.2f %.2f",
			cfg.AdaptiveThresholdShort, cfg.AdaptiveThresholdMedium, cfg.AdaptiveThresholdLong)
	}
}
