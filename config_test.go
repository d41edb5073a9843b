package scroll

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTuning_MissingFileUsesDefaults(t *testing.T) {
	tuning, err := LoadTuning(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Expected no error for a missing file, got %v", err)
	}
	if tuning != DefaultTuning() {
		t.Errorf("Expected defaults, got %+v", tuning)
	}
}

func TestLoadTuning_PartialOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scroll.toml")
	data := []byte("decay_rate = 0.99\nlong_press_duration = 0.8\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	tuning, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tuning.DecayRate != 0.99 {
		t.Errorf("Expected decay rate 0.99, got %v", tuning.DecayRate)
	}
	if tuning.LongPressDuration != 0.8 {
		t.Errorf("Expected long press duration 0.8, got %v", tuning.LongPressDuration)
	}
	// Untouched fields keep their defaults.
	if tuning.LongPressSlop != DefaultTuning().LongPressSlop {
		t.Errorf("Expected default slop, got %v", tuning.LongPressSlop)
	}
}

func TestLoadTuning_InvalidDecayRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scroll.toml")
	if err := os.WriteFile(path, []byte("decay_rate = 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(path); err == nil {
		t.Error("Expected an error for a decay rate outside (0, 1)")
	}
}

func TestLoadTuning_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scroll.toml")
	if err := os.WriteFile(path, []byte("decay_rate = = nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(path); err == nil {
		t.Error("Expected a parse error")
	}
}
