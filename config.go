package scroll

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Tuning collects the interaction parameters callers most often adjust.
// The state machine itself is fixed; only these knobs vary.
type Tuning struct {
	// DecayRate is the fraction of velocity retained per millisecond of
	// inertial scrolling, in (0, 1).
	DecayRate float32

	// MinFlingVelocity is the gesture speed (view px/ms) below which a
	// released drag settles immediately instead of decaying.
	MinFlingVelocity float32

	// MinRestingVelocity is the speed (content units/ms) at which a decay
	// animation is considered at rest.
	MinRestingVelocity float32

	// LongPressDuration is how long (seconds) a press must be held, within
	// LongPressSlop, before the long-press hook fires.
	LongPressDuration float32

	// LongPressSlop is the maximum pointer travel (view px) allowed while
	// the long-press timer is armed.
	LongPressSlop float32

	// SnapDuration is the length (seconds) of the animation toward a snap
	// target or an animated scroll-to location.
	SnapDuration float32
}

// DefaultTuning returns the stock interaction parameters.
func DefaultTuning() Tuning {
	return Tuning{
		DecayRate:          0.998,
		MinFlingVelocity:   0.001,
		MinRestingVelocity: 0.0005,
		LongPressDuration:  0.5,
		LongPressSlop:      10,
		SnapDuration:       0.3,
	}
}

// LoadTuning reads tuning overrides from a TOML file, falling back to
// defaults for missing fields or a missing file.
//
// Example:
//
//	decay_rate = 0.996
//	min_fling_velocity = 0.002
//	long_press_duration = 0.4
func LoadTuning(path string) (Tuning, error) {
	tuning := DefaultTuning()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tuning, nil
		}
		return Tuning{}, fmt.Errorf("open tuning config: %w", err)
	}

	var raw struct {
		DecayRate          float32 `toml:"decay_rate"`
		MinFlingVelocity   float32 `toml:"min_fling_velocity"`
		MinRestingVelocity float32 `toml:"min_resting_velocity"`
		LongPressDuration  float32 `toml:"long_press_duration"`
		LongPressSlop      float32 `toml:"long_press_slop"`
		SnapDuration       float32 `toml:"snap_duration"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning config: %w", err)
	}

	if raw.DecayRate > 0 {
		tuning.DecayRate = raw.DecayRate
	}
	if raw.MinFlingVelocity > 0 {
		tuning.MinFlingVelocity = raw.MinFlingVelocity
	}
	if raw.MinRestingVelocity > 0 {
		tuning.MinRestingVelocity = raw.MinRestingVelocity
	}
	if raw.LongPressDuration > 0 {
		tuning.LongPressDuration = raw.LongPressDuration
	}
	if raw.LongPressSlop > 0 {
		tuning.LongPressSlop = raw.LongPressSlop
	}
	if raw.SnapDuration > 0 {
		tuning.SnapDuration = raw.SnapDuration
	}

	if tuning.DecayRate <= 0 || tuning.DecayRate >= 1 {
		return Tuning{}, fmt.Errorf("decay_rate must be in (0, 1), got %v", tuning.DecayRate)
	}
	return tuning, nil
}
