package navigator

import (
	"time"

	"github.com/pkg/errors"

	"github.com/tigerbot-team/rovernav/pkg/chassis"
	"github.com/tigerbot-team/rovernav/pkg/obstacle"
)

// CompensationTarget selects which later step absorbs the sideways drift left
// behind by an avoidance maneuver.
type CompensationTarget string

const (
	// CompensateTurn rewrites the effective value of the next turn step.
	CompensateTurn CompensationTarget = "turn"
	// CompensateNextForward adjusts the distance of the next forward move.
	CompensateNextForward CompensationTarget = "next_forward"
)

type Config struct {
	SafeDistanceCM   float64 `yaml:"safe_distance_cm"`
	ExtraClearanceCM float64 `yaml:"extra_clearance_cm"`

	// Forward motion is broken into increments of IncrementCM, one every
	// IncrementInterval, with a front sensor check before each.
	IncrementCM       float64       `yaml:"increment_cm"`
	IncrementInterval time.Duration `yaml:"increment_interval"`
	IdleInterval      time.Duration `yaml:"idle_interval"`

	// Drive duty for plan moves and for the avoidance creep.
	DriveSpeed float64 `yaml:"drive_speed"`
	CreepSpeed float64 `yaml:"creep_speed"`

	CompensationTarget CompensationTarget `yaml:"compensation_target"`

	AvoidSound    string `yaml:"avoid_sound"`
	CompleteSound string `yaml:"complete_sound"`

	// RecordTrail keeps every dead-reckoned position for rendering.
	RecordTrail bool `yaml:"record_trail"`
}

func DefaultConfig() Config {
	return Config{
		SafeDistanceCM:     obstacle.SafeDistanceCM,
		ExtraClearanceCM:   10,
		IncrementCM:        1,
		IncrementInterval:  10 * time.Millisecond,
		IdleInterval:       100 * time.Millisecond,
		DriveSpeed:         0.5,
		CreepSpeed:         0.3,
		CompensationTarget: CompensateTurn,
		AvoidSound:         "/sounds/avoid.wav",
		CompleteSound:      "/sounds/complete.wav",
	}
}

func (c Config) Validate() error {
	switch {
	case c.SafeDistanceCM <= 0:
		return errors.Errorf("safe distance must be positive, not %v", c.SafeDistanceCM)
	case c.ExtraClearanceCM < 0:
		return errors.Errorf("extra clearance must not be negative, not %v", c.ExtraClearanceCM)
	case c.IncrementCM <= 0:
		return errors.Errorf("increment must be positive, not %v", c.IncrementCM)
	case c.IncrementInterval < 0 || c.IdleInterval < 0:
		return errors.Errorf("intervals must not be negative")
	case c.DriveSpeed <= 0 || c.DriveSpeed > 1:
		return errors.Errorf("drive speed must be in (0, 1], not %v", c.DriveSpeed)
	case c.CreepSpeed <= 0 || c.CreepSpeed > 1:
		return errors.Errorf("creep speed must be in (0, 1], not %v", c.CreepSpeed)
	}
	switch c.CompensationTarget {
	case CompensateTurn, CompensateNextForward:
	default:
		return errors.Errorf("unknown compensation target %q", c.CompensationTarget)
	}
	return nil
}

// burstDuration is how long a single uninterrupted drive of distance takes at
// the increment pace.
func (c Config) burstDuration(distance float64) time.Duration {
	if c.IncrementInterval <= 0 {
		return 0
	}
	return chassis.DriveDuration(distance, c.IncrementCM/c.IncrementInterval.Seconds())
}
