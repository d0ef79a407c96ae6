// Package ranging turns echo round-trip timings from a trigger/echo distance
// sensor into distances, and provides the backends that produce those timings.
package ranging

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
)

const (
	// SpeedOfSoundCMPerUS is the speed of sound in air at ~20C.
	SpeedOfSoundCMPerUS = 0.0343

	// DefaultEchoTimeout bounds each wait on the echo line.  At 30ms the echo
	// would have travelled over 5m, well past the sensor's useful range.
	DefaultEchoTimeout = 30 * time.Millisecond
)

var ErrSensorTimeout = errors.New("timed out waiting for echo")

// EchoTimer is a single trigger/echo line pair.  MeasureEcho pulses the
// trigger and returns the round-trip time of the echo.
type EchoTimer interface {
	MeasureEcho(ctx context.Context) (time.Duration, error)
}

// DistanceCM converts a round-trip echo duration into a one-way distance in
// centimetres.  Zero or negative durations give zero.
func DistanceCM(roundTrip time.Duration) float64 {
	if roundTrip <= 0 {
		return 0
	}
	us := float64(roundTrip) / float64(time.Microsecond)
	return us * SpeedOfSoundCMPerUS / 2
}

// EchoForDistance is the inverse of DistanceCM, rounded to the nearest
// nanosecond.
func EchoForDistance(cm float64) time.Duration {
	if cm <= 0 {
		return 0
	}
	us := cm * 2 / SpeedOfSoundCMPerUS
	return time.Duration(math.Round(us * float64(time.Microsecond)))
}

// Measure takes a single reading from the given line pair.
func Measure(ctx context.Context, t EchoTimer) (float64, error) {
	d, err := t.MeasureEcho(ctx)
	if err != nil {
		return 0, err
	}
	return DistanceCM(d), nil
}
