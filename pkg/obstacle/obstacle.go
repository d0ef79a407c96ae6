package obstacle

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tigerbot-team/rovernav/pkg/ranging"
)

// SafeDistanceCM is the minimum front clearance below which an obstacle is
// considered blocking.
const SafeDistanceCM = 20.0

type Side int

const (
	Front Side = iota
	Left
	Right
)

func (s Side) String() string {
	switch s {
	case Front:
		return "front"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Opposite swaps left and right.  Front is its own opposite.
func (s Side) Opposite() Side {
	switch s {
	case Left:
		return Right
	case Right:
		return Left
	}
	return s
}

// Sensor wraps the three fixed-orientation rangefinders.
type Sensor struct {
	lines        [3]ranging.EchoTimer
	safeDistance float64
	log          *zap.SugaredLogger
}

// New creates a sensor.  A non-positive safeDistance selects SafeDistanceCM.
func New(front, left, right ranging.EchoTimer, safeDistance float64, log *zap.SugaredLogger) *Sensor {
	if safeDistance <= 0 {
		safeDistance = SafeDistanceCM
	}
	return &Sensor{
		lines:        [3]ranging.EchoTimer{front, left, right},
		safeDistance: safeDistance,
		log:          log,
	}
}

func (s *Sensor) SafeDistance() float64 {
	return s.safeDistance
}

// Distance measures the clearance on one side, in centimetres.
func (s *Sensor) Distance(ctx context.Context, side Side) (float64, error) {
	if side < Front || side > Right {
		return 0, errors.Errorf("unknown sensor side %v", side)
	}
	d, err := ranging.Measure(ctx, s.lines[side])
	if err != nil {
		return 0, errors.Wrapf(err, "%v sensor", side)
	}
	s.log.Debugf("%v distance: %.1fcm", side, d)
	return d, nil
}

// IsObstacleAhead reports whether the front clearance is below the safe
// distance.
func (s *Sensor) IsObstacleAhead(ctx context.Context) (bool, error) {
	d, err := s.Distance(ctx, Front)
	if err != nil {
		return false, err
	}
	return d < s.safeDistance, nil
}

// SideDistance measures the left or right clearance.
func (s *Sensor) SideDistance(ctx context.Context, side Side) (float64, error) {
	if side != Left && side != Right {
		return 0, errors.Errorf("side distance requested for %v", side)
	}
	return s.Distance(ctx, side)
}

// IsClear reports whether the clearance on the given side is at least the
// safe distance.
func (s *Sensor) IsClear(ctx context.Context, side Side) (bool, error) {
	d, err := s.Distance(ctx, side)
	if err != nil {
		return false, err
	}
	return d >= s.safeDistance, nil
}
