package obstacle

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.viam.com/test"

	"github.com/tigerbot-team/rovernav/pkg/logging"
	"github.com/tigerbot-team/rovernav/pkg/ranging"
)

func newTestSensor(front, left, right *ranging.Scripted) *Sensor {
	return New(front, left, right, 0, zap.NewNop().Sugar())
}

func TestIsObstacleAhead(t *testing.T) {
	ctx := context.Background()
	s := newTestSensor(ranging.NewScriptedDistances(100, 20.5, 19.5, 0), nil, nil)
	test.That(t, s.SafeDistance(), test.ShouldEqual, SafeDistanceCM)

	for _, expected := range []bool{false, false, true, true} {
		blocked, err := s.IsObstacleAhead(ctx)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, blocked, test.ShouldEqual, expected)
	}

	// A reading of exactly the safe distance is not blocked; the shortest
	// echo below it is.
	at := echoAtLeast(SafeDistanceCM)
	test.That(t, ranging.DistanceCM(at), test.ShouldAlmostEqual, SafeDistanceCM, 1e-6)
	s = newTestSensor(ranging.NewScripted(at, at-1), nil, nil)
	for _, expected := range []bool{false, true} {
		blocked, err := s.IsObstacleAhead(ctx)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, blocked, test.ShouldEqual, expected)
	}
}

// echoAtLeast is the shortest echo that reads as at least cm.
func echoAtLeast(cm float64) time.Duration {
	d := ranging.EchoForDistance(cm)
	for ranging.DistanceCM(d) < cm {
		d++
	}
	for ranging.DistanceCM(d-1) >= cm {
		d--
	}
	return d
}

func TestCustomSafeDistance(t *testing.T) {
	s := New(ranging.NewScriptedDistances(35), nil, nil, 40, zap.NewNop().Sugar())
	blocked, err := s.IsObstacleAhead(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, blocked, test.ShouldBeTrue)
}

func TestSideDistance(t *testing.T) {
	ctx := context.Background()
	s := newTestSensor(nil, ranging.NewScriptedDistances(12), ranging.NewScriptedDistances(64))

	d, err := s.SideDistance(ctx, Left)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d, test.ShouldAlmostEqual, 12, 1e-4)

	d, err = s.SideDistance(ctx, Right)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d, test.ShouldAlmostEqual, 64, 1e-4)

	_, err = s.SideDistance(ctx, Front)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestIsClear(t *testing.T) {
	ctx := context.Background()
	s := newTestSensor(nil, nil, ranging.NewScriptedDistances(5, 20.01, 100))
	for _, expected := range []bool{false, true, true} {
		clear, err := s.IsClear(ctx, Right)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, clear, test.ShouldEqual, expected)
	}

	at := echoAtLeast(SafeDistanceCM)
	s = newTestSensor(nil, ranging.NewScripted(at, at-1), nil)
	for _, expected := range []bool{true, false} {
		clear, err := s.IsClear(ctx, Left)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, clear, test.ShouldEqual, expected)
	}
}

func TestSensorErrorsAreWrapped(t *testing.T) {
	front := ranging.NewScriptedDistances(50)
	front.Errs = []error{ranging.ErrSensorTimeout}
	s := newTestSensor(front, nil, nil)

	_, err := s.IsObstacleAhead(context.Background())
	test.That(t, errors.Cause(err), test.ShouldEqual, ranging.ErrSensorTimeout)
	test.That(t, err.Error(), test.ShouldContainSubstring, "front sensor")
}

func TestSide(t *testing.T) {
	test.That(t, Left.Opposite(), test.ShouldEqual, Right)
	test.That(t, Right.Opposite(), test.ShouldEqual, Left)
	test.That(t, Front.Opposite(), test.ShouldEqual, Front)
	test.That(t, Right.String(), test.ShouldEqual, "right")
	test.That(t, Side(7).String(), test.ShouldEqual, "Side(7)")
}

func TestDistanceIsTraced(t *testing.T) {
	log, logs := logging.NewObserved()
	s := New(ranging.NewScriptedDistances(42), nil, nil, 0, log)
	_, err := s.Distance(context.Background(), Front)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logs.FilterMessageSnippet("front distance").Len(), test.ShouldEqual, 1)
}
