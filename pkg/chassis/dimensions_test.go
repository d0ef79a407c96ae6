package chassis

import (
	"math"
	"testing"
	"time"

	"go.viam.com/test"
)

func TestSpinDuration(t *testing.T) {
	full := SpinDuration(360, SpinCircumCM)
	test.That(t, full, test.ShouldEqual, time.Second)

	quarter := SpinDuration(90, 10)
	arc := math.Pi * WheelTrackCM / 4
	expected := time.Duration(arc / 10 * float64(time.Second))
	test.That(t, quarter, test.ShouldEqual, expected)
	test.That(t, SpinDuration(-90, 10), test.ShouldEqual, quarter)

	test.That(t, SpinDuration(90, 0), test.ShouldEqual, time.Duration(0))
}

func TestDriveDuration(t *testing.T) {
	test.That(t, DriveDuration(50, 100), test.ShouldEqual, 500*time.Millisecond)
	test.That(t, DriveDuration(0, 100), test.ShouldEqual, time.Duration(0))
	test.That(t, DriveDuration(10, 0), test.ShouldEqual, time.Duration(0))
}
