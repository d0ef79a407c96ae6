package angle

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestWrap(t *testing.T) {
	expectWrapResult(t, 0, 0)
	expectWrapResult(t, 90, 90)
	expectWrapResult(t, 359.5, 359.5)
	expectWrapResult(t, 360, 0)
	expectWrapResult(t, 361, 1)
	expectWrapResult(t, 720+45, 45)
	expectWrapResult(t, -1, 359)
	expectWrapResult(t, -90, 270)
	expectWrapResult(t, -360, 0)
	expectWrapResult(t, -725, 355)
}

func expectWrapResult(t *testing.T, in, expected float64) {
	t.Helper()
	h := Wrap(in)
	if h.Float() < 0 || h.Float() >= 360 {
		t.Errorf("Wrap(%f) = %f, out of range", in, h.Float())
	}
	if math.Abs(h.Float()-expected) > 1e-9 {
		t.Errorf("Wrap(%f) = %f, expected %f", in, h.Float(), expected)
	}
}

func TestWrapTinyNegative(t *testing.T) {
	h := Wrap(-1e-15)
	test.That(t, h.Float() >= 0 && h.Float() < 360, test.ShouldBeTrue)
}

func TestHeadingAddStaysInRange(t *testing.T) {
	for _, start := range []float64{0, 45, 180, 359} {
		for _, delta := range []float64{-1000, -360, -90, -0.5, 0, 0.5, 90, 360, 1000, 12345.6} {
			h := Wrap(start).Add(delta)
			test.That(t, h.Float(), test.ShouldBeGreaterThanOrEqualTo, 0.0)
			test.That(t, h.Float(), test.ShouldBeLessThan, 360.0)

			h = Wrap(start).Sub(delta)
			test.That(t, h.Float(), test.ShouldBeGreaterThanOrEqualTo, 0.0)
			test.That(t, h.Float(), test.ShouldBeLessThan, 360.0)
		}
	}
}

func TestAddThenSubRestores(t *testing.T) {
	for _, start := range []float64{0, 10, 270, 359} {
		h := Wrap(start)
		test.That(t, h.Add(90).Sub(90).Float(), test.ShouldAlmostEqual, h.Float())
		test.That(t, h.Sub(90).Add(90).Float(), test.ShouldAlmostEqual, h.Float())
	}
}

func TestRadians(t *testing.T) {
	test.That(t, Wrap(180).Radians(), test.ShouldAlmostEqual, math.Pi)
	test.That(t, Wrap(-90).Radians(), test.ShouldAlmostEqual, 3*math.Pi/2)
}

func TestDiff(t *testing.T) {
	test.That(t, Wrap(10).Diff(Wrap(350)).Float(), test.ShouldAlmostEqual, 20.0)
	test.That(t, Wrap(350).Diff(Wrap(10)).Float(), test.ShouldAlmostEqual, -20.0)
	test.That(t, Wrap(270).Diff(Wrap(90)).Float(), test.ShouldAlmostEqual, 180.0)
	test.That(t, Wrap(0).Diff(Wrap(225)).Abs(), test.ShouldAlmostEqual, 135.0)
}

func TestFromFloat(t *testing.T) {
	test.That(t, FromFloat(180).Float(), test.ShouldEqual, 180.0)
	test.That(t, FromFloat(-180).Float(), test.ShouldEqual, 180.0)
	test.That(t, FromFloat(181).Float(), test.ShouldEqual, -179.0)
	test.That(t, FromFloat(-540).Float(), test.ShouldEqual, 180.0)
	test.That(t, FromFloat(10).Add(FromFloat(175)).Float(), test.ShouldEqual, -175.0)
	test.That(t, FromFloat(-170).Sub(FromFloat(20)).Float(), test.ShouldEqual, 170.0)
}
