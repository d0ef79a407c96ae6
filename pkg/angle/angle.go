package angle

import "math"

const radiansPerDegree = math.Pi / 180

// Heading is a compass-style orientation in degrees, stored as a value in
// range [0, 360).  Positive deltas rotate anti-clockwise (to the left).
type Heading struct {
	float64
}

// Wrap converts a float of any magnitude to a Heading by calculating f mod 360
// and shifting into range.
func Wrap(f float64) Heading {
	d := math.Mod(f, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		// -1e-15 + 360 rounds to 360.
		d = 0
	}
	return Heading{d}
}

func (h Heading) Add(delta float64) Heading {
	return Wrap(h.float64 + delta)
}

func (h Heading) Sub(delta float64) Heading {
	return Wrap(h.float64 - delta)
}

// Float returns the heading in degrees, range [0, 360).
func (h Heading) Float() float64 {
	return h.float64
}

func (h Heading) Radians() float64 {
	return h.float64 * radiansPerDegree
}

// Diff returns h - other as a signed angle in (-180, 180].
func (h Heading) Diff(other Heading) PlusMinus180 {
	return FromFloat(h.float64 - other.float64)
}

// PlusMinus180 is an angle in degrees, stored as a value in range (-180, 180].
// All operations clamp their output into range.
type PlusMinus180 struct {
	float64
}

func (a PlusMinus180) Add(b PlusMinus180) PlusMinus180 {
	return FromFloat(a.float64 + b.float64)
}

func (a PlusMinus180) Sub(b PlusMinus180) PlusMinus180 {
	return FromFloat(a.float64 - b.float64)
}

// Float returns the angle in degrees, range (-180, 180].
func (a PlusMinus180) Float() float64 {
	return a.float64
}

func (a PlusMinus180) Abs() float64 {
	return math.Abs(a.float64)
}

// FromFloat converts a float of any magnitude to a PlusMinus180 by calculating
// f mod 360 and shifting into range.
func FromFloat(f float64) PlusMinus180 {
	d := math.Mod(f, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return PlusMinus180{d}
}
