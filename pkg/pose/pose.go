package pose

import (
	"fmt"
	"math"

	"github.com/tigerbot-team/rovernav/pkg/angle"
)

// Position is where we believe the bot to be, in centimetres, relative to
// where navigation started.  +X is heading 0, +Y is heading 90.
type Position struct {
	X, Y float64
}

func (p Position) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

// DistanceTo returns the straight-line distance between two positions.
func (p Position) DistanceTo(o Position) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

// Tracker integrates commanded motion into a position estimate by dead
// reckoning.
type Tracker struct {
	position Position

	recordTrail bool
	trail       []Position
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// NewRecordingTracker also keeps every intermediate position, starting with
// the origin.
func NewRecordingTracker() *Tracker {
	return &Tracker{
		recordTrail: true,
		trail:       []Position{{}},
	}
}

// Update advances the position by distance along heading.
func (t *Tracker) Update(distance float64, heading angle.Heading) {
	r := heading.Radians()
	t.position.X += distance * math.Cos(r)
	t.position.Y += distance * math.Sin(r)
	if t.recordTrail {
		t.trail = append(t.trail, t.position)
	}
}

func (t *Tracker) Position() Position {
	return t.position
}

// Trail returns a copy of the recorded positions, or nil if the tracker
// isn't recording.
func (t *Tracker) Trail() []Position {
	if !t.recordTrail {
		return nil
	}
	return append([]Position(nil), t.trail...)
}

// Zero moves the estimate back to the origin and clears the trail.
func (t *Tracker) Zero() {
	t.position = Position{}
	if t.recordTrail {
		t.trail = []Position{{}}
	}
}
