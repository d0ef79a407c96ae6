// Package sim is a simulated obstacle course.  Its rangefinders ray-cast
// from the pose reported by the navigator, so a plan can be run end to end
// without hardware.
package sim

import (
	"context"
	"math"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/tigerbot-team/rovernav/pkg/angle"
	"github.com/tigerbot-team/rovernav/pkg/obstacle"
	"github.com/tigerbot-team/rovernav/pkg/pose"
	"github.com/tigerbot-team/rovernav/pkg/ranging"
)

const DefaultMaxRangeCM = 400

var ErrNotTracking = errors.New("simulated sensor has no pose source")

// Rect is an axis-aligned obstacle, in centimetres.
type Rect struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// PoseSource reports where the simulated bot is.
type PoseSource interface {
	Position() pose.Position
	Heading() angle.Heading
}

type World struct {
	MaxRangeCM float64 `yaml:"max_range_cm"`
	Obstacles  []Rect  `yaml:"obstacles"`

	lock   sync.Mutex
	source PoseSource
}

func NewWorld(obstacles ...Rect) *World {
	return &World{
		MaxRangeCM: DefaultMaxRangeCM,
		Obstacles:  obstacles,
	}
}

// Load reads a world from a YAML file.
func Load(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	w := NewWorld()
	if err := yaml.Unmarshal(data, w); err != nil {
		return nil, errors.Wrapf(err, "failed to parse world %s", path)
	}
	if w.MaxRangeCM <= 0 {
		w.MaxRangeCM = DefaultMaxRangeCM
	}
	for i, r := range w.Obstacles {
		if r.MaxX < r.MinX || r.MaxY < r.MinY {
			return nil, errors.Errorf("obstacle %d has inverted bounds", i)
		}
	}
	return w, nil
}

// Track sets where the world's sensors take their pose from.
func (w *World) Track(src PoseSource) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.source = src
}

// Range casts a ray from origin along heading and returns the distance to
// the nearest obstacle, capped at MaxRangeCM.  Inside an obstacle it is 0.
func (w *World) Range(origin pose.Position, heading angle.Heading) float64 {
	dx, dy := math.Cos(heading.Radians()), math.Sin(heading.Radians())
	best := w.MaxRangeCM
	for _, r := range w.Obstacles {
		if t, ok := r.intersect(origin.X, origin.Y, dx, dy); ok && t < best {
			best = t
		}
	}
	return best
}

// intersect is the slab test for a ray against the rectangle.
func (r Rect) intersect(ox, oy, dx, dy float64) (float64, bool) {
	tMin, tMax := math.Inf(-1), math.Inf(1)
	for _, axis := range [2][4]float64{
		{ox, dx, r.MinX, r.MaxX},
		{oy, dy, r.MinY, r.MaxY},
	} {
		o, d, lo, hi := axis[0], axis[1], axis[2], axis[3]
		if math.Abs(d) < 1e-12 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin, tMax = math.Max(tMin, t1), math.Min(tMax, t2)
	}
	if tMax < 0 || tMin > tMax {
		return 0, false
	}
	if tMin < 0 {
		return 0, true
	}
	return tMin, true
}

// Sensor returns a rangefinder mounted facing the given side of the bot.
func (w *World) Sensor(side obstacle.Side) ranging.EchoTimer {
	offset := 0.0
	switch side {
	case obstacle.Left:
		offset = 90
	case obstacle.Right:
		offset = -90
	}
	return ranging.Func(func(ctx context.Context) (time.Duration, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		w.lock.Lock()
		src := w.source
		w.lock.Unlock()
		if src == nil {
			return 0, errors.Wrapf(ErrNotTracking, "%v sensor", side)
		}
		d := w.Range(src.Position(), src.Heading().Add(offset))
		return ranging.EchoForDistance(d), nil
	})
}

// Sensors builds the three rangefinders in front, left, right order.
func (w *World) Sensors() (front, left, right ranging.EchoTimer) {
	return w.Sensor(obstacle.Front), w.Sensor(obstacle.Left), w.Sensor(obstacle.Right)
}
