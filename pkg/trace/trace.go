// Package trace draws the dead-reckoned track of a navigation run.
package trace

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/tigerbot-team/rovernav/pkg/navigator"
	"github.com/tigerbot-team/rovernav/pkg/pose"
	"github.com/tigerbot-team/rovernav/pkg/sim"
)

const marginCM = 10

type Track struct {
	Trail     []pose.Position
	Detours   []pose.Position
	Obstacles []sim.Rect
}

// FromResult collects the trail and the points where avoidance kicked in.
// The run needs RecordTrail set for there to be a trail.
func FromResult(r navigator.Result, obstacles []sim.Rect) Track {
	t := Track{
		Trail:     r.Trail,
		Obstacles: obstacles,
	}
	for _, s := range r.Steps {
		for _, av := range s.Avoidances {
			t.Detours = append(t.Detours, av.At)
		}
	}
	return t
}

// bounds returns the area to draw, in centimetres.
func (t Track) bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	include := func(x, y float64) {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	include(0, 0)
	for _, p := range t.Trail {
		include(p.X, p.Y)
	}
	for _, r := range t.Obstacles {
		include(r.MinX, r.MinY)
		include(r.MaxX, r.MaxY)
	}
	return minX - marginCM, minY - marginCM, maxX + marginCM, maxY + marginCM
}

// Render draws the track onto a square image size pixels across.  +X is to
// the right and +Y is up.
func Render(t Track, size int) image.Image {
	minX, minY, maxX, maxY := t.bounds()
	scale := float64(size) / math.Max(maxX-minX, maxY-minY)

	dc := gg.NewContext(size, size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.Push()
	dc.Translate(0, float64(size))
	dc.Scale(scale, -scale)
	dc.Translate(-minX, -minY)

	dc.SetRGB(0.5, 0.5, 0.5)
	for _, r := range t.Obstacles {
		dc.DrawRectangle(r.MinX, r.MinY, r.MaxX-r.MinX, r.MaxY-r.MinY)
		dc.Fill()
	}

	if len(t.Trail) > 1 {
		dc.SetRGB(0, 0.3, 1)
		dc.MoveTo(t.Trail[0].X, t.Trail[0].Y)
		for _, p := range t.Trail[1:] {
			dc.LineTo(p.X, p.Y)
		}
		// Line width is in pixels, not centimetres.
		dc.SetLineWidth(2)
		dc.Stroke()
	}

	dot := 3 / scale
	dc.SetRGB(1, 0.5, 0)
	for _, p := range t.Detours {
		dc.DrawCircle(p.X, p.Y, dot)
		dc.Fill()
	}
	dc.SetRGB(0, 0.8, 0)
	dc.DrawCircle(0, 0, dot)
	dc.Fill()
	if len(t.Trail) > 0 {
		end := t.Trail[len(t.Trail)-1]
		dc.SetRGB(0.9, 0, 0)
		dc.DrawCircle(end.X, end.Y, dot)
		dc.Fill()
	}
	dc.Pop()

	return dc.Image()
}

func SavePNG(path string, t Track, size int) error {
	return gg.SavePNG(path, Render(t, size))
}
