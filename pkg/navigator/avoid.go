package navigator

import (
	"context"
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/tigerbot-team/rovernav/pkg/angle"
	"github.com/tigerbot-team/rovernav/pkg/obstacle"
	"github.com/tigerbot-team/rovernav/pkg/pose"
)

// Phase is the avoidance maneuver's progress.
type Phase int

const (
	Detecting Phase = iota
	TurningAway
	CreepingClear
	ExtraClearance
	TurningBack
	Resuming
)

func (p Phase) String() string {
	switch p {
	case Detecting:
		return "detecting"
	case TurningAway:
		return "turning away"
	case CreepingClear:
		return "creeping clear"
	case ExtraClearance:
		return "extra clearance"
	case TurningBack:
		return "turning back"
	case Resuming:
		return "resuming"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Avoidance describes one detour.
type Avoidance struct {
	At         pose.Position
	Heading    angle.Heading
	Remaining  float64 // Distance still to go on the move when interrupted.
	Owed       float64 // Distance the move resumes with.
	LeftCM     float64
	RightCM    float64
	Escape     obstacle.Side
	LateralCM  float64
	FinalPhase Phase
}

func (c *Controller) setPhase(p Phase) {
	c.phase = p
	c.log.Named("avoid").Infow("Avoidance phase", "phase", p.String(),
		"position", c.tracker.Position().String(), "heading", c.heading.Float())
}

// avoid steps sideways around an obstacle in front.  The interrupted move is
// retried for its full distance afterwards, so owed is returned unchanged in
// Avoidance.Owed.  The sideways distance is added to the lateral
// compensation, positive for a leftward escape.  If the side sensor never
// clears this only returns when ctx is done.
func (c *Controller) avoid(ctx context.Context, owed, remaining float64) (av Avoidance, err error) {
	av = Avoidance{
		At:        c.tracker.Position(),
		Heading:   c.heading,
		Remaining: remaining,
	}
	defer func() { av.FinalPhase = c.phase }()

	c.setPhase(Detecting)
	c.hw.PlaySound(c.cfg.AvoidSound)
	if err = c.hw.Stop(); err != nil {
		return av, errors.Wrap(err, "failed to stop before avoiding")
	}
	if av.LeftCM, err = c.sensor.SideDistance(ctx, obstacle.Left); err != nil {
		return av, err
	}
	if av.RightCM, err = c.sensor.SideDistance(ctx, obstacle.Right); err != nil {
		return av, err
	}
	av.Escape = obstacle.Right
	turn := -90.0
	if av.LeftCM > av.RightCM {
		av.Escape, turn = obstacle.Left, 90.0
	}
	c.log.Infow("Obstacle ahead", "left", av.LeftCM, "right", av.RightCM, "escape", av.Escape.String())

	c.setPhase(TurningAway)
	if err = c.rotate(ctx, turn); err != nil {
		return av, err
	}

	c.setPhase(CreepingClear)
	if err = c.hw.Forward(c.cfg.CreepSpeed); err != nil {
		return av, errors.Wrap(err, "failed to start creep")
	}
	watch := av.Escape.Opposite()
	for {
		isClear, err := c.sensor.IsClear(ctx, watch)
		if err != nil {
			return av, err
		}
		if isClear {
			break
		}
		c.advance(c.cfg.IncrementCM)
		av.LateralCM += c.cfg.IncrementCM
		if err := c.pause(ctx, c.cfg.IncrementInterval); err != nil {
			return av, err
		}
	}

	c.setPhase(ExtraClearance)
	for extra := c.cfg.ExtraClearanceCM; extra > 0; {
		inc := math.Min(c.cfg.IncrementCM, extra)
		extra -= inc
		c.advance(inc)
		av.LateralCM += inc
		if err = c.pause(ctx, c.cfg.IncrementInterval); err != nil {
			return av, err
		}
	}
	if err = c.hw.Stop(); err != nil {
		return av, errors.Wrap(err, "failed to stop after creep")
	}
	if av.Escape == obstacle.Left {
		c.lateralComp += av.LateralCM
	} else {
		c.lateralComp -= av.LateralCM
	}
	c.driftHeading = av.Heading

	c.setPhase(TurningBack)
	if err = c.rotate(ctx, -turn); err != nil {
		return av, err
	}
	c.heading = av.Heading

	c.setPhase(Resuming)
	av.Owed = owed
	c.log.Infow("Obstacle cleared", "lateral", av.LateralCM,
		"compensation", c.lateralComp, "owed", owed)
	return av, nil
}
