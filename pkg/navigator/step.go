package navigator

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/tigerbot-team/rovernav/pkg/angle"
	"github.com/tigerbot-team/rovernav/pkg/plan"
	"github.com/tigerbot-team/rovernav/pkg/pose"
)

// StepOutcome records what happened to one plan step.
type StepOutcome struct {
	Index int
	Step  plan.Step
	// EffectiveValue is the step's value after any compensation merge.
	EffectiveValue float64
	Skipped        bool
	Err            error
	Avoidances     []Avoidance
}

type Result struct {
	Steps               []StepOutcome
	Position            pose.Position
	Heading             angle.Heading
	LateralCompensation float64
	// Completed is set when every step was attempted.  Stopped is set when
	// the run flag was cleared part way.
	Completed bool
	Stopped   bool
	Trail     []pose.Position
}

func (r Result) Avoidances() int {
	n := 0
	for _, s := range r.Steps {
		n += len(s.Avoidances)
	}
	return n
}

// StepErrors combines the errors of skipped steps.
func (r Result) StepErrors() error {
	var err error
	for _, s := range r.Steps {
		err = multierr.Append(err, s.Err)
	}
	return err
}

func (c *Controller) executeStep(ctx context.Context, index int, step plan.Step) (StepOutcome, error) {
	outcome := StepOutcome{
		Index:          index,
		Step:           step,
		EffectiveValue: step.Value,
	}
	var err error
	switch step.Action {
	case plan.MoveForward:
		err = c.moveForward(ctx, &outcome)
	case plan.TurnLeft:
		err = c.turn(ctx, &outcome, 1)
	case plan.TurnRight:
		err = c.turn(ctx, &outcome, -1)
	default:
		outcome.Skipped = true
		outcome.Err = errors.Wrapf(ErrUnknownAction, "step %d: %q", index, step.Action)
		c.log.Warnw("Skipping step", "index", index, "error", outcome.Err)
	}
	return outcome, err
}

func (c *Controller) moveForward(ctx context.Context, outcome *StepOutcome) error {
	distance := outcome.Step.Value
	if c.cfg.CompensationTarget == CompensateNextForward && c.lateralComp != 0 {
		distance = c.mergePending(distance, c.heading)
		outcome.EffectiveValue = distance
	}
	if distance <= 0 {
		c.log.Infow("Nothing to do for forward move", "distance", distance)
		return nil
	}

	if err := c.hw.Forward(c.cfg.DriveSpeed); err != nil {
		return errors.Wrap(err, "failed to start drive")
	}
	remaining := distance
	for remaining > 0 {
		blocked, err := c.sensor.IsObstacleAhead(ctx)
		if err != nil {
			return err
		}
		if blocked {
			av, err := c.avoid(ctx, distance, remaining)
			outcome.Avoidances = append(outcome.Avoidances, av)
			if err != nil {
				return err
			}
			remaining = av.Owed
			break
		}
		inc := math.Min(c.cfg.IncrementCM, remaining)
		remaining -= inc
		c.advance(inc)
		if err := c.pause(ctx, c.cfg.IncrementInterval); err != nil {
			return err
		}
	}
	if err := c.hw.Stop(); err != nil {
		return errors.Wrap(err, "failed to stop drive")
	}
	if remaining <= 0 {
		return nil
	}

	// Resuming after a detour: cover what's owed in one go.
	c.log.Infow("Resuming forward move", "distance", remaining)
	if err := c.hw.Forward(c.cfg.DriveSpeed); err != nil {
		return errors.Wrap(err, "failed to start drive")
	}
	if err := c.pause(ctx, c.cfg.burstDuration(remaining)); err != nil {
		return multierr.Append(err, c.hw.Stop())
	}
	c.advance(remaining)
	return errors.Wrap(c.hw.Stop(), "failed to stop drive")
}

// turn rotates by the step's value; direction is +1 for left, -1 for right.
func (c *Controller) turn(ctx context.Context, outcome *StepOutcome, direction float64) error {
	value := outcome.Step.Value
	if err := c.rotate(ctx, direction*value); err != nil {
		return err
	}
	if c.cfg.CompensationTarget == CompensateTurn && c.lateralComp != 0 {
		outcome.EffectiveValue = c.mergePending(value, c.heading)
	}
	return nil
}

// rotate turns the bot by degrees (positive = left) and updates the heading.
func (c *Controller) rotate(ctx context.Context, degrees float64) error {
	var err error
	if degrees >= 0 {
		err = c.hw.TurnLeft(ctx, degrees)
	} else {
		err = c.hw.TurnRight(ctx, -degrees)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to turn %.1f degrees", degrees)
	}
	c.heading = c.heading.Add(degrees)
	return nil
}
