// Package navigator executes a pre-planned path of move and turn steps,
// detouring around obstacles found by the front rangefinder and folding the
// resulting sideways drift back into a later step.
package navigator

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tigerbot-team/rovernav/pkg/angle"
	"github.com/tigerbot-team/rovernav/pkg/hardware"
	"github.com/tigerbot-team/rovernav/pkg/obstacle"
	"github.com/tigerbot-team/rovernav/pkg/plan"
	"github.com/tigerbot-team/rovernav/pkg/pose"
)

var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrAlreadyRunning = errors.New("navigation already in progress")
)

type State int32

const (
	Idle State = iota
	ExecutingStep
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ExecutingStep:
		return "executing"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Controller owns the navigation state.  Only the goroutine inside Execute
// (or Run) mutates position, heading and compensation; the run flag is the
// only thing shared with other goroutines.
type Controller struct {
	cfg    Config
	hw     hardware.Interface
	sensor *obstacle.Sensor
	clock  clock.Clock
	log    *zap.SugaredLogger

	running atomic.Bool
	busy    atomic.Bool
	state   atomic.Int32

	tracker      *pose.Tracker
	heading      angle.Heading
	lateralComp  float64
	driftHeading angle.Heading
	phase        Phase
}

func New(cfg Config, hw hardware.Interface, sensor *obstacle.Sensor, clk clock.Clock, log *zap.SugaredLogger) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid navigator config")
	}
	if sensor.SafeDistance() != cfg.SafeDistanceCM {
		return nil, errors.Errorf("sensor safe distance %vcm does not match configured %vcm",
			sensor.SafeDistance(), cfg.SafeDistanceCM)
	}
	if clk == nil {
		clk = clock.New()
	}
	tracker := pose.NewTracker()
	if cfg.RecordTrail {
		tracker = pose.NewRecordingTracker()
	}
	return &Controller{
		cfg:     cfg,
		hw:      hw,
		sensor:  sensor,
		clock:   clk,
		log:     log.Named("nav"),
		tracker: tracker,
	}, nil
}

// Start sets the run flag.  An idle Run loop picks it up on its next poll.
func (c *Controller) Start() {
	c.running.Store(true)
}

// Stop clears the run flag.  The current step always finishes; the rest of
// the plan is abandoned.
func (c *Controller) Stop() {
	c.running.Store(false)
}

func (c *Controller) Running() bool {
	return c.running.Load()
}

func (c *Controller) State() State {
	return State(c.state.Load())
}

func (c *Controller) setState(s State) {
	if State(c.state.Swap(int32(s))) != s {
		c.log.Debugf("State: %v", s)
	}
}

// Position is the dead-reckoned position relative to the start of the most
// recent run.
func (c *Controller) Position() pose.Position {
	return c.tracker.Position()
}

func (c *Controller) Heading() angle.Heading {
	return c.heading
}

func (c *Controller) LateralCompensation() float64 {
	return c.lateralComp
}

// Run polls the run flag every IdleInterval and executes p each time it is
// set.  report, if non-nil, is called after every run.  Run returns when ctx
// is done.
func (c *Controller) Run(ctx context.Context, p plan.Plan, report func(Result, error)) error {
	c.log.Infow("Navigator waiting for start", "steps", len(p))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !c.running.Load() {
			if err := c.pause(ctx, c.cfg.IdleInterval); err != nil {
				return err
			}
			continue
		}
		result, err := c.Execute(ctx, p)
		if err != nil {
			c.log.Errorw("Navigation run failed", "error", err, "position", result.Position.String())
		}
		if report != nil {
			report(result, err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Execute runs the plan from the origin with heading 0.  It returns once the
// plan is exhausted, the run flag is cleared between steps, or a sensor or
// actuator fails.  Unknown actions are recorded in the result and skipped.
func (c *Controller) Execute(ctx context.Context, p plan.Plan) (Result, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return Result{}, ErrAlreadyRunning
	}
	defer c.busy.Store(false)

	c.reset()
	c.running.Store(true)
	c.setState(ExecutingStep)
	startTime := c.clock.Now()

	var result Result
	for i, step := range p {
		if !c.running.Load() {
			c.log.Infow("Run flag cleared, abandoning plan", "next_step", i)
			result.Stopped = true
			break
		}
		c.log.Infow("Starting step", "index", i, "step", step.String(),
			"position", c.tracker.Position().String(), "heading", c.heading.Float())
		outcome, err := c.executeStep(ctx, i, step)
		result.Steps = append(result.Steps, outcome)
		if err != nil {
			err = multierr.Append(err, c.hw.Stop())
			c.running.Store(false)
			c.setState(Idle)
			c.fill(&result)
			return result, err
		}
	}

	c.setState(Completed)
	c.fill(&result)
	result.Completed = !result.Stopped
	if result.Completed {
		c.hw.PlaySound(c.cfg.CompleteSound)
	}
	c.log.Infow("Plan finished",
		"completed", result.Completed,
		"position", result.Position.String(),
		"heading", result.Heading.Float(),
		"avoidances", result.Avoidances(),
		"elapsed", c.clock.Since(startTime).Round(time.Millisecond))
	c.running.Store(false)
	c.setState(Idle)
	return result, nil
}

func (c *Controller) reset() {
	c.tracker.Zero()
	c.heading = angle.Wrap(0)
	c.lateralComp = 0
	c.driftHeading = angle.Wrap(0)
	c.phase = Resuming
}

func (c *Controller) fill(r *Result) {
	r.Position = c.tracker.Position()
	r.Heading = c.heading
	r.LateralCompensation = c.lateralComp
	r.Trail = c.tracker.Trail()
}

// pause waits for d on the controller's clock, or until ctx is done.
func (c *Controller) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := c.clock.Timer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// advance records distance travelled on the current heading.
func (c *Controller) advance(distance float64) {
	c.tracker.Update(distance, c.heading)
	c.log.Debugf("Position %v heading %.1f", c.tracker.Position(), c.heading.Float())
}
