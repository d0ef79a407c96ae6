package ranging

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

const (
	triggerSettle = 2 * time.Microsecond
	triggerPulse  = 10 * time.Microsecond
)

// GPIO drives an HC-SR04 style sensor from a pair of digital lines.
type GPIO struct {
	Name string

	lock    sync.Mutex
	trigger gpio.PinIO
	echo    gpio.PinIO
	timeout time.Duration
	clock   clock.Clock
}

// NewGPIO looks up the trigger and echo pins by name (e.g. "GPIO23") in the
// periph registry.  A zero timeout selects DefaultEchoTimeout.
func NewGPIO(name, triggerPin, echoPin string, timeout time.Duration, clk clock.Clock) (*GPIO, error) {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialise periph host")
	}

	trigger := gpioreg.ByName(triggerPin)
	if trigger == nil {
		return nil, errors.Errorf("%s: no such trigger pin %q", name, triggerPin)
	}
	echo := gpioreg.ByName(echoPin)
	if echo == nil {
		return nil, errors.Errorf("%s: no such echo pin %q", name, echoPin)
	}
	if err := trigger.Out(gpio.Low); err != nil {
		return nil, errors.Wrapf(err, "%s: cannot set trigger pin low", name)
	}
	if err := echo.In(gpio.PullDown, gpio.NoEdge); err != nil {
		return nil, errors.Wrapf(err, "%s: cannot configure echo pin", name)
	}

	if timeout <= 0 {
		timeout = DefaultEchoTimeout
	}
	if clk == nil {
		clk = clock.New()
	}
	return &GPIO{
		Name:    name,
		trigger: trigger,
		echo:    echo,
		timeout: timeout,
		clock:   clk,
	}, nil
}

func (g *GPIO) MeasureEcho(ctx context.Context) (time.Duration, error) {
	g.lock.Lock()
	defer g.lock.Unlock()

	// Low for 2us, high for 10us, then low again starts a ping.
	if err := g.trigger.Out(gpio.Low); err != nil {
		return 0, errors.Wrapf(err, "%s: cannot set trigger pin low", g.Name)
	}
	g.spin(triggerSettle)
	if err := g.trigger.Out(gpio.High); err != nil {
		return 0, errors.Wrapf(err, "%s: cannot set trigger pin high", g.Name)
	}
	g.spin(triggerPulse)
	if err := g.trigger.Out(gpio.Low); err != nil {
		return 0, errors.Wrapf(err, "%s: cannot set trigger pin low", g.Name)
	}

	// The echo line rises when the pulse is sent and falls when the echo
	// comes back.
	if err := g.waitForLevel(ctx, gpio.High); err != nil {
		return 0, errors.Wrapf(err, "%s: waiting for pulse start", g.Name)
	}
	start := g.clock.Now()
	if err := g.waitForLevel(ctx, gpio.Low); err != nil {
		return 0, errors.Wrapf(err, "%s: waiting for echo", g.Name)
	}
	return g.clock.Since(start), nil
}

// waitForLevel busy-polls the echo line until it reads level.  It gives up
// once the timeout has passed.
func (g *GPIO) waitForLevel(ctx context.Context, level gpio.Level) error {
	deadline := g.clock.Now().Add(g.timeout)
	for g.echo.Read() != level {
		if err := ctx.Err(); err != nil {
			return err
		}
		if g.clock.Now().After(deadline) {
			return ErrSensorTimeout
		}
	}
	return nil
}

func (g *GPIO) spin(d time.Duration) {
	start := g.clock.Now()
	for g.clock.Since(start) < d {
	}
}

// Close returns the trigger line to low.
func (g *GPIO) Close() error {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.trigger.Out(gpio.Low)
}
