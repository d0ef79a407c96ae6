package ranging

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpiotest"
)

func newTestGPIO(echoLevel gpio.Level) (*GPIO, *gpiotest.Pin) {
	trigger := &gpiotest.Pin{N: "trigger", L: gpio.Low}
	return &GPIO{
		Name:    "test",
		trigger: trigger,
		echo:    &gpiotest.Pin{N: "echo", L: echoLevel},
		timeout: time.Millisecond,
		clock:   clock.New(),
	}, trigger
}

func TestStuckLowEchoTimesOut(t *testing.T) {
	g, trigger := newTestGPIO(gpio.Low)
	_, err := g.MeasureEcho(context.Background())
	test.That(t, errors.Cause(err), test.ShouldEqual, ErrSensorTimeout)
	test.That(t, err.Error(), test.ShouldContainSubstring, "pulse start")
	test.That(t, trigger.Read(), test.ShouldEqual, gpio.Low)
}

func TestStuckHighEchoTimesOut(t *testing.T) {
	g, _ := newTestGPIO(gpio.High)
	_, err := g.MeasureEcho(context.Background())
	test.That(t, errors.Cause(err), test.ShouldEqual, ErrSensorTimeout)
	test.That(t, err.Error(), test.ShouldContainSubstring, "waiting for echo")
}

func TestEchoWaitHonoursContext(t *testing.T) {
	g, _ := newTestGPIO(gpio.Low)
	g.timeout = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.MeasureEcho(ctx)
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
}

func TestClose(t *testing.T) {
	g, trigger := newTestGPIO(gpio.Low)
	test.That(t, trigger.Out(gpio.High), test.ShouldBeNil)
	test.That(t, g.Close(), test.ShouldBeNil)
	test.That(t, trigger.Read(), test.ShouldEqual, gpio.Low)
}
