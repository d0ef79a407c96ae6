package hardware

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tigerbot-team/rovernav/pkg/chassis"
	"github.com/tigerbot-team/rovernav/pkg/pca9685"
	"github.com/tigerbot-team/rovernav/pkg/sound"
)

// Hardware is a two-wheel differential drive on a PCA9685.
type Hardware struct {
	cfg   Config
	clock clock.Clock
	log   *zap.SugaredLogger

	lock sync.Mutex
	pwm  pca9685.Interface

	soundLock    sync.Mutex
	soundsToPlay chan string
}

func New(cfg Config, clk clock.Clock, log *zap.SugaredLogger) (*Hardware, error) {
	pwm, err := pca9685.New(cfg.I2CDevice, cfg.PWMAddr)
	if err != nil {
		return nil, err
	}
	if err := pwm.Configure(cfg.PWMFreqHz); err != nil {
		_ = pwm.Close()
		return nil, errors.Wrap(err, "failed to configure PWM board")
	}
	return newWithPWM(cfg, pwm, clk, log, sound.InitSound(log))
}

func newWithPWM(cfg Config, pwm pca9685.Interface, clk clock.Clock, log *zap.SugaredLogger, sounds chan string) (*Hardware, error) {
	if clk == nil {
		clk = clock.New()
	}
	h := &Hardware{
		cfg:          cfg,
		clock:        clk,
		log:          log,
		pwm:          pwm,
		soundsToPlay: sounds,
	}
	if err := h.Stop(); err != nil {
		return nil, errors.Wrap(err, "failed to zero motors")
	}
	return h, nil
}

var _ Interface = (*Hardware)(nil)

func (h *Hardware) Forward(speed float64) error {
	h.log.Debugf("Forward at %.2f", speed)
	return h.setMotorSpeeds(speed, speed)
}

func (h *Hardware) Stop() error {
	return h.setMotorSpeeds(0, 0)
}

func (h *Hardware) TurnLeft(ctx context.Context, degrees float64) error {
	return h.spin(ctx, degrees)
}

func (h *Hardware) TurnRight(ctx context.Context, degrees float64) error {
	return h.spin(ctx, -degrees)
}

// spin rotates in place; positive degrees are anti-clockwise.  We have no
// yaw feedback on this chassis so the turn is timed from the wheel speed.
func (h *Hardware) spin(ctx context.Context, degrees float64) error {
	if degrees == 0 {
		return nil
	}
	h.lock.Lock()
	duty, speed := h.cfg.SpinDuty, h.cfg.SpinSpeedCMPerS
	h.lock.Unlock()
	if degrees < 0 {
		duty = -duty
	}
	d := chassis.SpinDuration(degrees, speed)
	h.log.Debugf("Spinning %.1f degrees for %v", degrees, d)

	if err := h.setMotorSpeeds(-duty, duty); err != nil {
		return multierr.Append(err, h.Stop())
	}
	timer := h.clock.Timer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return multierr.Append(ctx.Err(), h.Stop())
	case <-timer.C:
	}
	return h.Stop()
}

// SetSpinSpeed changes the wheel speed that spins are timed from.
func (h *Hardware) SetSpinSpeed(cmPerS float64) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.cfg.SpinSpeedCMPerS = cmPerS
}

func (h *Hardware) setMotorSpeeds(left, right float64) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.cfg.InvertLeft {
		left = -left
	}
	if h.cfg.InvertRight {
		right = -right
	}
	return multierr.Combine(
		h.setMotor(h.cfg.LeftPWM, h.cfg.LeftDir, left),
		h.setMotor(h.cfg.RightPWM, h.cfg.RightDir, right),
	)
}

func (h *Hardware) setMotor(pwmChan, dirChan int, speed float64) error {
	if err := h.pwm.SetLevel(dirChan, speed < 0); err != nil {
		return err
	}
	if speed < 0 {
		speed = -speed
	}
	return h.pwm.SetDuty(pwmChan, speed)
}

func (h *Hardware) PlaySound(path string) {
	if path == "" {
		return
	}
	h.soundLock.Lock()
	defer h.soundLock.Unlock()
	if h.soundsToPlay == nil {
		return
	}
	select {
	case h.soundsToPlay <- path:
		return
	case <-time.After(10 * time.Millisecond):
		h.log.Warnf("Timed out trying to play sound: %s", path)
	}
}

func (h *Hardware) Shutdown() error {
	err := h.Stop()
	h.soundLock.Lock()
	if h.soundsToPlay != nil {
		close(h.soundsToPlay)
		h.soundsToPlay = nil
	}
	h.soundLock.Unlock()
	h.lock.Lock()
	defer h.lock.Unlock()
	return multierr.Append(err, h.pwm.Close())
}
