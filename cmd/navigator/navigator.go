package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tigerbot-team/rovernav/pkg/config"
	"github.com/tigerbot-team/rovernav/pkg/hardware"
	"github.com/tigerbot-team/rovernav/pkg/joystick"
	"github.com/tigerbot-team/rovernav/pkg/logging"
	"github.com/tigerbot-team/rovernav/pkg/navigator"
	"github.com/tigerbot-team/rovernav/pkg/obstacle"
	"github.com/tigerbot-team/rovernav/pkg/plan"
	"github.com/tigerbot-team/rovernav/pkg/ranging"
	"github.com/tigerbot-team/rovernav/pkg/trace"
)

func main() {
	log, level, err := logging.New("navigator", "info")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	log.Info("---- Navigator ----")
	log.Infow("Runtime", "GOMAXPROCS", runtime.GOMAXPROCS(0))

	cfgPath := os.Getenv("NAVIGATOR_CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultPath
	}
	cfg, err := config.Load(cfgPath, log)
	if err != nil {
		log.Fatalw("Bad config", "error", err)
	}
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		log.Warnw("Ignoring bad log level", "level", cfg.LogLevel)
	}
	if err := config.WriteInUse(config.InUsePath, cfg); err != nil {
		log.Warnw("Failed to write in-use config", "error", err)
	}
	if cfg.TracePNG != "" {
		cfg.Navigator.RecordTrail = true
	}

	p, err := plan.Load(cfg.PlanFile)
	if err != nil {
		log.Fatalw("Failed to load plan", "path", cfg.PlanFile, "error", err)
	}
	log.Infow("Loaded plan", "path", cfg.PlanFile, "steps", len(p), "forward_cm", p.TotalForward())

	// Our global context, we cancel it to trigger shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clk := clock.New()
	hw, err := hardware.New(cfg.Hardware, clk, log.Named("hw"))
	if err != nil {
		log.Fatalw("Failed to initialise hardware", "error", err)
	}
	defer func() {
		log.Info("Zeroing motors for shut down")
		if err := hw.Shutdown(); err != nil {
			log.Errorw("Hardware shutdown failed", "error", err)
		}
	}()

	front, left, right, closeSensors, err := openSensors(cfg.Sensors, clk)
	if err != nil {
		log.Errorw("Failed to open rangefinders", "error", err)
		return
	}
	defer func() {
		if err := closeSensors(); err != nil {
			log.Warnw("Failed to release sensor pins", "error", err)
		}
	}()
	sensor := obstacle.New(front, left, right, cfg.Navigator.SafeDistanceCM, log.Named("sensor"))

	nav, err := navigator.New(cfg.Navigator, hw, sensor, clk, log)
	if err != nil {
		log.Errorw("Failed to create navigator", "error", err)
		return
	}

	registerSignalHandlers(log, cancel, nav.Start)
	go watchJoystick(ctx, log, cfg.JoystickDevice, nav)

	hw.PlaySound("/sounds/navigatorstart.wav")
	if cfg.AutoStart {
		nav.Start()
	}

	err = nav.Run(ctx, p, func(r navigator.Result, err error) {
		if err == nil {
			log.Infow("Run done", "completed", r.Completed, "position", r.Position.String(),
				"heading", r.Heading.Float(), "avoidances", r.Avoidances(), "skipped", r.StepErrors())
		}
		if cfg.TracePNG == "" {
			return
		}
		if err := trace.SavePNG(cfg.TracePNG, trace.FromResult(r, nil), 512); err != nil {
			log.Warnw("Failed to draw track", "error", err)
		}
	})
	log.Infow("Navigator exiting", "reason", err)
}

func openSensors(cfg config.Sensors, clk clock.Clock) (front, left, right ranging.EchoTimer, closeAll func() error, err error) {
	var opened []*ranging.GPIO
	closeAll = func() error {
		var err error
		for _, g := range opened {
			err = multierr.Append(err, g.Close())
		}
		return err
	}
	var lines [3]ranging.EchoTimer
	for i, s := range []struct {
		name string
		pins config.SensorPins
	}{
		{"front", cfg.Front},
		{"left", cfg.Left},
		{"right", cfg.Right},
	} {
		g, err := ranging.NewGPIO(s.name, s.pins.Trigger, s.pins.Echo, cfg.EchoTimeout, clk)
		if err != nil {
			return nil, nil, nil, nil, multierr.Append(err, closeAll())
		}
		opened = append(opened, g)
		lines[i] = g
	}
	return lines[0], lines[1], lines[2], closeAll, nil
}

// watchJoystick waits for the pad to appear and feeds its events to the
// navigator.  The pad is optional: SIGUSR1 or auto_start also start a run.
func watchJoystick(ctx context.Context, log *zap.SugaredLogger, device string, nav *navigator.Controller) {
	firstLog := true
	for ctx.Err() == nil {
		j, err := joystick.NewJoystick(device)
		if err != nil {
			if firstLog {
				log.Infow("Waiting for joystick", "device", device, "error", err)
				firstLog = false
			}
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}
		log.Infow("Opened joystick", "device", device)
		events := make(chan *joystick.Event, 1)
		go func() {
			err := j.Loop(ctx, events, log.Named("joy"))
			log.Warnw("Joystick loop exited", "error", err)
		}()
		for event := range events {
			nav.OnJoystickEvent(event)
		}
		firstLog = true
	}
}

func registerSignalHandlers(log *zap.SugaredLogger, cancelFunc context.CancelFunc, start func()) {
	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT, syscall.SIGUSR1)
	go func() {
		for s := range signals {
			log.Infow("Signal", "signal", s.String())
			if s == syscall.SIGUSR1 {
				start()
				continue
			}
			// Hook Ctrl-C to cause shut down.
			cancelFunc()
			time.Sleep(2 * time.Second)
			os.Exit(0)
		}
	}()
}
