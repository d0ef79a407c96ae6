// Package config loads the controller's YAML configuration.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v2"

	"github.com/tigerbot-team/rovernav/pkg/hardware"
	"github.com/tigerbot-team/rovernav/pkg/joystick"
	"github.com/tigerbot-team/rovernav/pkg/navigator"
	"github.com/tigerbot-team/rovernav/pkg/ranging"
)

const (
	DefaultPath = "/cfg/navigator.yaml"
	InUsePath   = "/cfg/navigator-in-use.yaml"
)

// SensorPins names the GPIO lines of one rangefinder, as periph knows them.
type SensorPins struct {
	Trigger string `yaml:"trigger"`
	Echo    string `yaml:"echo"`
}

type Sensors struct {
	Front       SensorPins    `yaml:"front"`
	Left        SensorPins    `yaml:"left"`
	Right       SensorPins    `yaml:"right"`
	EchoTimeout time.Duration `yaml:"echo_timeout"`
}

type Config struct {
	LogLevel       string `yaml:"log_level"`
	PlanFile       string `yaml:"plan_file"`
	AutoStart      bool   `yaml:"auto_start"`
	JoystickDevice string `yaml:"joystick_device"`
	// TracePNG, if set, is where each run's track is drawn.
	TracePNG string `yaml:"trace_png"`

	Navigator navigator.Config `yaml:"navigator"`
	Hardware  hardware.Config  `yaml:"hardware"`
	Sensors   Sensors          `yaml:"sensors"`
}

func Default() Config {
	return Config{
		LogLevel:       "info",
		PlanFile:       "/cfg/plan.json",
		JoystickDevice: joystick.DefaultDevice,
		TracePNG:       "/tmp/navigator-track.png",
		Navigator:      navigator.DefaultConfig(),
		Hardware:       hardware.DefaultConfig(),
		Sensors: Sensors{
			Front:       SensorPins{Trigger: "GPIO23", Echo: "GPIO24"},
			Left:        SensorPins{Trigger: "GPIO17", Echo: "GPIO27"},
			Right:       SensorPins{Trigger: "GPIO5", Echo: "GPIO6"},
			EchoTimeout: ranging.DefaultEchoTimeout,
		},
	}
}

// Load overlays the file at path, if there is one, on the defaults.  The
// JOYSTICK_DEVICE environment variable overrides the joystick device.
func Load(path string, log *zap.SugaredLogger) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		log.Infow("No config file, using defaults", "path", path)
	case err != nil:
		return cfg, errors.Wrapf(err, "failed to read config %s", path)
	default:
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "failed to parse config %s", path)
		}
	}
	if dev := os.Getenv("JOYSTICK_DEVICE"); dev != "" {
		cfg.JoystickDevice = dev
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if err := c.Navigator.Validate(); err != nil {
		return err
	}
	for name, pins := range map[string]SensorPins{
		"front": c.Sensors.Front,
		"left":  c.Sensors.Left,
		"right": c.Sensors.Right,
	} {
		if pins.Trigger == "" || pins.Echo == "" {
			return errors.Errorf("%s sensor needs both trigger and echo pins", name)
		}
	}
	if c.Sensors.EchoTimeout <= 0 {
		return errors.Errorf("echo timeout must be positive, not %v", c.Sensors.EchoTimeout)
	}
	return nil
}

// WriteInUse records the effective config so the operator can see what ran.
func WriteInUse(path string, c Config) error {
	data, err := yaml.Marshal(&c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	return os.WriteFile(path, data, 0o666)
}
