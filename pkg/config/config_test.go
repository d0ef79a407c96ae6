package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.viam.com/test"

	"github.com/tigerbot-team/rovernav/pkg/navigator"
)

func TestDefaultsWhenMissing(t *testing.T) {
	t.Setenv("JOYSTICK_DEVICE", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), zap.NewNop().Sugar())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg, test.ShouldResemble, Default())
}

func TestOverlayAndEnv(t *testing.T) {
	t.Setenv("JOYSTICK_DEVICE", "/dev/input/js3")
	path := filepath.Join(t.TempDir(), "navigator.yaml")
	test.That(t, os.WriteFile(path, []byte(`
log_level: debug
auto_start: true
navigator:
  extra_clearance_cm: 15
  compensation_target: next_forward
hardware:
  invert_left: true
sensors:
  echo_timeout: 20ms
  left: {trigger: GPIO16, echo: GPIO20}
`), 0o644), test.ShouldBeNil)

	cfg, err := Load(path, zap.NewNop().Sugar())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.LogLevel, test.ShouldEqual, "debug")
	test.That(t, cfg.AutoStart, test.ShouldBeTrue)
	test.That(t, cfg.JoystickDevice, test.ShouldEqual, "/dev/input/js3")
	test.That(t, cfg.Navigator.ExtraClearanceCM, test.ShouldEqual, 15.0)
	test.That(t, cfg.Navigator.SafeDistanceCM, test.ShouldEqual, 20.0)
	test.That(t, cfg.Navigator.CompensationTarget, test.ShouldEqual, navigator.CompensateNextForward)
	test.That(t, cfg.Hardware.InvertLeft, test.ShouldBeTrue)
	test.That(t, cfg.Hardware.RightPWM, test.ShouldEqual, 2)
	test.That(t, cfg.Sensors.EchoTimeout, test.ShouldEqual, 20*time.Millisecond)
	test.That(t, cfg.Sensors.Left, test.ShouldResemble, SensorPins{Trigger: "GPIO16", Echo: "GPIO20"})
	test.That(t, cfg.Sensors.Front, test.ShouldResemble, Default().Sensors.Front)
}

func TestLoadRejects(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"typo":       "navigatr: {}\n",
		"bad yaml":   "navigator: [\n",
		"no pin":     "sensors: {right: {trigger: GPIO5, echo: ''}}\n",
		"bad nav":    "navigator: {increment_cm: 0}\n",
		"no timeout": "sensors: {echo_timeout: 0s}\n",
	} {
		path := filepath.Join(dir, name+".yaml")
		test.That(t, os.WriteFile(path, []byte(body), 0o644), test.ShouldBeNil)
		if _, err := Load(path, zap.NewNop().Sugar()); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestWriteInUseRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in-use.yaml")
	want := Default()
	want.Navigator.IncrementInterval = 25 * time.Millisecond
	test.That(t, WriteInUse(path, want), test.ShouldBeNil)

	got, err := Load(path, zap.NewNop().Sugar())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got.Navigator.IncrementInterval, test.ShouldEqual, 25*time.Millisecond)
	test.That(t, got.Sensors, test.ShouldResemble, want.Sensors)
}

func TestShippedConfigLoads(t *testing.T) {
	t.Setenv("JOYSTICK_DEVICE", "")
	cfg, err := Load(filepath.Join("..", "..", "cfg", "navigator.yaml"), zap.NewNop().Sugar())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Hardware.PWMAddr, test.ShouldEqual, 0x40)
	test.That(t, cfg.Hardware.InvertRight, test.ShouldBeTrue)
}
