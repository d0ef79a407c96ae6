package hardware

import "context"

type Interface interface {
	Drive
	Steering

	PlaySound(path string)
	Shutdown() error
}

// Drive is the drive actuator.  Forward keeps the wheels turning until Stop;
// there is no velocity feedback.
type Drive interface {
	// Forward drives straight ahead at speed, a fraction of full power.
	Forward(speed float64) error
	Stop() error
}

// Steering rotates the bot in place.  Both calls block until the turn is
// complete.  Negative angles turn the other way.
type Steering interface {
	TurnLeft(ctx context.Context, degrees float64) error
	TurnRight(ctx context.Context, degrees float64) error
}

// Config describes how the motors hang off the PCA9685 PWM board.  Each
// motor has a PWM (speed) channel and a direction channel driving an H-bridge.
type Config struct {
	I2CDevice string  `yaml:"i2c_device"`
	PWMAddr   int     `yaml:"pwm_addr"`
	PWMFreqHz float64 `yaml:"pwm_freq_hz"`

	LeftPWM     int  `yaml:"left_pwm"`
	LeftDir     int  `yaml:"left_dir"`
	InvertLeft  bool `yaml:"invert_left"`
	RightPWM    int  `yaml:"right_pwm"`
	RightDir    int  `yaml:"right_dir"`
	InvertRight bool `yaml:"invert_right"`

	// Duty used for in-place spins and the wheel surface speed it produces.
	SpinDuty        float64 `yaml:"spin_duty"`
	SpinSpeedCMPerS float64 `yaml:"spin_speed_cm_per_s"`
}

func DefaultConfig() Config {
	return Config{
		I2CDevice:       "/dev/i2c-1",
		PWMAddr:         0x40,
		PWMFreqHz:       1000,
		LeftPWM:         0,
		LeftDir:         1,
		RightPWM:        2,
		RightDir:        3,
		SpinDuty:        0.4,
		SpinSpeedCMPerS: 12,
	}
}
