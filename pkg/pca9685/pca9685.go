package pca9685

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/io/i2c"
)

const (
	DefaultAddr = 0x40

	RegMode1 = 0x00
	RegMode2 = 0x01

	// Each output has two 16-bit (low byte first) registers.
	// First register is the on time, second is the off time.
	RegLEDBase = 0x06

	RegPreScale = 0xfe // Pre-scaler for PWM frequency.

	NumChannels = 16

	oscillatorHz = 25_000_000
	PWMMax       = 4095

	// Bit 4 of the high byte of the on/off registers forces the output fully
	// on/off.
	fullBit = 0x10
)

var ErrChannelOutOfRange = errors.New("PCA9685 channel out of range")

type Interface interface {
	Configure(freqHz float64) error
	// SetDuty sets the duty cycle of a channel, clamped to [0, 1].
	SetDuty(channel int, duty float64) error
	// SetLevel drives a channel fully on or fully off, for use as a
	// direction line.
	SetLevel(channel int, high bool) error
	Close() error
}

type PCA9685 struct {
	dev *i2c.Device
}

func New(deviceFile string, addr int) (Interface, error) {
	dev, err := i2c.Open(&i2c.Devfs{Dev: deviceFile}, addr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open PCA9685 at %#x on %s", addr, deviceFile)
	}
	return &PCA9685{
		dev: dev,
	}, nil
}

// PreScale calculates the pre-scaler register value for a PWM frequency.
func PreScale(freqHz float64) byte {
	v := math.Round(oscillatorHz/(4096*freqHz)) - 1
	if v < 3 {
		v = 3
	} else if v > 255 {
		v = 255
	}
	return byte(v)
}

func (p *PCA9685) Configure(freqHz float64) (err error) {
	// Put device to sleep.
	err = p.dev.WriteReg(RegMode1, []byte{0x11})
	if err != nil {
		return
	}
	err = p.dev.WriteReg(RegPreScale, []byte{PreScale(freqHz)})
	if err != nil {
		return
	}
	// Trigger a reset
	err = p.dev.WriteReg(RegMode1, []byte{0x01})
	if err != nil {
		return
	}
	// Required delay after reset.
	time.Sleep(1 * time.Millisecond)
	// Enable auto-increment.
	err = p.dev.WriteReg(RegMode1, []byte{0xa1})
	return
}

// DutyRegisters calculates the on/off register contents for a duty cycle.
func DutyRegisters(duty float64) [4]byte {
	switch {
	case duty <= 0:
		return [4]byte{0, 0, 0, fullBit}
	case duty >= 1:
		return [4]byte{0, fullBit, 0, 0}
	}
	off := uint16(math.Round(PWMMax * duty))
	return [4]byte{0, 0, byte(off & 0xff), byte(off >> 8)}
}

func (p *PCA9685) SetDuty(channel int, duty float64) error {
	if channel < 0 || channel >= NumChannels {
		return errors.Wrapf(ErrChannelOutOfRange, "channel %d", channel)
	}
	regs := DutyRegisters(duty)
	return p.dev.WriteReg(byte(RegLEDBase+channel*4), regs[:])
}

func (p *PCA9685) SetLevel(channel int, high bool) error {
	if high {
		return p.SetDuty(channel, 1)
	}
	return p.SetDuty(channel, 0)
}

func (p *PCA9685) Close() error {
	return p.dev.Close()
}
