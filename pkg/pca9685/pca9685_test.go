package pca9685

import (
	"testing"

	"go.viam.com/test"
)

func TestPreScale(t *testing.T) {
	// Datasheet example: 200Hz -> 0x1e.
	test.That(t, PreScale(200), test.ShouldEqual, byte(0x1e))
	test.That(t, PreScale(50), test.ShouldEqual, byte(121))
	test.That(t, PreScale(1e6), test.ShouldEqual, byte(3))
	test.That(t, PreScale(1), test.ShouldEqual, byte(255))
}

func TestDutyRegisters(t *testing.T) {
	test.That(t, DutyRegisters(0), test.ShouldResemble, [4]byte{0, 0, 0, 0x10})
	test.That(t, DutyRegisters(-1), test.ShouldResemble, [4]byte{0, 0, 0, 0x10})
	test.That(t, DutyRegisters(1), test.ShouldResemble, [4]byte{0, 0x10, 0, 0})
	test.That(t, DutyRegisters(7), test.ShouldResemble, [4]byte{0, 0x10, 0, 0})

	half := DutyRegisters(0.5)
	off := uint16(half[2]) | uint16(half[3])<<8
	test.That(t, off, test.ShouldEqual, uint16(2048))
	test.That(t, half[0], test.ShouldEqual, byte(0))
	test.That(t, half[1], test.ShouldEqual, byte(0))
}
