package navigator

import (
	"testing"

	"go.viam.com/test"

	"github.com/tigerbot-team/rovernav/pkg/joystick"
)

func TestJoystickDrivesRunFlag(t *testing.T) {
	front, left, right := clearAll()
	c, _ := newTestController(t, testConfig(), front, left, right)

	button := func(number uint8, value int16) *joystick.Event {
		return &joystick.Event{Type: joystick.EventTypeButton, Number: number, Value: value}
	}

	c.OnJoystickEvent(button(joystick.ButtonR1, 0))
	test.That(t, c.Running(), test.ShouldBeFalse)
	c.OnJoystickEvent(button(joystick.ButtonR1, 1))
	test.That(t, c.Running(), test.ShouldBeTrue)
	c.OnJoystickEvent(&joystick.Event{Type: joystick.EventTypeAxis, Number: joystick.ButtonSquare, Value: 1})
	test.That(t, c.Running(), test.ShouldBeTrue)
	c.OnJoystickEvent(button(joystick.ButtonSquare, 1))
	test.That(t, c.Running(), test.ShouldBeFalse)
}
