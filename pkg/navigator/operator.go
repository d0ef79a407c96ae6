package navigator

import "github.com/tigerbot-team/rovernav/pkg/joystick"

// OnJoystickEvent maps the operator's pad onto the run flag: R1 starts the
// plan, Square stops it after the current step.
func (c *Controller) OnJoystickEvent(event *joystick.Event) {
	switch {
	case event.Pressed(joystick.ButtonR1):
		c.log.Info("R1 pressed: starting navigation")
		c.Start()
	case event.Pressed(joystick.ButtonSquare):
		c.log.Info("Square pressed: stopping navigation")
		c.Stop()
	}
}
