package chassis

import (
	"math"
	"time"
)

const (
	WheelDiameterCM float64 = 6.5
	WheelCircumCM           = WheelDiameterCM * math.Pi

	// Distance between the centres of the left and right drive wheels.
	WheelTrackCM = 14.0
)

var (
	// Distance a wheel covers when the bot spins a full circle in place.
	SpinCircumCM = math.Pi * WheelTrackCM
)

// SpinDuration is how long the wheels need to run, in opposite directions at
// wheelSpeedCMPerS, to rotate the bot in place by degrees.
func SpinDuration(degrees, wheelSpeedCMPerS float64) time.Duration {
	if wheelSpeedCMPerS <= 0 {
		return 0
	}
	arcCM := math.Abs(degrees) / 360 * SpinCircumCM
	return time.Duration(arcCM / wheelSpeedCMPerS * float64(time.Second))
}

// DriveDuration is how long it takes to cover distanceCM at speedCMPerS.
func DriveDuration(distanceCM, speedCMPerS float64) time.Duration {
	if speedCMPerS <= 0 || distanceCM <= 0 {
		return 0
	}
	return time.Duration(distanceCM / speedCMPerS * float64(time.Second))
}
