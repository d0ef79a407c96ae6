package navigator

import (
	"math"

	"github.com/tigerbot-team/rovernav/pkg/angle"
)

// MergeCompensation folds pending lateral compensation into a step value.
//
// comp is the signed drift (positive = leftward) incurred while travelling on
// driftFrom.  The drift axis is driftFrom-90 for positive compensation and
// driftFrom+90 for negative.  If that axis is within 90 degrees of heading the
// value is reduced by |comp|, otherwise it is increased.
func MergeCompensation(value, comp float64, driftFrom, heading angle.Heading) float64 {
	if comp == 0 {
		return value
	}
	axis := driftFrom.Add(90)
	if comp > 0 {
		axis = driftFrom.Sub(90)
	}
	if axis.Diff(heading).Abs() < 90 {
		return value - math.Abs(comp)
	}
	return value + math.Abs(comp)
}

// mergePending consumes the controller's compensation accumulator.
func (c *Controller) mergePending(value float64, heading angle.Heading) float64 {
	merged := MergeCompensation(value, c.lateralComp, c.driftHeading, heading)
	c.log.Infow("Merged lateral compensation",
		"compensation", c.lateralComp,
		"drift_heading", c.driftHeading.Float(),
		"heading", heading.Float(),
		"value", value,
		"merged", merged)
	c.lateralComp = 0
	return merged
}
