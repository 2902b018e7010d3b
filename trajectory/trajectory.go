// Package trajectory gates ranged-action cards with a parabolic, drag-free
// throw model.
package trajectory

import (
	"math"

	"github.com/john-holland/physicscards/common/utils/vector"
)

// Nominal horizontal traversal rate used by the time-of-flight heuristic.
const horizontalRate = 20.0

// Floor applied when the estimated flight time is near zero.
const minTimeOfFlight = 0.1

// MovingTarget search resolution.
const movingTargetSteps = 64

type Solution struct {
	Feasible        bool
	InitialVelocity vector.Vector3
	TimeOfFlight    float64
	Distance        float64
}

// Compute solves a throw from origin to a stationary target. The flight time
// is a heuristic, not an optimal-time solve: the larger of the free-fall time
// over the height difference and the horizontal distance over a nominal
// traversal rate, floored at minTimeOfFlight. The initial velocity follows
// algebraically from displacement/t − 0.5·g·t, which lands exactly on target
// at t under the no-drag model.
//
// maxLaunchSpeed <= 0 means unconstrained.
func Compute(origin vector.Vector3, target vector.Vector3, gravity vector.Vector3, maxLaunchSpeed float64) Solution {
	displacement := target.Sub(origin)
	horizontal := displacement.Horizontal().Mag()

	g := gravity.Mag()
	deltaHeight := math.Abs(displacement.GetY())

	t := horizontal / horizontalRate
	if g > 0 {
		fall := math.Sqrt(2 * deltaHeight / g)
		if fall > t {
			t = fall
		}
	}
	if t < minTimeOfFlight {
		t = minTimeOfFlight
	}

	velocity := displacement.DivScalar(t).Sub(gravity.MultScalar(0.5 * t))

	return Solution{
		Feasible:        maxLaunchSpeed <= 0 || velocity.Mag() <= maxLaunchSpeed,
		InitialVelocity: velocity,
		TimeOfFlight:    t,
		Distance:        horizontal,
	}
}

// ComputeMovingTarget extends Compute to a linearly-moving target by
// discretized search: movingTargetSteps candidate intercept times up to
// maxTime, keeping the earliest whose required launch speed fits. No
// closed-form intercept is attempted; the tolerance needed does not justify
// one.
func ComputeMovingTarget(origin vector.Vector3, target vector.Vector3, targetVelocity vector.Vector3, gravity vector.Vector3, maxLaunchSpeed float64, maxTime float64) Solution {
	if maxTime <= 0 {
		maxTime = 1
	}

	for i := 1; i <= movingTargetSteps; i++ {
		t := maxTime * float64(i) / movingTargetSteps

		intercept := target.Add(targetVelocity.MultScalar(t))
		displacement := intercept.Sub(origin)

		velocity := displacement.DivScalar(t).Sub(gravity.MultScalar(0.5 * t))

		if maxLaunchSpeed <= 0 || velocity.Mag() <= maxLaunchSpeed {
			return Solution{
				Feasible:        true,
				InitialVelocity: velocity,
				TimeOfFlight:    t,
				Distance:        displacement.Horizontal().Mag(),
			}
		}
	}

	return Solution{}
}

// InRange tests a horizontal distance against a card's throw range; a zero
// max range never accepts (the card is not throw-capable).
func InRange(distance float64, minRange float64, maxRange float64) bool {
	if maxRange <= 0 {
		return false
	}
	return distance >= minRange && distance <= maxRange
}

// IsInRangeAndFeasible gates a stationary-target throw on both the physical
// solve and the card's configured range.
func IsInRangeAndFeasible(origin vector.Vector3, target vector.Vector3, gravity vector.Vector3, maxLaunchSpeed float64, minRange float64, maxRange float64) (Solution, bool) {
	solution := Compute(origin, target, gravity, maxLaunchSpeed)
	return solution, solution.Feasible && InRange(solution.Distance, minRange, maxRange)
}

// IsInRangeAndFeasibleMovingTarget is the moving-target variant.
func IsInRangeAndFeasibleMovingTarget(origin vector.Vector3, target vector.Vector3, targetVelocity vector.Vector3, gravity vector.Vector3, maxLaunchSpeed float64, maxTime float64, minRange float64, maxRange float64) (Solution, bool) {
	solution := ComputeMovingTarget(origin, target, targetVelocity, gravity, maxLaunchSpeed, maxTime)
	return solution, solution.Feasible && InRange(solution.Distance, minRange, maxRange)
}
