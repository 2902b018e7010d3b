package cards

import (
	"math"

	"github.com/john-holland/physicscards/common/utils/number"
	"github.com/john-holland/physicscards/common/utils/trigo"
	"github.com/john-holland/physicscards/common/utils/vector"
	"github.com/john-holland/physicscards/ragdoll"
)

// Requirement estimates are deliberately coarse proportional models; scoring
// has to stay cheap enough to run over every candidate card per tick.
const (
	torquePerAngularDelta = 10.0 // estimated torque per unit of angular-velocity delta
	forcePerVelocityDelta = 8.0  // estimated force per unit of linear-velocity delta
)

// Blend weights for the four-factor limit score.
const (
	degreesScoreWeight  = 0.3
	torqueScoreWeight   = 0.3
	forceScoreWeight    = 0.2
	velocityScoreWeight = 0.2

	// When radial limits participate they take 20%, the rest rescales to 80%.
	radialScoreWeight = 0.2
)

// SectionLimits bounds what a card may demand of the ragdoll: scalar ceilings
// on pose delta, torque, force and velocity change, plus optional radial
// Euler bounds (with 350→10 style wraparound) and a bounded radial distance
// from a reference position.
type SectionLimits struct {
	MaxDegreesDifference     float64 `json:"maxDegreesDifference"`
	MaxTorque                float64 `json:"maxTorque"`
	MaxForce                 float64 `json:"maxForce"`
	MaxVelocityChange        float64 `json:"maxVelocityChange"`
	MaxAngularVelocityChange float64 `json:"maxAngularVelocityChange"`

	UseRadialLimits   bool           `json:"useRadialLimits"`
	RadialLower       vector.Vector3 `json:"radialLower"`
	RadialUpper       vector.Vector3 `json:"radialUpper"`
	RadialReference   vector.Vector3 `json:"radialReference"`
	MaxRadialDistance float64        `json:"maxRadialDistance"`
}

// MakeDefaultLimits returns permissive ceilings suitable for generated cards.
func MakeDefaultLimits() SectionLimits {
	return SectionLimits{
		MaxDegreesDifference:     90,
		MaxTorque:                100,
		MaxForce:                 200,
		MaxVelocityChange:        5,
		MaxAngularVelocityChange: 10,
	}
}

// requirements estimates what moving from current to required demands.
// A nil required state demands nothing.
func (limits SectionLimits) requirements(current ragdoll.State, required *ragdoll.State) (degrees, torque, force, velocity, angularVelocity float64) {
	if required == nil {
		return 0, 0, 0, 0, 0
	}

	degrees = current.RotationDelta(*required)

	angularVelocity = required.RootAngularVelocity.Sub(current.RootAngularVelocity).Mag()
	velocity = required.RootVelocity.Sub(current.RootVelocity).Mag()

	torque = angularVelocity * torquePerAngularDelta
	force = velocity * forcePerVelocityDelta

	return degrees, torque, force, velocity, angularVelocity
}

// exceeds reports requirement over ceiling; a ceiling <= 0 is unbounded.
func exceeds(requirement float64, ceiling float64) bool {
	return ceiling > 0 && requirement > ceiling
}

// inverseClampedScore is 1 − clamp01(requirement / ceiling); an unbounded
// ceiling always scores 1.
func inverseClampedScore(requirement float64, ceiling float64) float64 {
	if ceiling <= 0 {
		return 1
	}
	return 1 - number.Clamp01(requirement/ceiling)
}

// CheckFeasibility fails when any estimated requirement exceeds its ceiling
// or the radial check fails.
func (limits SectionLimits) CheckFeasibility(current ragdoll.State, required *ragdoll.State) bool {
	degrees, torque, force, velocity, angularVelocity := limits.requirements(current, required)

	if exceeds(degrees, limits.MaxDegreesDifference) {
		return false
	}
	if exceeds(torque, limits.MaxTorque) {
		return false
	}
	if exceeds(force, limits.MaxForce) {
		return false
	}
	if exceeds(velocity, limits.MaxVelocityChange) {
		return false
	}
	if exceeds(angularVelocity, limits.MaxAngularVelocityChange) {
		return false
	}

	return limits.RadialCheck(current)
}

// GetLimitScore blends the four inverse-clamped sub-scores; when radial
// limits are enabled the radial score joins at 20% and the blend rescales.
// Always in [0, 1].
func (limits SectionLimits) GetLimitScore(current ragdoll.State, required *ragdoll.State) float64 {
	return limits.GetLimitScoreWeighted(current, required,
		degreesScoreWeight, torqueScoreWeight, forceScoreWeight, velocityScoreWeight)
}

// GetLimitScoreWeighted is GetLimitScore with caller-supplied blend weights
// (the solver passes its tunables through here).
func (limits SectionLimits) GetLimitScoreWeighted(current ragdoll.State, required *ragdoll.State, degreesWeight, torqueWeight, forceWeight, velocityWeight float64) float64 {
	degrees, torque, force, velocity, _ := limits.requirements(current, required)

	score := inverseClampedScore(degrees, limits.MaxDegreesDifference)*degreesWeight +
		inverseClampedScore(torque, limits.MaxTorque)*torqueWeight +
		inverseClampedScore(force, limits.MaxForce)*forceWeight +
		inverseClampedScore(velocity, limits.MaxVelocityChange)*velocityWeight

	if limits.UseRadialLimits {
		score = score*(1-radialScoreWeight) + limits.RadialScore(current)*radialScoreWeight
	}

	return number.Clamp01(score)
}

// RadialCheck tests the root rotation against the per-axis wrapped bounds and
// (when configured) the root position against the bounded radial distance.
// With UseRadialLimits off it always passes.
func (limits SectionLimits) RadialCheck(current ragdoll.State) bool {
	if !limits.UseRadialLimits {
		return true
	}

	lx, ly, lz := limits.RadialLower.Get()
	ux, uy, uz := limits.RadialUpper.Get()
	ax, ay, az := current.RootRotation.Get()

	if !trigo.InWrappedDegreeRange(lx, ux, ax) ||
		!trigo.InWrappedDegreeRange(ly, uy, ay) ||
		!trigo.InWrappedDegreeRange(lz, uz, az) {
		return false
	}

	if limits.MaxRadialDistance > 0 {
		return current.RootPosition.DistanceTo(limits.RadialReference) <= limits.MaxRadialDistance
	}

	return true
}

// RadialScore is 1 − normalized distance from the range center, taking the
// minimum across axes: the most restrictive axis dominates. Degenerate axis
// bounds (lower == upper == 0) score 1. With UseRadialLimits off it is 1.
func (limits SectionLimits) RadialScore(current ragdoll.State) float64 {
	if !limits.UseRadialLimits {
		return 1
	}

	lx, ly, lz := limits.RadialLower.Get()
	ux, uy, uz := limits.RadialUpper.Get()
	ax, ay, az := current.RootRotation.Get()

	score := math.Min(radialAxisScore(lx, ux, ax),
		math.Min(radialAxisScore(ly, uy, ay), radialAxisScore(lz, uz, az)))

	if limits.MaxRadialDistance > 0 {
		distance := current.RootPosition.DistanceTo(limits.RadialReference)
		score = math.Min(score, 1-number.Clamp01(distance/limits.MaxRadialDistance))
	}

	return number.Clamp01(score)
}

func radialAxisScore(lower float64, upper float64, angle float64) float64 {
	if number.IsZero(lower) && number.IsZero(upper) {
		return 1
	}

	halfWidth := trigo.WrappedRangeWidth(lower, upper) / 2
	if halfWidth <= 0 {
		if number.IsZero(trigo.AngleDeltaDegrees(lower, angle)) {
			return 1
		}
		return 0
	}

	center := trigo.WrappedRangeCenter(lower, upper)
	distance := math.Abs(trigo.AngleDeltaDegrees(center, angle))

	return 1 - number.Clamp01(distance/halfWidth)
}

// RadialRangeTotal is the summed wrapped widths across axes; wider reads as
// "more comfortable" when ordering ties. Degenerate axes count the full
// circle, and disabled radial limits count all three.
func (limits SectionLimits) RadialRangeTotal() float64 {
	if !limits.UseRadialLimits {
		return 3 * 360
	}

	lx, ly, lz := limits.RadialLower.Get()
	ux, uy, uz := limits.RadialUpper.Get()

	return trigo.WrappedRangeWidth(lx, ux) +
		trigo.WrappedRangeWidth(ly, uy) +
		trigo.WrappedRangeWidth(lz, uz)
}
