package cards

import (
	"math"

	"github.com/john-holland/physicscards/common/utils/number"
	"github.com/john-holland/physicscards/common/utils/trigo"
	"github.com/john-holland/physicscards/common/utils/vector"
)

type BodyPart int

const (
	BodyPartGeneric BodyPart = iota
	BodyPartShoulder
	BodyPartElbow
	BodyPartKnee
	BodyPartWrist
	BodyPartAnkle
	BodyPartHip
	BodyPartSpine
	BodyPartNeck
	BodyPartJaw
)

func (p BodyPart) String() string {
	switch p {
	case BodyPartShoulder:
		return "shoulder"
	case BodyPartElbow:
		return "elbow"
	case BodyPartKnee:
		return "knee"
	case BodyPartWrist:
		return "wrist"
	case BodyPartAnkle:
		return "ankle"
	case BodyPartHip:
		return "hip"
	case BodyPartSpine:
		return "spine"
	case BodyPartNeck:
		return "neck"
	case BodyPartJaw:
		return "jaw"
	}
	return "generic"
}

type axisRange struct {
	lower float64
	upper float64
}

// Default radial tolerance table per body-part type, Euler degrees.
// Ranges with lower > upper wrap through 0/360.
var defaultTolerances = map[BodyPart][3]axisRange{
	BodyPartShoulder: {{240, 120}, {240, 120}, {270, 90}}, // ball joint, wide
	BodyPartElbow:    {{0, 150}, {350, 10}, {350, 10}},    // hinge
	BodyPartKnee:     {{0, 150}, {350, 10}, {350, 10}},    // hinge
	BodyPartWrist:    {{330, 30}, {340, 20}, {340, 20}},   // narrow
	BodyPartAnkle:    {{330, 30}, {340, 20}, {340, 20}},   // narrow
	BodyPartHip:      {{290, 120}, {315, 45}, {315, 45}},
	BodyPartSpine:    {{330, 30}, {330, 30}, {330, 30}},
	BodyPartNeck:     {{300, 60}, {300, 60}, {315, 45}},
	BodyPartJaw:      {{355, 30}, {350, 10}, {355, 5}}, // opens down, barely sideways
	BodyPartGeneric:  {{315, 45}, {315, 45}, {315, 45}},
}

// DefaultToleranceFor exposes the per-part default radial bounds.
func DefaultToleranceFor(part BodyPart) (lower vector.Vector3, upper vector.Vector3) {
	tolerances, ok := defaultTolerances[part]
	if !ok {
		tolerances = defaultTolerances[BodyPartGeneric]
	}

	lower = vector.MakeVector3(tolerances[0].lower, tolerances[1].lower, tolerances[2].lower)
	upper = vector.MakeVector3(tolerances[0].upper, tolerances[1].upper, tolerances[2].upper)
	return lower, upper
}

// JointBounds are the physical joint constraints reported by the skeleton,
// when the joint exposes any.
type JointBounds struct {
	Lower vector.Vector3
	Upper vector.Vector3
}

// Padding applied around an associated card's required rotation when widening
// derived radial bounds.
const cardRotationTolerance = 10.0

// EstablishLimits derives radial bounds for a body part: physical joint
// constraints when present, otherwise the default tolerance table, in both
// cases unioned with the required root rotations of any associated cards.
func EstablishLimits(part BodyPart, bounds *JointBounds, associated []*GoodSection) SectionLimits {
	limits := MakeDefaultLimits()
	limits.UseRadialLimits = true

	if bounds != nil {
		limits.RadialLower = bounds.Lower
		limits.RadialUpper = bounds.Upper
	} else {
		limits.RadialLower, limits.RadialUpper = DefaultToleranceFor(part)
	}

	for _, card := range associated {
		if card == nil || card.RequiredState == nil {
			continue
		}

		rx, ry, rz := card.RequiredState.RootRotation.Get()
		lx, ly, lz := limits.RadialLower.Get()
		ux, uy, uz := limits.RadialUpper.Get()

		lx, ux = expandWrappedRange(lx, ux, rx, cardRotationTolerance)
		ly, uy = expandWrappedRange(ly, uy, ry, cardRotationTolerance)
		lz, uz = expandWrappedRange(lz, uz, rz, cardRotationTolerance)

		limits.RadialLower = vector.MakeVector3(lx, ly, lz)
		limits.RadialUpper = vector.MakeVector3(ux, uy, uz)
	}

	return limits
}

// expandWrappedRange widens [lower, upper] until angle±pad fits, moving
// whichever edge is nearer. The degenerate unbounded range stays unbounded.
func expandWrappedRange(lower float64, upper float64, angle float64, pad float64) (float64, float64) {
	if number.IsZero(lower) && number.IsZero(upper) {
		return lower, upper
	}

	for _, target := range []float64{angle - pad, angle + pad} {
		target = trigo.NormalizeDegrees(target)
		if trigo.InWrappedDegreeRange(lower, upper, target) {
			continue
		}

		toLower := math.Abs(trigo.AngleDeltaDegrees(target, lower))
		toUpper := math.Abs(trigo.AngleDeltaDegrees(target, upper))

		if toLower < toUpper {
			lower = target
		} else {
			upper = target
		}
	}

	return lower, upper
}
