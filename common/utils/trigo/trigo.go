package trigo

import (
	"math"

	"github.com/john-holland/physicscards/common/utils/number"
	"github.com/john-holland/physicscards/common/utils/vector"
)

// NormalizeDegrees maps any angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// AngleDeltaDegrees returns the signed shortest arc from a to b, in (-180, 180].
func AngleDeltaDegrees(a float64, b float64) float64 {
	delta := NormalizeDegrees(b) - NormalizeDegrees(a)
	if delta > 180 {
		delta -= 360
	} else if delta <= -180 {
		delta += 360
	}
	return delta
}

// RotationDeltaDegrees is the magnitude of the per-axis shortest-arc deltas
// between two Euler rotations, both expressed in degrees.
func RotationDeltaDegrees(a vector.Vector3, b vector.Vector3) float64 {
	ax, ay, az := a.Get()
	bx, by, bz := b.Get()

	dx := AngleDeltaDegrees(ax, bx)
	dy := AngleDeltaDegrees(ay, by)
	dz := AngleDeltaDegrees(az, bz)

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// InWrappedDegreeRange reports whether angle falls inside [lower, upper],
// where lower > upper means the range wraps through 0/360 (e.g. 350..10).
// A degenerate bound (lower == upper == 0) is unbounded and always passes.
func InWrappedDegreeRange(lower float64, upper float64, angle float64) bool {
	if number.IsZero(lower) && number.IsZero(upper) {
		return true
	}

	lower = NormalizeDegrees(lower)
	upper = NormalizeDegrees(upper)
	angle = NormalizeDegrees(angle)

	if lower <= upper {
		return angle >= lower && angle <= upper
	}

	// wrapped range
	return angle >= lower || angle <= upper
}

// WrappedRangeWidth is the angular width of [lower, upper] with wraparound;
// the degenerate bound reads as the full circle.
func WrappedRangeWidth(lower float64, upper float64) float64 {
	if number.IsZero(lower) && number.IsZero(upper) {
		return 360
	}

	lower = NormalizeDegrees(lower)
	upper = NormalizeDegrees(upper)

	if lower <= upper {
		return upper - lower
	}

	return 360 - lower + upper
}

// WrappedRangeCenter is the midpoint of [lower, upper] with wraparound.
func WrappedRangeCenter(lower float64, upper float64) float64 {
	lower = NormalizeDegrees(lower)
	return NormalizeDegrees(lower + WrappedRangeWidth(lower, upper)/2)
}

func FullCircleAngleToSignedHalfCircleAngle(rad float64) float64 {
	if rad > math.Pi {
		rad -= math.Pi * 2
	} else if rad < -math.Pi {
		rad += math.Pi * 2
	}

	return rad
}

// AngleBetweenDegrees is the unsigned angle between two direction vectors.
func AngleBetweenDegrees(a vector.Vector3, b vector.Vector3) float64 {
	magprod := a.Mag() * b.Mag()
	if number.IsZero(magprod) {
		return 0
	}

	cos := number.Clamp(a.Dot(b)/magprod, -1, 1)
	return number.RadianToDegree(math.Acos(cos))
}
