package number

import (
	"math"
)

const epsilon = 1e-9

func IsZero(f float64) bool {
	return math.Abs(f) < epsilon
}

func Clamp(f float64, min float64, max float64) float64 {
	if f < min {
		return min
	}

	if f > max {
		return max
	}

	return f
}

// Clamp01 clamps into [0, 1]; NaN collapses to 0 so that scores built from
// degenerate inputs stay bounded.
func Clamp01(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}

	return Clamp(f, 0, 1)
}

func DegreeToRadian(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func RadianToDegree(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

func ToFixed(val float64, places int) (newVal float64) {
	roundOn := 0.5
	var round float64
	pow := math.Pow(10, float64(places))
	digit := pow * val
	_, div := math.Modf(digit)
	if div >= roundOn {
		round = math.Ceil(digit)
	} else {
		round = math.Floor(digit)
	}
	newVal = round / pow
	return
}
