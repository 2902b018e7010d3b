package vector

import (
	"bytes"
	"fmt"
	"math"

	"github.com/john-holland/physicscards/common/utils/number"
)

type Vector3 struct {
	x float64
	y float64
	z float64
}

func MakeVector3(x float64, y float64, z float64) Vector3 {
	return Vector3{x, y, z}
}

// Returns a null Vector3
func MakeNullVector3() Vector3 {
	return MakeVector3(0, 0, 0)
}

func MakeUpVector3() Vector3 {
	return MakeVector3(0, 1, 0)
}

func MakeForwardVector3() Vector3 {
	return MakeVector3(0, 0, 1)
}

func NewVector3(x float64, y float64, z float64) *Vector3 {
	return &Vector3{x, y, z}
}

func (v Vector3) Get() (float64, float64, float64) {
	return v.x, v.y, v.z
}

func (v Vector3) GetX() float64 {
	return v.x
}

func (v Vector3) GetY() float64 {
	return v.y
}

func (v Vector3) GetZ() float64 {
	return v.z
}

func (v Vector3) MarshalJSON() ([]byte, error) {
	propfmt := "%.6f"
	buffer := bytes.NewBufferString("[")
	buffer.WriteString(fmt.Sprintf(propfmt, v.x))
	buffer.WriteString(",")
	buffer.WriteString(fmt.Sprintf(propfmt, v.y))
	buffer.WriteString(",")
	buffer.WriteString(fmt.Sprintf(propfmt, v.z))
	buffer.WriteString("]")
	return buffer.Bytes(), nil
}

func (v *Vector3) UnmarshalJSON(data []byte) error {
	var x, y, z float64
	if _, err := fmt.Sscanf(string(data), "[%f,%f,%f]", &x, &y, &z); err != nil {
		return err
	}

	v.x, v.y, v.z = x, y, z
	return nil
}

func (a Vector3) Clone() Vector3 {
	return Vector3{
		x: a.x,
		y: a.y,
		z: a.z,
	}
}

func (a Vector3) Add(b Vector3) Vector3 {
	a.x += b.x
	a.y += b.y
	a.z += b.z
	return a
}

func (a Vector3) Sub(b Vector3) Vector3 {
	a.x -= b.x
	a.y -= b.y
	a.z -= b.z
	return a
}

func (a Vector3) MultScalar(f float64) Vector3 {
	a.x *= f
	a.y *= f
	a.z *= f
	return a
}

func (a Vector3) DivScalar(f float64) Vector3 {
	a.x /= f
	a.y /= f
	a.z /= f
	return a
}

func (a Vector3) Mag() float64 {
	return math.Sqrt(a.MagSq())
}

func (a Vector3) MagSq() float64 {
	return (a.x*a.x + a.y*a.y + a.z*a.z)
}

func (a Vector3) SetMag(mag float64) Vector3 {
	return a.Normalize().MultScalar(mag)
}

func (a Vector3) Normalize() Vector3 {
	mag := a.Mag()
	if mag > 0 {
		return a.DivScalar(mag)
	}
	return a
}

func (a Vector3) Limit(max float64) Vector3 {
	mSq := a.MagSq()

	if mSq > max*max {
		return a.Normalize().MultScalar(max)
	}

	return a
}

func (a Vector3) Dot(b Vector3) float64 {
	return a.x*b.x + a.y*b.y + a.z*b.z
}

func (a Vector3) Cross(b Vector3) Vector3 {
	return Vector3{
		x: a.y*b.z - a.z*b.y,
		y: a.z*b.x - a.x*b.z,
		z: a.x*b.y - a.y*b.x,
	}
}

func (a Vector3) DistanceTo(b Vector3) float64 {
	return b.Sub(a).Mag()
}

func (a Vector3) Lerp(b Vector3, t float64) Vector3 {
	t = number.Clamp01(t)
	return a.Add(b.Sub(a).MultScalar(t))
}

func (a Vector3) IsNull() bool {
	return number.IsZero(a.MagSq())
}

func (a Vector3) Equals(b Vector3) bool {
	return number.IsZero(a.x-b.x) && number.IsZero(a.y-b.y) && number.IsZero(a.z-b.z)
}

// Horizontal projects onto the ground plane (x, z); y is the vertical axis.
func (a Vector3) Horizontal() Vector2 {
	return MakeVector2(a.x, a.z)
}

func (a Vector3) String() string {
	return fmt.Sprintf("<Vector3(%.2f, %.2f, %.2f)>", a.x, a.y, a.z)
}
