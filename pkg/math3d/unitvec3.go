package math3d

import (
	"errors"
	"fmt"
	"math"
)

// UnitVec3 represents a direction in 3D space: a vector of length one.
// Values are produced by NewUnitVec3 or Vec3.Unit; constructing one by hand
// is valid only if the components already have unit length.
type UnitVec3 struct {
	X, Y, Z float64
}

// NewUnitVec3 normalizes (x, y, z) into a unit direction. The zero vector
// has no direction and is rejected.
func NewUnitVec3(x, y, z float64) (UnitVec3, error) {
	u, ok := Vec3{x, y, z}.Unit()
	if !ok {
		return UnitVec3{}, errors.New("math3d: zero vector has no direction")
	}
	return u, nil
}

// Vec3 returns the direction as a plain vector.
func (u UnitVec3) Vec3() Vec3 {
	return Vec3{u.X, u.Y, u.Z}
}

// Dot returns the dot product u · v, the cosine of the angle between the
// two directions.
func (u UnitVec3) Dot(v UnitVec3) float64 {
	return u.X*v.X + u.Y*v.Y + u.Z*v.Z
}

// Cross returns the cross product u × v.
func (u UnitVec3) Cross(v UnitVec3) Vec3 {
	return u.Vec3().Cross(v.Vec3())
}

// Scale returns the vector of length s in direction u.
func (u UnitVec3) Scale(s float64) Vec3 {
	return Vec3{u.X * s, u.Y * s, u.Z * s}
}

// Negate returns the opposite direction.
func (u UnitVec3) Negate() UnitVec3 {
	return UnitVec3{-u.X, -u.Y, -u.Z}
}

// AngleTo returns the angle between two directions in radians, in [0, π].
// atan2 of the cross and dot products keeps full precision for near-zero
// angles, where acos of the dot product alone loses it.
func (u UnitVec3) AngleTo(v UnitVec3) float64 {
	return math.Atan2(u.Cross(v).Len(), u.Dot(v))
}

// IsParallelTo reports whether u and v point along the same axis within the
// given angular tolerance in radians. Sign is ignored: anti-parallel
// directions count as parallel.
func (u UnitVec3) IsParallelTo(v UnitVec3, tol float64) bool {
	// Angle to the nearest of v and -v.
	a := math.Atan2(u.Cross(v).Len(), math.Abs(u.Dot(v)))
	return a <= tol
}

// String formats the direction as "[x, y, z]".
func (u UnitVec3) String() string {
	return fmt.Sprintf("[%g, %g, %g]", u.X, u.Y, u.Z)
}
