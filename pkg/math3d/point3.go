package math3d

import (
	"fmt"
	"math"
)

// Point3 represents a location in 3D space. Unlike Vec3 it denotes a
// position, not a displacement: points subtract to vectors and translate
// by vectors.
type Point3 struct {
	X, Y, Z float64
}

// P3 creates a new Point3.
func P3(x, y, z float64) Point3 {
	return Point3{x, y, z}
}

// Origin returns the point at (0, 0, 0).
func Origin() Point3 {
	return Point3{}
}

// Sub returns the vector from q to p.
func (p Point3) Sub(q Point3) Vec3 {
	return Vec3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Add returns the point translated by v.
func (p Point3) Add(v Vec3) Point3 {
	return Point3{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Vec3 returns the position vector from the origin to p.
func (p Point3) Vec3() Vec3 {
	return Vec3{p.X, p.Y, p.Z}
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point3) DistanceTo(q Point3) float64 {
	return p.Sub(q).Len()
}

// Midpoint returns the point halfway between p and q.
func (p Point3) Midpoint(q Point3) Point3 {
	return Point3{(p.X + q.X) / 2, (p.Y + q.Y) / 2, (p.Z + q.Z) / 2}
}

// EqualWithin reports whether every coordinate of p is within tol of the
// corresponding coordinate of q.
func (p Point3) EqualWithin(q Point3, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol &&
		math.Abs(p.Y-q.Y) <= tol &&
		math.Abs(p.Z-q.Z) <= tol
}

// Hash folds the coordinate bit patterns together with a fixed odd
// multiplier so nearby points do not cluster.
func (p Point3) Hash() uint64 {
	h := math.Float64bits(p.X)
	h = h*31 + math.Float64bits(p.Y)
	h = h*31 + math.Float64bits(p.Z)
	return h
}

// String formats the point as "(x, y, z)".
func (p Point3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}
