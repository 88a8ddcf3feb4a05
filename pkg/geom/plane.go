package geom

import (
	"fmt"
	"math"

	"github.com/geomkit/geom3/pkg/math3d"
)

// Plane represents a plane using the equation n·p + D = 0, where n is the
// unit normal and D the signed offset from the origin.
type Plane struct {
	Normal math3d.UnitVec3
	D      float64
}

// NewPlane creates a plane from a normal (normalized here, need not be unit
// length) and offset. D is scaled along with the normal, so any multiple of
// the same equation yields the same plane. The zero normal fails with
// ErrDegenerate.
func NewPlane(normal math3d.Vec3, d float64) (Plane, error) {
	l := normal.Len()
	if l == 0 {
		return Plane{}, fmt.Errorf("%w: plane normal is the zero vector", ErrDegenerate)
	}
	u, _ := normal.Unit()
	return Plane{Normal: u, D: d / l}, nil
}

// PlaneThrough creates the plane through point p with the given normal.
func PlaneThrough(p math3d.Point3, normal math3d.Vec3) (Plane, error) {
	u, ok := normal.Unit()
	if !ok {
		return Plane{}, fmt.Errorf("%w: plane normal is the zero vector", ErrDegenerate)
	}
	return Plane{Normal: u, D: -u.Vec3().Dot(p.Vec3())}, nil
}

// PlaneFromPoints creates the plane through three points. Collinear or
// coincident points fail with ErrDegenerate.
func PlaneFromPoints(a, b, c math3d.Point3) (Plane, error) {
	n := b.Sub(a).Cross(c.Sub(a))
	u, ok := n.Unit()
	if !ok {
		return Plane{}, fmt.Errorf("%w: points %v, %v, %v do not span a plane", ErrDegenerate, a, b, c)
	}
	return Plane{Normal: u, D: -u.Vec3().Dot(a.Vec3())}, nil
}

// SignedDistanceTo returns the signed distance from the plane to a point.
// Positive means the same side as the normal.
func (p Plane) SignedDistanceTo(pt math3d.Point3) float64 {
	return p.Normal.Vec3().Dot(pt.Vec3()) + p.D
}

// projectPoint drops a point onto the plane along the normal.
func (p Plane) projectPoint(pt math3d.Point3) math3d.Point3 {
	return pt.Add(p.Normal.Scale(-p.SignedDistanceTo(pt)))
}

// Project returns the image of a segment on the plane. A segment
// perpendicular to the plane collapses to a point and fails with
// ErrDegenerate.
func (p Plane) Project(s Segment) (Segment, error) {
	return New(p.projectPoint(s.Start()), p.projectPoint(s.End()))
}

// Intersection returns the point where the segment's supporting line meets
// the plane, and false when line and plane are parallel within tolerance
// (|normal · direction| < tolerance).
func (p Plane) Intersection(s Segment, tolerance float64) (math3d.Point3, bool) {
	dir := s.Direction()
	denom := p.Normal.Dot(dir)
	if math.Abs(denom) < tolerance {
		return math3d.Point3{}, false
	}
	t := -p.SignedDistanceTo(s.Start()) / denom
	return s.Start().Add(dir.Scale(t)), true
}

// String formats the plane equation.
func (p Plane) String() string {
	return fmt.Sprintf("%gx + %gy + %gz + %g = 0", p.Normal.X, p.Normal.Y, p.Normal.Z, p.D)
}
