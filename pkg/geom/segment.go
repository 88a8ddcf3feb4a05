package geom

import (
	"fmt"
	"math"

	"github.com/geomkit/geom3/pkg/math3d"
)

// Segment is an immutable line segment between two distinct points.
// Length and direction are derived from the endpoints in one normalization
// pass at construction, so values carry consistent derived state and are
// safe to share across goroutines.
type Segment struct {
	start, end math3d.Point3

	length    float64
	direction math3d.UnitVec3
}

// New creates a segment from start to end. The two points must differ
// exactly; coincident endpoints fail with ErrDegenerate.
func New(start, end math3d.Point3) (Segment, error) {
	if start == end {
		return Segment{}, fmt.Errorf("%w: segment endpoints coincide at %v", ErrDegenerate, start)
	}
	return newUnchecked(start, end), nil
}

// newUnchecked builds a segment without the degeneracy check. Used by the
// XML decoder, which reconstructs previously valid instances.
func newUnchecked(start, end math3d.Point3) Segment {
	s := Segment{start: start, end: end}
	v := end.Sub(start)
	s.length = v.Len()
	if u, ok := v.Unit(); ok {
		s.direction = u
	}
	return s
}

// Start returns the start endpoint.
func (s Segment) Start() math3d.Point3 {
	return s.start
}

// End returns the end endpoint.
func (s Segment) End() math3d.Point3 {
	return s.end
}

// Length returns the distance between the endpoints.
func (s Segment) Length() float64 {
	return s.length
}

// Direction returns the unit vector from start to end.
func (s Segment) Direction() math3d.UnitVec3 {
	return s.direction
}

// ClosestPointTo projects p onto the line through the segment. With
// clampToSegment the projection is restricted to the closed segment;
// without it the result may lie anywhere on the supporting infinite line.
func (s Segment) ClosestPointTo(p math3d.Point3, clampToSegment bool) math3d.Point3 {
	t := p.Sub(s.start).Dot(s.direction.Vec3())
	if clampToSegment {
		t = math.Max(0, math.Min(t, s.length))
	}
	return s.start.Add(s.direction.Scale(t))
}

// SegmentTo returns the segment from the closest point on s (clamped or
// not, as for ClosestPointTo) to p. When p lies exactly on the line the
// result would have zero length, which fails with ErrDegenerate.
func (s Segment) SegmentTo(p math3d.Point3, clampToSegment bool) (Segment, error) {
	return New(s.ClosestPointTo(p, clampToSegment), p)
}

// ProjectOn returns the image of the segment on the surface.
func (s Segment) ProjectOn(sur Surface) (Segment, error) {
	return sur.Project(s)
}

// IntersectionWith returns the point where the segment's supporting line
// meets the surface, using DefaultIntersectionTolerance for the parallel
// test. The second result is false when there is no intersection.
func (s Segment) IntersectionWith(sur Surface) (math3d.Point3, bool) {
	return sur.Intersection(s, DefaultIntersectionTolerance)
}

// IntersectionWithin is IntersectionWith with an explicit parallelism
// tolerance.
func (s Segment) IntersectionWithin(sur Surface, tolerance float64) (math3d.Point3, bool) {
	return sur.Intersection(s, tolerance)
}

// IsParallelTo reports whether the two segments share an axis within
// DefaultAngleTolerance. Intended for segments expected to be parallel up
// to floating-point rounding only.
func (s Segment) IsParallelTo(other Segment) bool {
	return s.IsParallelToWithin(other, DefaultAngleTolerance)
}

// IsParallelToWithin reports whether the two segments share an axis within
// the given angular tolerance in radians. Opposite directions count as
// parallel.
func (s Segment) IsParallelToWithin(other Segment, angleTolerance float64) bool {
	return s.direction.IsParallelTo(other.direction, angleTolerance)
}

// Equals reports exact, endpoint-order-sensitive equality: the reversed
// segment is a different value.
func (s Segment) Equals(other Segment) bool {
	return s.start == other.start && s.end == other.end
}

// Hash combines the endpoint hashes with a fixed odd multiplier.
func (s Segment) Hash() uint64 {
	return s.start.Hash()*31 + s.end.Hash()
}

// String formats the segment as "start -> end".
func (s Segment) String() string {
	return fmt.Sprintf("%v -> %v", s.start, s.end)
}
