// Package geom provides the segment algebra for geom3: immutable 3D line
// segments with closest-point projection, parallelism tests, planar
// projection and intersection, permissive coordinate-text parsing, and an
// XML round trip.
package geom

import (
	"errors"
	"math"

	"github.com/geomkit/geom3/pkg/math3d"
)

var (
	// ErrDegenerate reports geometry whose defining points coincide, leaving
	// length and direction undefined. It is never silently corrected.
	ErrDegenerate = errors.New("geom: degenerate geometry")

	// ErrParse reports coordinate text that does not match the grammar or
	// cannot be converted to a number. The two causes are deliberately not
	// distinguished.
	ErrParse = errors.New("geom: unparsable coordinate text")
)

const (
	// DefaultAngleTolerance is the angular tolerance, in radians, used by
	// Segment.IsParallelTo: twice the machine epsilon, so only directions
	// equal up to floating-point rounding count as parallel.
	DefaultAngleTolerance = 2 * math3d.Epsilon

	// DefaultIntersectionTolerance is the parallelism tolerance used by
	// Segment.IntersectionWith: the smallest positive float64, which makes
	// the test exact unless the caller overrides it.
	DefaultIntersectionTolerance = math.SmallestNonzeroFloat64
)

// Surface is the capability a segment needs from a planar surface. The
// segment core delegates to it without any knowledge of the surface's
// representation.
type Surface interface {
	// Project returns the image of the segment on the surface. Segments
	// that collapse to a point under projection fail with ErrDegenerate.
	Project(Segment) (Segment, error)

	// Intersection returns the point where the segment's supporting line
	// meets the surface, and false when the two are parallel within the
	// given tolerance.
	Intersection(Segment, float64) (math3d.Point3, bool)
}
