package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/geomkit/geom3/pkg/math3d"
)

func mustPlane(t *testing.T, p math3d.Point3, normal math3d.Vec3) Plane {
	t.Helper()
	pl, err := PlaneThrough(p, normal)
	if err != nil {
		t.Fatalf("PlaneThrough(%v, %v) failed: %v", p, normal, err)
	}
	return pl
}

func TestNewPlaneNormalizes(t *testing.T) {
	// 2x + 0y + 0z + 6 = 0 is the plane x = -3 regardless of scaling.
	pl, err := NewPlane(math3d.V3(2, 0, 0), 6)
	if err != nil {
		t.Fatalf("NewPlane failed: %v", err)
	}
	if math.Abs(pl.SignedDistanceTo(math3d.P3(-3, 7, 1))) > 1e-12 {
		t.Errorf("point on plane has distance %v", pl.SignedDistanceTo(math3d.P3(-3, 7, 1)))
	}
	if math.Abs(pl.SignedDistanceTo(math3d.P3(0, 0, 0))-3) > 1e-12 {
		t.Errorf("origin distance = %v, want 3", pl.SignedDistanceTo(math3d.P3(0, 0, 0)))
	}

	if _, err := NewPlane(math3d.Zero3(), 1); !errors.Is(err, ErrDegenerate) {
		t.Errorf("zero normal: err = %v, want ErrDegenerate", err)
	}
}

func TestPlaneFromPoints(t *testing.T) {
	pl, err := PlaneFromPoints(math3d.P3(0, 0, 2), math3d.P3(1, 0, 2), math3d.P3(0, 1, 2))
	if err != nil {
		t.Fatalf("PlaneFromPoints failed: %v", err)
	}
	if math.Abs(math.Abs(pl.Normal.Z)-1) > 1e-12 {
		t.Errorf("normal = %v, want ±z", pl.Normal)
	}
	if math.Abs(pl.SignedDistanceTo(math3d.P3(5, -3, 2))) > 1e-12 {
		t.Errorf("coplanar point has nonzero distance")
	}

	if _, err := PlaneFromPoints(math3d.P3(0, 0, 0), math3d.P3(1, 1, 1), math3d.P3(2, 2, 2)); !errors.Is(err, ErrDegenerate) {
		t.Errorf("collinear points: err = %v, want ErrDegenerate", err)
	}
}

func TestSignedDistanceTo(t *testing.T) {
	pl := mustPlane(t, math3d.P3(0, 0, 0), math3d.V3(0, 0, 1)) // z = 0

	tests := []struct {
		name  string
		point math3d.Point3
		want  float64
	}{
		{"above", math3d.P3(3, -1, 4), 4},
		{"below", math3d.P3(0, 9, -2.5), -2.5},
		{"on plane", math3d.P3(100, 100, 0), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := pl.SignedDistanceTo(tc.point); math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("SignedDistanceTo(%v) = %v, want %v", tc.point, got, tc.want)
			}
		})
	}
}

func TestPlaneProject(t *testing.T) {
	pl := mustPlane(t, math3d.P3(0, 0, 0), math3d.V3(0, 0, 1)) // z = 0

	s := mustSegment(t, math3d.P3(0, 0, 3), math3d.P3(10, 4, 7))
	proj, err := pl.Project(s)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if !proj.Start().EqualWithin(math3d.P3(0, 0, 0), 1e-12) ||
		!proj.End().EqualWithin(math3d.P3(10, 4, 0), 1e-12) {
		t.Errorf("Project = %v", proj)
	}

	// Projecting again is a no-op on an in-plane segment.
	again, err := pl.Project(proj)
	if err != nil {
		t.Fatalf("second Project failed: %v", err)
	}
	if !again.Equals(proj) {
		t.Errorf("projection is not idempotent: %v vs %v", again, proj)
	}

	// A segment along the normal collapses to a point.
	vertical := mustSegment(t, math3d.P3(2, 2, 1), math3d.P3(2, 2, 9))
	if _, err := pl.Project(vertical); !errors.Is(err, ErrDegenerate) {
		t.Errorf("perpendicular segment: err = %v, want ErrDegenerate", err)
	}
}

func TestPlaneIntersection(t *testing.T) {
	pl := mustPlane(t, math3d.P3(0, 0, 5), math3d.V3(0, 0, 1)) // z = 5

	// The supporting line is intersected, so the hit may lie beyond the
	// segment's endpoints.
	tests := []struct {
		name string
		seg  Segment
		want math3d.Point3
		hit  bool
	}{
		{"crossing", mustSegment(t, math3d.P3(0, 0, 0), math3d.P3(0, 0, 10)), math3d.P3(0, 0, 5), true},
		{"beyond end", mustSegment(t, math3d.P3(1, 2, 0), math3d.P3(1, 2, 1)), math3d.P3(1, 2, 5), true},
		{"oblique", mustSegment(t, math3d.P3(0, 0, 0), math3d.P3(1, 0, 1)), math3d.P3(5, 0, 5), true},
		{"parallel", mustSegment(t, math3d.P3(0, 0, 1), math3d.P3(4, 4, 1)), math3d.Point3{}, false},
		{"in plane", mustSegment(t, math3d.P3(0, 0, 5), math3d.P3(1, 0, 5)), math3d.Point3{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, hit := pl.Intersection(tc.seg, DefaultIntersectionTolerance)
			if hit != tc.hit {
				t.Fatalf("Intersection hit = %v, want %v", hit, tc.hit)
			}
			if hit && !got.EqualWithin(tc.want, 1e-9) {
				t.Errorf("Intersection = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSegmentSurfaceDelegation(t *testing.T) {
	// Segment methods defer entirely to the Surface implementation.
	pl := mustPlane(t, math3d.P3(0, 0, 0), math3d.V3(0, 1, 0)) // y = 0
	s := mustSegment(t, math3d.P3(0, -2, 0), math3d.P3(0, 2, 4))

	proj, err := s.ProjectOn(pl)
	if err != nil {
		t.Fatalf("ProjectOn failed: %v", err)
	}
	if !proj.Start().EqualWithin(math3d.P3(0, 0, 0), 1e-12) ||
		!proj.End().EqualWithin(math3d.P3(0, 0, 4), 1e-12) {
		t.Errorf("ProjectOn = %v", proj)
	}

	hit, ok := s.IntersectionWith(pl)
	if !ok {
		t.Fatal("IntersectionWith reported no hit")
	}
	if !hit.EqualWithin(math3d.P3(0, 0, 2), 1e-9) {
		t.Errorf("IntersectionWith = %v, want (0, 0, 2)", hit)
	}

	// A slightly tilted near-parallel segment is a miss only when the
	// tolerance is loosened.
	tilted := mustSegment(t, math3d.P3(0, 0, 0), math3d.P3(1, 1e-8, 0))
	if _, ok := tilted.IntersectionWithin(pl, 1e-6); ok {
		t.Error("near-parallel segment should miss at a loose tolerance")
	}
	if _, ok := tilted.IntersectionWithin(pl, DefaultIntersectionTolerance); !ok {
		t.Error("near-parallel segment should hit at the default tolerance")
	}
}
