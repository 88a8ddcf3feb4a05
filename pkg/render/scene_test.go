package render

import (
	"math"
	"testing"

	"github.com/geomkit/geom3/pkg/geom"
	"github.com/geomkit/geom3/pkg/math3d"
)

func testCamera(width, height int) *Camera {
	camera := NewCamera()
	camera.SetAspectRatio(float64(width) / float64(height))
	camera.SetClipPlanes(0.1, 100)
	camera.SetPosition(math3d.V3(0, 0, 5))
	camera.LookAt(math3d.V3(0, 0, 0))
	return camera
}

func TestWorldToScreenCenter(t *testing.T) {
	camera := testCamera(80, 48)

	// A point the camera looks straight at projects to the screen center.
	x, y, _, visible := camera.WorldToScreen(math3d.Zero3(), 80, 48)
	if !visible {
		t.Fatal("origin should be visible")
	}
	if math.Abs(x-40) > 1 || math.Abs(y-24) > 1 {
		t.Errorf("origin projected to (%v, %v), want near (40, 24)", x, y)
	}
}

func TestWorldToScreenBehindCamera(t *testing.T) {
	camera := testCamera(80, 48)
	if _, _, _, visible := camera.WorldToScreen(math3d.V3(0, 0, 10), 80, 48); visible {
		t.Error("point behind the camera should not be visible")
	}
}

func TestDrawSegmentRasterizes(t *testing.T) {
	fb := NewFramebuffer(80, 48)
	camera := testCamera(fb.Width, fb.Height)
	scene := NewSceneRenderer(camera, fb)

	s, err := geom.New(math3d.P3(-1, 0, 0), math3d.P3(1, 0, 0))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	scene.DrawSegment(s, math3d.Identity(), ColorWhite)

	lit := 0
	for _, p := range fb.Pixels {
		if p == ColorWhite {
			lit++
		}
	}
	if lit == 0 {
		t.Error("segment in front of the camera drew no pixels")
	}
	// A horizontal segment through the view center should cross the middle row.
	found := false
	for x := 0; x < fb.Width; x++ {
		if fb.GetPixel(x, fb.Height/2) == ColorWhite {
			found = true
			break
		}
	}
	if !found {
		t.Error("segment missing from the middle row")
	}
}

func TestDrawSegmentOffscreen(t *testing.T) {
	fb := NewFramebuffer(40, 24)
	camera := testCamera(fb.Width, fb.Height)
	scene := NewSceneRenderer(camera, fb)

	s, err := geom.New(math3d.P3(0, 0, 50), math3d.P3(1, 0, 50))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	scene.DrawSegment(s, math3d.Identity(), ColorWhite)

	for i, p := range fb.Pixels {
		if p != (Color{}) {
			t.Fatalf("offscreen segment lit pixel %d", i)
		}
	}
}

func TestDrawPointMarks(t *testing.T) {
	fb := NewFramebuffer(80, 48)
	camera := testCamera(fb.Width, fb.Height)
	scene := NewSceneRenderer(camera, fb)

	scene.DrawPoint(math3d.Origin(), math3d.Identity(), 0.5, ColorYellow)

	lit := 0
	for _, p := range fb.Pixels {
		if p == ColorYellow {
			lit++
		}
	}
	if lit == 0 {
		t.Error("point marker drew no pixels")
	}
}
