package render

import (
	"github.com/geomkit/geom3/pkg/geom"
	"github.com/geomkit/geom3/pkg/math3d"
)

// SceneRenderer draws segment geometry through a camera into a framebuffer.
type SceneRenderer struct {
	camera *Camera
	fb     *Framebuffer
}

// NewSceneRenderer creates a renderer for the given camera and framebuffer.
func NewSceneRenderer(camera *Camera, fb *Framebuffer) *SceneRenderer {
	return &SceneRenderer{
		camera: camera,
		fb:     fb,
	}
}

// DrawSegment draws one segment under a model transform.
func (r *SceneRenderer) DrawSegment(s geom.Segment, transform math3d.Mat4, c Color) {
	r.drawLine3(
		transform.MulVec3(s.Start().Vec3()),
		transform.MulVec3(s.End().Vec3()),
		c,
	)
}

// DrawSegments draws a slice of segments under a shared transform.
func (r *SceneRenderer) DrawSegments(segs []geom.Segment, transform math3d.Mat4, c Color) {
	for _, s := range segs {
		r.DrawSegment(s, transform, c)
	}
}

// DrawPoint draws a point as a small three-axis cross.
func (r *SceneRenderer) DrawPoint(p math3d.Point3, transform math3d.Mat4, size float64, c Color) {
	pos := transform.MulVec3(p.Vec3())
	half := size / 2
	r.drawLine3(math3d.V3(pos.X-half, pos.Y, pos.Z), math3d.V3(pos.X+half, pos.Y, pos.Z), c)
	r.drawLine3(math3d.V3(pos.X, pos.Y-half, pos.Z), math3d.V3(pos.X, pos.Y+half, pos.Z), c)
	r.drawLine3(math3d.V3(pos.X, pos.Y, pos.Z-half), math3d.V3(pos.X, pos.Y, pos.Z+half), c)
}

// DrawAxes draws the coordinate axes at the origin.
func (r *SceneRenderer) DrawAxes(length float64) {
	origin := math3d.Zero3()
	r.drawLine3(origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	r.drawLine3(origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	r.drawLine3(origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}

// DrawGrid draws a grid on the XZ plane at y=0.
func (r *SceneRenderer) DrawGrid(size, step float64, c Color) {
	half := size / 2
	for x := -half; x <= half; x += step {
		r.drawLine3(math3d.V3(x, 0, -half), math3d.V3(x, 0, half), c)
	}
	for z := -half; z <= half; z += step {
		r.drawLine3(math3d.V3(-half, 0, z), math3d.V3(half, 0, z), c)
	}
}

// drawLine3 projects a world-space line and rasterizes it.
func (r *SceneRenderer) drawLine3(p1, p2 math3d.Vec3, c Color) {
	x1, y1, _, vis1 := r.camera.WorldToScreen(p1, r.fb.Width, r.fb.Height)
	x2, y2, _, vis2 := r.camera.WorldToScreen(p2, r.fb.Width, r.fb.Height)

	// Only draw if at least one endpoint is on screen; proper line clipping
	// is not worth it at terminal resolution.
	if !vis1 && !vis2 {
		return
	}

	r.fb.DrawLine(int(x1), int(y1), int(x2), int(y2), c)
}
