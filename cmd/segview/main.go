// segview - Terminal 3D segment viewer
// View segment geometry from glTF/GLB models, KML documents, encoded
// polylines, or plain text listings in your terminal.
//
// Controls:
//
//	Mouse drag  - Rotate (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset rotation
//	M           - Toggle closest-point markers
//	G           - Toggle grid
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/geomkit/geom3/pkg/geoio"
	"github.com/geomkit/geom3/pkg/geom"
	"github.com/geomkit/geom3/pkg/math3d"
	"github.com/geomkit/geom3/pkg/models"
	"github.com/geomkit/geom3/pkg/render"
)

var (
	targetFPS    = flag.Int("fps", 60, "Target FPS")
	bgColor      = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	polylineArg  = flag.String("polyline", "", "Google encoded polyline to view")
	kmlOut       = flag.String("kml", "", "Write loaded segments to a KML file and exit")
	snapshotOut  = flag.String("snapshot", "", "Render one frame to a PNG file and exit")
	snapshotSize = flag.String("size", "320x192", "Snapshot resolution (WxH)")
	showMarkers  = flag.Bool("markers", false, "Mark the closest point to the origin on each segment")
	showGrid     = flag.Bool("grid", true, "Draw the ground grid")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "segview - Terminal 3D segment viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: segview [options] [file.glb|file.gltf|file.kml|file.txt]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Rotate\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll left/right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  M           - Toggle markers\n")
		fmt.Fprintf(os.Stderr, "  G           - Toggle grid\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() < 1 && *polylineArg == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadSegments gathers segments from the positional file argument and the
// -polyline flag.
func loadSegments() ([]geom.Segment, string, error) {
	var segs []geom.Segment
	name := "polyline"

	if flag.NArg() >= 1 {
		path := flag.Arg(0)
		name = filepath.Base(path)

		fileSegs, err := loadFile(path)
		if err != nil {
			return nil, "", err
		}
		segs = append(segs, fileSegs...)
	}

	if *polylineArg != "" {
		trackSegs, err := geoio.DecodeTrack(*polylineArg)
		if err != nil {
			return nil, "", fmt.Errorf("decode polyline: %w", err)
		}
		segs = append(segs, trackSegs...)
	}

	if len(segs) == 0 {
		return nil, "", fmt.Errorf("no segments loaded")
	}
	return segs, name, nil
}

func loadFile(path string) ([]geom.Segment, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		segs, err := models.LoadSegments(path)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		return segs, nil
	case ".kml":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open KML: %w", err)
		}
		defer f.Close()
		segs, err := geoio.ReadSegments(f)
		if err != nil {
			return nil, fmt.Errorf("load KML: %w", err)
		}
		return segs, nil
	case ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open segments: %w", err)
		}
		defer f.Close()
		segs, err := geoio.ReadText(f)
		if err != nil {
			return nil, fmt.Errorf("load segments: %w", err)
		}
		return segs, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .glb, .gltf, .kml or .txt)", path)
	}
}

// fitTransform centers the segments and scales them into a 2-unit box.
func fitTransform(segs []geom.Segment) math3d.Mat4 {
	minPt := segs[0].Start().Vec3()
	maxPt := minPt
	for _, s := range segs {
		for _, p := range []math3d.Vec3{s.Start().Vec3(), s.End().Vec3()} {
			minPt = minPt.Min(p)
			maxPt = maxPt.Max(p)
		}
	}

	center := minPt.Add(maxPt).Scale(0.5)
	size := maxPt.Sub(minPt)
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim == 0 {
		return math3d.Translate(center.Negate())
	}
	scale := 2.0 / maxDim
	return math3d.Scale(math3d.V3(scale, scale, scale)).Mul(math3d.Translate(center.Negate()))
}

// RotationAxis tracks position and velocity for one rotation axis with spring decay
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewRotationAxis creates an axis with harmonica spring for smooth velocity decay
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0 using spring
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds rotation with harmonica spring physics
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

func NewRotationState(fps int) *RotationState {
	return &RotationState{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		Roll:  NewRotationAxis(fps),
		fps:   fps,
	}
}

func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// closestPointMarkers projects the origin onto every segment.
func closestPointMarkers(segs []geom.Segment) []math3d.Point3 {
	markers := make([]math3d.Point3, len(segs))
	for i, s := range segs {
		markers[i] = s.ClosestPointTo(math3d.Origin(), true)
	}
	return markers
}

// drawScene renders one frame of segments and overlays into the framebuffer.
func drawScene(scene *render.SceneRenderer, segs []geom.Segment, markers []math3d.Point3, transform math3d.Mat4, grid, marks bool) {
	if grid {
		scene.DrawGrid(4, 0.5, render.RGB(60, 60, 70))
	}
	scene.DrawAxes(1.5)
	scene.DrawSegments(segs, transform, render.RGB(0, 255, 128))
	if marks {
		for _, m := range markers {
			scene.DrawPoint(m, transform, 0.1, render.ColorYellow)
		}
	}
}

func run() error {
	segs, name, err := loadSegments()
	if err != nil {
		return err
	}

	if *kmlOut != "" {
		f, err := os.Create(*kmlOut)
		if err != nil {
			return fmt.Errorf("create KML: %w", err)
		}
		defer f.Close()
		if err := geoio.WriteSegments(f, name, segs); err != nil {
			return fmt.Errorf("write KML: %w", err)
		}
		fmt.Printf("Wrote %d segments to %s\n", len(segs), *kmlOut)
		return nil
	}

	// Parse background color
	var bgR, bgG, bgB uint8 = 30, 30, 40
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)
	bg := render.RGB(bgR, bgG, bgB)

	transform := fitTransform(segs)
	markers := closestPointMarkers(segs)

	if *snapshotOut != "" {
		return snapshot(segs, markers, transform, bg)
	}

	return view(segs, name, markers, transform, bg)
}

// snapshot renders a single offscreen frame to a PNG file.
func snapshot(segs []geom.Segment, markers []math3d.Point3, transform math3d.Mat4, bg render.Color) error {
	width, height := 320, 192
	fmt.Sscanf(*snapshotSize, "%dx%d", &width, &height)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid snapshot size %q", *snapshotSize)
	}

	fb := render.NewFramebuffer(width, height)
	camera := render.NewCamera()
	camera.SetAspectRatio(float64(width) / float64(height))
	camera.SetClipPlanes(0.1, 100)
	camera.SetPosition(math3d.V3(0, 0, 5))
	camera.LookAt(math3d.Zero3())
	scene := render.NewSceneRenderer(camera, fb)

	fb.Clear(bg)
	drawScene(scene, segs, markers, transform, *showGrid, *showMarkers)

	if err := fb.SavePNG(*snapshotOut); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	fmt.Printf("Wrote %dx%d snapshot to %s\n", width, height, *snapshotOut)
	return nil
}

// view runs the interactive terminal viewer.
func view(segs []geom.Segment, name string, markers []math3d.Point3, baseTransform math3d.Mat4, bg render.Color) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)

	camera := render.NewCamera()
	camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
	camera.SetFOV(math.Pi / 3)
	camera.SetClipPlanes(0.1, 100)
	camera.SetPosition(math3d.V3(0, 0, 5))
	camera.LookAt(math3d.Zero3())

	scene := render.NewSceneRenderer(camera, fb)

	fmt.Printf("Loaded: %s (%d segments)\n", name, len(segs))

	rotation := NewRotationState(*targetFPS)
	grid := *showGrid
	marks := *showMarkers

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Input state
	inputTorque := struct{ pitch, yaw, roll float64 }{}
	const torqueStrength = 3.0

	var mouseDown bool
	var lastMouseX, lastMouseY int
	cameraZ := 5.0

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				fb = render.NewFramebuffer(fbWidth, fbHeight)
				scene = render.NewSceneRenderer(camera, fb)
				camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("r"):
					rotation.Reset()
					cameraZ = 5.0
					camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("space"):
					rotation.ApplyImpulse(
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
					)
				case ev.MatchString("+", "="):
					cameraZ = math.Max(1, cameraZ-0.5)
					camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("-", "_"):
					cameraZ = math.Min(20, cameraZ+0.5)
					camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("m"):
					marks = !marks
				case ev.MatchString("g"):
					grid = !grid
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					inputTorque.roll = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					rotation.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cameraZ = math.Max(1, cameraZ-0.5)
				case uv.MouseWheelDown:
					cameraZ = math.Min(20, cameraZ+0.5)
				}
				camera.SetPosition(math3d.V3(0, 0, cameraZ))
			}
		}
	}()

	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		// Apply input torque and decay it (key release events unreliable)
		rotation.ApplyImpulse(
			inputTorque.pitch*dt,
			inputTorque.yaw*dt,
			inputTorque.roll*dt,
		)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9

		rotation.Update()

		transform := math3d.RotateX(rotation.Pitch.Position).
			Mul(math3d.RotateY(rotation.Yaw.Position)).
			Mul(math3d.RotateZ(rotation.Roll.Position)).
			Mul(baseTransform)

		fb.Clear(bg)
		drawScene(scene, segs, markers, transform, grid, marks)

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
