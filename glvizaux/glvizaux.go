package glvizaux

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glviz"
	"github.com/soypat/glviz/glrender"
)

// Shape identifies one of the generated meshes of a [Scene].
type Shape uint8

const (
	ShapeGraph Shape = iota
	ShapeSphere
	ShapeTorus
	numShapes
)

func (s Shape) String() string {
	switch s {
	case ShapeGraph:
		return "graph"
	case ShapeSphere:
		return "sphere"
	case ShapeTorus:
		return "torus"
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

// spinRate is the rotation speed of spinning draws in degrees per second.
const spinRate = 50.0

var spinAxis = mgl32.Vec3{0.5, 1, 0}.Normalize()

// Draw is a single draw call of a [Scene]'s mesh.
type Draw struct {
	Shape     Shape
	Translate ms3.Vec
	// Spin rotates the mesh about (0.5,1,0) as time passes.
	Spin  bool
	Color color.RGBA
	// Wireframe draws polygon edges only.
	Wireframe bool
}

// Model returns the draw's model transform at t seconds since start.
func (d Draw) Model(t float32) mgl32.Mat4 {
	model := mgl32.Translate3D(d.Translate.X, d.Translate.Y, d.Translate.Z)
	if d.Spin {
		angle := mgl32.DegToRad(spinRate * t)
		model = model.Mul4(mgl32.HomogRotate3D(angle, spinAxis))
	}
	return model
}

// Scene holds the mesh parameters and the draws that make up a frame.
type Scene struct {
	Graph  glviz.GraphConfig
	Sphere glviz.SphereConfig
	Torus  glviz.TorusConfig
	// CameraPosition is the initial camera world position.
	CameraPosition ms3.Vec
	Draws          []Draw
}

// Colors used by [DefaultScene].
var (
	SphereColor = color.RGBA{R: 255, G: 230, B: 0, A: 255}
	TorusColor  = color.RGBA{R: 178, G: 112, B: 225, A: 255}
	GraphColor  = color.RGBA{R: 143, G: 210, B: 33, A: 255}
)

// DefaultScene returns the demo scene. Each shape is drawn solid and as a wireframe.
// Both spheres, the wireframe torus and none of the graphs spin.
func DefaultScene() Scene {
	return Scene{
		Graph:          glviz.DefaultGraphConfig(),
		Sphere:         glviz.DefaultSphereConfig(),
		Torus:          glviz.DefaultTorusConfig(),
		CameraPosition: ms3.Vec{Z: 10},
		Draws: []Draw{
			{Shape: ShapeSphere, Translate: ms3.Vec{X: 2, Y: 2}, Spin: true, Color: SphereColor},
			{Shape: ShapeSphere, Translate: ms3.Vec{X: 2, Y: -2}, Spin: true, Color: SphereColor, Wireframe: true},
			{Shape: ShapeTorus, Translate: ms3.Vec{X: -2, Y: 2}, Color: TorusColor},
			{Shape: ShapeTorus, Translate: ms3.Vec{X: -2, Y: -2}, Spin: true, Color: TorusColor, Wireframe: true},
			{Shape: ShapeGraph, Translate: ms3.Vec{X: -5, Z: -10}, Color: GraphColor, Wireframe: true},
			{Shape: ShapeGraph, Translate: ms3.Vec{X: 5, Z: -10}, Color: GraphColor},
		},
	}
}

// Meshes generates the scene's meshes indexed by [Shape]. All parameter errors are returned joined.
func (s *Scene) Meshes() (meshes [numShapes]*glviz.Mesh, err error) {
	bld := glviz.Builder{NoDimensionPanic: true}
	meshes[ShapeGraph] = bld.NewGraph(s.Graph)
	meshes[ShapeSphere] = bld.NewSphere(s.Sphere)
	meshes[ShapeTorus] = bld.NewTorus(s.Torus)
	err = bld.Err()
	if err != nil {
		return meshes, err
	}
	for i := range s.Draws {
		if s.Draws[i].Shape >= numShapes {
			return meshes, fmt.Errorf("draw %d: invalid shape %s", i, s.Draws[i].Shape)
		}
	}
	return meshes, nil
}

// UIConfig configures the interactive window opened by [UI].
type UIConfig struct {
	Width, Height int
	Title         string
	// Context cancels the render loop when done. May be nil.
	Context context.Context
	// Scene to draw. If nil [DefaultScene] is used.
	Scene *Scene
	// Silent disables progress logging.
	Silent bool
}

// DefaultUIConfig returns a 1440x1024 window configuration.
func DefaultUIConfig() UIConfig {
	return UIConfig{Width: 1440, Height: 1024, Title: "glviz"}
}

// UI opens a window and renders cfg's scene with a free-look camera until the
// window is closed, Escape is pressed or the context is done.
//
// Controls: W/A/S/D move, mouse looks, scroll zooms, O and P switch to orthographic
// and perspective projection. UI must be called from the main thread.
func UI(cfg UIConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("invalid window dimensions")
	}
	if cfg.Title == "" {
		cfg.Title = "glviz"
	}
	if cfg.Scene == nil {
		scene := DefaultScene()
		cfg.Scene = &scene
	}
	return ui(cfg)
}

// STLConfig configures [RenderSTL]. Nil writers are skipped.
type STLConfig struct {
	Graph, Sphere, Torus io.Writer
	// Scene provides the mesh parameters. If nil [DefaultScene] is used.
	Scene  *Scene
	Silent bool
}

// RenderSTL writes the triangles of the scene's meshes as binary STL to the configured writers.
func RenderSTL(cfg STLConfig) error {
	outputs := [numShapes]io.Writer{
		ShapeGraph:  cfg.Graph,
		ShapeSphere: cfg.Sphere,
		ShapeTorus:  cfg.Torus,
	}
	if cfg.Graph == nil && cfg.Sphere == nil && cfg.Torus == nil {
		return errors.New("RenderSTL requires at least one output")
	}
	log := func(args ...any) {
		if !cfg.Silent {
			fmt.Println(args...)
		}
	}
	scene := cfg.Scene
	if scene == nil {
		def := DefaultScene()
		scene = &def
	}
	watch := stopwatch()
	meshes, err := scene.Meshes()
	if err != nil {
		return fmt.Errorf("generating meshes: %w", err)
	}
	log("generated meshes in", watch())
	for shape, w := range outputs {
		if w == nil {
			continue
		}
		watch = stopwatch()
		r, err := glrender.NewMeshRenderer(meshes[shape])
		if err != nil {
			return fmt.Errorf("%s: %w", Shape(shape), err)
		}
		triangles, err := glrender.RenderAll(r, nil)
		if err != nil {
			return fmt.Errorf("%s: rendering triangles: %w", Shape(shape), err)
		}
		_, err = glrender.WriteBinarySTL(w, triangles)
		if err != nil {
			return fmt.Errorf("%s: writing STL: %w", Shape(shape), err)
		}
		filename := Shape(shape).String() + " STL"
		if fp, ok := w.(*os.File); ok {
			filename = fp.Name()
		}
		log("wrote", len(triangles), "triangles to", filename, "in", watch())
	}
	return nil
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
