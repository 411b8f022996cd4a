package glviz_test

import (
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glviz"
)

func TestGraphDefault(t *testing.T) {
	const tol = 1e-5
	mesh, err := glviz.NewGraph(glviz.DefaultGraphConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := mesh.Validate(); err != nil {
		t.Fatal(err)
	}
	const want = 6 * 40 * 40
	if mesh.NumVertices() != want {
		t.Fatalf("want %d vertices, got %d", want, mesh.NumVertices())
	} else if mesh.Count() != want {
		t.Errorf("want count %d, got %d", want, mesh.Count())
	}
	if mesh.Primitive != glviz.Triangles || mesh.Indices != nil {
		t.Error("graph should be an unindexed triangle list")
	}
	for i := 0; i < mesh.NumVertices(); i++ {
		p := mesh.Position(i)
		expect := math32.Sin(p.Z) * p.X * p.X
		if math32.Abs(p.Y-expect) > tol {
			t.Fatalf("vertex %d: want height %f, got %f", i, expect, p.Y)
		}
		if mesh.Attribute(i) != (ms3.Vec{X: 1}) {
			t.Fatalf("vertex %d: unexpected attribute %v", i, mesh.Attribute(i))
		}
		if p.X < -2-tol || p.X > 2+tol || p.Z < -2-tol || p.Z > 2+tol {
			t.Fatalf("vertex %d out of domain: %v", i, p)
		}
	}
}

func TestGraphWinding(t *testing.T) {
	const step = 0.5
	mesh, err := glviz.NewGraph(glviz.GraphConfig{Start: 0, End: 1, Step: step, F: func(x, y float32) float32 { return 0 }})
	if err != nil {
		t.Fatal(err)
	}
	if mesh.NumVertices() != 6*2*2 {
		t.Fatalf("want 24 vertices, got %d", mesh.NumVertices())
	}
	// First cell has its bottom-left corner at the origin.
	want := []ms3.Vec{
		{X: 0, Z: 0}, {X: 0, Z: step}, {X: step, Z: step},
		{X: 0, Z: 0}, {X: step, Z: 0}, {X: step, Z: step},
	}
	for i, w := range want {
		if got := mesh.Position(i); got != w {
			t.Errorf("vertex %d: want %v, got %v", i, w, got)
		}
	}
	// Second cell along y shares the first cell's top edge.
	if got := mesh.Position(6); got != (ms3.Vec{X: 0, Z: step}) {
		t.Errorf("second cell starts at %v", got)
	}
	n0 := triNormal(mesh.Position(0), mesh.Position(1), mesh.Position(2))
	n1 := triNormal(mesh.Position(3), mesh.Position(4), mesh.Position(5))
	if n0.Y == 0 || n1.Y == 0 {
		t.Error("degenerate triangle in flat cell")
	}
}

func TestGraphPartialCell(t *testing.T) {
	zero := func(x, y float32) float32 { return 0 }
	for _, test := range []struct {
		step  float32
		cells int
	}{
		{step: 0.25, cells: 4}, // Divides the span.
		{step: 0.3, cells: 4},
		{step: 0.45, cells: 3},
		{step: 0.7, cells: 2},
		{step: 2, cells: 1},
	} {
		cfg := glviz.GraphConfig{Start: 0, End: 1, Step: test.step, F: zero}
		if cfg.Cells() != test.cells {
			t.Errorf("step %v: want %d cells, got %d", test.step, test.cells, cfg.Cells())
		}
		mesh, err := glviz.NewGraph(cfg)
		if err != nil {
			t.Fatal(err)
		}
		if mesh.NumVertices() != 6*test.cells*test.cells {
			t.Fatalf("step %v: want %d vertices, got %d", test.step, 6*test.cells*test.cells, mesh.NumVertices())
		}
		// The domain [0,1) is covered: some cell reaches End.
		var maxX float32
		for i := 0; i < mesh.NumVertices(); i++ {
			maxX = math32.Max(maxX, mesh.Position(i).X)
		}
		if maxX < cfg.End {
			t.Errorf("step %v: domain not covered, max x %v", test.step, maxX)
		}
		if maxX-cfg.End >= test.step {
			t.Errorf("step %v: extra cell past domain, max x %v", test.step, maxX)
		}
	}
}

func TestVertexLimit(t *testing.T) {
	bld := glviz.Builder{NoDimensionPanic: true}
	meshes := []*glviz.Mesh{
		bld.NewGraph(glviz.GraphConfig{Start: -2, End: 2, Step: 1e-7}),
		bld.NewSphere(glviz.SphereConfig{Density: 1e6}),
		bld.NewTorus(glviz.TorusConfig{MinorRadius: 1, MajorRadius: 2, RadialSegments: 16, CircumSegments: 36, Rings: 1 << 30}),
	}
	err := bld.Err()
	if err == nil {
		t.Fatal("expected vertex limit errors")
	}
	for _, shape := range []string{"graph", "sphere", "torus"} {
		if !strings.Contains(err.Error(), shape) {
			t.Errorf("missing %s error in %q", shape, err)
		}
	}
	for i, mesh := range meshes {
		if mesh.NumVertices() != 0 {
			t.Errorf("mesh %d: expected empty mesh", i)
		}
	}
}

func TestGraphInvalid(t *testing.T) {
	for _, cfg := range []glviz.GraphConfig{
		{Start: -1, End: 1, Step: 0},
		{Start: -1, End: 1, Step: -0.1},
		{Start: 1, End: 1, Step: 0.1},
		{Start: 2, End: -2, Step: 0.1},
		{Start: -1, End: 1, Step: math32.NaN()},
	} {
		mesh, err := glviz.NewGraph(cfg)
		if err == nil {
			t.Errorf("expected error for %+v", cfg)
		}
		if mesh == nil || mesh.NumVertices() != 0 {
			t.Errorf("expected empty mesh for %+v", cfg)
		}
	}
}

func TestSphereDefault(t *testing.T) {
	const tol = 1e-5
	const density = 40
	mesh, err := glviz.NewSphere(glviz.DefaultSphereConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := mesh.Validate(); err != nil {
		t.Fatal(err)
	}
	const nonSentinel = (density + 1) * (density + 1) * 2
	if mesh.NumVertices() != nonSentinel {
		t.Errorf("want %d vertices, got %d", nonSentinel, mesh.NumVertices())
	}
	var sentinels, regular int
	var expectNext uint32
	for i, idx := range mesh.Indices {
		if idx == glviz.RestartIndex {
			sentinels++
			continue
		}
		regular++
		if idx != expectNext {
			t.Fatalf("index %d: want sequential value %d, got %d", i, expectNext, idx)
		}
		expectNext++
		if int(idx) >= mesh.NumVertices() {
			t.Fatalf("index %d out of range", idx)
		}
	}
	if regular != nonSentinel {
		t.Errorf("want %d non-sentinel indices, got %d", nonSentinel, regular)
	}
	if sentinels != density+1 {
		t.Errorf("want %d sentinels, got %d", density+1, sentinels)
	}
	if mesh.Indices[len(mesh.Indices)-1] != glviz.RestartIndex {
		t.Error("last band not terminated by restart index")
	}
	if mesh.Count() != nonSentinel+density+1 {
		t.Errorf("count should include sentinels, got %d", mesh.Count())
	}
	for i := 0; i < mesh.NumVertices(); i++ {
		r := ms3.Norm(mesh.Position(i))
		if math32.Abs(r-1) > tol {
			t.Fatalf("vertex %d not on unit sphere: radius %f", i, r)
		}
	}
	// Band zero's lower ring lies one step past the south pole.
	z0 := mesh.Position(0).Z
	wantZ0 := math32.Sin(math32.Pi * (-0.5 - 1./density))
	if math32.Abs(z0-wantZ0) > tol {
		t.Errorf("want first vertex z=%f, got %f", wantZ0, z0)
	}
}

func TestSphereRadius(t *testing.T) {
	mesh, err := glviz.NewSphere(glviz.SphereConfig{Density: 8, Radius: 3})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < mesh.NumVertices(); i++ {
		r := ms3.Norm(mesh.Position(i))
		if math32.Abs(r-3) > 1e-4 {
			t.Fatalf("vertex %d radius %f, want 3", i, r)
		}
	}
}

func TestSphereInvalid(t *testing.T) {
	for _, cfg := range []glviz.SphereConfig{{Density: 0}, {Density: -3}, {Density: 10, Radius: -1}} {
		_, err := glviz.NewSphere(cfg)
		if err == nil {
			t.Errorf("expected error for %+v", cfg)
		}
	}
}

func TestTorusDefault(t *testing.T) {
	const tol = 1e-4
	cfg := glviz.DefaultTorusConfig()
	mesh, err := glviz.NewTorus(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := mesh.Validate(); err != nil {
		t.Fatal(err)
	}
	const want = 64 * 37 * 2
	if mesh.NumVertices() != want {
		t.Fatalf("want %d vertices, got %d", want, mesh.NumVertices())
	}
	c, r, s := cfg.MajorRadius, cfg.MinorRadius, cfg.Scale
	inner := s * (c - r)
	outer := s * (c + r)
	for i := 0; i < mesh.NumVertices(); i++ {
		p := mesh.Position(i)
		rxy := math32.Hypot(p.X, p.Y)
		if rxy < inner-tol || rxy > outer+tol {
			t.Fatalf("vertex %d outside tube radial bounds [%f,%f]: %f", i, inner, outer, rxy)
		}
		if math32.Abs(p.Z) > s*r+tol {
			t.Fatalf("vertex %d outside tube height: %f", i, p.Z)
		}
		// Distance to tube center circle equals the scaled minor radius.
		dTube := math32.Hypot(rxy-s*c, p.Z)
		if math32.Abs(dTube-s*r) > tol {
			t.Fatalf("vertex %d not on tube surface: %f", i, dTube)
		}
		if mesh.Attribute(i) != (ms3.Vec{Y: 1}) {
			t.Fatalf("vertex %d: unexpected attribute %v", i, mesh.Attribute(i))
		}
	}
}

func TestTorusInvalid(t *testing.T) {
	base := glviz.DefaultTorusConfig()
	mods := []func(*glviz.TorusConfig){
		func(c *glviz.TorusConfig) { c.RadialSegments = 0 },
		func(c *glviz.TorusConfig) { c.CircumSegments = 0 },
		func(c *glviz.TorusConfig) { c.Rings = 0 },
		func(c *glviz.TorusConfig) { c.MinorRadius = 0 },
		func(c *glviz.TorusConfig) { c.MajorRadius = -1 },
		func(c *glviz.TorusConfig) { c.Scale = -2 },
	}
	for i, mod := range mods {
		cfg := base
		mod(&cfg)
		mesh, err := glviz.NewTorus(cfg)
		if err == nil {
			t.Errorf("case %d: expected error for %+v", i, cfg)
		} else if mesh.NumVertices() != 0 {
			t.Errorf("case %d: expected empty mesh", i)
		}
	}
}

func TestBuilderPanics(t *testing.T) {
	var bld glviz.Builder
	defer func() {
		a := recover()
		if a == nil {
			t.Fatal("expected panic")
		}
		if !strings.Contains(a.(string), "step") {
			t.Errorf("unexpected panic message %q", a)
		}
	}()
	bld.NewGraph(glviz.GraphConfig{Start: 0, End: 1})
}

func TestBuilderAccumulates(t *testing.T) {
	bld := glviz.Builder{NoDimensionPanic: true}
	bld.NewSphere(glviz.SphereConfig{})
	bld.NewTorus(glviz.TorusConfig{})
	err := bld.Err()
	if err == nil {
		t.Fatal("expected accumulated errors")
	}
	if !strings.Contains(err.Error(), "sphere") || !strings.Contains(err.Error(), "torus") {
		t.Errorf("missing error in %q", err)
	}
	bld.ClearErrors()
	if bld.Err() != nil {
		t.Error("errors not cleared")
	}
}

func TestMeshValidate(t *testing.T) {
	m := glviz.Mesh{Vertices: make([]float32, 9), Stride: 3, Indices: []uint32{0, 1, 2, glviz.RestartIndex}}
	if err := m.Validate(); err != nil {
		t.Error(err)
	}
	m.Indices = append(m.Indices, 3)
	if err := m.Validate(); err == nil {
		t.Error("expected out of range index error")
	}
	m = glviz.Mesh{Vertices: make([]float32, 10), Stride: 3}
	if err := m.Validate(); err == nil {
		t.Error("expected stride error")
	}
}

func triNormal(a, b, c ms3.Vec) ms3.Vec {
	return ms3.Cross(ms3.Sub(b, a), ms3.Sub(c, a))
}
