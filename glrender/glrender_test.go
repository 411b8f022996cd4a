package glrender

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glviz"
)

func TestGraphTriangles(t *testing.T) {
	mesh, err := glviz.NewGraph(glviz.DefaultGraphConfig())
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewMeshRenderer(mesh)
	if err != nil {
		t.Fatal(err)
	}
	tris, err := RenderAll(r, nil)
	if err != nil {
		t.Fatal(err)
	}
	const want = 2 * 40 * 40
	if len(tris) != want {
		t.Errorf("want %d triangles, got %d", want, len(tris))
	}
	if tris[0][0] != mesh.Position(0) || tris[0][2] != mesh.Position(2) {
		t.Error("first triangle does not follow vertex order")
	}
}

func TestSphereStripTriangles(t *testing.T) {
	const tol = 1e-4
	mesh, err := glviz.NewSphere(glviz.SphereConfig{Density: 8, Radius: 1})
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewMeshRenderer(mesh)
	if err != nil {
		t.Fatal(err)
	}
	// Small buffer forces several ReadTriangles calls.
	var tris []ms3.Triangle
	buf := make([]ms3.Triangle, 7)
	for {
		n, err := r.ReadTriangles(buf, nil)
		tris = append(tris, buf[:n]...)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
	}
	// Each band has 2*(density+1)-2 strip triangles, less the degenerate ones at the poles.
	const maxTris = 9 * (2*9 - 2)
	if len(tris) == 0 || len(tris) > maxTris {
		t.Fatalf("unexpected triangle count %d, max %d", len(tris), maxTris)
	}
	for i, tri := range tris {
		for _, v := range tri {
			if math32.Abs(ms3.Norm(v)-1) > tol {
				t.Fatalf("triangle %d vertex off sphere: %v", i, v)
			}
		}
		if degenerate(tri) {
			t.Fatalf("degenerate triangle %d returned", i)
		}
	}
	r.Reset()
	again, err := RenderAll(r, nil)
	if err != nil {
		t.Fatal(err)
	} else if len(again) != len(tris) {
		t.Errorf("reset renderer read %d triangles, want %d", len(again), len(tris))
	}
}

func TestStripWinding(t *testing.T) {
	// A flat quad as a 4 vertex strip followed by a restart. Both triangles must face +Z.
	mesh := &glviz.Mesh{
		Vertices: []float32{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
			1, 1, 0,
		},
		Stride:    3,
		Indices:   []uint32{0, 1, 2, 3, glviz.RestartIndex},
		Primitive: glviz.TriangleStrip,
	}
	r, err := NewMeshRenderer(mesh)
	if err != nil {
		t.Fatal(err)
	}
	tris, err := RenderAll(r, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != 2 {
		t.Fatalf("want 2 triangles, got %d", len(tris))
	}
	for i, tri := range tris {
		n := ms3.Cross(ms3.Sub(tri[1], tri[0]), ms3.Sub(tri[2], tri[0]))
		if n.Z <= 0 {
			t.Errorf("triangle %d faces away: normal %v", i, n)
		}
	}
}

func TestMeshRendererInvalid(t *testing.T) {
	_, err := NewMeshRenderer(nil)
	if err == nil {
		t.Error("expected error for nil mesh")
	}
	_, err = NewMeshRenderer(&glviz.Mesh{Vertices: make([]float32, 3), Stride: 3, Indices: []uint32{4}})
	if err == nil {
		t.Error("expected error for out of range index")
	}
}

func TestWriteBinarySTL(t *testing.T) {
	mesh, err := glviz.NewTorus(glviz.DefaultTorusConfig())
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewMeshRenderer(mesh)
	if err != nil {
		t.Fatal(err)
	}
	tris, err := RenderAll(r, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) == 0 || len(tris) > mesh.NumVertices()/3 {
		t.Fatalf("unexpected torus triangle count %d", len(tris))
	}
	var buf bytes.Buffer
	n, err := WriteBinarySTL(&buf, tris)
	if err != nil {
		t.Fatal(err)
	}
	wantSize := stlHeaderSize + 4 + stlTriangleSize*len(tris)
	if n != buf.Len() || n != wantSize {
		t.Fatalf("want %d bytes written, got n=%d len=%d", wantSize, n, buf.Len())
	}
	b := buf.Bytes()
	if got := binary.LittleEndian.Uint32(b[stlHeaderSize:]); got != uint32(len(tris)) {
		t.Errorf("header triangle count %d, want %d", got, len(tris))
	}
	// Check the first vertex of the first triangle round trips.
	off := stlHeaderSize + 4 + 12
	x := math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
	if x != tris[0][0].X {
		t.Errorf("first vertex X %v, want %v", x, tris[0][0].X)
	}
}
