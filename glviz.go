package glviz

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// RestartIndex is the primitive restart sentinel placed in a [Mesh]'s index buffer.
// It ends the current triangle strip and starts a new one within the same draw call.
const RestartIndex = 0xffff_ffff

// MaxVertices is the largest amount of vertices a generator emits. Configurations
// exceeding it are reported as errors instead of being allocated.
const MaxVertices = 1 << 24

// Primitive is the draw mode a [Mesh] was generated for.
type Primitive uint8

const (
	// Triangles interprets every 3 vertices (or indices) as an independent triangle.
	Triangles Primitive = iota
	// TriangleStrip interprets vertices as a strip where each new vertex forms a triangle with the previous two.
	TriangleStrip
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle strip"
	}
	return fmt.Sprintf("Primitive(%d)", uint8(p))
}

// Mesh is generated vertex data ready for upload to the GPU. Vertices are interleaved:
// the first 3 floats of each vertex are the position and the rest (if Stride > 3) an attribute triple.
// Mesh data is not modified after generation.
type Mesh struct {
	Vertices []float32
	// Stride is the amount of float32s per vertex.
	Stride int
	// Indices is optional. When set the draw call should be indexed and
	// [RestartIndex] entries mark the end of a strip.
	Indices   []uint32
	Primitive Primitive
}

// NumVertices returns the amount of vertices in the mesh.
func (m *Mesh) NumVertices() int {
	if m.Stride <= 0 {
		return 0
	}
	return len(m.Vertices) / m.Stride
}

// Count returns the amount of elements to submit in a draw call: the index count for indexed meshes
// and the vertex count otherwise.
func (m *Mesh) Count() int {
	if m.Indices != nil {
		return len(m.Indices)
	}
	return m.NumVertices()
}

// Position returns the position of the i'th vertex.
func (m *Mesh) Position(i int) ms3.Vec {
	off := i * m.Stride
	return ms3.Vec{X: m.Vertices[off], Y: m.Vertices[off+1], Z: m.Vertices[off+2]}
}

// Attribute returns the attribute triple of the i'th vertex. Meshes with Stride of 3 have no attribute and return the zero vector.
func (m *Mesh) Attribute(i int) ms3.Vec {
	if m.Stride < 6 {
		return ms3.Vec{}
	}
	off := i * m.Stride
	return ms3.Vec{X: m.Vertices[off+3], Y: m.Vertices[off+4], Z: m.Vertices[off+5]}
}

// Validate checks the vertex buffer is a whole number of vertices and that every index
// besides [RestartIndex] references an existing vertex.
func (m *Mesh) Validate() error {
	if m.Stride < 3 {
		return errors.New("mesh stride must be at least 3")
	} else if len(m.Vertices)%m.Stride != 0 {
		return fmt.Errorf("vertex buffer length %d not a multiple of stride %d", len(m.Vertices), m.Stride)
	}
	nv := uint32(m.NumVertices())
	for i, idx := range m.Indices {
		if idx != RestartIndex && idx >= nv {
			return fmt.Errorf("index %d at position %d out of range of %d vertices", idx, i, nv)
		}
	}
	return nil
}

// Builder wraps mesh generation logic.
// Provides error handling strategies with panics or error accumulation during generation.
type Builder struct {
	NoDimensionPanic bool
	accumErrs        []error
}

func (bld *Builder) Err() error {
	if len(bld.accumErrs) == 0 {
		return nil
	}
	return errors.Join(bld.accumErrs...)
}

// ClearErrors empties the accumulated errors so the builder can be reused.
func (bld *Builder) ClearErrors() {
	bld.accumErrs = bld.accumErrs[:0]
}

func (bld *Builder) shapeErrorf(msg string, args ...any) {
	if !bld.NoDimensionPanic {
		panic(fmt.Sprintf(msg, args...))
	}
	bld.accumErrs = append(bld.accumErrs, fmt.Errorf(msg, args...))
}

// NewGraph generates the surface of a scalar field. See [Builder.NewGraph].
func NewGraph(cfg GraphConfig) (*Mesh, error) {
	var bld = Builder{NoDimensionPanic: true}
	m := bld.NewGraph(cfg)
	return m, bld.Err()
}

// NewSphere generates a UV-sphere. See [Builder.NewSphere].
func NewSphere(cfg SphereConfig) (*Mesh, error) {
	var bld = Builder{NoDimensionPanic: true}
	m := bld.NewSphere(cfg)
	return m, bld.Err()
}

// NewTorus generates a torus. See [Builder.NewTorus].
func NewTorus(cfg TorusConfig) (*Mesh, error) {
	var bld = Builder{NoDimensionPanic: true}
	m := bld.NewTorus(cfg)
	return m, bld.Err()
}

// tooManyVertices reports whether a vertex count, computed in floating point so it cannot overflow, exceeds [MaxVertices].
func tooManyVertices(n float64) bool {
	return n > MaxVertices
}

func isFinite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func appendVec(dst []float32, v ms3.Vec) []float32 {
	return append(dst, v.X, v.Y, v.Z)
}
