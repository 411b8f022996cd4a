package glrender

import (
	"errors"
	"io"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glviz"
)

type Renderer interface {
	ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error)
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.RenderAll implementation.
func RenderAll(r Renderer, userData any) ([]ms3.Triangle, error) {
	const startSize = 4096
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, startSize)
	buf := make([]ms3.Triangle, startSize)
	for {
		nt, err = r.ReadTriangles(buf, userData)
		if err == nil || err == io.EOF {
			result = append(result, buf[:nt]...)
		}
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// MeshRenderer reads the triangles of a [glviz.Mesh] as they would be rasterized by a draw call
// using the mesh's primitive. Strips are split at [glviz.RestartIndex] and odd strip triangles
// have their winding flipped so all triangles in a strip face the same way.
// Zero area triangles are skipped.
type MeshRenderer struct {
	mesh *glviz.Mesh
	// elem is the next element (index or vertex) to read.
	elem int
	// stripStart is the element at which the current strip began.
	stripStart int
}

// NewMeshRenderer returns a renderer over m's triangles. m is validated before use.
func NewMeshRenderer(m *glviz.Mesh) (*MeshRenderer, error) {
	if m == nil {
		return nil, errors.New("nil mesh")
	}
	err := m.Validate()
	if err != nil {
		return nil, err
	}
	return &MeshRenderer{mesh: m}, nil
}

// Reset rewinds the renderer to the start of the mesh.
func (mr *MeshRenderer) Reset() {
	mr.elem = 0
	mr.stripStart = 0
}

// ReadTriangles implements [Renderer]. userData is unused.
func (mr *MeshRenderer) ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error) {
	if len(dst) == 0 {
		return 0, errors.New("zero length triangle buffer")
	}
	count := mr.mesh.Count()
	for n < len(dst) {
		var tri ms3.Triangle
		var ok bool
		switch mr.mesh.Primitive {
		case glviz.Triangles:
			if mr.elem+3 > count {
				mr.elem = count
				return n, io.EOF
			}
			tri, ok = mr.list()
		case glviz.TriangleStrip:
			if mr.elem+3 > count {
				mr.elem = count
				return n, io.EOF
			}
			tri, ok = mr.strip()
		default:
			return n, errors.New("unsupported mesh primitive " + mr.mesh.Primitive.String())
		}
		if ok && !degenerate(tri) {
			dst[n] = tri
			n++
		}
	}
	return n, nil
}

func (mr *MeshRenderer) list() (ms3.Triangle, bool) {
	var tri ms3.Triangle
	for k := range tri {
		idx, restart := mr.vertexAt(mr.elem + k)
		if restart {
			// Restart in a triangle list discards the partial triangle.
			mr.elem += k + 1
			return tri, false
		}
		tri[k] = mr.mesh.Position(idx)
	}
	mr.elem += 3
	return tri, true
}

func (mr *MeshRenderer) strip() (ms3.Triangle, bool) {
	var tri ms3.Triangle
	for k := range tri {
		idx, restart := mr.vertexAt(mr.elem + k)
		if restart {
			mr.elem += k + 1
			mr.stripStart = mr.elem
			return tri, false
		}
		tri[k] = mr.mesh.Position(idx)
	}
	if (mr.elem-mr.stripStart)%2 == 1 {
		tri[0], tri[1] = tri[1], tri[0]
	}
	mr.elem++
	return tri, true
}

func (mr *MeshRenderer) vertexAt(elem int) (idx int, restart bool) {
	if mr.mesh.Indices == nil {
		return elem, false
	}
	v := mr.mesh.Indices[elem]
	if v == glviz.RestartIndex {
		return 0, true
	}
	return int(v), false
}

func degenerate(t ms3.Triangle) bool {
	n := ms3.Cross(ms3.Sub(t[1], t[0]), ms3.Sub(t[2], t[0]))
	return ms3.Norm(n) < epstol
}

// epstol is the minimum cross product magnitude of a non-degenerate triangle.
const epstol = 1e-12
