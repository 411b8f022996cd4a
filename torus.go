package glviz

import (
	"math"

	"github.com/soypat/geometry/ms3"
)

// TorusConfig configures the torus generated by [Builder.NewTorus].
type TorusConfig struct {
	// MinorRadius is the tube radius r.
	MinorRadius float32
	// MajorRadius is the distance c from the torus center to the tube center.
	MajorRadius float32
	// RadialSegments is the amount of segments around the tube.
	RadialSegments int
	// CircumSegments is the amount of segments around the torus axis.
	CircumSegments int
	// Rings is the amount of tube rings emitted. Rings greater than RadialSegments wrap around the tube.
	Rings int
	// Scale multiplies every generated coordinate. If zero no scaling is applied.
	Scale float32
}

// DefaultTorusConfig returns r=0.15, c=0.3, 16 radial and 36 circumferential segments,
// 64 rings and a scale of 2.
func DefaultTorusConfig() TorusConfig {
	return TorusConfig{
		MinorRadius:    0.15,
		MajorRadius:    0.3,
		RadialSegments: 16,
		CircumSegments: 36,
		Rings:          64,
		Scale:          2,
	}
}

var torusAttr = ms3.Vec{Y: 1}

// NewTorus generates a torus around the Z axis from the parametric equations
//
//	x = (c + r*cos(θ))*cos(φ)
//	y = (c + r*cos(θ))*sin(φ)
//	z = r*sin(θ)
//
// For every ring i and circumferential step j=0..CircumSegments two vertices are
// emitted, one on ring i and one on ring i+1, so the output has strip-like adjacency.
// Each vertex is followed by the attribute (0,1,0). The mesh has no index buffer and is
// tagged [Triangles]. The caller picks the draw mode.
func (bld *Builder) NewTorus(cfg TorusConfig) *Mesh {
	switch {
	case cfg.RadialSegments < 1 || cfg.CircumSegments < 1:
		bld.shapeErrorf("torus segment counts must be at least 1")
		return &Mesh{Stride: 6}
	case cfg.Rings < 1:
		bld.shapeErrorf("torus ring count must be at least 1")
		return &Mesh{Stride: 6}
	case cfg.MinorRadius <= 0 || cfg.MajorRadius <= 0 || !isFinite(cfg.MinorRadius) || !isFinite(cfg.MajorRadius):
		bld.shapeErrorf("zero or negative torus radius")
		return &Mesh{Stride: 6}
	case cfg.Scale < 0 || !isFinite(cfg.Scale):
		bld.shapeErrorf("negative or non-finite torus scale")
		return &Mesh{Stride: 6}
	case tooManyVertices(2 * float64(cfg.Rings) * (float64(cfg.CircumSegments) + 1)):
		bld.shapeErrorf("torus rings and segments exceed %d vertices", MaxVertices)
		return &Mesh{Stride: 6}
	}
	const tau = 2 * math.Pi
	r := float64(cfg.MinorRadius)
	c := float64(cfg.MajorRadius)
	scale := float64(cfg.Scale)
	if scale == 0 {
		scale = 1
	}
	rSeg := cfg.RadialSegments
	cSeg := cfg.CircumSegments
	vertices := make([]float32, 0, cfg.Rings*(cSeg+1)*2*6)
	for i := 0; i < cfg.Rings; i++ {
		for j := 0; j <= cSeg; j++ {
			for k := 0; k <= 1; k++ {
				s := float64((i+k)%rSeg) + 0.5
				t := float64(j % (cSeg + 1))
				theta := s * tau / float64(rSeg)
				phi := t * tau / float64(cSeg)
				ring := c + r*math.Cos(theta)
				vertices = appendVec(vertices, ms3.Vec{
					X: float32(scale * ring * math.Cos(phi)),
					Y: float32(scale * ring * math.Sin(phi)),
					Z: float32(scale * r * math.Sin(theta)),
				})
				vertices = appendVec(vertices, torusAttr)
			}
		}
	}
	return &Mesh{
		Vertices:  vertices,
		Stride:    6,
		Primitive: Triangles,
	}
}
