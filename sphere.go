package glviz

import (
	"math"
)

// SphereConfig configures the UV-sphere generated by [Builder.NewSphere].
type SphereConfig struct {
	// Density is the amount of latitude bands and longitude steps, minus one.
	Density int
	// Radius of the sphere. If zero a unit sphere is generated.
	Radius float32
}

// DefaultSphereConfig returns the unit sphere configuration with 41 latitude bands.
func DefaultSphereConfig() SphereConfig {
	return SphereConfig{Density: 40, Radius: 1}
}

// NewSphere generates a UV-sphere meant to be drawn as indexed triangle strips, one strip per
// latitude band. For each of the Density+1 bands and each of the Density+1 longitude steps
// a vertex from the lower ring and one from the upper ring are emitted. Each band's indices
// are terminated by [RestartIndex].
//
// The lower ring of band i sits at latitude π(-1/2 + (i-1)/Density) and longitude is sampled
// at 2π(j-1)/Density. This means band 0 starts one step past the south pole, folding
// back over the cap. The offset is kept so output matches existing renders.
//
// Vertices carry only a position (Stride 3). Index values follow emission order.
func (bld *Builder) NewSphere(cfg SphereConfig) *Mesh {
	if cfg.Density < 1 {
		bld.shapeErrorf("sphere density must be at least 1")
		return &Mesh{Stride: 3, Primitive: TriangleStrip}
	} else if cfg.Radius < 0 || !isFinite(cfg.Radius) {
		bld.shapeErrorf("negative or non-finite sphere radius")
		return &Mesh{Stride: 3, Primitive: TriangleStrip}
	} else if n := float64(cfg.Density) + 1; tooManyVertices(2 * n * n) {
		bld.shapeErrorf("sphere density %d exceeds %d vertices", cfg.Density, MaxVertices)
		return &Mesh{Stride: 3, Primitive: TriangleStrip}
	}
	radius := float64(cfg.Radius)
	if radius == 0 {
		radius = 1
	}
	density := cfg.Density
	n := density + 1
	vertices := make([]float32, 0, n*n*2*3)
	indices := make([]uint32, 0, n*n*2+n)
	var next uint32
	for i := 0; i <= density; i++ {
		lat0 := math.Pi * (-0.5 + float64(i-1)/float64(density))
		z0, zr0 := math.Sin(lat0), math.Cos(lat0)
		lat1 := math.Pi * (-0.5 + float64(i)/float64(density))
		z1, zr1 := math.Sin(lat1), math.Cos(lat1)
		for j := 0; j <= density; j++ {
			lng := 2 * math.Pi * float64(j-1) / float64(density)
			x, y := math.Cos(lng), math.Sin(lng)

			vertices = append(vertices,
				float32(radius*x*zr0), float32(radius*y*zr0), float32(radius*z0),
				float32(radius*x*zr1), float32(radius*y*zr1), float32(radius*z1),
			)
			indices = append(indices, next, next+1)
			next += 2
		}
		indices = append(indices, RestartIndex)
	}
	return &Mesh{
		Vertices:  vertices,
		Stride:    3,
		Indices:   indices,
		Primitive: TriangleStrip,
	}
}
