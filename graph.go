package glviz

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// GraphConfig configures the surface generated by [Builder.NewGraph].
type GraphConfig struct {
	// Start and End delimit the square domain [Start,End)x[Start,End).
	Start, End float32
	// Step is the side length of a grid cell.
	Step float32
	// F is the scalar field sampled. If nil [SinXSquared] is used.
	F func(x, y float32) float32
}

// DefaultGraphConfig returns the sin(y)*x² surface over [-2,2) sampled at 0.1 intervals.
func DefaultGraphConfig() GraphConfig {
	return GraphConfig{Start: -2, End: 2, Step: 0.1, F: SinXSquared}
}

// cellsEps absorbs the rounding error of the span/step division so a step that
// divides the span does not gain a cell.
const cellsEps = 1e-5

// Cells returns the amount of grid cells along one side of the domain. There is one cell
// per sample point Start+i*Step lying in [Start,End), so when Step does not divide the
// span the last cell extends past End.
func (cfg GraphConfig) Cells() int {
	if cfg.Step <= 0 || cfg.End <= cfg.Start {
		return 0
	}
	q := cfg.cellsf()
	return int(math32.Ceil(q - q*cellsEps))
}

func (cfg GraphConfig) cellsf() float32 {
	return (cfg.End - cfg.Start) / cfg.Step
}

// SinXSquared is the scalar field f(x,y)=sin(y)*x².
func SinXSquared(x, y float32) float32 {
	return math32.Sin(y) * (x * x)
}

var graphAttr = ms3.Vec{X: 1}

// NewGraph samples the field cfg.F over the configured square domain and emits two triangles
// per grid cell with no vertex reuse. Sample point (x,y) maps to vertex (x, f(x,y), y).
// Each vertex is followed by the attribute (1,0,0). The vertex count is 6*Cells()².
//
// Winding is the same for every cell: bottom-left, top-left, top-right for the first triangle
// and bottom-left, bottom-right, top-right for the second.
func (bld *Builder) NewGraph(cfg GraphConfig) *Mesh {
	if cfg.Step <= 0 || !isFinite(cfg.Step) {
		bld.shapeErrorf("zero or negative graph step")
		return &Mesh{Stride: 6}
	} else if cfg.End <= cfg.Start || !isFinite(cfg.Start) || !isFinite(cfg.End) {
		bld.shapeErrorf("graph domain end must be greater than start")
		return &Mesh{Stride: 6}
	} else if q := float64(cfg.cellsf()) + 1; tooManyVertices(6 * q * q) {
		bld.shapeErrorf("graph step %g too small for domain [%g,%g), exceeds %d vertices", cfg.Step, cfg.Start, cfg.End, MaxVertices)
		return &Mesh{Stride: 6}
	}
	f := cfg.F
	if f == nil {
		f = SinXSquared
	}
	n := cfg.Cells()
	vertices := make([]float32, 0, 6*6*n*n)
	add := func(x, y float32) {
		vertices = appendVec(vertices, ms3.Vec{X: x, Y: f(x, y), Z: y})
		vertices = appendVec(vertices, graphAttr)
	}
	step := cfg.Step
	for i := 0; i < n; i++ {
		// Positions are computed from the integer cell index so rounding error does not accumulate.
		x := cfg.Start + float32(i)*step
		for j := 0; j < n; j++ {
			y := cfg.Start + float32(j)*step
			add(x, y)
			add(x, y+step)
			add(x+step, y+step)
			add(x, y)
			add(x+step, y)
			add(x+step, y+step)
		}
	}
	return &Mesh{
		Vertices:  vertices,
		Stride:    6,
		Primitive: Triangles,
	}
}
