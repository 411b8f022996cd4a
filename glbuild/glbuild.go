// Package glbuild generates the GLSL source of the flat-color shader program
// used to draw glviz meshes.
package glbuild

import (
	"errors"
	"io"
	"strconv"
)

// Uniform and attribute names present in the generated program.
const (
	// UniformModel is the per-draw model transform (mat4).
	UniformModel = "model"
	// UniformView is the camera view transform (mat4), set once per frame.
	UniformView = "view"
	// UniformProjection is the projection transform (mat4).
	UniformProjection = "projection"
	// UniformColor is the per-draw solid color (vec4).
	UniformColor = "color"
	// AttribPosition is the vertex position attribute bound at location [PositionLocation].
	AttribPosition = "aPos"
	// PositionLocation is the vertex attribute location of [AttribPosition].
	PositionLocation = 0
)

// DefaultVersion is the GLSL version of the default programmer. 330 core is the
// lowest version supporting explicit attribute locations.
const DefaultVersion = 330

// CStr returns name NUL-terminated for passing to the GL bindings.
func CStr(name string) string {
	return name + "\x00"
}

// Programmer writes the vertex and fragment shader sources.
type Programmer struct {
	version int
	scratch []byte
}

// NewDefaultProgrammer returns a programmer that targets GLSL [DefaultVersion] core.
func NewDefaultProgrammer() *Programmer {
	return &Programmer{version: DefaultVersion}
}

// SetVersion sets the GLSL version written in the shader header, i.e: 330, 410, 460.
func (p *Programmer) SetVersion(version int) error {
	if version < DefaultVersion {
		return errors.New("GLSL version must be at least 330")
	}
	p.version = version
	return nil
}

// Version returns the GLSL version written in the shader header.
func (p *Programmer) Version() int { return p.version }

// WriteVertex writes the vertex shader to w. The shader transforms [AttribPosition] by
// projection*view*model.
func (p *Programmer) WriteVertex(w io.Writer) (int, error) {
	b := p.appendHeader(p.scratch[:0])
	b = append(b, "layout(location = "...)
	b = strconv.AppendInt(b, PositionLocation, 10)
	b = append(b, ") in vec3 "+AttribPosition+";\n"...)
	b = append(b, "uniform mat4 "+UniformModel+";\n"...)
	b = append(b, "uniform mat4 "+UniformView+";\n"...)
	b = append(b, "uniform mat4 "+UniformProjection+";\n"...)
	b = append(b, "void main() {\n\tgl_Position = "+UniformProjection+" * "+UniformView+" * "+UniformModel+" * vec4("+AttribPosition+", 1.0);\n}\n"...)
	b = append(b, 0)
	p.scratch = b
	return w.Write(b)
}

// WriteFragment writes the fragment shader to w. Every fragment is set to [UniformColor].
func (p *Programmer) WriteFragment(w io.Writer) (int, error) {
	b := p.appendHeader(p.scratch[:0])
	b = append(b, "out vec4 FragColor;\n"...)
	b = append(b, "uniform vec4 "+UniformColor+";\n"...)
	b = append(b, "void main() {\n\tFragColor = "+UniformColor+";\n}\n"...)
	b = append(b, 0)
	p.scratch = b
	return w.Write(b)
}

// Source returns both shader sources, NUL-terminated.
func (p *Programmer) Source() (vertex, fragment string, err error) {
	var sb stringWriter
	_, err = p.WriteVertex(&sb)
	if err != nil {
		return "", "", err
	}
	vertex = string(sb)
	sb = sb[:0]
	_, err = p.WriteFragment(&sb)
	if err != nil {
		return "", "", err
	}
	return vertex, string(sb), nil
}

func (p *Programmer) appendHeader(b []byte) []byte {
	b = append(b, "#version "...)
	b = strconv.AppendInt(b, int64(p.version), 10)
	b = append(b, " core\n"...)
	return b
}

type stringWriter []byte

func (sw *stringWriter) Write(b []byte) (int, error) {
	*sw = append(*sw, b...)
	return len(b), nil
}
