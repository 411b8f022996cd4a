//go:build !tinygo && cgo

package glvizaux

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/v4.1-core/glgl"
	"github.com/soypat/glviz"
	"github.com/soypat/glviz/camera"
	"github.com/soypat/glviz/glbuild"
)

var keyBindings = [...]struct {
	code glfw.Key
	key  Key
}{
	{glfw.KeyW, KeyW},
	{glfw.KeyA, KeyA},
	{glfw.KeyS, KeyS},
	{glfw.KeyD, KeyD},
	{glfw.KeyO, KeyO},
	{glfw.KeyP, KeyP},
	{glfw.KeyEscape, KeyEscape},
}

func ui(cfg UIConfig) error {
	log := func(args ...any) {
		if !cfg.Silent {
			fmt.Println(args...)
		}
	}
	scene := cfg.Scene
	meshes, err := scene.Meshes()
	if err != nil {
		return fmt.Errorf("generating meshes: %w", err)
	}
	window, term, err := startGLFW(cfg.Width, cfg.Height, cfg.Title)
	if err != nil {
		return err
	}
	defer term()
	log("OpenGL", gl.GoStr(gl.GetString(gl.VERSION)))

	vertSrc, fragSrc, err := glbuild.NewDefaultProgrammer().Source()
	if err != nil {
		return err
	}
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   vertSrc,
		Fragment: fragSrc,
	})
	if err != nil {
		return fmt.Errorf("compiling flat color program: %w", err)
	}
	defer prog.Delete()
	prog.Bind()
	var uniforms [4]int32
	for i, name := range []string{glbuild.UniformModel, glbuild.UniformView, glbuild.UniformProjection, glbuild.UniformColor} {
		uniforms[i], err = prog.UniformLocation(glbuild.CStr(name))
		if err != nil {
			return fmt.Errorf("uniform %q: %w", name, err)
		}
	}
	modelUniform, viewUniform, projUniform, colorUniform := uniforms[0], uniforms[1], uniforms[2], uniforms[3]

	var gpuMeshes [numShapes]*gpuMesh
	defer func() {
		for _, gm := range gpuMeshes {
			if gm != nil {
				gm.Delete()
			}
		}
	}()
	for shape, mesh := range meshes {
		gpuMeshes[shape], err = uploadMesh(mesh)
		if err != nil {
			return fmt.Errorf("uploading %s: %w", Shape(shape), err)
		}
		log("uploaded", Shape(shape), mesh.NumVertices(), "vertices as", mesh.Primitive)
	}

	cam := camera.New(scene.CameraPosition)
	fbw, fbh := window.GetFramebufferSize()
	ctrl := NewController(cam, fbw, fbh)
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		ctrl.CursorMoved(xpos, ypos)
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		ctrl.Scrolled(yoff)
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		ctrl.Resize(width, height)
	})
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.PRIMITIVE_RESTART)
	gl.PrimitiveRestartIndex(glviz.RestartIndex)
	if err = glgl.Err(); err != nil {
		return fmt.Errorf("configuring GL state: %w", err)
	}

	ctx := cfg.Context
	start := glfw.GetTime()
	lastFrame := start
	for !window.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		now := glfw.GetTime()
		dt := float32(now - lastFrame)
		lastFrame = now

		var keys KeySet
		for _, kb := range keyBindings {
			if window.GetKey(kb.code) == glfw.Press {
				keys = keys.Add(kb.key)
			}
		}
		ctrl.Update(keys, dt)
		if ctrl.Quit() {
			window.SetShouldClose(true)
		}

		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		prog.Bind()
		setMat4(projUniform, ctrl.Projection())
		setMat4(viewUniform, ctrl.View())
		t := float32(now - start)
		for _, d := range scene.Draws {
			setMat4(modelUniform, d.Model(t))
			c := RGBAf(d.Color)
			gl.Uniform4f(colorUniform, c[0], c[1], c[2], c[3])
			if d.Wireframe {
				gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
			} else {
				gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
			}
			gpuMeshes[d.Shape].draw()
		}
		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

func setMat4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// gpuMesh is a mesh uploaded to GPU memory. It owns its vertex array and buffers
// until Delete is called.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
	mode          uint32
}

func uploadMesh(m *glviz.Mesh) (*gpuMesh, error) {
	if m.NumVertices() == 0 {
		return nil, errors.New("empty mesh")
	}
	err := m.Validate()
	if err != nil {
		return nil, err
	}
	gm := &gpuMesh{count: int32(m.Count())}
	switch m.Primitive {
	case glviz.Triangles:
		gm.mode = gl.TRIANGLES
	case glviz.TriangleStrip:
		gm.mode = gl.TRIANGLE_STRIP
	default:
		return nil, errors.New("unsupported primitive " + m.Primitive.String())
	}
	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(m.Vertices), gl.Ptr(m.Vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(glbuild.PositionLocation, 3, gl.FLOAT, false, int32(4*m.Stride), gl.PtrOffset(0))
	gl.EnableVertexAttribArray(glbuild.PositionLocation)
	if m.Indices != nil {
		gl.GenBuffers(1, &gm.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(m.Indices), gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	if err = glgl.Err(); err != nil {
		gm.Delete()
		return nil, err
	}
	return gm, nil
}

func (gm *gpuMesh) draw() {
	gl.BindVertexArray(gm.vao)
	if gm.ebo != 0 {
		gl.DrawElements(gm.mode, gm.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	} else {
		gl.DrawArrays(gm.mode, 0, gm.count)
	}
}

// Delete releases the GPU resources. It is safe to call more than once.
func (gm *gpuMesh) Delete() {
	if gm.ebo != 0 {
		gl.DeleteBuffers(1, &gm.ebo)
		gm.ebo = 0
	}
	if gm.vbo != 0 {
		gl.DeleteBuffers(1, &gm.vbo)
		gm.vbo = 0
	}
	if gm.vao != 0 {
		gl.DeleteVertexArrays(1, &gm.vao)
		gm.vao = 0
	}
}

func startGLFW(width, height int, title string) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err = glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("creating GLFW window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	return window, glfw.Terminate, nil
}
