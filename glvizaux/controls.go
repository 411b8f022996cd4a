package glvizaux

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glviz/camera"
)

// Key is a keyboard key the [Controller] reacts to.
type Key uint8

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyO
	KeyP
	KeyEscape
)

// KeySet is a set of keys held down during a frame.
type KeySet uint16

// Add returns the set with k added.
func (ks KeySet) Add(k Key) KeySet { return ks | 1<<k }

// Has reports whether k is in the set.
func (ks KeySet) Has(k Key) bool { return ks&(1<<k) != 0 }

// ProjectionMode selects the projection returned by [Controller.Projection].
type ProjectionMode uint8

const (
	Perspective ProjectionMode = iota
	Orthographic
)

// Projection clip planes.
const (
	perspNear, perspFar = 0.1, 100
	orthoNear, orthoFar = -1000, 1000
	// orthoPixelsPerUnit relates viewport size in pixels to the orthographic view volume.
	orthoPixelsPerUnit = 256
)

// Controller translates window input into camera updates and tracks the projection state.
// It holds what would otherwise be window-global input state so several windows
// and cameras can coexist.
type Controller struct {
	cam           *camera.Camera
	width, height int
	lastX, lastY  float64
	firstMove     bool
	mode          ProjectionMode
	quit          bool
}

// NewController returns a controller driving cam for a viewport of the given size in pixels.
func NewController(cam *camera.Camera, width, height int) *Controller {
	return &Controller{
		cam:       cam,
		width:     width,
		height:    height,
		lastX:     float64(width) / 2,
		lastY:     float64(height) / 2,
		firstMove: true,
	}
}

// Camera returns the controlled camera.
func (c *Controller) Camera() *camera.Camera { return c.cam }

// CursorMoved updates the camera look direction from a new cursor position.
// Screen Y grows downwards so the vertical offset is inverted.
// The first call only records the position.
func (c *Controller) CursorMoved(x, y float64) {
	if c.firstMove {
		c.lastX, c.lastY = x, y
		c.firstMove = false
	}
	xoff := x - c.lastX
	yoff := c.lastY - y
	c.lastX, c.lastY = x, y
	c.cam.Look(float32(xoff), float32(yoff), true)
}

// Scrolled updates the camera zoom from a vertical scroll offset.
func (c *Controller) Scrolled(yoff float64) {
	c.cam.Scroll(float32(yoff))
}

// Update applies the keys held during a frame lasting dt seconds.
func (c *Controller) Update(keys KeySet, dt float32) {
	if keys.Has(KeyEscape) {
		c.quit = true
	}
	if keys.Has(KeyW) {
		c.cam.Move(camera.Forward, dt)
	}
	if keys.Has(KeyS) {
		c.cam.Move(camera.Backward, dt)
	}
	if keys.Has(KeyA) {
		c.cam.Move(camera.Left, dt)
	}
	if keys.Has(KeyD) {
		c.cam.Move(camera.Right, dt)
	}
	if keys.Has(KeyO) {
		c.mode = Orthographic
	}
	if keys.Has(KeyP) {
		c.mode = Perspective
	}
}

// Quit reports whether a quit was requested.
func (c *Controller) Quit() bool { return c.quit }

// Mode returns the current projection mode.
func (c *Controller) Mode() ProjectionMode { return c.mode }

// Resize sets the viewport size in pixels. Non-positive sizes are ignored (minimized window).
func (c *Controller) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
}

// Projection returns the projection matrix for the current mode and viewport.
// The perspective field of view follows the camera zoom.
func (c *Controller) Projection() mgl32.Mat4 {
	w, h := float32(c.width), float32(c.height)
	if c.mode == Orthographic {
		hw, hh := w/orthoPixelsPerUnit, h/orthoPixelsPerUnit
		return mgl32.Ortho(-hw, hw, -hh, hh, orthoNear, orthoFar)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.cam.Zoom()), w/h, perspNear, perspFar)
}

// View returns the camera view matrix.
func (c *Controller) View() mgl32.Mat4 {
	return c.cam.ViewMatrix()
}
