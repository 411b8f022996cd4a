// Package camera implements a free-look first person camera controlled by
// yaw/pitch angles in degrees, keyboard displacement and a zoom scalar.
package camera

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/math/ms1"
)

// Default camera parameters.
const (
	DefaultYaw         = -90.0
	DefaultPitch       = 0.0
	DefaultSpeed       = 3.5
	DefaultSensitivity = 0.1
	DefaultZoom        = 45.0
)

// Limits enforced on camera state.
const (
	MaxPitch = 89.0
	MinZoom  = 1.0
	MaxZoom  = 45.0
)

var worldUp = ms3.Vec{Y: 1}

// Direction is a keyboard movement direction relative to the camera's view.
type Direction uint8

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown direction"
}

// Config holds the construction parameters of a [Camera].
type Config struct {
	// Yaw and Pitch are the initial view angles in degrees.
	Yaw, Pitch float32
	// Speed is the displacement per second of movement.
	Speed float32
	// Sensitivity scales look offsets before they are added to yaw and pitch.
	Sensitivity float32
	// Zoom is the initial field of view proxy in degrees.
	Zoom float32
}

// DefaultConfig returns yaw=-90°, pitch=0°, speed=3.5, sensitivity=0.1 and zoom=45°.
// The default camera looks down the negative Z axis.
func DefaultConfig() Config {
	return Config{
		Yaw:         DefaultYaw,
		Pitch:       DefaultPitch,
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		Zoom:        DefaultZoom,
	}
}

// Camera is a free-look camera. Its front, right and up vectors form an
// orthonormal basis derived from yaw and pitch and are never set directly.
// A Camera is not safe for concurrent use.
type Camera struct {
	pos   ms3.Vec
	front ms3.Vec
	right ms3.Vec
	up    ms3.Vec

	yaw, pitch  float32
	speed       float32
	sensitivity float32
	zoom        float32
}

// New returns a camera at position with [DefaultConfig] parameters.
func New(position ms3.Vec) *Camera {
	cam, err := NewWithConfig(position, DefaultConfig())
	if err != nil {
		panic(err) // Unreachable with default configuration.
	}
	return cam
}

// NewWithConfig returns a camera at position with the given parameters.
// Speed and sensitivity must be non-negative and zoom must be within [MinZoom, MaxZoom].
func NewWithConfig(position ms3.Vec, cfg Config) (*Camera, error) {
	for _, v := range []float32{position.X, position.Y, position.Z, cfg.Yaw, cfg.Pitch, cfg.Speed, cfg.Sensitivity, cfg.Zoom} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return nil, errors.New("non-finite camera parameter")
		}
	}
	if cfg.Speed < 0 {
		return nil, errors.New("negative camera speed")
	} else if cfg.Sensitivity < 0 {
		return nil, errors.New("negative camera sensitivity")
	} else if cfg.Zoom < MinZoom || cfg.Zoom > MaxZoom {
		return nil, errors.New("camera zoom out of range [1,45]")
	} else if cfg.Pitch < -MaxPitch || cfg.Pitch > MaxPitch {
		return nil, errors.New("camera pitch out of range [-89,89]")
	}
	cam := &Camera{
		pos:         position,
		yaw:         cfg.Yaw,
		pitch:       cfg.Pitch,
		speed:       cfg.Speed,
		sensitivity: cfg.Sensitivity,
		zoom:        cfg.Zoom,
	}
	cam.updateBasis()
	return cam, nil
}

// ViewMatrix returns the right-handed look-at transform from the camera position
// towards position+front.
func (cam *Camera) ViewMatrix() mgl32.Mat4 {
	target := ms3.Add(cam.pos, cam.front)
	return mgl32.LookAtV(vec3(cam.pos), vec3(target), vec3(cam.up))
}

// Zoom returns the field of view proxy in degrees, always within [MinZoom, MaxZoom].
func (cam *Camera) Zoom() float32 { return cam.zoom }

func (cam *Camera) Position() ms3.Vec { return cam.pos }
func (cam *Camera) Front() ms3.Vec    { return cam.front }
func (cam *Camera) Right() ms3.Vec    { return cam.right }
func (cam *Camera) Up() ms3.Vec       { return cam.up }
func (cam *Camera) Yaw() float32      { return cam.yaw }
func (cam *Camera) Pitch() float32    { return cam.pitch }

// Move displaces the camera along front (Forward/Backward) or right (Left/Right)
// by speed*dt. The basis is unaffected.
func (cam *Camera) Move(dir Direction, dt float32) {
	dist := cam.speed * dt
	switch dir {
	case Forward:
		cam.pos = ms3.Add(cam.pos, ms3.Scale(dist, cam.front))
	case Backward:
		cam.pos = ms3.Sub(cam.pos, ms3.Scale(dist, cam.front))
	case Left:
		cam.pos = ms3.Sub(cam.pos, ms3.Scale(dist, cam.right))
	case Right:
		cam.pos = ms3.Add(cam.pos, ms3.Scale(dist, cam.right))
	}
}

// Look adds the sensitivity scaled offsets to yaw and pitch and recomputes the basis.
// If constrainPitch is true pitch is clamped to [-MaxPitch, MaxPitch].
func (cam *Camera) Look(xoff, yoff float32, constrainPitch bool) {
	cam.yaw += xoff * cam.sensitivity
	cam.pitch += yoff * cam.sensitivity
	if constrainPitch {
		cam.pitch = ms1.Clamp(cam.pitch, -MaxPitch, MaxPitch)
	}
	cam.updateBasis()
}

// Scroll subtracts yoff from zoom and clamps the result to [MinZoom, MaxZoom].
// The subtraction only happens when zoom is within range before the update.
func (cam *Camera) Scroll(yoff float32) {
	if cam.zoom >= MinZoom && cam.zoom <= MaxZoom {
		cam.zoom -= yoff
	}
	if cam.zoom <= MinZoom {
		cam.zoom = MinZoom
	}
	if cam.zoom >= MaxZoom {
		cam.zoom = MaxZoom
	}
}

// updateBasis derives front from yaw and pitch, then right and up from front.
// At pitch ±90° the cross product with world up degenerates. The pitch clamp
// keeps the camera away from it.
func (cam *Camera) updateBasis() {
	yaw := cam.yaw * math32.Pi / 180
	pitch := cam.pitch * math32.Pi / 180
	cp := math32.Cos(pitch)
	dir := ms3.Vec{
		X: math32.Cos(yaw) * cp,
		Y: math32.Sin(pitch),
		Z: math32.Sin(yaw) * cp,
	}
	cam.front = ms3.Unit(dir)
	cam.right = ms3.Unit(ms3.Cross(cam.front, worldUp))
	cam.up = ms3.Unit(ms3.Cross(cam.right, cam.front))
}

func vec3(v ms3.Vec) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}
