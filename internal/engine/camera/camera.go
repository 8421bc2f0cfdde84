// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// FlyCamera is a free-look camera steered by yaw/pitch angles.
type FlyCamera struct {
	Position mgl32.Vec3
	Up       mgl32.Vec3

	// Euler angles, degrees. Yaw -90 looks down -Z.
	Yaw   float32
	Pitch float32

	// Vertical field of view, degrees
	FOV float32

	// Constraints
	MaxPitch float32
	MinFOV   float32
	MaxFOV   float32

	// Sensitivity
	Speed       float32 // world units per movement step
	Sensitivity float32 // degrees per pixel of mouse travel

	front mgl32.Vec3
}

// NewFlyCamera creates a camera at position looking down -Z.
func NewFlyCamera(position mgl32.Vec3) *FlyCamera {
	c := &FlyCamera{
		Position:    position,
		Up:          mgl32.Vec3{0, 1, 0},
		Yaw:         -90,
		Pitch:       0,
		FOV:         45,
		MaxPitch:    89,
		MinFOV:      1,
		MaxFOV:      45,
		Speed:       0.05,
		Sensitivity: 0.05,
	}
	c.updateFront()
	return c
}

// Front returns the unit view direction.
func (c *FlyCamera) Front() mgl32.Vec3 {
	return c.front
}

// Right returns the unit vector to the camera's right.
func (c *FlyCamera) Right() mgl32.Vec3 {
	return c.front.Cross(c.Up).Normalize()
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.Up)
}

// ProjectionMatrix returns a perspective projection for the given aspect ratio.
func (c *FlyCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, 0.1, 100)
}

// HandleMovement moves the camera along its view and right vectors.
// forward and right are step counts, usually -1, 0 or 1.
func (c *FlyCamera) HandleMovement(forward, right float32) {
	if forward != 0 {
		c.Position = c.Position.Add(c.front.Mul(forward * c.Speed))
	}
	if right != 0 {
		c.Position = c.Position.Add(c.Right().Mul(right * c.Speed))
	}
}

// HandleLook turns the camera by a relative offset in pixels.
func (c *FlyCamera) HandleLook(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity

	// Clamp pitch
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
	if c.Pitch < -c.MaxPitch {
		c.Pitch = -c.MaxPitch
	}

	c.updateFront()
}

// HandleZoom narrows the field of view on scroll up, widens it on scroll down.
func (c *FlyCamera) HandleZoom(delta float32) {
	c.FOV -= delta
	if c.FOV < c.MinFOV {
		c.FOV = c.MinFOV
	}
	if c.FOV > c.MaxFOV {
		c.FOV = c.MaxFOV
	}
}

func (c *FlyCamera) updateFront() {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))

	c.front = mgl32.Vec3{
		float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
		float32(gomath.Sin(pitch)),
		float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
	}.Normalize()
}
