// Package lighting provides point light support for mesh rendering.
package lighting

import "github.com/go-gl/mathgl/mgl32"

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position mgl32.Vec3 // World position
	Color    mgl32.Vec3 // RGB color (0-1 range)
}

// White is full-intensity white light.
var White = mgl32.Vec3{1, 1, 1}

// NewPointLight creates a light from config triples. Color channels are
// clamped to [0, 1]; an all-zero color is treated as unset and becomes White.
func NewPointLight(position, color [3]float32) PointLight {
	c := mgl32.Vec3(color)
	if c == (mgl32.Vec3{}) {
		c = White
	}
	for i := range c {
		c[i] = mgl32.Clamp(c[i], 0, 1)
	}
	return PointLight{Position: mgl32.Vec3(position), Color: c}
}
