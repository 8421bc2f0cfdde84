package lighting

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewPointLight(t *testing.T) {
	tests := []struct {
		name  string
		color [3]float32
		want  mgl32.Vec3
	}{
		{"yellow", [3]float32{1, 1, 0}, mgl32.Vec3{1, 1, 0}},
		{"unset", [3]float32{}, White},
		{"clamped", [3]float32{2, -1, 0.5}, mgl32.Vec3{1, 0, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewPointLight([3]float32{-2, 5, 10}, tt.color)
			if l.Position != (mgl32.Vec3{-2, 5, 10}) {
				t.Errorf("position = %v", l.Position)
			}
			if l.Color != tt.want {
				t.Errorf("color = %v, want %v", l.Color, tt.want)
			}
		})
	}
}
