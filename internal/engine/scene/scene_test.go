package scene

import (
	"image"
	"testing"

	"github.com/Faultbox/objcurve/internal/engine/renderer"
)

// newTestScene returns a scene whose uploads never touch OpenGL.
func newTestScene() (*Scene, *[]uint32) {
	s := New(nil)
	var deleted []uint32
	next := uint32(0)
	s.uploadMesh = func(v []float32) *renderer.Mesh {
		if len(v) == 0 {
			return nil
		}
		return &renderer.Mesh{}
	}
	s.uploadTexture = func(*image.RGBA) uint32 {
		next++
		return next
	}
	s.deleteTexture = func(tex uint32) { deleted = append(deleted, tex) }
	return s, &deleted
}

func TestAddModel(t *testing.T) {
	s, _ := newTestScene()
	mat := renderer.Material{Diffuse: 1.5}

	a := s.AddModel("shield", make([]float32, 33), mat)
	b := s.AddModel("empty", nil, mat)

	if got := s.Models(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("models out of order: %v", got)
	}
	if a.Mesh == nil {
		t.Error("expected mesh for non-empty buffer")
	}
	if b.Mesh != nil {
		t.Error("expected nil mesh for empty buffer")
	}
	if a.Material != mat {
		t.Errorf("material = %+v", a.Material)
	}
}

func TestTextureSharing(t *testing.T) {
	s, deleted := newTestScene()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	first := s.Texture("cube.png", img)
	second := s.Texture("cube.png", img)
	other := s.Texture("card.png", img)

	if first != second {
		t.Errorf("same key uploaded twice: %d, %d", first, second)
	}
	if other == first {
		t.Error("distinct keys share a texture")
	}
	if s.TextureCount() != 2 {
		t.Errorf("texture count = %d, want 2", s.TextureCount())
	}

	s.Close()
	if len(*deleted) != 2 {
		t.Errorf("deleted %d textures, want 2", len(*deleted))
	}
	if s.TextureCount() != 0 || len(s.Models()) != 0 {
		t.Error("scene not empty after Close")
	}
}
