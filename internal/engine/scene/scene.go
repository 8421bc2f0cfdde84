// Package scene owns the GPU resources behind the objects being drawn.
package scene

import (
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/objcurve/internal/engine/renderer"
	"github.com/Faultbox/objcurve/internal/engine/texture"
)

// Model is one uploaded mesh with its texture and material.
type Model struct {
	Name     string
	Mesh     *renderer.Mesh
	Texture  uint32 // 0 when untextured
	Material renderer.Material
}

// Scene holds uploaded models. Textures are shared between models that
// reference the same image.
type Scene struct {
	log      *zap.Logger
	models   []*Model
	textures map[string]uint32

	uploadMesh    func([]float32) *renderer.Mesh
	uploadTexture func(*image.RGBA) uint32
	deleteTexture func(uint32)
}

// New creates an empty scene. Requires a current GL context for uploads.
func New(log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{
		log:           log,
		textures:      make(map[string]uint32),
		uploadMesh:    renderer.UploadMesh,
		uploadTexture: texture.Upload,
		deleteTexture: texture.Delete,
	}
}

// AddModel uploads vertices and registers a model.
func (s *Scene) AddModel(name string, vertices []float32, mat renderer.Material) *Model {
	m := &Model{
		Name:     name,
		Mesh:     s.uploadMesh(vertices),
		Material: mat,
	}
	s.models = append(s.models, m)
	s.log.Debug("model uploaded",
		zap.String("name", name),
		zap.Int("vertices", len(vertices)*4/renderer.Stride))
	return m
}

// Texture returns the texture for key, uploading img the first time key is seen.
func (s *Scene) Texture(key string, img *image.RGBA) uint32 {
	if tex, ok := s.textures[key]; ok {
		return tex
	}
	tex := s.uploadTexture(img)
	s.textures[key] = tex
	s.log.Debug("texture uploaded",
		zap.String("key", key),
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()))
	return tex
}

// Models returns the models in insertion order.
func (s *Scene) Models() []*Model {
	return s.models
}

// TextureCount returns the number of distinct uploaded textures.
func (s *Scene) TextureCount() int {
	return len(s.textures)
}

// Close releases every mesh and texture.
func (s *Scene) Close() {
	for _, m := range s.models {
		if m.Mesh != nil {
			m.Mesh.Delete()
		}
	}
	for key, tex := range s.textures {
		s.deleteTexture(tex)
		delete(s.textures, key)
	}
	s.models = nil
}
