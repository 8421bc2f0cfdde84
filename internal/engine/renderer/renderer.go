// Package renderer draws lit, textured triangle meshes with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objcurve/internal/engine/lighting"
	"github.com/Faultbox/objcurve/internal/engine/shader"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background mgl32.Vec3
}

// Material holds the Phong terms for one draw.
type Material struct {
	Ambient   float32
	Diffuse   float32
	Specular  float32
	Shininess float32
}

// Frame is the per-frame camera and light state shared by every draw.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	CameraPos  mgl32.Vec3
	Light      lighting.PointLight
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	log     *zap.Logger
	program *shader.Program
	draws   int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{config: cfg, log: log}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)

	program, err := shader.NewPhongProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program = program

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Aspect returns width/height, or 1 before the first resize.
func (r *Renderer) Aspect() float32 {
	return aspect(r.config.Width, r.config.Height)
}

func aspect(w, h int) float32 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}

// Begin clears the frame and uploads the shared uniforms.
func (r *Renderer) Begin(f Frame) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.draws = 0

	p := r.program
	p.Use()
	p.SetMat4("uView", f.View)
	p.SetMat4("uProjection", f.Projection)
	p.SetVec3("uCameraPos", f.CameraPos)
	p.SetVec3("uLightPos", f.Light.Position)
	p.SetVec3("uLightColor", f.Light.Color)
	p.SetInt("uTexture", 0)
}

// Draw renders mesh with the given model matrix. A zero texture draws with
// vertex colors only.
func (r *Renderer) Draw(mesh *Mesh, model mgl32.Mat4, mat Material, tex uint32) {
	if mesh == nil {
		return
	}

	p := r.program
	p.SetMat4("uModel", model)
	p.SetFloat("uKa", mat.Ambient)
	p.SetFloat("uKd", mat.Diffuse)
	p.SetFloat("uKs", mat.Specular)
	p.SetFloat("uShininess", mat.Shininess)
	p.SetBool("uHasTexture", tex != 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	mesh.draw()
	gl.BindTexture(gl.TEXTURE_2D, 0)
	r.draws++
}

// DrawCount returns the number of Draw calls since Begin.
func (r *Renderer) DrawCount() int {
	return r.draws
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.program != nil {
		r.program.Delete()
	}
}
