// Package game runs the viewer: it loads the scene, opens the window and
// drives the frame loop.
package game

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objcurve/internal/assets"
	"github.com/Faultbox/objcurve/internal/config"
	"github.com/Faultbox/objcurve/internal/engine/camera"
	"github.com/Faultbox/objcurve/internal/engine/debug"
	"github.com/Faultbox/objcurve/internal/engine/input"
	"github.com/Faultbox/objcurve/internal/engine/lighting"
	"github.com/Faultbox/objcurve/internal/engine/renderer"
	"github.com/Faultbox/objcurve/internal/engine/scene"
	"github.com/Faultbox/objcurve/internal/engine/texture"
	"github.com/Faultbox/objcurve/internal/engine/window"
	"github.com/Faultbox/objcurve/internal/game/controls"
	"github.com/Faultbox/objcurve/internal/game/world"
	"github.com/Faultbox/objcurve/internal/loader"
)

// ScreenshotDir is where F12 captures are written.
const ScreenshotDir = "screenshots"

// Game is the viewer instance.
type Game struct {
	cfg *config.Config
	log *zap.Logger

	assets *assets.Manager
	loader *loader.Loader
	world  *world.World

	window   window.Window
	renderer *renderer.Renderer
	scene    *scene.Scene

	camera      *camera.FlyCamera
	light       lighting.PointLight
	input       *input.Input
	controls    *controls.State
	screenshots *debug.ScreenshotCapture
}

// New loads the scene described by cfg and opens a window for it.
// Assets are loaded before the window so a strict load failure exits early.
func New(cfg *config.Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("objects", len(cfg.Scene.Objects)),
	)

	g := &Game{
		cfg:         cfg,
		log:         log,
		assets:      assets.NewManager(cfg.Assets.Roots...),
		input:       input.New(),
		controls:    controls.NewState(),
		camera:      newCamera(cfg.Scene.Camera),
		light:       lighting.NewPointLight(cfg.Scene.Light.Position, cfg.Scene.Light.Color),
		screenshots: debug.NewScreenshotCapture(ScreenshotDir, "objcurve"),
	}

	policy := loader.PolicyLenient
	if cfg.Loader.Strict {
		policy = loader.PolicyStrict
	}
	g.loader = loader.New(g.assets, log.Named("loader"), policy)

	var err error
	if g.world, err = world.Build(cfg.Scene, g.loader, log.Named("world")); err != nil {
		return nil, fmt.Errorf("failed to load scene: %w", err)
	}

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:        cfg.Window.Title,
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		Fullscreen:   cfg.Window.Fullscreen,
		VSync:        cfg.Window.VSync,
		Backend:      cfg.Window.Backend,
		CaptureMouse: true,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.FramebufferSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Background: mgl32.Vec3(cfg.Scene.Background),
	}, log.Named("renderer"))
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.scene = scene.New(log.Named("scene"))
	if err := g.upload(); err != nil {
		g.Close()
		return nil, err
	}

	log.Info("viewer initialized",
		zap.Int("models", len(g.scene.Models())),
		zap.Int("textures", g.scene.TextureCount()),
		zap.Bool("path", g.world.HasPath()),
	)
	return g, nil
}

func newCamera(cc config.CameraConfig) *camera.FlyCamera {
	cam := camera.NewFlyCamera(mgl32.Vec3(cc.Position))
	if cc.Speed > 0 {
		cam.Speed = cc.Speed
	}
	if cc.Sensitivity > 0 {
		cam.Sensitivity = cc.Sensitivity
	}
	if cc.FOV > 0 {
		cam.FOV = cc.FOV
		if cc.FOV > cam.MaxFOV {
			cam.MaxFOV = cc.FOV
		}
	}
	return cam
}

// upload moves every object's mesh and texture to the GPU.
func (g *Game) upload() error {
	for _, obj := range g.world.Objects {
		model := g.scene.AddModel(obj.Name, obj.Mesh.Buffer, materialOf(obj.Material.Coeffs))
		if obj.TexturePath == "" {
			continue
		}

		tex, err := g.loadTexture(obj.TexturePath)
		if err != nil {
			if g.loader.Policy() == loader.PolicyStrict {
				return fmt.Errorf("object %s: %w", obj.Name, err)
			}
			g.log.Warn("texture skipped",
				zap.String("object", obj.Name),
				zap.String("path", obj.TexturePath),
				zap.Error(err))
			continue
		}
		model.Texture = tex
	}
	return nil
}

func (g *Game) loadTexture(path string) (uint32, error) {
	data, err := g.assets.Load(path)
	if err != nil {
		return 0, err
	}
	img, err := texture.Decode(data, path)
	if err != nil {
		return 0, fmt.Errorf("texture %s: %w", path, err)
	}
	return g.scene.Texture(path, img), nil
}

// materialOf converts loaded coefficients to the renderer's terms.
func materialOf(c loader.Coefficients) renderer.Material {
	return renderer.Material{Ambient: c.Ka, Diffuse: c.Kd, Specular: c.Ks, Shininess: c.Q}
}

// poseFor returns the per-frame pose of obj under the current controls.
func poseFor(obj *world.Object, st *controls.State, seconds float32) world.Pose {
	return world.Pose{
		Offset:  st.Offset,
		Scale:   st.Scale,
		Spin:    st.Axis.Vector(),
		Seconds: seconds,
		OnPath:  obj.MoveKey >= 0 && st.Bound(obj.MoveKey),
	}
}

// Run starts the frame loop and returns when the window closes.
func (g *Game) Run() error {
	start := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting frame loop")

	for {
		// 1. Process input
		g.input.BeginFrame()
		g.window.PollEvents(g.input)
		for _, event := range g.input.Events() {
			if event.Type == input.EventWindowResize {
				g.renderer.Resize(event.Width, event.Height)
			}
		}

		before := g.controls.Bindings()
		g.controls.Update(g.input, g.camera)
		if g.controls.Quit {
			break
		}
		if after := g.controls.Bindings(); !slices.Equal(before, after) {
			g.log.Info("path bindings changed", zap.Ints("keys", after))
		}

		// 2. Render
		g.render(float32(time.Since(start).Seconds()))

		if g.controls.Screenshot {
			g.screenshot()
		}

		// 3. Step along the path and present
		g.world.Advance()
		g.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			g.log.Debug("fps", zap.Float64("fps", fps), zap.Int("step", g.world.Step()))
			g.window.SetTitle(fmt.Sprintf("%s (%.0f fps)", g.cfg.Window.Title, fps))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	g.log.Info("frame loop stopped")
	return nil
}

// render draws the current frame.
func (g *Game) render(seconds float32) {
	g.renderer.Begin(renderer.Frame{
		View:       g.camera.ViewMatrix(),
		Projection: g.camera.ProjectionMatrix(g.renderer.Aspect()),
		CameraPos:  g.camera.Position,
		Light:      g.light,
	})

	models := g.scene.Models()
	for i, obj := range g.world.Objects {
		m := models[i]
		g.renderer.Draw(m.Mesh, g.world.ModelMatrix(obj, poseFor(obj, g.controls, seconds)), m.Material, m.Texture)
	}
}

func (g *Game) screenshot() {
	width, height := g.renderer.Size()
	path, err := g.screenshots.Capture(width, height)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases every resource in reverse creation order.
func (g *Game) Close() {
	g.log.Info("closing viewer")

	if g.scene != nil {
		g.scene.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
	g.assets.Close()
}
