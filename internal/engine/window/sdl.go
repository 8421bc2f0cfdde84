package window

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/objcurve/internal/engine/input"
)

// sdlWindow wraps an SDL2 window and OpenGL context.
type sdlWindow struct {
	log       *zap.Logger
	sdlWindow *sdl.Window
	glContext sdl.GLContext
}

func newSDLWindow(cfg Config, log *zap.Logger) (*sdlWindow, error) {
	w := &sdlWindow{log: log}

	log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Set OpenGL attributes BEFORE creating window
	// We want OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	if cfg.CaptureMouse {
		sdl.SetRelativeMouseMode(true)
	}

	return w, nil
}

// PollEvents converts pending SDL events into input events.
func (w *sdlWindow) PollEvents(in *input.Input) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			in.Push(input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				width, height := w.FramebufferSize()
				in.Push(input.Event{Type: input.EventWindowResize, Width: width, Height: height})
			}

		case *sdl.KeyboardEvent:
			key := sdlKey(e.Keysym.Scancode)
			if key == input.KeyUnknown {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				in.Push(input.Event{Type: input.EventKeyDown, Key: key, Repeat: e.Repeat != 0})
			} else if e.Type == sdl.KEYUP {
				in.Push(input.Event{Type: input.EventKeyUp, Key: key})
			}

		case *sdl.MouseMotionEvent:
			in.Push(input.Event{
				Type:   input.EventMouseMove,
				MouseX: float32(e.X),
				MouseY: float32(e.Y),
				DeltaX: float32(e.XRel),
				DeltaY: float32(e.YRel),
			})

		case *sdl.MouseWheelEvent:
			in.Push(input.Event{
				Type:    input.EventScroll,
				ScrollX: float32(e.X),
				ScrollY: float32(e.Y),
			})
		}
	}
}

// SwapBuffers swaps the OpenGL buffers.
func (w *sdlWindow) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// FramebufferSize returns the drawable size in pixels.
func (w *sdlWindow) FramebufferSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *sdlWindow) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// Close destroys the window and cleans up SDL2.
func (w *sdlWindow) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

var sdlKeys = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_F12:    input.KeyF12,
	sdl.SCANCODE_MINUS:  input.KeyMinus,
	sdl.SCANCODE_EQUALS: input.KeyEqual,
	sdl.SCANCODE_A:      input.KeyA,
	sdl.SCANCODE_D:      input.KeyD,
	sdl.SCANCODE_I:      input.KeyI,
	sdl.SCANCODE_J:      input.KeyJ,
	sdl.SCANCODE_K:      input.KeyK,
	sdl.SCANCODE_L:      input.KeyL,
	sdl.SCANCODE_O:      input.KeyO,
	sdl.SCANCODE_S:      input.KeyS,
	sdl.SCANCODE_U:      input.KeyU,
	sdl.SCANCODE_W:      input.KeyW,
	sdl.SCANCODE_X:      input.KeyX,
	sdl.SCANCODE_Y:      input.KeyY,
	sdl.SCANCODE_Z:      input.KeyZ,
	sdl.SCANCODE_0:      input.Key0,
	sdl.SCANCODE_1:      input.Key1,
	sdl.SCANCODE_2:      input.Key2,
	sdl.SCANCODE_3:      input.Key3,
	sdl.SCANCODE_4:      input.Key4,
	sdl.SCANCODE_5:      input.Key5,
	sdl.SCANCODE_6:      input.Key6,
	sdl.SCANCODE_7:      input.Key7,
	sdl.SCANCODE_8:      input.Key8,
	sdl.SCANCODE_9:      input.Key9,
}

func sdlKey(sc sdl.Scancode) input.Key {
	return sdlKeys[sc]
}
