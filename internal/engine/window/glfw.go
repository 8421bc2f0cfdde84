package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/objcurve/internal/engine/input"
)

// glfwWindow wraps a GLFW window. GLFW reports input through callbacks, so
// events are queued and handed over on the next PollEvents.
type glfwWindow struct {
	log     *zap.Logger
	window  *glfw.Window
	pending []input.Event

	haveCursor   bool
	lastX, lastY float64
}

func newGLFWWindow(cfg Config, log *zap.Logger) (*glfwWindow, error) {
	log.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw.Init failed: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}
	win.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &glfwWindow{log: log, window: win}

	if cfg.CaptureMouse {
		win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k := glfwKey(key)
		if k == input.KeyUnknown {
			return
		}
		switch action {
		case glfw.Press:
			w.pending = append(w.pending, input.Event{Type: input.EventKeyDown, Key: k})
		case glfw.Repeat:
			w.pending = append(w.pending, input.Event{Type: input.EventKeyDown, Key: k, Repeat: true})
		case glfw.Release:
			w.pending = append(w.pending, input.Event{Type: input.EventKeyUp, Key: k})
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.pending = append(w.pending, w.cursorEvent(x, y))
	})

	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.pending = append(w.pending, input.Event{
			Type:    input.EventScroll,
			ScrollX: float32(xoff),
			ScrollY: float32(yoff),
		})
	})

	// Framebuffer size differs from window size on high-DPI displays.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.pending = append(w.pending, input.Event{Type: input.EventWindowResize, Width: width, Height: height})
	})

	win.SetCloseCallback(func(_ *glfw.Window) {
		w.pending = append(w.pending, input.Event{Type: input.EventQuit})
	})

	return w, nil
}

// cursorEvent turns an absolute cursor position into a move event.
// The first position has no delta.
func (w *glfwWindow) cursorEvent(x, y float64) input.Event {
	e := input.Event{Type: input.EventMouseMove, MouseX: float32(x), MouseY: float32(y)}
	if w.haveCursor {
		e.DeltaX = float32(x - w.lastX)
		e.DeltaY = float32(y - w.lastY)
	}
	w.lastX, w.lastY = x, y
	w.haveCursor = true
	return e
}

// PollEvents processes GLFW events and hands the queued ones to in.
func (w *glfwWindow) PollEvents(in *input.Input) {
	glfw.PollEvents()
	for _, e := range w.pending {
		in.Push(e)
	}
	w.pending = w.pending[:0]
}

// SwapBuffers swaps the OpenGL buffers.
func (w *glfwWindow) SwapBuffers() {
	w.window.SwapBuffers()
}

// FramebufferSize returns the drawable size in pixels.
func (w *glfwWindow) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

// SetTitle sets the window title.
func (w *glfwWindow) SetTitle(title string) {
	w.window.SetTitle(title)
}

// Close destroys the window and terminates GLFW.
func (w *glfwWindow) Close() {
	w.log.Info("closing window")
	w.window.Destroy()
	glfw.Terminate()
}

var glfwKeys = map[glfw.Key]input.Key{
	glfw.KeyEscape: input.KeyEscape,
	glfw.KeyF12:    input.KeyF12,
	glfw.KeyMinus:  input.KeyMinus,
	glfw.KeyEqual:  input.KeyEqual,
	glfw.KeyA:      input.KeyA,
	glfw.KeyD:      input.KeyD,
	glfw.KeyI:      input.KeyI,
	glfw.KeyJ:      input.KeyJ,
	glfw.KeyK:      input.KeyK,
	glfw.KeyL:      input.KeyL,
	glfw.KeyO:      input.KeyO,
	glfw.KeyS:      input.KeyS,
	glfw.KeyU:      input.KeyU,
	glfw.KeyW:      input.KeyW,
	glfw.KeyX:      input.KeyX,
	glfw.KeyY:      input.KeyY,
	glfw.KeyZ:      input.KeyZ,
	glfw.Key0:      input.Key0,
	glfw.Key1:      input.Key1,
	glfw.Key2:      input.Key2,
	glfw.Key3:      input.Key3,
	glfw.Key4:      input.Key4,
	glfw.Key5:      input.Key5,
	glfw.Key6:      input.Key6,
	glfw.Key7:      input.Key7,
	glfw.Key8:      input.Key8,
	glfw.Key9:      input.Key9,
}

func glfwKey(k glfw.Key) input.Key {
	return glfwKeys[k]
}
