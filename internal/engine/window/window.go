// Package window handles window and OpenGL context creation.
//
// Two backends are available: SDL2 (default) and GLFW. Both create an
// OpenGL 4.1 core context and translate native events into input.Event.
package window

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/objcurve/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Backend names.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Backend    string
	// CaptureMouse hides the cursor and reports unbounded relative motion.
	CaptureMouse bool
}

// Window is an OS window with a current OpenGL context.
type Window interface {
	// PollEvents drains pending native events into in.
	PollEvents(in *input.Input)
	SwapBuffers()
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (int, int)
	SetTitle(title string)
	Close()
}

// New creates a window using the configured backend.
func New(cfg Config, log *zap.Logger) (Window, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var (
		w   Window
		err error
	)
	switch cfg.Backend {
	case BackendSDL, "":
		w, err = newSDLWindow(cfg, log)
	case BackendGLFW:
		w, err = newGLFWWindow(cfg, log)
	default:
		return nil, fmt.Errorf("unknown window backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	log.Info("window created",
		zap.String("backend", cfg.Backend),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}
