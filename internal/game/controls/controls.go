// Package controls maps per-frame input onto viewer state: the camera, the
// object transform tweaks and which objects ride the curve.
package controls

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objcurve/internal/engine/camera"
	"github.com/Faultbox/objcurve/internal/engine/input"
)

// Step sizes for keyboard tweaks.
const (
	NudgeStep float32 = 0.1
	ScaleStep float32 = 0.2
	MinScale  float32 = 0.2
)

// Axis is the axis objects spin around over time.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

// Vector returns the unit vector of the axis, or zero for AxisNone.
func (a Axis) Vector() mgl32.Vec3 {
	switch a {
	case AxisX:
		return mgl32.Vec3{1, 0, 0}
	case AxisY:
		return mgl32.Vec3{0, 1, 0}
	case AxisZ:
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{}
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "none"
}

// nudges maps keys to translation steps.
var nudges = map[input.Key]mgl32.Vec3{
	input.KeyJ: {-NudgeStep, 0, 0},
	input.KeyL: {NudgeStep, 0, 0},
	input.KeyK: {0, -NudgeStep, 0},
	input.KeyI: {0, NudgeStep, 0},
	input.KeyU: {0, 0, -NudgeStep},
	input.KeyO: {0, 0, NudgeStep},
}

// State is everything the keyboard and mouse can change.
type State struct {
	Axis   Axis
	Offset mgl32.Vec3
	Scale  float32

	// Quit is set once Escape or a window close is seen.
	Quit bool
	// Screenshot is set for the frame in which F12 went down.
	Screenshot bool

	bound [10]bool
}

// NewState returns the initial state: no rotation, no offset, unit scale,
// nothing bound to the curve.
func NewState() *State {
	return &State{Scale: 1}
}

// Toggle adds or removes digit's curve binding. Out-of-range digits are ignored.
func (s *State) Toggle(digit int) {
	if digit < 0 || digit > 9 {
		return
	}
	s.bound[digit] = !s.bound[digit]
}

// Bound reports whether objects with move key digit ride the curve.
func (s *State) Bound(digit int) bool {
	if digit < 0 || digit > 9 {
		return false
	}
	return s.bound[digit]
}

// Bindings returns the bound digits in ascending order.
func (s *State) Bindings() []int {
	var out []int
	for d, on := range s.bound {
		if on {
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out
}

// Update applies one frame of input. cam may be nil.
func (s *State) Update(in *input.Input, cam *camera.FlyCamera) {
	s.Screenshot = false
	if in.QuitRequested() {
		s.Quit = true
	}

	for _, e := range in.Events() {
		switch e.Type {
		case input.EventKeyDown:
			if !e.Repeat {
				s.keyDown(e.Key)
			}
		case input.EventMouseMove:
			if cam != nil {
				// Window Y grows downward; looking up needs a positive offset.
				cam.HandleLook(e.DeltaX, -e.DeltaY)
			}
		case input.EventScroll:
			if cam != nil {
				cam.HandleZoom(e.ScrollY)
			}
		}
	}

	if cam != nil {
		cam.HandleMovement(in.Axis(input.KeyS, input.KeyW), in.Axis(input.KeyA, input.KeyD))
	}
}

func (s *State) keyDown(k input.Key) {
	if d, ok := k.Digit(); ok {
		s.Toggle(d)
		return
	}
	if step, ok := nudges[k]; ok {
		s.Offset = s.Offset.Add(step)
		return
	}

	switch k {
	case input.KeyEscape:
		s.Quit = true
	case input.KeyF12:
		s.Screenshot = true
	case input.KeyX:
		s.Axis = AxisX
	case input.KeyY:
		s.Axis = AxisY
	case input.KeyZ:
		s.Axis = AxisZ
	case input.KeyEqual:
		s.Scale += ScaleStep
	case input.KeyMinus:
		s.Scale -= ScaleStep
		if s.Scale < MinScale {
			s.Scale = MinScale
		}
	}
}
