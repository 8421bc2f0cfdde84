// Package input collects window events into per-frame input state.
//
// Window backends translate their native events into Event values and push
// them; the game reads them back once per frame.
package input

// Key identifies a keyboard key independent of the window backend.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyF12
	KeyMinus
	KeyEqual

	KeyA
	KeyD
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyO
	KeyS
	KeyU
	KeyW
	KeyX
	KeyY
	KeyZ

	// Digits are contiguous so Digit can do arithmetic.
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

var keyNames = map[Key]string{
	KeyEscape: "Escape", KeyF12: "F12", KeyMinus: "-", KeyEqual: "=",
	KeyA: "A", KeyD: "D", KeyI: "I", KeyJ: "J", KeyK: "K", KeyL: "L",
	KeyO: "O", KeyS: "S", KeyU: "U", KeyW: "W", KeyX: "X", KeyY: "Y", KeyZ: "Z",
}

func (k Key) String() string {
	if d, ok := k.Digit(); ok {
		return string(rune('0' + d))
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Digit returns the number on a digit key.
func (k Key) Digit() (int, bool) {
	if k >= Key0 && k <= Key9 {
		return int(k - Key0), true
	}
	return 0, false
}

// DigitKey returns the key for digit d (0-9).
func DigitKey(d int) Key {
	if d < 0 || d > 9 {
		return KeyUnknown
	}
	return Key0 + Key(d)
}

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventScroll
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Repeat bool // key auto-repeat

	// Mouse position and motion since the previous move event, in pixels
	MouseX, MouseY float32
	DeltaX, DeltaY float32

	// Scroll offset; positive Y scrolls up
	ScrollX, ScrollY float32

	Width  int
	Height int
}

// Input holds the events of the current frame and which keys are held.
type Input struct {
	events []Event
	down   map[Key]bool
	quit   bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		down:   make(map[Key]bool),
	}
}

// BeginFrame clears the previous frame's events. Held keys persist.
func (i *Input) BeginFrame() {
	i.events = i.events[:0]
}

// Push records an event.
func (i *Input) Push(e Event) {
	switch e.Type {
	case EventQuit:
		i.quit = true
	case EventKeyDown:
		i.down[e.Key] = true
	case EventKeyUp:
		delete(i.down, e.Key)
	}
	i.events = append(i.events, e)
}

// Events returns the events pushed since BeginFrame.
func (i *Input) Events() []Event {
	return i.events
}

// QuitRequested reports whether a quit event has been seen.
func (i *Input) QuitRequested() bool {
	return i.quit
}

// IsKeyPressed checks if a key went down this frame, ignoring auto-repeat.
func (i *Input) IsKeyPressed(k Key) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == k && !e.Repeat {
			return true
		}
	}
	return false
}

// IsKeyDown checks if a key is currently held.
func (i *Input) IsKeyDown(k Key) bool {
	return i.down[k]
}

// Axis returns +1 when pos is held, -1 when neg is held, 0 for both or neither.
func (i *Input) Axis(neg, pos Key) float32 {
	var v float32
	if i.down[pos] {
		v++
	}
	if i.down[neg] {
		v--
	}
	return v
}
