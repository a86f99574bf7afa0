// Package input turns SDL2 events into per-frame input state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a translated event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	DX, DY int // Motion since the previous mouse event
	Wheel  int // Positive away from the user
	Button uint8
}

// Translate converts one SDL event. It reports false for events the game
// does not use.
func Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED || e.Event == sdl.WINDOWEVENT_RESIZED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		ev := Event{Type: EventKeyDown, Key: e.Keysym.Scancode, Repeat: e.Repeat != 0}
		if e.Type == sdl.KEYUP {
			ev.Type = EventKeyUp
		}
		return ev, true

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			DX:     int(e.XRel),
			DY:     int(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		ev := Event{Type: EventMouseDown, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}
		if e.Type == sdl.MOUSEBUTTONUP {
			ev.Type = EventMouseUp
		}
		return ev, true

	case *sdl.MouseWheelEvent:
		wheel := int(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			wheel = -wheel
		}
		return Event{Type: EventMouseWheel, Wheel: wheel}, true
	}
	return Event{}, false
}

// State accumulates events into what the game reads once per frame: keys
// held down, keys pressed this frame, drag motion and wheel movement.
type State struct {
	held    map[sdl.Scancode]bool
	pressed map[sdl.Scancode]bool
	buttons map[uint8]bool

	dragX, dragY int
	wheel        int
	resized      bool
	width        int
	height       int
	quit         bool
}

// NewState creates an empty state.
func NewState() *State {
	return &State{
		held:    make(map[sdl.Scancode]bool),
		pressed: make(map[sdl.Scancode]bool),
		buttons: make(map[uint8]bool),
	}
}

// BeginFrame clears everything that only lasts one frame. Held keys and
// buttons carry over.
func (s *State) BeginFrame() {
	clear(s.pressed)
	s.dragX, s.dragY = 0, 0
	s.wheel = 0
	s.resized = false
}

// Apply folds one event into the state.
func (s *State) Apply(e Event) {
	switch e.Type {
	case EventQuit:
		s.quit = true
	case EventWindowResize:
		s.resized = true
		s.width, s.height = e.Width, e.Height
	case EventKeyDown:
		if !e.Repeat {
			s.pressed[e.Key] = true
		}
		s.held[e.Key] = true
	case EventKeyUp:
		delete(s.held, e.Key)
	case EventMouseDown:
		s.buttons[e.Button] = true
	case EventMouseUp:
		delete(s.buttons, e.Button)
	case EventMouseMove:
		if s.buttons[sdl.BUTTON_LEFT] {
			s.dragX += e.DX
			s.dragY += e.DY
		}
	case EventMouseWheel:
		s.wheel += e.Wheel
	}
}

// Held reports whether key is down.
func (s *State) Held(key sdl.Scancode) bool { return s.held[key] }

// Pressed reports whether key went down this frame. Auto-repeat is ignored.
func (s *State) Pressed(key sdl.Scancode) bool { return s.pressed[key] }

// Drag returns the motion made with the left button held this frame.
func (s *State) Drag() (dx, dy int) { return s.dragX, s.dragY }

// Wheel returns the wheel movement this frame.
func (s *State) Wheel() int { return s.wheel }

// Resized reports a new window size received this frame.
func (s *State) Resized() (width, height int, ok bool) {
	return s.width, s.height, s.resized
}

// Quit reports whether the window was asked to close.
func (s *State) Quit() bool { return s.quit }

// RequestQuit marks the state as quitting, as a close button would.
func (s *State) RequestQuit() { s.quit = true }

// Input polls SDL and keeps the resulting state.
type Input struct {
	state *State
}

// New creates a new input handler.
func New() *Input {
	return &Input{state: NewState()}
}

// Update starts a new frame and drains the SDL event queue. It returns true
// once the game should quit.
func (i *Input) Update() bool {
	i.state.BeginFrame()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if ev, ok := Translate(event); ok {
			i.state.Apply(ev)
		}
	}
	return i.state.Quit()
}

// State returns the state built by the last Update.
func (i *Input) State() *State {
	return i.state
}
