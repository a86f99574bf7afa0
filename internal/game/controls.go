package game

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/driftline/internal/config"
)

// Action is something the player can ask for from the keyboard.
type Action int

const (
	ActionForward Action = iota
	ActionTurnLeft
	ActionTurnRight
	ActionQuit
	ActionReset
	ActionToggleView
	ActionToggleBounds
	ActionToggleInfo
	ActionWaterMode
	ActionBumpMapping
	ActionFasterTime
	ActionSlowerTime
	ActionMute
	ActionScreenshot
	actionCount
)

var actionNames = [actionCount]string{
	"forward", "turn_left", "turn_right", "quit", "reset",
	"toggle_view", "toggle_bounds", "toggle_info", "water_mode",
	"bump_mapping", "faster_time", "slower_time", "mute", "screenshot",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Repeating reports whether the action fires every frame its key is held,
// rather than once per press.
func (a Action) Repeating() bool {
	switch a {
	case ActionForward, ActionTurnLeft, ActionTurnRight, ActionFasterTime, ActionSlowerTime:
		return true
	}
	return false
}

// Drag and wheel sensitivity.
const (
	DragDegreesPerPixel = 0.3
	WheelZoomStep       = 1
)

// KeyState is what Controls reads from the input layer.
type KeyState interface {
	Held(key sdl.Scancode) bool
	Pressed(key sdl.Scancode) bool
}

// Controls maps actions to scancodes.
type Controls struct {
	keys [actionCount]sdl.Scancode
}

// NewControls resolves the configured SDL key names.
func NewControls(cfg config.ControlsConfig) (*Controls, error) {
	byName := make(map[string]Action, actionCount)
	for a := Action(0); a < actionCount; a++ {
		byName[a.String()] = a
	}

	c := &Controls{}
	for _, b := range cfg.Bindings() {
		a, ok := byName[b.Action]
		if !ok {
			return nil, fmt.Errorf("unknown action %q", b.Action)
		}
		code := sdl.GetScancodeFromName(b.Key)
		if code == sdl.SCANCODE_UNKNOWN {
			return nil, fmt.Errorf("action %s: unknown key %q", b.Action, b.Key)
		}
		c.keys[a] = code
	}
	return c, nil
}

// Key returns the scancode bound to a.
func (c *Controls) Key(a Action) sdl.Scancode { return c.keys[a] }

// Active reports whether a fires this frame.
func (c *Controls) Active(s KeyState, a Action) bool {
	if a.Repeating() {
		return s.Held(c.keys[a])
	}
	return s.Pressed(c.keys[a])
}

// Fired returns every action that fires this frame, in Action order.
func (c *Controls) Fired(s KeyState) []Action {
	var out []Action
	for a := Action(0); a < actionCount; a++ {
		if c.Active(s, a) {
			out = append(out, a)
		}
	}
	return out
}
