package game

import (
	"slices"
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/driftline/internal/config"
)

type keys struct {
	held, pressed map[sdl.Scancode]bool
}

func (k keys) Held(c sdl.Scancode) bool    { return k.held[c] }
func (k keys) Pressed(c sdl.Scancode) bool { return k.pressed[c] }

func TestNewControlsDefaults(t *testing.T) {
	c, err := NewControls(config.Default().Controls)
	if err != nil {
		t.Fatalf("NewControls: %v", err)
	}
	tests := []struct {
		action Action
		want   sdl.Scancode
	}{
		{ActionForward, sdl.SCANCODE_W},
		{ActionTurnLeft, sdl.SCANCODE_A},
		{ActionTurnRight, sdl.SCANCODE_D},
		{ActionQuit, sdl.SCANCODE_Q},
		{ActionReset, sdl.SCANCODE_R},
		{ActionToggleInfo, sdl.SCANCODE_I},
		{ActionScreenshot, sdl.SCANCODE_F12},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			if got := c.Key(tt.action); got != tt.want {
				t.Errorf("Key(%s) = %d, want %d", tt.action, got, tt.want)
			}
		})
	}
}

func TestNewControlsUnknownKey(t *testing.T) {
	cfg := config.Default().Controls
	cfg.Reset = "NotAKey"
	if _, err := NewControls(cfg); err == nil {
		t.Error("expected error for unknown key name")
	}
}

func TestActionNames(t *testing.T) {
	for a := Action(0); a < actionCount; a++ {
		if a.String() == "" || a.String() == "unknown" {
			t.Errorf("action %d has no name", a)
		}
	}
	if Action(-1).String() != "unknown" || actionCount.String() != "unknown" {
		t.Error("out of range actions should be unknown")
	}

	// Every config binding names a known action.
	for _, b := range config.Default().Controls.Bindings() {
		if !slices.Contains(actionNames[:], b.Action) {
			t.Errorf("binding %q has no action", b.Action)
		}
	}
}

func TestControlsFired(t *testing.T) {
	c, err := NewControls(config.Default().Controls)
	if err != nil {
		t.Fatalf("NewControls: %v", err)
	}

	// W held for several frames, R pressed once, I held from an earlier frame.
	s := keys{
		held: map[sdl.Scancode]bool{
			sdl.SCANCODE_W: true,
			sdl.SCANCODE_R: true,
			sdl.SCANCODE_I: true,
		},
		pressed: map[sdl.Scancode]bool{sdl.SCANCODE_R: true},
	}

	got := c.Fired(s)
	want := []Action{ActionForward, ActionReset}
	if !slices.Equal(got, want) {
		t.Errorf("Fired() = %v, want %v", got, want)
	}
}
