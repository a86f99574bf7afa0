package scene

import (
	"github.com/Faultbox/driftline/pkg/math"
)

// Mode identifies the render pass a draw belongs to. It is threaded through
// every draw so each renderable can pick its per-pass behavior.
type Mode int

const (
	ModeRegular Mode = iota
	ModeReflection
	ModeRefraction
	ModeShadowMap
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeRegular:
		return "regular"
	case ModeReflection:
		return "reflection"
	case ModeRefraction:
		return "refraction"
	case ModeShadowMap:
		return "shadow_map"
	default:
		return "unknown"
	}
}

// RefractionOffset lifts the refraction clip plane slightly above the water
// so the shoreline has no gap.
const RefractionOffset = 1

// ClipPlane returns the clip plane for mode around a water surface at level,
// and whether clipping applies at all. Points p with dot(plane, (p, 1)) < 0
// are discarded.
func ClipPlane(mode Mode, level float32) (math.Vec4, bool) {
	switch mode {
	case ModeReflection:
		// Keep everything above the water
		return math.Vec4{0, 1, 0, -level}, true
	case ModeRefraction:
		// Keep everything below the water
		return math.Vec4{0, -1, 0, level + RefractionOffset}, true
	default:
		return math.Vec4{}, false
	}
}
