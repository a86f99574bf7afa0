// Package water provides the water surface state and plane geometry.
package water

// DisplayMode selects what the water shader outputs. Anything other than
// DisplayRegular is a debugging view of one input.
type DisplayMode int

const (
	DisplayRegular DisplayMode = iota
	DisplayReflection
	DisplayRefraction
	DisplayBumpMap
	displayModeCount
)

// String returns the display mode name.
func (m DisplayMode) String() string {
	switch m {
	case DisplayRegular:
		return "regular"
	case DisplayReflection:
		return "reflection"
	case DisplayRefraction:
		return "refraction"
	case DisplayBumpMap:
		return "bump_map"
	default:
		return "unknown"
	}
}

// ParseDisplayMode returns the mode named s, or DisplayRegular and false.
func ParseDisplayMode(s string) (DisplayMode, bool) {
	for m := DisplayRegular; m < displayModeCount; m++ {
		if m.String() == s {
			return m, true
		}
	}
	return DisplayRegular, false
}

// DefaultFlowStep is how far the distortion offset moves each frame.
const DefaultFlowStep = 0.001

// Surface is the water plane's mutable state.
type Surface struct {
	Level       float32 // World Y of the plane
	Size        float32 // Half extent of the quad
	Distortion  float32 // du/dv strength
	BumpMapping bool
	Mode        DisplayMode

	flowStep float32
	offset   float32
}

// NewSurface creates a water surface at level with half extent size.
func NewSurface(level, size float32) *Surface {
	return &Surface{
		Level:       level,
		Size:        size,
		Distortion:  0.63,
		BumpMapping: true,
		flowStep:    DefaultFlowStep,
	}
}

// Advance moves the distortion offset one frame, wrapping at 1.
func (s *Surface) Advance() {
	s.offset += s.flowStep
	if s.offset >= 1 {
		s.offset -= 1
	}
}

// Offset returns the distortion offset in [0, 1).
func (s *Surface) Offset() float32 { return s.offset }

// CycleMode switches to the next display mode and returns it.
func (s *Surface) CycleMode() DisplayMode {
	s.Mode = (s.Mode + 1) % displayModeCount
	return s.Mode
}

// Plane returns the water quad as x, y, z, u, v vertices for a triangle strip.
func (s *Surface) Plane() []float32 {
	n, y := s.Size, s.Level
	return []float32{
		-n, y, -n, 0, 0,
		-n, y, n, 0, 1,
		n, y, -n, 1, 0,
		n, y, n, 1, 1,
	}
}
