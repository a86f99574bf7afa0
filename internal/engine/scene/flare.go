package scene

import (
	"github.com/Faultbox/driftline/internal/engine/gfx"
	"github.com/Faultbox/driftline/internal/engine/lighting"
	"github.com/Faultbox/driftline/pkg/math"
)

// LensFlare draws sprites along the line from the sun through the screen
// center. It only shows from the first-person view.
type LensFlare struct {
	program  gfx.Program
	geometry gfx.Geometry
	elements []lighting.FlareElement
	textures map[string]gfx.Texture
	sun      *lighting.Sun
	last     lighting.FlareLayout
}

// NewLensFlare creates the flare renderable. textures maps element texture
// names to uploaded textures; elements without one are skipped.
func NewLensFlare(program gfx.Program, geometry gfx.Geometry, elements []lighting.FlareElement, textures map[string]gfx.Texture, sun *lighting.Sun) *LensFlare {
	return &LensFlare{program: program, geometry: geometry, elements: elements, textures: textures, sun: sun}
}

// ModelMatrix is the identity; sprites are placed in screen space.
func (l *LensFlare) ModelMatrix() math.Mat4 { return math.Identity() }

// Layout returns the layout of the last rendered frame.
func (l *LensFlare) Layout() lighting.FlareLayout { return l.last }

func (l *LensFlare) Render(mode Mode, f *Frame) {
	l.last = lighting.FlareLayout{}
	if mode != ModeRegular || !f.FirstPerson {
		return
	}
	sunPos := f.CameraPosition.Add(l.sun.Position())
	l.last = lighting.LayoutFlare(l.elements, sunPos, f.View, f.Projection, f.DayTime)
	if !l.last.Visible() {
		return
	}
	for _, s := range l.last.Sprites {
		size := math.Vec2{X: s.Size, Y: s.Size * f.Aspect}
		drawScreenQuad(l.program, l.geometry, l.textures[s.Texture], screenMatrix(s.Position, size), l.last.Brightness)
	}
}

// RenderToShadowMap is a no-op.
func (l *LensFlare) RenderToShadowMap(*Frame) {}

func (l *LensFlare) Destroy() { destroyGeometry(l.geometry) }
