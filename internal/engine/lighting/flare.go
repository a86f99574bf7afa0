package lighting

import (
	"github.com/Faultbox/driftline/pkg/math"
)

// FlareSpacing is how far apart consecutive flare sprites sit along the line
// from the sun through the screen center.
const FlareSpacing = 0.4

// Flare fade windows around sunrise and sundown, in day-cycle time.
const (
	sunriseTime = 0.122056
	sundownTime = 0.8754
	fadeWindow  = 0.05
)

// FlareElement is one sprite of the lens flare.
type FlareElement struct {
	Texture string  // Asset name
	Size    float32 // Scale in normalized device coordinates
}

// DefaultFlare lists the flare sprites from the sun outwards.
var DefaultFlare = []FlareElement{
	{"LensFlare/tex6.png", 0.5},
	{"LensFlare/tex4.png", 0.023},
	{"LensFlare/tex2.png", 0.1},
	{"LensFlare/tex7.png", 0.05},
	{"LensFlare/tex3.png", 0.06},
	{"LensFlare/tex5.png", 0.07},
	{"LensFlare/tex7.png", 0.2},
	{"LensFlare/tex3.png", 0.6},
	{"LensFlare/tex5.png", 0.3},
	{"LensFlare/tex4.png", 0.4},
	{"LensFlare/tex8.png", 0.6},
}

// FlareSprite is a positioned flare element ready to draw.
type FlareSprite struct {
	FlareElement
	Position math.Vec2 // Screen position in normalized device coordinates
}

// FlareLayout is the result of placing the flare for one frame.
type FlareLayout struct {
	Brightness float32
	Sprites    []FlareSprite
}

// Visible reports whether anything should be drawn.
func (l FlareLayout) Visible() bool {
	return l.Brightness > 0 && len(l.Sprites) > 0
}

// LayoutFlare places elements for a sun at sunPos seen through view and proj
// at day-cycle time t. The flare is hidden when the sun is off screen or
// behind the camera, and fades in after sunrise and out before sundown.
func LayoutFlare(elements []FlareElement, sunPos math.Vec3, view, proj math.Mat4, t float32) FlareLayout {
	clip := proj.Mul(view).MulVec4(sunPos.Vec4(1))
	if clip[3] <= 0 {
		return FlareLayout{}
	}
	ndc := math.Vec2{X: clip[0] / clip[3], Y: clip[1] / clip[3]}
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 {
		return FlareLayout{}
	}

	toCenter := ndc.Scale(-1)
	brightness := 1 - toCenter.Length()/0.5
	if brightness <= 0 {
		return FlareLayout{}
	}

	untilSunrise := sunriseTime - t
	if untilSunrise > fadeWindow {
		return FlareLayout{}
	}
	if untilSunrise >= 0 {
		brightness *= 1 - untilSunrise*20
	}
	sinceSundown := t - sundownTime
	if sinceSundown > fadeWindow {
		return FlareLayout{}
	}
	if sinceSundown >= 0 {
		brightness *= 1 - sinceSundown*20
	}
	if brightness <= 0 {
		return FlareLayout{}
	}

	sprites := make([]FlareSprite, len(elements))
	for i, e := range elements {
		sprites[i] = FlareSprite{
			FlareElement: e,
			Position:     ndc.Add(toCenter.Scale(float32(i) * FlareSpacing)),
		}
	}
	return FlareLayout{Brightness: brightness, Sprites: sprites}
}
