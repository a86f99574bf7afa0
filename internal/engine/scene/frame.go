package scene

import (
	"github.com/Faultbox/driftline/internal/engine/gfx"
	"github.com/Faultbox/driftline/pkg/math"
)

// AmbientIntensity is the share of light color every lit surface receives.
const AmbientIntensity = 0.5

// Light is the scene's directional light.
type Light struct {
	Position math.Vec3
	Color    math.Vec3
}

// Frame is everything a renderable may read during one pass.
type Frame struct {
	Mode Mode

	View           math.Mat4
	Projection     math.Mat4
	CameraPosition math.Vec3
	FirstPerson    bool
	Aspect         float32
	Near, Far      float32

	Clipping  bool
	ClipPlane math.Vec4

	Light            Light
	LightView        math.Mat4
	LightProjection  math.Mat4
	ToShadowMapSpace math.Mat4

	IsDay       bool
	SkyBlend    float32 // Night sky weight
	SkyRotation float32 // Degrees about Y
	DayTime     float32 // Position in the current day or night, [0, 1]

	// Outputs of earlier passes. Zero until the pass that writes them ran.
	Reflection      gfx.Texture
	Refraction      gfx.Texture
	RefractionDepth gfx.Texture
	ShadowMap       gfx.Texture
}

// LightSpace returns the light's projection times view.
func (f *Frame) LightSpace() math.Mat4 {
	return f.LightProjection.Mul(f.LightView)
}
