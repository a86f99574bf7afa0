package scene

import (
	"github.com/Faultbox/driftline/internal/engine/gfx"
	"github.com/Faultbox/driftline/pkg/math"
)

// Uniform names shared by the lit programs.
const (
	uModel            = "uModel"
	uView             = "uView"
	uProjection       = "uProjection"
	uLightColor       = "uLightColor"
	uLightPosition    = "uLightPosition"
	uCameraPosition   = "uCameraPosition"
	uAmbientIntensity = "uAmbientIntensity"
	uClippingEnabled  = "uClippingEnabled"
	uClippingPlane    = "uClippingPlane"
	uLightSpace       = "uLightSpace"
)

// setCamera uploads the transform chain.
func setCamera(p gfx.Program, f *Frame, model math.Mat4) {
	p.SetMat4(uModel, model)
	p.SetMat4(uView, f.View)
	p.SetMat4(uProjection, f.Projection)
}

// setLighting uploads the sun.
func setLighting(p gfx.Program, f *Frame) {
	p.SetVec3(uLightColor, f.Light.Color)
	p.SetVec3(uLightPosition, f.Light.Position)
	p.SetVec3(uCameraPosition, f.CameraPosition)
	p.SetFloat(uAmbientIntensity, AmbientIntensity)
}

// setClipping uploads the pass's clip plane. Only the water passes clip.
func setClipping(p gfx.Program, f *Frame) {
	p.SetBool(uClippingEnabled, f.Clipping)
	if f.Clipping {
		p.SetVec4(uClippingPlane, f.ClipPlane)
	}
}

// drawShadow renders g with depth-only program p from the light.
func drawShadow(p gfx.Program, g gfx.Geometry, f *Frame, model math.Mat4) {
	if p == nil || g == nil {
		return
	}
	p.Use()
	p.SetMat4(uLightSpace, f.LightSpace())
	p.SetMat4(uModel, model)
	g.Draw()
}

func destroyGeometry(gs ...gfx.Geometry) {
	for _, g := range gs {
		if g != nil {
			g.Destroy()
		}
	}
}
