package scene

import (
	"github.com/Faultbox/driftline/internal/engine/gfx"
	"github.com/Faultbox/driftline/internal/engine/water"
	"github.com/Faultbox/driftline/pkg/math"
)

// WaterSurface draws the water plane from the reflection and refraction
// passes, distorted by a du/dv map and lit through a normal map.
type WaterSurface struct {
	program      gfx.Program
	geometry     gfx.Geometry
	displacement gfx.Texture
	normals      gfx.Texture
	surface      *water.Surface
}

// NewWaterSurface creates the water renderable.
func NewWaterSurface(program gfx.Program, geometry gfx.Geometry, displacement, normals gfx.Texture, surface *water.Surface) *WaterSurface {
	return &WaterSurface{
		program:      program,
		geometry:     geometry,
		displacement: displacement,
		normals:      normals,
		surface:      surface,
	}
}

// ModelMatrix is the identity; the plane is built at the water level.
func (w *WaterSurface) ModelMatrix() math.Mat4 { return math.Identity() }

func (w *WaterSurface) Render(mode Mode, f *Frame) {
	if mode != ModeRegular || w.geometry == nil {
		return
	}
	p := w.program
	p.Use()
	setCamera(p, f, w.ModelMatrix())
	setLighting(p, f)
	p.BindTexture(0, "uReflectionTexture", gfx.Texture2D, f.Reflection)
	p.BindTexture(1, "uRefractionTexture", gfx.Texture2D, f.Refraction)
	p.BindTexture(2, "uRefractionDepthTexture", gfx.Texture2D, f.RefractionDepth)
	p.BindTexture(3, "uDisplacementMap", gfx.Texture2D, w.displacement)
	p.BindTexture(4, "uBumpMap", gfx.Texture2D, w.normals)
	p.SetFloat("uNear", f.Near)
	p.SetFloat("uFar", f.Far)
	p.SetFloat("uTime", w.surface.Offset())
	p.SetFloat("uWaterDistortion", w.surface.Distortion)
	p.SetBool("uBumpMapping", w.surface.BumpMapping)
	p.SetInt("uMode", int32(w.surface.Mode))
	w.geometry.Draw()
}

// RenderToShadowMap is a no-op; water receives light but casts no shadow.
func (w *WaterSurface) RenderToShadowMap(*Frame) {}

func (w *WaterSurface) Destroy() { destroyGeometry(w.geometry) }
