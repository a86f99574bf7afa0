package scene

import (
	"github.com/Faultbox/driftline/internal/engine/gfx"
	"github.com/Faultbox/driftline/internal/engine/lighting"
	"github.com/Faultbox/driftline/pkg/math"
)

// SkyboxSize is the half extent of the sky cube.
const SkyboxSize = 500

// Skybox is a cube around the camera blending a day and a night cube map,
// rotating with the day cycle.
type Skybox struct {
	program  gfx.Program
	geometry gfx.Geometry
	day      gfx.Texture
	night    gfx.Texture
	rotation float32
}

// NewSkybox creates the sky renderable.
func NewSkybox(program gfx.Program, geometry gfx.Geometry, day, night gfx.Texture) *Skybox {
	return &Skybox{program: program, geometry: geometry, day: day, night: night}
}

// ModelMatrix rotates the sky about Y by the last rendered day-cycle rotation.
func (s *Skybox) ModelMatrix() math.Mat4 {
	return math.RotateY(math.Radians(s.rotation))
}

func (s *Skybox) Render(_ Mode, f *Frame) {
	if s.geometry == nil {
		return
	}
	s.rotation = f.SkyRotation
	p := s.program
	p.Use()
	p.SetMat4(uModel, s.ModelMatrix())
	// Sky never moves relative to the eye
	p.SetMat4(uView, f.View.WithoutTranslation())
	p.SetMat4(uProjection, f.Projection)
	p.SetFloat("uBlendFactor", f.SkyBlend)
	p.BindTexture(0, "uDaySkybox", gfx.TextureCube, s.day)
	p.BindTexture(1, "uNightSkybox", gfx.TextureCube, s.night)
	s.geometry.Draw()
}

// RenderToShadowMap is a no-op; the sky casts no shadows.
func (s *Skybox) RenderToShadowMap(*Frame) {}

func (s *Skybox) Destroy() { destroyGeometry(s.geometry) }

// SkyboxVertices returns the 36 positions of a cube with half extent size.
func SkyboxVertices(size float32) []float32 {
	n := size
	return []float32{
		-n, n, -n, -n, -n, -n, n, -n, -n, n, -n, -n, n, n, -n, -n, n, -n,
		-n, -n, n, -n, -n, -n, -n, n, -n, -n, n, -n, -n, n, n, -n, -n, n,
		n, -n, -n, n, -n, n, n, n, n, n, n, n, n, n, -n, n, -n, -n,
		-n, -n, n, -n, n, n, n, n, n, n, n, n, n, -n, n, -n, -n, n,
		-n, n, -n, n, n, -n, n, n, n, n, n, n, -n, n, n, -n, n, -n,
		-n, -n, -n, -n, -n, n, n, -n, -n, n, -n, -n, -n, -n, n, n, -n, n,
	}
}

// SunBillboard draws the sun sprite, always facing the camera at a fixed
// distance from it.
type SunBillboard struct {
	program  gfx.Program
	geometry gfx.Geometry
	texture  gfx.Texture
	sun      *lighting.Sun
	model    math.Mat4
}

// NewSunBillboard creates the sun renderable.
func NewSunBillboard(program gfx.Program, geometry gfx.Geometry, texture gfx.Texture, sun *lighting.Sun) *SunBillboard {
	return &SunBillboard{program: program, geometry: geometry, texture: texture, sun: sun, model: math.Identity()}
}

// ModelMatrix returns the billboard matrix of the last rendered pass.
func (s *SunBillboard) ModelMatrix() math.Mat4 { return s.model }

func (s *SunBillboard) Render(_ Mode, f *Frame) {
	if s.geometry == nil {
		return
	}
	s.model = s.sun.BillboardMatrix(f.CameraPosition, f.View)
	p := s.program
	p.Use()
	setCamera(p, f, s.model)
	p.SetFloat("uTransparency", 1)
	p.BindTexture(0, "uImage", gfx.Texture2D, s.texture)
	s.geometry.Draw()
}

// RenderToShadowMap is a no-op.
func (s *SunBillboard) RenderToShadowMap(*Frame) {}

func (s *SunBillboard) Destroy() { destroyGeometry(s.geometry) }
