package scene

import (
	"github.com/Faultbox/driftline/internal/engine/gfx"
	"github.com/Faultbox/driftline/pkg/math"
)

// TerrainSurface draws the height-field mesh blending grass and dirt by
// slope, and is the only surface that receives sun shadows.
type TerrainSurface struct {
	program  gfx.Program
	shadow   gfx.Program
	geometry gfx.Geometry
	grass    gfx.Texture
	dirt     gfx.Texture
	model    math.Mat4
}

// NewTerrainSurface creates the terrain renderable placed at offset.
// Missing textures render black rather than failing.
func NewTerrainSurface(program, shadow gfx.Program, geometry gfx.Geometry, grass, dirt gfx.Texture, offset math.Vec3) *TerrainSurface {
	return &TerrainSurface{
		program:  program,
		shadow:   shadow,
		geometry: geometry,
		grass:    grass,
		dirt:     dirt,
		model:    math.Translate(offset.X, offset.Y, offset.Z),
	}
}

func (t *TerrainSurface) ModelMatrix() math.Mat4 { return t.model }

func (t *TerrainSurface) Render(mode Mode, f *Frame) {
	if t.geometry == nil {
		return
	}
	p := t.program
	p.Use()
	setCamera(p, f, t.model)
	setLighting(p, f)
	setClipping(p, f)
	p.SetBool("uIsTerrain", true)
	p.SetMat4("uToShadowMapSpace", f.ToShadowMapSpace)
	p.SetBool("uShadowsEnabled", mode == ModeRegular && f.ShadowMap != 0)
	p.BindTexture(0, "uGrassTexture", gfx.Texture2D, t.grass)
	p.BindTexture(1, "uDirtTexture", gfx.Texture2D, t.dirt)
	p.BindTexture(2, "uShadowMap", gfx.Texture2D, f.ShadowMap)
	t.geometry.Draw()
}

func (t *TerrainSurface) RenderToShadowMap(f *Frame) {
	drawShadow(t.shadow, t.geometry, f, t.model)
}

func (t *TerrainSurface) Destroy() {
	destroyGeometry(t.geometry)
	t.geometry = nil
}
