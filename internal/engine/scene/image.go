package scene

import (
	"github.com/Faultbox/driftline/internal/engine/gfx"
	"github.com/Faultbox/driftline/pkg/math"
)

// QuadVertices is a unit quad in x, y for a triangle strip.
var QuadVertices = []float32{-1, 1, -1, -1, 1, 1, 1, -1}

// Image2D is a screen-space textured quad. Position and size are in
// normalized device coordinates.
type Image2D struct {
	program      gfx.Program
	geometry     gfx.Geometry
	texture      gfx.Texture
	Position     math.Vec2
	Size         math.Vec2
	Transparency float32
}

// NewImage2D creates a screen-space image renderable.
func NewImage2D(program gfx.Program, geometry gfx.Geometry, texture gfx.Texture, pos, size math.Vec2) *Image2D {
	return &Image2D{
		program:      program,
		geometry:     geometry,
		texture:      texture,
		Position:     pos,
		Size:         size,
		Transparency: 1,
	}
}

// SetTexture swaps the displayed image.
func (i *Image2D) SetTexture(tex gfx.Texture) { i.texture = tex }

// Texture returns the displayed image.
func (i *Image2D) Texture() gfx.Texture { return i.texture }

func (i *Image2D) ModelMatrix() math.Mat4 {
	return screenMatrix(i.Position, i.Size)
}

func (i *Image2D) Render(_ Mode, _ *Frame) {
	drawScreenQuad(i.program, i.geometry, i.texture, i.ModelMatrix(), i.Transparency)
}

// RenderToShadowMap is a no-op.
func (i *Image2D) RenderToShadowMap(*Frame) {}

func (i *Image2D) Destroy() { destroyGeometry(i.geometry) }

func screenMatrix(pos, size math.Vec2) math.Mat4 {
	return math.Translate(pos.X, pos.Y, 0).Mul(math.Scale(size.X, size.Y, 1))
}

func drawScreenQuad(p gfx.Program, g gfx.Geometry, tex gfx.Texture, model math.Mat4, transparency float32) {
	if g == nil || tex == 0 {
		return
	}
	p.Use()
	p.SetMat4(uModel, model)
	p.SetMat4(uView, math.Identity())
	p.SetMat4(uProjection, math.Identity())
	p.SetFloat("uTransparency", transparency)
	p.BindTexture(0, "uImage", gfx.Texture2D, tex)
	g.Draw()
}
