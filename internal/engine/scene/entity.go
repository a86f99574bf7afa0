package scene

import (
	"github.com/Faultbox/driftline/internal/engine/collision"
	"github.com/Faultbox/driftline/internal/engine/gfx"
	"github.com/Faultbox/driftline/pkg/math"
)

// Placement is where an entity is in the world and what it collides with.
type Placement interface {
	ModelMatrix() math.Mat4
	Bounds() []collision.Box
}

// Part is one textured sub-mesh of a model.
type Part struct {
	Geometry gfx.Geometry
	Texture  gfx.Texture
}

// ModelEntity draws a multi-part model wherever its placement puts it.
// Character, fish, rocks and trees are all model entities.
type ModelEntity struct {
	name      string
	program   gfx.Program
	shadow    gfx.Program
	parts     []Part
	placement Placement
}

// NewModelEntity creates a model renderable. A model without parts still
// takes part in collision and the bounds overlay but draws nothing.
func NewModelEntity(name string, program, shadow gfx.Program, parts []Part, placement Placement) *ModelEntity {
	return &ModelEntity{
		name:      name,
		program:   program,
		shadow:    shadow,
		parts:     parts,
		placement: placement,
	}
}

// Name returns the model name, for diagnostics.
func (e *ModelEntity) Name() string { return e.name }

func (e *ModelEntity) ModelMatrix() math.Mat4 { return e.placement.ModelMatrix() }

// Bounds returns the placement's local collision boxes.
func (e *ModelEntity) Bounds() []collision.Box { return e.placement.Bounds() }

func (e *ModelEntity) Render(mode Mode, f *Frame) {
	if len(e.parts) == 0 {
		return
	}
	p := e.program
	p.Use()
	setCamera(p, f, e.ModelMatrix())
	setLighting(p, f)
	setClipping(p, f)
	p.SetBool("uIsTerrain", false)
	// Only the terrain samples the shadow map.
	p.SetBool("uShadowsEnabled", false)
	for _, part := range e.parts {
		p.BindTexture(0, "uDiffuseTexture", gfx.Texture2D, part.Texture)
		part.Geometry.Draw()
	}
}

func (e *ModelEntity) RenderToShadowMap(f *Frame) {
	m := e.ModelMatrix()
	for _, part := range e.parts {
		drawShadow(e.shadow, part.Geometry, f, m)
	}
}

func (e *ModelEntity) Destroy() {
	for _, part := range e.parts {
		destroyGeometry(part.Geometry)
	}
	e.parts = nil
}
