package scene

import (
	"github.com/Faultbox/driftline/internal/engine/debug"
	"github.com/Faultbox/driftline/internal/engine/gfx"
	"github.com/Faultbox/driftline/pkg/math"
)

// BoundsColor is the wireframe color of the debug overlay.
var BoundsColor = math.Vec3{X: 1, Y: 0.2, Z: 0.2}

// BoundsOverlay draws collision boxes as wireframes. The geometry must be
// debug.UnitCube drawn as lines; each box stretches it into place.
type BoundsOverlay struct {
	program gfx.Program
	cube    gfx.Geometry
}

// NewBoundsOverlay creates the overlay.
func NewBoundsOverlay(program gfx.Program, cube gfx.Geometry) *BoundsOverlay {
	return &BoundsOverlay{program: program, cube: cube}
}

// Draw outlines every box of b.
func (o *BoundsOverlay) Draw(f *Frame, b Bounded) {
	boxes := b.Bounds()
	if len(boxes) == 0 || o.cube == nil {
		return
	}
	p := o.program
	p.Use()
	p.SetMat4(uView, f.View)
	p.SetMat4(uProjection, f.Projection)
	p.SetVec3("uColor", BoundsColor)
	setClipping(p, f)
	m := b.ModelMatrix()
	for _, box := range boxes {
		p.SetMat4(uModel, m.Mul(debug.FitUnitCube(box)))
		o.cube.Draw()
	}
}

func (o *BoundsOverlay) Destroy() { destroyGeometry(o.cube) }
