package model

import (
	"github.com/Faultbox/driftline/internal/engine/collision"
	"github.com/Faultbox/driftline/pkg/math"
)

// Body is a placed object with one local bounding box per sub-mesh.
type Body struct {
	Transform
	Boxes []collision.Box
}

// NewBody places boxes at pos with uniform scale.
func NewBody(boxes []collision.Box, pos math.Vec3, scale float32) Body {
	return Body{Transform: NewTransform(pos, scale), Boxes: boxes}
}

// Footprints returns the world XZ outline of every box.
func (b *Body) Footprints() []collision.Footprint {
	m := b.ModelMatrix()
	out := make([]collision.Footprint, len(b.Boxes))
	for i, box := range b.Boxes {
		out[i] = box.Footprint(m)
	}
	return out
}

// Collides reports whether any box of b overlaps any box of other.
func (b *Body) Collides(other *Body) bool {
	mine, theirs := b.Footprints(), other.Footprints()
	for _, f := range mine {
		for _, g := range theirs {
			if collision.Intersects(f, g) {
				return true
			}
		}
	}
	return false
}

// Extremities returns the world positions of each box's transformed min and
// max corners. For agents these are the aft and forward ends of the hull.
func (b *Body) Extremities() []math.Vec3 {
	m := b.ModelMatrix()
	out := make([]math.Vec3, 0, len(b.Boxes)*2)
	for _, box := range b.Boxes {
		out = append(out, m.TransformVec3(box.MaxBounds()), m.TransformVec3(box.MinBounds()))
	}
	return out
}

// Bounds returns the local boxes.
func (b *Body) Bounds() []collision.Box { return b.Boxes }

// PlaceOnTerrain sets the body's height to the ground elevation under it.
func (b *Body) PlaceOnTerrain(heightAt func(x, z float32) float32) {
	b.Position.Y = heightAt(b.Position.X, b.Position.Z)
}
