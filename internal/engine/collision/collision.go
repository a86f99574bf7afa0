// Package collision implements horizontal-plane overlap tests between
// oriented bounding boxes.
package collision

import (
	"github.com/Faultbox/driftline/pkg/math"
)

// Box is an axis-aligned box in object-local space.
type Box struct {
	min math.Vec3
	max math.Vec3
}

// NewBox returns a box spanning the two corners, in any order.
func NewBox(a, b math.Vec3) Box {
	return Box{
		min: math.Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		max: math.Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// BoundsOf returns the extents of a set of vertex positions.
func BoundsOf(positions []math.Vec3) Box {
	if len(positions) == 0 {
		return Box{}
	}
	b := Box{min: positions[0], max: positions[0]}
	for _, p := range positions[1:] {
		b.min = math.Vec3{X: min(b.min.X, p.X), Y: min(b.min.Y, p.Y), Z: min(b.min.Z, p.Z)}
		b.max = math.Vec3{X: max(b.max.X, p.X), Y: max(b.max.Y, p.Y), Z: max(b.max.Z, p.Z)}
	}
	return b
}

// MinBounds returns the local lower corner.
func (b Box) MinBounds() math.Vec3 { return b.min }

// MaxBounds returns the local upper corner.
func (b Box) MaxBounds() math.Vec3 { return b.max }

// Corners returns the eight local corners, bottom face first.
func (b Box) Corners() [8]math.Vec3 {
	lo, hi := b.min, b.max
	return [8]math.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
}

// Footprint is a box's outline projected onto the XZ plane, in world space.
// Corner 0 is shared by the edges to corners 1 and 3.
type Footprint [4]math.Vec2

// Footprint transforms the box by model and drops the vertical axis.
func (b Box) Footprint(model math.Mat4) Footprint {
	c := b.Corners()
	var f Footprint
	for k := 0; k < 4; k++ {
		f[k] = model.TransformVec3(c[k]).XZ()
	}
	return f
}

// Intersects reports whether two footprints overlap. It looks for a
// separating axis among the two edge directions of each footprint; touching
// outlines count as overlapping.
func Intersects(a, b Footprint) bool {
	return !separates(a, b) && !separates(b, a)
}

// separates reports whether either edge axis of ref separates other from it.
//
// Each axis is divided by its squared length, which maps ref's own extent
// along that axis onto exactly [origin, origin+1].
func separates(ref, other Footprint) bool {
	axes := [2]math.Vec2{
		ref[1].Sub(ref[0]),
		ref[3].Sub(ref[0]),
	}

	for _, axis := range axes {
		lenSq := axis.Dot(axis)
		if lenSq == 0 {
			// A flat box has no extent along this edge to separate on.
			continue
		}
		axis = axis.Scale(1 / lenSq)
		origin := ref[0].Dot(axis)

		tMin := other[0].Dot(axis)
		tMax := tMin
		for _, c := range other[1:] {
			t := c.Dot(axis)
			tMin = min(tMin, t)
			tMax = max(tMax, t)
		}

		if tMin > origin+1 || tMax < origin {
			return true
		}
	}
	return false
}
