// Package shadow computes the sun's light-space matrices for shadow mapping.
package shadow

import (
	"github.com/Faultbox/driftline/pkg/math"
)

// Box is the orthographic volume the sun sees when rendering shadows,
// measured in light view space. Near and far are offsets from the sun's
// distance to the origin.
type Box struct {
	Left, Right float32
	Bottom, Top float32
	Depth       float32 // Half depth around the sun distance
}

// DefaultBox covers the playable area around the origin.
var DefaultBox = Box{Left: -350, Right: 450, Bottom: -100, Top: 200, Depth: 500}

// LightSpace holds the sun's view and projection for one frame.
type LightSpace struct {
	View       math.Mat4
	Projection math.Mat4
}

// CalculateLightSpace looks from sunPos towards the origin and fits box
// around the sun distance.
func CalculateLightSpace(sunPos math.Vec3, box Box) LightSpace {
	up := math.Vec3{Y: 1}
	// LookAt degenerates when the light is straight above
	if d := sunPos.Normalize(); d.Y > 0.99 || d.Y < -0.99 {
		up = math.Vec3{Z: 1}
	}
	dist := sunPos.Length()
	near := dist - box.Depth
	if near < 0.1 {
		near = 0.1
	}
	return LightSpace{
		View:       math.LookAt(sunPos, math.Vec3{}, up),
		Projection: math.Ortho(box.Left, box.Right, box.Bottom, box.Top, near, dist+box.Depth),
	}
}

// ToShadowMapSpace maps world positions to shadow map texture coordinates
// and depth, all in [0, 1].
func (ls LightSpace) ToShadowMapSpace() math.Mat4 {
	bias := math.Translate(0.5, 0.5, 0.5).Mul(math.Scale(0.5, 0.5, 0.5))
	return bias.Mul(ls.Projection).Mul(ls.View)
}

// ViewProjection returns Projection * View.
func (ls LightSpace) ViewProjection() math.Mat4 {
	return ls.Projection.Mul(ls.View)
}
