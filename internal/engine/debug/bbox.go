// Package debug provides the bounding-box wireframes and screenshot capture
// used while inspecting the scene.
package debug

import (
	"github.com/Faultbox/driftline/internal/engine/collision"
	"github.com/Faultbox/driftline/pkg/math"
)

// BoxWireframeVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const BoxWireframeVertexCount = 24

// BoxWireframe creates line vertices for the edges of b.
// Format: [x, y, z] per vertex, suitable for GL_LINES.
func BoxWireframe(b collision.Box) []float32 {
	lo, hi := b.MinBounds(), b.MaxBounds()
	minX, minY, minZ := lo.X, lo.Y, lo.Z
	maxX, maxY, maxZ := hi.X, hi.Y, hi.Z
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// UnitCube returns the wireframe of the box spanning [0,1] on every axis.
func UnitCube() []float32 {
	return BoxWireframe(collision.NewBox(math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1}))
}

// FitUnitCube returns the matrix that maps the unit cube onto b.
func FitUnitCube(b collision.Box) math.Mat4 {
	lo, hi := b.MinBounds(), b.MaxBounds()
	size := hi.Sub(lo)
	return math.Translate(lo.X, lo.Y, lo.Z).Mul(math.Scale(size.X, size.Y, size.Z))
}
