package model

import (
	"github.com/Faultbox/driftline/internal/engine/collision"
	"github.com/Faultbox/driftline/pkg/math"
)

// NewMesh builds a mesh and derives its local bounds from the vertex positions.
func NewMesh(name string, vertices []Vertex, indices []uint32, mat Material) *Mesh {
	positions := make([]math.Vec3, len(vertices))
	for i, v := range vertices {
		positions[i] = math.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}
	}
	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
		Material: mat,
		Bounds:   collision.BoundsOf(positions),
	}
}

// Interleaved flattens the vertices into position/normal/texcoord floats.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*8)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.TexCoord[0], v.TexCoord[1],
		)
	}
	return out
}
