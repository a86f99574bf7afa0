// Package model provides mesh data, model transforms and the collision body
// shared by every placed object in the world.
package model

import (
	"github.com/Faultbox/driftline/internal/engine/collision"
)

// Vertex represents a model mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Material holds the shading parameters of one sub-mesh.
type Material struct {
	Name      string
	Diffuse   [3]float32
	Specular  [3]float32
	Shininess float32
	Texture   string // Diffuse texture asset path
}

// Mesh is one sub-mesh of an imported model, ready for GPU upload.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material Material
	Bounds   collision.Box
}

// Model is a set of sub-meshes sharing one transform.
type Model struct {
	Name   string
	Meshes []*Mesh
}

// Boxes returns the local bounding box of every sub-mesh.
func (m *Model) Boxes() []collision.Box {
	boxes := make([]collision.Box, len(m.Meshes))
	for i, mesh := range m.Meshes {
		boxes[i] = mesh.Bounds
	}
	return boxes
}
