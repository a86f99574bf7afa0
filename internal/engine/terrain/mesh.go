package terrain

// textureRepeat is the world distance covered by one repetition of the
// ground textures.
const textureRepeat = 50

// BuildMesh triangulates the height field for rendering. Every cell emits two
// triangles split along the same diagonal HeightAt uses, so the rendered
// surface matches gameplay elevation.
func BuildMesh(hf *HeightField) *Mesh {
	n := hf.n
	cell := hf.CellSize()
	repeat := hf.extent / textureRepeat

	mesh := &Mesh{
		Vertices: make([]Vertex, 0, n*n),
		Indices:  make([]uint32, 0, (n-1)*(n-1)*6),
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			normal := hf.NormalAt(i, j)
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: [3]float32{float32(i) * cell, hf.at(i, j), float32(j) * cell},
				Normal:   [3]float32{normal.X, normal.Y, normal.Z},
				TexCoord: [2]float32{
					float32(j) / float32(n-1) * repeat,
					float32(i) / float32(n-1) * repeat,
				},
			})
		}
	}

	for i := 0; i < n-1; i++ {
		for j := 0; j < n-1; j++ {
			c00 := uint32(i*n + j)
			c10 := uint32((i+1)*n + j)
			c01 := uint32(i*n + j + 1)
			c11 := uint32((i+1)*n + j + 1)
			mesh.Indices = append(mesh.Indices,
				c00, c01, c10,
				c10, c01, c11,
			)
		}
	}

	return mesh
}

// Interleaved flattens the mesh into position/normal/texcoord floats.
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
