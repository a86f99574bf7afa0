// Package terrain provides the height-map backed terrain surface: elevation
// queries for gameplay and mesh building for rendering.
package terrain

import (
	"errors"

	"github.com/Faultbox/driftline/pkg/math"
)

var (
	// ErrNotSquare is returned when the elevation bitmap is not N x N.
	ErrNotSquare = errors.New("terrain: elevation bitmap must be square")
	// ErrShortBuffer is returned when the pixel buffer is smaller than width*height*4.
	ErrShortBuffer = errors.New("terrain: pixel buffer too short")
	// ErrTooSmall is returned for grids with fewer than 2x2 samples.
	ErrTooSmall = errors.New("terrain: grid needs at least 2x2 samples")
)

// Options controls how bitmap samples map into world space.
type Options struct {
	Extent    float32   // World-space side length of the whole grid
	MaxHeight float32   // Elevation of a fully red (255) sample is just under this
	Offset    math.Vec3 // World position of grid corner (0,0)
}

// Vertex represents a terrain mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh holds terrain geometry ready for GPU upload.
// Positions are grid-local; render with the field's offset as model matrix.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}
