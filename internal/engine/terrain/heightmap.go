package terrain

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/driftline/pkg/math"
)

// HeightField is an immutable N x N grid of elevations and vertex normals.
// Grid index i runs along world X, j along world Z.
type HeightField struct {
	n         int
	heights   []float32 // n*n, index i*n + j
	normals   []math.Vec3
	extent    float32
	maxHeight float32
	offset    math.Vec3
}

// FromPixels builds a height field from an RGBA bitmap. Only the red channel
// is used: 128 is sea level, 0 is -maxHeight and 255 just under +maxHeight.
func FromPixels(width, height int, pix []byte, opts Options) (*HeightField, error) {
	if width != height {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, width, height)
	}
	if width < 2 {
		return nil, ErrTooSmall
	}
	if len(pix) < width*height*4 {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrShortBuffer, len(pix), width*height*4)
	}

	n := width
	hf := &HeightField{
		n:         n,
		heights:   make([]float32, n*n),
		normals:   make([]math.Vec3, n*n),
		extent:    opts.Extent,
		maxHeight: opts.MaxHeight,
		offset:    opts.Offset,
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r := float32(pix[(i*n+j)*4])
			hf.heights[i*n+j] = (r - 128) / 128 * opts.MaxHeight
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			hf.normals[i*n+j] = hf.centralNormal(i, j)
		}
	}

	return hf, nil
}

// centralNormal estimates the normal at (i, j) from its four neighbours.
// Samples past the border fall back to the vertex's own row or column.
func (hf *HeightField) centralNormal(i, j int) math.Vec3 {
	left, right := hf.at(max(i-1, 0), j), hf.at(min(i+1, hf.n-1), j)
	down, up := hf.at(i, max(j-1, 0)), hf.at(i, min(j+1, hf.n-1))
	return math.Vec3{X: left - right, Y: 1, Z: down - up}.Normalize()
}

func (hf *HeightField) at(i, j int) float32 {
	return hf.heights[i*hf.n+j]
}

// Size returns N, the number of samples per side.
func (hf *HeightField) Size() int {
	return hf.n
}

// Extent returns the world-space side length.
func (hf *HeightField) Extent() float32 {
	return hf.extent
}

// Offset returns the world placement of grid corner (0,0).
func (hf *HeightField) Offset() math.Vec3 {
	return hf.offset
}

// CellSize returns the world distance between neighbouring samples.
func (hf *HeightField) CellSize() float32 {
	return hf.extent / float32(hf.n-1)
}

// Sample returns the raw grid elevation at (i, j), without the offset.
func (hf *HeightField) Sample(i, j int) float32 {
	return hf.at(i, j)
}

// NormalAt returns the precomputed unit normal at grid vertex (i, j).
func (hf *HeightField) NormalAt(i, j int) math.Vec3 {
	return hf.normals[i*hf.n+j]
}

// MinBounds returns the lower world-space corner of the surface.
func (hf *HeightField) MinBounds() math.Vec3 {
	lo := hf.heights[0]
	for _, h := range hf.heights {
		lo = min(lo, h)
	}
	return hf.offset.Add(math.Vec3{Y: lo})
}

// MaxBounds returns the upper world-space corner of the surface.
func (hf *HeightField) MaxBounds() math.Vec3 {
	hi := hf.heights[0]
	for _, h := range hf.heights {
		hi = max(hi, h)
	}
	return hf.offset.Add(math.Vec3{X: hf.extent, Y: hi, Z: hf.extent})
}

// HeightAt returns the interpolated surface elevation under a world point.
// Each grid cell is split along its anti-diagonal; the elevation is the
// barycentric blend of the corners of the triangle holding the point.
// Points outside the grid report 0.
func (hf *HeightField) HeightAt(worldX, worldZ float32) float32 {
	cell := hf.CellSize()
	gx := (worldX - hf.offset.X) / cell
	gz := (worldZ - hf.offset.Z) / cell

	// Checked in float space: NaN and huge values never reach the int conversion.
	last := float32(hf.n - 1)
	if !(gx >= 0 && gz >= 0 && gx < last && gz < last) {
		return 0
	}
	fx, fz := math32.Floor(gx), math32.Floor(gz)
	i, j := int(fx), int(fz)

	xf, zf := gx-fx, gz-fz

	var h float32
	if xf <= 1-zf {
		h = barycentric(
			math.Vec3{X: 0, Y: hf.at(i, j), Z: 0},
			math.Vec3{X: 1, Y: hf.at(i+1, j), Z: 0},
			math.Vec3{X: 0, Y: hf.at(i, j+1), Z: 1},
			xf, zf)
	} else {
		h = barycentric(
			math.Vec3{X: 1, Y: hf.at(i+1, j), Z: 0},
			math.Vec3{X: 1, Y: hf.at(i+1, j+1), Z: 1},
			math.Vec3{X: 0, Y: hf.at(i, j+1), Z: 1},
			xf, zf)
	}

	return h + hf.offset.Y
}

// barycentric interpolates Y over the triangle (p1, p2, p3) at (x, z).
func barycentric(p1, p2, p3 math.Vec3, x, z float32) float32 {
	det := (p2.Z-p3.Z)*(p1.X-p3.X) + (p3.X-p2.X)*(p1.Z-p3.Z)
	if det == 0 {
		return p1.Y
	}
	l1 := ((p2.Z-p3.Z)*(x-p3.X) + (p3.X-p2.X)*(z-p3.Z)) / det
	l2 := ((p3.Z-p1.Z)*(x-p3.X) + (p1.X-p3.X)*(z-p3.Z)) / det
	l3 := 1 - l1 - l2
	return l1*p1.Y + l2*p2.Y + l3*p3.Y
}
