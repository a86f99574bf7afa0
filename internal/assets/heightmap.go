package assets

import (
	"fmt"

	"github.com/Faultbox/driftline/internal/engine/terrain"
	"github.com/Faultbox/driftline/internal/engine/texture"
)

// LoadHeightmap decodes a heightmap image and builds its height field.
// Elevation is read from the red channel.
func (m *Manager) LoadHeightmap(name string, opts terrain.Options) (*terrain.HeightField, error) {
	img, err := m.DecodeImage(name)
	if err != nil {
		return nil, err
	}
	rgba := texture.ToRGBA(img, false)
	b := rgba.Bounds()
	hf, err := terrain.FromPixels(b.Dx(), b.Dy(), rgba.Pix, opts)
	if err != nil {
		return nil, fmt.Errorf("heightmap %s: %w", name, err)
	}
	return hf, nil
}
