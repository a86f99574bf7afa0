package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"path"
	"strings"

	_ "golang.org/x/image/bmp" // Register BMP decoder

	"github.com/Faultbox/driftline/internal/engine/gfx"
	"github.com/Faultbox/driftline/internal/engine/texture"
)

// TextureCache uploads each texture file once and hands out the same GPU
// handle for every later request of the same path.
type TextureCache struct {
	assets   *Manager
	uploader gfx.TextureUploader
	cache    *Cache[string, gfx.Texture]
}

// NewTextureCache creates a cache loading through assets and uploading
// through uploader.
func NewTextureCache(assets *Manager, uploader gfx.TextureUploader) *TextureCache {
	return &TextureCache{
		assets:   assets,
		uploader: uploader,
		cache:    NewCache[string, gfx.Texture](),
	}
}

// DecodeImage decodes a PNG, JPEG or BMP asset.
func (m *Manager) DecodeImage(name string) (image.Image, error) {
	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// Texture returns the texture for name, uploading it on first use.
func (c *TextureCache) Texture(name string, wrap gfx.Wrap) (gfx.Texture, error) {
	if tex, ok := c.cache.Get(name); ok {
		return tex, nil
	}
	img, err := c.assets.DecodeImage(name)
	if err != nil {
		return 0, err
	}
	tex, err := c.uploader.Upload(texture.ToRGBA(img, false), wrap)
	if err != nil {
		return 0, fmt.Errorf("uploading %s: %w", name, err)
	}
	c.cache.Set(name, tex)
	return tex, nil
}

// CubeFaces lists the faces of a skybox in upload order.
var CubeFaces = [6]string{"right", "left", "top", "bottom", "front", "back"}

// CubePaths returns dir/<prefix><face>.png for each of CubeFaces. With a
// prefix the face name is capitalised, as in nightRight.png.
func CubePaths(dir, prefix string) [6]string {
	var out [6]string
	for i, face := range CubeFaces {
		if prefix != "" {
			face = strings.ToUpper(face[:1]) + face[1:]
		}
		out[i] = path.Join(dir, prefix+face+".png")
	}
	return out
}

// Cube returns the cube map built from the six face images, in CubeFaces
// order.
func (c *TextureCache) Cube(faces [6]string) (gfx.Texture, error) {
	key := strings.Join(faces[:], "|")
	if tex, ok := c.cache.Get(key); ok {
		return tex, nil
	}
	var imgs [6]*image.RGBA
	for i, name := range faces {
		img, err := c.assets.DecodeImage(name)
		if err != nil {
			return 0, err
		}
		imgs[i] = texture.ToRGBA(img, false)
	}
	tex, err := c.uploader.UploadCube(imgs)
	if err != nil {
		return 0, fmt.Errorf("uploading cube %s: %w", faces[0], err)
	}
	c.cache.Set(key, tex)
	return tex, nil
}

// Stats returns cache hits and misses.
func (c *TextureCache) Stats() (hits, misses int) {
	return c.cache.Stats()
}

// Len returns the number of uploaded textures.
func (c *TextureCache) Len() int {
	return c.cache.Len()
}

// Release deletes every uploaded texture.
func (c *TextureCache) Release() {
	c.cache.Each(func(_ string, tex gfx.Texture) {
		c.uploader.Delete(tex)
	})
	c.cache.Clear()
}
