package opengl

import (
	"errors"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/driftline/internal/engine/gfx"
)

var errEmptyImage = errors.New("empty image")

// Uploader creates GL textures from decoded images.
type Uploader struct{}

// Upload creates a mipmapped 2D texture.
func (Uploader) Upload(img *image.RGBA, wrap gfx.Wrap) (gfx.Texture, error) {
	if img == nil || len(img.Pix) == 0 {
		return 0, errEmptyImage
	}
	w, h := int32(img.Bounds().Dx()), int32(img.Bounds().Dy())

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	mode := int32(gl.REPEAT)
	if wrap == gfx.WrapClamp {
		mode = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, mode)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, mode)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return gfx.Texture(id), nil
}

// UploadCube creates a cube map from six faces.
func (Uploader) UploadCube(faces [6]*image.RGBA) (gfx.Texture, error) {
	for _, f := range faces {
		if f == nil || len(f.Pix) == 0 {
			return 0, errEmptyImage
		}
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	for i, f := range faces {
		w, h := int32(f.Bounds().Dx()), int32(f.Bounds().Dy())
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(f.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	return gfx.Texture(id), nil
}

// Delete releases a texture.
func (Uploader) Delete(tex gfx.Texture) {
	id := uint32(tex)
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}
