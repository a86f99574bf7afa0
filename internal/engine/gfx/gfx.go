// Package gfx defines the GPU capabilities the renderer depends on, so scene
// orchestration can run against a real OpenGL context or a recording fake.
package gfx

import (
	"image"

	"github.com/Faultbox/driftline/pkg/math"
)

// Texture is a GPU texture name. Zero means no texture.
type Texture uint32

// TextureKind selects the binding target of a texture unit.
type TextureKind int

const (
	Texture2D TextureKind = iota
	TextureCube
)

// Blend is the color blending equation used for subsequent draws.
type Blend int

const (
	BlendNone     Blend = iota
	BlendAlpha          // src*a + dst*(1-a)
	BlendAdditive       // src*a + dst
)

// String returns the blend mode name.
func (b Blend) String() string {
	switch b {
	case BlendNone:
		return "none"
	case BlendAlpha:
		return "alpha"
	case BlendAdditive:
		return "additive"
	default:
		return "unknown"
	}
}

// Device is the fixed-function state shared by all draws.
type Device interface {
	SetDepthTest(on bool)
	SetDepthWrite(on bool)
	SetClipping(on bool)
	SetBlend(b Blend)
	Viewport(width, height int)
	Clear(r, g, b float32)
}

// Program is a linked shader program with named parameters.
// Setting a parameter the program does not declare is a no-op.
type Program interface {
	Use()
	SetMat4(name string, m math.Mat4)
	SetVec2(name string, v math.Vec2)
	SetVec3(name string, v math.Vec3)
	SetVec4(name string, v math.Vec4)
	SetFloat(name string, f float32)
	SetInt(name string, i int32)
	SetBool(name string, b bool)
	// BindTexture binds tex to unit and points the sampler name at it.
	BindTexture(unit int, name string, kind TextureKind, tex Texture)
	Destroy()
}

// Geometry is uploaded vertex data ready to draw.
type Geometry interface {
	Draw()
	Destroy()
}

// Target is an offscreen render target.
type Target interface {
	Bind()
	Unbind()
	ColorTexture() Texture
	DepthTexture() Texture
	Resize(width, height int)
	Destroy()
}

// Wrap selects texture coordinate wrapping.
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClamp
)

// TextureUploader moves decoded images to the GPU.
type TextureUploader interface {
	Upload(img *image.RGBA, wrap Wrap) (Texture, error)
	// UploadCube uploads six faces in +X, -X, +Y, -Y, +Z, -Z order.
	UploadCube(faces [6]*image.RGBA) (Texture, error)
	Delete(tex Texture)
}
