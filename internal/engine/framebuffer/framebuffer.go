// Package framebuffer provides the offscreen render targets the water surface
// samples: a reflection target and a refraction target with readable depth.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/driftline/internal/engine/gfx"
)

// Depth selects how a framebuffer stores depth.
type Depth int

const (
	// DepthRenderbuffer keeps depth write-only, enough for depth testing.
	DepthRenderbuffer Depth = iota
	// DepthTexture keeps depth in a texture shaders can sample.
	DepthTexture
)

var _ gfx.Target = (*Framebuffer)(nil)

// Framebuffer manages an offscreen render target with color and depth attachments.
type Framebuffer struct {
	fbo          uint32
	colorTexture uint32
	depthTexture uint32
	depthRBO     uint32
	depth        Depth
	width        int32
	height       int32
}

// NewReflection creates the reflection target: color plus a depth renderbuffer.
func NewReflection(width, height int) (*Framebuffer, error) {
	return New(width, height, DepthRenderbuffer)
}

// NewRefraction creates the refraction target: color plus a depth texture,
// so the water can soften its edges by water depth.
func NewRefraction(width, height int) (*Framebuffer, error) {
	return New(width, height, DepthTexture)
}

// New creates a new framebuffer with the specified dimensions.
func New(width, height int, depth Depth) (*Framebuffer, error) {
	fb := &Framebuffer{
		depth:  depth,
		width:  max(int32(width), 1),
		height: max(int32(height), 1),
	}

	if err := fb.create(); err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	return fb, nil
}

func (fb *Framebuffer) create() error {
	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	gl.GenTextures(1, &fb.colorTexture)
	switch fb.depth {
	case DepthTexture:
		gl.GenTextures(1, &fb.depthTexture)
	default:
		gl.GenRenderbuffers(1, &fb.depthRBO)
	}
	fb.allocate()

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.colorTexture, 0)
	if fb.depthTexture != 0 {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, fb.depthTexture, 0)
	} else {
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depthRBO)
	}

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

// allocate (re)defines attachment storage at the current size.
func (fb *Framebuffer) allocate() {
	gl.BindTexture(gl.TEXTURE_2D, fb.colorTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, fb.width, fb.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	if fb.depthTexture != 0 {
		gl.BindTexture(gl.TEXTURE_2D, fb.depthTexture)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT32, fb.width, fb.height, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	}
	if fb.depthRBO != 0 {
		gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
		gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Bind makes this framebuffer the current render target.
func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)
}

// Unbind restores the default framebuffer.
func (fb *Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// ColorTexture returns the color attachment.
func (fb *Framebuffer) ColorTexture() gfx.Texture {
	return gfx.Texture(fb.colorTexture)
}

// DepthTexture returns the depth attachment, or 0 when depth lives in a
// renderbuffer.
func (fb *Framebuffer) DepthTexture() gfx.Texture {
	return gfx.Texture(fb.depthTexture)
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int) {
	return int(fb.width), int(fb.height)
}

// Resize updates the framebuffer dimensions if they have changed.
func (fb *Framebuffer) Resize(width, height int) {
	w, h := max(int32(width), 1), max(int32(height), 1)
	if w == fb.width && h == fb.height {
		return
	}
	fb.width, fb.height = w, h
	fb.allocate()
}

// Destroy releases all OpenGL resources.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if fb.colorTexture != 0 {
		gl.DeleteTextures(1, &fb.colorTexture)
		fb.colorTexture = 0
	}
	if fb.depthTexture != 0 {
		gl.DeleteTextures(1, &fb.depthTexture)
		fb.depthTexture = 0
	}
	if fb.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &fb.depthRBO)
		fb.depthRBO = 0
	}
}
