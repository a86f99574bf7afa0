package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/driftline/internal/engine/gfx"
)

var _ gfx.Target = (*Shadow)(nil)

// Shadow is a depth-only framebuffer sized to the viewport.
// Uses a depth texture so the terrain pass can sample it.
type Shadow struct {
	fbo          uint32
	depthTexture uint32
	width        int32
	height       int32
	prevViewport [4]int32
}

// NewShadow creates a shadow map matching the viewport dimensions.
func NewShadow(width, height int) (*Shadow, error) {
	sm := &Shadow{
		width:  max(int32(width), 1),
		height: max(int32(height), 1),
	}

	gl.GenFramebuffers(1, &sm.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.fbo)

	gl.GenTextures(1, &sm.depthTexture)
	sm.allocate()

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, sm.depthTexture, 0)

	// No color buffer for shadow pass
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		sm.Destroy()
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return nil, fmt.Errorf("shadow framebuffer incomplete: 0x%x", status)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return sm, nil
}

func (sm *Shadow) allocate() {
	gl.BindTexture(gl.TEXTURE_2D, sm.depthTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT32, sm.width, sm.height, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Clamp to border with white (1.0) to avoid shadow outside frustum
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	borderColor := []float32{1.0, 1.0, 1.0, 1.0}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])
}

// Bind makes the shadow map the current render target and clears its depth.
func (sm *Shadow) Bind() {
	gl.GetIntegerv(gl.VIEWPORT, &sm.prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.fbo)
	gl.Viewport(0, 0, sm.width, sm.height)
	gl.Clear(gl.DEPTH_BUFFER_BIT)

	// Front-face culling reduces shadow acne
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)
}

// Unbind restores the default framebuffer, viewport and culling.
func (sm *Shadow) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(sm.prevViewport[0], sm.prevViewport[1], sm.prevViewport[2], sm.prevViewport[3])
	gl.CullFace(gl.BACK)
	gl.Disable(gl.CULL_FACE)
}

// ColorTexture returns 0; the shadow map has no color attachment.
func (sm *Shadow) ColorTexture() gfx.Texture { return 0 }

// DepthTexture returns the depth attachment.
func (sm *Shadow) DepthTexture() gfx.Texture { return gfx.Texture(sm.depthTexture) }

// Resize reallocates the depth texture when the viewport changes.
func (sm *Shadow) Resize(width, height int) {
	w, h := max(int32(width), 1), max(int32(height), 1)
	if w == sm.width && h == sm.height {
		return
	}
	sm.width, sm.height = w, h
	sm.allocate()
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Destroy releases all GPU resources associated with this shadow map.
func (sm *Shadow) Destroy() {
	if sm.fbo != 0 {
		gl.DeleteFramebuffers(1, &sm.fbo)
		sm.fbo = 0
	}
	if sm.depthTexture != 0 {
		gl.DeleteTextures(1, &sm.depthTexture)
		sm.depthTexture = 0
	}
}
