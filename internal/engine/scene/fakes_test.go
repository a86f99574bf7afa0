package scene

import (
	"fmt"

	"github.com/Faultbox/driftline/internal/engine/collision"
	"github.com/Faultbox/driftline/internal/engine/gfx"
	"github.com/Faultbox/driftline/pkg/math"
)

// recorder collects the calls of every fake in order.
type recorder struct {
	entries []string
}

func (r *recorder) add(format string, args ...any) {
	r.entries = append(r.entries, fmt.Sprintf(format, args...))
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

type fakeDevice struct{ rec *recorder }

func (d *fakeDevice) SetDepthTest(on bool) { d.rec.add("depthTest:%s", onOff(on)) }
func (d *fakeDevice) SetDepthWrite(on bool) { d.rec.add("depthWrite:%s", onOff(on)) }
func (d *fakeDevice) SetClipping(on bool) { d.rec.add("clip:%s", onOff(on)) }
func (d *fakeDevice) SetBlend(b gfx.Blend) { d.rec.add("blend:%s", b) }
func (d *fakeDevice) Viewport(w, h int) { d.rec.add("viewport:%dx%d", w, h) }
func (d *fakeDevice) Clear(r, g, b float32) { d.rec.add("clear") }

type fakeTarget struct {
	name          string
	rec           *recorder
	color, depth  gfx.Texture
	width, height int
	destroyed     bool
}

func (t *fakeTarget) Bind() { t.rec.add("bind:%s", t.name) }
func (t *fakeTarget) Unbind() { t.rec.add("unbind:%s", t.name) }
func (t *fakeTarget) ColorTexture() gfx.Texture { return t.color }
func (t *fakeTarget) DepthTexture() gfx.Texture { return t.depth }
func (t *fakeTarget) Resize(width, height int) { t.width, t.height = width, height }
func (t *fakeTarget) Destroy() { t.destroyed = true }

// fakeRenderable records its draws and the frames it saw.
type fakeRenderable struct {
	name      string
	rec       *recorder
	frames    map[Mode]Frame
	boxes     []collision.Box
	destroyed bool
}

func newFakeRenderable(name string, rec *recorder) *fakeRenderable {
	return &fakeRenderable{name: name, rec: rec, frames: make(map[Mode]Frame)}
}

func (r *fakeRenderable) Render(mode Mode, f *Frame) {
	r.rec.add("render:%s:%s", r.name, mode)
	r.frames[mode] = *f
}

func (r *fakeRenderable) RenderToShadowMap(f *Frame) {
	r.rec.add("shadow:%s", r.name)
	r.frames[ModeShadowMap] = *f
}

func (r *fakeRenderable) ModelMatrix() math.Mat4 { return math.Identity() }
func (r *fakeRenderable) Bounds() []collision.Box { return r.boxes }
func (r *fakeRenderable) Destroy() { r.destroyed = true }

// fakeProgram keeps the last value of every parameter.
type fakeProgram struct {
	uses     int
	values   map[string]any
	textures map[int]gfx.Texture
	samplers map[int]string
}

func newFakeProgram() *fakeProgram {
	return &fakeProgram{
		values:   make(map[string]any),
		textures: make(map[int]gfx.Texture),
		samplers: make(map[int]string),
	}
}

func (p *fakeProgram) Use() { p.uses++ }
func (p *fakeProgram) SetMat4(name string, m math.Mat4) { p.values[name] = m }
func (p *fakeProgram) SetVec2(name string, v math.Vec2) { p.values[name] = v }
func (p *fakeProgram) SetVec3(name string, v math.Vec3) { p.values[name] = v }
func (p *fakeProgram) SetVec4(name string, v math.Vec4) { p.values[name] = v }
func (p *fakeProgram) SetFloat(name string, f float32) { p.values[name] = f }
func (p *fakeProgram) SetInt(name string, i int32) { p.values[name] = i }
func (p *fakeProgram) SetBool(name string, b bool) { p.values[name] = b }
func (p *fakeProgram) Destroy() {}
func (p *fakeProgram) BindTexture(unit int, name string, _ gfx.TextureKind, tex gfx.Texture) {
	p.textures[unit] = tex
	p.samplers[unit] = name
}

type fakeGeometry struct {
	draws     int
	destroyed bool
}

func (g *fakeGeometry) Draw() { g.draws++ }
func (g *fakeGeometry) Destroy() { g.destroyed = true }

// boat is a camera target parked at a fixed pose.
type boat struct {
	pos, facing math.Vec3
}

func (b *boat) Position() math.Vec3 { return b.pos }
func (b *boat) Facing() math.Vec3 { return b.facing }
