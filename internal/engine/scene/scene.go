// Package scene orchestrates the render passes of a frame: refraction and
// reflection into offscreen targets for the water, a depth pass from the sun
// for shadows, and the final composite to the screen.
package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/driftline/internal/engine/camera"
	"github.com/Faultbox/driftline/internal/engine/collision"
	"github.com/Faultbox/driftline/internal/engine/gfx"
	"github.com/Faultbox/driftline/internal/engine/lighting"
	"github.com/Faultbox/driftline/internal/engine/shadow"
	"github.com/Faultbox/driftline/internal/engine/water"
	"github.com/Faultbox/driftline/pkg/math"
)

// Renderable is anything the scene can draw.
type Renderable interface {
	// Render draws for the given pass.
	Render(mode Mode, f *Frame)
	// RenderToShadowMap draws depth only, from the light.
	RenderToShadowMap(f *Frame)
	ModelMatrix() math.Mat4
}

// Bounded renderables expose their collision boxes to the debug overlay.
type Bounded interface {
	ModelMatrix() math.Mat4
	Bounds() []collision.Box
}

// Destroyer is implemented by renderables owning GPU resources.
type Destroyer interface {
	Destroy()
}

// Layer selects where in a pass a renderable is drawn.
type Layer int

const (
	LayerSky     Layer = iota // Behind everything, depth writes off
	LayerSun                  // Behind everything, daytime only
	LayerOpaque               // Lit entities, every pass
	LayerWater                // Final pass only
	LayerFlare                // Final pass, daytime only, additive
	LayerOverlay              // Final pass, screen space
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerSky:
		return "sky"
	case LayerSun:
		return "sun"
	case LayerOpaque:
		return "opaque"
	case LayerWater:
		return "water"
	case LayerFlare:
		return "flare"
	case LayerOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Targets are the offscreen passes' outputs.
type Targets struct {
	Reflection gfx.Target
	Refraction gfx.Target
	Shadow     gfx.Target
}

// Environment is the time-of-day and water state the passes depend on.
type Environment struct {
	Cycle *lighting.DayCycle
	Sun   *lighting.Sun
	Water *water.Surface
}

// Config contains scene configuration options.
type Config struct {
	Width      int
	Height     int
	ClearColor math.Vec3
	ShadowBox  shadow.Box
	ShowBounds bool
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:      1280,
		Height:     720,
		ClearColor: math.Vec3{X: 0.529, Y: 0.808, Z: 0.922},
		ShadowBox:  shadow.DefaultBox,
	}
}

// Scene owns every renderable and render target and draws them in order.
type Scene struct {
	config  Config
	device  gfx.Device
	targets Targets
	camera  *camera.Rig
	env     Environment
	log     *zap.Logger

	layers [LayerOverlay + 1][]Renderable
	bounds *BoundsOverlay

	// Non-owning: caught entities stay in their layer but are skipped.
	caught map[Renderable]struct{}
}

// New creates a scene drawing through device into targets, seen from cam.
func New(cfg Config, device gfx.Device, targets Targets, cam *camera.Rig, env Environment, log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{
		config:  cfg,
		device:  device,
		targets: targets,
		camera:  cam,
		env:     env,
		log:     log,
		caught:  make(map[Renderable]struct{}),
	}
}

// Add places r in layer. The scene takes ownership of r.
func (s *Scene) Add(layer Layer, r Renderable) {
	if r == nil {
		return
	}
	s.layers[layer] = append(s.layers[layer], r)
}

// Layer returns the renderables in layer.
func (s *Scene) Layer(layer Layer) []Renderable {
	return s.layers[layer]
}

// SetBoundsOverlay installs the debug box renderer.
func (s *Scene) SetBoundsOverlay(b *BoundsOverlay) {
	s.bounds = b
}

// ShowBounds toggles the bounding-box overlay.
func (s *Scene) ShowBounds(on bool) {
	s.config.ShowBounds = on
}

// BoundsVisible reports whether the overlay is drawn.
func (s *Scene) BoundsVisible() bool {
	return s.config.ShowBounds
}

// MarkCaught stops drawing r until ClearCaught.
func (s *Scene) MarkCaught(r Renderable) {
	s.caught[r] = struct{}{}
}

// IsCaught reports whether r is being skipped.
func (s *Scene) IsCaught(r Renderable) bool {
	_, ok := s.caught[r]
	return ok
}

// ClearCaught draws every entity again.
func (s *Scene) ClearCaught() {
	clear(s.caught)
}

// Size returns the viewport size.
func (s *Scene) Size() (width, height int) {
	return s.config.Width, s.config.Height
}

// Resize resizes the viewport, every render target and the projection.
func (s *Scene) Resize(width, height int) {
	if width < 1 || height < 1 {
		return
	}
	if width == s.config.Width && height == s.config.Height {
		return
	}
	s.config.Width, s.config.Height = width, height
	for _, t := range []gfx.Target{s.targets.Reflection, s.targets.Refraction, s.targets.Shadow} {
		if t != nil {
			t.Resize(width, height)
		}
	}
	s.camera.Resize(width, height)
	s.log.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
}

// Render draws one frame.
func (s *Scene) Render() {
	s.camera.CalculatePosition()

	s.renderPass(ModeRefraction, s.targets.Refraction)

	s.camera.InvertAroundWater()
	s.renderPass(ModeReflection, s.targets.Reflection)
	s.camera.RevertAroundWater()

	s.renderShadowPass()

	s.renderPass(ModeRegular, nil)
}

// frame builds the per-pass context from the current camera pose.
func (s *Scene) frame(mode Mode) *Frame {
	lens := s.camera.Lens()
	f := &Frame{
		Mode:           mode,
		View:           s.camera.ViewMatrix(),
		Projection:     s.camera.Projection(),
		CameraPosition: s.camera.Position(),
		FirstPerson:    !s.camera.IsThirdPerson(),
		Aspect:         float32(s.config.Width) / float32(s.config.Height),
		Near:           lens.Near,
		Far:            lens.Far,
	}
	f.ClipPlane, f.Clipping = ClipPlane(mode, s.waterLevel())

	if sun := s.env.Sun; sun != nil {
		f.Light = Light{Position: sun.Position(), Color: sun.Color}
		ls := shadow.CalculateLightSpace(sun.Position(), s.config.ShadowBox)
		f.LightView = ls.View
		f.LightProjection = ls.Projection
		f.ToShadowMapSpace = ls.ToShadowMapSpace()
	}
	if c := s.env.Cycle; c != nil {
		f.IsDay = c.IsDay()
		f.SkyBlend = c.BlendFactor()
		f.SkyRotation = c.Rotation()
		f.DayTime = c.Time()
	} else {
		f.IsDay = true
	}
	return f
}

func (s *Scene) waterLevel() float32 {
	if s.env.Water == nil {
		return 0
	}
	return s.env.Water.Level
}

func (s *Scene) renderShadowPass() {
	t := s.targets.Shadow
	if t == nil {
		return
	}
	f := s.frame(ModeShadowMap)

	t.Bind()
	s.device.SetDepthTest(true)
	s.device.SetDepthWrite(true)
	s.device.SetClipping(false)
	s.device.SetBlend(gfx.BlendNone)

	for _, r := range s.layers[LayerOpaque] {
		if s.IsCaught(r) {
			continue
		}
		r.RenderToShadowMap(f)
	}
	t.Unbind()
}

// renderPass draws one camera pass into target, or the screen when target is nil.
func (s *Scene) renderPass(mode Mode, target gfx.Target) {
	if target != nil {
		target.Bind()
	} else {
		s.device.Viewport(s.config.Width, s.config.Height)
	}

	f := s.frame(mode)
	if mode == ModeRegular {
		s.attachTargets(f)
	}

	s.device.SetDepthTest(true)
	s.device.SetClipping(f.Clipping)
	s.device.SetBlend(gfx.BlendAlpha)
	c := s.config.ClearColor
	s.device.Clear(c.X, c.Y, c.Z)

	s.device.SetDepthWrite(false)
	s.draw(LayerSky, f)
	if f.IsDay {
		s.draw(LayerSun, f)
	}
	s.device.SetDepthWrite(true)

	s.draw(LayerOpaque, f)

	if mode == ModeRegular {
		s.draw(LayerWater, f)

		if f.IsDay && len(s.layers[LayerFlare]) > 0 {
			s.device.SetDepthWrite(false)
			s.device.SetBlend(gfx.BlendAdditive)
			s.draw(LayerFlare, f)
			s.device.SetBlend(gfx.BlendAlpha)
			s.device.SetDepthWrite(true)
		}

		if len(s.layers[LayerOverlay]) > 0 {
			s.device.SetDepthTest(false)
			s.draw(LayerOverlay, f)
			s.device.SetDepthTest(true)
		}
	}

	if s.config.ShowBounds && s.bounds != nil {
		s.drawBounds(f)
	}

	if target != nil {
		target.Unbind()
	}
}

func (s *Scene) attachTargets(f *Frame) {
	if t := s.targets.Reflection; t != nil {
		f.Reflection = t.ColorTexture()
	}
	if t := s.targets.Refraction; t != nil {
		f.Refraction = t.ColorTexture()
		f.RefractionDepth = t.DepthTexture()
	}
	if t := s.targets.Shadow; t != nil {
		f.ShadowMap = t.DepthTexture()
	}
}

func (s *Scene) draw(layer Layer, f *Frame) {
	for _, r := range s.layers[layer] {
		if s.IsCaught(r) {
			continue
		}
		r.Render(f.Mode, f)
	}
}

func (s *Scene) drawBounds(f *Frame) {
	for _, r := range s.layers[LayerOpaque] {
		if s.IsCaught(r) {
			continue
		}
		if b, ok := r.(Bounded); ok {
			s.bounds.Draw(f, b)
		}
	}
}

// Destroy releases every renderable and render target.
func (s *Scene) Destroy() {
	for l := range s.layers {
		for _, r := range s.layers[l] {
			if d, ok := r.(Destroyer); ok {
				d.Destroy()
			}
		}
		s.layers[l] = nil
	}
	if s.bounds != nil {
		s.bounds.Destroy()
	}
	for _, t := range []gfx.Target{s.targets.Reflection, s.targets.Refraction, s.targets.Shadow} {
		if t != nil {
			t.Destroy()
		}
	}
}
