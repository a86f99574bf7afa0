package scene

import (
	"testing"

	"github.com/Faultbox/driftline/internal/engine/collision"
	"github.com/Faultbox/driftline/internal/engine/gfx"
	"github.com/Faultbox/driftline/internal/engine/lighting"
	"github.com/Faultbox/driftline/internal/engine/water"
	"github.com/Faultbox/driftline/pkg/math"
)

func regularFrame() *Frame {
	return &Frame{
		Mode:            ModeRegular,
		View:            math.Identity(),
		Projection:      math.Identity(),
		Aspect:          1,
		Near:            0.1,
		Far:             11000,
		IsDay:           true,
		DayTime:         0.5,
		Reflection:      1,
		Refraction:      2,
		RefractionDepth: 3,
		ShadowMap:       4,
	}
}

func TestWaterSurfaceBindings(t *testing.T) {
	prog := newFakeProgram()
	geo := &fakeGeometry{}
	surface := water.NewSurface(0, 500)
	surface.Advance()
	surface.CycleMode()
	w := NewWaterSurface(prog, geo, 5, 6, surface)

	w.Render(ModeReflection, regularFrame())
	if geo.draws != 0 {
		t.Fatal("water drawn in reflection pass")
	}

	w.Render(ModeRegular, regularFrame())
	if geo.draws != 1 {
		t.Fatalf("draws = %d, want 1", geo.draws)
	}
	want := map[int]struct {
		sampler string
		tex     gfx.Texture
	}{
		0: {"uReflectionTexture", 1},
		1: {"uRefractionTexture", 2},
		2: {"uRefractionDepthTexture", 3},
		3: {"uDisplacementMap", 5},
		4: {"uBumpMap", 6},
	}
	for unit, w := range want {
		if prog.samplers[unit] != w.sampler || prog.textures[unit] != w.tex {
			t.Errorf("unit %d = %s/%d, want %s/%d", unit, prog.samplers[unit], prog.textures[unit], w.sampler, w.tex)
		}
	}
	if got := prog.values["uMode"]; got != int32(water.DisplayReflection) {
		t.Errorf("uMode = %v", got)
	}
	if got := prog.values["uWaterDistortion"]; got != float32(0.63) {
		t.Errorf("uWaterDistortion = %v", got)
	}
	if got := prog.values["uTime"]; got != surface.Offset() {
		t.Errorf("uTime = %v", got)
	}
	if _, ok := prog.values[uClippingPlane]; ok {
		t.Error("water should not upload a clip plane")
	}
}

func TestTerrainSurface(t *testing.T) {
	prog, shadowProg := newFakeProgram(), newFakeProgram()
	geo := &fakeGeometry{}
	ts := NewTerrainSurface(prog, shadowProg, geo, 7, 8, math.Vec3{X: -1000, Y: 5.2, Z: -1000})

	f := regularFrame()
	f.Mode = ModeReflection
	f.Clipping = true
	f.ClipPlane = math.Vec4{0, 1, 0, 0}
	ts.Render(ModeReflection, f)

	if prog.values[uClippingEnabled] != true || prog.values[uClippingPlane] != f.ClipPlane {
		t.Errorf("clip uniforms = %v %v", prog.values[uClippingEnabled], prog.values[uClippingPlane])
	}
	if prog.values["uShadowsEnabled"] != false {
		t.Error("shadows sampled outside the regular pass")
	}
	if prog.textures[0] != 7 || prog.textures[1] != 8 || prog.samplers[2] != "uShadowMap" {
		t.Errorf("textures = %v %v", prog.textures, prog.samplers)
	}
	if m := prog.values[uModel].(math.Mat4); m[12] != -1000 || m[13] != 5.2 || m[14] != -1000 {
		t.Errorf("model translation = %v %v %v", m[12], m[13], m[14])
	}

	ts.Render(ModeRegular, regularFrame())
	if prog.values["uShadowsEnabled"] != true {
		t.Error("regular pass should sample the shadow map")
	}

	ts.RenderToShadowMap(regularFrame())
	if shadowProg.uses != 1 || geo.draws != 3 {
		t.Errorf("shadow uses=%d draws=%d", shadowProg.uses, geo.draws)
	}
	if _, ok := shadowProg.values[uLightSpace]; !ok {
		t.Error("shadow program missing light space")
	}
}

type placed struct {
	model math.Mat4
	boxes []collision.Box
}

func (p placed) ModelMatrix() math.Mat4  { return p.model }
func (p placed) Bounds() []collision.Box { return p.boxes }

func TestModelEntityDrawsEveryPart(t *testing.T) {
	prog, shadowProg := newFakeProgram(), newFakeProgram()
	a, b := &fakeGeometry{}, &fakeGeometry{}
	pl := placed{model: math.Translate(1, 2, 3)}
	e := NewModelEntity("rock", prog, shadowProg, []Part{{a, 1}, {b, 2}}, pl)

	e.Render(ModeRegular, regularFrame())
	e.RenderToShadowMap(regularFrame())
	if a.draws != 2 || b.draws != 2 {
		t.Errorf("draws = %d, %d; want 2, 2", a.draws, b.draws)
	}
	if prog.textures[0] != 2 {
		t.Errorf("last diffuse texture = %d, want 2", prog.textures[0])
	}
	if prog.values[uModel] != pl.model {
		t.Error("model matrix not uploaded")
	}
	if prog.values["uShadowsEnabled"] != false || prog.values["uIsTerrain"] != false {
		t.Error("models must not sample the shadow map")
	}

	e.Destroy()
	if !a.destroyed || !b.destroyed {
		t.Error("parts not destroyed")
	}
}

func TestModelEntityWithoutParts(t *testing.T) {
	prog := newFakeProgram()
	e := NewModelEntity("missing", prog, prog, nil, placed{model: math.Identity()})
	e.Render(ModeRegular, regularFrame())
	e.RenderToShadowMap(regularFrame())
	if prog.uses != 0 {
		t.Errorf("uses = %d, want 0", prog.uses)
	}
}

func TestSkyboxStripsTranslation(t *testing.T) {
	prog := newFakeProgram()
	geo := &fakeGeometry{}
	s := NewSkybox(prog, geo, 1, 2)

	f := regularFrame()
	f.View = math.Translate(10, 20, 30)
	f.SkyRotation = -90
	f.SkyBlend = 0.25
	s.Render(ModeRegular, f)

	if v := prog.values[uView].(math.Mat4); v[12] != 0 || v[13] != 0 || v[14] != 0 {
		t.Errorf("view translation = %v %v %v", v[12], v[13], v[14])
	}
	if prog.values["uBlendFactor"] != float32(0.25) {
		t.Errorf("uBlendFactor = %v", prog.values["uBlendFactor"])
	}
	if prog.samplers[0] != "uDaySkybox" || prog.samplers[1] != "uNightSkybox" {
		t.Errorf("samplers = %v", prog.samplers)
	}
	if s.ModelMatrix() != math.RotateY(math.Radians(-90)) {
		t.Error("skybox not rotated with the sky")
	}
	if len(SkyboxVertices(1)) != 36*3 {
		t.Errorf("len(SkyboxVertices) = %d", len(SkyboxVertices(1)))
	}
}

func TestImage2D(t *testing.T) {
	prog := newFakeProgram()
	geo := &fakeGeometry{}
	img := NewImage2D(prog, geo, 9, math.Vec2{X: 0.8, Y: 0.8}, math.Vec2{X: 0.1, Y: 0.2})
	img.Render(ModeRegular, regularFrame())

	m := prog.values[uModel].(math.Mat4)
	if m[0] != 0.1 || m[5] != 0.2 || m[12] != 0.8 || m[13] != 0.8 {
		t.Errorf("model = %v", m)
	}
	if prog.values[uProjection] != math.Identity() {
		t.Error("screen images use an identity projection")
	}

	img.SetTexture(0)
	img.Render(ModeRegular, regularFrame())
	if geo.draws != 1 {
		t.Errorf("draws = %d, want 1 (untextured image skipped)", geo.draws)
	}
}

func TestLensFlare(t *testing.T) {
	sun := lighting.NewSun(10000, 2000)
	textures := make(map[string]gfx.Texture)
	for i, e := range lighting.DefaultFlare {
		textures[e.Texture] = gfx.Texture(i + 1)
	}

	tests := []struct {
		name        string
		firstPerson bool
		lookAtSun   bool
		draws       int
	}{
		{"third person", false, true, 0},
		{"looking away", true, false, 0},
		{"looking at sun", true, true, len(lighting.DefaultFlare)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := newFakeProgram()
			geo := &fakeGeometry{}
			l := NewLensFlare(prog, geo, lighting.DefaultFlare, textures, sun)

			f := regularFrame()
			f.FirstPerson = tt.firstPerson
			f.Projection = math.Perspective(math.Radians(45), 1, 0.1, 11000)
			target := sun.Position()
			if !tt.lookAtSun {
				target = target.Negate()
			}
			f.View = math.LookAt(math.Vec3{}, target, math.Vec3{Y: 1})
			l.Render(ModeRegular, f)

			if geo.draws != tt.draws {
				t.Errorf("draws = %d, want %d", geo.draws, tt.draws)
			}
			if tt.draws > 0 && prog.values["uTransparency"] != l.Layout().Brightness {
				t.Errorf("uTransparency = %v, want %v", prog.values["uTransparency"], l.Layout().Brightness)
			}
		})
	}
}
