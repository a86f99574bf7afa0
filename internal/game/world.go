package game

import (
	"fmt"
	"math/rand/v2"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/driftline/internal/assets"
	"github.com/Faultbox/driftline/internal/config"
	"github.com/Faultbox/driftline/internal/engine/camera"
	"github.com/Faultbox/driftline/internal/engine/collision"
	"github.com/Faultbox/driftline/internal/engine/debug"
	"github.com/Faultbox/driftline/internal/engine/gfx"
	"github.com/Faultbox/driftline/internal/engine/gfx/opengl"
	"github.com/Faultbox/driftline/internal/engine/lighting"
	"github.com/Faultbox/driftline/internal/engine/model"
	"github.com/Faultbox/driftline/internal/engine/scene"
	"github.com/Faultbox/driftline/internal/engine/scene/shaders"
	"github.com/Faultbox/driftline/internal/engine/terrain"
	"github.com/Faultbox/driftline/internal/engine/water"
	"github.com/Faultbox/driftline/internal/game/entity"
	"github.com/Faultbox/driftline/internal/logger"
	"github.com/Faultbox/driftline/pkg/math"
)

// Asset paths, relative to the asset directory.
const (
	boatModel  = "Assets/Boat/boat.obj"
	fishModel  = "Assets/Fish/fish.obj"
	rockModel  = "Assets/Rock/Rock.obj"
	treeModel  = "Assets/LowPolyTree/lowpolytree.obj"
	heightmap  = "Assets/Terrain/heightmap.png"
	grassImage = "Assets/Terrain/grass.png"
	dirtImage  = "Assets/Terrain/dirt.png"
	dudvImage  = "Assets/Water/dudvMap.png"
	waterBumps = "Assets/Water/normalMap.png"
	sunImage   = "Assets/sun.png"
	skyboxDir  = "Assets/Skybox"

	ambienceSound = "Assets/Sounds/ambience.wav"
	catchSound    = "Assets/Sounds/catch.wav"
)

// Placement of the boat and fish.
var (
	spawnPoint = math.Vec3{X: 0, Y: -1, Z: 0}
	boatScale  = float32(1.3)
	fishScale  = float32(0.3)
)

// prop is a static model standing on the terrain.
type prop struct {
	model string
	x, z  float32
	scale float32
}

var props = []prop{
	{rockModel, 70, 0, 2.0},
	{rockModel, -175, -135, 3.7},
	{treeModel, -150, -150, 12.7},
	{treeModel, -300, 100, 13},
	{treeModel, -90, 200, 12.5},
}

// fallbackBox stands in for a model that failed to load, so the agent still
// collides with something.
var fallbackBox = collision.NewBox(math.Vec3{X: -1, Y: 0, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})

// programs are the linked shader programs shared by the renderables.
type programs struct {
	object *opengl.Program
	shadow *opengl.Program
	water  *opengl.Program
	skybox *opengl.Program
	image  *opengl.Program
	lines  *opengl.Program
}

func newPrograms() (*programs, error) {
	p := &programs{}
	sources := []struct {
		name   string
		vs, fs string
		dst    **opengl.Program
	}{
		{"object", shaders.ObjectVertex, shaders.ObjectFragment, &p.object},
		{"shadow", shaders.ShadowVertex, shaders.ShadowFragment, &p.shadow},
		{"water", shaders.WaterVertex, shaders.WaterFragment, &p.water},
		{"skybox", shaders.SkyboxVertex, shaders.SkyboxFragment, &p.skybox},
		{"image", shaders.ImageVertex, shaders.ImageFragment, &p.image},
		{"lines", shaders.LinesVertex, shaders.LinesFragment, &p.lines},
	}
	for _, s := range sources {
		prog, err := opengl.NewProgram(s.name, s.vs, s.fs)
		if err != nil {
			p.destroy()
			return nil, fmt.Errorf("building %s program: %w", s.name, err)
		}
		*s.dst = prog
	}
	return p, nil
}

func (p *programs) destroy() {
	for _, prog := range []*opengl.Program{p.object, p.shadow, p.water, p.skybox, p.image, p.lines} {
		if prog != nil {
			prog.Destroy()
		}
	}
}

// loader resolves assets into GPU resources. Failures are logged and leave
// the affected renderable degraded rather than aborting the game.
type loader struct {
	assets   *assets.Manager
	textures *assets.TextureCache
	log      *zap.Logger
}

func (l *loader) texture(name string, wrap gfx.Wrap) gfx.Texture {
	tex, err := l.textures.Texture(name, wrap)
	if err != nil {
		l.log.Warn("texture unavailable", zap.String("path", name), zap.Error(err))
		return 0
	}
	return tex
}

func (l *loader) cube(faces [6]string) gfx.Texture {
	tex, err := l.textures.Cube(faces)
	if err != nil {
		l.log.Warn("cube map unavailable", zap.String("path", faces[0]), zap.Error(err))
		return 0
	}
	return tex
}

// model loads an OBJ and returns its collision boxes and uploaded parts.
func (l *loader) model(name string) ([]collision.Box, []scene.Part) {
	m, err := l.assets.LoadModel(name)
	if err != nil {
		l.log.Warn("model unavailable", zap.String("path", name), zap.Error(err))
		return []collision.Box{fallbackBox}, nil
	}
	return m.Boxes(), l.parts(m)
}

func (l *loader) parts(m *model.Model) []scene.Part {
	parts := make([]scene.Part, 0, len(m.Meshes))
	for _, mesh := range m.Meshes {
		parts = append(parts, scene.Part{
			Geometry: opengl.NewGeometry(mesh.Interleaved(), []int{3, 3, 2}, mesh.Indices, opengl.Triangles),
			Texture:  l.texture(mesh.Material.Texture, gfx.WrapRepeat),
		})
	}
	return parts
}

// sound returns the bytes of a sound asset, or nil when it is missing.
func (l *loader) sound(name string) []byte {
	data, err := l.assets.Load(name)
	if err != nil {
		l.log.Warn("sound unavailable", zap.String("path", name), zap.Error(err))
		return nil
	}
	return data
}

// world is everything the game loop drives.
type world struct {
	scene   *scene.Scene
	camera  *camera.Rig
	cycle   *lighting.DayCycle
	sun     *lighting.Sun
	water   *water.Surface
	session *Session
	score   *Scoreboard

	// fish maps a fish ID to the renderable drawing it.
	fish map[int]scene.Renderable
}

// buildWorld loads the lake and assembles the scene around it.
func buildWorld(cfg *config.Config, l *loader, p *programs, device gfx.Device, targets scene.Targets, width, height int) (*world, error) {
	wc := cfg.World
	hf, err := l.assets.LoadHeightmap(heightmap, terrain.Options{
		Extent:    wc.TerrainExtent,
		MaxHeight: wc.TerrainMaxHeight,
		Offset:    math.Vec3{X: wc.TerrainOffset[0], Y: wc.TerrainOffset[1], Z: wc.TerrainOffset[2]},
	})
	if err != nil {
		return nil, fmt.Errorf("loading terrain: %w", err)
	}

	boatBoxes, boatParts := l.model(boatModel)
	fishBoxes, fishParts := l.model(fishModel)

	character := entity.NewCharacter(boatBoxes, spawnPoint, boatScale, hf, entity.DefaultCharacterConfig(), nil)

	fishCfg := entity.DefaultFishConfig()
	fishCfg.PlacementAttempts = cfg.Game.PlacementAttempts
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	l.log.Debug("seeding school", zap.Uint64("seed", seed))
	school := entity.NewSchool(cfg.Game.FishCount, fishBoxes, fishScale, hf, fishCfg, rand.New(rand.NewPCG(seed, seed>>1|1)))

	cam := camera.NewRig(character, camera.Lens{
		FOV:  cfg.Graphics.FOV,
		Near: cfg.Graphics.Near,
		Far:  cfg.Graphics.Far,
	}, width, height)
	cam.SetThirdPerson(!cfg.Game.FirstPerson)

	w := &world{
		camera:  cam,
		cycle:   lighting.NewDayCycle(wc.SkyRotationSpeed),
		sun:     lighting.NewSun(wc.SunDistance, wc.SunSize),
		water:   water.NewSurface(wc.WaterLevel, wc.WaterSize),
		session: NewSession(character, school, cam, logger.Named("session")),
		fish:    make(map[int]scene.Renderable),
	}
	w.sun.Follow(w.cycle)
	w.water.Distortion = cfg.Water.Distortion
	w.water.BumpMapping = cfg.Water.BumpMapping
	if mode, ok := water.ParseDisplayMode(cfg.Water.DisplayMode); ok {
		w.water.Mode = mode
	}

	sc := scene.DefaultConfig()
	sc.Width, sc.Height = width, height
	sc.ShowBounds = cfg.Game.ShowBounds
	w.scene = scene.New(sc, device, targets, cam, scene.Environment{
		Cycle: w.cycle,
		Sun:   w.sun,
		Water: w.water,
	}, logger.Named("scene"))

	w.addSky(l, p)

	mesh := terrain.BuildMesh(hf)
	w.scene.Add(scene.LayerOpaque, scene.NewTerrainSurface(p.object, p.shadow,
		opengl.NewGeometry(mesh.Interleaved(), []int{3, 3, 2}, mesh.Indices, opengl.Triangles),
		l.texture(grassImage, gfx.WrapRepeat), l.texture(dirtImage, gfx.WrapRepeat), hf.Offset()))

	w.scene.Add(scene.LayerOpaque, scene.NewModelEntity("boat", p.object, p.shadow, boatParts, character))

	for _, f := range school.All() {
		// Fish share the uploaded parts; only the first entity owns them.
		parts := fishParts
		if len(w.fish) > 0 {
			parts = borrowParts(fishParts)
		}
		e := scene.NewModelEntity(fmt.Sprintf("fish-%d", f.ID()), p.object, p.shadow, parts, f)
		w.fish[f.ID()] = e
		w.scene.Add(scene.LayerOpaque, e)
	}

	shared := make(map[string]loadedModel)
	for _, pr := range props {
		boxes, parts := l.cachedModel(pr.model, shared)
		body := model.NewBody(boxes, math.Vec3{X: pr.x, Z: pr.z}, pr.scale)
		body.PlaceOnTerrain(hf.HeightAt)
		w.scene.Add(scene.LayerOpaque, scene.NewModelEntity(path.Base(pr.model), p.object, p.shadow, parts, &body))
	}

	w.scene.Add(scene.LayerWater, scene.NewWaterSurface(p.water,
		opengl.NewGeometry(w.water.Plane(), []int{3, 2}, nil, opengl.TriangleStrip),
		l.texture(dudvImage, gfx.WrapRepeat), l.texture(waterBumps, gfx.WrapRepeat), w.water))

	w.addFlare(l, p)
	w.addHUD(l, p, cfg.Game.FishCount)

	w.scene.SetBoundsOverlay(scene.NewBoundsOverlay(p.lines,
		opengl.NewGeometry(debug.UnitCube(), []int{3}, nil, opengl.Lines)))

	return w, nil
}

func (w *world) addSky(l *loader, p *programs) {
	day := l.cube(assets.CubePaths(skyboxDir, ""))
	night := l.cube(assets.CubePaths(skyboxDir, "night"))
	w.scene.Add(scene.LayerSky, scene.NewSkybox(p.skybox,
		opengl.NewGeometry(scene.SkyboxVertices(scene.SkyboxSize), []int{3}, nil, opengl.Triangles),
		day, night))

	w.scene.Add(scene.LayerSun, scene.NewSunBillboard(p.image, newQuad(), l.texture(sunImage, gfx.WrapClamp), w.sun))
}

func (w *world) addFlare(l *loader, p *programs) {
	textures := make(map[string]gfx.Texture)
	for _, e := range lighting.DefaultFlare {
		if _, ok := textures[e.Texture]; !ok {
			textures[e.Texture] = l.texture(e.Texture, gfx.WrapClamp)
		}
	}
	w.scene.Add(scene.LayerFlare, scene.NewLensFlare(p.image, newQuad(), lighting.DefaultFlare, textures, w.sun))
}

func (w *world) addHUD(l *loader, p *programs, total int) {
	current := scene.NewImage2D(p.image, newQuad(), l.texture(NumberImage(0), gfx.WrapClamp), scorePos, digitSize)
	w.scene.Add(scene.LayerOverlay, current)
	w.scene.Add(scene.LayerOverlay, scene.NewImage2D(p.image, newQuad(), l.texture(slashImage, gfx.WrapClamp), slashPos, slashSize))
	w.scene.Add(scene.LayerOverlay, scene.NewImage2D(p.image, newQuad(), l.texture(NumberImage(total), gfx.WrapClamp), totalPos, digitSize))

	w.score = NewScoreboard(current, func(name string) (gfx.Texture, error) {
		return l.textures.Texture(name, gfx.WrapClamp)
	}, logger.Named("hud"))
}

// caught hides the fish and updates the HUD.
func (w *world) caught(fish []*entity.Fish) {
	for _, f := range fish {
		if r, ok := w.fish[f.ID()]; ok {
			w.scene.MarkCaught(r)
		}
	}
	w.score.Show(w.session.Score())
}

// reset starts the round over.
func (w *world) reset() {
	w.session.Reset()
	w.scene.ClearCaught()
	w.score.Reset()
}

func newQuad() *opengl.Geometry {
	return opengl.NewGeometry(scene.QuadVertices, []int{2}, nil, opengl.TriangleStrip)
}

// loadedModel is a model already uploaded for an earlier prop.
type loadedModel struct {
	boxes []collision.Box
	parts []scene.Part
}

// cachedModel loads name once; later props of the same model borrow the
// first one's parts.
func (l *loader) cachedModel(name string, shared map[string]loadedModel) ([]collision.Box, []scene.Part) {
	if m, ok := shared[name]; ok {
		return m.boxes, borrowParts(m.parts)
	}
	boxes, parts := l.model(name)
	shared[name] = loadedModel{boxes: boxes, parts: parts}
	return boxes, parts
}

// borrowParts wraps parts so destroying the borrower leaves the geometry to
// its owner.
func borrowParts(parts []scene.Part) []scene.Part {
	out := make([]scene.Part, len(parts))
	for i, p := range parts {
		out[i] = scene.Part{Geometry: borrowed{p.Geometry}, Texture: p.Texture}
	}
	return out
}

type borrowed struct{ gfx.Geometry }

func (borrowed) Destroy() {}
