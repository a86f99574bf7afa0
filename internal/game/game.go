// Package game implements the main game loop and the round being played.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/driftline/internal/assets"
	"github.com/Faultbox/driftline/internal/config"
	"github.com/Faultbox/driftline/internal/engine/audio"
	"github.com/Faultbox/driftline/internal/engine/debug"
	"github.com/Faultbox/driftline/internal/engine/framebuffer"
	"github.com/Faultbox/driftline/internal/engine/gfx/opengl"
	"github.com/Faultbox/driftline/internal/engine/input"
	"github.com/Faultbox/driftline/internal/engine/scene"
	"github.com/Faultbox/driftline/internal/engine/window"
	"github.com/Faultbox/driftline/internal/logger"
)

// Title is the window title.
const Title = "Driftline"

// Sky speed change per frame while a time key is held.
const (
	skySpeedStep = 1.05
	minSkySpeed  = 0.01
)

// Game is the main game instance.
type Game struct {
	config  *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	device   *opengl.Device
	input    *input.Input
	controls *Controls
	programs *programs
	assets   *assets.Manager
	textures *assets.TextureCache
	audio    *audio.Player
	shots    *debug.Screenshots

	world *world
}

// New opens the window and builds the lake.
func New(cfg *config.Config) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("fish", cfg.Game.FishCount),
	)

	controls, err := NewControls(cfg.Controls)
	if err != nil {
		return nil, fmt.Errorf("controls: %w", err)
	}

	g := &Game{
		config:   cfg,
		log:      log,
		controls: controls,
		input:    input.New(),
		shots:    debug.NewScreenshots(cfg.Data.ScreenshotDir, "driftline"),
	}

	// Window first: every GL call below needs its context
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if err := g.init(); err != nil {
		g.Close()
		return nil, err
	}

	log.Info("game initialized successfully")
	return g, nil
}

func (g *Game) init() error {
	var err error
	g.device, err = opengl.NewDevice()
	if err != nil {
		return fmt.Errorf("initializing OpenGL: %w", err)
	}
	g.log.Info("OpenGL ready", zap.String("version", g.device.Version()))

	g.programs, err = newPrograms()
	if err != nil {
		return err
	}

	width, height := g.window.DrawableSize()
	targets, err := newTargets(width, height)
	if err != nil {
		return err
	}

	g.assets = assets.NewManager(g.config.Data.AssetDir)
	g.textures = assets.NewTextureCache(g.assets, opengl.Uploader{})
	l := &loader{assets: g.assets, textures: g.textures, log: logger.Named("assets")}

	g.world, err = buildWorld(g.config, l, g.programs, g.device, targets, width, height)
	if err != nil {
		for _, t := range []interface{ Destroy() }{targets.Reflection, targets.Refraction, targets.Shadow} {
			t.Destroy()
		}
		return err
	}

	g.initAudio(l)
	return nil
}

func newTargets(width, height int) (scene.Targets, error) {
	reflection, err := framebuffer.NewReflection(width, height)
	if err != nil {
		return scene.Targets{}, fmt.Errorf("reflection target: %w", err)
	}
	refraction, err := framebuffer.NewRefraction(width, height)
	if err != nil {
		reflection.Destroy()
		return scene.Targets{}, fmt.Errorf("refraction target: %w", err)
	}
	shadow, err := framebuffer.NewShadow(width, height)
	if err != nil {
		reflection.Destroy()
		refraction.Destroy()
		return scene.Targets{}, fmt.Errorf("shadow target: %w", err)
	}
	return scene.Targets{Reflection: reflection, Refraction: refraction, Shadow: shadow}, nil
}

// initAudio starts the ambience. Any failure leaves the game silent.
func (g *Game) initAudio(l *loader) {
	ac := g.config.Audio
	g.audio = audio.New(audio.Volumes{
		Master:  float64(ac.MasterVolume),
		Music:   float64(ac.MusicVolume),
		Effects: float64(ac.SFXVolume),
		Muted:   ac.Muted,
	})
	log := logger.Named("audio")
	if err := g.audio.Init(); err != nil {
		log.Warn("audio disabled", zap.Error(err))
		return
	}
	for _, name := range []string{ambienceSound, catchSound} {
		data := l.sound(name)
		if data == nil {
			continue
		}
		if err := g.audio.Load(name, data); err != nil {
			log.Warn("sound unusable", zap.String("path", name), zap.Error(err))
		}
	}
	if g.audio.Has(ambienceSound) {
		if err := g.audio.Loop(ambienceSound); err != nil {
			log.Warn("ambience not started", zap.Error(err))
		}
	}
}

// Run runs the main loop until the player quits.
func (g *Game) Run() error {
	g.running = true

	var frameTime time.Duration
	if limit := g.config.Graphics.FPSLimit; limit > 0 && !g.config.Graphics.VSync {
		frameTime = time.Second / time.Duration(limit)
	}

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	fps := 0

	g.log.Info("starting game loop")

	for g.running {
		frameStart := time.Now()
		dt := float32(frameStart.Sub(lastTime).Seconds())
		lastTime = frameStart

		// 1. Process input
		if g.input.Update() {
			break
		}
		state := g.input.State()
		if _, _, ok := state.Resized(); ok {
			g.world.scene.Resize(g.window.DrawableSize())
		}

		// 2. Player actions
		for _, a := range g.controls.Fired(state) {
			g.perform(a, fps)
		}
		g.steer(state)

		// 3. Simulation
		if caught := g.world.session.Tick(); len(caught) > 0 {
			g.world.caught(caught)
			g.playEffect(catchSound)
			if g.world.session.Complete() {
				g.log.Info("every fish caught", zap.Int("score", g.world.session.Score()))
			}
		}
		g.world.cycle.Advance(dt)
		g.world.sun.Follow(g.world.cycle)
		g.world.water.Advance()

		// 4. Render and present
		g.world.scene.Render()
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			fps = frameCount
			if g.config.Game.ShowFPS {
				g.log.Debug("fps", zap.Int("count", fps), zap.Float32("dt_ms", dt*1000))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameTime > 0 {
			if rest := frameTime - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	g.log.Info("game loop finished", zap.Int("score", g.world.session.Score()))
	return nil
}

// steer applies mouse drag and wheel to the camera.
func (g *Game) steer(state *input.State) {
	cam := g.world.camera
	if dx, dy := state.Drag(); dx != 0 || dy != 0 {
		cam.ChangePitch(-float32(dy) * DragDegreesPerPixel)
		cam.RotateAroundPlayer(-float32(dx) * DragDegreesPerPixel)
	}
	if wheel := state.Wheel(); wheel != 0 {
		cam.Zoom(float32(wheel) * WheelZoomStep)
	}
}

// perform carries out one action fired this frame.
func (g *Game) perform(a Action, fps int) {
	w := g.world
	ch := w.session.Character()

	switch a {
	case ActionForward:
		ch.Forward()
	case ActionTurnLeft:
		ch.TurnLeft()
	case ActionTurnRight:
		ch.TurnRight()
	case ActionQuit:
		g.running = false
	case ActionReset:
		w.reset()
	case ActionToggleView:
		w.camera.SetThirdPerson(!w.camera.IsThirdPerson())
		g.log.Info("camera mode", zap.Stringer("mode", w.camera.Mode()))
	case ActionToggleBounds:
		w.scene.ShowBounds(!w.scene.BoundsVisible())
	case ActionToggleInfo:
		g.logInfo(fps)
	case ActionWaterMode:
		g.log.Info("water display mode", zap.Stringer("mode", w.water.CycleMode()))
	case ActionBumpMapping:
		w.water.BumpMapping = !w.water.BumpMapping
		g.log.Info("bump mapping", zap.Bool("on", w.water.BumpMapping))
	case ActionFasterTime:
		w.cycle.SetSpeed(nextSkySpeed(w.cycle.Speed(), true))
	case ActionSlowerTime:
		w.cycle.SetSpeed(nextSkySpeed(w.cycle.Speed(), false))
	case ActionMute:
		g.log.Info("audio muted", zap.Bool("muted", g.audio.ToggleMute()))
	case ActionScreenshot:
		g.screenshot()
	}
}

// nextSkySpeed returns the sky rotation rate one time-key step from speed.
func nextSkySpeed(speed float32, faster bool) float32 {
	if faster {
		return max(speed*skySpeedStep, minSkySpeed)
	}
	return speed / skySpeedStep
}

func (g *Game) logInfo(fps int) {
	w := g.world
	s := w.session
	pos := s.Character().Position()
	hits, misses := g.textures.Stats()
	g.log.Info("status",
		zap.Int("score", s.Score()),
		zap.Int("total", s.Total()),
		zap.Float32("x", pos.X),
		zap.Float32("z", pos.Z),
		zap.Stringer("camera", w.camera.Mode()),
		zap.Float32("pitch", w.camera.Pitch()),
		zap.Float32("angle", w.camera.Angle()),
		zap.Float32("zoom", w.camera.Distance()),
		zap.Bool("day", w.cycle.IsDay()),
		zap.Float32("time_of_day", w.cycle.Time()),
		zap.Float32("sky_speed", w.cycle.Speed()),
		zap.Int("fps", fps),
		zap.Int("texture_hits", hits),
		zap.Int("texture_misses", misses),
	)
}

func (g *Game) playEffect(name string) {
	if !g.audio.Has(name) {
		return
	}
	if err := g.audio.Play(name); err != nil {
		g.log.Debug("effect not played", zap.String("sound", name), zap.Error(err))
	}
}

func (g *Game) screenshot() {
	width, height := g.window.DrawableSize()
	file, err := g.shots.SavePixels(g.device.ReadPixels(width, height), width, height)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", file))
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.audio != nil {
		g.audio.Close()
	}
	if g.world != nil {
		g.world.scene.Destroy()
	}
	if g.textures != nil {
		g.textures.Release()
	}
	if g.programs != nil {
		g.programs.destroy()
	}
	if g.assets != nil {
		g.assets.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
