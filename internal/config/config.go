// Package config handles game configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"slices"
)

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	World    WorldConfig    `yaml:"world"`
	Game     GameConfig     `yaml:"game"`
	Water    WaterConfig    `yaml:"water"`
	Controls ControlsConfig `yaml:"controls"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DataConfig holds game data file paths.
type DataConfig struct {
	AssetDir      string `yaml:"asset_dir"`      // Root of the Assets, Numbers and LensFlare folders
	ScreenshotDir string `yaml:"screenshot_dir"` // Where screenshots are written
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit"`
	FOV        float32 `yaml:"fov"` // Vertical field of view in degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	MusicVolume  float32 `yaml:"music_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// WorldConfig describes the lake: terrain, water and sky.
type WorldConfig struct {
	TerrainExtent    float32    `yaml:"terrain_extent"`
	TerrainMaxHeight float32    `yaml:"terrain_max_height"`
	TerrainOffset    [3]float32 `yaml:"terrain_offset"`
	WaterLevel       float32    `yaml:"water_level"`
	WaterSize        float32    `yaml:"water_size"`
	SkyRotationSpeed float32    `yaml:"sky_rotation_speed"` // Degrees per second
	SunDistance      float32    `yaml:"sun_distance"`
	SunSize          float32    `yaml:"sun_size"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	FishCount         int    `yaml:"fish_count"`
	PlacementAttempts int    `yaml:"placement_attempts"`
	Seed              uint64 `yaml:"seed"` // 0 picks a seed from the clock
	FirstPerson       bool   `yaml:"first_person"`
	ShowBounds        bool   `yaml:"show_bounds"`
	ShowFPS           bool   `yaml:"show_fps"`
}

// WaterConfig holds the water surface look.
type WaterConfig struct {
	Distortion  float32 `yaml:"distortion"`
	BumpMapping bool    `yaml:"bump_mapping"`
	DisplayMode string  `yaml:"display_mode"` // regular, reflection, refraction or bump_map
}

// ControlsConfig maps actions to SDL key names.
type ControlsConfig struct {
	Forward      string `yaml:"forward"`
	TurnLeft     string `yaml:"turn_left"`
	TurnRight    string `yaml:"turn_right"`
	Quit         string `yaml:"quit"`
	Reset        string `yaml:"reset"`
	ToggleView   string `yaml:"toggle_view"`
	ToggleBounds string `yaml:"toggle_bounds"`
	ToggleInfo   string `yaml:"toggle_info"`
	WaterMode    string `yaml:"water_mode"`
	BumpMapping  string `yaml:"bump_mapping"`
	FasterTime   string `yaml:"faster_time"`
	SlowerTime   string `yaml:"slower_time"`
	Mute         string `yaml:"mute"`
	Screenshot   string `yaml:"screenshot"`
}

// Bindings returns the action name of every binding, in declaration order.
func (c ControlsConfig) Bindings() []Binding {
	return []Binding{
		{"forward", c.Forward},
		{"turn_left", c.TurnLeft},
		{"turn_right", c.TurnRight},
		{"quit", c.Quit},
		{"reset", c.Reset},
		{"toggle_view", c.ToggleView},
		{"toggle_bounds", c.ToggleBounds},
		{"toggle_info", c.ToggleInfo},
		{"water_mode", c.WaterMode},
		{"bump_mapping", c.BumpMapping},
		{"faster_time", c.FasterTime},
		{"slower_time", c.SlowerTime},
		{"mute", c.Mute},
		{"screenshot", c.Screenshot},
	}
}

// Binding pairs an action with its key name.
type Binding struct {
	Action string
	Key    string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   60,
			FOV:        45,
			Near:       0.1,
			Far:        11000,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			MusicVolume:  0.7,
			SFXVolume:    0.8,
			Muted:        false,
		},
		World: WorldConfig{
			TerrainExtent:    2000,
			TerrainMaxHeight: 100,
			TerrainOffset:    [3]float32{-1000, 5.2, -1000},
			WaterLevel:       0,
			WaterSize:        500,
			SkyRotationSpeed: 0.1,
			SunDistance:      10000,
			SunSize:          2000,
		},
		Game: GameConfig{
			FishCount:         10,
			PlacementAttempts: 1000,
		},
		Water: WaterConfig{
			Distortion:  0.63,
			BumpMapping: true,
			DisplayMode: "regular",
		},
		Controls: ControlsConfig{
			Forward:      "W",
			TurnLeft:     "A",
			TurnRight:    "D",
			Quit:         "Q",
			Reset:        "R",
			ToggleView:   "V",
			ToggleBounds: "B",
			ToggleInfo:   "I",
			WaterMode:    "M",
			BumpMapping:  "N",
			FasterTime:   "=",
			SlowerTime:   "-",
			Mute:         "K",
			Screenshot:   "F12",
		},
		Data: DataConfig{
			AssetDir:      ".",
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

var (
	// ErrInvalid is wrapped by every validation failure.
	ErrInvalid = errors.New("invalid config")

	logLevels    = []string{"debug", "info", "warn", "error"}
	displayModes = []string{"regular", "reflection", "refraction", "bump_map"}
)

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	g := c.Graphics
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, g.Width, g.Height)
	case g.FOV <= 0 || g.FOV >= 180:
		return fmt.Errorf("%w: fov %v", ErrInvalid, g.FOV)
	case g.Near <= 0 || g.Far <= g.Near:
		return fmt.Errorf("%w: clip range %v..%v", ErrInvalid, g.Near, g.Far)
	case c.World.TerrainExtent <= 0 || c.World.WaterSize <= 0:
		return fmt.Errorf("%w: terrain extent %v, water size %v", ErrInvalid, c.World.TerrainExtent, c.World.WaterSize)
	case c.World.SkyRotationSpeed < 0:
		return fmt.Errorf("%w: sky rotation speed %v", ErrInvalid, c.World.SkyRotationSpeed)
	case c.Game.FishCount < 0:
		return fmt.Errorf("%w: fish count %d", ErrInvalid, c.Game.FishCount)
	case c.Game.PlacementAttempts < 1:
		return fmt.Errorf("%w: placement attempts %d", ErrInvalid, c.Game.PlacementAttempts)
	case !slices.Contains(displayModes, c.Water.DisplayMode):
		return fmt.Errorf("%w: water display mode %q", ErrInvalid, c.Water.DisplayMode)
	case !slices.Contains(logLevels, c.Logging.Level):
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Logging.Level)
	}

	seen := make(map[string]string)
	for _, b := range c.Controls.Bindings() {
		if b.Key == "" {
			return fmt.Errorf("%w: no key bound to %s", ErrInvalid, b.Action)
		}
		if prev, ok := seen[b.Key]; ok {
			return fmt.Errorf("%w: key %q bound to both %s and %s", ErrInvalid, b.Key, prev, b.Action)
		}
		seen[b.Key] = b.Action
	}
	return nil
}
