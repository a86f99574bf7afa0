package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.FOV != 45 {
		t.Errorf("expected fov 45, got %v", cfg.Graphics.FOV)
	}

	if cfg.Audio.MasterVolume != 0.8 {
		t.Errorf("expected master volume 0.8, got %f", cfg.Audio.MasterVolume)
	}

	if cfg.World.TerrainOffset != [3]float32{-1000, 5.2, -1000} {
		t.Errorf("unexpected terrain offset %v", cfg.World.TerrainOffset)
	}
	if cfg.World.WaterSize != 500 {
		t.Errorf("expected water size 500, got %v", cfg.World.WaterSize)
	}

	if cfg.Game.FishCount != 10 {
		t.Errorf("expected 10 fish, got %d", cfg.Game.FishCount)
	}
	if cfg.Game.PlacementAttempts != 1000 {
		t.Errorf("expected 1000 placement attempts, got %d", cfg.Game.PlacementAttempts)
	}

	if cfg.Water.Distortion != 0.63 || !cfg.Water.BumpMapping {
		t.Errorf("unexpected water defaults %+v", cfg.Water)
	}

	if cfg.Controls.Forward != "W" || cfg.Controls.Quit != "Q" {
		t.Errorf("unexpected controls %+v", cfg.Controls)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  fov: 60

audio:
  master_volume: 0.5
  muted: true

world:
  water_level: -2
  sky_rotation_speed: 5

game:
  fish_count: 3
  seed: 42
  first_person: true

water:
  distortion: 0.2
  bump_mapping: false
  display_mode: refraction

controls:
  forward: Up

data:
  asset_dir: /opt/driftline

logging:
  level: "debug"
  log_file: "game.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FOV != 60 {
		t.Errorf("expected fov 60, got %v", cfg.Graphics.FOV)
	}
	// Untouched keys keep their defaults.
	if cfg.Graphics.Far != 11000 {
		t.Errorf("expected default far plane, got %v", cfg.Graphics.Far)
	}

	if cfg.Audio.MasterVolume != 0.5 || !cfg.Audio.Muted {
		t.Errorf("unexpected audio %+v", cfg.Audio)
	}
	if cfg.World.WaterLevel != -2 || cfg.World.SkyRotationSpeed != 5 {
		t.Errorf("unexpected world %+v", cfg.World)
	}
	if cfg.Game.FishCount != 3 || cfg.Game.Seed != 42 || !cfg.Game.FirstPerson {
		t.Errorf("unexpected game %+v", cfg.Game)
	}
	if cfg.Water.DisplayMode != "refraction" || cfg.Water.BumpMapping {
		t.Errorf("unexpected water %+v", cfg.Water)
	}
	if cfg.Controls.Forward != "Up" || cfg.Controls.TurnLeft != "A" {
		t.Errorf("unexpected controls %+v", cfg.Controls)
	}
	if cfg.Data.AssetDir != "/opt/driftline" {
		t.Errorf("expected asset dir /opt/driftline, got %s", cfg.Data.AssetDir)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "game.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"negative height", func(c *Config) { c.Graphics.Height = -1 }},
		{"flat fov", func(c *Config) { c.Graphics.FOV = 180 }},
		{"far before near", func(c *Config) { c.Graphics.Far = 0.05 }},
		{"zero near", func(c *Config) { c.Graphics.Near = 0 }},
		{"no terrain", func(c *Config) { c.World.TerrainExtent = 0 }},
		{"no water", func(c *Config) { c.World.WaterSize = -5 }},
		{"time runs backwards", func(c *Config) { c.World.SkyRotationSpeed = -1 }},
		{"negative fish", func(c *Config) { c.Game.FishCount = -1 }},
		{"no placement attempts", func(c *Config) { c.Game.PlacementAttempts = 0 }},
		{"unknown water mode", func(c *Config) { c.Water.DisplayMode = "wireframe" }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"unbound action", func(c *Config) { c.Controls.Reset = "" }},
		{"duplicate key", func(c *Config) { c.Controls.Reset = "W" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestBindings(t *testing.T) {
	b := Default().Controls.Bindings()
	if len(b) != 14 {
		t.Fatalf("expected 14 bindings, got %d", len(b))
	}
	if b[0] != (Binding{"forward", "W"}) {
		t.Errorf("first binding = %+v", b[0])
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Game.FishCount = 4
	cfg.Water.DisplayMode = "bump_map"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Game.FishCount != 4 || loaded.Water.DisplayMode != "bump_map" {
		t.Errorf("round trip lost values: %+v %+v", loaded.Game, loaded.Water)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Game.ShowBounds {
					t.Error("expected bounding boxes with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "assets flag",
			setup: func() { *flagAssets = "/data" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Data.AssetDir != "/data" {
					t.Errorf("expected asset dir /data, got %s", cfg.Data.AssetDir)
				}
			},
			teardown: func() { *flagAssets = "" },
		},
		{
			name: "seed and fish flags",
			setup: func() {
				*flagSeed = 7
				*flagFish = 0
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Game.Seed != 7 {
					t.Errorf("expected seed 7, got %d", cfg.Game.Seed)
				}
				if cfg.Game.FishCount != 0 {
					t.Errorf("expected 0 fish, got %d", cfg.Game.FishCount)
				}
			},
			teardown: func() {
				*flagSeed = 0
				*flagFish = -1
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			if err := applyFlags(cfg); err != nil {
				t.Fatalf("applyFlags() error = %v", err)
			}

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width comes from the flag, height from the file.
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("game:\n  fish_count: -3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() = %v, want ErrInvalid", err)
	}
}

func TestApplyFlagsValidatesMergedConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		width   int
		wantErr bool
	}{
		{"defaults", func(*Config) {}, 0, false},
		{"bad value without flag", func(c *Config) { c.Graphics.FOV = 0 }, 0, true},
		{"flag repairs width", func(c *Config) { c.Graphics.Width = 0 }, 1024, false},
		{"flag leaves other errors", func(c *Config) { c.Graphics.Width, c.Game.FishCount = 0, -1 }, 1024, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			*flagWidth = tt.width
			defer func() { *flagWidth = 0 }()

			cfg := Default()
			tt.mutate(cfg)
			err := applyFlags(cfg)
			if tt.wantErr != errors.Is(err, ErrInvalid) {
				t.Errorf("applyFlags() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFlagRepairsFileValue(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1280
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Graphics.Width != 1280 {
		t.Errorf("width = %d, want 1280", cfg.Graphics.Width)
	}
}
