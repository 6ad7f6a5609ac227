package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Terrain.MapSize != 1024 {
		t.Errorf("expected map size 1024, got %d", cfg.Terrain.MapSize)
	}
	if cfg.Terrain.PatchSize() != 64 {
		t.Errorf("expected patch size 64, got %d", cfg.Terrain.PatchSize())
	}
	if cfg.Roam.PoolSize != 25000 {
		t.Errorf("expected pool size 25000, got %d", cfg.Roam.PoolSize)
	}
	if cfg.Roam.DesiredTris != 10000 {
		t.Errorf("expected desired tris 10000, got %d", cfg.Roam.DesiredTris)
	}
	if cfg.Roam.InitialVariance != 50 {
		t.Errorf("expected initial variance 50, got %f", cfg.Roam.InitialVariance)
	}
	if !cfg.Roam.Cull {
		t.Error("expected culling to be enabled by default")
	}
	if cfg.Graphics.FovX != 90 {
		t.Errorf("expected fov 90, got %f", cfg.Graphics.FovX)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"map size not power of two", func(c *Config) { c.Terrain.MapSize = 1000 }, ErrMapSize},
		{"map size too small", func(c *Config) { c.Terrain.MapSize = 8 }, ErrMapSize},
		{"patch grid does not divide", func(c *Config) { c.Terrain.PatchesPerSide = 3 }, ErrPatchGrid},
		{"patch too small", func(c *Config) { c.Terrain.PatchesPerSide = 256 }, ErrPatchGrid},
		{"pool too small", func(c *Config) { c.Roam.PoolSize = 50; c.Roam.DesiredTris = 10 }, ErrPoolTooSmall},
		{"budget exceeds pool", func(c *Config) { c.Roam.DesiredTris = 30000 }, ErrBudget},
		{"zero budget", func(c *Config) { c.Roam.DesiredTris = 0 }, ErrBadBudget},
		{"negative budget", func(c *Config) { c.Roam.DesiredTris = -500 }, ErrBadBudget},
		{"bad draw mode", func(c *Config) { c.Graphics.DrawMode = "points" }, ErrDrawMode},
		{"bad camera mode", func(c *Config) { c.Camera.Mode = "orbit" }, ErrCameraMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "roam.yaml")

	yamlContent := `
terrain:
  map_size: 512
  patches_per_side: 8
  heightmap: "Height512.raw"
  height_scale: 1.0

roam:
  pool_size: 12000
  desired_tris: 6000
  initial_variance: 30
  cull: false

graphics:
  width: 1280
  height: 720
  draw_mode: wireframe

camera:
  mode: fly
  speed: 2.5

logging:
  level: "debug"
  log_file: "roam.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Terrain.MapSize != 512 || cfg.Terrain.PatchesPerSide != 8 {
		t.Errorf("expected 512 map with 8 patches, got %d/%d", cfg.Terrain.MapSize, cfg.Terrain.PatchesPerSide)
	}
	if cfg.Terrain.Heightmap != "Height512.raw" {
		t.Errorf("expected heightmap Height512.raw, got %s", cfg.Terrain.Heightmap)
	}
	if cfg.Roam.PoolSize != 12000 || cfg.Roam.DesiredTris != 6000 {
		t.Errorf("expected pool 12000 / desired 6000, got %d / %d", cfg.Roam.PoolSize, cfg.Roam.DesiredTris)
	}
	if cfg.Roam.Cull {
		t.Error("expected cull to be false")
	}
	if cfg.Graphics.DrawMode != "wireframe" {
		t.Errorf("expected draw mode wireframe, got %s", cfg.Graphics.DrawMode)
	}
	// Untouched keys keep their defaults
	if cfg.Graphics.FovX != 90 {
		t.Errorf("expected default fov 90, got %f", cfg.Graphics.FovX)
	}
	if cfg.Camera.Mode != "fly" || cfg.Camera.Speed != 2.5 {
		t.Errorf("expected fly camera at 2.5, got %s at %f", cfg.Camera.Mode, cfg.Camera.Speed)
	}
	if cfg.Logging.LogFile != "roam.log" {
		t.Errorf("expected log file 'roam.log', got %s", cfg.Logging.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
terrain:
  map_size: not a number
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
	if err := loadFromFile(cfg, "/nonexistent/path/roam.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
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

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "roam.yaml")

	cfg := Default()
	cfg.Roam.DesiredTris = 4500
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Roam.DesiredTris != 4500 {
		t.Errorf("expected desired tris 4500 after reload, got %d", loaded.Roam.DesiredTris)
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
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "map size keeps patch size",
			setup: func() { *flagMapSize = 512 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.MapSize != 512 {
					t.Errorf("expected map size 512, got %d", cfg.Terrain.MapSize)
				}
				if cfg.Terrain.PatchSize() != 64 {
					t.Errorf("expected patch size to stay 64, got %d", cfg.Terrain.PatchSize())
				}
			},
			teardown: func() { *flagMapSize = 0 },
		},
		{
			name:  "no-cull flag",
			setup: func() { *flagNoCull = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Roam.Cull {
					t.Error("expected culling disabled with no-cull flag")
				}
			},
			teardown: func() { *flagNoCull = false },
		},
		{
			name:  "desired tris and heightmap",
			setup: func() { *flagDesiredTris = 8000; *flagHeightmap = "terrain.png" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Roam.DesiredTris != 8000 {
					t.Errorf("expected desired tris 8000, got %d", cfg.Roam.DesiredTris)
				}
				if cfg.Terrain.Heightmap != "terrain.png" {
					t.Errorf("expected heightmap terrain.png, got %s", cfg.Terrain.Heightmap)
				}
			},
			teardown: func() { *flagDesiredTris = 0; *flagHeightmap = "" },
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
			name:  "width and height flags",
			setup: func() { *flagWidth = 1920; *flagHeight = 1080 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
					t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() { *flagWidth = 0; *flagHeight = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "roam.yaml")

	yamlContent := `
roam:
  desired_tris: 7000
  pool_size: 20000
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagDesiredTris = 9000
	defer func() {
		*flagConfig = ""
		*flagDesiredTris = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Flag beats file
	if cfg.Roam.DesiredTris != 9000 {
		t.Errorf("expected desired tris 9000 from flag, got %d", cfg.Roam.DesiredTris)
	}
	// File beats default
	if cfg.Roam.PoolSize != 20000 {
		t.Errorf("expected pool size 20000 from file, got %d", cfg.Roam.PoolSize)
	}
}

func TestLoadRejectsInvalidBudget(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "roam.yaml")
	if err := os.WriteFile(configPath, []byte("roam:\n  pool_size: 5000\n  desired_tris: 6000\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrBudget) {
		t.Errorf("Load() error = %v, want %v", err, ErrBudget)
	}
}
