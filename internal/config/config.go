// Package config handles viewer and terrain configuration loading.
package config

import (
	"errors"
	"fmt"
)

// Config holds all settings.
type Config struct {
	Terrain  TerrainConfig  `yaml:"terrain"`
	Roam     RoamConfig     `yaml:"roam"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TerrainConfig describes the heightfield and its patch grid.
type TerrainConfig struct {
	MapSize        int     `yaml:"map_size"`         // Samples per side, power of two
	PatchesPerSide int     `yaml:"patches_per_side"` // Patch grid is PatchesPerSide^2
	Heightmap      string  `yaml:"heightmap"`        // Empty: search Height<size>.raw, then Map.ved
	HeightScale    float32 `yaml:"height_scale"`     // World units per height unit
}

// PatchSize returns the side length of one patch in samples.
func (t TerrainConfig) PatchSize() int {
	if t.PatchesPerSide == 0 {
		return 0
	}
	return t.MapSize / t.PatchesPerSide
}

// RoamConfig holds the tessellation budget.
type RoamConfig struct {
	PoolSize        int     `yaml:"pool_size"`        // Triangle tree nodes available per frame
	DesiredTris     int     `yaml:"desired_tris"`     // Target tree node usage per frame
	InitialVariance float32 `yaml:"initial_variance"` // Starting threshold, adjusted every frame
	Cull            bool    `yaml:"cull"`             // Skip patches outside the view wedge
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FovX       float32 `yaml:"fov_x"`
	NearClip   float32 `yaml:"near_clip"`
	FarClip    float32 `yaml:"far_clip"`
	DrawMode   string  `yaml:"draw_mode"` // texture, lighting, fill, wireframe
}

// CameraConfig holds the initial camera state.
type CameraConfig struct {
	Mode    string  `yaml:"mode"` // follow, observe, drive, fly
	Speed   float32 `yaml:"speed"`
	Animate bool    `yaml:"animate"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Validation errors.
var (
	ErrMapSize      = errors.New("map_size must be a power of two >= 16")
	ErrPatchGrid    = errors.New("patches_per_side must divide map_size into patches of at least 8 samples")
	ErrPoolTooSmall = errors.New("pool_size must be at least 100")
	ErrBudget       = errors.New("desired_tris must not exceed pool_size")
	ErrBadBudget    = errors.New("desired_tris must be at least 1")
	ErrDrawMode     = errors.New("unknown draw_mode")
	ErrCameraMode   = errors.New("unknown camera mode")
)

// Default returns a Config matching the classic 1024x1024 demo setup.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			MapSize:        1024,
			PatchesPerSide: 16,
			Heightmap:      "",
			HeightScale:    0.5,
		},
		Roam: RoamConfig{
			PoolSize:        25000,
			DesiredTris:     10000,
			InitialVariance: 50,
			Cull:            true,
		},
		Graphics: GraphicsConfig{
			Width:      640,
			Height:     480,
			Fullscreen: false,
			VSync:      true,
			FovX:       90,
			NearClip:   1,
			FarClip:    2500,
			DrawMode:   "texture",
		},
		Camera: CameraConfig{
			Mode:    "observe",
			Speed:   5,
			Animate: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that makes the terrain budget
// unsatisfiable or the patch grid inconsistent.
func (c *Config) Validate() error {
	t := c.Terrain
	if t.MapSize < 16 || t.MapSize&(t.MapSize-1) != 0 {
		return fmt.Errorf("%w: got %d", ErrMapSize, t.MapSize)
	}
	if t.PatchesPerSide <= 0 || t.MapSize%t.PatchesPerSide != 0 || t.PatchSize() < 8 {
		return fmt.Errorf("%w: %d patches over %d samples", ErrPatchGrid, t.PatchesPerSide, t.MapSize)
	}
	if c.Roam.PoolSize < 100 {
		return fmt.Errorf("%w: got %d", ErrPoolTooSmall, c.Roam.PoolSize)
	}
	if c.Roam.DesiredTris < 1 {
		return fmt.Errorf("%w: got %d", ErrBadBudget, c.Roam.DesiredTris)
	}
	if c.Roam.DesiredTris > c.Roam.PoolSize {
		return fmt.Errorf("%w: %d > %d", ErrBudget, c.Roam.DesiredTris, c.Roam.PoolSize)
	}
	switch c.Graphics.DrawMode {
	case "texture", "lighting", "fill", "wireframe":
	default:
		return fmt.Errorf("%w: %q", ErrDrawMode, c.Graphics.DrawMode)
	}
	switch c.Camera.Mode {
	case "follow", "observe", "drive", "fly":
	default:
		return fmt.Errorf("%w: %q", ErrCameraMode, c.Camera.Mode)
	}
	return nil
}
