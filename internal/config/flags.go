package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagHeightmap   = flag.String("heightmap", "", "Heightmap file (.raw, .ved, .png, .bmp, .tiff)")
	flagMapSize     = flag.Int("map-size", 0, "Heightmap size in samples per side")
	flagDesiredTris = flag.Int("desired-tris", 0, "Target triangle tree nodes per frame")
	flagNoCull      = flag.Bool("no-cull", false, "Disable patch visibility culling")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagHeightmap != "" {
		cfg.Terrain.Heightmap = *flagHeightmap
	}
	if *flagMapSize > 0 {
		// Keep the patch size when only the map size changes.
		patch := cfg.Terrain.PatchSize()
		cfg.Terrain.MapSize = *flagMapSize
		if patch > 0 && *flagMapSize%patch == 0 {
			cfg.Terrain.PatchesPerSide = *flagMapSize / patch
		}
	}
	if *flagDesiredTris > 0 {
		cfg.Roam.DesiredTris = *flagDesiredTris
	}
	if *flagNoCull {
		cfg.Roam.Cull = false
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
