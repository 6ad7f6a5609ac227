// Package app wires the terrain engine to the window, renderer and input and
// runs the viewer's frame loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/roam-terrain/internal/config"
	"github.com/Faultbox/roam-terrain/internal/engine/camera"
	"github.com/Faultbox/roam-terrain/internal/engine/debug"
	"github.com/Faultbox/roam-terrain/internal/engine/input"
	"github.com/Faultbox/roam-terrain/internal/engine/renderer"
	"github.com/Faultbox/roam-terrain/internal/engine/terrain"
	"github.com/Faultbox/roam-terrain/internal/engine/window"
	"github.com/Faultbox/roam-terrain/internal/logger"
	"github.com/Faultbox/roam-terrain/internal/roam"
)

const title = "ROAM Terrain"

// App is the interactive viewer.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	camera *camera.TerrainCamera
	engine *roam.Engine
	mesh   *terrain.MeshBuilder

	screenshots  *debug.Screenshot
	showFrustum  bool
	wantCapture  bool
	frames       int
	renderedTris int
}

// New loads the heightmap, builds the engine and opens the window.
func New(cfg *config.Config) (*App, error) {
	log := logger.Named("app")

	hm, err := terrain.Open(cfg.Terrain.Heightmap, cfg.Terrain.MapSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load heightmap: %w", err)
	}

	engine, err := roam.New(hm, roam.Options{
		PatchesPerSide:  cfg.Terrain.PatchesPerSide,
		PoolSize:        cfg.Roam.PoolSize,
		DesiredTris:     cfg.Roam.DesiredTris,
		InitialVariance: cfg.Roam.InitialVariance,
		Cull:            cfg.Roam.Cull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	mode, err := camera.ParseMode(cfg.Camera.Mode)
	if err != nil {
		return nil, err
	}
	drawMode, err := renderer.ParseDrawMode(cfg.Graphics.DrawMode)
	if err != nil {
		return nil, err
	}

	cam := camera.New(cfg.Terrain.MapSize, hm, cfg.Terrain.HeightScale)
	cam.Mode = mode
	cam.Speed = cfg.Camera.Speed
	cam.Animating = cfg.Camera.Animate
	cam.FovX = cfg.Graphics.FovX

	a := &App{
		cfg:         cfg,
		log:         log,
		input:       input.New(),
		camera:      cam,
		engine:      engine,
		mesh:        terrain.NewMeshBuilder(cfg.Terrain.HeightScale, cfg.Roam.DesiredTris),
		screenshots: debug.NewScreenshot("screenshots", "roam"),
	}

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := a.window.GetDrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:  width,
		Height: height,
		FovX:   cfg.Graphics.FovX,
		Near:   cfg.Graphics.NearClip,
		Far:    cfg.Graphics.FarClip,
		Mode:   drawMode,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	log.Info("viewer initialized",
		zap.Stringer("camera", mode),
		zap.Stringer("draw_mode", drawMode),
		zap.Int("desired_tris", cfg.Roam.DesiredTris))
	return a, nil
}

// Run executes the frame loop until the window closes or Esc is pressed.
func (a *App) Run() error {
	start := time.Now()
	fpsTimer := start
	fpsFrames := 0

	a.log.Info("starting frame loop")

	for {
		if a.input.Update() {
			break
		}

		for _, event := range a.input.Events() {
			if event.Type == input.EventWindowResize {
				a.renderer.Resize(a.window.GetDrawableSize())
			}
		}
		for _, action := range a.input.Actions() {
			a.handle(action)
		}
		if dx, dy := a.input.Drag(); dx != 0 || dy != 0 {
			a.camera.HandleDrag(float32(dx), float32(dy))
		}

		a.camera.Update()
		a.renderer.SetFovX(a.camera.FovX)

		if err := a.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		a.window.SwapBuffers()

		a.frames++
		fpsFrames++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(fpsFrames) / elapsed.Seconds()
			f := a.engine.Frame()
			a.window.SetTitle(fmt.Sprintf("%s - %.0f FPS - %d tris - variance %.1f",
				title, fps, f.TrianglesRendered, f.Variance))
			fpsFrames = 0
			fpsTimer = time.Now()
		}
	}

	if elapsed := time.Since(start).Seconds(); elapsed > 0 {
		a.log.Info("frame loop finished",
			zap.Int("frames", a.frames),
			zap.Float64("average_fps", float64(a.frames)/elapsed),
			zap.Float64("average_tris", float64(a.renderedTris)/float64(max(a.frames, 1))))
	}
	return nil
}

func (a *App) render() error {
	view := a.camera.View()

	a.mesh.Reset()
	a.renderedTris += a.engine.Draw(view, a.mesh)

	viewMatrix := a.camera.ViewMatrix()
	a.renderer.Begin()
	a.renderer.UploadTerrain(a.mesh.Vertices)
	a.renderer.DrawTerrain(viewMatrix)

	if a.showFrustum {
		land := a.engine.Landscape()
		lines := debug.FrustumLines(view, land.PatchSize())
		lines = append(lines, debug.PatchGridLines(land, view.Position.Y)...)
		lines = append(lines, debug.BoundsLines(a.mesh.Bounds)...)
		a.renderer.DrawLines(viewMatrix, lines)
	}
	a.renderer.End()

	if a.wantCapture {
		a.wantCapture = false
		pixels, w, h := a.renderer.ReadPixels()
		path, err := a.screenshots.Capture(pixels, w, h)
		if err != nil {
			return fmt.Errorf("screenshot: %w", err)
		}
		a.log.Info("screenshot saved", zap.String("path", path))
	}
	return nil
}

func (a *App) handle(action input.Action) {
	switch action {
	case input.ActionForward:
		a.camera.Forward()
	case input.ActionBackward:
		a.camera.Backward()
	case input.ActionLeft:
		a.camera.TurnLeft()
	case input.ActionRight:
		a.camera.TurnRight()
	case input.ActionUp:
		a.camera.Raise()
	case input.ActionDown:
		a.camera.Lower()
	case input.ActionToggleAnimation:
		a.camera.ToggleAnimation()
	case input.ActionCycleCamera:
		a.camera.CycleMode()
		a.log.Info("camera mode", zap.Stringer("mode", a.camera.Mode))
	case input.ActionCycleDrawMode:
		a.log.Info("draw mode", zap.Stringer("mode", a.renderer.CycleMode()))
	case input.ActionToggleFrustum:
		a.showFrustum = !a.showFrustum
	case input.ActionMoreDetail:
		a.engine.IncreaseDetail()
		a.log.Info("detail", zap.Int("desired_tris", a.engine.Frame().DesiredTris))
	case input.ActionLessDetail:
		a.engine.DecreaseDetail()
		a.log.Info("detail", zap.Int("desired_tris", a.engine.Frame().DesiredTris))
	case input.ActionNarrowFov:
		a.camera.NarrowFov()
	case input.ActionWidenFov:
		a.camera.WidenFov()
	case input.ActionToggleCull:
		f := a.engine.Frame()
		f.Cull = !f.Cull
		a.log.Info("visibility culling", zap.Bool("enabled", f.Cull))
	case input.ActionScreenshot:
		a.wantCapture = true
	}
}

// Close releases the renderer and window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
