// roambench runs the terrain engine without a window: it benchmarks the
// tessellator along the animated orbit and generates or inspects heightmaps.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/roam-terrain/internal/bench"
	"github.com/Faultbox/roam-terrain/internal/config"
	"github.com/Faultbox/roam-terrain/internal/engine/camera"
	"github.com/Faultbox/roam-terrain/internal/engine/terrain"
	"github.com/Faultbox/roam-terrain/internal/logger"
	"github.com/Faultbox/roam-terrain/internal/roam"
	"github.com/Faultbox/roam-terrain/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		cmdRun(args)
	case "generate", "gen":
		cmdGenerate(args)
	case "info":
		cmdInfo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`roambench - headless ROAM terrain benchmark

Usage:
  roambench <command> [options]

Commands:
  run [options]                 Tessellate frames along the orbit, report budget tracking
  generate [options] <out>      Write a fractal heightmap (.png or .raw)
  info [options] <heightmap>    Show heightmap and patch variance statistics

Examples:
  roambench run -frames 600 -generate 7
  roambench run -heightmap Height1024.raw -obj last.obj
  roambench generate -size 512 -seed 3 -spikes 20 Height512.raw
  roambench info -size 512 Height512.raw`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func cmdRun(args []string) {
	cfg, err := config.Load()
	if err != nil {
		fail("%v", err)
	}

	fs := flag.NewFlagSet("run", flag.ExitOnError)
	frames := fs.Int("frames", 600, "Frames to tessellate")
	heightmap := fs.String("heightmap", cfg.Terrain.Heightmap, "Heightmap file (default: search Height<size>.raw, Map.ved)")
	size := fs.Int("size", cfg.Terrain.MapSize, "Map size in samples per side")
	patches := fs.Int("patches", cfg.Terrain.PatchesPerSide, "Patches per side")
	pool := fs.Int("pool", cfg.Roam.PoolSize, "Triangle pool size")
	desired := fs.Int("desired", cfg.Roam.DesiredTris, "Target pool usage per frame")
	variance := fs.Float64("variance", float64(cfg.Roam.InitialVariance), "Initial variance threshold")
	noCull := fs.Bool("no-cull", !cfg.Roam.Cull, "Disable visibility culling")
	generate := fs.Int64("generate", -1, "Generate a fractal map with this seed instead of loading")
	roughness := fs.Float64("roughness", 0.6, "Fractal roughness for -generate")
	objPath := fs.String("obj", "", "Write the last frame's mesh as Wavefront OBJ")
	debug := fs.Bool("debug", false, "Log every frame")
	fs.Parse(args)

	level := cfg.Logging.Level
	if *debug {
		level = "debug"
	}
	if err := logger.Init(level, cfg.Logging.LogFile); err != nil {
		fail("logger: %v", err)
	}
	defer logger.Sync()

	var hm *terrain.Heightmap
	if *generate >= 0 {
		hm = terrain.GenerateFractal(*size, *generate, *roughness)
	} else if hm, err = terrain.Open(*heightmap, *size); err != nil {
		fail("%v", err)
	}

	e, err := roam.New(hm, roam.Options{
		PatchesPerSide:  *patches,
		PoolSize:        *pool,
		DesiredTris:     *desired,
		InitialVariance: float32(*variance),
		Cull:            !*noCull,
	})
	if err != nil {
		fail("%v", err)
	}

	cam := camera.New(*size, hm, cfg.Terrain.HeightScale)
	cam.Mode = camera.FollowMode
	cam.FovX = cfg.Graphics.FovX
	mesh := terrain.NewMeshBuilder(cfg.Terrain.HeightScale, *desired)

	r := bench.Run(e, cam, *frames, mesh)

	tail := min(30, *frames)
	logger.Info("benchmark finished",
		zap.Int("frames", len(r.Samples)),
		zap.Duration("elapsed", r.Elapsed),
		zap.Float64("fps", r.FramesPerSecond()),
		zap.Int("desired", r.DesiredTris),
		zap.Float64("mean_nodes_tail", r.MeanNodes(tail)),
		zap.Int("converged_at", r.ConvergedAt),
		zap.Int("exhausted_frames", r.ExhaustedFrames),
		zap.Float32("variance", e.Frame().Variance))

	fmt.Printf("Frames:      %d (%.1f fps)\n", len(r.Samples), r.FramesPerSecond())
	fmt.Printf("Desired:     %d nodes\n", r.DesiredTris)
	fmt.Printf("Mean nodes:  %.0f (last %d frames)\n", r.MeanNodes(tail), tail)
	if r.ConvergedAt >= 0 {
		fmt.Printf("Converged:   frame %d\n", r.ConvergedAt+1)
	} else {
		fmt.Printf("Converged:   no (within %.0f%% for %d frames)\n", bench.Tolerance*100, bench.Window)
	}
	fmt.Printf("Exhausted:   %d frames\n", r.ExhaustedFrames)

	if *objPath != "" {
		if err := writeOBJ(*objPath, mesh); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Mesh:        %s (%d triangles)\n", *objPath, mesh.TriangleCount())
	}
}

func writeOBJ(path string, mesh *terrain.MeshBuilder) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := terrain.WriteOBJ(f, mesh.Vertices); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	size := fs.Int("size", 1024, "Map size in samples per side")
	seed := fs.Int64("seed", 1, "Random seed")
	roughness := fs.Float64("roughness", 0.6, "Fractal roughness (0..1)")
	spikes := fs.Int("spikes", 0, "Single-sample spikes to add")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: roambench generate [options] <out.png|out.raw>")
		os.Exit(1)
	}
	out := fs.Arg(0)

	hm := terrain.GenerateFractal(*size, *seed, *roughness)
	if *spikes > 0 {
		terrain.AddSpikes(hm, *spikes, 255, *seed)
	}

	f, err := os.Create(out)
	if err != nil {
		fail("%v", err)
	}
	switch strings.ToLower(filepath.Ext(out)) {
	case ".raw":
		_, err = f.Write(hm.Samples())
	case ".png":
		err = formats.EncodeHeightPNG(f, hm.Samples(), *size)
	default:
		err = fmt.Errorf("unsupported output format %q", filepath.Ext(out))
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(out)
		fail("%v", err)
	}

	fmt.Printf("Wrote %s (%dx%d)\n", out, *size, *size)
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	size := fs.Int("size", 1024, "Map size in samples per side")
	patches := fs.Int("patches", 16, "Patches per side")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: roambench info [options] <heightmap>")
		os.Exit(1)
	}

	hm, err := terrain.LoadHeightmap(fs.Arg(0), *size)
	if err != nil {
		fail("%v", err)
	}

	lo, hi, sum := 255, 0, 0
	for _, v := range hm.Samples() {
		lo = min(lo, int(v))
		hi = max(hi, int(v))
		sum += int(v)
	}

	land, err := roam.NewLandscape(hm, *patches, roam.MinPoolSize)
	if err != nil {
		fail("%v", err)
	}
	roughest, rx, ry := 0, 0, 0
	for y := range *patches {
		for x := range *patches {
			p := land.Patch(x, y)
			v := int(max(p.Variance(roam.LeftTree, 1), p.Variance(roam.RightTree, 1)))
			if v > roughest {
				roughest, rx, ry = v, x, y
			}
		}
	}

	fmt.Printf("Heightmap:   %s\n", fs.Arg(0))
	fmt.Printf("Size:        %dx%d\n", *size, *size)
	fmt.Printf("Elevation:   min %d, max %d, mean %.1f\n", lo, hi, float64(sum)/float64(*size**size))
	fmt.Printf("Patches:     %dx%d of %d samples\n", *patches, *patches, land.PatchSize())
	fmt.Printf("Roughest:    patch (%d,%d), root variance %d\n", rx, ry, roughest)
}
