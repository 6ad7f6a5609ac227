// Package bench drives the terrain engine headlessly along the animated
// orbit and summarizes how well the budget controller tracks its target.
package bench

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/roam-terrain/internal/engine/camera"
	"github.com/Faultbox/roam-terrain/internal/engine/terrain"
	"github.com/Faultbox/roam-terrain/internal/logger"
	"github.com/Faultbox/roam-terrain/internal/roam"
)

// Convergence criteria: nodes allocated within Tolerance of the target for
// Window consecutive frames.
const (
	Tolerance = 0.10
	Window    = 5
)

// Sample is one frame's counters.
type Sample struct {
	Frame     uint64
	Triangles int
	Nodes     int
	Visible   int
	Variance  float32
	Exhausted bool
}

// Report summarizes a run.
type Report struct {
	Samples     []Sample
	DesiredTris int
	Elapsed     time.Duration

	// ConvergedAt is the first frame of the first in-band window, or -1.
	ConvergedAt     int
	ExhaustedFrames int
}

// Run draws frames while cam orbits, collecting leaf triangles into mesh.
// mesh holds the last frame's geometry when Run returns.
func Run(e *roam.Engine, cam *camera.TerrainCamera, frames int, mesh *terrain.MeshBuilder) *Report {
	log := logger.Named("bench")
	r := &Report{
		Samples:     make([]Sample, 0, frames),
		DesiredTris: e.Frame().DesiredTris,
	}

	start := time.Now()
	for range frames {
		cam.Update()
		mesh.Reset()
		e.Draw(cam.View(), mesh)

		f := e.Frame()
		s := Sample{
			Frame:     f.Number,
			Triangles: f.TrianglesRendered,
			Nodes:     f.NodesAllocated,
			Visible:   f.VisiblePatches,
			Variance:  f.Variance,
			Exhausted: f.Exhausted,
		}
		r.Samples = append(r.Samples, s)
		if s.Exhausted {
			r.ExhaustedFrames++
		}
		log.Debug("frame",
			zap.Uint64("frame", s.Frame),
			zap.Int("tris", s.Triangles),
			zap.Int("nodes", s.Nodes),
			zap.Int("visible", s.Visible),
			zap.Float32("variance", s.Variance))
	}
	r.Elapsed = time.Since(start)
	r.ConvergedAt = ConvergedAt(r.Samples, r.DesiredTris)
	return r
}

// ConvergedAt returns the index of the first sample that starts Window
// consecutive samples within Tolerance of desired, or -1.
func ConvergedAt(samples []Sample, desired int) int {
	lo := float64(desired) * (1 - Tolerance)
	hi := float64(desired) * (1 + Tolerance)

	run := 0
	for i, s := range samples {
		if n := float64(s.Nodes); n >= lo && n <= hi {
			run++
			if run == Window {
				return i - Window + 1
			}
		} else {
			run = 0
		}
	}
	return -1
}

// MeanNodes averages node usage over the last n samples.
func (r *Report) MeanNodes(n int) float64 {
	if n <= 0 || len(r.Samples) == 0 {
		return 0
	}
	n = min(n, len(r.Samples))
	sum := 0
	for _, s := range r.Samples[len(r.Samples)-n:] {
		sum += s.Nodes
	}
	return float64(sum) / float64(n)
}

// FramesPerSecond is the headless tessellation rate.
func (r *Report) FramesPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(len(r.Samples)) / r.Elapsed.Seconds()
}
