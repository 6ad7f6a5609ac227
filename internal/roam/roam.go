// Package roam implements ROAM (Real-time Optimally Adapting Mesh) terrain
// tessellation: per-patch binary triangle trees, a diamond-preserving split
// operator, precomputed variance, view-dependent refinement and a feedback
// loop that steers the split threshold toward a triangle budget.
package roam

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/roam-terrain/internal/logger"
	"github.com/Faultbox/roam-terrain/pkg/math"
)

// Configuration errors.
var (
	ErrNilHeightField    = errors.New("roam: nil heightfield")
	ErrBadPatchGrid      = errors.New("roam: map size is not divisible into patches")
	ErrPoolTooSmall      = errors.New("roam: triangle pool too small")
	ErrBudgetExceedsPool = errors.New("roam: desired triangles exceed pool capacity")
	ErrBadBudget         = errors.New("roam: desired triangles must be positive")
)

// HeightField supplies elevations. At must accept y in [-1, Size()] and x in
// [0, Size()].
type HeightField interface {
	Size() int
	At(x, y int) uint8
}

// TriangleSink receives leaf triangles. Vertices are (x, elevation, y) and
// arrive in winding order.
type TriangleSink interface {
	Triangle(left, right, apex math.Vec3)
}

// View is the camera state the engine consumes. ClipAngle is the compass
// heading in degrees and FovX the horizontal field of view in degrees.
type View struct {
	Position  math.Vec3
	ClipAngle float32
	FovX      float32
}

// Options configures an Engine.
type Options struct {
	PatchesPerSide  int
	PoolSize        int
	DesiredTris     int
	InitialVariance float32
	Cull            bool
}

// DefaultOptions returns the stock budget: 16x16 patches, a 25000 node pool
// aiming for 10000 nodes per frame.
func DefaultOptions() Options {
	return Options{
		PatchesPerSide:  16,
		PoolSize:        DefaultPoolSize,
		DesiredTris:     DefaultDesiredTris,
		InitialVariance: DefaultInitialVariance,
		Cull:            true,
	}
}

// Engine owns a landscape and the frame state that persists between draws.
type Engine struct {
	land  *Landscape
	frame Frame
}

// New validates opts and builds the landscape over hf.
func New(hf HeightField, opts Options) (*Engine, error) {
	log := logger.Named("roam")

	if opts.PoolSize < MinPoolSize {
		err := fmt.Errorf("%w: %d < %d", ErrPoolTooSmall, opts.PoolSize, MinPoolSize)
		log.Error("invalid configuration", zap.Error(err))
		return nil, err
	}
	if opts.DesiredTris < 1 {
		err := fmt.Errorf("%w: got %d", ErrBadBudget, opts.DesiredTris)
		log.Error("invalid configuration", zap.Error(err))
		return nil, err
	}
	if opts.DesiredTris > opts.PoolSize {
		err := fmt.Errorf("%w: %d > %d", ErrBudgetExceedsPool, opts.DesiredTris, opts.PoolSize)
		log.Error("invalid configuration", zap.Error(err))
		return nil, err
	}

	land, err := NewLandscape(hf, opts.PatchesPerSide, opts.PoolSize)
	if err != nil {
		log.Error("invalid configuration", zap.Error(err))
		return nil, err
	}

	return &Engine{
		land: land,
		frame: Frame{
			View:        View{FovX: 90},
			Variance:    opts.InitialVariance,
			DesiredTris: opts.DesiredTris,
			Cull:        opts.Cull,
		},
	}, nil
}

// Draw runs one frame: Reset, Tessellate, Render. It returns the number of
// triangles sent to sink.
func (e *Engine) Draw(view View, sink TriangleSink) int {
	f := &e.frame
	f.Number++
	f.View = view

	e.land.Reset(f)
	e.land.Tessellate(f)
	return e.land.Render(f, sink)
}

// IncreaseDetail raises the triangle budget one step, never past the pool.
func (e *Engine) IncreaseDetail() {
	e.frame.IncreaseDetail()
	e.frame.DesiredTris = min(e.frame.DesiredTris, e.land.pool.Capacity())
}

// DecreaseDetail lowers the triangle budget one step. The step floor can sit
// above a small pool, so the pool cap applies here too.
func (e *Engine) DecreaseDetail() {
	e.frame.DecreaseDetail()
	e.frame.DesiredTris = min(e.frame.DesiredTris, e.land.pool.Capacity())
}

// Frame returns the persistent frame state. Callers may toggle Cull or
// inspect the last frame's counters.
func (e *Engine) Frame() *Frame {
	return &e.frame
}

// Landscape returns the patch grid.
func (e *Engine) Landscape() *Landscape {
	return e.land
}
