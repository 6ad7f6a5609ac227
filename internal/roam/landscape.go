package roam

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/roam-terrain/internal/logger"
)

// Landscape splits a heightfield into a square grid of patches and drives
// their per-frame tessellation from a shared node pool.
type Landscape struct {
	hf        HeightField
	mapSize   int
	patchSize int
	perSide   int

	patches []Patch // row-major
	pool    *Pool
}

// NewLandscape builds the patch grid and computes every patch's variance.
func NewLandscape(hf HeightField, patchesPerSide, poolSize int) (*Landscape, error) {
	if hf == nil {
		return nil, ErrNilHeightField
	}
	mapSize := hf.Size()
	if patchesPerSide <= 0 || mapSize%patchesPerSide != 0 || mapSize/patchesPerSide < 2 {
		return nil, fmt.Errorf("%w: %d patches per side over %d samples", ErrBadPatchGrid, patchesPerSide, mapSize)
	}
	if poolSize < MinPoolSize {
		return nil, fmt.Errorf("%w: %d < %d", ErrPoolTooSmall, poolSize, MinPoolSize)
	}

	count := patchesPerSide * patchesPerSide
	l := &Landscape{
		hf:        hf,
		mapSize:   mapSize,
		patchSize: mapSize / patchesPerSide,
		perSide:   patchesPerSide,
		patches:   make([]Patch, count),
		pool:      NewPool(2*count, poolSize),
	}

	for y := range patchesPerSide {
		for x := range patchesPerSide {
			i := y*patchesPerSide + x
			p := &l.patches[i]
			p.worldX = x * l.patchSize
			p.worldY = y * l.patchSize
			p.size = l.patchSize
			p.baseLeft = l.pool.Reserved(2 * i)
			p.baseRight = l.pool.Reserved(2*i + 1)
			p.visible = true
			p.Reset(l.pool)
			p.ComputeVariance(hf)
		}
	}

	logger.Named("roam").Info("landscape initialized",
		zap.Int("map_size", mapSize),
		zap.Int("patch_size", l.patchSize),
		zap.Int("patches", count),
		zap.Int("pool_size", poolSize))

	return l, nil
}

// MapSize returns the heightfield side length.
func (l *Landscape) MapSize() int { return l.mapSize }

// PatchSize returns the side length of one patch in samples.
func (l *Landscape) PatchSize() int { return l.patchSize }

// PatchesPerSide returns the grid dimension.
func (l *Landscape) PatchesPerSide() int { return l.perSide }

// Pool returns the node arena shared by all patches.
func (l *Landscape) Pool() *Pool { return l.pool }

// HeightField returns the elevation source.
func (l *Landscape) HeightField() HeightField { return l.hf }

// Patch returns the patch at grid position (x, y), or nil when out of range.
func (l *Landscape) Patch(x, y int) *Patch {
	if x < 0 || y < 0 || x >= l.perSide || y >= l.perSide {
		return nil
	}
	return &l.patches[y*l.perSide+x]
}

// MarkDirty flags every patch that reads a sample inside the w*h region at
// (x, y). Variance is recomputed at the next Reset.
func (l *Landscape) MarkDirty(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	x1, y1 := x+w-1, y+h-1
	last := l.perSide - 1

	for py := range l.perSide {
		for px := range l.perSide {
			p := &l.patches[py*l.perSide+px]
			// A patch reads samples [world, world+size] on each axis. The
			// far edge of the last row and column wraps to sample 0.
			hitX := (x <= p.worldX+l.patchSize && x1 >= p.worldX) || (px == last && x <= 0 && x1 >= 0)
			hitY := (y <= p.worldY+l.patchSize && y1 >= p.worldY) || (py == last && y <= 0 && y1 >= 0)
			if hitX && hitY {
				p.MarkDirty()
			}
		}
	}
}

// Reset rewinds the pool, relinks the patch grid, runs the visibility test
// and recomputes variance for dirty patches.
func (l *Landscape) Reset(f *Frame) {
	l.pool.ResetAll()

	wedge := CullWedge(f.View, l.patchSize)
	visible, recomputed := 0, 0

	for y := range l.perSide {
		for x := range l.perSide {
			p := &l.patches[y*l.perSide+x]
			p.Reset(l.pool)

			if f.Cull {
				p.SetVisibility(wedge)
			} else {
				p.visible = true
			}
			if p.visible {
				visible++
			}

			if p.dirty {
				p.ComputeVariance(l.hf)
				recomputed++
			}

			left := l.pool.Node(p.baseLeft)
			right := l.pool.Node(p.baseRight)
			if x > 0 {
				left.LeftNeighbor = l.patches[y*l.perSide+x-1].baseRight
			}
			if x < l.perSide-1 {
				right.LeftNeighbor = l.patches[y*l.perSide+x+1].baseLeft
			}
			if y > 0 {
				left.RightNeighbor = l.patches[(y-1)*l.perSide+x].baseRight
			}
			if y < l.perSide-1 {
				right.RightNeighbor = l.patches[(y+1)*l.perSide+x].baseLeft
			}
		}
	}

	f.VisiblePatches = visible
	f.Exhausted = false
	if recomputed > 0 {
		logger.Named("roam").Debug("variance recomputed", zap.Int("patches", recomputed))
	}
}

// Tessellate refines every visible patch against the frame's view and
// threshold.
func (l *Landscape) Tessellate(f *Frame) {
	for i := range l.patches {
		p := &l.patches[i]
		if p.visible {
			p.Tessellate(l.pool, f.View.Position, f.Variance, l.mapSize)
		}
	}
}

// Render emits the leaves of every visible patch, records the frame counters
// and feeds the pool usage back into the threshold. It returns the number of
// triangles emitted. sink may be nil to only count.
func (l *Landscape) Render(f *Frame, sink TriangleSink) int {
	n := 0
	for i := range l.patches {
		p := &l.patches[i]
		if p.visible {
			n += p.Render(l.pool, l.hf, sink)
		}
	}

	f.TrianglesRendered = n
	f.NodesAllocated = l.pool.Allocated()
	f.Exhausted = l.pool.Refused() > 0
	if f.Exhausted {
		logger.Named("roam").Debug("triangle pool exhausted",
			zap.Uint64("frame", f.Number),
			zap.Int("capacity", l.pool.Capacity()))
	}

	f.Variance = AdjustVariance(f.Variance, f.NodesAllocated, f.DesiredTris)
	return n
}
