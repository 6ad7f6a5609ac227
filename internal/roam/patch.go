package roam

import "github.com/Faultbox/roam-terrain/pkg/math"

// Tree selects one of a patch's two base triangles.
type Tree int

const (
	// LeftTree has its right angle at the patch's (0, 0) corner.
	LeftTree Tree = iota
	// RightTree has its right angle at the patch's (size, size) corner.
	RightTree
)

// Patch is one square cell of the landscape, covered by two base triangles
// that share the patch diagonal.
type Patch struct {
	worldX int
	worldY int
	size   int

	baseLeft  NodeID
	baseRight NodeID

	varianceLeft  VarianceTree
	varianceRight VarianceTree

	dirty   bool
	visible bool
}

// WorldX returns the patch's first sample column.
func (p *Patch) WorldX() int { return p.worldX }

// WorldY returns the patch's first sample row.
func (p *Patch) WorldY() int { return p.worldY }

// BaseLeft returns the left base triangle.
func (p *Patch) BaseLeft() NodeID { return p.baseLeft }

// BaseRight returns the right base triangle.
func (p *Patch) BaseRight() NodeID { return p.baseRight }

// Visible reports the result of the last visibility test.
func (p *Patch) Visible() bool { return p.visible }

// Dirty reports whether the variance trees are stale.
func (p *Patch) Dirty() bool { return p.dirty }

// MarkDirty schedules a variance recompute at the next Reset.
func (p *Patch) MarkDirty() { p.dirty = true }

// Variance returns the stored variance of node in the given tree. Nodes
// outside the scored depth read as zero.
func (p *Patch) Variance(tree Tree, node int) uint8 {
	if node <= 0 || node >= VarianceSize {
		return 0
	}
	if tree == RightTree {
		return p.varianceRight[node]
	}
	return p.varianceLeft[node]
}

// Reset drops both trees and pairs the base triangles with each other.
// Cross-patch links are cleared; the landscape rewires them.
func (p *Patch) Reset(pool *Pool) {
	left := pool.Node(p.baseLeft)
	right := pool.Node(p.baseRight)
	left.clear()
	right.clear()
	left.BaseNeighbor = p.baseRight
	right.BaseNeighbor = p.baseLeft
}

// ComputeVariance rebuilds both variance trees and clears the dirty flag.
func (p *Patch) ComputeVariance(hf HeightField) {
	n := p.size
	b := varianceBuilder{hf: hf, originX: p.worldX, originY: p.worldY}

	b.tree = &p.varianceLeft
	b.compute(0, n, b.height(0, n), n, 0, b.height(n, 0), 0, 0, b.height(0, 0), 1)

	b.tree = &p.varianceRight
	b.compute(n, 0, b.height(n, 0), 0, n, b.height(0, n), n, n, b.height(n, n), 1)

	p.dirty = false
}

// Tessellate splits both base trees until every triangle's score drops to the
// threshold, the pool runs dry, or the minimum extent is reached.
func (p *Patch) Tessellate(pool *Pool, view math.Vec3, threshold float32, mapSize int) {
	x, y, n := p.worldX, p.worldY, p.size
	t := tessellator{
		pool:      pool,
		view:      view.XZ(),
		scale:     float32(mapSize * 2),
		threshold: threshold,
	}

	t.variance = &p.varianceLeft
	t.tessellate(p.baseLeft, x, y+n, x+n, y, x, y, 1)

	t.variance = &p.varianceRight
	t.tessellate(p.baseRight, x+n, y, x, y+n, x+n, y+n, 1)
}

// Render emits every leaf of both trees to sink and returns how many it sent.
func (p *Patch) Render(pool *Pool, hf HeightField, sink TriangleSink) int {
	x, y, n := p.worldX, p.worldY, p.size
	r := renderer{pool: pool, hf: hf, sink: sink}
	r.render(p.baseLeft, x, y+n, x+n, y, x, y)
	r.render(p.baseRight, x+n, y, x, y+n, x+n, y+n)
	return r.count
}

type renderer struct {
	pool  *Pool
	hf    HeightField
	sink  TriangleSink
	count int
}

func (r *renderer) render(id NodeID, lx, ly, rx, ry, ax, ay int) {
	tri := r.pool.Node(id)
	if tri.LeftChild != NoNode {
		cx := (lx + rx) >> 1
		cy := (ly + ry) >> 1
		r.render(tri.LeftChild, ax, ay, lx, ly, cx, cy)
		r.render(tri.RightChild, rx, ry, ax, ay, cx, cy)
		return
	}

	r.count++
	if r.sink != nil {
		r.sink.Triangle(r.vertex(lx, ly), r.vertex(rx, ry), r.vertex(ax, ay))
	}
}

func (r *renderer) vertex(x, y int) math.Vec3 {
	return math.Vec3{X: float32(x), Y: float32(r.hf.At(x, y)), Z: float32(y)}
}
