package roam

import "github.com/Faultbox/roam-terrain/pkg/math"

// MinTessellateExtent stops tessellation once the hypotenuse spans fewer
// samples on both axes.
const MinTessellateExtent = 3

// tessellator carries the per-tree inputs of one tessellation pass. All
// coordinates are world sample coordinates.
type tessellator struct {
	pool      *Pool
	variance  *VarianceTree
	view      math.Vec2
	scale     float32 // mapSize * 2
	threshold float32
}

// score approximates the screen-space error of stopping at node.
func (t *tessellator) score(cx, cy, node int) float32 {
	// Unbiased so flat ground scores 0 and stays at two triangles per patch.
	roughness := float32(t.variance[node]) - VarianceBias
	distance := 1 + t.view.Distance(math.Vec2{X: float32(cx), Y: float32(cy)})
	return roughness * t.scale / distance
}

func (t *tessellator) tessellate(id NodeID, lx, ly, rx, ry, ax, ay, node int) {
	cx := (lx + rx) >> 1
	cy := (ly + ry) >> 1

	if node < VarianceSize && t.score(cx, cy, node) <= t.threshold {
		return
	}

	t.pool.Split(id)

	tri := t.pool.Node(id)
	if tri.LeftChild == NoNode {
		return
	}
	if abs(lx-rx) >= MinTessellateExtent || abs(ly-ry) >= MinTessellateExtent {
		t.tessellate(tri.LeftChild, ax, ay, lx, ly, cx, cy, node<<1)
		t.tessellate(tri.RightChild, rx, ry, ax, ay, cx, cy, 1+(node<<1))
	}
}
