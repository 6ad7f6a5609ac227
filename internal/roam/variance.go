package roam

const (
	// VarianceDepth is the number of tree levels that carry a stored variance.
	VarianceDepth = 9
	// VarianceSize is the length of a variance array. Index 0 is unused and
	// the root lives at index 1.
	VarianceSize = 1 << VarianceDepth
	// VarianceBias is added to every stored variance so that zero means
	// "not scored".
	VarianceBias = 1
	// MinVarianceExtent stops variance recursion once the hypotenuse spans
	// fewer samples on both axes.
	MinVarianceExtent = 8

	maxRawVariance = 255 - VarianceBias
)

// VarianceTree holds the stored variance of one base tree.
type VarianceTree [VarianceSize]uint8

// varianceBuilder fills one VarianceTree from patch-local coordinates.
type varianceBuilder struct {
	hf      HeightField
	originX int
	originY int
	tree    *VarianceTree
}

func (b *varianceBuilder) height(x, y int) int {
	return int(b.hf.At(b.originX+x, b.originY+y))
}

// compute returns the raw variance of the subtree rooted at node: the larger
// of the node's own midpoint error and its children's.
func (b *varianceBuilder) compute(lx, ly, lz, rx, ry, rz, ax, ay, az, node int) int {
	cx := (lx + rx) >> 1
	cy := (ly + ry) >> 1
	cz := b.height(cx, cy)

	v := abs(cz - ((lz + rz) >> 1))

	if abs(lx-rx) >= MinVarianceExtent || abs(ly-ry) >= MinVarianceExtent {
		v = max(v, b.compute(ax, ay, az, lx, ly, lz, cx, cy, cz, node<<1))
		v = max(v, b.compute(rx, ry, rz, ax, ay, az, cx, cy, cz, 1+(node<<1)))
	}

	if node < VarianceSize {
		b.tree[node] = uint8(min(v, maxRawVariance) + VarianceBias)
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
