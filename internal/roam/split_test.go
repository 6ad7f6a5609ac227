package roam

import (
	"slices"
	"testing"
)

// newDiamond returns a pool whose two reserved nodes form a lone diamond.
func newDiamond(capacity int) *Pool {
	p := NewPool(2, capacity)
	p.Node(0).BaseNeighbor = 1
	p.Node(1).BaseNeighbor = 0
	return p
}

func TestSplitDiamond(t *testing.T) {
	p := newDiamond(16)
	p.Split(0)

	a, b := p.Node(0), p.Node(1)
	if a.IsLeaf() || b.IsLeaf() {
		t.Fatal("both halves of the diamond must split")
	}
	if p.Allocated() != 4 {
		t.Fatalf("Allocated = %d, want 4", p.Allocated())
	}

	al, ar := p.Node(a.LeftChild), p.Node(a.RightChild)
	if al.LeftNeighbor != a.RightChild || ar.RightNeighbor != a.LeftChild {
		t.Error("siblings are not linked across the new edge")
	}
	if al.BaseNeighbor != NoNode || ar.BaseNeighbor != NoNode {
		t.Error("children of a border triangle must have no base neighbour")
	}
	if al.RightNeighbor != b.RightChild || ar.LeftNeighbor != b.LeftChild {
		t.Error("children not cross-linked with the partner's children")
	}

	bl, br := p.Node(b.LeftChild), p.Node(b.RightChild)
	if bl.RightNeighbor != a.RightChild || br.LeftNeighbor != a.LeftChild {
		t.Error("partner's children not cross-linked back")
	}
}

func TestSplitIsIdempotent(t *testing.T) {
	p := newDiamond(16)
	p.Split(0)

	before := slices.Clone(p.nodes)
	allocated := p.Allocated()

	p.Split(0)
	p.Split(1)

	if p.Allocated() != allocated {
		t.Errorf("second split allocated %d more nodes", p.Allocated()-allocated)
	}
	if !slices.Equal(before, p.nodes) {
		t.Error("second split changed the tree")
	}
}

func TestSplitForcesBaseNeighbour(t *testing.T) {
	p := newDiamond(64)
	p.Split(0)

	// Splitting the left child once more leaves its own left child with a
	// hypotenuse along the right child's leg. Splitting that grandchild
	// must split the right child first.
	left := p.Node(0).LeftChild
	right := p.Node(0).RightChild
	p.Split(left)
	if !p.Node(right).IsLeaf() {
		t.Fatal("border split spread to its sibling")
	}

	grandchild := p.Node(left).LeftChild
	g := p.Node(grandchild)
	if g.BaseNeighbor != right {
		t.Fatalf("grandchild base = %d, want %d", g.BaseNeighbor, right)
	}

	p.Split(grandchild)

	if p.Node(right).IsLeaf() {
		t.Fatal("non-mutual base neighbour was not force-split")
	}
	if g.IsLeaf() {
		t.Fatal("triangle did not split after its base neighbour")
	}
	base := p.Node(g.BaseNeighbor)
	if base.BaseNeighbor != grandchild {
		t.Error("after the forced split the base link is not mutual")
	}
	if base.IsLeaf() {
		t.Error("mutual partner was not split with the triangle")
	}
}

func TestSplitRefusesWithoutEnoughNodes(t *testing.T) {
	p := newDiamond(3)
	p.Split(0)

	if !p.Node(0).IsLeaf() || !p.Node(1).IsLeaf() {
		t.Error("split went ahead without room for the whole diamond")
	}
	if p.Allocated() != 0 {
		t.Errorf("refused split allocated %d nodes", p.Allocated())
	}
	if p.Refused() != 1 {
		t.Errorf("Refused = %d, want 1", p.Refused())
	}

	p.ResetAll()
	if p.Refused() != 0 {
		t.Error("ResetAll did not clear the refusal count")
	}
}

func TestSplitBorderTriangleNeedsTwoNodes(t *testing.T) {
	p := NewPool(1, 2)
	p.Split(0)

	n := p.Node(0)
	if n.IsLeaf() {
		t.Fatal("lone triangle with two free nodes did not split")
	}
	if p.Node(n.LeftChild).RightNeighbor != NoNode || p.Node(n.RightChild).LeftNeighbor != NoNode {
		t.Error("border children must have no outer neighbour")
	}
}
