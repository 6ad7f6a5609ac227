package roam

// Split bisects the triangle id along its hypotenuse. A base neighbour that
// does not point back is split first so the diamond stays closed. If the pool
// cannot supply the nodes the triangle stays a leaf.
func (p *Pool) Split(id NodeID) {
	tri := p.Node(id)
	if tri.LeftChild != NoNode {
		return
	}

	if tri.BaseNeighbor != NoNode && p.Node(tri.BaseNeighbor).BaseNeighbor != id {
		p.Split(tri.BaseNeighbor)

		// Splitting the neighbour re-points our base link at one of its
		// children. Anything else means it ran out of nodes.
		if tri.BaseNeighbor == NoNode || p.Node(tri.BaseNeighbor).BaseNeighbor != id {
			return
		}
	}

	need := 2
	if tri.BaseNeighbor != NoNode && p.Node(tri.BaseNeighbor).IsLeaf() {
		need = 4
	}
	if p.Available() < need {
		p.refused++
		return
	}

	leftID, _ := p.Allocate()
	rightID, _ := p.Allocate()
	tri.LeftChild = leftID
	tri.RightChild = rightID

	left := p.Node(leftID)
	right := p.Node(rightID)

	left.LeftNeighbor = rightID
	right.RightNeighbor = leftID

	left.BaseNeighbor = tri.LeftNeighbor
	if tri.LeftNeighbor != NoNode {
		p.relink(tri.LeftNeighbor, id, leftID)
	}

	right.BaseNeighbor = tri.RightNeighbor
	if tri.RightNeighbor != NoNode {
		p.relink(tri.RightNeighbor, id, rightID)
	}

	if tri.BaseNeighbor == NoNode {
		return
	}

	base := p.Node(tri.BaseNeighbor)
	if base.LeftChild != NoNode {
		p.Node(base.LeftChild).RightNeighbor = rightID
		p.Node(base.RightChild).LeftNeighbor = leftID
		left.RightNeighbor = base.RightChild
		right.LeftNeighbor = base.LeftChild
		return
	}
	p.Split(tri.BaseNeighbor)
}

// relink replaces whichever link of neighbour points at from with to.
func (p *Pool) relink(neighbour, from, to NodeID) {
	n := p.Node(neighbour)
	switch from {
	case n.BaseNeighbor:
		n.BaseNeighbor = to
	case n.LeftNeighbor:
		n.LeftNeighbor = to
	case n.RightNeighbor:
		n.RightNeighbor = to
	}
}
