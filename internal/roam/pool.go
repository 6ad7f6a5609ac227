package roam

// NodeID addresses a TriTreeNode inside a Pool.
type NodeID int32

// NoNode is the null link.
const NoNode NodeID = -1

// TriTreeNode is one triangle of a binary triangle tree. Children are either
// both set or both NoNode. Vertex coordinates are not stored; they are
// rebuilt while walking down from the patch corners.
type TriTreeNode struct {
	LeftChild  NodeID
	RightChild NodeID

	BaseNeighbor  NodeID
	LeftNeighbor  NodeID
	RightNeighbor NodeID
}

// IsLeaf reports whether the node has no children.
func (n *TriTreeNode) IsLeaf() bool {
	return n.LeftChild == NoNode
}

func (n *TriTreeNode) clear() {
	*n = TriTreeNode{
		LeftChild:     NoNode,
		RightChild:    NoNode,
		BaseNeighbor:  NoNode,
		LeftNeighbor:  NoNode,
		RightNeighbor: NoNode,
	}
}

// Pool is a bump arena of triangle nodes. The first reserved slots hold the
// patches' base triangles and are never handed out by Allocate; the rest is
// rewound as a whole by ResetAll.
type Pool struct {
	nodes    []TriTreeNode
	reserved int
	next     int
	refused  int
}

// NewPool creates a pool with reserved fixed slots followed by capacity
// allocatable slots.
func NewPool(reserved, capacity int) *Pool {
	p := &Pool{
		nodes:    make([]TriTreeNode, reserved+capacity),
		reserved: reserved,
		next:     reserved,
	}
	for i := range p.nodes {
		p.nodes[i].clear()
	}
	return p
}

// Allocate hands out a cleared node. It returns false once the arena is full.
func (p *Pool) Allocate() (NodeID, bool) {
	if p.next >= len(p.nodes) {
		return NoNode, false
	}
	id := NodeID(p.next)
	p.next++
	p.nodes[id].clear()
	return id, true
}

// ResetAll rewinds the arena. Reserved nodes keep their contents.
func (p *Pool) ResetAll() {
	p.next = p.reserved
	p.refused = 0
}

// Node returns the node for id. The pointer stays valid for the pool's life.
func (p *Pool) Node(id NodeID) *TriTreeNode {
	return &p.nodes[id]
}

// Reserved returns the id of the i-th reserved slot.
func (p *Pool) Reserved(i int) NodeID {
	return NodeID(i)
}

// Allocated returns the number of nodes handed out since the last ResetAll.
func (p *Pool) Allocated() int {
	return p.next - p.reserved
}

// Available returns how many more nodes Allocate can hand out.
func (p *Pool) Available() int {
	return len(p.nodes) - p.next
}

// Capacity returns the number of allocatable slots.
func (p *Pool) Capacity() int {
	return len(p.nodes) - p.reserved
}

// Refused returns how many splits were turned down for lack of nodes since
// the last ResetAll.
func (p *Pool) Refused() int {
	return p.refused
}
