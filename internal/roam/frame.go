package roam

// Frame is the state shared by the three phases of a frame and carried from
// one frame to the next. Reset and Tessellate read it, Render writes the
// counters and the adjusted Variance.
type Frame struct {
	View View

	// Variance is the split threshold. It persists across frames.
	Variance    float32
	DesiredTris int
	Cull        bool

	Number            uint64
	TrianglesRendered int
	NodesAllocated    int
	VisiblePatches    int
	Exhausted         bool
}
