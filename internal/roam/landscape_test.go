package roam

import (
	"testing"

	"github.com/Faultbox/roam-terrain/internal/engine/terrain"
	"github.com/Faultbox/roam-terrain/pkg/math"
)

type recordingSink struct {
	triangles [][3]math.Vec3
}

func (s *recordingSink) Triangle(left, right, apex math.Vec3) {
	s.triangles = append(s.triangles, [3]math.Vec3{left, right, apex})
}

// checkMesh verifies the structural invariants of every tree in the
// landscape: children come in pairs, mutual base pairs are split together
// and leaves link to leaves that link back.
func checkMesh(t *testing.T, land *Landscape) {
	t.Helper()
	pool := land.Pool()

	var walk func(id NodeID)
	walk = func(id NodeID) {
		n := pool.Node(id)
		if (n.LeftChild == NoNode) != (n.RightChild == NoNode) {
			t.Fatalf("node %d has a single child", id)
		}
		if n.BaseNeighbor != NoNode {
			b := pool.Node(n.BaseNeighbor)
			if b.BaseNeighbor == id && b.IsLeaf() != n.IsLeaf() {
				t.Fatalf("diamond %d/%d split on one side only", id, n.BaseNeighbor)
			}
		}
		if !n.IsLeaf() {
			walk(n.LeftChild)
			walk(n.RightChild)
			return
		}
		for _, m := range []NodeID{n.BaseNeighbor, n.LeftNeighbor, n.RightNeighbor} {
			if m == NoNode {
				continue
			}
			o := pool.Node(m)
			if !o.IsLeaf() {
				t.Fatalf("leaf %d links to internal node %d", id, m)
			}
			if o.BaseNeighbor != id && o.LeftNeighbor != id && o.RightNeighbor != id {
				t.Fatalf("leaf %d links to %d which does not link back", id, m)
			}
		}
	}

	for y := range land.PatchesPerSide() {
		for x := range land.PatchesPerSide() {
			p := land.Patch(x, y)
			walk(p.BaseLeft())
			walk(p.BaseRight())
		}
	}
}

func TestLandscapeBoundaryLinks(t *testing.T) {
	const n = 4
	land, err := NewLandscape(terrain.NewHeightmap(256), n, 1000)
	if err != nil {
		t.Fatalf("NewLandscape failed: %v", err)
	}
	land.Reset(&Frame{})

	pool := land.Pool()
	for y := range n {
		for x := range n {
			p := land.Patch(x, y)
			left, right := pool.Node(p.BaseLeft()), pool.Node(p.BaseRight())

			if left.BaseNeighbor != p.BaseRight() || right.BaseNeighbor != p.BaseLeft() {
				t.Errorf("patch (%d,%d) base triangles are not paired", x, y)
			}

			checkLink(t, x, y, "west", left.LeftNeighbor, x == 0, func() NodeID { return land.Patch(x-1, y).BaseRight() })
			checkLink(t, x, y, "east", right.LeftNeighbor, x == n-1, func() NodeID { return land.Patch(x+1, y).BaseLeft() })
			checkLink(t, x, y, "north", left.RightNeighbor, y == 0, func() NodeID { return land.Patch(x, y-1).BaseRight() })
			checkLink(t, x, y, "south", right.RightNeighbor, y == n-1, func() NodeID { return land.Patch(x, y+1).BaseLeft() })
		}
	}
}

func checkLink(t *testing.T, x, y int, side string, got NodeID, border bool, want func() NodeID) {
	t.Helper()
	if border {
		if got != NoNode {
			t.Errorf("patch (%d,%d) %s border links to %d, want none", x, y, side, got)
		}
		return
	}
	if w := want(); got != w {
		t.Errorf("patch (%d,%d) %s link = %d, want %d", x, y, side, got, w)
	}
}

func TestLandscapeRejectsBadGrid(t *testing.T) {
	hm := terrain.NewHeightmap(256)
	for _, perSide := range []int{0, 3, 200} {
		if _, err := NewLandscape(hm, perSide, 1000); err == nil {
			t.Errorf("NewLandscape(%d patches per side) succeeded", perSide)
		}
	}
}

func TestLandscapeMeshInvariants(t *testing.T) {
	hm := terrain.GenerateFractal(256, 5, 0.6)
	terrain.AddSpikes(hm, 50, 255, 9)

	e, err := New(hm, Options{PatchesPerSide: 8, PoolSize: 10000, DesiredTris: 3000, InitialVariance: 50})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for i := range 30 {
		view := View{Position: math.Vec3{X: float32(20 + i*7), Y: 100, Z: float32(200 - i*5)}, FovX: 90}
		e.Draw(view, nil)
		checkMesh(t, e.Landscape())
	}
}

func TestLandscapeFlatMapMinimalMesh(t *testing.T) {
	e, err := New(terrain.NewHeightmap(256), Options{PatchesPerSide: 4, PoolSize: 1000, DesiredTris: 500})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, threshold := range []float32{0, 0.01, 5, 1000} {
		e.Frame().Variance = threshold
		sink := &recordingSink{}
		got := e.Draw(View{Position: math.Vec3{X: 10, Z: 10}, FovX: 90}, sink)

		if got != 2*16 || len(sink.triangles) != 2*16 {
			t.Errorf("threshold %v: rendered %d (sink %d), want 32", threshold, got, len(sink.triangles))
		}
		if a := e.Landscape().Pool().Allocated(); a != 0 {
			t.Errorf("threshold %v: allocated %d nodes on a flat map", threshold, a)
		}
	}
}

func TestLandscapeRenderCoordinates(t *testing.T) {
	hm := terrain.NewHeightmap(64)
	hm.Set(0, 0, 10)
	hm.Set(32, 0, 20)
	land, err := NewLandscape(hm, 2, 100)
	if err != nil {
		t.Fatalf("NewLandscape failed: %v", err)
	}
	f := &Frame{}
	land.Reset(f)

	sink := &recordingSink{}
	if n := land.Render(f, sink); n != 8 {
		t.Fatalf("rendered %d, want 8", n)
	}

	// Patch (0,0) left tree: left (0,32), right (32,0), apex (0,0).
	first := sink.triangles[0]
	want := [3]math.Vec3{{X: 0, Y: 0, Z: 32}, {X: 32, Y: 20, Z: 0}, {X: 0, Y: 10, Z: 0}}
	if first != want {
		t.Errorf("first triangle = %v, want %v", first, want)
	}

	// Patch (1,0) right tree reaches the map edge and reads the wrapped column.
	second := sink.triangles[3]
	if second[0] != (math.Vec3{X: 64, Y: 10, Z: 0}) {
		t.Errorf("edge vertex = %v, want wrapped elevation 10", second[0])
	}
}

func TestLandscapeExhaustion(t *testing.T) {
	hm := terrain.GenerateFractal(256, 3, 0.7)
	terrain.AddSpikes(hm, 200, 255, 4)

	e, err := New(hm, Options{PatchesPerSide: 4, PoolSize: MinPoolSize, DesiredTris: MinPoolSize})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	land := e.Landscape()

	sink := &recordingSink{}
	n := e.Draw(View{Position: math.Vec3{X: 128, Z: 128}, FovX: 90}, sink)

	f := e.Frame()
	if !f.Exhausted {
		t.Error("frame not flagged as exhausted")
	}
	if f.NodesAllocated > land.Pool().Capacity() {
		t.Errorf("allocated %d beyond capacity %d", f.NodesAllocated, land.Pool().Capacity())
	}
	if splits := n - 2*f.VisiblePatches; splits > land.Pool().Capacity()/2 {
		t.Errorf("%d leaves beyond the base triangles, want <= %d", splits, land.Pool().Capacity()/2)
	}
	if n != len(sink.triangles) {
		t.Errorf("Draw returned %d, sink saw %d", n, len(sink.triangles))
	}
	checkMesh(t, land)

	land.Reset(f)
	if a := land.Pool().Allocated(); a != 0 {
		t.Errorf("Reset left %d nodes allocated", a)
	}
	if f.Exhausted {
		t.Error("Reset did not clear the exhausted flag")
	}
}

func TestLandscapeCull(t *testing.T) {
	hm := terrain.GenerateFractal(256, 2, 0.6)
	e, err := New(hm, Options{PatchesPerSide: 4, PoolSize: 5000, DesiredTris: 2000, InitialVariance: 50, Cull: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	land := e.Landscape()

	tests := []struct {
		name      string
		view      View
		visible   [2]int
		invisible [2]int
	}{
		{"looking north", View{Position: math.Vec3{X: 128, Y: 80, Z: 100}, ClipAngle: 0, FovX: 90}, [2]int{1, 0}, [2]int{1, 3}},
		{"looking south", View{Position: math.Vec3{X: 128, Y: 80, Z: 100}, ClipAngle: 180, FovX: 90}, [2]int{1, 3}, [2]int{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			e.Draw(tt.view, sink)

			if !land.Patch(tt.visible[0], tt.visible[1]).Visible() {
				t.Errorf("patch %v should be visible", tt.visible)
			}
			if land.Patch(tt.invisible[0], tt.invisible[1]).Visible() {
				t.Errorf("patch %v should be culled", tt.invisible)
			}

			visible := 0
			for y := range 4 {
				for x := range 4 {
					if land.Patch(x, y).Visible() {
						visible++
					}
				}
			}
			if visible != e.Frame().VisiblePatches {
				t.Errorf("VisiblePatches = %d, counted %d", e.Frame().VisiblePatches, visible)
			}

			for _, tri := range sink.triangles {
				cx := (tri[0].X + tri[1].X + tri[2].X) / 3
				cz := (tri[0].Z + tri[1].Z + tri[2].Z) / 3
				p := land.Patch(int(cx)/land.PatchSize(), int(cz)/land.PatchSize())
				if !p.Visible() {
					t.Fatalf("triangle %v rendered from a culled patch", tri)
				}
			}
		})
	}
}

func TestLandscapeDirtyRecompute(t *testing.T) {
	hm := terrain.NewHeightmap(256)
	e, err := New(hm, Options{PatchesPerSide: 4, PoolSize: 1000, DesiredTris: 500})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	land := e.Landscape()

	hm.Set(32, 32, 200)
	land.MarkDirty(32, 32, 1, 1)

	if !land.Patch(0, 0).Dirty() {
		t.Fatal("patch covering the edit not marked dirty")
	}
	if land.Patch(1, 1).Dirty() {
		t.Error("distant patch marked dirty")
	}
	if v := land.Patch(0, 0).Variance(LeftTree, 1); v != VarianceBias {
		t.Errorf("variance changed before Reset: %d", v)
	}

	e.Draw(View{FovX: 90}, nil)

	p := land.Patch(0, 0)
	if p.Dirty() {
		t.Error("dirty flag not cleared by Reset")
	}
	if v := p.Variance(LeftTree, 1); v != 201 {
		t.Errorf("recomputed root = %d, want 201", v)
	}
}

func TestLandscapeMarkDirtyWrapsEdges(t *testing.T) {
	land, err := NewLandscape(terrain.NewHeightmap(256), 4, 1000)
	if err != nil {
		t.Fatalf("NewLandscape failed: %v", err)
	}

	land.MarkDirty(0, 0, 1, 1)

	for _, xy := range [][2]int{{0, 0}, {3, 0}, {0, 3}, {3, 3}} {
		if !land.Patch(xy[0], xy[1]).Dirty() {
			t.Errorf("patch %v reads sample (0,0) but is not dirty", xy)
		}
	}
	for _, xy := range [][2]int{{1, 0}, {0, 1}, {1, 1}, {2, 3}} {
		if land.Patch(xy[0], xy[1]).Dirty() {
			t.Errorf("patch %v marked dirty", xy)
		}
	}
}
