package terrain

import (
	"github.com/Faultbox/roam-terrain/pkg/math"
)

// MeshBuilder collects leaf triangles into a flat vertex list, three vertices
// per triangle with a shared face normal.
type MeshBuilder struct {
	// HeightScale multiplies elevations before they are stored.
	HeightScale float32

	Vertices []Vertex
	Bounds   Bounds
}

// NewMeshBuilder creates a builder with room for capacity triangles.
func NewMeshBuilder(heightScale float32, capacity int) *MeshBuilder {
	return &MeshBuilder{
		HeightScale: heightScale,
		Vertices:    make([]Vertex, 0, capacity*3),
		Bounds:      emptyBounds(),
	}
}

// Reset drops the previous frame's triangles but keeps the backing array.
func (b *MeshBuilder) Reset() {
	b.Vertices = b.Vertices[:0]
	b.Bounds = emptyBounds()
}

// Triangle appends one triangle in left, right, apex order.
func (b *MeshBuilder) Triangle(left, right, apex math.Vec3) {
	left.Y *= b.HeightScale
	right.Y *= b.HeightScale
	apex.Y *= b.HeightScale

	n := math.TriangleNormal(left, right, apex)
	normal := [3]float32{n.X, n.Y, n.Z}

	for _, p := range [3]math.Vec3{left, right, apex} {
		pos := [3]float32{p.X, p.Y, p.Z}
		updateBounds(&b.Bounds, pos)
		b.Vertices = append(b.Vertices, Vertex{Position: pos, Normal: normal})
	}
}

// TriangleCount returns the number of triangles collected since Reset.
func (b *MeshBuilder) TriangleCount() int {
	return len(b.Vertices) / 3
}

func updateBounds(bounds *Bounds, pos [3]float32) {
	for i := range 3 {
		if pos[i] < bounds.Min[i] {
			bounds.Min[i] = pos[i]
		}
		if pos[i] > bounds.Max[i] {
			bounds.Max[i] = pos[i]
		}
	}
}
