// Package terrain provides heightmap storage and leaf-triangle collection for
// the ROAM landscape.
package terrain

// Vertex represents a terrain mesh vertex ready for GPU upload.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Bounds holds the axis-aligned bounding box of the emitted mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// emptyBounds is inverted so the first update snaps to the first vertex.
func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}
