package debug

import "github.com/Faultbox/roam-terrain/internal/engine/terrain"

// BoundsLines creates a wireframe box around the mesh bounds: 12 edges, two
// vertices each. Empty bounds produce no lines.
func BoundsLines(b terrain.Bounds) []LineVertex {
	if b.Min[0] > b.Max[0] {
		return nil
	}

	minX, minY, minZ := b.Min[0], b.Min[1], b.Min[2]
	maxX, maxY, maxZ := b.Max[0], b.Max[1], b.Max[2]
	corners := [8][3]float32{
		{minX, minY, minZ}, {maxX, minY, minZ}, {maxX, minY, maxZ}, {minX, minY, maxZ},
		{minX, maxY, minZ}, {maxX, maxY, minZ}, {maxX, maxY, maxZ}, {minX, maxY, maxZ},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // bottom
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // top
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // vertical
	}

	c := ColorBounds
	vertices := make([]LineVertex, 0, 24)
	for _, e := range edges {
		a, b := corners[e[0]], corners[e[1]]
		vertices = append(vertices,
			LineVertex{a[0], a[1], a[2], c[0], c[1], c[2]},
			LineVertex{b[0], b[1], b[2], c[0], c[1], c[2]},
		)
	}
	return vertices
}
