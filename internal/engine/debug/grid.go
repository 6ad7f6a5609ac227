package debug

import "github.com/Faultbox/roam-terrain/internal/roam"

// PatchGridLines outlines every patch of land at the given height, green for
// patches that passed the last visibility test and red for culled ones.
func PatchGridLines(land *roam.Landscape, height float32) []LineVertex {
	n := land.PatchesPerSide()
	size := float32(land.PatchSize())
	vertices := make([]LineVertex, 0, n*n*8)

	for y := range n {
		for x := range n {
			c := ColorCulled
			if land.Patch(x, y).Visible() {
				c = ColorVisible
			}

			x0, z0 := float32(x)*size, float32(y)*size
			x1, z1 := x0+size, z0+size
			vertices = append(vertices,
				LineVertex{x0, height, z0, c[0], c[1], c[2]}, LineVertex{x1, height, z0, c[0], c[1], c[2]},
				LineVertex{x1, height, z0, c[0], c[1], c[2]}, LineVertex{x1, height, z1, c[0], c[1], c[2]},
				LineVertex{x1, height, z1, c[0], c[1], c[2]}, LineVertex{x0, height, z1, c[0], c[1], c[2]},
				LineVertex{x0, height, z1, c[0], c[1], c[2]}, LineVertex{x0, height, z0, c[0], c[1], c[2]},
			)
		}
	}
	return vertices
}
