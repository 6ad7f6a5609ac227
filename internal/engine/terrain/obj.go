package terrain

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes the collected triangles as a Wavefront OBJ mesh, one
// position and normal per vertex.
func WriteOBJ(w io.Writer, vertices []Vertex) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d triangles\n", len(vertices)/3)
	for _, v := range vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
	}
	for _, v := range vertices {
		fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
	}
	for i := 1; i+2 <= len(vertices); i += 3 {
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", i, i, i+1, i+1, i+2, i+2)
	}
	return bw.Flush()
}
