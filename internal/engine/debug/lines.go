// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/roam-terrain/internal/roam"
	"github.com/Faultbox/roam-terrain/pkg/math"
)

// LineVertex is one endpoint of a colored debug line.
type LineVertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

// Line colors.
var (
	ColorViewVector = [3]float32{1, 0, 0}
	ColorFrustum    = [3]float32{0, 0, 1}
	ColorCullWedge  = [3]float32{1, 1, 0}
	ColorVisible    = [3]float32{0, 0.8, 0}
	ColorCulled     = [3]float32{0.6, 0, 0}
	ColorBounds     = [3]float32{1, 1, 1}
)

const (
	viewVectorLength = 50
	frustumLength    = 1000
)

func line(a, b math.Vec3, c [3]float32) [2]LineVertex {
	return [2]LineVertex{
		{a.X, a.Y, a.Z, c[0], c[1], c[2]},
		{b.X, b.Y, b.Z, c[0], c[1], c[2]},
	}
}

// FrustumLines draws the view vector, the horizontal frustum edges and the
// patch cull wedge at eye height.
func FrustumLines(view roam.View, patchSize int) []LineVertex {
	eye := view.Position
	at := func(h math.Vec2, length float32) math.Vec3 {
		return math.Vec3{X: eye.X + h.X*length, Y: eye.Y, Z: eye.Z + h.Y*length}
	}

	vertices := make([]LineVertex, 0, 10)
	appendLine := func(l [2]LineVertex) {
		vertices = append(vertices, l[0], l[1])
	}

	appendLine(line(eye, at(math.Heading(view.ClipAngle), viewVectorLength), ColorViewVector))
	appendLine(line(eye, at(math.Heading(view.ClipAngle-view.FovX/2), frustumLength), ColorFrustum))
	appendLine(line(eye, at(math.Heading(view.ClipAngle+view.FovX/2), frustumLength), ColorFrustum))

	w := roam.CullWedge(view, patchSize)
	wedgeEye := math.Vec3{X: float32(w.EyeX), Y: eye.Y, Z: float32(w.EyeY)}
	appendLine(line(wedgeEye, math.Vec3{X: float32(w.LeftX), Y: eye.Y, Z: float32(w.LeftY)}, ColorCullWedge))
	appendLine(line(wedgeEye, math.Vec3{X: float32(w.RightX), Y: eye.Y, Z: float32(w.RightY)}, ColorCullWedge))

	return vertices
}
