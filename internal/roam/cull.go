package roam

import "github.com/Faultbox/roam-terrain/pkg/math"

// wedgeReach is the length of the wedge edges. Only their direction matters
// to the orientation test.
const wedgeReach = 100

// Wedge is the 2D cull region: the angle left-eye-right opening toward the
// view direction. The eye sits one patch behind the camera so patches the
// camera is standing on stay visible. The test ignores pitch, so it only
// holds for near-horizontal views.
type Wedge struct {
	EyeX, EyeY     int
	LeftX, LeftY   int
	RightX, RightY int
}

// CullWedge builds the wedge for a view over patches of the given size.
func CullWedge(view View, patchSize int) Wedge {
	dir := math.Heading(view.ClipAngle)
	back := float32(patchSize)

	w := Wedge{
		EyeX: int(view.Position.X - back*dir.X),
		EyeY: int(view.Position.Z - back*dir.Y),
	}

	left := math.Heading(view.ClipAngle - view.FovX/2)
	right := math.Heading(view.ClipAngle + view.FovX/2)
	w.LeftX = int(float32(w.EyeX) + wedgeReach*left.X)
	w.LeftY = int(float32(w.EyeY) + wedgeReach*left.Y)
	w.RightX = int(float32(w.EyeX) + wedgeReach*right.X)
	w.RightY = int(float32(w.EyeY) + wedgeReach*right.Y)
	return w
}

// Contains reports whether (x, y) lies inside both wedge edges.
func (w Wedge) Contains(x, y int) bool {
	return math.Orientation(w.EyeX, w.EyeY, w.RightX, w.RightY, x, y) < 0 &&
		math.Orientation(w.LeftX, w.LeftY, w.EyeX, w.EyeY, x, y) < 0
}

// SetVisibility tests the patch centre against w.
func (p *Patch) SetVisibility(w Wedge) {
	half := p.size / 2
	p.visible = w.Contains(p.worldX+half, p.worldY+half)
}
