// Package math provides the float32 vector and matrix types shared by the
// terrain core and the viewer.
package math

import "github.com/chewxy/math32"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

// Heading returns the unit vector for a compass heading in degrees, where 0
// looks down -Y and angles grow clockwise (the terrain's clip angle convention).
func Heading(degrees float32) Vec2 {
	s, c := math32.Sincos(Radians(degrees))
	return Vec2{s, -c}
}

// Radians converts degrees to radians.
func Radians(degrees float32) float32 {
	return degrees * math32.Pi / 180
}

// Orientation reports on which side of the directed line p->q the point r lies:
// -1 for one side, 1 for the other and 0 when the three points are collinear.
func Orientation(px, py, qx, qy, rx, ry int) int {
	ax, ay := qx-px, qy-py
	bx, by := rx-px, ry-py

	d := float32(ax)*float32(by) - float32(ay)*float32(bx)
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	default:
		return 0
	}
}
