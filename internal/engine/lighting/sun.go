// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/roam-terrain/pkg/math"
)

// Light is a directional light with a single grey material, the terrain's
// whole lighting model.
type Light struct {
	Direction math.Vec3 // Towards the light, normalized
	Ambient   math.Vec3
	Diffuse   math.Vec3
	Material  math.Vec3
}

// SunDirection converts longitude/latitude angles in degrees to a light
// direction vector. Longitude is rotation around the Y axis, latitude is
// elevation from the horizon. The result points towards the sun.
func SunDirection(longitude, latitude float32) math.Vec3 {
	sinLon, cosLon := math32.Sincos(math.Radians(longitude))
	sinLat, cosLat := math32.Sincos(math.Radians(latitude))
	return math.Vec3{
		X: cosLat * sinLon,
		Y: sinLat,
		Z: cosLat * cosLon,
	}
}

// Overhead is a sun straight above the map. Ambient sums the scene ambient
// and the light's own ambient term.
func Overhead() Light {
	return Light{
		Direction: SunDirection(0, 90),
		Ambient:   math.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
		Diffuse:   math.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
		Material:  math.Vec3{X: 0.45, Y: 0.45, Z: 0.45},
	}
}
