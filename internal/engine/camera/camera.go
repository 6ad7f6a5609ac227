// Package camera provides the terrain viewer's camera: an animated orbit over
// the map, a free observer, a ground-hugging driver and a free flyer.
package camera

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/roam-terrain/internal/roam"
	"github.com/Faultbox/roam-terrain/pkg/math"
)

// Mode selects how the camera moves and where the terrain is viewed from.
type Mode int

const (
	// FollowMode walks the eye in a circle around the map centre.
	FollowMode Mode = iota
	// ObserveMode looks at the whole map from outside while the eye keeps
	// following the animation.
	ObserveMode
	// DriveMode moves the eye over the ground.
	DriveMode
	// FlyMode moves the eye freely along the view direction.
	FlyMode
)

var modeNames = [...]string{"follow", "observe", "drive", "fly"}

// String returns the configuration name of the mode.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode converts a configuration name to a Mode.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(n, name) {
			return Mode(i), nil
		}
	}
	return FollowMode, fmt.Errorf("unknown camera mode %q", name)
}

// Ground reports the terrain elevation under a world position.
type Ground interface {
	Sample(x, z float32) uint8
}

// Default movement settings.
const (
	DefaultSpeed       = 5
	DefaultSensitivity = 0.5
	AnimateStep        = 0.4
	eyeHeight          = 4
	minFov             = 10
	maxFov             = 170
)

// TerrainCamera tracks both the eye the terrain is refined for and the
// transform it is drawn with. In observe mode the two differ.
type TerrainCamera struct {
	Mode Mode

	// Eye is the point the landscape is tessellated for.
	Eye math.Vec3
	// Offset is the observer's position relative to the map centre.
	Offset math.Vec3
	// Pitch and Yaw are in degrees.
	Pitch float32
	Yaw   float32
	FovX  float32

	AnimateAngle float32
	Animating    bool

	Speed       float32
	Sensitivity float32

	mapSize     float32
	heightScale float32
	ground      Ground
}

// New creates a camera over a square map. ground may be nil for a flat map.
func New(mapSize int, ground Ground, heightScale float32) *TerrainCamera {
	return &TerrainCamera{
		Mode:        ObserveMode,
		Eye:         math.Vec3{X: 0, Y: 5, Z: 0},
		Offset:      math.Vec3{X: 0, Y: 0, Z: -555},
		Pitch:       42,
		Yaw:         -181,
		FovX:        90,
		Animating:   true,
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		mapSize:     float32(mapSize),
		heightScale: heightScale,
		ground:      ground,
	}
}

// Update advances the animation by one step.
func (c *TerrainCamera) Update() {
	if c.Mode == DriveMode || c.Mode == FlyMode {
		c.Animating = false
	}
	if !c.Animating {
		return
	}

	c.AnimateAngle += AnimateStep
	s, co := math32.Sincos(math.Radians(c.AnimateAngle))
	quarter := c.mapSize / 4
	c.Eye.X = quarter + (s+1)*quarter
	c.Eye.Z = quarter + (co+1)*quarter
	c.Eye.Y = c.groundHeight()
}

// ClipAngle returns the heading the terrain is culled for.
func (c *TerrainCamera) ClipAngle() float32 {
	if c.Mode == DriveMode || c.Mode == FlyMode {
		return c.Yaw
	}
	return -c.AnimateAngle
}

// View returns the state the tessellator consumes.
func (c *TerrainCamera) View() roam.View {
	return roam.View{
		Position:  c.Eye,
		ClipAngle: c.ClipAngle(),
		FovX:      c.FovX,
	}
}

// ViewMatrix returns the world-to-camera transform.
func (c *TerrainCamera) ViewMatrix() math.Mat4 {
	switch c.Mode {
	case ObserveMode:
		half := c.mapSize * 0.5
		return math.Translate(0, c.Offset.Y, c.Offset.Z).
			Mul(math.RotateX(c.Pitch)).
			Mul(math.RotateY(c.Yaw)).
			Mul(math.Translate(-half, 0, -half))
	case DriveMode, FlyMode:
		return math.RotateX(c.Pitch).
			Mul(math.RotateY(c.Yaw)).
			Mul(math.Translate(-c.Eye.X, -c.Eye.Y, -c.Eye.Z))
	default:
		return math.RotateY(-c.AnimateAngle).
			Mul(math.Translate(-c.Eye.X, -c.Eye.Y, -c.Eye.Z))
	}
}

// CycleMode switches to the next mode. Entering follow mode restarts the
// animation.
func (c *TerrainCamera) CycleMode() {
	c.Mode++
	if c.Mode > FlyMode {
		c.Mode = FollowMode
	}
	if c.Mode == FollowMode {
		c.Animating = true
	}
}

// ToggleAnimation pauses or resumes the orbit.
func (c *TerrainCamera) ToggleAnimation() {
	c.Animating = !c.Animating
}

// Forward moves one step along the view direction.
func (c *TerrainCamera) Forward() {
	c.move(1)
}

// Backward moves one step against the view direction.
func (c *TerrainCamera) Backward() {
	c.move(-1)
}

func (c *TerrainCamera) move(dir float32) {
	step := c.Speed * dir
	heading := math.Heading(c.Yaw)

	switch c.Mode {
	case ObserveMode:
		c.Offset.Z += step
	case DriveMode:
		c.Eye.X = clamp(c.Eye.X+step*heading.X, 0, c.mapSize)
		c.Eye.Z = clamp(c.Eye.Z+step*heading.Y, 0, c.mapSize)
		c.Eye.Y = c.groundHeight()
	case FlyMode:
		sp, cp := math32.Sincos(math.Radians(c.Pitch))
		c.Eye.X += step * heading.X * cp
		c.Eye.Z += step * heading.Y * cp
		c.Eye.Y -= step * sp
	}
}

// TurnLeft rotates the observer.
func (c *TerrainCamera) TurnLeft() {
	if c.Mode == ObserveMode {
		c.Yaw -= c.Speed
	}
}

// TurnRight rotates the observer.
func (c *TerrainCamera) TurnRight() {
	if c.Mode == ObserveMode {
		c.Yaw += c.Speed
	}
}

// Raise lifts the observer.
func (c *TerrainCamera) Raise() {
	if c.Mode == ObserveMode {
		c.Offset.Y -= c.Speed
	}
}

// Lower drops the observer.
func (c *TerrainCamera) Lower() {
	if c.Mode == ObserveMode {
		c.Offset.Y += c.Speed
	}
}

// HandleDrag rotates the camera by a mouse delta in pixels. Vertical motion
// is inverted when driving or flying.
func (c *TerrainCamera) HandleDrag(dx, dy float32) {
	if c.Mode == FollowMode {
		return
	}
	if c.Mode != ObserveMode {
		dy = -dy
	}
	c.Pitch += dy * c.Sensitivity
	c.Yaw += dx * c.Sensitivity
}

// WidenFov widens the horizontal field of view by a degree.
func (c *TerrainCamera) WidenFov() {
	c.FovX = min(c.FovX+1, maxFov)
}

// NarrowFov narrows the horizontal field of view by a degree.
func (c *TerrainCamera) NarrowFov() {
	c.FovX = max(c.FovX-1, minFov)
}

func (c *TerrainCamera) groundHeight() float32 {
	if c.ground == nil {
		return eyeHeight
	}
	return c.heightScale*float32(c.ground.Sample(c.Eye.X, c.Eye.Z)) + eyeHeight
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
