package camera

import (
	"testing"

	"github.com/Faultbox/roam-terrain/internal/engine/terrain"
	"github.com/Faultbox/roam-terrain/pkg/math"
)

func approx(a, b float32) bool {
	d := a - b
	return d > -0.01 && d < 0.01
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		want    Mode
		wantErr bool
	}{
		{"follow", FollowMode, false},
		{"Observe", ObserveMode, false},
		{"drive", DriveMode, false},
		{"FLY", FlyMode, false},
		{"orbit", FollowMode, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	if DriveMode.String() != "drive" {
		t.Errorf("DriveMode.String() = %q", DriveMode.String())
	}
}

func TestCycleModeRestartsAnimation(t *testing.T) {
	c := New(1024, nil, 0.5)
	c.Mode = FlyMode
	c.Animating = false

	c.CycleMode()
	if c.Mode != FollowMode {
		t.Fatalf("Mode = %v, want follow", c.Mode)
	}
	if !c.Animating {
		t.Error("entering follow mode did not restart the animation")
	}

	c.CycleMode()
	if c.Mode != ObserveMode {
		t.Errorf("Mode = %v, want observe", c.Mode)
	}
}

func TestUpdateOrbitsMapCentre(t *testing.T) {
	hm := terrain.NewHeightmap(1024)
	for y := range 1024 {
		for x := range 1024 {
			hm.Set(x, y, 100)
		}
	}
	c := New(1024, hm, 0.5)
	c.Mode = FollowMode

	for range 225 { // 90 degrees
		c.Update()
	}

	if !approx(c.AnimateAngle, 90) {
		t.Fatalf("AnimateAngle = %v, want 90", c.AnimateAngle)
	}
	if !approx(c.Eye.X, 768) || !approx(c.Eye.Z, 512) {
		t.Errorf("Eye = %v, want (768, _, 512)", c.Eye)
	}
	if c.Eye.Y != 54 {
		t.Errorf("Eye.Y = %v, want 0.5*100+4", c.Eye.Y)
	}
	if !approx(c.ClipAngle(), -90) {
		t.Errorf("ClipAngle = %v, want -90", c.ClipAngle())
	}

	c.Mode = DriveMode
	c.Update()
	if c.Animating {
		t.Error("drive mode must stop the animation")
	}
}

func TestDriveClampsToMap(t *testing.T) {
	c := New(256, terrain.NewHeightmap(256), 0.5)
	c.Mode = DriveMode
	c.Eye = math.Vec3{X: 2, Y: 0, Z: 2}
	c.Yaw = 0 // facing -Z

	c.Forward()
	if c.Eye.Z != 0 || c.Eye.X != 2 {
		t.Errorf("Eye = %v, want clamped to z=0", c.Eye)
	}
	if c.Eye.Y != 4 {
		t.Errorf("Eye.Y = %v, want ground + 4", c.Eye.Y)
	}

	c.Backward()
	if !approx(c.Eye.Z, 5) {
		t.Errorf("Eye.Z after backward = %v, want 5", c.Eye.Z)
	}
	if c.ClipAngle() != 0 {
		t.Errorf("ClipAngle = %v, want yaw", c.ClipAngle())
	}
}

func TestFlyFollowsPitch(t *testing.T) {
	c := New(256, nil, 0.5)
	c.Mode = FlyMode
	c.Eye = math.Vec3{X: 100, Y: 100, Z: 100}
	c.Yaw = 90 // facing +X
	c.Pitch = 90

	c.Forward()
	if !approx(c.Eye.Y, 95) || !approx(c.Eye.X, 100) {
		t.Errorf("Eye = %v, want straight down to y=95", c.Eye)
	}
}

func TestObserverControls(t *testing.T) {
	c := New(256, nil, 0.5)

	c.Forward()
	c.Raise()
	c.TurnRight()
	if c.Offset.Z != -550 || c.Offset.Y != -5 || c.Yaw != -176 {
		t.Errorf("observer state offset=%v yaw=%v", c.Offset, c.Yaw)
	}

	c.Mode = FollowMode
	c.TurnRight()
	c.HandleDrag(10, 10)
	if c.Yaw != -176 || c.Pitch != 42 {
		t.Error("follow mode must ignore manual rotation")
	}
}

func TestHandleDragInvertsWhenDriving(t *testing.T) {
	c := New(256, nil, 0.5)
	c.HandleDrag(4, 6)
	if c.Yaw != -179 || c.Pitch != 45 {
		t.Errorf("observe drag: yaw=%v pitch=%v", c.Yaw, c.Pitch)
	}

	c.Mode = DriveMode
	c.HandleDrag(0, 6)
	if c.Pitch != 42 {
		t.Errorf("drive drag pitch = %v, want 42", c.Pitch)
	}
}

func TestViewMatrixLooksAlongClipAngle(t *testing.T) {
	c := New(256, nil, 0.5)
	c.Mode = DriveMode
	c.Eye = math.Vec3{X: 50, Y: 10, Z: 60}
	c.Yaw = 30
	c.Pitch = 0

	m := c.ViewMatrix()
	origin := m.TransformVec3(c.Eye)
	if !approx(origin.X, 0) || !approx(origin.Y, 0) || !approx(origin.Z, 0) {
		t.Errorf("eye maps to %v, want origin", origin)
	}

	h := math.Heading(c.View().ClipAngle)
	ahead := m.TransformVec3(c.Eye.Add(math.Vec3{X: h.X * 10, Z: h.Y * 10}))
	if !approx(ahead.X, 0) || !approx(ahead.Z, -10) {
		t.Errorf("point ahead maps to %v, want (0, 0, -10)", ahead)
	}
}

func TestFovLimits(t *testing.T) {
	c := New(256, nil, 0.5)
	c.FovX = maxFov
	c.WidenFov()
	if c.FovX != maxFov {
		t.Errorf("FovX = %v, want %v", c.FovX, float32(maxFov))
	}
	c.FovX = minFov
	c.NarrowFov()
	if c.FovX != minFov {
		t.Errorf("FovX = %v, want %v", c.FovX, float32(minFov))
	}
	if c.View().FovX != minFov {
		t.Error("View does not carry the field of view")
	}
}
