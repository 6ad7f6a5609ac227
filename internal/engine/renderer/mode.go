package renderer

import (
	"errors"
	"fmt"
)

// DrawMode selects how the landscape is shaded.
type DrawMode int

const (
	DrawTexture DrawMode = iota
	DrawLighting
	DrawFill
	DrawWireframe
	drawModeCount
)

// ErrUnknownDrawMode is returned by ParseDrawMode.
var ErrUnknownDrawMode = errors.New("unknown draw mode")

var drawModeNames = [...]string{"texture", "lighting", "fill", "wireframe"}

func (m DrawMode) String() string {
	if m < 0 || m >= drawModeCount {
		return fmt.Sprintf("DrawMode(%d)", int(m))
	}
	return drawModeNames[m]
}

// ParseDrawMode converts a config name into a DrawMode.
func ParseDrawMode(s string) (DrawMode, error) {
	for i, name := range drawModeNames {
		if name == s {
			return DrawMode(i), nil
		}
	}
	return DrawTexture, fmt.Errorf("%w: %q", ErrUnknownDrawMode, s)
}

// Next cycles texture, lighting, fill, wireframe and back.
func (m DrawMode) Next() DrawMode {
	return (m + 1) % drawModeCount
}
