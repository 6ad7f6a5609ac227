package input

import "github.com/veandco/go-sdl2/sdl"

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBackward
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionToggleAnimation
	ActionCycleCamera
	ActionCycleDrawMode
	ActionToggleFrustum
	ActionMoreDetail
	ActionLessDetail
	ActionNarrowFov
	ActionWidenFov
	ActionToggleCull
	ActionScreenshot
	ActionQuit
)

// DefaultBindings returns the stock keyboard layout.
func DefaultBindings() map[sdl.Keycode]Action {
	return map[sdl.Keycode]Action{
		sdl.K_w:      ActionForward,
		sdl.K_s:      ActionBackward,
		sdl.K_a:      ActionLeft,
		sdl.K_d:      ActionRight,
		sdl.K_UP:     ActionUp,
		sdl.K_DOWN:   ActionDown,
		sdl.K_f:      ActionToggleAnimation,
		sdl.K_o:      ActionCycleCamera,
		sdl.K_q:      ActionCycleDrawMode,
		sdl.K_r:      ActionToggleFrustum,
		sdl.K_0:      ActionMoreDetail,
		sdl.K_9:      ActionLessDetail,
		sdl.K_1:      ActionNarrowFov,
		sdl.K_2:      ActionWidenFov,
		sdl.K_c:      ActionToggleCull,
		sdl.K_F12:    ActionScreenshot,
		sdl.K_ESCAPE: ActionQuit,
	}
}
