// Package input handles SDL2 input events and maps them to viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a polled event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Action Action
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Input handles all input processing.
type Input struct {
	events   []Event
	bindings map[sdl.Keycode]Action

	// Left-button drag state. lastX is -1 until the first motion after the
	// button goes down.
	dragging     bool
	lastX, lastY int
	dragX, dragY int
}

// New creates an input handler with the default key bindings.
func New() *Input {
	return &Input{
		events:   make([]Event, 0, 16),
		bindings: DefaultBindings(),
		lastX:    -1,
	}
}

// Update polls SDL events. It returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.dragX, i.dragY = 0, 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				action := i.bindings[e.Keysym.Sym]
				i.events = append(i.events, Event{
					Type:   EventKeyDown,
					Key:    e.Keysym.Sym,
					Action: action,
				})
				if action == ActionQuit {
					return true
				}
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{
					Type: EventKeyUp,
					Key:  e.Keysym.Sym,
				})
			}

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
			})
			if i.dragging && e.State&sdl.ButtonLMask() != 0 {
				i.trackDrag(int(e.X), int(e.Y))
			}

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN {
				i.events = append(i.events, Event{
					Type:   EventMouseDown,
					MouseX: int(e.X),
					MouseY: int(e.Y),
					Button: e.Button,
				})
				if e.Button == sdl.BUTTON_LEFT {
					i.dragging = true
					i.lastX = -1
				}
			} else if e.Type == sdl.MOUSEBUTTONUP {
				i.events = append(i.events, Event{
					Type:   EventMouseUp,
					MouseX: int(e.X),
					MouseY: int(e.Y),
					Button: e.Button,
				})
				if e.Button == sdl.BUTTON_LEFT {
					i.dragging = false
				}
			}
		}
	}

	return false
}

func (i *Input) trackDrag(x, y int) {
	if i.lastX == -1 {
		i.lastX, i.lastY = x, y
	}
	i.dragX += x - i.lastX
	i.dragY += y - i.lastY
	i.lastX, i.lastY = x, y
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Actions returns the bound actions pressed during the last Update, in order.
func (i *Input) Actions() []Action {
	var actions []Action
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Action != ActionNone {
			actions = append(actions, e.Action)
		}
	}
	return actions
}

// Drag returns the left-button drag distance accumulated during the last
// Update.
func (i *Input) Drag() (dx, dy int) {
	return i.dragX, i.dragY
}

// Bind maps a key to an action, replacing any previous binding.
func (i *Input) Bind(key sdl.Keycode, action Action) {
	i.bindings[key] = action
}
