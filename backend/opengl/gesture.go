package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/scroll"
)

// View pixels per wheel notch.
const wheelStep = 40

// GLFWGestureAdapter translates GLFW mouse input into viewport gestures:
// left-button drags become pan gestures and the wheel scrolls directly.
type GLFWGestureAdapter struct {
	window   *glfw.Window
	viewport *scroll.Viewport
	dragging bool
}

// NewGLFWGestureAdapter installs mouse callbacks on window that drive vp.
func NewGLFWGestureAdapter(window *glfw.Window, vp *scroll.Viewport) *GLFWGestureAdapter {
	adapter := &GLFWGestureAdapter{
		window:   window,
		viewport: vp,
	}

	window.SetMouseButtonCallback(adapter.mouseButtonCallback)
	window.SetCursorPosCallback(adapter.cursorPosCallback)
	window.SetScrollCallback(adapter.scrollCallback)

	return adapter
}

// Dragging reports whether a pan gesture is in flight.
func (a *GLFWGestureAdapter) Dragging() bool {
	return a.dragging
}

func (a *GLFWGestureAdapter) event(x, y float64) scroll.GestureEvent {
	return scroll.GestureEvent{
		Pos:  scroll.Vec2{X: float32(x), Y: float32(y)},
		Time: glfw.GetTime(),
	}
}

func (a *GLFWGestureAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	x, y := w.GetCursorPos()

	switch action {
	case glfw.Press:
		a.dragging = true
		a.viewport.DragStart(a.event(x, y))
	case glfw.Release:
		if a.dragging {
			a.dragging = false
			a.viewport.DragEnd(a.event(x, y))
		}
	}
}

func (a *GLFWGestureAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if a.dragging {
		a.viewport.DragMove(a.event(xpos, ypos))
	}
}

func (a *GLFWGestureAdapter) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	view := scroll.Vec2{X: float32(xoff) * wheelStep, Y: float32(yoff) * wheelStep}
	a.viewport.ScrollBy(view.Div2(a.viewport.Scale()), false)
}
