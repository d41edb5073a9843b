// Example demonstrates a pannable, recycling tile grid in a GLFW window.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Drag with the left mouse button to pan (release fast to fling), use the
// wheel to scroll, press C to drop the recycling queues, and Home to animate
// back to the origin. Tiles snap to cell boundaries when the content settles.
package main

import (
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/scroll"
	"github.com/go-theft-auto/scroll/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "scroll example"
	cellSize     = 120
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize GLFW.
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	// Initialize OpenGL.
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("quad renderer: %w", err)
	}
	defer renderer.Delete()

	// Interaction parameters, with optional overrides from scroll.toml.
	tuning, err := scroll.LoadTuning("scroll.toml")
	if err != nil {
		return fmt.Errorf("tuning: %w", err)
	}

	vp := scroll.New(renderer, tuning)
	defer vp.Release()
	vp.SetContainerSize(scroll.Vec2{X: windowWidth, Y: windowHeight})

	// Snap the settled position to whole cells; long presses just log.
	vp.SetPanHooks(scroll.PanHooks{
		Snap: func(proposed, _ scroll.Vec2) (scroll.Vec2, bool) {
			return scroll.Vec2{
				X: float32(math.Round(float64(proposed.X/cellSize))) * cellSize,
				Y: float32(math.Round(float64(proposed.Y/cellSize))) * cellSize,
			}, true
		},
		LongPress: func(pos scroll.Vec2) {
			fmt.Printf("long press at (%.0f, %.0f)\n", pos.X, pos.Y)
		},
	})

	tiles := scroll.NewGridSource("tiles", scroll.GridConfig{
		ItemSize: scroll.Vec2{X: cellSize, Y: cellSize},
		CountX:   -1,
		CountY:   -1,
		Render: func(it *scroll.Item[scroll.IndexPair], _ scroll.Source) {
			t := vp.Transform()
			pos := t.ContentToContainer(it.Layout.Offset)
			size := it.Layout.Size.Mul2(t.Scale)
			renderer.DrawQuad(pos, size, tileColor(it.Index))
		},
	})
	vp.AttachSource(tiles)

	opengl.NewGLFWGestureAdapter(window, vp)

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyC:
			vp.ClearQueues()
		case glfw.KeyHome:
			vp.ScrollTo(scroll.Vec2{}, true)
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		}
	})
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		renderer.Resize(w, h)
		vp.SetContainerSize(scroll.Vec2{X: float32(w), Y: float32(h)})
	})

	// Main loop.
	last := glfw.GetTime()
	for !window.ShouldClose() {
		glfw.PollEvents()

		now := glfw.GetTime()
		dt := float32(now - last)
		last = now

		animating := vp.Step(dt)
		if !animating && !renderer.NeedsRender() {
			continue
		}

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		renderer.BeginFrame()
		vp.RenderPass()
		renderer.Flush()

		window.SwapBuffers()
	}

	return nil
}

// tileColor derives a stable checkerboard-ish color from the cell index.
func tileColor(idx scroll.IndexPair) opengl.Color {
	r := 0.25 + 0.5*float32((idx.X%3+3)%3)/2
	g := 0.25 + 0.5*float32((idx.Y%3+3)%3)/2
	b := float32(0.4)
	if (idx.X+idx.Y)%2 == 0 {
		b = 0.7
	}
	return opengl.Color{r, g, b, 1}
}
