package engine

import (
	"Globe3D/internal/behaviour"
	"Globe3D/internal/logger"
	"Globe3D/internal/renderer"
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Scene supplies what the viewer draws each frame.
type Scene interface {
	Camera() *renderer.Camera
	Lights() []*renderer.Light
}

// InputHandler receives window input in window coordinates.
type InputHandler interface {
	PointerMove(x, y float32)
	PointerLeave()
	PointerClick(x, y float32)
	DragStart()
	Drag(dx, dy float32, pan bool)
	DragEnd()
	Scroll(delta float32)
	Resize(width, height int32)
}

type Viewer struct {
	Width       int32
	Height      int32
	Title       string
	Transparent bool // Request an alpha framebuffer so the desktop shows through
	VSync       bool
	Behaviours  *behaviour.BehaviourManager
	Scene       Scene
	Input       InputHandler

	// OnReady runs once on the render thread after the GL context exists.
	OnReady func(rend renderer.Render) error
	// OnClose runs on the render thread before GL resources are released.
	OnClose func()

	rendererAPI renderer.Render
	window      *glfw.Window
	pointer     *pointerTracker
}

func NewViewer(width, height int32, title string) *Viewer {
	return &Viewer{
		Width:       width,
		Height:      height,
		Title:       title,
		VSync:       true,
		Behaviours:  behaviour.NewBehaviourManager(),
		rendererAPI: &renderer.OpenGLRenderer{},
	}
}

// Run opens the window and blocks in the frame loop until the window closes
// or ctx is cancelled. It must be called from the main goroutine.
func (v *Viewer) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("could not initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if v.Transparent {
		glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)
	}

	window, err := glfw.CreateWindow(int(v.Width), int(v.Height), v.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("could not create glfw window: %w", err)
	}
	v.window = window
	window.MakeContextCurrent()
	if v.VSync {
		glfw.SwapInterval(1)
	}
	SetDarkTitleBar(window)

	fbWidth, fbHeight := window.GetFramebufferSize()
	v.rendererAPI.Init(int32(fbWidth), int32(fbHeight), window)

	v.pointer = newPointerTracker(v.Input)
	window.SetCursorPosCallback(v.cursorPosCallback)
	window.SetMouseButtonCallback(v.mouseButtonCallback)
	window.SetCursorEnterCallback(v.cursorEnterCallback)
	window.SetScrollCallback(v.scrollCallback)
	window.SetFramebufferSizeCallback(v.framebufferSizeCallback)

	if v.Input != nil {
		v.Input.Resize(v.Width, v.Height)
	}
	if v.OnReady != nil {
		if err := v.OnReady(v.rendererAPI); err != nil {
			v.rendererAPI.Cleanup()
			return err
		}
	}

	logger.Log.Info("Viewer started",
		zap.Int32("width", v.Width),
		zap.Int32("height", v.Height),
		zap.Bool("transparent", v.Transparent))

	v.RenderLoop(ctx)
	return nil
}

func (v *Viewer) RenderLoop(ctx context.Context) {
	lastTime := glfw.GetTime()

	for !v.window.ShouldClose() {
		if ctx.Err() != nil {
			logger.Log.Info("Viewer stopping", zap.Error(ctx.Err()))
			break
		}

		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		v.Behaviours.UpdateAll(float32(deltaTime))

		if v.Scene != nil {
			v.rendererAPI.Render(v.Scene.Camera(), v.Scene.Lights())
		}

		v.window.SwapBuffers()
		glfw.PollEvents()
	}

	if v.OnClose != nil {
		v.OnClose()
	}
	v.rendererAPI.Cleanup()
}

// GetWindow returns the GLFW window, nil before Run.
func (v *Viewer) GetWindow() *glfw.Window {
	return v.window
}

// GetRenderer returns the renderer API
func (v *Viewer) GetRenderer() renderer.Render {
	return v.rendererAPI
}

// SetWireframe switches every model to line rendering.
func (v *Viewer) SetWireframe(on bool) {
	renderer.Wireframe = on
}

func (v *Viewer) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	v.pointer.move(float32(xpos), float32(ypos))
}

func (v *Viewer) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	x, y := w.GetCursorPos()
	switch action {
	case glfw.Press:
		v.pointer.press(float32(x), float32(y), button == glfw.MouseButtonRight || button == glfw.MouseButtonMiddle)
	case glfw.Release:
		v.pointer.release(float32(x), float32(y))
	}
}

func (v *Viewer) cursorEnterCallback(_ *glfw.Window, entered bool) {
	if !entered {
		v.pointer.leave()
	}
}

func (v *Viewer) scrollCallback(_ *glfw.Window, _, yoff float64) {
	if v.Input != nil {
		v.Input.Scroll(float32(yoff))
	}
}

// framebufferSizeCallback keeps the viewport in framebuffer pixels and the
// input handler in window coordinates, which differ on HiDPI displays.
func (v *Viewer) framebufferSizeCallback(w *glfw.Window, width, height int) {
	v.rendererAPI.UpdateViewport(int32(width), int32(height))
	ww, wh := w.GetSize()
	v.Width, v.Height = int32(ww), int32(wh)
	if v.Input != nil {
		v.Input.Resize(v.Width, v.Height)
	}
}
