package engine

import (
	"SpaceBox/internal/behaviour"
	"SpaceBox/internal/logger"
	"SpaceBox/internal/renderer"
	"SpaceBox/internal/renderer/opengl"
	"fmt"
	"runtime"

	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

const shiftSpeedFactor = 2.5

// Gopher owns the window, the GL context and the frame loop.
type Gopher struct {
	Width             int32
	Height            int32
	Title             string
	Camera            *renderer.Camera
	Renderer          *opengl.Renderer
	Behaviours        *behaviour.BehaviourManager
	EnableCameraInput bool // Control whether camera processes keyboard/mouse input

	window      *glfw.Window
	onInit      func(g *Gopher) error
	onRender    func(deltaTime float64)
	onClose     func()
	keyHandlers []func(key glfw.Key)

	lastX, lastY float64
	firstMouse   bool
}

func NewGopher(width, height int32) *Gopher {
	return &Gopher{
		Width:             width,
		Height:            height,
		Title:             "SpaceBox",
		Behaviours:        behaviour.GlobalBehaviourManager,
		EnableCameraInput: true,
		firstMouse:        true,
	}
}

// SetOnInit sets a callback run once the GL context and renderer exist, before the first frame.
func (gopher *Gopher) SetOnInit(callback func(g *Gopher) error) {
	gopher.onInit = callback
}

// SetOnRenderCallback sets the function that draws each frame. It runs between the
// behaviour update and the end-of-frame handlers.
func (gopher *Gopher) SetOnRenderCallback(callback func(deltaTime float64)) {
	gopher.onRender = callback
}

// SetOnClose sets a callback run after the last frame while the GL context is still current.
func (gopher *Gopher) SetOnClose(callback func()) {
	gopher.onClose = callback
}

// OnKey registers a handler for key presses. Repeats and releases are not reported.
func (gopher *Gopher) OnKey(handler func(key glfw.Key)) {
	gopher.keyHandlers = append(gopher.keyHandlers, handler)
}

// Render opens the window at (x, y) and runs the frame loop until it is closed.
func (gopher *Gopher) Render(x, y int) error {
	gopher.lastX, gopher.lastY = float64(gopher.Width/2), float64(gopher.Height/2)
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("could not initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(gopher.Width), int(gopher.Height), gopher.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("could not create glfw window: %w", err)
	}
	gopher.window = window
	defer window.Destroy()

	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("could not initialize OpenGL: %w", err)
	}
	glfw.SwapInterval(1)
	window.SetPos(x, y)

	gopher.Renderer = opengl.NewRenderer()
	if err := gopher.Renderer.Init(gopher.Width, gopher.Height); err != nil {
		return err
	}
	defer gopher.Renderer.Cleanup()

	gopher.Camera = renderer.NewDefaultCamera(gopher.Height, gopher.Width)

	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	window.SetCursorPosCallback(gopher.mouseCallback)
	window.SetKeyCallback(gopher.keyCallback)

	if gopher.onInit != nil {
		if err := gopher.onInit(gopher); err != nil {
			return err
		}
	}

	logger.Log.Info("Window opened",
		zap.Int32("width", gopher.Width),
		zap.Int32("height", gopher.Height))
	gopher.RenderLoop()
	if gopher.onClose != nil {
		gopher.onClose()
	}
	return nil
}

func (gopher *Gopher) RenderLoop() {
	var lastTime = glfw.GetTime()

	for !gopher.window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		// framebuffer size, which differs from the window size on high DPI screens
		width, height := gopher.window.GetFramebufferSize()
		if width > 0 && height > 0 && (int32(width) != gopher.Width || int32(height) != gopher.Height) {
			gopher.Width, gopher.Height = int32(width), int32(height)
			gopher.Renderer.UpdateViewport(gopher.Width, gopher.Height)
			gopher.Camera.SetAspectRatio(float32(width) / float32(height))
		}

		if gopher.EnableCameraInput {
			gopher.processKeyboard(float32(deltaTime))
		}

		gopher.Behaviours.RunFrame(func() {
			if gopher.onRender != nil {
				gopher.onRender(deltaTime)
			}
		})

		gopher.window.SwapBuffers()
		glfw.PollEvents()
	}
}

// SetTitle updates the window title. Before the window opens it only sets the initial title.
func (gopher *Gopher) SetTitle(title string) {
	gopher.Title = title
	if gopher.window != nil {
		gopher.window.SetTitle(title)
	}
}

// Close asks the loop to stop after the current frame.
func (gopher *Gopher) Close() {
	if gopher.window != nil {
		gopher.window.SetShouldClose(true)
	}
}

func (g *Gopher) GetMousePosition() mgl.Vec2 {
	x, y := g.window.GetCursorPos()
	return mgl.Vec2{float32(x), float32(y)}
}

// GetWindow returns the GLFW window
func (gopher *Gopher) GetWindow() *glfw.Window {
	return gopher.window
}

func (gopher *Gopher) processKeyboard(deltaTime float32) {
	x, z := keyAxes(gopher.window.GetKey)
	if x == 0 && z == 0 {
		return
	}
	if gopher.window.GetKey(glfw.KeyLeftShift) == glfw.Press || gopher.window.GetKey(glfw.KeyRightShift) == glfw.Press {
		deltaTime *= shiftSpeedFactor
	}
	gopher.Camera.Move(x, 0, z, deltaTime)
}

// keyAxes maps WASD to a right (x) and forward (z) direction.
func keyAxes(getKey func(glfw.Key) glfw.Action) (x, z float32) {
	if getKey(glfw.KeyW) == glfw.Press {
		z++
	}
	if getKey(glfw.KeyS) == glfw.Press {
		z--
	}
	if getKey(glfw.KeyA) == glfw.Press {
		x--
	}
	if getKey(glfw.KeyD) == glfw.Press {
		x++
	}
	return x, z
}

func (gopher *Gopher) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if key == glfw.KeyEscape {
		w.SetShouldClose(true)
		return
	}
	for _, handler := range gopher.keyHandlers {
		handler(key)
	}
}

// Mouse callback function
func (gopher *Gopher) mouseCallback(w *glfw.Window, xpos, ypos float64) {
	// Only rotate while the window is focused and the right mouse button is held
	if gopher.EnableCameraInput && w.GetAttrib(glfw.Focused) == glfw.True && w.GetMouseButton(glfw.MouseButtonRight) == glfw.Press {
		if gopher.firstMouse {
			gopher.lastX = xpos
			gopher.lastY = ypos
			gopher.firstMouse = false
			return
		}

		xoffset := xpos - gopher.lastX
		yoffset := gopher.lastY - ypos // Reversed since y-coordinates go from bottom to top
		gopher.lastX = xpos
		gopher.lastY = ypos

		gopher.Camera.ProcessMouseMovement(float32(xoffset), float32(yoffset), true)
	} else {
		gopher.firstMouse = true
	}
}
