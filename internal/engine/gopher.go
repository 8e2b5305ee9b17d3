package engine

import (
	"fmt"
	"runtime"

	behaviour "Craftmine/internal/behaviour"
	"Craftmine/internal/logger"
	"Craftmine/internal/renderer"

	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Initialize to the center of the window
var lastX, lastY float64
var firstMouse bool = true

type Gopher struct {
	Width             int32
	Height            int32
	Title             string
	Light             *renderer.Light
	Camera            *renderer.Camera
	FogDistance       float32
	EnableCameraInput bool // Control whether camera processes keyboard/mouse input

	rendererAPI      *renderer.OpenGLRenderer
	window           *glfw.Window
	frameTrackId     int
	onRenderCallback func(deltaTime float64)
	onKeyPress       func(key glfw.Key)
}

func NewGopher(width, height int32, chunkSize int) *Gopher {
	logger.Log.Info("Craftmine initializing...")
	return &Gopher{
		rendererAPI:       renderer.NewOpenGLRenderer(chunkSize),
		Width:             width,
		Height:            height,
		Title:             "Craftmine",
		Light:             renderer.CreateSunlight(mgl.Vec3{-0.4, -1, -0.3}),
		FogDistance:       float32(chunkSize) * 4,
		frameTrackId:      0,
		EnableCameraInput: true,
	}
}

// Render opens the window and runs the frame loop until the window is closed. It must
// be called from the main goroutine.
func (gopher *Gopher) Render(x, y int) error {
	lastX, lastY = float64(gopher.Width/2), float64(gopher.Height/2)
	runtime.LockOSThread()

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

	var err error
	gopher.window, err = glfw.CreateWindow(int(gopher.Width), int(gopher.Height), gopher.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("could not create glfw window: %w", err)
	}
	gopher.window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if x >= 0 && y >= 0 {
		gopher.window.SetPos(x, y)
	}

	if err := gopher.rendererAPI.Init(gopher.Width, gopher.Height); err != nil {
		return err
	}

	gopher.Camera = renderer.NewDefaultCamera(gopher.Width, gopher.Height)

	gopher.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	gopher.window.SetCursorPosCallback(gopher.mouseCallback)
	gopher.window.SetKeyCallback(gopher.keyCallback)

	gopher.RenderLoop()
	return nil
}

func (gopher *Gopher) RenderLoop() {
	var lastTime = glfw.GetTime()
	var lastWidth, lastHeight int32 = gopher.Width, gopher.Height

	for !gopher.window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		actualWidth, actualHeight := gopher.window.GetFramebufferSize()
		if int32(actualWidth) != lastWidth || int32(actualHeight) != lastHeight {
			gopher.Width, gopher.Height = int32(actualWidth), int32(actualHeight)
			if gopher.Width > 0 && gopher.Height > 0 {
				gopher.rendererAPI.UpdateViewport(gopher.Width, gopher.Height)
				gopher.Camera.SetAspectRatio(float32(gopher.Width) / float32(gopher.Height))
			}
			lastWidth, lastHeight = gopher.Width, gopher.Height
		}

		if gopher.EnableCameraInput {
			gopher.Camera.ProcessKeyboard(gopher.window, float32(deltaTime))
		}

		//TODO: Fixed updates run every third frame; tie them to wall time instead
		if gopher.frameTrackId >= 2 {
			behaviour.GlobalBehaviourManager.UpdateAllFixed()
			gopher.frameTrackId = 0
		}
		behaviour.GlobalBehaviourManager.UpdateAll()

		gopher.rendererAPI.BeginFrame(gopher.Camera, gopher.Light, gopher.FogDistance)
		if gopher.onRenderCallback != nil {
			gopher.onRenderCallback(deltaTime)
		}

		gopher.window.SwapBuffers()
		gopher.frameTrackId++
		glfw.PollEvents()
	}

	// Behaviours release their GPU resources while the context is still current.
	behaviour.GlobalBehaviourManager.StopAll()
	gopher.rendererAPI.Cleanup()
	logger.Log.Info("Render loop stopped")
}

// SetOnRenderCallback sets a callback that will be called each frame after the frame
// uniforms are set, to draw the scene.
func (gopher *Gopher) SetOnRenderCallback(callback func(deltaTime float64)) {
	gopher.onRenderCallback = callback
}

// SetOnKeyPress registers a callback for key presses (not repeats or releases).
func (gopher *Gopher) SetOnKeyPress(callback func(key glfw.Key)) {
	gopher.onKeyPress = callback
}

func (gopher *Gopher) SetDebugMode(debug bool) {
	renderer.Debug = debug
}

func (gopher *Gopher) SetFrustumCulling(enabled bool) {
	renderer.FrustumCullingEnabled = enabled
}

func (gopher *Gopher) SetFaceCulling(enabled bool) {
	renderer.FaceCullingEnabled = enabled
}

// GetRenderer returns the renderer, which is also the chunk GPU backend
func (gopher *Gopher) GetRenderer() *renderer.OpenGLRenderer {
	return gopher.rendererAPI
}

// GetWindow returns the GLFW window
func (gopher *Gopher) GetWindow() *glfw.Window {
	return gopher.window
}

func (gopher *Gopher) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if key == glfw.KeyEscape {
		w.SetShouldClose(true)
		return
	}
	if gopher.onKeyPress != nil {
		gopher.onKeyPress(key)
	}
}

// Mouse callback function
func (gopher *Gopher) mouseCallback(w *glfw.Window, xpos, ypos float64) {
	// Only look around while the right mouse button is held
	if gopher.EnableCameraInput && w.GetAttrib(glfw.Focused) == glfw.True && w.GetMouseButton(glfw.MouseButtonRight) == glfw.Press {
		if firstMouse {
			lastX = xpos
			lastY = ypos
			firstMouse = false
			return
		}

		xoffset := xpos - lastX
		yoffset := ypos - lastY
		lastX = xpos
		lastY = ypos

		gopher.Camera.ProcessMouseMovement(float32(xoffset), float32(yoffset), true)
	} else {
		firstMouse = true
	}
}
