package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical viewer action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionToggleGravity
	ActionToggleWireframe
	ActionAmbientUp
	ActionAmbientDown
	ActionToggleMouseCapture
	ActionReloadShaders
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	"move_forward",
	"move_backward",
	"move_left",
	"move_right",
	"jump",
	"toggle_gravity",
	"toggle_wireframe",
	"ambient_up",
	"ambient_down",
	"toggle_mouse_capture",
	"reload_shaders",
	"quit",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// InputManager maps physical keys and buttons to logical actions with edge
// detection, and accumulates mouse motion and scroll between frames.
type InputManager struct {
	mu sync.RWMutex

	// one key can map to multiple actions
	keyToActions         map[glfw.Key][]Action
	mouseButtonToActions map[glfw.MouseButton][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	lastX, lastY   float64
	haveCursor     bool
	deltaX, deltaY float64
	scrollX        float64
	scrollY        float64
}

// NewInputManager creates an InputManager with the default bindings.
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyUp, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyDown, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyLeft, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeyRight, ActionMoveRight)
	im.BindKey(glfw.KeySpace, ActionJump)
	im.BindKey(glfw.KeyG, ActionToggleGravity)
	im.BindKey(glfw.KeyF, ActionToggleWireframe)
	im.BindKey(glfw.KeyEqual, ActionAmbientUp)
	im.BindKey(glfw.KeyKPAdd, ActionAmbientUp)
	im.BindKey(glfw.KeyMinus, ActionAmbientDown)
	im.BindKey(glfw.KeyKPSubtract, ActionAmbientDown)
	im.BindKey(glfw.KeyTab, ActionToggleMouseCapture)
	im.BindKey(glfw.KeyR, ActionReloadShaders)
	im.BindKey(glfw.KeyQ, ActionQuit)
	im.BindKey(glfw.KeyEscape, ActionQuit)

	im.BindMouseButton(glfw.MouseButtonLeft, ActionToggleMouseCapture)

	return im
}

// BindKey binds a physical key to a logical action.
// Multiple keys can be bound to the same action (e.g. WASD and arrow keys).
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()
	delete(im.keyToActions, key)
}

// BindMouseButton binds a mouse button to a logical action
func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

// HandleKeyEvent processes a key event. Repeat counts as held.
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.apply(im.keyToActions[key], action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButtonEvent processes a mouse button event.
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.apply(im.mouseButtonToActions[button], action == glfw.Press)
}

// apply records edges as events arrive so taps shorter than a frame count.
func (im *InputManager) apply(actions []Action, pressed bool) {
	for _, act := range actions {
		if pressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !pressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = pressed
	}
}

// HandleCursorPos accumulates motion since the previous sample. The first
// sample after ResetMouse only records the position.
func (im *InputManager) HandleCursorPos(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.haveCursor {
		im.deltaX += x - im.lastX
		im.deltaY += y - im.lastY
	}
	im.lastX, im.lastY = x, y
	im.haveCursor = true
}

// ResetMouse drops accumulated motion and forgets the last cursor position,
// e.g. after the cursor was captured or released.
func (im *InputManager) ResetMouse() {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.haveCursor = false
	im.deltaX, im.deltaY = 0, 0
}

// ConsumeMouseDelta returns the motion accumulated since the last call.
func (im *InputManager) ConsumeMouseDelta() (dx, dy float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	dx, dy = im.deltaX, im.deltaY
	im.deltaX, im.deltaY = 0, 0
	return dx, dy
}

func (im *InputManager) HandleScroll(xoff, yoff float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.scrollX += xoff
	im.scrollY += yoff
}

// ConsumeScroll returns the scroll accumulated since the last call.
func (im *InputManager) ConsumeScroll() (x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	x, y = im.scrollX, im.scrollY
	im.scrollX, im.scrollY = 0, 0
	return x, y
}

// Attach installs the GLFW callbacks for this input manager.
func (im *InputManager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		im.HandleCursorPos(x, y)
	})
	window.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		im.HandleScroll(xoff, yoff)
	})
}

// PostUpdate clears the edge flags. Call once at the end of each frame.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()
	clear(im.justPressed[:])
	clear(im.justReleased[:])
}

// IsActive returns true while the action is held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justReleased[action]
}
