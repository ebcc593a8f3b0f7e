package physics2d

import (
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/phanxgames/crossdim"
)

// mouseForce is the maximum force of a stiffness-1 mouse constraint.
const mouseForce = 100000.0

// mouseGrabRadius is how far from a shape a press still grabs it.
const mouseGrabRadius = 5.0

// syntheticMouseEvent is a queued injected mouse state.
type syntheticMouseEvent struct {
	x, y    float64
	pressed bool
}

// Mouse is the mouse input handle. Each renderer update it polls Ebitengine,
// unless injected events are queued, in which case it consumes one per update.
type Mouse struct {
	mu       sync.Mutex
	Position crossdim.Vector2
	Pressed  bool

	wasPressed  bool
	justPressed bool
	justRelease bool
	injectQueue []syntheticMouseEvent

	// read returns the real cursor in screen pixels.
	read func() (x, y int, pressed bool)
}

func ebitenCursor() (int, int, bool) {
	x, y := ebiten.CursorPosition()
	return x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// CreateMouse returns a new *Mouse. The canvas is not needed: Ebitengine
// reports the cursor relative to the game screen.
func (l *Library) CreateMouse(crossdim.Handle) crossdim.Handle {
	return &Mouse{read: ebitenCursor}
}

// InjectPress queues a press at (x, y).
func (m *Mouse) InjectPress(x, y float64) {
	m.inject(syntheticMouseEvent{x: x, y: y, pressed: true})
}

// InjectClick queues a press and a release at (x, y), one per frame.
func (m *Mouse) InjectClick(x, y float64) {
	m.InjectPress(x, y)
	m.InjectRelease(x, y)
}

// InjectMove queues a move to (x, y) with the button held. Use it between
// InjectPress and InjectRelease to drag.
func (m *Mouse) InjectMove(x, y float64) {
	m.inject(syntheticMouseEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a release at (x, y).
func (m *Mouse) InjectRelease(x, y float64) {
	m.inject(syntheticMouseEvent{x: x, y: y, pressed: false})
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves and
// a release at (toX, toY). Minimum frames is 2.
func (m *Mouse) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	m.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		m.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	m.InjectRelease(toX, toY)
}

// Pending returns the number of queued injected events.
func (m *Mouse) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.injectQueue)
}

func (m *Mouse) inject(e syntheticMouseEvent) {
	m.mu.Lock()
	m.injectQueue = append(m.injectQueue, e)
	m.mu.Unlock()
}

// poll refreshes the mouse state from the inject queue or from Ebitengine.
func (m *Mouse) poll(pixelRatio float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.injectQueue) > 0 {
		e := m.injectQueue[0]
		copy(m.injectQueue, m.injectQueue[1:])
		m.injectQueue = m.injectQueue[:len(m.injectQueue)-1]
		m.update(e.x, e.y, e.pressed)
		return
	}

	if m.read == nil {
		return
	}
	cx, cy, pressed := m.read()
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	m.update(float64(cx)/pixelRatio, float64(cy)/pixelRatio, pressed)
}

func (m *Mouse) update(x, y float64, pressed bool) {
	m.Position = crossdim.Vector2{X: x, Y: y}
	m.wasPressed, m.Pressed = m.Pressed, pressed
	m.justPressed = pressed && !m.wasPressed
	m.justRelease = !pressed && m.wasPressed
}

func (m *Mouse) snapshot() (pos crossdim.Vector2, pressed, justPressed, justReleased bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Position, m.Pressed, m.justPressed, m.justRelease
}

// MouseConstraint drags the body under the mouse with a pivot joint whose
// strength follows the constraint stiffness.
type MouseConstraint struct {
	Options crossdim.ConstraintOptions

	world     *World
	mouse     *Mouse
	mouseBody *cp.Body
	joint     *cp.Constraint
	grabbed   *Body
}

// CreateMouseConstraint returns a *MouseConstraint for engine and mouse.
func (l *Library) CreateMouseConstraint(engine, mouse crossdim.Handle, opts crossdim.ConstraintOptions) crossdim.Handle {
	w, _ := engine.(*World)
	m, _ := mouse.(*Mouse)
	mc := &MouseConstraint{
		Options:   opts,
		world:     w,
		mouse:     m,
		mouseBody: cp.NewKinematicBody(),
	}
	if w != nil {
		w.addMouseConstraint(mc)
	}
	return mc
}

// Grabbed returns the body being dragged, or nil.
func (mc *MouseConstraint) Grabbed() *Body {
	if mc.world == nil {
		return nil
	}
	mc.world.mu.Lock()
	defer mc.world.mu.Unlock()
	return mc.grabbed
}

// update follows the mouse and grabs or releases bodies.
func (mc *MouseConstraint) update() {
	if mc.world == nil || mc.mouse == nil {
		return
	}
	pos, pressed, justPressed, justReleased := mc.mouse.snapshot()
	p := cp.Vector{X: pos.X, Y: pos.Y}

	w := mc.world
	w.mu.Lock()
	defer w.mu.Unlock()

	mc.mouseBody.SetPosition(p)

	if justReleased || (!pressed && mc.joint != nil) {
		mc.release()
		return
	}
	if !justPressed || mc.joint != nil {
		return
	}

	info := w.space.PointQueryNearest(p, mouseGrabRadius, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return
	}
	b, ok := info.Shape.UserData.(*Body)
	if !ok || b.Options.IsStatic || b.Options.IsKinematic {
		return
	}
	// Grab at the contact point, or the cursor when it is inside the shape.
	grab := p
	if info.Distance > 0 {
		grab = info.Point
	}
	mc.joint = cp.NewPivotJoint2(mc.mouseBody, b.body, cp.Vector{}, b.body.WorldToLocal(grab))
	mc.joint.SetMaxForce(mc.Options.Stiffness * mouseForce)
	mc.joint.SetErrorBias(math.Pow(1-0.15, 60))
	w.space.AddConstraint(mc.joint)
	mc.grabbed = b
}

// release drops the grabbed body. Callers hold the world lock.
func (mc *MouseConstraint) release() {
	if mc.joint == nil {
		return
	}
	mc.world.space.RemoveConstraint(mc.joint)
	mc.joint = nil
	mc.grabbed = nil
}
