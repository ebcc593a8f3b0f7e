package physics2d

import (
	"sync"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/phanxgames/crossdim"
)

// World is the engine handle: a Chipmunk space plus everything added to it.
// Stepping, adding and drawing are serialised by the world lock.
type World struct {
	mu     sync.Mutex
	space  *cp.Space
	bodies []*Body
	joints []*Joint
	mice   []*MouseConstraint

	steps    uint64
	stepTime time.Duration // wall time of the last step
}

// CreateEngine returns a new *World.
func (l *Library) CreateEngine() crossdim.Handle {
	return newWorld(l.Settings)
}

func newWorld(s Settings) *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: s.Gravity.X, Y: s.Gravity.Y})
	if s.Iterations > 0 {
		space.Iterations = s.Iterations
	}
	if s.SleepTimeThreshold > 0 {
		space.SleepTimeThreshold = s.SleepTimeThreshold
	}
	return &World{space: space}
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	t0 := time.Now()
	w.space.Step(dt)
	w.steps++
	w.stepTime = time.Since(t0)
}

// Steps returns how many times the world has been stepped.
func (w *World) Steps() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.steps
}

// Bodies returns a snapshot of the bodies in the world.
func (w *World) Bodies() []*Body {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// Joints returns a snapshot of the joints in the world.
func (w *World) Joints() []*Joint {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*Joint, len(w.joints))
	copy(out, w.joints)
	return out
}

func (w *World) add(bodies []*Body, joints []*Joint) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, b := range bodies {
		if b.world.Load() != nil {
			continue
		}
		w.space.AddBody(b.body)
		w.space.AddShape(b.shape)
		b.world.Store(w)
		w.bodies = append(w.bodies, b)
	}
	for _, j := range joints {
		if j.world.Load() != nil {
			continue
		}
		j.attach(w)
		w.joints = append(w.joints, j)
	}
}

func (w *World) addMouseConstraint(mc *MouseConstraint) {
	w.mu.Lock()
	w.mice = append(w.mice, mc)
	w.mu.Unlock()
}

// updateMice lets every mouse constraint follow its mouse.
func (w *World) updateMice() {
	w.mu.Lock()
	mice := make([]*MouseConstraint, len(w.mice))
	copy(mice, w.mice)
	w.mu.Unlock()
	for _, mc := range mice {
		mc.update()
	}
}

// Settled reports whether every dynamic body in the world is asleep. A world
// without dynamic bodies is settled.
func (w *World) Settled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, b := range w.bodies {
		if b.body.GetType() == cp.BODY_DYNAMIC && !b.body.IsSleeping() {
			return false
		}
	}
	return true
}

// locate returns the point t refers to: a fixed point, the body with t.Body
// as its ID, or the first body tagged t.Shape.
func (w *World) locate(t Target) (crossdim.Vector2, bool) {
	if t.At != nil {
		return crossdim.Vector2{X: t.At.X, Y: t.At.Y}, true
	}
	for _, b := range w.Bodies() {
		if (t.Body != 0 && b.ID == t.Body) || (t.Shape != "" && b.Tag.String() == t.Shape) {
			return b.position(), true
		}
	}
	return crossdim.Vector2{}, false
}
