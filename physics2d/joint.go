package physics2d

import (
	"sync/atomic"

	"github.com/jakecoffman/cp"
	"github.com/phanxgames/crossdim"
)

// Spring scaling from unit stiffness and damping to Chipmunk's units.
const (
	springStiffness = 5000.0
	springDamping   = 100.0
)

// Joint is the handle of a constraint. Chipmunk needs both bodies to exist
// before a constraint can be built, so the constraint is built when the joint
// is added to a World. An end without a body is pinned to the world.
type Joint struct {
	ID      uint32
	Tag     crossdim.ShapeTag
	Options crossdim.ConstraintOptions

	world      atomic.Pointer[World]
	bodyA      *cp.Body
	bodyB      *cp.Body
	constraint *cp.Constraint
}

// Constraint returns a Joint handle.
func (l *Library) Constraint(opts crossdim.ConstraintOptions) crossdim.Handle {
	return &Joint{ID: l.id(), Options: opts}
}

// attach builds the Chipmunk constraint in w. Callers hold the world lock.
func (j *Joint) attach(w *World) {
	o := j.Options
	j.world.Store(w)
	j.bodyA = endpointBody(w, o.BodyA)
	j.bodyB = endpointBody(w, o.BodyB)
	anchorA := anchor(o.PointA)
	anchorB := anchor(o.PointB)

	length := o.Length
	if length == 0 {
		length = j.bodyA.LocalToWorld(anchorA).Distance(j.bodyB.LocalToWorld(anchorB))
	}

	if o.Stiffness >= 1 {
		j.constraint = cp.NewPinJoint(j.bodyA, j.bodyB, anchorA, anchorB)
	} else {
		j.constraint = cp.NewDampedSpring(j.bodyA, j.bodyB, anchorA, anchorB,
			length, o.Stiffness*springStiffness, o.Damping*springDamping)
	}
	w.space.AddConstraint(j.constraint)
}

// endpointBody resolves a joint end. A nil or foreign handle pins to the
// world's static body, where the anchor is a world point.
func endpointBody(w *World, h crossdim.Handle) *cp.Body {
	if b, ok := h.(*Body); ok && b.world.Load() == w {
		return b.body
	}
	return w.space.StaticBody
}

func anchor(p *crossdim.Vector2) cp.Vector {
	if p == nil {
		return cp.Vector{}
	}
	return cp.Vector{X: p.X, Y: p.Y}
}

// Endpoints returns the world positions of both ends. Before the joint is in
// a world it reports the raw points.
func (j *Joint) Endpoints() (a, b crossdim.Vector2) {
	w := j.world.Load()
	if w == nil {
		pa, pb := anchor(j.Options.PointA), anchor(j.Options.PointB)
		return crossdim.Vector2{X: pa.X, Y: pa.Y}, crossdim.Vector2{X: pb.X, Y: pb.Y}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return j.endpoints()
}

// endpoints is Endpoints for callers holding the world lock.
func (j *Joint) endpoints() (a, b crossdim.Vector2) {
	pa := j.bodyA.LocalToWorld(anchor(j.Options.PointA))
	pb := j.bodyB.LocalToWorld(anchor(j.Options.PointB))
	return crossdim.Vector2{X: pa.X, Y: pa.Y}, crossdim.Vector2{X: pb.X, Y: pb.Y}
}
