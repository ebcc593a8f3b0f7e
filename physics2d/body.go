package physics2d

import (
	"math"
	"sync/atomic"

	"github.com/jakecoffman/cp"
	"github.com/phanxgames/crossdim"
)

// Kind is the geometry of a Body.
type Kind uint8

const (
	KindCircle Kind = iota
	KindBox
)

// Body is the handle of a circle or rectangle. Until it is added to a World it
// exists only on its own; SetPosition and Position work either way.
type Body struct {
	ID      uint32
	Kind    Kind
	Tag     crossdim.ShapeTag
	Radius  float64 // KindCircle
	Width   float64 // KindBox
	Height  float64 // KindBox
	Options crossdim.BodyOptions

	body  *cp.Body
	shape *cp.Shape
	world atomic.Pointer[World]
}

// Circle returns a circle Body handle.
func (l *Library) Circle(x, y, r float64, opts crossdim.BodyOptions) crossdim.Handle {
	mass := opts.Density * cp.AreaForCircle(0, r)
	b := &Body{ID: l.id(), Kind: KindCircle, Radius: r, Options: opts}
	b.body = newCPBody(opts, mass, cp.MomentForCircle(mass, 0, r, cp.Vector{}))
	b.shape = cp.NewCircle(b.body, r, cp.Vector{})
	b.finish(x, y)
	return b
}

// Rectangle returns a box Body handle.
func (l *Library) Rectangle(x, y, w, h float64, opts crossdim.BodyOptions) crossdim.Handle {
	mass := opts.Density * w * h
	b := &Body{ID: l.id(), Kind: KindBox, Width: w, Height: h, Options: opts}
	b.body = newCPBody(opts, mass, cp.MomentForBox(mass, w, h))
	b.shape = cp.NewBox(b.body, w, h, 0)
	b.finish(x, y)
	return b
}

func newCPBody(opts crossdim.BodyOptions, mass, moment float64) *cp.Body {
	switch {
	case opts.IsStatic:
		return cp.NewStaticBody()
	case opts.IsKinematic:
		return cp.NewKinematicBody()
	}
	if opts.IsFixedRotation {
		moment = math.Inf(1)
	}
	return cp.NewBody(mass, moment)
}

func (b *Body) finish(x, y float64) {
	o := b.Options
	b.shape.SetFriction(o.Friction)
	b.shape.SetElasticity(o.Restitution)
	b.shape.SetSensor(o.IsSensor)
	b.shape.SetFilter(shapeFilter(o.CollisionFilter))
	b.shape.UserData = b
	b.body.UserData = b
	b.body.SetPosition(cp.Vector{X: x, Y: y})
}

// shapeFilter maps a collision filter onto Chipmunk's. A negative group never
// collides with itself, which is Chipmunk's group rule; non-negative groups
// fall back to category and mask.
func shapeFilter(f crossdim.CollisionFilter) cp.ShapeFilter {
	var group uint
	if f.Group < 0 {
		group = uint(-f.Group)
	}
	return cp.ShapeFilter{
		Group:      group,
		Categories: uint(f.Category),
		Mask:       uint(f.Mask),
	}
}

func (b *Body) lock() func() {
	if w := b.world.Load(); w != nil {
		w.mu.Lock()
		return w.mu.Unlock
	}
	return func() {}
}

func (b *Body) setPosition(x, y float64) {
	defer b.lock()()
	b.body.SetPosition(cp.Vector{X: x, Y: y})
	if w := b.world.Load(); w != nil {
		b.body.Activate()
		if b.Options.IsStatic {
			w.space.ReindexShapesForBody(b.body)
		}
	}
}

func (b *Body) position() crossdim.Vector2 {
	defer b.lock()()
	p := b.body.Position()
	return crossdim.Vector2{X: p.X, Y: p.Y}
}

// Angle returns the rotation in radians.
func (b *Body) Angle() float64 {
	defer b.lock()()
	return b.body.Angle()
}

// Velocity returns the linear velocity.
func (b *Body) Velocity() crossdim.Vector2 {
	defer b.lock()()
	v := b.body.Velocity()
	return crossdim.Vector2{X: v.X, Y: v.Y}
}

// SetVelocity sets the linear velocity.
func (b *Body) SetVelocity(x, y float64) {
	defer b.lock()()
	b.body.SetVelocity(x, y)
}

// InWorld reports whether the body has been added to a World.
func (b *Body) InWorld() bool {
	return b.world.Load() != nil
}

// corners returns the world-space corners of a box, clockwise from top-left.
// Callers hold the world lock.
func (b *Body) corners() [4]cp.Vector {
	hw, hh := b.Width/2, b.Height/2
	return [4]cp.Vector{
		b.body.LocalToWorld(cp.Vector{X: -hw, Y: -hh}),
		b.body.LocalToWorld(cp.Vector{X: hw, Y: -hh}),
		b.body.LocalToWorld(cp.Vector{X: hw, Y: hh}),
		b.body.LocalToWorld(cp.Vector{X: -hw, Y: hh}),
	}
}
