package crossdim

// RenderStyle describes how the native renderer draws a body or constraint.
// Colours are CSS-style strings: "#rgb", "#rrggbb", or a colour name.
type RenderStyle struct {
	Visible     bool
	FillStyle   string
	StrokeStyle string
	LineWidth   float64
}

// CollisionFilter decides which bodies collide. Two bodies in the same
// non-zero group always collide (positive group) or never collide (negative
// group); otherwise each body's Category must appear in the other's Mask.
type CollisionFilter struct {
	Category uint32
	Mask     uint32
	Group    int32
}

// DefaultCollisionFilter collides with everything.
var DefaultCollisionFilter = CollisionFilter{Category: 0x0001, Mask: 0xFFFF, Group: 0x0001}

// --- Bodies ---

// BodyOptions configures circle and rectangle bodies.
type BodyOptions struct {
	IsStatic        bool
	IsSensor        bool
	IsKinematic     bool
	IsBullet        bool
	IsFixedRotation bool
	Friction        float64
	Restitution     float64
	Density         float64
	Render          RenderStyle
	CollisionFilter CollisionFilter
}

// DefaultBodyOptions returns the options a body gets when the caller passes none.
func DefaultBodyOptions() BodyOptions {
	return BodyOptions{
		Friction:    0.3,
		Restitution: 0.5,
		Density:     1,
		Render: RenderStyle{
			Visible:     true,
			FillStyle:   "#fff",
			StrokeStyle: "#fff",
			LineWidth:   1,
		},
		CollisionFilter: DefaultCollisionFilter,
	}
}

// BodyOption changes one field of BodyOptions. Options are applied in order
// over DefaultBodyOptions, so anything not mentioned keeps its default.
type BodyOption func(*BodyOptions)

func resolveBodyOptions(opts []BodyOption) BodyOptions {
	o := DefaultBodyOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Static makes the body immovable.
func Static() BodyOption { return func(o *BodyOptions) { o.IsStatic = true } }

// Sensor makes the body detect overlaps without colliding.
func Sensor() BodyOption { return func(o *BodyOptions) { o.IsSensor = true } }

// Kinematic makes the body move only when positioned or given velocity.
func Kinematic() BodyOption { return func(o *BodyOptions) { o.IsKinematic = true } }

// Bullet marks a fast-moving body.
func Bullet() BodyOption { return func(o *BodyOptions) { o.IsBullet = true } }

// FixedRotation stops the body from rotating.
func FixedRotation() BodyOption { return func(o *BodyOptions) { o.IsFixedRotation = true } }

// Friction sets the friction coefficient.
func Friction(f float64) BodyOption { return func(o *BodyOptions) { o.Friction = f } }

// Restitution sets the bounciness.
func Restitution(r float64) BodyOption { return func(o *BodyOptions) { o.Restitution = r } }

// Density sets the mass per unit area.
func Density(d float64) BodyOption { return func(o *BodyOptions) { o.Density = d } }

// Fill sets the fill colour.
func Fill(c string) BodyOption { return func(o *BodyOptions) { o.Render.FillStyle = c } }

// Stroke sets the outline colour.
func Stroke(c string) BodyOption { return func(o *BodyOptions) { o.Render.StrokeStyle = c } }

// LineWidth sets the outline width.
func LineWidth(w float64) BodyOption { return func(o *BodyOptions) { o.Render.LineWidth = w } }

// Hidden stops the renderer from drawing the body.
func Hidden() BodyOption { return func(o *BodyOptions) { o.Render.Visible = false } }

// Category sets the collision category bits.
func Category(bits uint32) BodyOption {
	return func(o *BodyOptions) { o.CollisionFilter.Category = bits }
}

// Mask sets the collision mask bits.
func Mask(bits uint32) BodyOption {
	return func(o *BodyOptions) { o.CollisionFilter.Mask = bits }
}

// Group sets the collision group.
func Group(g int32) BodyOption {
	return func(o *BodyOptions) { o.CollisionFilter.Group = g }
}

// WithBodyOptions replaces every field at once.
func WithBodyOptions(b BodyOptions) BodyOption { return func(o *BodyOptions) { *o = b } }

// --- Constraints ---

// ConstraintOptions configures a constraint between two bodies or points.
// PointA is an offset from BodyA's centre, or a world point when BodyA is nil;
// likewise PointB.
type ConstraintOptions struct {
	BodyA, BodyB    Handle
	PointA, PointB  *Vector2
	Stiffness       float64
	Damping         float64
	Length          float64 // rest length; 0 means the distance at creation
	Render          RenderStyle
	CollisionFilter CollisionFilter
	Label           string
}

// DefaultRopeOptions returns the options a rope gets when the caller passes none.
func DefaultRopeOptions() ConstraintOptions {
	return ConstraintOptions{
		Stiffness: 0.9,
		Render: RenderStyle{
			Visible:     true,
			StrokeStyle: "#ff0000",
			LineWidth:   1,
		},
		CollisionFilter: DefaultCollisionFilter,
		Label:           "Constraint",
	}
}

// defaultMouseConstraintOptions is used for every Scene's mouse constraint.
func defaultMouseConstraintOptions() ConstraintOptions {
	o := DefaultRopeOptions()
	o.Stiffness = 0.2
	o.Label = "Mouse Constraint"
	return o
}

// RopeOption changes one field of ConstraintOptions.
type RopeOption func(*ConstraintOptions)

func resolveRopeOptions(opts []RopeOption) ConstraintOptions {
	o := DefaultRopeOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// RopeBodies connects a to b. Either may be nil to pin that end to a world point.
func RopeBodies(a, b *RigidBody) RopeOption {
	return func(o *ConstraintOptions) {
		o.BodyA, o.BodyB = bodyHandle(a), bodyHandle(b)
	}
}

// RopePoints sets the attachment points.
func RopePoints(a, b Vector2) RopeOption {
	return func(o *ConstraintOptions) {
		o.PointA, o.PointB = a.Copy(), b.Copy()
	}
}

// RopeStiffness sets the stiffness in (0, 1]; 1 is rigid.
func RopeStiffness(s float64) RopeOption { return func(o *ConstraintOptions) { o.Stiffness = s } }

// RopeDamping sets the damping.
func RopeDamping(d float64) RopeOption { return func(o *ConstraintOptions) { o.Damping = d } }

// RopeLength sets the rest length.
func RopeLength(l float64) RopeOption { return func(o *ConstraintOptions) { o.Length = l } }

// RopeStroke sets the line colour.
func RopeStroke(c string) RopeOption {
	return func(o *ConstraintOptions) { o.Render.StrokeStyle = c }
}

// RopeLineWidth sets the line width.
func RopeLineWidth(w float64) RopeOption {
	return func(o *ConstraintOptions) { o.Render.LineWidth = w }
}

// RopeHidden stops the renderer from drawing the rope.
func RopeHidden() RopeOption { return func(o *ConstraintOptions) { o.Render.Visible = false } }

// RopeLabel sets the label.
func RopeLabel(l string) RopeOption { return func(o *ConstraintOptions) { o.Label = l } }

func bodyHandle(b *RigidBody) Handle {
	if b == nil {
		return nil
	}
	return b.Body
}
