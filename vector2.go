package crossdim

import "math"

// Vector2 is a mutable 2D vector. Every operation that does not answer a
// scalar mutates the receiver and returns it, so calls chain:
//
//	v := crossdim.NewVector2(1, 2)
//	v.Add(w).MulScalar(2).SubXY(1, 1)
//
// Binary operations come in two forms: one taking another vector and one
// taking the components (the XY suffix). No operation guards against zero
// lengths or zero divisors; those produce NaN or Inf.
type Vector2 struct {
	X, Y float64
}

// NewVector2 returns a new vector (x, y).
func NewVector2(x, y float64) *Vector2 {
	return &Vector2{X: x, Y: y}
}

// Add adds o component-wise.
func (v *Vector2) Add(o Vector2) *Vector2 { return v.AddXY(o.X, o.Y) }

// AddXY adds (x, y).
func (v *Vector2) AddXY(x, y float64) *Vector2 {
	v.X += x
	v.Y += y
	return v
}

// Sub subtracts o component-wise.
func (v *Vector2) Sub(o Vector2) *Vector2 { return v.SubXY(o.X, o.Y) }

// SubXY subtracts (x, y).
func (v *Vector2) SubXY(x, y float64) *Vector2 {
	v.X -= x
	v.Y -= y
	return v
}

// Mul multiplies component-wise by o.
func (v *Vector2) Mul(o Vector2) *Vector2 { return v.MulXY(o.X, o.Y) }

// MulXY multiplies X by x and Y by y.
func (v *Vector2) MulXY(x, y float64) *Vector2 {
	v.X *= x
	v.Y *= y
	return v
}

// MulScalar multiplies both components by n.
func (v *Vector2) MulScalar(n float64) *Vector2 {
	v.X *= n
	v.Y *= n
	return v
}

// Div divides component-wise by o.
func (v *Vector2) Div(o Vector2) *Vector2 { return v.DivXY(o.X, o.Y) }

// DivXY divides X by x and Y by y.
func (v *Vector2) DivXY(x, y float64) *Vector2 {
	v.X /= x
	v.Y /= y
	return v
}

// DivScalar divides both components by n.
func (v *Vector2) DivScalar(n float64) *Vector2 {
	v.X /= n
	v.Y /= n
	return v
}

// Set copies o into v.
func (v *Vector2) Set(o Vector2) *Vector2 { return v.SetXY(o.X, o.Y) }

// SetXY sets the components.
func (v *Vector2) SetXY(x, y float64) *Vector2 {
	v.X = x
	v.Y = y
	return v
}

// Copy returns a new vector with the same components.
func (v *Vector2) Copy() *Vector2 {
	return &Vector2{X: v.X, Y: v.Y}
}

// Distance returns the Euclidean distance to o.
func (v *Vector2) Distance(o Vector2) float64 { return v.DistanceXY(o.X, o.Y) }

// DistanceXY returns the Euclidean distance to (x, y).
func (v *Vector2) DistanceXY(x, y float64) float64 {
	return math.Hypot(v.X-x, v.Y-y)
}

// DistanceSq returns the squared distance to o.
func (v *Vector2) DistanceSq(o Vector2) float64 { return v.DistanceSqXY(o.X, o.Y) }

// DistanceSqXY returns the squared distance to (x, y).
func (v *Vector2) DistanceSqXY(x, y float64) float64 {
	dx, dy := v.X-x, v.Y-y
	return dx*dx + dy*dy
}

// Radians returns the angle of the vector from o to v.
func (v *Vector2) Radians(o Vector2) float64 { return v.RadiansXY(o.X, o.Y) }

// RadiansXY returns the angle of the vector from (x, y) to v.
func (v *Vector2) RadiansXY(x, y float64) float64 {
	return math.Atan2(v.Y-y, v.X-x)
}

// Degrees is Radians in degrees.
func (v *Vector2) Degrees(o Vector2) float64 { return v.DegreesXY(o.X, o.Y) }

// DegreesXY is RadiansXY in degrees.
func (v *Vector2) DegreesXY(x, y float64) float64 {
	return v.RadiansXY(x, y) * 180 / math.Pi
}

// Normalize overwrites v with the unit direction from v toward target. It
// does not normalize v in place. If v equals target the result is NaN.
func (v *Vector2) Normalize(target Vector2) *Vector2 { return v.NormalizeXY(target.X, target.Y) }

// NormalizeXY overwrites v with the unit direction from v toward (x, y).
func (v *Vector2) NormalizeXY(x, y float64) *Vector2 {
	l := v.DistanceXY(x, y)
	v.X = (x - v.X) / l
	v.Y = (y - v.Y) / l
	return v
}

// DirectByRadians sets v to the unit vector at angle r, discarding its
// previous magnitude.
func (v *Vector2) DirectByRadians(r float64) *Vector2 {
	v.Y, v.X = math.Sincos(r)
	return v
}

// DirectByDegrees sets v to the unit vector at angle d degrees.
func (v *Vector2) DirectByDegrees(d float64) *Vector2 {
	return v.DirectByRadians(d * math.Pi / 180)
}
