package crossdim

import "math"

// Vector3 is a mutable 3D vector with the same chaining contract as Vector2.
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 returns a new vector (x, y, z).
func NewVector3(x, y, z float64) *Vector3 {
	return &Vector3{X: x, Y: y, Z: z}
}

// Add adds o component-wise.
func (v *Vector3) Add(o Vector3) *Vector3 { return v.AddXYZ(o.X, o.Y, o.Z) }

// AddXYZ adds (x, y, z).
func (v *Vector3) AddXYZ(x, y, z float64) *Vector3 {
	v.X += x
	v.Y += y
	v.Z += z
	return v
}

// Sub subtracts o component-wise.
func (v *Vector3) Sub(o Vector3) *Vector3 { return v.SubXYZ(o.X, o.Y, o.Z) }

// SubXYZ subtracts (x, y, z).
func (v *Vector3) SubXYZ(x, y, z float64) *Vector3 {
	v.X -= x
	v.Y -= y
	v.Z -= z
	return v
}

// Mul multiplies component-wise by o.
func (v *Vector3) Mul(o Vector3) *Vector3 { return v.MulXYZ(o.X, o.Y, o.Z) }

// MulXYZ multiplies each component by the matching argument.
func (v *Vector3) MulXYZ(x, y, z float64) *Vector3 {
	v.X *= x
	v.Y *= y
	v.Z *= z
	return v
}

// MulScalar multiplies every component by n.
func (v *Vector3) MulScalar(n float64) *Vector3 {
	v.X *= n
	v.Y *= n
	v.Z *= n
	return v
}

// Div divides component-wise by o.
func (v *Vector3) Div(o Vector3) *Vector3 { return v.DivXYZ(o.X, o.Y, o.Z) }

// DivXYZ divides each component by the matching argument.
func (v *Vector3) DivXYZ(x, y, z float64) *Vector3 {
	v.X /= x
	v.Y /= y
	v.Z /= z
	return v
}

// DivScalar divides every component by n.
func (v *Vector3) DivScalar(n float64) *Vector3 {
	v.X /= n
	v.Y /= n
	v.Z /= n
	return v
}

// Set copies o into v.
func (v *Vector3) Set(o Vector3) *Vector3 { return v.SetXYZ(o.X, o.Y, o.Z) }

// SetXYZ sets the components.
func (v *Vector3) SetXYZ(x, y, z float64) *Vector3 {
	v.X = x
	v.Y = y
	v.Z = z
	return v
}

// Copy returns a new vector with the same components.
func (v *Vector3) Copy() *Vector3 {
	return &Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

// Distance returns the Euclidean distance to o.
func (v *Vector3) Distance(o Vector3) float64 { return v.DistanceXYZ(o.X, o.Y, o.Z) }

// DistanceXYZ returns the Euclidean distance to (x, y, z).
func (v *Vector3) DistanceXYZ(x, y, z float64) float64 {
	return math.Sqrt(v.DistanceSqXYZ(x, y, z))
}

// DistanceSq returns the squared distance to o.
func (v *Vector3) DistanceSq(o Vector3) float64 { return v.DistanceSqXYZ(o.X, o.Y, o.Z) }

// DistanceSqXYZ returns the squared distance to (x, y, z).
func (v *Vector3) DistanceSqXYZ(x, y, z float64) float64 {
	dx, dy, dz := v.X-x, v.Y-y, v.Z-z
	return dx*dx + dy*dy + dz*dz
}

// Dot returns the dot product with o.
func (v *Vector3) Dot(o Vector3) float64 { return v.DotXYZ(o.X, o.Y, o.Z) }

// DotXYZ returns the dot product with (x, y, z).
func (v *Vector3) DotXYZ(x, y, z float64) float64 {
	return v.X*x + v.Y*y + v.Z*z
}

// Cross overwrites v with v × o.
func (v *Vector3) Cross(o Vector3) *Vector3 { return v.CrossXYZ(o.X, o.Y, o.Z) }

// CrossXYZ overwrites v with v × (x, y, z).
func (v *Vector3) CrossXYZ(x, y, z float64) *Vector3 {
	x1, y1, z1 := v.X, v.Y, v.Z
	v.X = y1*z - z1*y
	v.Y = z1*x - x1*z
	v.Z = x1*y - y1*x
	return v
}

// Normalize overwrites v with the unit direction from v toward target. If v
// equals target the result is NaN.
func (v *Vector3) Normalize(target Vector3) *Vector3 {
	return v.NormalizeXYZ(target.X, target.Y, target.Z)
}

// NormalizeXYZ overwrites v with the unit direction from v toward (x, y, z).
func (v *Vector3) NormalizeXYZ(x, y, z float64) *Vector3 {
	l := v.DistanceXYZ(x, y, z)
	v.X = (x - v.X) / l
	v.Y = (y - v.Y) / l
	v.Z = (z - v.Z) / l
	return v
}

// Negate overwrites v with -o.
func (v *Vector3) Negate(o Vector3) *Vector3 { return v.NegateXYZ(o.X, o.Y, o.Z) }

// NegateXYZ overwrites v with (-x, -y, -z).
func (v *Vector3) NegateXYZ(x, y, z float64) *Vector3 {
	v.X = -x
	v.Y = -y
	v.Z = -z
	return v
}

// Lerp moves v toward o by fraction t (0 keeps v, 1 lands on o).
func (v *Vector3) Lerp(o Vector3, t float64) *Vector3 { return v.LerpXYZ(o.X, o.Y, o.Z, t) }

// LerpXYZ moves v toward (x, y, z) by fraction t.
func (v *Vector3) LerpXYZ(x, y, z, t float64) *Vector3 {
	v.X += (x - v.X) * t
	v.Y += (y - v.Y) * t
	v.Z += (z - v.Z) * t
	return v
}

// Clamp limits each component of v to the matching [lo, hi] range.
func (v *Vector3) Clamp(lo, hi Vector3) *Vector3 {
	v.X = math.Min(math.Max(v.X, lo.X), hi.X)
	v.Y = math.Min(math.Max(v.Y, lo.Y), hi.Y)
	v.Z = math.Min(math.Max(v.Z, lo.Z), hi.Z)
	return v
}

// ClampScalar limits every component of v to [lo, hi].
func (v *Vector3) ClampScalar(lo, hi float64) *Vector3 {
	return v.Clamp(Vector3{lo, lo, lo}, Vector3{hi, hi, hi})
}
