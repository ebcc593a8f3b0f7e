package crossdim

import "github.com/google/uuid"

// RigidBody wraps a native body or constraint handle.
//
// Position is a convenience mirror that starts at (0, 0). The authoritative
// position lives in the native handle: SetPosition writes through to it and
// leaves Position untouched. Call Sync to refresh the mirror.
type RigidBody struct {
	ID       uuid.UUID
	Position Vector2
	Body     Handle
	Shape    ShapeTag

	native Native2D
}

func newRigidBody(n Native2D, shape ShapeTag, build func() Handle) *RigidBody {
	b := &RigidBody{
		ID:     uuid.New(),
		Body:   build(),
		Shape:  shape,
		native: n,
	}
	if shape != ShapeNone {
		n.Tag(b.Body, shape)
	}
	return b
}

// SetPosition moves the native body to (x, y).
func (b *RigidBody) SetPosition(x, y float64) {
	b.native.SetPosition(b.Body, x, y)
}

// SetPositionVector moves the native body to v.
func (b *RigidBody) SetPositionVector(v Vector2) {
	b.SetPosition(v.X, v.Y)
}

// NativePosition reads the authoritative position from the native handle.
func (b *RigidBody) NativePosition() Vector2 {
	x, y := b.native.Position(b.Body)
	return Vector2{X: x, Y: y}
}

// Sync copies the native position into Position and returns the body.
func (b *RigidBody) Sync() *RigidBody {
	b.Position = b.NativePosition()
	return b
}
