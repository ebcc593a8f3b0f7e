package crossdim

import "errors"

// Handle is an opaque value owned by a native library: a world, a body, a
// constraint, a renderer. This package never inspects a Handle, it only hands
// it back to the Native2D that produced it.
type Handle = any

// Library names a slot in an Environment that a backing library occupies once
// it has been loaded.
type Library string

const (
	LibraryPhysics2D Library = "physics2d" // 2D rigid-body physics and debug renderer
	LibraryPhysics3D Library = "physics3d" // 3D physics (WASM build)
	LibraryRender3D  Library = "render3d"  // 3D rendering
)

// ShapeTag identifies which factory produced a RigidBody.
type ShapeTag uint8

const (
	ShapeNone      ShapeTag = iota // built by NewRigidBody directly, or the mouse constraint
	ShapeCircle                    // built by Engine2D.Circle
	ShapeRectangle                 // built by Engine2D.Rectangle
	ShapeRope                      // built by Engine2D.Rope (a constraint, not a body)
)

// String returns the lowercase tag name ("circle", "rectangle", "rope"), or
// the empty string for ShapeNone.
func (s ShapeTag) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeRectangle:
		return "rectangle"
	case ShapeRope:
		return "rope"
	default:
		return ""
	}
}

// ResourceKind selects how a Loader treats a fetched payload.
type ResourceKind uint8

const (
	KindScript ResourceKind = iota // installed into the Environment as a library
	KindImage                      // decoded into an image.Image
)

func (k ResourceKind) String() string {
	if k == KindImage {
		return "image"
	}
	return "script"
}

var (
	// ErrNotSupported is returned by capabilities that exist in the contract
	// but have no implementation, such as 3D rigid bodies and scenes.
	ErrNotSupported = errors.New("crossdim: not supported")

	// ErrNoInstaller is reported when a script resource names no library.
	ErrNoInstaller = errors.New("crossdim: resource names no library")

	// ErrEmptyBundle is reported when a fetched script payload is empty.
	ErrEmptyBundle = errors.New("crossdim: empty bundle")
)
