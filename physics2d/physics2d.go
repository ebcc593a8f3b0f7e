// Package physics2d is the default 2D native library for crossdim. Physics is
// simulated by Chipmunk2D (github.com/jakecoffman/cp) and the debug renderer
// draws with Ebitengine.
//
// Importing the package registers its installer for
// crossdim.LibraryPhysics2D, so a factory that loads the 2D physics bundle ends
// up with a *Library in its Environment:
//
//	import _ "github.com/phanxgames/crossdim/physics2d"
//
// To skip the network entirely, install it yourself:
//
//	physics2d.InstallInto(env)
//
// A [Script] loaded with [LoadScript] drives the renderer frame by frame with
// synthetic clicks and drags, and can take screenshots and quit.
package physics2d

import (
	"sync/atomic"
	"time"

	"github.com/phanxgames/crossdim"
)

// Settings configure every world a Library creates.
type Settings struct {
	Gravity            crossdim.Vector2 // pixels per second squared, +Y is down
	Iterations         uint             // solver iterations per step
	SleepTimeThreshold float64          // seconds of idleness before a body sleeps
	StepDelta          time.Duration    // fixed runner step
}

// DefaultSettings returns earth-like gravity and a 60 Hz step.
func DefaultSettings() Settings {
	return Settings{
		Gravity:            crossdim.Vector2{X: 0, Y: 980},
		Iterations:         10,
		SleepTimeThreshold: 0.5,
		StepDelta:          time.Second / 60,
	}
}

// Library implements crossdim.Native2D.
type Library struct {
	Settings Settings
	// Bundle is the payload this library was installed from, if any.
	Bundle *crossdim.Bundle

	nextID atomic.Uint32
}

var _ crossdim.Native2D = (*Library)(nil)

// New returns a library using settings.
func New(settings Settings) *Library {
	return &Library{Settings: settings}
}

func (l *Library) id() uint32 {
	return l.nextID.Add(1)
}

// Tag records shape on a Body or Joint handle.
func (l *Library) Tag(h crossdim.Handle, shape crossdim.ShapeTag) {
	switch v := h.(type) {
	case *Body:
		v.Tag = shape
	case *Joint:
		v.Tag = shape
	}
}

// SetPosition moves a Body handle. Other handles are ignored.
func (l *Library) SetPosition(h crossdim.Handle, x, y float64) {
	if b, ok := h.(*Body); ok {
		b.setPosition(x, y)
	}
}

// Position reads a Body handle's position. Other handles report (0, 0).
func (l *Library) Position(h crossdim.Handle) (float64, float64) {
	if b, ok := h.(*Body); ok {
		p := b.position()
		return p.X, p.Y
	}
	return 0, 0
}

// AddToWorld adds bodies and joints to the world of engine. Bodies are added
// before joints so a joint may arrive in the same batch as its bodies.
func (l *Library) AddToWorld(engine crossdim.Handle, handles []crossdim.Handle) {
	w, ok := engine.(*World)
	if !ok {
		return
	}
	var bodies []*Body
	var joints []*Joint
	for _, h := range handles {
		switch v := h.(type) {
		case *Body:
			bodies = append(bodies, v)
		case *Joint:
			joints = append(joints, v)
		}
	}
	w.add(bodies, joints)
}
