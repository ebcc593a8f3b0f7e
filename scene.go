package crossdim

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrSceneRunning is returned by Start on a scene that is already running.
var ErrSceneRunning = errors.New("crossdim: scene already running")

// frameRate is the nominal renderer rate used to advance tick-driven tweens.
const frameRate = 60

// Scene owns a canvas, a native physics engine, a renderer, a fixed-step
// runner and a mouse constraint. Constructing a scene starts nothing; Start
// activates the renderer and the runner, Stop halts them.
//
// Tick listeners run once per rendered frame, in registration order, after
// the renderer's own frame work.
type Scene struct {
	Canvas          Handle
	MouseConstraint *RigidBody

	native   Native2D
	cfg      SceneConfig
	engine   Handle
	mouse    Handle
	renderer Handle
	runner   Handle
	log      zerolog.Logger

	mu            sync.Mutex // guards listeners, store, debug and frame
	tickListeners []func()
	store         EntityStore
	debug         bool
	frame         uint64

	life         sync.Mutex // guards the loop lifecycle
	running      bool
	stopRenderer func()
	stopRunner   func()
	halt         chan struct{}
}

func newScene(n Native2D, cfg SceneConfig, log zerolog.Logger) *Scene {
	cfg = cfg.withDefaults()
	s := &Scene{native: n, cfg: cfg, log: log}

	s.Canvas = cfg.Canvas
	if s.Canvas == nil {
		s.Canvas = n.CreateCanvas(cfg.Width, cfg.Height)
	}
	s.engine = n.CreateEngine()
	s.mouse = n.CreateMouse(s.Canvas)
	s.MouseConstraint = newRigidBody(n, ShapeNone, func() Handle {
		return n.CreateMouseConstraint(s.engine, s.mouse, defaultMouseConstraintOptions())
	})
	s.renderer = n.CreateRenderer(RendererSpec{
		Canvas:  s.Canvas,
		Engine:  s.engine,
		Mouse:   s.mouse,
		Options: cfg.RenderOptions,
	})
	s.runner = n.CreateRunner()
	return s
}

// Config returns the configuration the scene was built with, defaults filled.
func (s *Scene) Config() SceneConfig { return s.cfg }

// Engine returns the native physics engine handle.
func (s *Scene) Engine() Handle { return s.engine }

// Renderer returns the native renderer handle.
func (s *Scene) Renderer() Handle { return s.renderer }

// Runner returns the native runner handle.
func (s *Scene) Runner() Handle { return s.runner }

// Mouse returns the native mouse handle.
func (s *Scene) Mouse() Handle { return s.mouse }

// Add adds the native handles of bodies to the world in one batch and returns
// the scene for chaining.
func (s *Scene) Add(bodies ...*RigidBody) *Scene {
	handles := make([]Handle, 0, len(bodies))
	for _, b := range bodies {
		handles = append(handles, b.Body)
	}
	s.native.AddToWorld(s.engine, handles)
	for _, b := range bodies {
		s.emit(SceneEvent{Type: EventBodyAdded, BodyID: b.ID, Shape: b.Shape})
	}
	return s
}

// OnTick registers fn to run once per rendered frame.
func (s *Scene) OnTick(fn func()) *Scene {
	s.mu.Lock()
	s.tickListeners = append(s.tickListeners, fn)
	s.mu.Unlock()
	return s
}

// TickListenerCount returns the number of registered tick listeners.
func (s *Scene) TickListenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickListeners)
}

// Animate advances t by one frame on every tick until it finishes.
func (s *Scene) Animate(t *BodyTween) *Scene {
	return s.OnTick(func() { t.Update(1.0 / frameRate) })
}

// Frame returns the number of frames rendered so far.
func (s *Scene) Frame() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.mu.Lock()
	s.store = store
	s.mu.Unlock()
}

// SetDebugMode enables or disables per-frame timing logs at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.mu.Lock()
	s.debug = enabled
	s.mu.Unlock()
}

// Running reports whether the loops are active.
func (s *Scene) Running() bool {
	s.life.Lock()
	defer s.life.Unlock()
	return s.running
}

// Start activates the renderer and the physics runner. Cancelling ctx stops
// them as if Stop had been called.
func (s *Scene) Start(ctx context.Context) error {
	s.life.Lock()
	defer s.life.Unlock()
	if s.running {
		return ErrSceneRunning
	}
	s.running = true
	s.halt = make(chan struct{})
	s.stopRenderer = s.native.RunRenderer(s.renderer, s.onFrame)
	s.stopRunner = s.native.RunRunner(s.runner, s.engine)

	s.emit(SceneEvent{Type: EventSceneStarted})
	s.log.Debug().Int("width", s.cfg.Width).Int("height", s.cfg.Height).Msg("scene started")

	if done := ctx.Done(); done != nil {
		halt := s.halt
		go func() {
			select {
			case <-done:
				s.Stop()
			case <-halt:
			}
		}()
	}
	return nil
}

// Stop halts the runner and the renderer. Stopping a scene that is not
// running does nothing.
func (s *Scene) Stop() {
	s.life.Lock()
	defer s.life.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.halt)
	s.stopRunner()
	s.stopRenderer()
	s.stopRunner, s.stopRenderer = nil, nil

	s.emit(SceneEvent{Type: EventSceneStopped})
	s.log.Debug().Uint64("frames", s.Frame()).Msg("scene stopped")
}

// emit forwards e to the entity store, stamping the current frame.
func (s *Scene) emit(e SceneEvent) {
	s.mu.Lock()
	store := s.store
	e.Frame = s.frame
	s.mu.Unlock()
	if store != nil {
		store.EmitEvent(e)
	}
}

// onFrame is handed to the native renderer and runs after each frame.
func (s *Scene) onFrame() {
	s.mu.Lock()
	listeners := make([]func(), len(s.tickListeners))
	copy(listeners, s.tickListeners)
	s.frame++
	frame, store, debug := s.frame, s.store, s.debug
	s.mu.Unlock()

	var t0 time.Time
	if debug {
		t0 = time.Now()
	}

	for _, fn := range listeners {
		fn()
	}

	if store != nil {
		store.EmitEvent(SceneEvent{Type: EventTick, Frame: frame})
	}
	if debug {
		s.debugLog(frameStats{
			frame:     frame,
			listeners: len(listeners),
			tickTime:  time.Since(t0),
		})
	}
}
