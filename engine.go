package crossdim

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Factory builds engine capability sets. It checks its Environment for the
// backing libraries and loads the missing ones through its Loader.
type Factory struct {
	Env     *Environment
	Loader  Loader
	Alerter Alerter
	Log     zerolog.Logger

	mu     sync.Mutex
	inits  map[Config]*Init
	global *Init
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithLoader replaces the default HTTP loader.
func WithLoader(l Loader) FactoryOption { return func(f *Factory) { f.Loader = l } }

// WithAlerter replaces the default log alerter.
func WithAlerter(a Alerter) FactoryOption { return func(f *Factory) { f.Alerter = a } }

// WithLogger replaces the package logger for this factory.
func WithLogger(l zerolog.Logger) FactoryOption { return func(f *Factory) { f.Log = l } }

// NewFactory returns a factory bound to env. Without options it loads over
// HTTP and alerts through the log.
func NewFactory(env *Environment, opts ...FactoryOption) *Factory {
	f := &Factory{
		Env:    env,
		Log:    Logger(),
		inits:  make(map[Config]*Init),
		global: newInit(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.Loader == nil {
		hl := NewHTTPLoader(env)
		hl.Log = f.Log
		f.Loader = hl
	}
	if f.Alerter == nil {
		f.Alerter = LogAlerter{Log: f.Log}
	}
	return f
}

// DefaultFactory backs the package-level functions.
var DefaultFactory = NewFactory(DefaultEnvironment)

// ensure loads lib from url unless it is already installed. A failed load is
// alerted and otherwise ignored. It reports whether lib is installed afterwards.
func (f *Factory) ensure(ctx context.Context, lib Library, url, name string) bool {
	log := f.Log.With().Str("library", string(lib)).Logger()
	if f.Env.Has(lib) {
		log.Debug().Msg("library already present")
		return true
	}

	log.Debug().Str("url", url).Msg("loading library")
	res := f.load(ctx, Resource{URL: url, Kind: KindScript, Async: true, Library: lib})
	if !res.Success {
		log.Error().Err(res.Err).Msg("library load failed")
		f.Alerter.Alert(fmt.Sprintf("Failed to load %s", name))
	}
	return f.Env.Has(lib)
}

// load runs r through the factory's loader. A synchronous load returns when
// the loader does. An async load runs on its own goroutine and is abandoned
// once ctx is done, even if the loader ignores ctx; a late result is dropped.
func (f *Factory) load(ctx context.Context, r Resource) LoadResult {
	if !r.Async {
		return f.Loader.Load(ctx, r)
	}
	select {
	case res := <-LoadAsync(ctx, f.Loader, r):
		return res
	case <-ctx.Done():
		return loadFailed(fmt.Errorf("load %s: %w", r.URL, ctx.Err()))
	}
}

// TwoDimensionEngine returns a 2D capability set. Unless cfg.SkipPhysics is
// set, a missing 2D physics library is loaded first; a failed load is
// alerted and the engine comes back degraded (Ready reports false, every
// native operation is a no-op).
func (f *Factory) TwoDimensionEngine(ctx context.Context, cfg Config) *Engine2D {
	cfg = cfg.withDefaults()
	if !cfg.SkipPhysics {
		f.ensure(ctx, LibraryPhysics2D, cfg.Physics2DURL, "2D physics")
	}
	return f.bind2D()
}

func (f *Factory) bind2D() *Engine2D {
	e := &Engine2D{native: unavailable2D{}, log: f.Log}
	v, ok := f.Env.Lookup(LibraryPhysics2D)
	if !ok {
		f.Log.Warn().Msg("2D physics library missing, engine degraded")
		return e
	}
	n, ok := v.(Native2D)
	if !ok {
		f.Log.Warn().Str("type", fmt.Sprintf("%T", v)).Msg("2D physics library is not a Native2D, engine degraded")
		return e
	}
	e.native, e.ready = n, true
	return e
}

// ThreeDimensionEngine returns a 3D capability set. The physics library
// (unless cfg.SkipPhysics is set) and the render library are loaded one after
// the other; each failure is alerted on its own.
func (f *Factory) ThreeDimensionEngine(ctx context.Context, cfg Config) *Engine3D {
	cfg = cfg.withDefaults()
	if !cfg.SkipPhysics {
		f.ensure(ctx, LibraryPhysics3D, cfg.Physics3DURL, "3D physics")
	}
	f.ensure(ctx, LibraryRender3D, cfg.Render3DURL, "3D renderer")
	return &Engine3D{
		ready: f.Env.Has(LibraryPhysics3D) && f.Env.Has(LibraryRender3D),
	}
}

// LoadImage fetches and decodes one image.
func (f *Factory) LoadImage(ctx context.Context, url string) (image.Image, bool) {
	res := f.load(ctx, Resource{URL: url, Kind: KindImage})
	return res.Image, res.Success
}

// LoadImages fetches images concurrently. Results are in the order of urls.
// The first failure cancels the rest and is returned.
func (f *Factory) LoadImages(ctx context.Context, urls ...string) ([]image.Image, error) {
	imgs := make([]image.Image, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	for i, url := range urls {
		g.Go(func() error {
			res := f.Loader.Load(ctx, Resource{URL: url, Kind: KindImage})
			if !res.Success {
				return fmt.Errorf("load image %s: %w", url, res.Err)
			}
			imgs[i] = res.Image
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return imgs, nil
}

// TwoDimensionEngine calls DefaultFactory.TwoDimensionEngine.
func TwoDimensionEngine(ctx context.Context, cfg Config) *Engine2D {
	return DefaultFactory.TwoDimensionEngine(ctx, cfg)
}

// ThreeDimensionEngine calls DefaultFactory.ThreeDimensionEngine.
func ThreeDimensionEngine(ctx context.Context, cfg Config) *Engine3D {
	return DefaultFactory.ThreeDimensionEngine(ctx, cfg)
}

// --- Capability sets ---

// Engine2D is the 2D capability set: vectors, rigid bodies and scenes bound
// to one native library.
type Engine2D struct {
	native Native2D
	ready  bool
	log    zerolog.Logger
}

// Ready reports whether a native library is bound.
func (e *Engine2D) Ready() bool { return e.ready }

// Native returns the bound native library.
func (e *Engine2D) Native() Native2D { return e.native }

// NewVector2 returns a new vector (x, y).
func (e *Engine2D) NewVector2(x, y float64) *Vector2 { return NewVector2(x, y) }

// NewRigidBody wraps the handle returned by build.
func (e *Engine2D) NewRigidBody(build func() Handle) *RigidBody {
	return newRigidBody(e.native, ShapeNone, build)
}

// Circle creates a circular body centred at (x, y). Options are applied over
// DefaultBodyOptions.
func (e *Engine2D) Circle(x, y, r float64, opts ...BodyOption) *RigidBody {
	o := resolveBodyOptions(opts)
	return newRigidBody(e.native, ShapeCircle, func() Handle {
		return e.native.Circle(x, y, r, o)
	})
}

// Rectangle creates a w by h body centred at (x, y). Options are applied over
// DefaultBodyOptions.
func (e *Engine2D) Rectangle(x, y, w, h float64, opts ...BodyOption) *RigidBody {
	o := resolveBodyOptions(opts)
	return newRigidBody(e.native, ShapeRectangle, func() Handle {
		return e.native.Rectangle(x, y, w, h, o)
	})
}

// Rope creates a constraint between two bodies or points. Options are applied
// over DefaultRopeOptions.
func (e *Engine2D) Rope(opts ...RopeOption) *RigidBody {
	o := resolveRopeOptions(opts)
	return newRigidBody(e.native, ShapeRope, func() Handle {
		return e.native.Constraint(o)
	})
}

// NewScene builds a scene. It starts nothing; call Scene.Start.
func (e *Engine2D) NewScene(cfg SceneConfig) *Scene {
	return newScene(e.native, cfg, e.log)
}

// Engine3D is the 3D capability set. Only the vector types are implemented;
// rigid bodies and scenes report ErrNotSupported.
type Engine3D struct {
	ready bool
}

// Ready reports whether both 3D libraries are installed.
func (e *Engine3D) Ready() bool { return e.ready }

// NewVector2 returns a new vector (x, y).
func (e *Engine3D) NewVector2(x, y float64) *Vector2 { return NewVector2(x, y) }

// NewVector3 returns a new vector (x, y, z).
func (e *Engine3D) NewVector3(x, y, z float64) *Vector3 { return NewVector3(x, y, z) }

// NewRigidBody always fails with ErrNotSupported.
func (e *Engine3D) NewRigidBody() (*RigidBody, error) {
	return nil, fmt.Errorf("3D rigid body: %w", ErrNotSupported)
}

// NewScene always fails with ErrNotSupported.
func (e *Engine3D) NewScene(SceneConfig) (*Scene, error) {
	return nil, fmt.Errorf("3D scene: %w", ErrNotSupported)
}
