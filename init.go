package crossdim

import (
	"context"
	"sync"
)

// Init is a pending engine initialization. It resolves exactly once.
type Init struct {
	once   sync.Once
	done   chan struct{}
	engine *Engine2D
}

func newInit() *Init {
	return &Init{done: make(chan struct{})}
}

func (i *Init) resolve(e *Engine2D) {
	i.once.Do(func() {
		i.engine = e
		close(i.done)
	})
}

// Done is closed when the engine is ready.
func (i *Init) Done() <-chan struct{} { return i.done }

// Engine returns the engine if the initialization has resolved.
func (i *Init) Engine() (*Engine2D, bool) {
	select {
	case <-i.done:
		return i.engine, true
	default:
		return nil, false
	}
}

// Wait blocks until the engine is ready or ctx is done.
func (i *Init) Wait(ctx context.Context) (*Engine2D, error) {
	select {
	case <-i.done:
		return i.engine, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Initialize starts building a 2D engine for cfg and returns its pending
// result. Calls with the same configuration share one initialization, so the
// libraries are loaded at most once per configuration. The shared load keeps
// ctx's values but not its cancellation; use Init.Wait to stop waiting.
//
// The first initialization with the default configuration also resolves the
// factory's Global slot.
func (f *Factory) Initialize(ctx context.Context, cfg Config) *Init {
	cfg = cfg.withDefaults()

	f.mu.Lock()
	if in, ok := f.inits[cfg]; ok {
		f.mu.Unlock()
		return in
	}
	in := newInit()
	f.inits[cfg] = in
	f.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	go func() {
		e := f.TwoDimensionEngine(ctx, cfg)
		in.resolve(e)
		if cfg == DefaultConfig() {
			f.global.resolve(e)
		}
	}()
	return in
}

// Global returns the factory's process-wide initialization slot. It resolves
// once, with the first default-configuration engine, and never again.
func (f *Factory) Global() *Init { return f.global }

// InitializeEngine calls DefaultFactory.Initialize.
func InitializeEngine(ctx context.Context, cfg Config) *Init {
	return DefaultFactory.Initialize(ctx, cfg)
}

// Global returns DefaultFactory's process-wide initialization slot.
func Global() *Init { return DefaultFactory.Global() }
