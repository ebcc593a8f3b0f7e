package physics2d

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/phanxgames/crossdim"
	"golang.org/x/sync/errgroup"
)

// Runner steps a World at a fixed rate on its own goroutine.
type Runner struct {
	Delta time.Duration

	running atomic.Bool
}

// CreateRunner returns a *Runner using the library's step delta.
func (l *Library) CreateRunner() crossdim.Handle {
	return &Runner{Delta: l.Settings.StepDelta}
}

// RunRunner starts stepping engine. The returned function stops the runner
// and waits for the in-flight step; calling it again does nothing.
func (l *Library) RunRunner(runner, engine crossdim.Handle) func() {
	r, ok := runner.(*Runner)
	w, ok2 := engine.(*World)
	if !ok || !ok2 {
		return func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	var g errgroup.Group
	r.running.Store(true)
	g.Go(func() error {
		defer r.running.Store(false)
		return r.run(ctx, w)
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			_ = g.Wait()
		})
	}
}

// Running reports whether the runner is stepping.
func (r *Runner) Running() bool { return r.running.Load() }

func (r *Runner) run(ctx context.Context, w *World) error {
	delta := r.Delta
	if delta <= 0 {
		delta = time.Second / 60
	}
	t := time.NewTicker(delta)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.Step(delta.Seconds())
		}
	}
}
