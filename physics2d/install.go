package physics2d

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/crossdim"
)

func init() {
	crossdim.RegisterInstaller(crossdim.LibraryPhysics2D, Install)
}

// Install is the crossdim.Installer for the 2D physics bundle. The simulation
// is compiled in, so the bundle is only recorded on the installed Library.
func Install(_ context.Context, env *crossdim.Environment, b *crossdim.Bundle) error {
	if env == nil {
		return errors.New("physics2d: nil environment")
	}
	l := New(DefaultSettings())
	l.Bundle = b
	env.Install(crossdim.LibraryPhysics2D, l)
	log := crossdim.Logger()
	log.Debug().
		Str("url", b.URL).
		Uint64("digest", b.Digest).
		Msg("physics2d installed")
	return nil
}

// InstallInto installs a Library with default settings into env without
// fetching anything and returns it.
func InstallInto(env *crossdim.Environment) *Library {
	l := New(DefaultSettings())
	env.Install(crossdim.LibraryPhysics2D, l)
	return l
}

// Run starts s and hosts its renderer in an Ebitengine window until the window
// closes, ctx is cancelled, or the scene is stopped. The scene is stopped on
// return.
func Run(ctx context.Context, s *crossdim.Scene, title string) error {
	r, ok := s.Renderer().(*Renderer)
	if !ok {
		return fmt.Errorf("physics2d: scene renderer is %T, not *physics2d.Renderer", s.Renderer())
	}
	if err := s.Start(ctx); err != nil {
		return err
	}
	defer s.Stop()

	w, h := r.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	if err := ebiten.RunGame(r); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("physics2d: run: %w", err)
	}
	return nil
}
