package crossdim

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"sync"

	// Image formats understood by KindImage resources.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
)

// Resource describes something a Loader can fetch.
type Resource struct {
	URL     string
	Kind    ResourceKind
	Async   bool    // the factory may abandon the load when ctx is done
	Library Library // slot a KindScript resource installs into
}

// Bundle is a fetched script payload.
type Bundle struct {
	Library Library
	URL     string
	Digest  uint64 // xxhash of Payload
	Payload []byte
}

// LoadResult reports the outcome of a load. Exactly one of Success and Err is
// set. Loaders never panic and never return failures any other way.
type LoadResult struct {
	Success bool
	Err     error
	Bundle  *Bundle     // KindScript only
	Image   image.Image // KindImage only
}

func loadFailed(err error) LoadResult {
	return LoadResult{Err: err}
}

// Loader fetches resources. Load is not idempotent: every call fetches again,
// so callers check Environment.Has before loading a library.
type Loader interface {
	Load(ctx context.Context, r Resource) LoadResult
}

// LoadFunc adapts a function to the Loader interface.
type LoadFunc func(ctx context.Context, r Resource) LoadResult

// Load calls f(ctx, r).
func (f LoadFunc) Load(ctx context.Context, r Resource) LoadResult { return f(ctx, r) }

// LoadAsync runs l.Load on its own goroutine. The returned channel delivers
// exactly one result and is then closed.
func LoadAsync(ctx context.Context, l Loader, r Resource) <-chan LoadResult {
	ch := make(chan LoadResult, 1)
	go func() {
		defer close(ch)
		ch <- l.Load(ctx, r)
	}()
	return ch
}

// --- Installers ---

// Installer turns a fetched bundle into a library value and installs it into
// env. Native library packages register one from init, the way database/sql
// drivers register themselves.
type Installer func(ctx context.Context, env *Environment, b *Bundle) error

var installers = struct {
	sync.RWMutex
	m map[Library]Installer
}{m: make(map[Library]Installer)}

// RegisterInstaller makes inst responsible for bundles of lib. It panics if
// inst is nil or lib already has an installer.
func RegisterInstaller(lib Library, inst Installer) {
	if inst == nil {
		panic("crossdim: RegisterInstaller installer is nil")
	}
	installers.Lock()
	defer installers.Unlock()
	if _, dup := installers.m[lib]; dup {
		panic("crossdim: RegisterInstaller called twice for " + string(lib))
	}
	installers.m[lib] = inst
}

func installerFor(lib Library) (Installer, bool) {
	installers.RLock()
	defer installers.RUnlock()
	inst, ok := installers.m[lib]
	return inst, ok
}

// installBundle runs the registered installer for b.Library, or installs the
// raw bundle when none is registered.
func installBundle(ctx context.Context, env *Environment, b *Bundle) error {
	if inst, ok := installerFor(b.Library); ok {
		if err := inst(ctx, env, b); err != nil {
			return fmt.Errorf("install %s: %w", b.Library, err)
		}
		return nil
	}
	env.Install(b.Library, b)
	return nil
}

// --- HTTP ---

// HTTPLoader fetches resources over HTTP(S). file:// URLs are served from the
// local filesystem.
type HTTPLoader struct {
	Client *http.Client
	Env    *Environment
	Log    zerolog.Logger
}

// NewHTTPLoader returns a loader that installs script resources into env.
func NewHTTPLoader(env *Environment) *HTTPLoader {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))
	return &HTTPLoader{
		Client: &http.Client{Transport: t},
		Env:    env,
		Log:    Logger(),
	}
}

// Load fetches r and either installs it (KindScript) or decodes it (KindImage).
func (l *HTTPLoader) Load(ctx context.Context, r Resource) LoadResult {
	log := l.Log.With().Str("url", r.URL).Stringer("kind", r.Kind).Logger()

	payload, err := l.fetch(ctx, r.URL)
	if err != nil {
		log.Warn().Err(err).Msg("load failed")
		return loadFailed(err)
	}

	switch r.Kind {
	case KindImage:
		img, format, err := image.Decode(bytes.NewReader(payload))
		if err != nil {
			log.Warn().Err(err).Msg("decode failed")
			return loadFailed(fmt.Errorf("decode %s: %w", r.URL, err))
		}
		log.Debug().Str("format", format).Msg("image loaded")
		return LoadResult{Success: true, Image: img}
	default:
		if r.Library == "" {
			return loadFailed(fmt.Errorf("load %s: %w", r.URL, ErrNoInstaller))
		}
		if len(payload) == 0 {
			return loadFailed(fmt.Errorf("load %s: %w", r.URL, ErrEmptyBundle))
		}
		b := &Bundle{
			Library: r.Library,
			URL:     r.URL,
			Digest:  xxhash.Sum64(payload),
			Payload: payload,
		}
		if err := installBundle(ctx, l.Env, b); err != nil {
			log.Warn().Err(err).Msg("install failed")
			return loadFailed(err)
		}
		log.Debug().Str("library", string(r.Library)).Uint64("digest", b.Digest).Msg("library installed")
		return LoadResult{Success: true, Bundle: b}
	}
}

func (l *HTTPLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: status %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return body, nil
}
