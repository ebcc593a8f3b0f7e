package crossdim

import "sync"

// Environment holds the libraries that have been loaded into the process. It
// replaces lookups on ambient globals: factories receive an Environment
// explicitly, so tests can hand them an empty one or a pre-populated one.
//
// An Environment is safe for concurrent use.
type Environment struct {
	mu   sync.RWMutex
	libs map[Library]any
}

// NewEnvironment returns an empty Environment.
func NewEnvironment() *Environment {
	return &Environment{libs: make(map[Library]any)}
}

// DefaultEnvironment backs the package-level factory functions.
var DefaultEnvironment = NewEnvironment()

// Has reports whether lib is currently installed. The answer is never cached.
func (e *Environment) Has(lib Library) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.libs[lib]
	return ok && v != nil
}

// Lookup returns the value installed under lib.
func (e *Environment) Lookup(lib Library) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.libs[lib]
	if v == nil {
		return nil, false
	}
	return v, ok
}

// Install publishes v under lib, replacing any previous value. Installing nil
// removes the library.
func (e *Environment) Install(lib Library, v any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if v == nil {
		delete(e.libs, lib)
		return
	}
	e.libs[lib] = v
}

// Libraries returns the names of all installed libraries in no particular order.
func (e *Environment) Libraries() []Library {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Library, 0, len(e.libs))
	for lib := range e.libs {
		out = append(out, lib)
	}
	return out
}
