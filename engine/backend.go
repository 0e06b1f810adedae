package engine

import (
	"sort"
	"sync"

	"github.com/wippyai/jvm-bridge/errors"
)

// JNIBackend is the name the cgo backend registers under.
const JNIBackend = "jni"

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]Backend)
)

// Register makes a backend available by name. Registering a name twice replaces
// the previous backend.
func Register(name string, b Backend) {
	if b == nil {
		panic("engine: Register backend is nil")
	}
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = b
}

// Lookup returns a registered backend by name.
func Lookup(name string) (Backend, error) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	if b, ok := backends[name]; ok {
		return b, nil
	}
	return nil, errors.New(errors.PhaseEmbed, errors.KindConfiguration).
		Value(name).
		Detail("no backend registered as %q (registered: %v)", name, backendNames()).
		Build()
}

// Default returns the JNI backend if it was compiled in, otherwise the only
// registered backend.
func Default() (Backend, error) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	if b, ok := backends[JNIBackend]; ok {
		return b, nil
	}
	if len(backends) == 1 {
		for _, b := range backends {
			return b, nil
		}
	}
	if len(backends) == 0 {
		return nil, errors.Configuration("no VM backend available; build with -tags jni or register one")
	}
	return nil, errors.Configuration("no default VM backend among %v", backendNames())
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	return backendNames()
}

func backendNames() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
