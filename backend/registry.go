package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/hwlayer/gpucore"
)

// Registered backend names.
const (
	// BackendNoop is the headless wgpu noop HAL driver.
	BackendNoop = "noop"
)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for OpenDefault (first available wins).
	backendPriority = []string{BackendNoop}
)

// Register registers a driver factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Open opens the driver registered under name.
func Open(name string) (gpucore.Driver, func(), error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return factory()
}

// OpenDefault opens the first registered backend in priority order, then
// any registered backend.
func OpenDefault() (gpucore.Driver, func(), error) {
	for _, name := range backendPriority {
		if IsRegistered(name) {
			return Open(name)
		}
	}
	if names := Available(); len(names) > 0 {
		return Open(names[0])
	}
	return nil, nil, ErrBackendNotAvailable
}
