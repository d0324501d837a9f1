// Package registry manages the byte-source backends a session can bind.
package registry

import (
	"slices"
	"sync"

	"github.com/simonhull/statmeta/internal/source"
)

// Factory creates a fresh, unopened source.
type Factory func() source.Source

var (
	mu       sync.RWMutex
	backends = make(map[string]Factory)
)

// Register registers a backend under name, replacing any previous one.
// This is called during initialization (init functions).
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	backends[name] = factory
}

// Get returns the factory registered under name.
// Returns nil if no backend is registered under that name.
func Get(name string) Factory {
	mu.RLock()
	defer mu.RUnlock()
	return backends[name]
}

// Names returns the registered backend names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
