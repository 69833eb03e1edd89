package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/tagserve/tagserve/internal/artifacts"
)

// InMemoryRegistry implements the artifact loader using an in-memory map.
// This is for testing purposes only.
type InMemoryRegistry struct {
	bundles map[string]*artifacts.Bundle
	mu      sync.RWMutex
}

// NewInMemoryRegistry creates a new in-memory artifact registry.
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{
		bundles: make(map[string]*artifacts.Bundle),
	}
}

// Put registers a bundle for a run.
func (r *InMemoryRegistry) Put(runID string, bundle *artifacts.Bundle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bundles[runID] = bundle
}

// Load returns the bundle registered for the run.
func (r *InMemoryRegistry) Load(ctx context.Context, runID string) (*artifacts.Bundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bundle, ok := r.bundles[runID]
	if !ok {
		return nil, fmt.Errorf("run not found: %s", runID)
	}

	return bundle, nil
}
