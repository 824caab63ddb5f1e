package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrStrategyNotFound is returned by Registry.Get for an unknown id.
var ErrStrategyNotFound = errors.New("packing strategy not found")

// Registry maps strategy ids to strategies. The zero value is not usable;
// call NewRegistry.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
	order      []string
}

// NewRegistry returns a registry with the four built-in strategies.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}
	r.Register(NewColumnStrategy())
	r.Register(NewTypeGroupStrategy())
	r.Register(NewBinPacking3DStrategy())
	r.Register(NewMaterialGroupingStrategy())
	return r
}

// Register adds s, replacing any strategy with the same id. A replaced
// strategy keeps its position in List.
func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.strategies[s.ID()]; !exists {
		r.order = append(r.order, s.ID())
	}
	r.strategies[s.ID()] = s
}

// Get returns the strategy registered under id.
func (r *Registry) Get(id string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrStrategyNotFound, id, strings.Join(r.order, ", "))
	}
	return s, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.strategies[id]
	return ok
}

// List returns the strategies in registration order.
func (r *Registry) List() []Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Strategy, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.strategies[id])
	}
	return out
}

// ListIDs returns the registered ids in registration order.
func (r *Registry) ListIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the shared convenience registry. Callers that need
// isolation should use NewRegistry instead.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
