// Package registry provides a weighted registry of named factories.
// Variants register themselves at package init, allowing a spawner to
// discover and instantiate them without a hardcoded switch.
package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
)

// Info describes a registered entry.
type Info struct {
	ID     string
	Weight int
}

type entry[T any] struct {
	factory func() T
	weight  int
}

// Registry maps IDs to weighted factories for values of type T.
type Registry[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
}

// New creates an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]entry[T])}
}

// Register adds a factory under id with the given weight.
// Panics if id is already registered or the weight is not positive.
func (r *Registry[T]) Register(id string, weight int, f func() T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		panic(fmt.Sprintf("registry: %q already registered", id))
	}
	if weight <= 0 {
		panic(fmt.Sprintf("registry: %q has non-positive weight %d", id, weight))
	}
	r.entries[id] = entry[T]{factory: f, weight: weight}
}

// List returns all registered entries, sorted by ID.
func (r *Registry[T]) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Info, 0, len(r.entries))
	for id, e := range r.entries {
		result = append(result, Info{ID: id, Weight: e.weight})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates the entry registered under id.
func (r *Registry[T]) Create(id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("registry: unknown entry %q", id)
	}
	return e.factory(), nil
}

// Pick chooses an ID at random in proportion to weight among the entries
// accepted by allow (nil accepts all). Iteration is in ID order, so a seeded
// rng gives a reproducible sequence. It returns false if nothing is eligible.
func (r *Registry[T]) Pick(rng *rand.Rand, allow func(id string) bool) (string, bool) {
	candidates := r.List()

	total := 0
	eligible := candidates[:0]
	for _, c := range candidates {
		if allow != nil && !allow(c.ID) {
			continue
		}
		eligible = append(eligible, c)
		total += c.Weight
	}
	if total == 0 {
		return "", false
	}

	n := rng.Intn(total)
	for _, c := range eligible {
		if n < c.Weight {
			return c.ID, true
		}
		n -= c.Weight
	}
	return eligible[len(eligible)-1].ID, true
}
