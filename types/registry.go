package types

import (
	"sync"
	"sync/atomic"
)

// Constructor replaces the default parse of a shape.
// It receives the raw object and the client owning the registry.
type Constructor func(raw Object, client interface{}) Value

// Registry maps shape names to replacement constructors.
// Reads see an immutable snapshot, so it may be extended while parsing is in progress.
// The zero value is ready to use.
type Registry struct {
	snapshot atomic.Pointer[map[Shape]Constructor]
	mu       sync.Mutex
}

// NewRegistry creates a registry populated with the given overrides.
func NewRegistry(overrides map[Shape]Constructor) *Registry {
	r := new(Registry)
	for shape, ctor := range overrides {
		r.Register(shape, ctor)
	}

	return r
}

// Register sets the constructor for a shape. The last registration wins.
// A nil constructor removes the override.
func (r *Registry) Register(shape Shape, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make(map[Shape]Constructor)
	if current := r.snapshot.Load(); current != nil {
		for k, v := range *current {
			next[k] = v
		}
	}

	if ctor == nil {
		delete(next, shape)
	} else {
		next[shape] = ctor
	}

	r.snapshot.Store(&next)
}

// Lookup returns the constructor registered for a shape.
func (r *Registry) Lookup(shape Shape) (Constructor, bool) {
	if r == nil {
		return nil, false
	}

	current := r.snapshot.Load()
	if current == nil {
		return nil, false
	}

	ctor, ok := (*current)[shape]
	return ctor, ok
}

// Len returns the number of registered overrides.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	if current := r.snapshot.Load(); current != nil {
		return len(*current)
	}

	return 0
}
