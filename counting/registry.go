// Package counting holds the card-counting systems a session can train
// with. Systems register into a Registry; the engine consumes them through
// its CountingSystem interface and never imports this package.
package counting

import "blackjack-trainer-server/engine"

// Registry holds all registered counting systems indexed by name.
type Registry struct {
	systems map[string]engine.CountingSystem
	order   []string // registration order for deterministic All()
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{systems: make(map[string]engine.CountingSystem)}
}

// Register adds a counting system to the registry.
func (r *Registry) Register(s engine.CountingSystem) {
	name := s.Name()
	if _, exists := r.systems[name]; !exists {
		r.order = append(r.order, name)
	}
	r.systems[name] = s
}

// Get returns the system with the given name.
func (r *Registry) Get(name string) (engine.CountingSystem, bool) {
	s, ok := r.systems[name]
	return s, ok
}

// All returns every registered system in registration order.
func (r *Registry) All() []engine.CountingSystem {
	out := make([]engine.CountingSystem, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.systems[name])
	}
	return out
}

// DefaultRegistry returns a registry with the built-in systems.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(HiLo{})
	r.Register(KnockOut{})
	return r
}
