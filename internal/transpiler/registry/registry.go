// Package registry provides the per-unit arena of class models.
//
// The registry is created for a single translation unit's pipeline run,
// populated in two passes by the model builder (placeholders first, resolved
// models second), and discarded after emission. It is never shared across
// unit runs.
package registry

import (
	"sync"

	"xcpp/internal/transpiler"
)

// ClassRegistry manages the class models of one translation unit and tracks
// the order in which classes finished resolution (base before derived).
//
// Thread-safe: all methods can be called concurrently.
type ClassRegistry struct {
	mu sync.RWMutex

	// classes maps class name to its model; append-only
	classes map[string]*transpiler.ClassModel

	// declared keeps registration order for deterministic iteration
	declared []string

	// resolved keeps the order classes reached MethodsResolved, which is a
	// valid dependency order because a base always resolves before its
	// derived classes
	resolved []string
}

// NewClassRegistry creates an empty registry.
func NewClassRegistry() *ClassRegistry {
	return &ClassRegistry{
		classes: make(map[string]*transpiler.ClassModel),
	}
}

// Register adds a placeholder model for a class name and returns it.
// Registering a name twice returns the existing model and false.
func (r *ClassRegistry) Register(name string) (*transpiler.ClassModel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.classes[name]; ok {
		return existing, false
	}
	model := &transpiler.ClassModel{
		Name:        name,
		State:       transpiler.StateRegistered,
		MethodTable: make(map[transpiler.MethodKey]string),
	}
	r.classes[name] = model
	r.declared = append(r.declared, name)
	return model, true
}

// Lookup returns the model for a class name.
func (r *ClassRegistry) Lookup(name string) (*transpiler.ClassModel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.classes[name]
	return m, ok
}

// Has reports whether a class name is registered. Satisfies the type
// mapper's class lookup dependency.
func (r *ClassRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.classes[name]
	return ok
}

// MarkResolved records that a class finished method resolution. Call order
// across classes yields dependency order for emission.
func (r *ClassRegistry) MarkResolved(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = append(r.resolved, name)
}

// Declared returns all registered class names in registration order.
func (r *ClassRegistry) Declared() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.declared))
	copy(out, r.declared)
	return out
}

// Resolved returns the fully resolved class models in dependency order,
// excluding skipped classes.
func (r *ClassRegistry) Resolved() []*transpiler.ClassModel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*transpiler.ClassModel, 0, len(r.resolved))
	for _, name := range r.resolved {
		if m, ok := r.classes[name]; ok && m.State != transpiler.StateSkipped {
			out = append(out, m)
		}
	}
	return out
}

// Len returns the number of registered classes.
func (r *ClassRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.classes)
}
