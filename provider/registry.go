package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Registry manages named provider factories and cached instances.
// Factories are registered at startup; instances are created on first
// use and cached for the life of the process.
type Registry[T Provider] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T]
	instances map[string]T
}

// NewRegistry creates a new empty Registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{
		factories: make(map[string]Factory[T]),
		instances: make(map[string]T),
	}
}

// RegisterFactory registers a named factory for creating providers.
// Registering the same name twice replaces the factory but leaves any
// cached instance in place.
func (r *Registry[T]) RegisterFactory(name string, factory Factory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Create instantiates a provider using the named factory and config.
// The instance is not cached; use Resolve for that.
func (r *Registry[T]) Create(name string, cfg map[string]any) (T, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("provider factory %q not registered", name)
	}
	return factory(cfg)
}

// Resolve returns the cached instance for name, creating and caching it
// on first use.
func (r *Registry[T]) Resolve(name string, cfg map[string]any) (T, error) {
	r.mu.RLock()
	inst, ok := r.instances[name]
	r.mu.RUnlock()
	if ok {
		return inst, nil
	}

	inst, err := r.Create(name, cfg)
	if err != nil {
		var zero T
		return zero, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another goroutine may have resolved the same name concurrently;
	// the first cached instance wins.
	if existing, ok := r.instances[name]; ok {
		return existing, nil
	}
	r.instances[name] = inst
	return inst, nil
}

// Get returns a cached provider instance by name.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[name]
	return inst, ok
}

// Set caches a provider instance by name.
func (r *Registry[T]) Set(name string, instance T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances[name] = instance
}

// List returns sorted names of all registered factories.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Health reports availability for every cached instance, keyed by name.
// Health checks run sequentially under a read lock snapshot so a slow
// sidecar cannot block registration.
func (r *Registry[T]) Health(ctx context.Context) map[string]bool {
	r.mu.RLock()
	snapshot := make(map[string]T, len(r.instances))
	for name, inst := range r.instances {
		snapshot[name] = inst
	}
	r.mu.RUnlock()

	health := make(map[string]bool, len(snapshot))
	for name, inst := range snapshot {
		health[name] = inst.IsAvailable(ctx)
	}
	return health
}
