package transcription

import "github.com/skillsenselab/diascribe/provider"

// NewRegistry creates a new provider registry for transcription providers.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide transcription registry.
func DefaultRegistry() *provider.Registry[Provider] {
	return defaultRegistry
}

// Register adds a named factory to the default registry.
func Register(name string, factory provider.Factory[Provider]) {
	defaultRegistry.RegisterFactory(name, factory)
}

// Resolve returns the named provider from the default registry, creating
// it from cfg on first use.
func Resolve(name string, cfg map[string]any) (Provider, error) {
	return defaultRegistry.Resolve(name, cfg)
}
