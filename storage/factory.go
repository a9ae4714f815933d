package storage

import (
	"fmt"

	"github.com/skillsenselab/diascribe/logger"
)

// Factory creates a Storage implementation from configuration.
type Factory func(cfg Config, log *logger.Logger) (Storage, error)

var factories = make(map[string]Factory)

// RegisterFactory registers a storage backend factory for the given
// provider name. Implementation packages call this in an init function
// to make themselves available to the New constructor.
func RegisterFactory(name string, f Factory) {
	factories[name] = f
}

// New creates a Storage implementation based on the given Config. The
// provider field selects the backend; its package must be imported so
// the factory is registered (e.g. _ ".../storage/local").
func New(cfg Config, log *logger.Logger) (Storage, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f, ok := factories[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("storage: unsupported provider %q (not registered)", cfg.Provider)
	}

	log.WithComponent("storage").Info("initializing storage",
		logger.Fields(logger.FieldProvider, cfg.Provider))
	return f(cfg, log)
}
