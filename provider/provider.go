package provider

import "context"

// Provider is the base interface for inference backends. The domain
// packages (transcription, diarization) embed it and add their call.
type Provider interface {
	// Name returns the backend's registered name, e.g. "whisper".
	Name() string
	// IsAvailable probes the backend, typically its /health endpoint.
	// It reports reachability only; a true result does not reserve
	// capacity.
	IsAvailable(ctx context.Context) bool
}

// Factory builds a provider from its config section, decoded as a
// generic map so registries stay independent of concrete config types.
type Factory[T Provider] func(cfg map[string]any) (T, error)
