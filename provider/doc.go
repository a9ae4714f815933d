// Package provider defines the base provider abstraction shared by the
// transcription and diarization backends.
//
// A provider is a named backend with a liveness check. Concrete
// capabilities (transcribing, diarizing) are layered on by the domain
// packages, which embed Provider in their own interfaces.
//
// # Registry
//
// Registry holds named factories and lazily created instances. Backends
// register a factory at startup and the application resolves the
// configured backend by name:
//
//	reg := provider.NewRegistry[transcription.Provider]()
//	reg.RegisterFactory("whisper", whisper.Factory())
//	p, err := reg.Resolve("whisper", map[string]any{"base_url": url})
package provider
