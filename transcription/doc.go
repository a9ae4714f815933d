// Package transcription defines the provider interface and common types
// for interacting with speech-to-text backends.
//
// Backends produce ordered segments, each carrying ordered word-level
// records with start, end, text, and confidence. Words flattens them into
// the single sequence the aligner consumes.
//
// # Backends
//
//   - transcription/whisper: Whisper speech-to-text sidecar
//
// # Usage
//
//	transcription.Register(whisper.ProviderName, whisper.Factory())
//	p, err := transcription.Resolve(whisper.ProviderName, cfg)
//	result, err := p.Transcribe(ctx, req)
//	words := result.Words()
package transcription
