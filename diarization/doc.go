// Package diarization defines the provider interface and common types
// for interacting with speaker diarization backends.
//
// Backends produce speaker turns, each covering one contiguous interval
// attributed to one speaker. Turn order is the backend's own iteration
// order and is never re-sorted here.
//
// # Backends
//
//   - diarization/pyannote: pyannote.audio speaker diarization sidecar
package diarization
