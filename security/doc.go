// Package security provides per-connection TLS configuration.
//
// Each outbound client (whisper sidecar, pyannote sidecar, artifact store)
// carries its own TLSConfig; disabling certificate verification is an
// explicit per-client opt-in and never a process-wide side effect.
//
// # TLS Configuration
//
//	cfg := security.TLSConfig{
//	    CAFile:     "/etc/diascribe/ca.pem",
//	    SkipVerify: false,
//	}
//
//	tlsConfig, err := cfg.Build()
package security
