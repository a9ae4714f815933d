// Package server provides the HTTP server for the transcription API,
// backed by Gin with HTTP/2 cleartext support.
//
// New creates the server, Setup applies the standard middleware stack
// (recovery, request-ID, CORS, body-size limit, rate limiting, optional
// bearer token auth) and registers the system endpoints:
//
//	- /health: component health aggregation
//	- /info: service, version, and uptime information
//	- /metrics: runtime memory and goroutine counters
//	- /version: build version information
//	- /alive, /ready: orchestrator probes
//
// API routes are registered on the Gin engine after Setup so they pass
// through the full middleware chain.
package server
