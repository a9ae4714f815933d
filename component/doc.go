// Package component defines the lifecycle interface and registry for
// long-running services.
//
// The serve command registers the HTTP server and, when configured, the
// recording watcher. The registry starts them in registration order,
// stops them in reverse, and aggregates their health for the /health
// endpoint.
package component
