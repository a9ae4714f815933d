// Package api implements the HTTP transcription API.
//
// The handler mounts three routes under /v1:
//
//	POST /v1/transcripts        upload a recording and process it
//	GET  /v1/transcripts/:name  fetch a stored document by audio stem
//	GET  /v1/providers          inference backend availability
//
// Uploads arrive as multipart form data with the recording in the
// "audio" field and options as plain form fields. A successful run
// responds with the transcript document, or with its markdown rendering
// when output=markdown is requested. Pipeline failures respond with the
// failure-shaped artifact and the HTTP status of the underlying error.
//
//	handler, err := api.NewHandler(p, api.WithStore(store))
//	if err != nil { ... }
//	handler.Register(srv.GinEngine())
package api
