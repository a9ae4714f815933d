// Package validation validates request payloads before they reach the
// pipeline. Struct tags drive per-field checks; cross-field rules that
// tags cannot express, like the speaker-hint bounds, are named functions
// shared by the HTTP API and the CLI.
//
// All failures surface as *errors.AppError with the failed fields listed
// under the "fields" detail key:
//
//	type TranscribeRequest struct {
//	    Language    string `json:"language" validate:"omitempty,bcp47_language_tag"`
//	    NumSpeakers int    `json:"num_speakers" validate:"omitempty,min=1,max=32"`
//	}
//
//	if err := validation.Validate(req); err != nil { ... }
//	if err := validation.SpeakerBounds(req.NumSpeakers, req.MinSpeakers, req.MaxSpeakers); err != nil { ... }
package validation
