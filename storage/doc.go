// Package storage persists transcript artifacts to object storage.
//
// The streaming Storage interface has two backends, selected by config:
//
//   - storage/local: files under a base directory
//   - storage/s3: Amazon S3 or any S3-compatible endpoint
//
// Backends register themselves via init, so the chosen package must be
// imported (usually blank-imported by the command wiring):
//
//	import (
//		_ "github.com/skillsenselab/diascribe/storage/local"
//		_ "github.com/skillsenselab/diascribe/storage/s3"
//	)
//
// ArtifactStore sits on top and writes one <stem>.json (the structured
// document) and one <stem>.md (the rendered markdown) per processed
// audio file.
package storage
