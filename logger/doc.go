// Package logger provides structured logging for diascribe using zerolog.
//
// It supports JSON and console output formats, level configuration, and
// component-scoped loggers with structured fields. Console and JSON logs
// go to stderr by default so stdout stays reserved for transcript output.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.Get("pipeline")
//	log.Info("transcription complete", logger.Fields("words", 120))
package logger
