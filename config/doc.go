// Package config loads layered application configuration.
//
// Values come from a config.yml file, a .env file, and process
// environment variables, in increasing precedence. File locations are
// resolved relative to the working directory, so the same code works
// from the repo root, from cmd/diascribe, and from tests. Environment
// variables address nested keys through underscore expansion:
// TRANSCRIPTION_BASE_URL sets transcription.base_url.
//
// Usage:
//
//	cfg, err := config.LoadApp(config.WithConfigFile("config.yml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	provider, err := whisper.NewProvider(cfg.Transcription)
package config
