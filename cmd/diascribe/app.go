package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/skillsenselab/diascribe/config"
	"github.com/skillsenselab/diascribe/diarization"
	"github.com/skillsenselab/diascribe/diarization/pyannote"
	"github.com/skillsenselab/diascribe/httpclient"
	"github.com/skillsenselab/diascribe/logger"
	"github.com/skillsenselab/diascribe/observability"
	"github.com/skillsenselab/diascribe/security"
	"github.com/skillsenselab/diascribe/storage"
	"github.com/skillsenselab/diascribe/transcription"
	"github.com/skillsenselab/diascribe/transcription/whisper"
)

// loadConfig loads the application configuration, optionally from an
// explicit file passed via --config.
func loadConfig(configFile string) (*config.AppConfig, error) {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	return config.LoadApp(opts...)
}

// fail reports a configuration-stage error on stderr and returns exit
// code 1. Processing failures never come through here; they are emitted
// as failure documents with exit code 0.
func fail(err error) int {
	fmt.Fprintf(os.Stderr, "diascribe: %v\n", err)
	return 1
}

// applyInsecure disables TLS certificate verification on both sidecar
// clients. Intended for lab setups with self-signed certificates.
func applyInsecure(cfg *config.AppConfig) {
	if cfg.Transcription.TLS == nil {
		cfg.Transcription.TLS = &security.TLSConfig{}
	}
	cfg.Transcription.TLS.SkipVerify = true
	if cfg.Diarization.TLS == nil {
		cfg.Diarization.TLS = &security.TLSConfig{}
	}
	cfg.Diarization.TLS.SkipVerify = true
}

// buildProviders constructs the transcription and diarization providers.
// Both get the default retry policy so transient sidecar hiccups do not
// fail a whole recording. Validation errors from a sidecar are not
// transient and are never retried.
func buildProviders(cfg *config.AppConfig) (transcription.Provider, diarization.Provider, error) {
	retry := httpclient.DefaultRetryConfig()
	cfg.Transcription.Retry = retry
	cfg.Diarization.Retry = retry

	transcriber, err := whisper.NewProvider(cfg.Transcription)
	if err != nil {
		return nil, nil, err
	}
	diarizer, err := pyannote.NewProvider(cfg.Diarization)
	if err != nil {
		return nil, nil, err
	}
	return transcriber, diarizer, nil
}

// buildStore constructs the artifact store, or returns nil when storage
// is disabled in the configuration.
func buildStore(cfg *config.AppConfig, log *logger.Logger) (*storage.ArtifactStore, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}
	st, err := storage.New(cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	return storage.NewArtifactStore(st, cfg.Storage.Prefix, log), nil
}

// initTelemetry initializes tracing and metrics when an OTLP endpoint is
// configured. The returned shutdown function flushes both providers and
// is safe to call even when telemetry is inactive.
func initTelemetry(ctx context.Context, cfg *config.AppConfig, log *logger.Logger) (*observability.Metrics, func(), error) {
	if !cfg.Observability.Active() {
		return nil, func() {}, nil
	}

	tp, err := observability.InitTracer(ctx, cfg.Observability.TracerConfig(&cfg.ServiceConfig))
	if err != nil {
		return nil, nil, err
	}
	mp, err := observability.InitMeter(ctx, cfg.Observability.MeterConfig(&cfg.ServiceConfig))
	if err != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(shutdownCtx)
		return nil, nil, err
	}
	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mp.Shutdown(shutdownCtx)
		_ = tp.Shutdown(shutdownCtx)
		return nil, nil, err
	}

	shutdown := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mp.Shutdown(shutdownCtx); err != nil {
			log.Warn("meter provider shutdown failed", map[string]interface{}{"error": err.Error()})
		}
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("tracer provider shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return metrics, shutdown, nil
}
