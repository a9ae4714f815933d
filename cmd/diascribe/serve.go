package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/diascribe/api"
	"github.com/skillsenselab/diascribe/component"
	"github.com/skillsenselab/diascribe/logger"
	"github.com/skillsenselab/diascribe/pipeline"
	"github.com/skillsenselab/diascribe/server"
	"github.com/skillsenselab/diascribe/watch"
)

// runServe handles "diascribe serve": the HTTP API plus, when a watch
// directory is configured, the recording watcher in the same process.
// Both run as registry components so readiness and shutdown cover them
// together.
func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		configFile string
		port       int
		insecure   bool
	)
	fs.StringVar(&configFile, "config", "", "path to config file")
	fs.IntVar(&port, "port", 0, "listen port (overrides config)")
	fs.BoolVar(&insecure, "insecure-skip-verify", false, "skip TLS verification for sidecar connections")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: diascribe serve [flags]")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)
	if fs.NArg() != 0 {
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		return fail(err)
	}
	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()

	if port != 0 {
		cfg.Server.Port = port
	}
	if insecure {
		applyInsecure(cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics, telemetryShutdown, err := initTelemetry(ctx, cfg, log)
	if err != nil {
		return fail(err)
	}
	defer telemetryShutdown()

	transcriber, diarizer, err := buildProviders(cfg)
	if err != nil {
		return fail(err)
	}
	store, err := buildStore(cfg, log)
	if err != nil {
		return fail(err)
	}

	popts := []pipeline.Option{pipeline.WithLogger(log)}
	if store != nil {
		popts = append(popts, pipeline.WithStore(store))
	}
	if metrics != nil {
		popts = append(popts, pipeline.WithMetrics(metrics))
	}
	p, err := pipeline.New(cfg.Pipeline, transcriber, diarizer, popts...)
	if err != nil {
		return fail(err)
	}

	registry := component.NewRegistry()

	srv := server.New(cfg.Server, log)
	checker := func(ctx context.Context) []component.Health {
		return registry.HealthAll(ctx)
	}
	if err := srv.Setup(cfg.Name, checker); err != nil {
		return fail(err)
	}

	hopts := []api.Option{
		api.WithLogger(log),
		api.WithProviders(transcriber, diarizer),
	}
	if store != nil {
		hopts = append(hopts, api.WithStore(store))
	}
	if metrics != nil {
		hopts = append(hopts, api.WithMetrics(metrics))
	}
	handler, err := api.NewHandler(p, hopts...)
	if err != nil {
		return fail(err)
	}
	handler.Register(srv.GinEngine())
	srv.LogRoutes()

	if err := registry.Register(server.NewComponent(srv)); err != nil {
		return fail(err)
	}
	if cfg.Watch.Dir != "" {
		wopts := []watch.Option{watch.WithLogger(log)}
		if store != nil {
			wopts = append(wopts, watch.WithFailureStore(store))
		}
		watcher, err := watch.New(cfg.Watch, p, wopts...)
		if err != nil {
			return fail(err)
		}
		if err := registry.Register(watch.NewComponent(watcher)); err != nil {
			return fail(err)
		}
	}

	if err := registry.StartAll(ctx); err != nil {
		return fail(err)
	}
	log.Info("diascribe is ready", map[string]interface{}{"addr": srv.Addr()})

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := registry.StopAll(shutdownCtx); err != nil {
		log.Error("shutdown finished with errors", map[string]interface{}{"error": err.Error()})
		return 1
	}
	log.Info("diascribe stopped")
	return 0
}
