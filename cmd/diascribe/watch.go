package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/diascribe/logger"
	"github.com/skillsenselab/diascribe/pipeline"
	"github.com/skillsenselab/diascribe/watch"
)

// drainTimeout bounds how long shutdown waits for queued recordings.
const drainTimeout = 10 * time.Minute

// runWatch handles "diascribe watch": continuous directory processing
// without the HTTP server. The first signal stops intake and drains the
// queue so already-detected recordings still get their artifacts; a
// second signal aborts in-flight work.
func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	var (
		configFile string
		dir        string
		workers    int
		language   string
		hfToken    string
		insecure   bool
	)
	fs.StringVar(&configFile, "config", "", "path to config file")
	fs.StringVar(&dir, "dir", "", "directory to watch (overrides config)")
	fs.IntVar(&workers, "workers", 0, "number of processing workers (overrides config)")
	fs.StringVar(&language, "language", "", "expected audio language (e.g. sv)")
	fs.StringVar(&hfToken, "hf-token", "", "HuggingFace token (overrides HF_TOKEN)")
	fs.BoolVar(&insecure, "insecure-skip-verify", false, "skip TLS verification for sidecar connections")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: diascribe watch [flags]")
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

	if dir != "" {
		cfg.Watch.Dir = dir
	}
	if workers > 0 {
		cfg.Watch.Workers = workers
	}
	if language != "" {
		cfg.Watch.Language = language
	}
	if hfToken != "" {
		cfg.Diarization.Token = hfToken
	}
	if insecure {
		applyInsecure(cfg)
	}

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
	p, err := pipeline.New(cfg.Pipeline, transcriber, diarizer, popts...)
	if err != nil {
		return fail(err)
	}

	wopts := []watch.Option{watch.WithLogger(log)}
	if store != nil {
		wopts = append(wopts, watch.WithFailureStore(store))
	}
	watcher, err := watch.New(cfg.Watch, p, wopts...)
	if err != nil {
		return fail(err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	if err := watcher.Start(runCtx); err != nil {
		return fail(err)
	}
	log.Info("watching for recordings", map[string]interface{}{
		"dir":     cfg.Watch.Dir,
		"workers": cfg.Watch.Workers,
	})

	<-sigCh
	log.Info("shutting down, draining queued recordings (send signal again to abort)")
	go func() {
		<-sigCh
		log.Warn("aborting in-flight work")
		cancel()
	}()

	drainCtx, drainCancel := context.WithTimeout(context.Background(), drainTimeout)
	defer drainCancel()
	if err := watcher.Stop(drainCtx); err != nil {
		log.Error("drain incomplete", map[string]interface{}{"error": err.Error()})
		return 1
	}
	log.Info("watch stopped")
	return 0
}
