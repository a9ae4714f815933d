package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillsenselab/diascribe/logger"
	"github.com/skillsenselab/diascribe/pipeline"
	"github.com/skillsenselab/diascribe/storage"
	"github.com/skillsenselab/diascribe/validation"
)

// runProcess handles "diascribe process": one recording in, one terminal
// document out. The command exits 0 for both successful and failed
// processing; a failed run prints the failure document instead of a
// transcript. Non-zero exits are reserved for configuration errors (1)
// and usage errors (2).
func runProcess(args []string) int {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	var (
		configFile  string
		output      string
		language    string
		model       string
		hfToken     string
		numSpeakers int
		minSpeakers int
		maxSpeakers int
		saveDir     string
		insecure    bool
	)
	fs.StringVar(&configFile, "config", "", "path to config file")
	fs.StringVar(&output, "output", "json", "output format: json or markdown")
	fs.StringVar(&output, "o", "json", "output format (shorthand)")
	fs.StringVar(&language, "language", "", "expected audio language (e.g. sv)")
	fs.StringVar(&model, "model", "", "transcription model override")
	fs.StringVar(&hfToken, "hf-token", "", "HuggingFace token (overrides HF_TOKEN)")
	fs.IntVar(&numSpeakers, "num-speakers", 0, "exact number of speakers (0 = auto-detect)")
	fs.IntVar(&minSpeakers, "min-speakers", 0, "minimum number of speakers")
	fs.IntVar(&maxSpeakers, "max-speakers", 0, "maximum number of speakers")
	fs.StringVar(&saveDir, "save-dir", "", "directory to save transcript artifacts to")
	fs.BoolVar(&insecure, "insecure-skip-verify", false, "skip TLS verification for sidecar connections")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: diascribe process [flags] <audio-file>")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	if output != "json" && output != "markdown" {
		fmt.Fprintf(os.Stderr, "diascribe: invalid output format %q\n", output)
		return 2
	}
	if err := validation.SpeakerBounds(numSpeakers, minSpeakers, maxSpeakers); err != nil {
		fmt.Fprintf(os.Stderr, "diascribe: %v\n", err)
		return 2
	}
	audioPath := fs.Arg(0)

	cfg, err := loadConfig(configFile)
	if err != nil {
		return fail(err)
	}
	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()

	if language != "" {
		cfg.Pipeline.Language = language
	}
	if model != "" {
		cfg.Pipeline.Model = model
	}
	if hfToken != "" {
		cfg.Diarization.Token = hfToken
	}
	if insecure {
		applyInsecure(cfg)
	}
	if saveDir != "" {
		cfg.Storage.Enabled = true
		cfg.Storage.Provider = storage.ProviderLocal
		cfg.Storage.BasePath = saveDir
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := p.Process(ctx, pipeline.Job{
		AudioPath:   audioPath,
		NumSpeakers: numSpeakers,
		MinSpeakers: minSpeakers,
		MaxSpeakers: maxSpeakers,
	})
	if err != nil {
		return emitJSON(pipeline.FailureFor(audioPath, err))
	}

	if output == "markdown" {
		fmt.Println(doc.Markdown)
		return 0
	}
	return emitJSON(doc)
}

// emitJSON prints the terminal document to stdout.
func emitJSON(v any) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fail(err)
	}
	fmt.Println(string(data))
	return 0
}
