package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/skillsenselab/diascribe/diarization"
	apperrors "github.com/skillsenselab/diascribe/errors"
	"github.com/skillsenselab/diascribe/logger"
	"github.com/skillsenselab/diascribe/media"
	"github.com/skillsenselab/diascribe/observability"
	"github.com/skillsenselab/diascribe/storage"
	"github.com/skillsenselab/diascribe/transcript"
	"github.com/skillsenselab/diascribe/transcription"
	"github.com/skillsenselab/diascribe/util"
)

// Config holds job defaults shared by every run of the pipeline. Fields
// left empty fall through to the provider's own configured defaults.
type Config struct {
	// Model is the transcription model used when a job does not name one.
	Model string `json:"model,omitempty" yaml:"model,omitempty" mapstructure:"model"`
	// Language is the expected audio language (e.g. "sv") used when a job
	// does not name one.
	Language string `json:"language,omitempty" yaml:"language,omitempty" mapstructure:"language"`
}

// Job identifies one recording to process together with its per-run options.
type Job struct {
	// AudioPath is the path of the recording to process.
	AudioPath string `json:"audio_path"`
	// Language overrides the configured language for this job.
	Language string `json:"language,omitempty"`
	// Model overrides the configured transcription model for this job.
	Model string `json:"model,omitempty"`
	// NumSpeakers fixes the number of speakers (0 = auto-detect).
	NumSpeakers int `json:"num_speakers,omitempty"`
	// MinSpeakers bounds speaker auto-detection from below.
	MinSpeakers int `json:"min_speakers,omitempty"`
	// MaxSpeakers bounds speaker auto-detection from above.
	MaxSpeakers int `json:"max_speakers,omitempty"`
}

// Pipeline runs the transcribe, diarize, align sequence for one recording
// at a time. The two inference calls are strictly sequential; words and
// turns for a file are complete before alignment starts.
type Pipeline struct {
	config      Config
	transcriber transcription.Provider
	diarizer    diarization.Provider
	store       *storage.ArtifactStore
	metrics     *observability.Metrics
	log         *logger.Logger
}

// Option configures a Pipeline during creation.
type Option func(*Pipeline)

// WithLogger replaces the default logger.
func WithLogger(log *logger.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// WithStore enables artifact persistence after each successful run.
func WithStore(store *storage.ArtifactStore) Option {
	return func(p *Pipeline) { p.store = store }
}

// WithMetrics enables operation metric recording.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// New creates a Pipeline from its word and turn sources.
func New(cfg Config, transcriber transcription.Provider, diarizer diarization.Provider, opts ...Option) (*Pipeline, error) {
	if transcriber == nil {
		return nil, apperrors.Configuration("pipeline requires a transcription provider")
	}
	if diarizer == nil {
		return nil, apperrors.Configuration("pipeline requires a diarization provider")
	}

	p := &Pipeline{
		config:      cfg,
		transcriber: transcriber,
		diarizer:    diarizer,
		log:         logger.NewDefault("pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Process runs the full pipeline for one recording and returns the
// success-shaped document. On any step failure it returns (nil, err) with
// err an *errors.AppError; partial work is discarded and nothing is
// retried at this layer. Callers that need the failure-shaped artifact
// convert the error with FailureFor.
func (p *Pipeline) Process(ctx context.Context, job Job) (*transcript.Document, error) {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, observability.SpanPipelineProcess)
	defer span.End()
	observability.SetSpanAttribute(ctx, "audio.file", job.AudioPath)

	log := p.log.WithContext(ctx)
	log.Info("processing audio", logger.Fields(logger.FieldAudioFile, job.AudioPath))

	doc, err := p.run(ctx, job, log)
	duration := time.Since(start)
	if err != nil {
		observability.SetSpanError(ctx, err)
		p.recordOutcome(ctx, "error", duration, err)
		log.Error("processing failed",
			logger.ErrorFields("process", err),
			logger.Fields(logger.FieldAudioFile, job.AudioPath))
		return nil, err
	}

	p.recordOutcome(ctx, "ok", duration, nil)
	log.Info("processing complete", logger.Fields(
		logger.FieldAudioFile, job.AudioPath,
		"total_words", doc.TotalWords,
		"speakers", len(doc.Speakers),
		logger.FieldDuration, duration.Milliseconds(),
	))
	return doc, nil
}

func (p *Pipeline) run(ctx context.Context, job Job, log *logger.Logger) (*transcript.Document, error) {
	if _, err := os.Stat(job.AudioPath); err != nil {
		return nil, apperrors.AudioNotFound(job.AudioPath)
	}

	p.probe(job.AudioPath, log)

	tctx, tspan := observability.StartSpan(ctx, observability.SpanTranscribe)
	tres, err := p.transcriber.Transcribe(tctx, transcription.TranscriptionRequest{
		AudioPath:          job.AudioPath,
		Model:              util.Coalesce(job.Model, p.config.Model),
		Language:           util.Coalesce(job.Language, p.config.Language),
		WordTimestamps:     true,
		DetectDisfluencies: true,
	})
	tspan.End()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeTranscriptionFailed, "Transcription failed")
	}
	words := tres.Words()
	log.Info("transcription complete", logger.Fields(
		"segments", len(tres.Segments),
		"words", len(words),
	))

	dctx, dspan := observability.StartSpan(ctx, observability.SpanDiarize)
	dres, err := p.diarizer.Diarize(dctx, diarization.DiarizationRequest{
		AudioPath:   job.AudioPath,
		NumSpeakers: job.NumSpeakers,
		MinSpeakers: job.MinSpeakers,
		MaxSpeakers: job.MaxSpeakers,
	})
	dspan.End()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDiarizationFailed, "Diarization failed")
	}
	log.Info("diarization complete", logger.Fields(
		"turns", len(dres.Turns),
		"speakers", dres.NumSpeakers,
	))

	doc := transcript.NewDocument(job.AudioPath, transcript.Align(words, dres.Turns))

	if p.store != nil {
		artifacts, err := p.store.SaveDocument(ctx, doc)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeStorageError, "Artifact persistence failed")
		}
		log.Info("artifacts saved", logger.Fields(
			"json", artifacts.JSONPath,
			"markdown", artifacts.MarkdownPath,
		))
	}

	return doc, nil
}

// probe reads WAV header metadata for logging. Probe results are advisory
// and never fail the job.
func (p *Pipeline) probe(path string, log *logger.Logger) {
	if !media.IsWAV(path) {
		return
	}
	info, err := media.ProbeWAV(path)
	if err != nil {
		log.Warn("media probe failed", logger.ErrorFields("probe", err))
		return
	}
	log.Debug("media probe", logger.Fields(
		"sample_rate", info.SampleRate,
		"channels", info.Channels,
		"bits_per_sample", info.BitsPerSample,
		"media_duration", info.Duration,
	))
}

func (p *Pipeline) recordOutcome(ctx context.Context, status string, d time.Duration, err error) {
	if p.metrics == nil {
		return
	}
	p.metrics.RecordOperation(ctx, "pipeline", "process", status, d)
	if err != nil {
		errType := "internal"
		if appErr, ok := apperrors.AsAppError(err); ok {
			errType = string(appErr.Code)
		}
		p.metrics.RecordError(ctx, errType, "pipeline")
	}
}

// FailureFor converts a processing error into the failure-shaped terminal
// artifact for the given recording. AppError causes contribute their bare
// message, so artifact consumers see "Audio file not found: x" rather than
// a code-prefixed string.
func FailureFor(audioPath string, err error) transcript.Failure {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return transcript.Failure{Error: appErr.Message, AudioFile: audioPath}
	}
	return transcript.NewFailure(audioPath, err)
}
