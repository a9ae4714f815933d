package api

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/diascribe/diarization"
	apperrors "github.com/skillsenselab/diascribe/errors"
	"github.com/skillsenselab/diascribe/logger"
	"github.com/skillsenselab/diascribe/observability"
	"github.com/skillsenselab/diascribe/pipeline"
	"github.com/skillsenselab/diascribe/storage"
	"github.com/skillsenselab/diascribe/transcription"
)

const serviceName = "diascribe"

// Handler serves the transcription API on top of a pipeline.
type Handler struct {
	pipeline    *pipeline.Pipeline
	store       *storage.ArtifactStore
	transcriber transcription.Provider
	diarizer    diarization.Provider
	metrics     *observability.Metrics
	log         *logger.Logger
	spoolDir    string
}

// Option configures a Handler during creation.
type Option func(*Handler)

// WithLogger replaces the default logger.
func WithLogger(log *logger.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithStore enables transcript retrieval from the artifact store.
func WithStore(store *storage.ArtifactStore) Option {
	return func(h *Handler) { h.store = store }
}

// WithProviders exposes provider availability on the providers endpoint.
func WithProviders(t transcription.Provider, d diarization.Provider) Option {
	return func(h *Handler) {
		h.transcriber = t
		h.diarizer = d
	}
}

// WithMetrics enables request metric recording.
func WithMetrics(m *observability.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithSpoolDir sets where uploads are spooled before processing. Defaults
// to the system temp directory.
func WithSpoolDir(dir string) Option {
	return func(h *Handler) {
		if dir != "" {
			h.spoolDir = dir
		}
	}
}

// NewHandler creates an API handler over the given pipeline.
func NewHandler(p *pipeline.Pipeline, opts ...Option) (*Handler, error) {
	if p == nil {
		return nil, apperrors.Configuration("api requires a pipeline")
	}
	h := &Handler{
		pipeline: p,
		log:      logger.NewDefault("api"),
		spoolDir: os.TempDir(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Register mounts the API routes under /v1.
func (h *Handler) Register(r gin.IRouter) {
	v1 := r.Group("/v1")
	v1.POST("/transcripts", h.Create)
	v1.GET("/transcripts/:name", h.Get)
	v1.GET("/providers", h.Providers)
}
