package whisper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	apperrors "github.com/skillsenselab/diascribe/errors"
	"github.com/skillsenselab/diascribe/httpclient"
	"github.com/skillsenselab/diascribe/provider"
	"github.com/skillsenselab/diascribe/resilience"
	"github.com/skillsenselab/diascribe/security"
	"github.com/skillsenselab/diascribe/transcript"
	"github.com/skillsenselab/diascribe/transcription"
)

const (
	// ProviderName is the registered name for the Whisper provider.
	ProviderName = "whisper"

	defaultWhisperURL     = "http://localhost:8387"
	defaultWhisperModel   = "large-v3"
	defaultLanguage       = "sv"
	defaultVADFilter      = "silero"
	defaultWhisperTimeout = 120 * time.Second
)

// Config holds configuration for the Whisper transcription provider.
type Config struct {
	// BaseURL is the sidecar's base URL.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	// Model is the default model when a request does not name one.
	Model string `json:"model" yaml:"model" mapstructure:"model"`
	// Language is the default language when a request does not name one.
	Language string `json:"language,omitempty" yaml:"language" mapstructure:"language"`
	// VADFilter is the default voice activity detection filter.
	VADFilter string `json:"vad_filter,omitempty" yaml:"vad_filter" mapstructure:"vad_filter"`
	// Timeout bounds a single transcription call.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	// TLS configures transport security for this client only.
	TLS *security.TLSConfig `json:"tls,omitempty" yaml:"tls" mapstructure:"tls"`
	// Retry enables retry on transient sidecar failures. Nil disables it.
	Retry *resilience.RetryConfig `json:"-" yaml:"-" mapstructure:"-"`
}

// Provider implements transcription.Provider using a whisper-timestamped
// HTTP sidecar.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

// NewProvider creates a new Whisper transcription provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultWhisperURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultWhisperModel
	}
	if cfg.Language == "" {
		cfg.Language = defaultLanguage
	}
	if cfg.VADFilter == "" {
		cfg.VADFilter = defaultVADFilter
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultWhisperTimeout
	}

	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		TLS:     cfg.TLS,
		Retry:   cfg.Retry,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// Factory returns a provider.Factory that creates Whisper Provider
// instances from a generic config map.
func Factory() provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		wc := Config{}
		if v, ok := cfg["base_url"].(string); ok {
			wc.BaseURL = v
		}
		if v, ok := cfg["model"].(string); ok {
			wc.Model = v
		}
		if v, ok := cfg["language"].(string); ok {
			wc.Language = v
		}
		if v, ok := cfg["vad_filter"].(string); ok {
			wc.VADFilter = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			wc.Timeout = v
		}
		if v, ok := cfg["tls"].(*security.TLSConfig); ok {
			wc.TLS = v
		}
		if v, ok := cfg["retry"].(*resilience.RetryConfig); ok {
			wc.Retry = v
		}
		return NewProvider(wc)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the Whisper sidecar is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	resp, err := p.client.Get(ctx, "/health")
	return err == nil && resp.IsSuccess()
}

// Transcribe sends an audio file to the Whisper sidecar and returns the
// transcription with word-level timestamps.
func (p *Provider) Transcribe(ctx context.Context, req transcription.TranscriptionRequest) (*transcription.TranscriptionResponse, error) {
	audio, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, apperrors.TranscriptionFailed(ProviderName, fmt.Errorf("read audio file: %w", err))
	}
	defer audio.Close()

	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}
	lang := p.cfg.Language
	if req.Language != "" {
		lang = req.Language
	}
	vad := p.cfg.VADFilter
	if req.VADFilter != "" {
		vad = req.VADFilter
	}

	fields := map[string]string{
		"model":               model,
		"word_timestamps":     strconv.FormatBool(req.WordTimestamps),
		"detect_disfluencies": strconv.FormatBool(req.DetectDisfluencies),
	}
	if lang != "" {
		fields["language"] = lang
	}
	if vad != "" {
		fields["vad_filter"] = vad
	}
	if req.NumThreads > 0 {
		fields["num_threads"] = strconv.Itoa(req.NumThreads)
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/transcribe",
		Body: &httpclient.MultipartBody{
			Fields: fields,
			Files: []httpclient.FileField{{
				FieldName:   "file",
				FileName:    filepath.Base(req.AudioPath),
				ContentType: "audio/wav",
				Reader:      audio,
			}},
		},
	})
	if err != nil {
		var httpErr *httpclient.Error
		if errors.As(err, &httpErr) && len(httpErr.Body) > 0 {
			return nil, apperrors.TranscriptionFailed(ProviderName,
				fmt.Errorf("whisper error (status %d): %s", httpErr.StatusCode, httpErr.Body))
		}
		return nil, apperrors.TranscriptionFailed(ProviderName, err)
	}

	var result whisperResponse
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, apperrors.TranscriptionFailed(ProviderName, fmt.Errorf("decode whisper response: %w", err))
	}

	return toTranscriptionResponse(&result), nil
}

// --- internal Whisper API response types ---

type whisperResponse struct {
	Text     string           `json:"text"`
	Segments []whisperSegment `json:"segments"`
	Language string           `json:"language"`
	Duration float64          `json:"duration"`
}

type whisperSegment struct {
	ID    int           `json:"id"`
	Start float64       `json:"start"`
	End   float64       `json:"end"`
	Text  string        `json:"text"`
	Words []whisperWord `json:"words"`
}

type whisperWord struct {
	Text       string   `json:"text"`
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Confidence *float64 `json:"confidence"`
}

func toTranscriptionResponse(resp *whisperResponse) *transcription.TranscriptionResponse {
	segments := make([]transcription.Segment, len(resp.Segments))
	for i, seg := range resp.Segments {
		words := make([]transcript.Word, len(seg.Words))
		for j, w := range seg.Words {
			// Word confidence is optional on the wire and defaults to 1.0.
			confidence := 1.0
			if w.Confidence != nil {
				confidence = *w.Confidence
			}
			words[j] = transcript.Word{
				Start:      w.Start,
				End:        w.End,
				Text:       w.Text,
				Confidence: confidence,
			}
		}
		segments[i] = transcription.Segment{
			ID:    seg.ID,
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
			Words: words,
		}
	}

	duration := resp.Duration
	if duration == 0 && len(resp.Segments) > 0 {
		duration = resp.Segments[len(resp.Segments)-1].End
	}

	return &transcription.TranscriptionResponse{
		Text:     resp.Text,
		Segments: segments,
		Duration: duration,
		Language: resp.Language,
	}
}
