package pyannote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/skillsenselab/diascribe/diarization"
	apperrors "github.com/skillsenselab/diascribe/errors"
	"github.com/skillsenselab/diascribe/httpclient"
	"github.com/skillsenselab/diascribe/provider"
	"github.com/skillsenselab/diascribe/resilience"
	"github.com/skillsenselab/diascribe/security"
	"github.com/skillsenselab/diascribe/transcript"
)

const (
	// ProviderName is the registered name for the Pyannote provider.
	ProviderName = "pyannote"

	defaultPyannoteURL     = "http://localhost:8388"
	defaultPyannoteTimeout = 300 * time.Second

	hfTokenEnv = "HF_TOKEN"
)

// Config holds configuration for the Pyannote diarization provider.
type Config struct {
	// BaseURL is the sidecar's base URL.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	// Token is the HuggingFace access token gating the diarization
	// model. Falls back to the HF_TOKEN environment variable.
	Token string `json:"-" yaml:"token" mapstructure:"token"`
	// Timeout bounds a single diarization call.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	// TLS configures transport security for this client only.
	TLS *security.TLSConfig `json:"tls,omitempty" yaml:"tls" mapstructure:"tls"`
	// Retry enables retry on transient sidecar failures. Nil disables it.
	Retry *resilience.RetryConfig `json:"-" yaml:"-" mapstructure:"-"`
}

// Provider implements diarization.Provider using a pyannote.audio HTTP
// sidecar.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

// NewProvider creates a new Pyannote diarization provider. The token is
// required: construction fails before any audio is processed when both
// the config value and the HF_TOKEN environment variable are empty.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultPyannoteURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultPyannoteTimeout
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv(hfTokenEnv)
	}
	if cfg.Token == "" {
		return nil, apperrors.Configuration("HuggingFace token required for diarization. Set HF_TOKEN environment variable.")
	}

	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.BearerAuth(cfg.Token),
		TLS:     cfg.TLS,
		Retry:   cfg.Retry,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// Factory returns a provider.Factory that creates Pyannote Provider
// instances from a generic config map.
func Factory() provider.Factory[diarization.Provider] {
	return func(cfg map[string]any) (diarization.Provider, error) {
		pc := Config{}
		if v, ok := cfg["base_url"].(string); ok {
			pc.BaseURL = v
		}
		if v, ok := cfg["token"].(string); ok {
			pc.Token = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			pc.Timeout = v
		}
		if v, ok := cfg["tls"].(*security.TLSConfig); ok {
			pc.TLS = v
		}
		if v, ok := cfg["retry"].(*resilience.RetryConfig); ok {
			pc.Retry = v
		}
		return NewProvider(pc)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the Pyannote sidecar is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	resp, err := p.client.Get(ctx, "/health")
	return err == nil && resp.IsSuccess()
}

// Diarize sends audio to the Pyannote sidecar and returns speaker turns
// in the sidecar's iteration order.
func (p *Provider) Diarize(ctx context.Context, req diarization.DiarizationRequest) (*diarization.DiarizationResponse, error) {
	audio, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, apperrors.DiarizationFailed(ProviderName, fmt.Errorf("read audio file: %w", err))
	}
	defer audio.Close()

	fields := make(map[string]string)
	if req.NumSpeakers > 0 {
		fields["num_speakers"] = strconv.Itoa(req.NumSpeakers)
	}
	if req.MinSpeakers > 0 {
		fields["min_speakers"] = strconv.Itoa(req.MinSpeakers)
	}
	if req.MaxSpeakers > 0 {
		fields["max_speakers"] = strconv.Itoa(req.MaxSpeakers)
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/diarize",
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
			return nil, apperrors.DiarizationFailed(ProviderName,
				fmt.Errorf("diarization error (status %d): %s", httpErr.StatusCode, httpErr.Body))
		}
		return nil, apperrors.DiarizationFailed(ProviderName, err)
	}

	var result pyannoteResponse
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, apperrors.DiarizationFailed(ProviderName, fmt.Errorf("decode diarization response: %w", err))
	}
	if result.Error != "" {
		return nil, apperrors.DiarizationFailed(ProviderName, fmt.Errorf("diarization error: %s", result.Error))
	}

	return toDiarizationResponse(&result), nil
}

// --- internal Pyannote API types ---

type pyannoteResponse struct {
	Segments    []pyannoteSegment `json:"segments"`
	NumSpeakers int               `json:"num_speakers"`
	Error       string            `json:"error,omitempty"`
}

type pyannoteSegment struct {
	SpeakerID string  `json:"speaker_id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

func toDiarizationResponse(resp *pyannoteResponse) *diarization.DiarizationResponse {
	turns := make([]transcript.Turn, len(resp.Segments))
	for i, seg := range resp.Segments {
		turns[i] = transcript.Turn{
			Start:   seg.StartTime,
			End:     seg.EndTime,
			Speaker: seg.SpeakerID,
		}
	}
	return &diarization.DiarizationResponse{
		Turns:       turns,
		NumSpeakers: resp.NumSpeakers,
	}
}
