package pyannote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skillsenselab/diascribe/diarization"
	apperrors "github.com/skillsenselab/diascribe/errors"
)

func writeTestAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meeting.wav")
	if err := os.WriteFile(path, []byte("RIFF....WAVEfmt "), 0o644); err != nil {
		t.Fatalf("write test audio: %v", err)
	}
	return path
}

func TestNewProvider_RequiresToken(t *testing.T) {
	t.Setenv("HF_TOKEN", "")

	_, err := NewProvider(Config{})
	if err == nil {
		t.Fatal("expected an error without a token")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.ErrCodeConfigMissing {
		t.Errorf("expected config missing code, got %s", appErr.Code)
	}
	want := "HuggingFace token required for diarization. Set HF_TOKEN environment variable."
	if appErr.Message != want {
		t.Errorf("expected message %q, got %q", want, appErr.Message)
	}
}

func TestNewProvider_TokenFromEnv(t *testing.T) {
	t.Setenv("HF_TOKEN", "hf_from_env")

	p, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if p.cfg.Token != "hf_from_env" {
		t.Errorf("expected token from env, got %q", p.cfg.Token)
	}
}

func TestNewProvider_ExplicitTokenWinsOverEnv(t *testing.T) {
	t.Setenv("HF_TOKEN", "hf_from_env")

	p, err := NewProvider(Config{Token: "hf_explicit"})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if p.cfg.Token != "hf_explicit" {
		t.Errorf("expected explicit token, got %q", p.cfg.Token)
	}
}

func TestProvider_Diarize(t *testing.T) {
	audioPath := writeTestAudio(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/diarize" {
			t.Errorf("expected path /diarize, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer hf_test" {
			t.Errorf("expected bearer token, got %q", got)
		}
		if err := r.ParseMultipartForm(4 << 20); err != nil {
			t.Fatalf("ParseMultipartForm failed: %v", err)
		}
		if got := r.FormValue("min_speakers"); got != "2" {
			t.Errorf("expected min_speakers 2, got %q", got)
		}
		if got := r.FormValue("max_speakers"); got != "4" {
			t.Errorf("expected max_speakers 4, got %q", got)
		}
		if got := r.FormValue("num_speakers"); got != "" {
			t.Errorf("expected num_speakers unset, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"segments": [
				{"speaker_id": "SPEAKER_01", "start_time": 0.0, "end_time": 2.5},
				{"speaker_id": "SPEAKER_00", "start_time": 2.5, "end_time": 5.0}
			],
			"num_speakers": 2
		}`))
	}))
	defer server.Close()

	p, err := NewProvider(Config{BaseURL: server.URL, Token: "hf_test"})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}

	resp, err := p.Diarize(context.Background(), diarization.DiarizationRequest{
		AudioPath:   audioPath,
		MinSpeakers: 2,
		MaxSpeakers: 4,
	})
	if err != nil {
		t.Fatalf("Diarize failed: %v", err)
	}

	if resp.NumSpeakers != 2 {
		t.Errorf("expected 2 speakers, got %d", resp.NumSpeakers)
	}
	if len(resp.Turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(resp.Turns))
	}
	// Wire order must survive the conversion.
	if resp.Turns[0].Speaker != "SPEAKER_01" || resp.Turns[1].Speaker != "SPEAKER_00" {
		t.Errorf("turn order changed: %+v", resp.Turns)
	}
	if resp.Turns[0].Start != 0.0 || resp.Turns[0].End != 2.5 {
		t.Errorf("unexpected first turn times: %+v", resp.Turns[0])
	}
}

func TestProvider_Diarize_SidecarError(t *testing.T) {
	audioPath := writeTestAudio(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"segments": [], "error": "pipeline not loaded"}`))
	}))
	defer server.Close()

	p, err := NewProvider(Config{BaseURL: server.URL, Token: "hf_test"})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	_, err = p.Diarize(context.Background(), diarization.DiarizationRequest{AudioPath: audioPath})
	if err == nil {
		t.Fatal("expected an error")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.ErrCodeDiarizationFailed {
		t.Errorf("expected diarization failure code, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Error(), "pipeline not loaded") {
		t.Errorf("expected sidecar detail in error, got %q", appErr.Error())
	}
}

func TestProvider_Diarize_HTTPError(t *testing.T) {
	audioPath := writeTestAudio(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading model"))
	}))
	defer server.Close()

	p, err := NewProvider(Config{BaseURL: server.URL, Token: "hf_test"})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	_, err = p.Diarize(context.Background(), diarization.DiarizationRequest{AudioPath: audioPath})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "status 503") {
		t.Errorf("expected status in error, got %q", err.Error())
	}
}

func TestProvider_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	p, err := NewProvider(Config{BaseURL: server.URL, Token: "hf_test"})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if !p.IsAvailable(context.Background()) {
		t.Error("expected provider to be available")
	}
}

func TestFactory(t *testing.T) {
	factory := Factory()
	p, err := factory(map[string]any{
		"base_url": "http://pyannote:9001",
		"token":    "hf_test",
	})
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}
	if p.Name() != ProviderName {
		t.Errorf("expected name %q, got %q", ProviderName, p.Name())
	}
}

func TestFactory_MissingToken(t *testing.T) {
	t.Setenv("HF_TOKEN", "")

	factory := Factory()
	if _, err := factory(map[string]any{"base_url": "http://pyannote:9001"}); err == nil {
		t.Fatal("expected factory to fail without token")
	}
}

func TestRegistryResolve(t *testing.T) {
	diarization.Register(ProviderName, Factory())

	p, err := diarization.Resolve(ProviderName, map[string]any{
		"base_url": "http://pyannote:9001",
		"token":    "hf_test",
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if p.Name() != ProviderName {
		t.Errorf("expected name %q, got %q", ProviderName, p.Name())
	}

	again, err := diarization.Resolve(ProviderName, nil)
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if again != p {
		t.Error("expected resolve to reuse the cached instance")
	}
}
