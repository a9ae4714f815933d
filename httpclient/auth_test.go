package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestRequest(t *testing.T) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "http://example.com/v1", nil)
	return req
}

func TestAuthConfig_Apply_Bearer(t *testing.T) {
	req := newTestRequest(t)
	if err := BearerAuth("hf_token").apply(req); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer hf_token" {
		t.Errorf("expected bearer header, got %q", got)
	}
}

func TestAuthConfig_Apply_Bearer_EmptyToken(t *testing.T) {
	req := newTestRequest(t)
	if err := BearerAuth("").apply(req); err == nil {
		t.Fatal("expected an error for empty token")
	}
}

func TestAuthConfig_Apply_Basic(t *testing.T) {
	req := newTestRequest(t)
	if err := BasicAuth("user", "pass").apply(req); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	user, pass, ok := req.BasicAuth()
	if !ok || user != "user" || pass != "pass" {
		t.Errorf("basic auth not applied: %v %v %v", user, pass, ok)
	}
}

func TestAuthConfig_Apply_APIKeyHeader(t *testing.T) {
	req := newTestRequest(t)
	if err := APIKeyAuthHeader("X-Api-Key", "secret").apply(req); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if got := req.Header.Get("X-Api-Key"); got != "secret" {
		t.Errorf("expected key in header, got %q", got)
	}
}

func TestAuthConfig_Apply_APIKeyQuery(t *testing.T) {
	req := newTestRequest(t)
	if err := APIKeyAuthQuery("api_key", "secret").apply(req); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if got := req.URL.Query().Get("api_key"); got != "secret" {
		t.Errorf("expected key in query, got %q", got)
	}
}

func TestAuthConfig_Apply_Custom(t *testing.T) {
	req := newTestRequest(t)
	auth := CustomAuth(func(r *http.Request) error {
		r.Header.Set("X-Signature", "signed")
		return nil
	})
	if err := auth.apply(req); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if got := req.Header.Get("X-Signature"); got != "signed" {
		t.Errorf("expected custom header, got %q", got)
	}
}

func TestAuthConfig_Apply_None(t *testing.T) {
	req := newTestRequest(t)
	auth := &AuthConfig{Type: AuthNone}
	if err := auth.apply(req); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if got := req.Header.Get("Authorization"); got != "" {
		t.Errorf("expected no auth header, got %q", got)
	}
}
