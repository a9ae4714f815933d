package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/skillsenselab/diascribe/auth"
	"github.com/skillsenselab/diascribe/component"
	"github.com/skillsenselab/diascribe/logger"
	"github.com/skillsenselab/diascribe/server/middleware"
)

func newTestServer(t *testing.T, mutate func(*Config)) *Server {
	t.Helper()
	cfg := Config{Host: "127.0.0.1", Port: 0}
	cfg.ApplyDefaults()
	if mutate != nil {
		mutate(&cfg)
	}
	return New(cfg, logger.NewDefault("server-test"))
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.ReadTimeout != 300 {
		t.Errorf("ReadTimeout = %d, want 300", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout != 300 {
		t.Errorf("WriteTimeout = %d, want 300", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout != 60 {
		t.Errorf("IdleTimeout = %d, want 60", cfg.IdleTimeout)
	}
	if cfg.MaxBodySize != "500MB" {
		t.Errorf("MaxBodySize = %q, want 500MB", cfg.MaxBodySize)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("CORS.AllowedOrigins = %v, want [*]", cfg.CORS.AllowedOrigins)
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		t.Error("CORS.AllowedMethods should have defaults")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: nil,
		},
		{
			name:    "negative port",
			mutate:  func(c *Config) { c.Port = -1 },
			wantErr: "server.port",
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "negative read timeout",
			mutate:  func(c *Config) { c.ReadTimeout = -5 },
			wantErr: "server.read_timeout",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.RateLimit = -1 },
			wantErr: "server.rate_limit",
		},
		{
			name:    "auth enabled without secret",
			mutate:  func(c *Config) { c.Auth.Enabled = true },
			wantErr: "server.auth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{}
			cfg.ApplyDefaults()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSetupRegistersSystemEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)
	if err := srv.Setup("diascribe", nil); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	for _, path := range systemPathList() {
		rr := httptest.NewRecorder()
		srv.GinEngine().ServeHTTP(rr, httptest.NewRequest("GET", path, http.NoBody))
		if rr.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rr.Code)
		}
	}
}

func TestHealthAggregation(t *testing.T) {
	tests := []struct {
		name       string
		components []component.Health
		wantCode   int
		wantStatus string
	}{
		{
			name:       "all healthy",
			components: []component.Health{{Name: "watcher", Status: component.StatusHealthy}},
			wantCode:   http.StatusOK,
			wantStatus: "healthy",
		},
		{
			name: "degraded component",
			components: []component.Health{
				{Name: "http-server", Status: component.StatusHealthy},
				{Name: "watcher", Status: component.StatusDegraded, Message: "queue full"},
			},
			wantCode:   http.StatusOK,
			wantStatus: "degraded",
		},
		{
			name: "unhealthy component",
			components: []component.Health{
				{Name: "watcher", Status: component.StatusUnhealthy, Message: "stopped"},
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, nil)
			checker := func(context.Context) []component.Health { return tt.components }
			if err := srv.Setup("diascribe", checker); err != nil {
				t.Fatalf("Setup() error = %v", err)
			}

			rr := httptest.NewRecorder()
			srv.GinEngine().ServeHTTP(rr, httptest.NewRequest("GET", "/health", http.NoBody))

			if rr.Code != tt.wantCode {
				t.Fatalf("GET /health = %d, want %d", rr.Code, tt.wantCode)
			}

			var body struct {
				Status     string             `json:"status"`
				Service    string             `json:"service"`
				Components []component.Health `json:"components"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", body.Status, tt.wantStatus)
			}
			if body.Service != "diascribe" {
				t.Errorf("service = %q, want diascribe", body.Service)
			}
			if len(body.Components) != len(tt.components) {
				t.Errorf("components = %d, want %d", len(body.Components), len(tt.components))
			}
		})
	}
}

func TestReadinessNotReady(t *testing.T) {
	srv := newTestServer(t, nil)
	checker := func(context.Context) []component.Health {
		return []component.Health{{Name: "watcher", Status: component.StatusUnhealthy}}
	}
	if err := srv.Setup("diascribe", checker); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	rr := httptest.NewRecorder()
	srv.GinEngine().ServeHTTP(rr, httptest.NewRequest("GET", "/ready", http.NoBody))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("GET /ready = %d, want 503", rr.Code)
	}
}

func TestAuthProtectsAPIRoutes(t *testing.T) {
	srv := newTestServer(t, func(c *Config) {
		c.Auth.Enabled = true
		c.Auth.Secret = "test-secret"
	})
	if err := srv.Setup("diascribe", nil); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	// API routes registered after Setup pass through the auth middleware.
	srv.GinEngine().GET("/v1/whoami", func(c *gin.Context) {
		claims, ok := middleware.ClaimsFromContext(c).(*auth.Claims)
		if !ok {
			c.String(http.StatusInternalServerError, "no claims")
			return
		}
		c.String(http.StatusOK, claims.Subject)
	})

	t.Run("api route requires token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		srv.GinEngine().ServeHTTP(rr, httptest.NewRequest("GET", "/v1/whoami", http.NoBody))
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("GET /v1/whoami = %d, want 401", rr.Code)
		}
	})

	t.Run("system endpoints stay open", func(t *testing.T) {
		rr := httptest.NewRecorder()
		srv.GinEngine().ServeHTTP(rr, httptest.NewRequest("GET", "/health", http.NoBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET /health = %d, want 200", rr.Code)
		}
	})

	t.Run("valid token passes", func(t *testing.T) {
		svc, err := auth.NewTokenService(auth.Config{Secret: "test-secret"})
		if err != nil {
			t.Fatalf("NewTokenService() error = %v", err)
		}
		token, err := svc.Generate(&auth.Claims{
			RegisteredClaims: gojwt.RegisteredClaims{Subject: "ops"},
		})
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/v1/whoami", http.NoBody)
		req.Header.Set("Authorization", "Bearer "+token)
		srv.GinEngine().ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("GET /v1/whoami = %d, want 200: %s", rr.Code, rr.Body.String())
		}
		if rr.Body.String() != "ops" {
			t.Errorf("subject = %q, want ops", rr.Body.String())
		}
	})
}

func TestRoutesOrdering(t *testing.T) {
	srv := newTestServer(t, nil)
	if err := srv.Setup("diascribe", nil); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	srv.GinEngine().POST("/v1/transcripts", func(c *gin.Context) { c.Status(http.StatusOK) })

	routes := srv.Routes()
	if len(routes) != 7 {
		t.Fatalf("len(Routes()) = %d, want 7", len(routes))
	}

	// API routes sort before system routes.
	first := routes[0]
	if first.Path != "/v1/transcripts" || first.Method != "POST" {
		t.Errorf("first route = %s %s, want POST /v1/transcripts", first.Method, first.Path)
	}
	if first.System {
		t.Error("API route should not be flagged as system")
	}

	for _, r := range routes[1:] {
		if !r.System {
			t.Errorf("route %s should be flagged as system", r.Path)
		}
	}
}

func TestFormatHandlerName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{
			in:   "github.com/skillsenselab/diascribe/api.(*Handler).Create-fm",
			want: "Handler.Create",
		},
		{
			in:   "github.com/skillsenselab/diascribe/server/endpoint.Health.func1",
			want: "health",
		},
		{
			in:   "main.main.func1",
			want: "main",
		},
	}

	for _, tt := range tests {
		if got := formatHandlerName(tt.in); got != tt.want {
			t.Errorf("formatHandlerName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSystemPathList(t *testing.T) {
	paths := systemPathList()
	if len(paths) != len(systemPaths) {
		t.Fatalf("len = %d, want %d", len(paths), len(systemPaths))
	}
	for i := 1; i < len(paths); i++ {
		if paths[i-1] >= paths[i] {
			t.Fatalf("paths not sorted: %v", paths)
		}
	}
	for _, want := range []string{"/health", "/alive", "/ready"} {
		if !systemPaths[want] {
			t.Errorf("systemPaths missing %s", want)
		}
	}
}

func TestStartStop(t *testing.T) {
	srv := newTestServer(t, nil)
	ctx := context.Background()

	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := srv.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestHandleMountsHandler(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.Handle("/rpc/", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("rpc-ok"))
	}))

	// Serve through the full handler chain, including logging and
	// tracing at the mux level.
	rr := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/rpc/echo", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("GET /rpc/echo = %d, want 200", rr.Code)
	}
	if rr.Body.String() != "rpc-ok" {
		t.Errorf("body = %q, want rpc-ok", rr.Body.String())
	}
}

func TestServerComponent(t *testing.T) {
	srv := newTestServer(t, nil)
	comp := NewComponent(srv)

	if comp.Name() != "http-server" {
		t.Errorf("Name() = %q, want http-server", comp.Name())
	}
	health := comp.Health(context.Background())
	if health.Status != component.StatusHealthy {
		t.Errorf("Health().Status = %q, want healthy", health.Status)
	}
}
