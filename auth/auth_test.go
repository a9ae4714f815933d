package auth

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

func newTestService(t *testing.T, cfg Config) *Service[*Claims] {
	t.Helper()
	if cfg.Secret == "" {
		cfg.Secret = "test-secret"
	}
	svc, err := NewTokenService(cfg)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	return svc
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{Secret: "s"}
	cfg.ApplyDefaults()

	if cfg.Method != HS256 {
		t.Errorf("Method = %q, want HS256", cfg.Method)
	}
	if cfg.TokenTTL != 15*time.Minute {
		t.Errorf("TokenTTL = %v, want 15m", cfg.TokenTTL)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Secret: "s", Method: HS256}, false},
		{"hs512", Config{Secret: "s", Method: HS512}, false},
		{"missing secret", Config{Method: HS256}, true},
		{"unsupported method", Config{Secret: "s", Method: "RS256"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateParseRoundTrip(t *testing.T) {
	svc := newTestService(t, Config{Issuer: "diascribe"})

	token, err := svc.Generate(&Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "ops"},
		Scope:            "transcripts:write",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("Generate() = %q, want three JWT segments", token)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.Subject != "ops" {
		t.Errorf("Subject = %q, want ops", claims.Subject)
	}
	if claims.Issuer != "diascribe" {
		t.Errorf("Issuer = %q, want default from config", claims.Issuer)
	}
	if !claims.HasScope("transcripts:write") {
		t.Error("HasScope(transcripts:write) = false, want true")
	}
	if claims.HasScope("admin") {
		t.Error("HasScope(admin) = true, want false")
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Error("ExpiresAt not set to a future time")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	svc := newTestService(t, Config{})

	token, err := svc.Generate(&Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := svc.Parse(token); err == nil {
		t.Error("Parse() error = nil, want expiry error")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuing := newTestService(t, Config{Secret: "issuing-secret"})
	verifying := newTestService(t, Config{Secret: "other-secret"})

	token, err := issuing.Generate(&Claims{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := verifying.Parse(token); err == nil {
		t.Error("Parse() error = nil, want signature error")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	issuing := newTestService(t, Config{Issuer: "someone-else"})
	verifying := newTestService(t, Config{Issuer: "diascribe"})

	token, err := issuing.Generate(&Claims{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := verifying.Parse(token); err == nil {
		t.Error("Parse() error = nil, want issuer error")
	}
}

func TestParseRejectsUnsignedToken(t *testing.T) {
	svc := newTestService(t, Config{})

	unsigned := gojwt.NewWithClaims(gojwt.SigningMethodNone, &Claims{})
	token, err := unsigned.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing with none: %v", err)
	}

	if _, err := svc.Parse(token); err == nil {
		t.Error("Parse() error = nil, want signing method error")
	}
}

func TestAsValidator(t *testing.T) {
	svc := newTestService(t, Config{})
	validator := svc.AsValidator()

	token, err := svc.Generate(&Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "ops"},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	got, err := validator.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	claims, ok := got.(*Claims)
	if !ok {
		t.Fatalf("ValidateToken() returned %T, want *Claims", got)
	}
	if claims.Subject != "ops" {
		t.Errorf("Subject = %q, want ops", claims.Subject)
	}

	if _, err := validator.ValidateToken("not-a-token"); err == nil {
		t.Error("ValidateToken(garbage) error = nil, want parse error")
	}
}

func TestGeneratePreservesExplicitExpiry(t *testing.T) {
	svc := newTestService(t, Config{})
	expires := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	token, err := svc.Generate(&Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(expires),
		},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !claims.ExpiresAt.Equal(expires) {
		t.Errorf("ExpiresAt = %v, want explicit %v", claims.ExpiresAt.Time, expires)
	}
}
