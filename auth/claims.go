package auth

import (
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims are the bearer token claims accepted by the HTTP API.
type Claims struct {
	gojwt.RegisteredClaims

	// Scope is a space-separated list of granted scopes.
	Scope string `json:"scope,omitempty"`
}

// SetDefaults fills in standard time and identity claims before signing.
// Explicitly set values are preserved.
func (c *Claims) SetDefaults(now time.Time, ttl time.Duration, issuer, audience string) {
	if c.IssuedAt == nil {
		c.IssuedAt = gojwt.NewNumericDate(now)
	}
	if c.ExpiresAt == nil {
		c.ExpiresAt = gojwt.NewNumericDate(now.Add(ttl))
	}
	if c.Issuer == "" {
		c.Issuer = issuer
	}
	if len(c.Audience) == 0 && audience != "" {
		c.Audience = gojwt.ClaimStrings{audience}
	}
}

// HasScope reports whether the token grants the given scope.
func (c *Claims) HasScope(scope string) bool {
	for _, s := range strings.Fields(c.Scope) {
		if s == scope {
			return true
		}
	}
	return false
}
