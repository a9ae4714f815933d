package auth

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod defines supported JWT signing algorithms.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// Config configures the JWT token service. API tokens are signed with a
// shared HMAC secret; issuing happens out of band.
type Config struct {
	// Secret is the HMAC signing key.
	Secret string `yaml:"secret" mapstructure:"secret" json:"-"`

	// Method is the signing algorithm (default: HS256).
	Method SigningMethod `yaml:"method" mapstructure:"method" json:"method"`

	// Issuer is the expected "iss" claim. Empty disables the check.
	Issuer string `yaml:"issuer" mapstructure:"issuer" json:"issuer"`

	// Audience is the expected "aud" claim. Empty disables the check.
	Audience string `yaml:"audience" mapstructure:"audience" json:"audience"`

	// TokenTTL is the lifetime applied to generated tokens (default: 15m).
	TokenTTL time.Duration `yaml:"token_ttl" mapstructure:"token_ttl" json:"token_ttl"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = 15 * time.Minute
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	switch c.Method {
	case HS256, HS384, HS512:
	default:
		return errors.New("auth: unsupported signing method: " + string(c.Method))
	}
	if c.Secret == "" {
		return errors.New("auth: secret is required")
	}
	return nil
}

// signingMethod returns the golang-jwt SigningMethod instance.
func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}
