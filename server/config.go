package server

import (
	"fmt"

	"github.com/skillsenselab/diascribe/auth"
	"github.com/skillsenselab/diascribe/server/middleware"
)

// Config holds HTTP server configuration.
type Config struct {
	Host         string                `yaml:"host" mapstructure:"host"`
	Port         int                   `yaml:"port" mapstructure:"port"`
	ReadTimeout  int                   `yaml:"read_timeout" mapstructure:"read_timeout"`   // seconds
	WriteTimeout int                   `yaml:"write_timeout" mapstructure:"write_timeout"` // seconds
	IdleTimeout  int                   `yaml:"idle_timeout" mapstructure:"idle_timeout"`   // seconds
	MaxBodySize  string                `yaml:"max_body_size" mapstructure:"max_body_size"` // e.g. "100MB"
	RateLimit    int                   `yaml:"rate_limit" mapstructure:"rate_limit"`       // requests/minute per client, 0 = unlimited
	CORS         middleware.CORSConfig `yaml:"cors" mapstructure:"cors"`
	Auth         AuthConfig            `yaml:"auth" mapstructure:"auth"`
	Enabled      bool                  `yaml:"enabled" mapstructure:"enabled"`
}

// AuthConfig enables bearer token authentication for API routes. System
// endpoints (/health, /info, /metrics, /version, probes) stay open.
type AuthConfig struct {
	Enabled     bool `yaml:"enabled" mapstructure:"enabled"`
	auth.Config `yaml:",inline" mapstructure:",squash"`
}

// ApplyDefaults sets sensible default values for unset fields. Uploads
// carry whole recordings, so the body limit defaults well above typical
// API payloads.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 300
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 300
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "500MB"
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	}
	if c.Auth.Enabled {
		c.Auth.Config.ApplyDefaults()
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535 (got: %d)", c.Port)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must be non-negative (got: %d)", c.ReadTimeout)
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("server.write_timeout must be non-negative (got: %d)", c.WriteTimeout)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("server.idle_timeout must be non-negative (got: %d)", c.IdleTimeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must be non-negative (got: %d)", c.RateLimit)
	}
	if c.Auth.Enabled {
		if err := c.Auth.Config.Validate(); err != nil {
			return fmt.Errorf("server.auth: %w", err)
		}
	}
	return nil
}
