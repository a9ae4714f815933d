package config

import (
	"time"

	"github.com/skillsenselab/diascribe/diarization/pyannote"
	"github.com/skillsenselab/diascribe/observability"
	"github.com/skillsenselab/diascribe/pipeline"
	"github.com/skillsenselab/diascribe/server"
	"github.com/skillsenselab/diascribe/storage"
	"github.com/skillsenselab/diascribe/transcription/whisper"
	"github.com/skillsenselab/diascribe/watch"
)

// ServiceName is the name used for config file resolution, environment
// variable prefixes, and telemetry attribution.
const ServiceName = "diascribe"

// AppConfig is the full application configuration covering every
// subcommand. Sections that a command does not use are simply ignored.
type AppConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Transcription whisper.Config      `yaml:"transcription" mapstructure:"transcription"`
	Diarization   pyannote.Config     `yaml:"diarization" mapstructure:"diarization"`
	Pipeline      pipeline.Config     `yaml:"pipeline" mapstructure:"pipeline"`
	Storage       storage.Config      `yaml:"storage" mapstructure:"storage"`
	Watch         watch.Config        `yaml:"watch" mapstructure:"watch"`
	Server        server.Config       `yaml:"server" mapstructure:"server"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// ObservabilityConfig controls OpenTelemetry tracing and metrics export.
// Telemetry stays off unless an OTLP endpoint is configured.
type ObservabilityConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint        string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure        bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate      float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	MetricsInterval time.Duration `yaml:"metrics_interval" mapstructure:"metrics_interval"`
}

// Active reports whether telemetry export should be initialized.
func (o *ObservabilityConfig) Active() bool {
	return o.Enabled && o.Endpoint != ""
}

// TracerConfig builds the tracer configuration for the given service
// identity.
func (o *ObservabilityConfig) TracerConfig(svc *ServiceConfig) observability.TracerConfig {
	tc := observability.DefaultTracerConfig(svc.Name)
	tc.ServiceVersion = svc.Version
	tc.Environment = svc.Environment
	tc.Endpoint = o.Endpoint
	tc.Insecure = o.Insecure
	if o.SampleRate > 0 {
		tc.SampleRate = o.SampleRate
	}
	return tc
}

// MeterConfig builds the meter configuration for the given service
// identity.
func (o *ObservabilityConfig) MeterConfig(svc *ServiceConfig) observability.MeterConfig {
	mc := observability.DefaultMeterConfig(svc.Name)
	mc.ServiceVersion = svc.Version
	mc.Environment = svc.Environment
	mc.Endpoint = o.Endpoint
	mc.Insecure = o.Insecure
	if o.MetricsInterval > 0 {
		mc.Interval = o.MetricsInterval
	}
	return mc
}

// ApplyDefaults fills in zero-valued fields across all sections. Provider
// sections are left alone because their constructors apply defaults
// themselves.
func (c *AppConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Watch.ApplyDefaults()
	c.Server.ApplyDefaults()
}

// Validate checks all sections that are unconditionally in use. Watch
// settings are validated by the watch command itself because the watch
// directory is only required there.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return nil
}

// LoadApp loads the application configuration from config files,
// environment files, and environment variables, then applies defaults
// and validates the result.
func LoadApp(opts ...LoaderOption) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := LoadConfig(ServiceName, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
