package watch

import (
	"strings"
	"time"

	apperrors "github.com/skillsenselab/diascribe/errors"
	"github.com/skillsenselab/diascribe/media"
)

const (
	// DefaultWorkers is the number of concurrent processing workers.
	DefaultWorkers = 2
	// DefaultDebounceDelay is how long a file must stay quiet after its
	// last write before it is queued.
	DefaultDebounceDelay = 2 * time.Second
	// queueCapacity bounds the number of recordings waiting for a worker.
	queueCapacity = 100
)

// DefaultExtensions lists the audio file extensions accepted when the
// config does not name any.
var DefaultExtensions = media.SupportedExtensions

// Config holds watch mode settings.
type Config struct {
	// Dir is the directory to watch for new recordings.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
	// Workers is the number of concurrent processing workers.
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty" mapstructure:"workers"`
	// Extensions lists accepted audio file extensions, with leading dot.
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty" mapstructure:"extensions"`
	// Language is forwarded to every queued job.
	Language string `json:"language,omitempty" yaml:"language,omitempty" mapstructure:"language"`
	// DebounceDelay is the quiet period before a changed file is queued.
	// Uploads arrive in bursts of writes; the delay keeps half-copied
	// files out of the queue.
	DebounceDelay time.Duration `json:"debounce_delay,omitempty" yaml:"debounce_delay,omitempty" mapstructure:"debounce_delay"`
}

// ApplyDefaults fills in zero values with defaults and normalizes
// extensions to lowercase with a leading dot.
func (c *Config) ApplyDefaults() {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.DebounceDelay <= 0 {
		c.DebounceDelay = DefaultDebounceDelay
	}
	if len(c.Extensions) == 0 {
		c.Extensions = append([]string(nil), DefaultExtensions...)
		return
	}
	for i, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return apperrors.Configuration("watch directory is required")
	}
	return nil
}
