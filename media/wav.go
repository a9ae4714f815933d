package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	wav "github.com/youpy/go-wav"
)

// Info describes a probed WAV file.
type Info struct {
	// SampleRate is the sample rate in Hz.
	SampleRate uint32 `json:"sample_rate"`
	// Channels is the channel count.
	Channels uint16 `json:"channels"`
	// BitsPerSample is the sample width in bits.
	BitsPerSample uint16 `json:"bits_per_sample"`
	// Duration is the audio duration in seconds.
	Duration float64 `json:"duration"`
}

// IsWAV reports whether the path has a .wav extension.
func IsWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}

// ProbeWAV reads the RIFF header of a WAV file and returns its format
// and duration. Probing is advisory; the sidecars decode audio
// themselves, so callers treat probe errors as non-fatal.
func ProbeWAV(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("media: open %s: %w", path, err)
	}
	defer f.Close()

	reader := wav.NewReader(f)
	format, err := reader.Format()
	if err != nil {
		return nil, fmt.Errorf("media: read wav format: %w", err)
	}
	duration, err := reader.Duration()
	if err != nil {
		return nil, fmt.Errorf("media: read wav duration: %w", err)
	}

	return &Info{
		SampleRate:    format.SampleRate,
		Channels:      format.NumChannels,
		BitsPerSample: format.BitsPerSample,
		Duration:      duration.Seconds(),
	}, nil
}
