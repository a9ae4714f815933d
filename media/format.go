package media

import (
	"path/filepath"
	"strings"
)

// SupportedExtensions lists the audio container formats accepted for
// processing, lowercase with a leading dot.
var SupportedExtensions = []string{".wav", ".mp3", ".m4a", ".flac", ".ogg"}

// IsSupported reports whether the path has a supported audio extension.
// Matching is case-insensitive.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}
