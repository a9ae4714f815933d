package util

import "testing"

func TestParseSize(t *testing.T) {
	tests := []struct {
		input string
		def   int64
		want  int64
	}{
		{"10MB", 0, 10 * 1024 * 1024},
		{"512KB", 0, 512 * 1024},
		{"2GB", 0, 2 * 1024 * 1024 * 1024},
		{"1024", 0, 1024},
		{" 5mb ", 0, 5 * 1024 * 1024},
		{"", 99, 99},
		{"not-a-size", 42, 42},
	}
	for _, tt := range tests {
		if got := ParseSize(tt.input, tt.def); got != tt.want {
			t.Errorf("ParseSize(%q, %d) = %d, want %d", tt.input, tt.def, got, tt.want)
		}
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		input   string
		visible int
		want    string
	}{
		{"hf_abcdefgh", 3, "hf_***"},
		{"xy", 4, "***"},
		{"", 2, "***"},
	}
	for _, tt := range tests {
		if got := MaskSecret(tt.input, tt.visible); got != tt.want {
			t.Errorf("MaskSecret(%q, %d) = %q, want %q", tt.input, tt.visible, got, tt.want)
		}
	}
}
