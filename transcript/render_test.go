package transcript

import (
	"strings"
	"testing"
)

func TestRenderMarkdown_SingleSpeakerSingleBlock(t *testing.T) {
	words := []AlignedWord{
		{Start: 0.0, End: 0.5, Word: "Hej", Speaker: "SPEAKER_00", Confidence: 1.0},
		{Start: 0.6, End: 1.0, Word: "där", Speaker: "SPEAKER_00", Confidence: 1.0},
		{Start: 1.1, End: 1.4, Word: "borta", Speaker: "SPEAKER_00", Confidence: 1.0},
	}

	got := RenderMarkdown(words)
	want := "**SPEAKER_00  00:00:00.000-00:00:00.500**  Hej där borta"
	if got != want {
		t.Errorf("RenderMarkdown() = %q, want %q", got, want)
	}
	if strings.Contains(got, "\n") {
		t.Error("single-speaker input must produce exactly one line")
	}
}

func TestRenderMarkdown_SpeakerChangeOpensBlock(t *testing.T) {
	words := []AlignedWord{
		{Start: 0.0, End: 0.5, Word: "Hej", Speaker: "SPEAKER_00", Confidence: 1.0},
		{Start: 1.0, End: 1.5, Word: "Hejsan", Speaker: "SPEAKER_01", Confidence: 1.0},
		{Start: 2.0, End: 2.5, Word: "själv", Speaker: "SPEAKER_01", Confidence: 1.0},
	}

	got := RenderMarkdown(words)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header, separator, header = 3 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "**SPEAKER_00  00:00:00.000-00:00:00.500**  Hej" {
		t.Errorf("unexpected first block: %q", lines[0])
	}
	if lines[1] != "" {
		t.Errorf("expected blank separator line, got %q", lines[1])
	}
	if lines[2] != "**SPEAKER_01  00:00:01.000-00:00:01.500**  Hejsan själv" {
		t.Errorf("unexpected second block: %q", lines[2])
	}
}

func TestRenderMarkdown_HeaderKeepsFirstWordRange(t *testing.T) {
	// The block header's time range marks the first word only; it does not
	// advance as words are appended.
	words := []AlignedWord{
		{Start: 0.0, End: 0.5, Word: "en", Speaker: "SPEAKER_00", Confidence: 1.0},
		{Start: 10.0, End: 12.0, Word: "lång", Speaker: "SPEAKER_00", Confidence: 1.0},
		{Start: 20.0, End: 25.0, Word: "paus", Speaker: "SPEAKER_00", Confidence: 1.0},
	}

	got := RenderMarkdown(words)
	if !strings.HasPrefix(got, "**SPEAKER_00  00:00:00.000-00:00:00.500**") {
		t.Errorf("header range should reflect the first word only, got %q", got)
	}
	if strings.Contains(got, "00:00:25") {
		t.Errorf("header must not pick up later word end times, got %q", got)
	}
}

func TestRenderMarkdown_SpeakerReturnsOpensNewBlock(t *testing.T) {
	words := []AlignedWord{
		{Start: 0.0, End: 0.5, Word: "fråga", Speaker: "SPEAKER_00", Confidence: 1.0},
		{Start: 1.0, End: 1.5, Word: "svar", Speaker: "SPEAKER_01", Confidence: 1.0},
		{Start: 2.0, End: 2.5, Word: "tack", Speaker: "SPEAKER_00", Confidence: 1.0},
	}

	got := RenderMarkdown(words)
	if count := strings.Count(got, "**SPEAKER_00"); count != 2 {
		t.Errorf("expected SPEAKER_00 to open two blocks, got %d in %q", count, got)
	}
	if count := strings.Count(got, "\n\n"); count != 2 {
		t.Errorf("expected two block separators, got %d in %q", count, got)
	}
}

func TestRenderMarkdown_UnknownSpeakerBlock(t *testing.T) {
	words := []AlignedWord{
		{Start: 5.0, End: 5.2, Word: "test", Speaker: UnknownSpeaker, Confidence: 1.0},
	}

	got := RenderMarkdown(words)
	want := "**Unknown  00:00:05.000-00:00:05.200**  test"
	if got != want {
		t.Errorf("RenderMarkdown() = %q, want %q", got, want)
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	if got := RenderMarkdown(nil); got != "" {
		t.Errorf("expected empty string for empty input, got %q", got)
	}
	if got := RenderMarkdown([]AlignedWord{}); got != "" {
		t.Errorf("expected empty string for empty slice, got %q", got)
	}
}
