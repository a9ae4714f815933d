package transcription

import "github.com/skillsenselab/diascribe/transcript"

// TranscriptionRequest holds parameters for a transcription call.
type TranscriptionRequest struct {
	// AudioPath is the path to the audio file to transcribe.
	AudioPath string `json:"audio_path"`
	// Model is the transcription model to use.
	Model string `json:"model,omitempty"`
	// Language is the expected language of the audio (e.g. "sv").
	Language string `json:"language,omitempty"`
	// WordTimestamps requests per-word timings. The aligner needs them,
	// so callers building pipeline requests always set this.
	WordTimestamps bool `json:"word_timestamps,omitempty"`
	// VADFilter selects the voice activity detection filter (e.g. "silero").
	VADFilter string `json:"vad_filter,omitempty"`
	// DetectDisfluencies marks hesitations and filler words in the output.
	DetectDisfluencies bool `json:"detect_disfluencies,omitempty"`
	// NumThreads caps CPU threads used by the backend (0 = backend default).
	NumThreads int `json:"num_threads,omitempty"`
}

// TranscriptionResponse holds the result of a transcription call.
type TranscriptionResponse struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Segments contains time-aligned transcript segments in audio order.
	Segments []Segment `json:"segments,omitempty"`
	// Duration is the audio duration in seconds.
	Duration float64 `json:"duration,omitempty"`
	// Language is the detected or specified language.
	Language string `json:"language,omitempty"`
}

// Segment represents a time-aligned portion of a transcript.
type Segment struct {
	// ID is the segment's position in the transcript.
	ID int `json:"id"`
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
	// Text is the transcribed text for this segment.
	Text string `json:"text"`
	// Words holds the segment's word-level records in spoken order.
	Words []transcript.Word `json:"words,omitempty"`
}

// Words flattens all segment words into a single sequence, preserving
// segment order and word order within each segment.
func (r *TranscriptionResponse) Words() []transcript.Word {
	total := 0
	for _, seg := range r.Segments {
		total += len(seg.Words)
	}
	words := make([]transcript.Word, 0, total)
	for _, seg := range r.Segments {
		words = append(words, seg.Words...)
	}
	return words
}
