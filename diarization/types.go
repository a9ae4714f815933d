package diarization

import "github.com/skillsenselab/diascribe/transcript"

// DiarizationRequest holds parameters for a diarization call.
type DiarizationRequest struct {
	// AudioPath is the path to the audio file to diarize.
	AudioPath string `json:"audio_path"`
	// NumSpeakers is the exact number of speakers (0 = auto-detect).
	NumSpeakers int `json:"num_speakers,omitempty"`
	// MinSpeakers is the minimum expected number of speakers.
	MinSpeakers int `json:"min_speakers,omitempty"`
	// MaxSpeakers is the maximum expected number of speakers.
	MaxSpeakers int `json:"max_speakers,omitempty"`
}

// DiarizationResponse holds the result of a diarization call.
type DiarizationResponse struct {
	// Turns contains speaker turns in the backend's iteration order.
	// The aligner's first-match tie-break depends on this order, so it
	// is preserved exactly as received.
	Turns []transcript.Turn `json:"turns"`
	// NumSpeakers is the number of speakers detected.
	NumSpeakers int `json:"num_speakers"`
}
