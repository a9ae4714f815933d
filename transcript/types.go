package transcript

// UnknownSpeaker is assigned to words whose midpoint no diarization turn
// covers.
const UnknownSpeaker = "Unknown"

// Word is one transcribed word with its acoustic span.
type Word struct {
	// Start is the word start time in seconds.
	Start float64 `json:"start"`
	// End is the word end time in seconds. Start <= End.
	End float64 `json:"end"`
	// Text is the surface form of the word.
	Text string `json:"text"`
	// Confidence is the recognizer confidence in [0,1]. Sources that do
	// not report confidence fill in 1.0.
	Confidence float64 `json:"confidence"`
}

// Midpoint returns the temporal midpoint of the word span. A zero-duration
// word has a well-defined midpoint equal to its start.
func (w Word) Midpoint() float64 {
	return (w.Start + w.End) / 2
}

// Turn is one contiguous interval during which a single speaker is active.
// Turns of different speakers may overlap, and one speaker may own several
// disjoint turns.
type Turn struct {
	// Start is the turn start time in seconds.
	Start float64 `json:"start"`
	// End is the turn end time in seconds. Start <= End.
	End float64 `json:"end"`
	// Speaker is the diarization speaker label (e.g. "SPEAKER_00").
	Speaker string `json:"speaker"`
}

// Covers reports whether t covers the given instant, boundaries included.
func (t Turn) Covers(instant float64) bool {
	return t.Start <= instant && instant <= t.End
}

// AlignedWord is one word with its assigned speaker.
type AlignedWord struct {
	// Start is the word start time in seconds.
	Start float64 `json:"start"`
	// End is the word end time in seconds.
	End float64 `json:"end"`
	// Word is the surface form of the word.
	Word string `json:"word"`
	// Speaker is the assigned speaker label, or UnknownSpeaker.
	Speaker string `json:"speaker"`
	// Confidence is the recognizer confidence carried over from the word.
	Confidence float64 `json:"confidence"`
}

// Document is the success-shaped terminal artifact of a pipeline run.
type Document struct {
	// Success is always true for a Document; failures are represented by
	// Failure instead.
	Success bool `json:"success"`
	// AudioFile is the path of the processed recording.
	AudioFile string `json:"audio_file"`
	// TotalWords is the number of aligned words.
	TotalWords int `json:"total_words"`
	// Segments holds the aligned words in input order.
	Segments []AlignedWord `json:"segments"`
	// Speakers lists the distinct speaker labels observed, sorted.
	Speakers []string `json:"speakers"`
	// Duration is the end time of the last aligned word, 0 when empty.
	Duration float64 `json:"duration"`
	// Markdown is the grouped human-readable rendering.
	Markdown string `json:"markdown"`
}

// Failure is the failure-shaped terminal artifact. Its JSON form carries
// exactly the success flag, the error message, and the audio path.
type Failure struct {
	// Success is always false for a Failure.
	Success bool `json:"success"`
	// Error is the human-readable failure message.
	Error string `json:"error"`
	// AudioFile is the path of the recording whose processing failed.
	AudioFile string `json:"audio_file"`
}
