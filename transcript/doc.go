// Package transcript implements the core alignment and rendering of a
// speaker-attributed transcript.
//
// Two independently produced time series over the same recording come in:
// word-level transcription output (ordered words with start/end times) and
// speaker diarization output (speaker turns with start/end times). Align
// assigns every word the speaker active at its temporal midpoint, scanning
// turns in their given order and taking the first covering turn; a word no
// turn covers is attributed to UnknownSpeaker. RenderMarkdown groups the
// aligned words into per-speaker blocks, and NewDocument assembles the
// serializable result.
//
// The package is pure: no I/O, no logging, no external calls. Inputs are
// treated as immutable; every stage returns fresh values.
//
// # Usage
//
//	aligned := transcript.Align(words, turns)
//	doc := transcript.NewDocument("meeting.wav", aligned)
//	fmt.Println(doc.Markdown)
package transcript
