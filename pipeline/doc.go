// Package pipeline orchestrates the per-file transcription flow: word
// recognition, speaker diarization, midpoint alignment, and optional
// artifact persistence.
//
// Each recording is processed independently. The word and turn sources run
// strictly one after the other, and alignment only starts once both have
// returned complete results. A failed step aborts the file with a typed
// error; callers decide whether that becomes a failure artifact
// (FailureFor) or a hard stop.
//
//	p, err := pipeline.New(pipeline.Config{Language: "sv"}, whisper, pyannote)
//	if err != nil {
//		return err
//	}
//	doc, err := p.Process(ctx, pipeline.Job{AudioPath: "meeting.wav"})
//	if err != nil {
//		failure := pipeline.FailureFor("meeting.wav", err)
//		// render or persist the failure artifact
//	}
package pipeline
