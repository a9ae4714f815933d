package transcript

// Align assigns each word the speaker active at the word's temporal
// midpoint. It returns one AlignedWord per input word, in input order.
//
// Turns are scanned in the order given and the first turn whose interval
// covers the midpoint (boundaries included) wins. The first-match rule is
// the contract for overlapping turns: alignment is deterministic given a
// fixed turn order, and callers must not reorder turns between runs if they
// expect reproducible output. Words covered by no turn are attributed to
// UnknownSpeaker.
//
// The scan is O(len(words) * len(turns)). Both inputs are bounded by audio
// length at normal speech rates, so no interval index is kept.
func Align(words []Word, turns []Turn) []AlignedWord {
	aligned := make([]AlignedWord, 0, len(words))
	for _, w := range words {
		aligned = append(aligned, AlignedWord{
			Start:      w.Start,
			End:        w.End,
			Word:       w.Text,
			Speaker:    speakerAt(w.Midpoint(), turns),
			Confidence: w.Confidence,
		})
	}
	return aligned
}

// speakerAt returns the speaker of the first turn covering the instant,
// or UnknownSpeaker when none does.
func speakerAt(instant float64, turns []Turn) string {
	for _, t := range turns {
		if t.Covers(instant) {
			return t.Speaker
		}
	}
	return UnknownSpeaker
}
