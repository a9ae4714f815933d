package validation

import "strconv"

// SpeakerLimit is the largest accepted value for any speaker-count hint.
// The diarization sidecar degrades badly past this, so both the API and
// the CLI reject higher values up front.
const SpeakerLimit = 32

// SpeakerBounds validates the speaker-count hints passed to diarization.
// Zero means unset and is always accepted. The hints must be positive,
// at most SpeakerLimit, and min_speakers must not exceed max_speakers
// when both are set.
func SpeakerBounds(num, min, max int) error {
	var fields []FieldError
	bound := func(field string, v int) {
		switch {
		case v < 0:
			fields = append(fields, FieldError{Field: field, Message: "must not be negative"})
		case v > SpeakerLimit:
			fields = append(fields, FieldError{Field: field, Message: "must be at most " + strconv.Itoa(SpeakerLimit)})
		}
	}
	bound("num_speakers", num)
	bound("min_speakers", min)
	bound("max_speakers", max)

	if min > 0 && max > 0 && min > max {
		fields = append(fields, FieldError{Field: "min_speakers", Message: "must not exceed max_speakers"})
	}

	if len(fields) == 0 {
		return nil
	}
	return invalidFields(fields)
}
