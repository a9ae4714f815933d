package transcript

import "sort"

// NewDocument assembles the terminal success artifact from aligned words.
// Speakers are reported sorted for stable output across runs. Duration is
// the end time of the last aligned word; an empty transcript has duration
// 0 and renders as an empty string.
func NewDocument(audioFile string, words []AlignedWord) *Document {
	doc := &Document{
		Success:    true,
		AudioFile:  audioFile,
		TotalWords: len(words),
		Segments:   words,
		Speakers:   distinctSpeakers(words),
		Markdown:   RenderMarkdown(words),
	}
	if len(words) > 0 {
		doc.Duration = words[len(words)-1].End
	}
	return doc
}

// NewFailure builds the failure artifact for a processing error.
func NewFailure(audioFile string, err error) Failure {
	return Failure{
		Success:   false,
		Error:     err.Error(),
		AudioFile: audioFile,
	}
}

func distinctSpeakers(words []AlignedWord) []string {
	seen := make(map[string]struct{}, 4)
	speakers := make([]string, 0, 4)
	for _, w := range words {
		if _, ok := seen[w.Speaker]; ok {
			continue
		}
		seen[w.Speaker] = struct{}{}
		speakers = append(speakers, w.Speaker)
	}
	sort.Strings(speakers)
	return speakers
}
