package transcript

import (
	"fmt"
	"strings"
)

// RenderMarkdown renders aligned words as speaker-grouped markdown blocks.
//
// Consecutive words of one speaker form a block. Each block opens with a
// header line
//
//	**{speaker}  {start}-{end}**  {first word}
//
// whose time range is the FIRST word's span; the range does not advance as
// words are appended, so it marks where the speaker took over rather than
// the block's full extent. Later words of the block are appended to the
// header line separated by single spaces, and a blank line separates
// blocks. Empty input renders as an empty string.
func RenderMarkdown(words []AlignedWord) string {
	var lines []string
	current := ""
	blockOpen := false

	for _, w := range words {
		if !blockOpen || w.Speaker != current {
			if blockOpen {
				lines = append(lines, "")
			}
			lines = append(lines, fmt.Sprintf("**%s  %s-%s**  %s",
				w.Speaker, FormatTimestamp(w.Start), FormatTimestamp(w.End), w.Word))
			current = w.Speaker
			blockOpen = true
			continue
		}
		lines[len(lines)-1] += " " + w.Word
	}

	return strings.Join(lines, "\n")
}
