package superblank

import (
	"strconv"
	"strings"

	"apertiumsrt/internal/stanza"
)

const (
	// OpenMarker starts a protected region.
	OpenMarker = "["
	// CloseMarker ends a protected region.
	CloseMarker = "]"
)

var (
	_ stanza.Formatter = Format

	markerStripper = strings.NewReplacer("\n"+OpenMarker, "", "\n"+CloseMarker, "")
)

// Format renders stanzas with their counter and time range inside a protected
// region, followed by the free text and a blank separator line.
func Format(stanzas []stanza.Stanza) string {
	var b strings.Builder
	for _, s := range stanzas {
		b.WriteString(OpenMarker)
		b.WriteByte('\n')
		b.WriteString(strconv.Itoa(s.Index))
		b.WriteByte('\n')
		b.WriteString(s.Time.String())
		b.WriteByte('\n')
		b.WriteString(CloseMarker)
		b.WriteByte('\n')
		b.WriteString(s.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Deblank strips protected-region markers: every newline directly followed
// by a marker character loses both, and an opening marker at the very start
// of the text is dropped together with its line ending. The pass repeats
// until nothing changes, so Deblank(Deblank(x)) == Deblank(x).
//
// Repeating costs caption text that itself starts a line with a bracket
// right after a marker: "\n[[music]" becomes "music]", where one pass would
// leave "[music]".
func Deblank(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for {
		next := deblankOnce(text)
		if next == text {
			return next
		}
		text = next
	}
}

func deblankOnce(text string) string {
	if strings.HasPrefix(text, OpenMarker) {
		text = strings.TrimPrefix(text[len(OpenMarker):], "\n")
	}
	return markerStripper.Replace(text)
}
