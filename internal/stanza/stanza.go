package stanza

import (
	"strconv"
	"strings"
)

// RangeSeparator separates the start and end time codes of a canonical time-range line.
const RangeSeparator = "-->"

// TimeRange holds a stanza's start and end time codes in HH:MM:SS,mmm form.
type TimeRange struct {
	Start string
	End   string
}

// String renders the range as a canonical time-range line without a line ending.
func (r TimeRange) String() string {
	return r.Start + " " + RangeSeparator + " " + r.End
}

// Stanza is one subtitle entry. Index is assigned by the parser and always
// runs 1..N regardless of the counters found in the source.
type Stanza struct {
	Index int
	Time  TimeRange
	Text  string
}

// Formatter renders an ordered stanza list to text.
type Formatter func([]Stanza) string

// FormatSRT renders stanzas as canonical SubRip: counter, time range, text and
// a blank separator line per stanza.
func FormatSRT(stanzas []Stanza) string {
	var b strings.Builder
	for _, s := range stanzas {
		b.WriteString(strconv.Itoa(s.Index))
		b.WriteByte('\n')
		b.WriteString(s.Time.String())
		b.WriteByte('\n')
		b.WriteString(s.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}
