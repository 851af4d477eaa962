package stanza

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type lineKind int

const (
	lineCounter lineKind = iota
	lineTimeRange
	lineText
)

type phase int

const (
	phaseIdle phase = iota
	phaseAccumulating
)

// parseState is the stanza under construction. It is local to one Parse call.
type parseState struct {
	phase   phase
	index   int
	pending TimeRange
	text    []string
}

func (s *parseState) reset() {
	s.phase = phaseIdle
	s.index = 0
	s.pending = TimeRange{}
	s.text = s.text[:0]
}

// finalize emits the stanza under construction and starts a fresh one. In the
// idle phase no time range has been seen yet, so buffered text is banner noise
// and is dropped.
func (s *parseState) finalize(out []Stanza) []Stanza {
	if s.phase == phaseIdle {
		s.text = s.text[:0]
		return out
	}
	s.index++
	out = append(out, Stanza{
		Index: s.index,
		Time:  s.pending,
		Text:  strings.Join(s.text, "\n"),
	})
	s.pending = TimeRange{}
	s.text = s.text[:0]
	return out
}

func (s *parseState) feed(out []Stanza, line string) []Stanza {
	kind, trimmed, tr := classify(line)
	switch kind {
	case lineCounter:
	case lineTimeRange:
		out = s.finalize(out)
		s.pending = tr
		s.phase = phaseAccumulating
	case lineText:
		s.text = append(s.text, trimmed)
	}
	return out
}

// Parse converts raw subtitle text into stanzas numbered from 1. It never
// fails: lines that are neither counters nor time ranges become caption text,
// and the final stanza is flushed at end of input.
func Parse(text string) []Stanza {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var st parseState
	st.reset()
	var out []Stanza
	for _, line := range strings.Split(text, "\n") {
		out = st.feed(out, line)
	}
	return st.finalize(out)
}

// classify buckets a single line. First match wins: blank or digit-only lines
// are counters, lines holding "-->" are canonical ranges, lines starting with a
// digit and holding a comma are dotted ranges, everything else is text. A
// dotted range ends at its second comma; anything after it is dropped.
func classify(line string) (lineKind, string, TimeRange) {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "" || allDigits(trimmed):
		return lineCounter, trimmed, TimeRange{}
	case strings.Contains(trimmed, RangeSeparator):
		start, end, _ := strings.Cut(trimmed, RangeSeparator)
		return lineTimeRange, trimmed, TimeRange{
			Start: strings.TrimSpace(start),
			End:   strings.TrimSpace(end),
		}
	case startsWithDigit(trimmed) && strings.Contains(trimmed, ","):
		start, rest, _ := strings.Cut(trimmed, ",")
		end, _, _ := strings.Cut(rest, ",")
		return lineTimeRange, trimmed, TimeRange{
			Start: NormalizeDotted(start),
			End:   NormalizeDotted(end),
		}
	}
	return lineText, trimmed, TimeRange{}
}

// NormalizeDotted converts a dotted time code such as "0:01:00.18" to the
// canonical "00:01:00,180". The fraction is right-padded (or cut) to exactly
// three digits and a single-digit hour gains a leading zero.
func NormalizeDotted(value string) string {
	value = strings.TrimSpace(value)
	clock, fraction, _ := strings.Cut(value, ".")
	if h, rest, ok := strings.Cut(clock, ":"); ok && len(h) == 1 {
		clock = "0" + h + ":" + rest
	}
	switch {
	case len(fraction) < 3:
		fraction += strings.Repeat("0", 3-len(fraction))
	case len(fraction) > 3:
		fraction = fraction[:3]
	}
	return clock + "," + fraction
}

func allDigits(value string) bool {
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return value != ""
}

func startsWithDigit(value string) bool {
	r, _ := utf8.DecodeRuneInString(value)
	return r != utf8.RuneError && unicode.IsDigit(r)
}
