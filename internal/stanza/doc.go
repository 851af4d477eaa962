// Package stanza parses SubRip-style subtitle text into an ordered list of
// stanzas and renders stanza lists back to text.
//
// Parse is tolerant by construction: every input line is classified once as a
// counter, a time range (canonical `-->` or the dotted comma-joined dialect
// found in ripped files), or caption text, so malformed files still produce a
// contiguous 1..N stanza sequence. Formatters are plain functions; the
// protected intermediate format lives in the superblank package and plugs in
// through the Formatter type.
package stanza
