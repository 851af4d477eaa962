// Package superblank converts stanzas to and from the protected intermediate
// format handed to the Apertium engine.
//
// Format fences each stanza's counter and time range between single-character
// `[` and `]` lines, which Apertium treats as superblanks and copies through
// untranslated. Deblank removes those marker lines from the engine output,
// leaving canonical SubRip with translated captions.
package superblank
