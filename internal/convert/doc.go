// Package convert runs one subtitle file through the translation pipeline.
//
// A run resolves the input path, reads it with the configured codec, parses
// stanzas, and writes the protected intermediate file. When a language pair
// is given it also invokes the engine, deblanks the translated output, and
// writes the final subtitle, removing intermediates on success. On engine
// failure the protected file stays on disk so the translation can be retried
// by hand.
package convert
