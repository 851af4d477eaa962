// Package apertium invokes the Apertium machine-translation engine on a
// prepared intermediate file.
//
// The engine runs as a blocking external process:
//
//	apertium [-u] [-n] <src-dst> <input> <output>
//
// where -u hides unknown-word marks and -n stops the engine guessing sentence
// ends. Any failure to start the process, a non-zero exit, or a missing output
// file is reported as services.ErrExternalTool.
package apertium
