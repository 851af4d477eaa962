// Package services defines shared utilities consumed by the conversion
// pipeline and the Apertium integration.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and stage names for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     (invalid input, translation invocation, configuration) consistently.
//
// Use these helpers when wiring new pipeline steps so error handling and
// observability stay uniform.
package services
