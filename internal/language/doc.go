// Package language parses Apertium language-pair tokens and maps language
// codes to display names.
//
// Apertium names pairs `src-dst`, where each side is an ISO 639-1 or 639-3
// code optionally followed by an underscore variant (`ca_valencia`,
// `pt_BR`). Lookups accept either code length.
package language
