// Package config loads, normalizes, and validates converter configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// APERTIUM_PAIR and APERTIUM_BIN. Command-line flags are applied on top of
// the loaded Config by the CLI.
package config
