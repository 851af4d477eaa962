package config

import (
	"fmt"

	"apertiumsrt/internal/charset"
	"apertiumsrt/internal/language"
	"apertiumsrt/internal/services"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateApertium(); err != nil {
		return err
	}
	if err := c.validateConversion(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateApertium() error {
	if c.Apertium.Command == "" {
		return fmt.Errorf("%w: apertium.command must be set", services.ErrConfiguration)
	}
	if c.Apertium.Pair != "" {
		if _, err := language.ParsePair(c.Apertium.Pair); err != nil {
			return fmt.Errorf("%w: apertium.pair: %w", services.ErrConfiguration, err)
		}
	}
	return nil
}

func (c *Config) validateConversion() error {
	if _, err := charset.Lookup(c.Conversion.Codec); err != nil {
		return fmt.Errorf("%w: conversion.codec: %w", services.ErrConfiguration, err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q", services.ErrConfiguration, c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level must be debug, info, warn, or error, got %q", services.ErrConfiguration, c.Logging.Level)
	}
	return nil
}
