package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeApertium()
	if err := c.normalizeConversion(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeApertium() {
	c.Apertium.Command = strings.TrimSpace(c.Apertium.Command)
	if c.Apertium.Command == "" {
		if value, ok := os.LookupEnv("APERTIUM_BIN"); ok {
			c.Apertium.Command = strings.TrimSpace(value)
		}
	}
	if c.Apertium.Command == "" {
		c.Apertium.Command = defaultApertiumCommand
	}
	c.Apertium.Pair = strings.TrimSpace(c.Apertium.Pair)
	if c.Apertium.Pair == "" {
		if value, ok := os.LookupEnv("APERTIUM_PAIR"); ok {
			c.Apertium.Pair = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeConversion() error {
	c.Conversion.Codec = strings.TrimSpace(c.Conversion.Codec)
	if c.Conversion.Codec == "" {
		c.Conversion.Codec = defaultCodec
	}
	var err error
	if c.Conversion.WorkDir, err = expandPath(strings.TrimSpace(c.Conversion.WorkDir)); err != nil {
		return fmt.Errorf("conversion.work_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
