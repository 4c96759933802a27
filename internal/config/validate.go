package config

import (
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGeneral(); err != nil {
		return err
	}
	if err := c.validateEmbedding(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateGeneral() error {
	if len(c.General.VideoExtensions) == 0 {
		return fmt.Errorf("general.video_extensions must list at least one extension")
	}
	if len(c.General.SubtitleExtensions) == 0 {
		return fmt.Errorf("general.subtitle_extensions must list at least one extension")
	}
	for _, v := range c.General.VideoExtensions {
		for _, s := range c.General.SubtitleExtensions {
			if v == s {
				return fmt.Errorf("extension %q listed as both video and subtitle", v)
			}
		}
	}
	return nil
}

func (c *Config) validateEmbedding() error {
	if code := c.Embedding.LanguageCode; code != "" {
		if len(code) < 2 || len(code) > 3 || !isAlphaToken(code) {
			return fmt.Errorf("embedding.language_code %q is not a 2- or 3-letter ISO 639 code", code)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func isAlphaToken(value string) bool {
	for _, r := range value {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
