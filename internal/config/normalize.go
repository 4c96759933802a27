package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.General.VideoExtensions = normalizeExtensions(c.General.VideoExtensions, defaultVideoExtensions)
	c.General.SubtitleExtensions = normalizeExtensions(c.General.SubtitleExtensions, defaultSubtitleExtensions)

	c.Renaming.LanguageSuffix = strings.TrimSpace(c.Renaming.LanguageSuffix)
	c.Embedding.LanguageCode = strings.ToLower(strings.TrimSpace(c.Embedding.LanguageCode))

	if path := strings.TrimSpace(c.Embedding.MkvmergePath); path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return fmt.Errorf("embedding.mkvmerge_path: %w", err)
		}
		c.Embedding.MkvmergePath = expanded
	} else {
		c.Embedding.MkvmergePath = ""
	}

	c.normalizeLogging()
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

// normalizeExtensions lowercases entries, strips leading dots and whitespace,
// drops malformed entries, and deduplicates while preserving order.
func normalizeExtensions(values, fallback []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		ext := strings.ToLower(strings.TrimSpace(value))
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" || !isAlnumToken(ext) {
			continue
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	if len(out) == 0 {
		return append([]string(nil), fallback...)
	}
	return out
}

func isAlnumToken(value string) bool {
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
