package language

import (
	"path/filepath"
	"strings"
)

// Non-language markers that commonly sit between the title and the
// language tag in subtitle filenames. They are skipped so that
// "Show.eng.forced.srt" still detects English.
var skipMarkers = map[string]bool{
	"forced": true,
	"sdh":    true,
	"cc":     true,
	"hi":     true,
}

const maxTagParts = 3

// FromFilename inspects the trailing dot-separated parts of a subtitle
// filename for a language tag and returns its ISO 639-2 code. Only the
// last few parts before the extension are considered, so title words
// never match. Returns empty string when no tag is found.
func FromFilename(filename string) string {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(stem, ".")
	if len(parts) < 2 {
		return ""
	}
	// Drop the leading part: it is always title material.
	parts = parts[1:]
	if len(parts) > maxTagParts {
		parts = parts[len(parts)-maxTagParts:]
	}
	for i := len(parts) - 1; i >= 0; i-- {
		p := strings.ToLower(strings.TrimSpace(parts[i]))
		if skipMarkers[p] {
			continue
		}
		if code := ToISO3(p); code != "" {
			return code
		}
	}
	return ""
}

// Resolve determines the language for a subtitle using the filename
// first and the configured fallback second. Returns empty string when
// neither yields a recognized language, which callers treat as "tag
// nothing".
func Resolve(filename, configCode string) string {
	if code := FromFilename(filename); code != "" {
		return code
	}
	if code := ToISO3(configCode); code != "" {
		return code
	}
	return ""
}
