// Package config loads, normalizes, and validates subfast's TOML
// configuration.
//
// The configuration file is searched at ~/.config/subfast/config.toml and
// then at ./subfast.toml; a missing file yields the built-in defaults. All
// values the core treats as opaque inputs (recognized extensions, language
// suffix and code, default-track flag, report flags) live here.
package config
