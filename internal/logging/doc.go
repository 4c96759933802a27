// Package logging builds slog loggers for subfast and provides the attr
// helpers the rest of the codebase uses for structured fields.
//
// Loggers are constructed once per run from configuration (level + format)
// and threaded into components via NewComponentLogger, which stamps a
// standardized "component" attribute so log lines can be filtered per
// subsystem (matcher, mergetx, guard, ...).
package logging
