// Package guard holds the preflight checks run before merge
// transactions: merge-tool availability and free disk space.
package guard
