// Package report turns match and transaction outcomes into structured
// records, console tables, and CSV exports.
package report
