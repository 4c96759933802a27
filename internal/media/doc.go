// Package media models scanned video and subtitle files and provides the
// directory scan that feeds the matcher. The scan is the only filesystem
// read in the matching phase; everything downstream operates on its
// in-memory snapshot.
package media
