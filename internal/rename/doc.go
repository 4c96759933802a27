// Package rename aligns subtitle filenames with their matched videos,
// optionally inserting a language suffix before the extension.
package rename
