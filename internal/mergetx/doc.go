// Package mergetx embeds subtitles into videos through a staged,
// rollback-safe transaction: validate, merge to a temporary file, back
// up the originals, then commit by rename. At every observable point
// the working directory holds either the original pair or the fully
// merged video, never a half-written one.
package mergetx
