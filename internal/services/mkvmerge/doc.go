// Package mkvmerge wraps the external merge tool used to embed
// subtitle tracks into MKV containers.
package mkvmerge
