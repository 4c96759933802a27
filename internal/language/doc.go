// Package language maps language codes and filename tags to ISO 639-2
// codes used when tagging subtitle tracks.
package language
