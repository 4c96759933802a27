// Package matcher pairs video files with subtitle files, by episode
// identifier when the directory holds a series and by title-token
// overlap when it holds a single movie.
package matcher
