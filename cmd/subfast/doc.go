// Command subfast matches subtitle files to videos in a directory and
// either renames the subtitles to align with the videos or embeds them
// as soft tracks via mkvmerge.
package main
