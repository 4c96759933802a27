package pattern

import "regexp"

// Some releases label a terminal season "FINAL SEASON" instead of numbering
// it. Such filenames carry no season digit, so extraction defaults them to
// season 1; the matcher repairs the season from the other file of the pair
// when that file names the season explicitly.
var finalSeasonRe = regexp.MustCompile(`(?i)final[._\s-]+season`)

// HasFinalSeasonKeyword reports whether the filename advertises a final
// season without a season number.
func HasFinalSeasonKeyword(filename string) bool {
	return finalSeasonRe.MatchString(filename)
}
