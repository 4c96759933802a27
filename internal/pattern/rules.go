package pattern

import "regexp"

// Rule describes one filename-decoding pattern. Rules are evaluated in table
// order, most specific first, and the first hit wins. Ordering is a
// correctness property: evaluating a loose rule first would misread a
// resolution token, release year, or codec tag as an episode number.
type Rule struct {
	Name string
	re   *regexp.Regexp
	// seasonGroup is the submatch index carrying the season number, or 0
	// when the rule has no season marker and the season defaults to 1.
	seasonGroup  int
	episodeGroup int
}

// Season and episode bounds. Bare-number rules additionally cap the episode
// at 1899 inside their expressions so release years (1900+) never match.
const (
	MaxSeason  = 99
	MaxEpisode = 9999
)

// rules is the ordered pattern table. The trailing bare-number forms guard
// against alphanumeric neighbors so tokens like 1080p, x264, and [10bit]
// stay unmatched.
var rules = []Rule{
	{Name: "S##E##", re: regexp.MustCompile(`(?i)s(\d{1,2})\s?e(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "S## Episode ##", re: regexp.MustCompile(`(?i)s(\d{1,2})\s+episode\s+(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "##x##", re: regexp.MustCompile(`(?:^|[._\s-])(\d{1,2})[xX](\d{1,4})(?:[._\s-]|$)`), seasonGroup: 1, episodeGroup: 2},
	{Name: "S## - ##", re: regexp.MustCompile(`(?i)s(\d{1,2})\s*-\s*(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "S## - E##", re: regexp.MustCompile(`(?i)s(\d{1,2})\s*-\s*e(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "S##.E##", re: regexp.MustCompile(`(?i)s(\d{1,2})\.e(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "S##_E##", re: regexp.MustCompile(`(?i)s(\d{1,2})_e(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "S## - EP##", re: regexp.MustCompile(`(?i)s(\d{1,2})\s*-\s*ep(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "S## EP##", re: regexp.MustCompile(`(?i)s(\d{1,2})\s+ep\s*(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "S##.EP##", re: regexp.MustCompile(`(?i)s(\d{1,2})\.ep(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "Nth Season - ##", re: regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)\s+season\s*-\s*(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "Nth Season Episode ##", re: regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)\s+season\s+episode\s+(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "Nth Season E##", re: regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)\s+season\s+e\s*(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "Nth Season EP##", re: regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)\s+season\s+ep\s*(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "Season ## - ##", re: regexp.MustCompile(`(?i)season\s+(\d{1,2})\s*-\s*(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "Season## - ##", re: regexp.MustCompile(`(?i)season(\d{1,2})\s*-\s*(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "Season.#.Episode.#", re: regexp.MustCompile(`(?i)season\.(\d{1,2})[\s._-]*episode\.(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "S#.Ep.#", re: regexp.MustCompile(`(?i)s(\d{1,2})[\s._-]*ep(?:isode)?\.(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "S#Ep#", re: regexp.MustCompile(`(?i)s(\d{1,2})ep(?:isode)?(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "Season # Episode #", re: regexp.MustCompile(`(?i)season\s+(\d{1,2})\s+episode\s+(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "Season##_Episode##", re: regexp.MustCompile(`(?i)season\s*(\d{1,2})[\s_]+episode\s*(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "Season#Episode#", re: regexp.MustCompile(`(?i)season(\d{1,2})episode(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "Season# Ep#", re: regexp.MustCompile(`(?i)season(\d{1,2})\s+ep(?:isode)?(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "Season#Ep#", re: regexp.MustCompile(`(?i)season(\d{1,2})ep(?:isode)?(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "Season## E##", re: regexp.MustCompile(`(?i)season(\d{1,2})\s+e(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "Season #.Ep #", re: regexp.MustCompile(`(?i)season\s+(\d{1,2})[\s._-]*ep(?:isode)?\s*(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "Season#.Ep#", re: regexp.MustCompile(`(?i)season(\d{1,2})[\s._-]*ep(?:isode)?\s*(\d{1,4})`), seasonGroup: 1, episodeGroup: 2},
	{Name: "Ep##", re: regexp.MustCompile(`(?i)(?:^|[._\s-])ep(?:isode)?\s*(\d{1,4})(?:[._\s-]|$)`), seasonGroup: 0, episodeGroup: 1},
	{Name: "E##", re: regexp.MustCompile(`(?:^|[._\s-])[Ee](\d{1,4})(?:[._\s-]|$)`), seasonGroup: 0, episodeGroup: 1},
	{Name: "## - ##", re: regexp.MustCompile(`(?:^|[^0-9])(\d{1,2})\s*-\s*(\d{1,2})(?:[^0-9a-zA-Z]|$)`), seasonGroup: 1, episodeGroup: 2},
	{Name: "- ##", re: regexp.MustCompile(`-\s*(1[0-8]\d{2}|\d{1,3})(?:[^0-9a-zA-Z]|$)`), seasonGroup: 0, episodeGroup: 1},
	{Name: "[##]", re: regexp.MustCompile(`\[(\d{1,2})\](?:[^0-9a-zA-Z]|$)`), seasonGroup: 0, episodeGroup: 1},
	{Name: "_##", re: regexp.MustCompile(`_(1[0-8]\d{2}|\d{1,3})(?:[^0-9a-zA-Z]|$)`), seasonGroup: 0, episodeGroup: 1},
}

// Rules returns the pattern table in evaluation order. Callers must not
// mutate the returned slice.
func Rules() []Rule {
	return rules
}
