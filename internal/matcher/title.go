package matcher

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	separatorRun = regexp.MustCompile(`[._\-]+`)
	yearPattern  = regexp.MustCompile(`(?:19|20)\d{2}`)
)

// Release and codec markers that carry no title information. Matching on
// these produces false positives between unrelated files.
var technicalMarkers = map[string]struct{}{
	"1080p": {}, "720p": {}, "480p": {}, "2160p": {}, "4k": {},
	"bluray": {}, "web": {}, "dvd": {}, "hd": {},
	"x264": {}, "x265": {}, "h264": {}, "h265": {}, "avc": {}, "hevc": {},
	"aac": {}, "ac3": {}, "dts": {},
	"remux": {}, "proper": {}, "repack": {}, "real": {},
	"extended": {}, "theatrical": {}, "unrated": {}, "directors": {}, "cut": {},
	"multi": {}, "sub": {}, "dub": {}, "dubbed": {},
	"eng": {}, "en": {}, "ara": {}, "ar": {}, "fre": {}, "fr": {},
	"ger": {}, "de": {}, "ita": {}, "es": {}, "spa": {}, "kor": {}, "jpn": {},
	"ch": {}, "chs": {}, "cht": {},
	"internal": {}, "limited": {}, "xvid": {}, "divx": {},
	"ntsc": {}, "pal": {}, "dc": {},
	"sync": {}, "syncopated": {}, "cc": {}, "sdh": {}, "hc": {},
	"final": {}, "post": {}, "pre": {},
}

// Stop words stripped before comparing titles so that incidental
// phrasing ("of", "the") never counts toward an overlap.
var fillerWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"of": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {},
	"with": {}, "from": {}, "by": {}, "about": {}, "as": {}, "into": {},
	"through": {}, "during": {}, "before": {}, "after": {},
	"above": {}, "below": {}, "between": {}, "among": {}, "under": {}, "over": {},
	"and": {}, "or": {}, "but": {}, "nor": {}, "yet": {}, "so": {},
	"it": {}, "its": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"not": {}, "all": {}, "no": {}, "some": {}, "more": {}, "most": {}, "very": {},
	"can": {}, "will": {}, "just": {}, "should": {}, "than": {}, "also": {}, "only": {},
	"one": {}, "two": {}, "three": {}, "four": {}, "five": {},
	"six": {}, "seven": {}, "eight": {}, "nine": {}, "ten": {},
}

func baseName(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	return strings.TrimSpace(separatorRun.ReplaceAllString(stem, " "))
}

// titleTokens returns the lowercase title words of a filename with
// technical markers, stop words, and years removed.
func titleTokens(filename string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(baseName(filename))) {
		if _, ok := technicalMarkers[word]; ok {
			continue
		}
		if _, ok := fillerWords[word]; ok {
			continue
		}
		if len(word) == 4 && yearPattern.MatchString(word) {
			continue
		}
		tokens[word] = struct{}{}
	}
	return tokens
}

// titleYear returns the first release year in the filename, or empty.
func titleYear(filename string) string {
	return yearPattern.FindString(filename)
}

// overlapRatio compares two token sets: intersection size over the
// smaller set's size. Empty sets yield zero.
func overlapRatio(a, b map[string]struct{}) (float64, int) {
	common := 0
	for t := range a {
		if _, ok := b[t]; ok {
			common++
		}
	}
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	if smaller == 0 {
		return 0, common
	}
	return float64(common) / float64(smaller), common
}

func tokensOverlap(nameA, nameB string) bool {
	_, common := overlapRatio(titleTokens(nameA), titleTokens(nameB))
	return common > 0
}

// DisplayTitle derives a human-readable title from a media path for
// report output.
func DisplayTitle(sourcePath string) string {
	if sourcePath == "" {
		return "Unknown"
	}
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Unknown"
	}
	return cases.Title(language.Und).String(title)
}
