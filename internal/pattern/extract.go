package pattern

import (
	"container/list"
	"fmt"
	"strconv"
	"sync"
)

// Identifier is the normalized (season, episode) pair derived from a
// filename. Two identifiers are equal iff their integer season and episode
// match, regardless of the original textual padding.
type Identifier struct {
	Season  int
	Episode int
	// Rank is the index of the rule that produced the identifier; lower
	// means more specific.
	Rank int
	// SeasonImplied is true when the matched rule carried no season marker
	// and the season defaulted to 1. The matcher uses this for the
	// contextual final-season adjustment across a candidate pair.
	SeasonImplied bool
}

// Key returns the canonical lowercase form, e.g. "s2e8". Padding-insensitive.
func (id Identifier) Key() string {
	return fmt.Sprintf("s%de%d", id.Season, id.Episode)
}

// Label returns the zero-padded display form, e.g. "S02E08".
func (id Identifier) Label() string {
	return fmt.Sprintf("S%02dE%02d", id.Season, id.Episode)
}

// Same reports identifier equality on the (season, episode) integers only.
func (id Identifier) Same(other Identifier) bool {
	return id.Season == other.Season && id.Episode == other.Episode
}

// defaultCacheSize bounds the memoization cache. Extraction is a pure
// function of the filename, so entries never go stale within a run.
const defaultCacheSize = 1024

type cacheEntry struct {
	key string
	id  Identifier
	ok  bool
}

// Extractor applies the pattern table to filenames with LRU memoization.
// Safe for concurrent use.
type Extractor struct {
	mu      sync.Mutex
	maxSize int
	order   *list.List
	entries map[string]*list.Element
}

// NewExtractor constructs an extractor with the default cache bound.
func NewExtractor() *Extractor {
	return NewExtractorSize(defaultCacheSize)
}

// NewExtractorSize constructs an extractor with a custom cache bound.
// Sizes below 1 disable caching.
func NewExtractorSize(size int) *Extractor {
	return &Extractor{
		maxSize: size,
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

// Extract applies the pattern table to filename. The second return is false
// when no rule matches; that is not an error, merely an unidentified file.
func (e *Extractor) Extract(filename string) (Identifier, bool) {
	e.mu.Lock()
	if elem, ok := e.entries[filename]; ok {
		e.order.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		e.mu.Unlock()
		return entry.id, entry.ok
	}
	e.mu.Unlock()

	id, ok := extract(filename)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.maxSize > 0 {
		if elem, exists := e.entries[filename]; exists {
			e.order.MoveToFront(elem)
			return id, ok
		}
		elem := e.order.PushFront(&cacheEntry{key: filename, id: id, ok: ok})
		e.entries[filename] = elem
		if e.order.Len() > e.maxSize {
			oldest := e.order.Back()
			e.order.Remove(oldest)
			delete(e.entries, oldest.Value.(*cacheEntry).key)
		}
	}
	return id, ok
}

// CacheLen reports the number of memoized filenames.
func (e *Extractor) CacheLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.order.Len()
}

// extract walks the ordered rule table; first match wins.
func extract(filename string) (Identifier, bool) {
	for rank, rule := range rules {
		m := rule.re.FindStringSubmatch(filename)
		if m == nil {
			continue
		}
		season := 1
		implied := rule.seasonGroup == 0
		if !implied {
			parsed, err := strconv.Atoi(m[rule.seasonGroup])
			if err != nil {
				continue
			}
			season = parsed
		}
		episode, err := strconv.Atoi(m[rule.episodeGroup])
		if err != nil {
			continue
		}
		if season < 1 || season > MaxSeason || episode < 1 || episode > MaxEpisode {
			continue
		}
		return Identifier{Season: season, Episode: episode, Rank: rank, SeasonImplied: implied}, true
	}
	return Identifier{}, false
}
