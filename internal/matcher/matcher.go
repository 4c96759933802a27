package matcher

import (
	"log/slog"

	"subfast/internal/logging"
	"subfast/internal/media"
	"subfast/internal/pattern"
)

// Basis records which strategy paired a video with a subtitle.
type Basis string

const (
	BasisEpisode               Basis = "episode"
	BasisMovieTitle            Basis = "movie-title"
	BasisContextualFinalSeason Basis = "contextual-final-season"
)

// movieMatchThreshold is the minimum title-token overlap ratio for a
// confident movie pairing.
const movieMatchThreshold = 0.3

// Pair is one video/subtitle association. Each file appears in at most
// one pair per run.
type Pair struct {
	Video         media.File
	Subtitle      media.File
	Basis         Basis
	Identifier    pattern.Identifier
	HasIdentifier bool
	Ratio         float64
	LowConfidence bool
}

// ConflictKind distinguishes the two duplicate-identifier cases.
type ConflictKind string

const (
	// ConflictVideoCollision: two videos claim the same episode
	// identifier. The first keeps it.
	ConflictVideoCollision ConflictKind = "video-collision"
	// ConflictSubtitleDuplicate: two subtitles resolve to the same
	// video. The first keeps it.
	ConflictSubtitleDuplicate ConflictKind = "subtitle-duplicate"
)

// Conflict is a diagnostic record. Conflicts never abort a run.
type Conflict struct {
	Kind       ConflictKind
	Identifier pattern.Identifier
	Winner     media.File
	Loser      media.File
}

// Result holds the disjoint outcome lists of one matching run.
type Result struct {
	Matched            []Pair
	UnmatchedVideos    []media.File
	UnmatchedSubtitles []media.File
	Conflicts          []Conflict
}

// Options configures matching behavior.
type Options struct {
	// StrictMovieMatch rejects single-pair movie associations whose
	// title overlap falls below the confidence threshold instead of
	// returning them flagged low-confidence.
	StrictMovieMatch bool
}

type videoEntry struct {
	file    media.File
	id      pattern.Identifier
	claimed bool
}

// Matcher pairs video files with subtitle files.
type Matcher struct {
	extractor *pattern.Extractor
	opts      Options
	logger    *slog.Logger
}

func New(extractor *pattern.Extractor, opts Options, logger *slog.Logger) *Matcher {
	if extractor == nil {
		extractor = pattern.NewExtractor()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Matcher{
		extractor: extractor,
		opts:      opts,
		logger:    logging.NewComponentLogger(logger, "matcher"),
	}
}

// Match produces the maximal disjoint pairing of the two file lists.
// Inputs must be sorted lexicographically by name; output ordering
// follows input ordering, so two runs over the same lists are
// identical.
func (m *Matcher) Match(videos, subtitles []media.File) Result {
	var result Result

	index := make(map[string]*videoEntry, len(videos))
	entries := make([]*videoEntry, 0, len(videos))
	var plainVideos []media.File

	for _, v := range videos {
		id, ok := m.extractor.Extract(v.Name)
		if !ok {
			plainVideos = append(plainVideos, v)
			continue
		}
		key := id.Key()
		if existing, dup := index[key]; dup {
			m.logger.Debug("video collision",
				logging.String(logging.FieldEpisodeKey, key),
				logging.String("kept", existing.file.Name),
				logging.String("dropped", v.Name))
			result.Conflicts = append(result.Conflicts, Conflict{
				Kind:       ConflictVideoCollision,
				Identifier: id,
				Winner:     existing.file,
				Loser:      v,
			})
			continue
		}
		entry := &videoEntry{file: v, id: id}
		index[key] = entry
		entries = append(entries, entry)
	}

	var plainSubtitles []media.File
	for _, s := range subtitles {
		id, ok := m.extractor.Extract(s.Name)
		if !ok {
			plainSubtitles = append(plainSubtitles, s)
			continue
		}

		entry, basis, adopted := m.resolveEpisode(index, entries, s, id)
		if entry == nil {
			result.UnmatchedSubtitles = append(result.UnmatchedSubtitles, s)
			continue
		}
		if entry.claimed {
			result.Conflicts = append(result.Conflicts, Conflict{
				Kind:       ConflictSubtitleDuplicate,
				Identifier: adopted,
				Winner:     entry.file,
				Loser:      s,
			})
			result.UnmatchedSubtitles = append(result.UnmatchedSubtitles, s)
			continue
		}
		entry.claimed = true
		result.Matched = append(result.Matched, Pair{
			Video:         entry.file,
			Subtitle:      s,
			Basis:         basis,
			Identifier:    adopted,
			HasIdentifier: true,
		})
	}

	for _, entry := range entries {
		if !entry.claimed {
			result.UnmatchedVideos = append(result.UnmatchedVideos, entry.file)
		}
	}
	result.UnmatchedVideos = append(result.UnmatchedVideos, plainVideos...)

	// Movie fallback: a lone unidentified video with a lone
	// unidentified subtitle can only pair with each other.
	if len(result.Matched) == 0 && len(plainVideos) == 1 && len(plainSubtitles) == 1 {
		if pair, ok := m.matchMovie(plainVideos[0], plainSubtitles[0]); ok {
			result.Matched = append(result.Matched, pair)
			result.UnmatchedVideos = removeFile(result.UnmatchedVideos, plainVideos[0])
			plainSubtitles = nil
		}
	}
	result.UnmatchedSubtitles = append(result.UnmatchedSubtitles, plainSubtitles...)

	return result
}

// resolveEpisode finds the video entry for a subtitle identifier. When
// the direct lookup misses it applies the final-season rule: a file
// whose season defaulted to 1 because the release spells the season as
// a keyword ("FINAL SEASON") adopts the explicit season of its
// counterpart, provided the episode numbers agree and the titles share
// at least one token.
func (m *Matcher) resolveEpisode(index map[string]*videoEntry, entries []*videoEntry, subtitle media.File, id pattern.Identifier) (*videoEntry, Basis, pattern.Identifier) {
	if entry, ok := index[id.Key()]; ok {
		// A lookup hit where the subtitle's season was implied and the
		// video spells out a keyword season is still a plain episode
		// match: both sides normalized to the same identifier.
		return entry, BasisEpisode, entry.id
	}

	if id.SeasonImplied && pattern.HasFinalSeasonKeyword(subtitle.Name) {
		for _, entry := range entries {
			if entry.id.SeasonImplied || entry.id.Episode != id.Episode {
				continue
			}
			if !tokensOverlap(subtitle.Name, entry.file.Name) {
				continue
			}
			m.logger.Debug("final season inference",
				logging.String("subtitle", subtitle.Name),
				logging.String("video", entry.file.Name),
				logging.String(logging.FieldEpisodeKey, entry.id.Key()))
			return entry, BasisContextualFinalSeason, entry.id
		}
	}

	if !id.SeasonImplied {
		for _, entry := range entries {
			if !entry.id.SeasonImplied || entry.id.Episode != id.Episode {
				continue
			}
			if !pattern.HasFinalSeasonKeyword(entry.file.Name) {
				continue
			}
			if !tokensOverlap(subtitle.Name, entry.file.Name) {
				continue
			}
			m.logger.Debug("final season inference",
				logging.String("subtitle", subtitle.Name),
				logging.String("video", entry.file.Name),
				logging.String(logging.FieldEpisodeKey, id.Key()))
			return entry, BasisContextualFinalSeason, id
		}
	}

	return nil, "", pattern.Identifier{}
}

func removeFile(files []media.File, target media.File) []media.File {
	out := files[:0]
	for _, f := range files {
		if f.Path != target.Path {
			out = append(out, f)
		}
	}
	return out
}

func (m *Matcher) matchMovie(video, subtitle media.File) (Pair, bool) {
	videoTokens := titleTokens(video.Name)
	subtitleTokens := titleTokens(subtitle.Name)
	ratio, common := overlapRatio(videoTokens, subtitleTokens)

	videoYear := titleYear(video.Name)
	subtitleYear := titleYear(subtitle.Name)
	yearsMatch := videoYear != "" && videoYear == subtitleYear

	confident := ratio >= movieMatchThreshold || (yearsMatch && common > 0)
	if !confident && m.opts.StrictMovieMatch {
		m.logger.Debug("movie match rejected",
			logging.String("video", video.Name),
			logging.String("subtitle", subtitle.Name),
			logging.Float64("ratio", ratio))
		return Pair{}, false
	}
	if !confident {
		m.logger.Debug("movie match low confidence",
			logging.String("video", video.Name),
			logging.String("subtitle", subtitle.Name),
			logging.Float64("ratio", ratio))
	}
	return Pair{
		Video:         video,
		Subtitle:      subtitle,
		Basis:         BasisMovieTitle,
		Ratio:         ratio,
		LowConfidence: !confident,
	}, true
}
