package matcher

import (
	"testing"

	"subfast/internal/media"
)

func vf(name string) media.File {
	return media.File{Path: "/library/" + name, Name: name, Kind: media.KindVideo}
}

func sf(name string) media.File {
	return media.File{Path: "/library/" + name, Name: name, Kind: media.KindSubtitle}
}

func newTestMatcher(opts Options) *Matcher {
	return New(nil, opts, nil)
}

func TestMatchEpisodePadding(t *testing.T) {
	m := newTestMatcher(Options{})
	result := m.Match(
		[]media.File{vf("Show.S2E8.mkv")},
		[]media.File{sf("Show.S02E008.ar.srt")},
	)

	if len(result.Matched) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(result.Matched))
	}
	pair := result.Matched[0]
	if pair.Basis != BasisEpisode {
		t.Errorf("basis = %q, want %q", pair.Basis, BasisEpisode)
	}
	if pair.Identifier.Season != 2 || pair.Identifier.Episode != 8 {
		t.Errorf("identifier = S%dE%d, want S2E8", pair.Identifier.Season, pair.Identifier.Episode)
	}
	if len(result.UnmatchedVideos) != 0 || len(result.UnmatchedSubtitles) != 0 {
		t.Errorf("unexpected unmatched files: %v %v", result.UnmatchedVideos, result.UnmatchedSubtitles)
	}
}

func TestMatchBatch(t *testing.T) {
	m := newTestMatcher(Options{})
	videos := []media.File{
		vf("Show.S01E01.1080p.mkv"),
		vf("Show.S01E02.1080p.mkv"),
		vf("Show.S01E03.1080p.mkv"),
	}
	subtitles := []media.File{
		sf("Show.S01E01.srt"),
		sf("Show.S01E03.srt"),
		sf("Show.S01E05.srt"),
	}

	result := m.Match(videos, subtitles)
	if len(result.Matched) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(result.Matched))
	}
	if result.Matched[0].Video.Name != "Show.S01E01.1080p.mkv" {
		t.Errorf("first pair video = %q", result.Matched[0].Video.Name)
	}
	if result.Matched[1].Video.Name != "Show.S01E03.1080p.mkv" {
		t.Errorf("second pair video = %q", result.Matched[1].Video.Name)
	}
	if len(result.UnmatchedVideos) != 1 || result.UnmatchedVideos[0].Name != "Show.S01E02.1080p.mkv" {
		t.Errorf("unmatched videos = %v", result.UnmatchedVideos)
	}
	if len(result.UnmatchedSubtitles) != 1 || result.UnmatchedSubtitles[0].Name != "Show.S01E05.srt" {
		t.Errorf("unmatched subtitles = %v", result.UnmatchedSubtitles)
	}
}

func TestMatchVideoCollisionFirstWins(t *testing.T) {
	m := newTestMatcher(Options{})
	result := m.Match(
		[]media.File{
			vf("Show.S01E01.720p.mkv"),
			vf("Show.S01E01.1080p.mkv"),
		},
		[]media.File{sf("Show.S01E01.srt")},
	)

	if len(result.Matched) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(result.Matched))
	}
	if got := result.Matched[0].Video.Name; got != "Show.S01E01.720p.mkv" {
		t.Errorf("matched video = %q, want first encountered", got)
	}
	if len(result.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(result.Conflicts))
	}
	c := result.Conflicts[0]
	if c.Kind != ConflictVideoCollision {
		t.Errorf("conflict kind = %q", c.Kind)
	}
	if c.Loser.Name != "Show.S01E01.1080p.mkv" {
		t.Errorf("conflict loser = %q", c.Loser.Name)
	}
}

func TestMatchSubtitleDuplicate(t *testing.T) {
	m := newTestMatcher(Options{})
	result := m.Match(
		[]media.File{vf("Show.S01E01.mkv")},
		[]media.File{
			sf("Show.S01E01.en.srt"),
			sf("Show.S01E01.es.srt"),
		},
	)

	if len(result.Matched) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(result.Matched))
	}
	if got := result.Matched[0].Subtitle.Name; got != "Show.S01E01.en.srt" {
		t.Errorf("matched subtitle = %q, want first encountered", got)
	}
	if len(result.Conflicts) != 1 || result.Conflicts[0].Kind != ConflictSubtitleDuplicate {
		t.Fatalf("conflicts = %v", result.Conflicts)
	}
	if len(result.UnmatchedSubtitles) != 1 || result.UnmatchedSubtitles[0].Name != "Show.S01E01.es.srt" {
		t.Errorf("unmatched subtitles = %v", result.UnmatchedSubtitles)
	}
}

func TestMatchFinalSeasonInference(t *testing.T) {
	tests := []struct {
		name     string
		video    string
		subtitle string
		season   int
		episode  int
		basis    Basis
	}{
		{
			name:     "subtitle keyword adopts video season",
			video:    "My.Hero.Academia.S08E01.Toshinori.Yagi.Rising-Origin.1080p.mkv",
			subtitle: "[Heroacainarabic] Boku no Hero Academia FINAL SEASON - 01.ass",
			season:   8, episode: 1,
			basis: BasisContextualFinalSeason,
		},
		{
			name:     "keyword with later episode",
			video:    "Attack.on.Titan.S04E05.1080p.mkv",
			subtitle: "Attack on Titan FINAL SEASON - 05.ass",
			season:   4, episode: 5,
			basis: BasisContextualFinalSeason,
		},
		{
			name:     "video keyword adopts subtitle season",
			video:    "Attack.on.Titan.FINAL.SEASON - 03.mkv",
			subtitle: "Attack.on.Titan.S04E03.ass",
			season:   4, episode: 3,
			basis: BasisContextualFinalSeason,
		},
		{
			name:     "both keyword default to season one",
			video:    "Show.FINAL.SEASON.E01.mkv",
			subtitle: "Show.FINAL.SEASON - 01.ass",
			season:   1, episode: 1,
			basis: BasisEpisode,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatcher(Options{})
			result := m.Match([]media.File{vf(tt.video)}, []media.File{sf(tt.subtitle)})
			if len(result.Matched) != 1 {
				t.Fatalf("expected 1 pair, got %d (unmatched subs: %v)", len(result.Matched), result.UnmatchedSubtitles)
			}
			pair := result.Matched[0]
			if pair.Basis != tt.basis {
				t.Errorf("basis = %q, want %q", pair.Basis, tt.basis)
			}
			if pair.Identifier.Season != tt.season || pair.Identifier.Episode != tt.episode {
				t.Errorf("identifier = S%dE%d, want S%dE%d",
					pair.Identifier.Season, pair.Identifier.Episode, tt.season, tt.episode)
			}
		})
	}
}

func TestMatchFinalSeasonRequiresTitleOverlap(t *testing.T) {
	m := newTestMatcher(Options{})
	result := m.Match(
		[]media.File{vf("Totally.Different.Series.S08E01.mkv")},
		[]media.File{sf("Another Show FINAL SEASON - 01.ass")},
	)
	if len(result.Matched) != 0 {
		t.Fatalf("expected no pairs, got %v", result.Matched)
	}
}

func TestMatchMovieMode(t *testing.T) {
	m := newTestMatcher(Options{})
	result := m.Match(
		[]media.File{vf("The.Great.Escape.1963.1080p.BluRay.x264.mkv")},
		[]media.File{sf("The Great Escape.srt")},
	)

	if len(result.Matched) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(result.Matched))
	}
	pair := result.Matched[0]
	if pair.Basis != BasisMovieTitle {
		t.Errorf("basis = %q, want %q", pair.Basis, BasisMovieTitle)
	}
	if pair.LowConfidence {
		t.Error("expected confident match")
	}
	if pair.HasIdentifier {
		t.Error("movie pair should carry no episode identifier")
	}
}

func TestMatchMovieModeLowConfidenceFallback(t *testing.T) {
	m := newTestMatcher(Options{})
	result := m.Match(
		[]media.File{vf("Movie.Alpha.mkv")},
		[]media.File{sf("Something.Else.srt")},
	)

	if len(result.Matched) != 1 {
		t.Fatalf("expected fallback pair, got %d", len(result.Matched))
	}
	if !result.Matched[0].LowConfidence {
		t.Error("expected low-confidence flag")
	}
	if len(result.UnmatchedVideos) != 0 || len(result.UnmatchedSubtitles) != 0 {
		t.Errorf("unexpected unmatched files: %v %v", result.UnmatchedVideos, result.UnmatchedSubtitles)
	}
}

func TestMatchMovieModeStrict(t *testing.T) {
	m := newTestMatcher(Options{StrictMovieMatch: true})
	result := m.Match(
		[]media.File{vf("Movie.Alpha.mkv")},
		[]media.File{sf("Something.Else.srt")},
	)

	if len(result.Matched) != 0 {
		t.Fatalf("expected no pairs in strict mode, got %d", len(result.Matched))
	}
	if len(result.UnmatchedVideos) != 1 || len(result.UnmatchedSubtitles) != 1 {
		t.Errorf("unmatched = %v %v", result.UnmatchedVideos, result.UnmatchedSubtitles)
	}
}

func TestMatchMovieModeRequiresSinglePair(t *testing.T) {
	m := newTestMatcher(Options{})
	result := m.Match(
		[]media.File{vf("Movie.Alpha.mkv"), vf("Movie.Beta.mkv")},
		[]media.File{sf("Movie.Alpha.srt")},
	)

	if len(result.Matched) != 0 {
		t.Fatalf("expected no pairs with two unidentified videos, got %d", len(result.Matched))
	}
}

func TestMatchDeterminism(t *testing.T) {
	m := newTestMatcher(Options{})
	videos := []media.File{
		vf("Show.S01E01.720p.mkv"),
		vf("Show.S01E01.1080p.mkv"),
		vf("Show.S01E02.mkv"),
	}
	subtitles := []media.File{
		sf("Show.S01E01.srt"),
		sf("Show.S01E02.en.srt"),
		sf("Show.S01E02.es.srt"),
	}

	first := m.Match(videos, subtitles)
	second := m.Match(videos, subtitles)

	if len(first.Matched) != len(second.Matched) {
		t.Fatalf("pair counts differ: %d vs %d", len(first.Matched), len(second.Matched))
	}
	for i := range first.Matched {
		if first.Matched[i].Video.Path != second.Matched[i].Video.Path ||
			first.Matched[i].Subtitle.Path != second.Matched[i].Subtitle.Path {
			t.Errorf("pair %d differs between runs", i)
		}
	}
	if len(first.Conflicts) != len(second.Conflicts) {
		t.Errorf("conflict counts differ: %d vs %d", len(first.Conflicts), len(second.Conflicts))
	}
}
