package report

import (
	"fmt"
	"time"

	"subfast/internal/matcher"
	"subfast/internal/mergetx"
	"subfast/internal/rename"
	"subfast/internal/services"
)

// Default CSV filenames, written into the working directory.
const (
	RenameReportFile = "renaming_report.csv"
	EmbedReportFile  = "embedding_report.csv"
)

// Status classifies one record's outcome.
type Status string

const (
	StatusRenamed   Status = "renamed"
	StatusEmbedded  Status = "embedded"
	StatusFailed    Status = "failed"
	StatusUnmatched Status = "unmatched"
	StatusConflict  Status = "conflict"
)

// Record is one structured report row. The core layers fill these;
// rendering decides how they look.
type Record struct {
	VideoName    string
	SubtitleName string
	NewName      string
	Title        string
	EpisodeLabel string
	Basis        string
	Language     string
	Status       Status
	ErrorKind    string
	ErrorText    string
	Elapsed      time.Duration
	Timestamp    time.Time
}

// SubjectName returns the filename a rename row is about: the subtitle
// when one is involved, otherwise the video left without one.
func (r Record) SubjectName() string {
	if r.SubtitleName != "" {
		return r.SubtitleName
	}
	return r.VideoName
}

// Summary aggregates records for the console footer.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Unmatched int
	Conflicts int
}

// Summarize tallies record outcomes.
func Summarize(records []Record) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case StatusRenamed, StatusEmbedded:
			s.Succeeded++
		case StatusFailed:
			s.Failed++
		case StatusUnmatched:
			s.Unmatched++
		case StatusConflict:
			s.Conflicts++
		}
	}
	return s
}

// FromRename converts an executed rename into a record.
func FromRename(action rename.Action) Record {
	rec := Record{
		VideoName:    action.Video.Name,
		SubtitleName: action.OldName,
		NewName:      action.NewName,
		Title:        matcher.DisplayTitle(action.Video.Name),
		Status:       StatusRenamed,
		Timestamp:    time.Now(),
	}
	return rec
}

// FromTransaction converts a merge-transaction outcome into a record.
func FromTransaction(result mergetx.Result) Record {
	rec := Record{
		VideoName:    result.Pair.Video.Name,
		SubtitleName: result.Pair.Subtitle.Name,
		Title:        matcher.DisplayTitle(result.Pair.Video.Name),
		Basis:        string(result.Pair.Basis),
		Language:     result.Language,
		Elapsed:      result.Elapsed,
		Timestamp:    time.Now(),
	}
	if result.Pair.HasIdentifier {
		rec.EpisodeLabel = result.Pair.Identifier.Label()
	}
	if result.Committed() {
		rec.Status = StatusEmbedded
		rec.NewName = result.Pair.Video.Name
	} else {
		rec.Status = StatusFailed
		rec.ErrorKind = result.ErrorKind
		if result.Err != nil {
			rec.ErrorText = result.Err.Error()
		}
	}
	return rec
}

// ApplyPair copies pair context into a rename record.
func ApplyPair(rec Record, pair matcher.Pair) Record {
	rec.Basis = string(pair.Basis)
	if pair.HasIdentifier {
		rec.EpisodeLabel = pair.Identifier.Label()
	}
	return rec
}

// UnmatchedVideo builds a record for a video no subtitle claimed.
func UnmatchedVideo(name string) Record {
	return Record{VideoName: name, Status: StatusUnmatched, Timestamp: time.Now()}
}

// UnmatchedSubtitle builds a record for a subtitle with no video.
func UnmatchedSubtitle(name string) Record {
	return Record{SubtitleName: name, Status: StatusUnmatched, Timestamp: time.Now()}
}

// FromConflict builds a diagnostic record for a collision or duplicate.
func FromConflict(c matcher.Conflict) Record {
	rec := Record{
		EpisodeLabel: c.Identifier.Label(),
		Status:       StatusConflict,
		ErrorKind:    string(c.Kind),
		Timestamp:    time.Now(),
	}
	switch c.Kind {
	case matcher.ConflictVideoCollision:
		rec.VideoName = c.Loser.Name
		rec.ErrorText = fmt.Sprintf("identifier already claimed by %s", c.Winner.Name)
	default:
		rec.SubtitleName = c.Loser.Name
		rec.VideoName = c.Winner.Name
		rec.ErrorText = "another subtitle already matched " + c.Winner.Name
	}
	return rec
}

// FailedRename builds a record for a rename that hit a filesystem error.
func FailedRename(action rename.Action, err error) Record {
	return Record{
		VideoName:    action.Video.Name,
		SubtitleName: action.OldName,
		Title:        matcher.DisplayTitle(action.Video.Name),
		Status:       StatusFailed,
		ErrorKind:    services.Kind(err),
		ErrorText:    err.Error(),
		Timestamp:    time.Now(),
	}
}

// FormatElapsed renders a duration the way operators read it: seconds
// under a minute, minutes and seconds above.
func FormatElapsed(d time.Duration) string {
	seconds := d.Seconds()
	if seconds < 60 {
		return fmt.Sprintf("%.2fs", seconds)
	}
	minutes := int(seconds) / 60
	return fmt.Sprintf("%dm %.1fs", minutes, seconds-float64(minutes*60))
}
