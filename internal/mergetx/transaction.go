package mergetx

import (
	"time"

	"subfast/internal/matcher"
)

// State is the lifecycle position of one merge transaction.
type State string

const (
	StateInit       State = "init"
	StateValidated  State = "validated"
	StateMerged     State = "merged"
	StateBackedUp   State = "backed-up"
	StateCommitted  State = "committed"
	StateFailed     State = "failed"
	StateRolledBack State = "rolled-back"
)

// Terminal reports whether the transaction can no longer progress.
func (s State) Terminal() bool {
	return s == StateCommitted || s == StateRolledBack
}

// BackupDirName is the per-directory destination for original files,
// created once and reused across runs.
const BackupDirName = "backups"

// tempSuffix marks the in-progress merge output colocated with the
// source video.
const tempSuffix = ".embedded.mkv"

// Options configures an embed run.
type Options struct {
	// ToolCommand is the merge binary name or path to probe.
	ToolCommand string
	// LanguageCode is the configured fallback track language, any
	// recognized form. The subtitle filename takes precedence.
	LanguageCode string
	DefaultTrack bool
}

// Result is the outcome of one transaction.
type Result struct {
	TransactionID string
	Pair          matcher.Pair
	State         State
	// FinalPath is the committed video path. Empty unless committed.
	FinalPath string
	// Language is the ISO 639-2 code applied to the track, empty when
	// the track was left untagged.
	Language  string
	BackupDir string
	Elapsed   time.Duration
	Err       error
	ErrorKind string
}

// Committed reports whether the transaction reached the terminal
// success state.
func (r Result) Committed() bool {
	return r.State == StateCommitted
}

// BatchResult summarizes a sequential embed run over matched pairs.
type BatchResult struct {
	RunID     string
	Results   []Result
	Succeeded int
	Failed    int
}

// AllFailed reports whether every attempted pair failed.
func (b BatchResult) AllFailed() bool {
	return len(b.Results) > 0 && b.Succeeded == 0
}
