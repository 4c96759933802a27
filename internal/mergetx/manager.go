package mergetx

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"subfast/internal/guard"
	"subfast/internal/language"
	"subfast/internal/logging"
	"subfast/internal/matcher"
	"subfast/internal/services"
	"subfast/internal/services/mkvmerge"
)

// merger abstracts the external merge tool so tests can inject
// failures without a binary present.
type merger interface {
	Merge(ctx context.Context, req mkvmerge.Request) error
}

// Manager drives merge transactions through their state machine. One
// Manager serves one batch run; the guard caches its tool probe across
// every pair.
type Manager struct {
	guard  *guard.Guard
	merge  merger
	opts   Options
	logger *slog.Logger
}

func NewManager(g *guard.Guard, merge merger, opts Options, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	if g == nil {
		g = guard.New(logger)
	}
	return &Manager{
		guard:  g,
		merge:  merge,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "mergetx"),
	}
}

// Execute runs one pair through validate, merge, back-up, and commit.
// Any failure rolls the working directory back to its pre-transaction
// contents: the original video and subtitle stay in place and no
// partial output survives.
func (m *Manager) Execute(ctx context.Context, pair matcher.Pair) Result {
	started := time.Now()
	result := Result{
		TransactionID: uuid.New().String(),
		Pair:          pair,
		State:         StateInit,
	}
	logger := m.logger.With(logging.String(logging.FieldTransactionID, result.TransactionID))

	video := pair.Video
	subtitle := pair.Subtitle
	dir := filepath.Dir(video.Path)
	tempPath := filepath.Join(dir, video.Stem()+tempSuffix)

	fail := func(err error) Result {
		result.Err = err
		result.ErrorKind = services.Kind(err)
		result.State = StateFailed
		if removeErr := removeIfPresent(tempPath); removeErr != nil {
			logger.Warn("temp cleanup failed",
				logging.Error(removeErr),
				logging.String("temp", tempPath))
		} else {
			result.State = StateRolledBack
		}
		result.Elapsed = time.Since(started)
		logger.Warn("transaction failed",
			logging.Error(err),
			logging.String("video", video.Name),
			logging.String("subtitle", subtitle.Name),
			logging.String("error_kind", result.ErrorKind))
		return result
	}

	// Validate: tool present, container supported, room for the output.
	if !strings.EqualFold(video.Extension, "mkv") {
		return fail(services.Wrap(services.ErrValidation, "transaction", "validate",
			"embedding requires an MKV container: "+video.Name, nil))
	}
	tool, err := m.guard.MergeTool(ctx, m.opts.ToolCommand)
	if err != nil {
		return fail(err)
	}
	inputBytes := video.SizeBytes + subtitle.SizeBytes
	if err := m.guard.CheckSpace(dir, inputBytes); err != nil {
		return fail(err)
	}
	result.State = StateValidated

	result.Language = language.Resolve(subtitle.Name, m.opts.LanguageCode)

	// Merge to a colocated temporary so the source is never touched.
	err = m.merge.Merge(ctx, mkvmerge.Request{
		VideoPath:    video.Path,
		SubtitlePath: subtitle.Path,
		OutputPath:   tempPath,
		LanguageCode: result.Language,
		DefaultTrack: m.opts.DefaultTrack,
		InputBytes:   inputBytes,
	})
	if err != nil {
		return fail(err)
	}
	result.State = StateMerged

	// Back up: move both originals aside. Stale backups from earlier
	// runs are replaced so re-runs do not error.
	backupDir := filepath.Join(dir, BackupDirName)
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return fail(services.Wrap(services.ErrFileSystem, "transaction", "backup", backupDir, err))
	}
	result.BackupDir = backupDir

	videoBackup := filepath.Join(backupDir, video.Name)
	if err := moveReplacing(video.Path, videoBackup); err != nil {
		return fail(services.Wrap(services.ErrFileSystem, "transaction", "backup", video.Name, err))
	}
	subtitleBackup := filepath.Join(backupDir, subtitle.Name)
	if err := moveReplacing(subtitle.Path, subtitleBackup); err != nil {
		if restoreErr := os.Rename(videoBackup, video.Path); restoreErr != nil {
			logger.Error("video restore failed after backup error",
				logging.Error(restoreErr),
				logging.String("backup", videoBackup))
		}
		return fail(services.Wrap(services.ErrFileSystem, "transaction", "backup", subtitle.Name, err))
	}
	result.State = StateBackedUp

	// Commit: same-volume rename, effectively atomic.
	if err := os.Rename(tempPath, video.Path); err != nil {
		if restoreErr := os.Rename(videoBackup, video.Path); restoreErr != nil {
			logger.Error("video restore failed after commit error",
				logging.Error(restoreErr),
				logging.String("backup", videoBackup))
		}
		if restoreErr := os.Rename(subtitleBackup, subtitle.Path); restoreErr != nil {
			logger.Error("subtitle restore failed after commit error",
				logging.Error(restoreErr),
				logging.String("backup", subtitleBackup))
		}
		return fail(services.Wrap(services.ErrFileSystem, "transaction", "commit", video.Name, err))
	}

	result.State = StateCommitted
	result.FinalPath = video.Path
	result.Elapsed = time.Since(started)
	logger.Info("transaction committed",
		logging.String("video", video.Name),
		logging.String("subtitle", subtitle.Name),
		logging.String("language", result.Language),
		logging.Duration("elapsed", result.Elapsed),
		logging.String("tool", tool.Path))
	return result
}

func moveReplacing(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		if err := os.Remove(dst); err != nil {
			return err
		}
	}
	return os.Rename(src, dst)
}

func removeIfPresent(path string) error {
	err := os.Remove(path)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return err
}
