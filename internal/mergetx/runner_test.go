package mergetx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"subfast/internal/guard"
	"subfast/internal/matcher"
	"subfast/internal/services"
	"subfast/internal/services/mkvmerge"
)

func TestRunContinuesAfterPairFailure(t *testing.T) {
	dir := t.TempDir()
	first := writePair(t, dir, "Show.S01E01.mkv", "Show.S01E01.srt")
	second := writePair(t, dir, "Show.S01E02.mkv", "Show.S01E02.srt")

	merge := &fakeMerger{fn: func(ctx context.Context, req mkvmerge.Request) error {
		if filepath.Base(req.VideoPath) == "Show.S01E01.mkv" {
			return services.Wrap(services.ErrMergeTool, "merge", "invoke", "exit status 2", nil)
		}
		return os.WriteFile(req.OutputPath, []byte("merged"), 0o644)
	}}

	m := NewManager(testGuard(t), merge, Options{}, nil)
	batch, err := m.Run(context.Background(), dir, []matcher.Pair{first, second})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if batch.RunID == "" {
		t.Error("missing run id")
	}
	if batch.Succeeded != 1 || batch.Failed != 1 {
		t.Errorf("succeeded=%d failed=%d", batch.Succeeded, batch.Failed)
	}
	if len(batch.Results) != 2 {
		t.Fatalf("results = %d", len(batch.Results))
	}
	if batch.Results[0].Committed() {
		t.Error("first pair should have failed")
	}
	if !batch.Results[1].Committed() {
		t.Errorf("second pair should have committed: %v", batch.Results[1].Err)
	}
}

func TestRunMissingToolAborts(t *testing.T) {
	dir := t.TempDir()
	first := writePair(t, dir, "Show.S01E01.mkv", "Show.S01E01.srt")
	second := writePair(t, dir, "Show.S01E02.mkv", "Show.S01E02.srt")

	g := guard.New(nil,
		guard.WithStatfs(func(string) (uint64, uint64, error) {
			return 100 << 30, 50 << 30, nil
		}),
		guard.WithLookPath(func(string) (string, error) {
			return "", errors.New("not found")
		}),
	)
	merge := &fakeMerger{fn: func(context.Context, mkvmerge.Request) error {
		return nil
	}}

	m := NewManager(g, merge, Options{}, nil)
	batch, err := m.Run(context.Background(), dir, []matcher.Pair{first, second})
	if !errors.Is(err, services.ErrDependencyMissing) {
		t.Fatalf("expected dependency-missing error, got %v", err)
	}
	if len(batch.Results) != 1 {
		t.Errorf("expected run to stop after first pair, got %d results", len(batch.Results))
	}
	if merge.calls != 0 {
		t.Error("merge tool should never run when the binary is missing")
	}
}

func TestRunRefusesLockedDirectory(t *testing.T) {
	dir := t.TempDir()
	pair := writePair(t, dir, "Show.S01E01.mkv", "Show.S01E01.srt")

	other := flock.New(filepath.Join(dir, lockFileName))
	locked, err := other.TryLock()
	if err != nil || !locked {
		t.Fatalf("setup lock: locked=%v err=%v", locked, err)
	}
	defer func() {
		_ = other.Unlock()
	}()

	merge := &fakeMerger{fn: func(context.Context, mkvmerge.Request) error {
		return nil
	}}
	m := NewManager(testGuard(t), merge, Options{}, nil)
	_, err = m.Run(context.Background(), dir, []matcher.Pair{pair})
	if !errors.Is(err, services.ErrFileSystem) {
		t.Fatalf("expected filesystem error, got %v", err)
	}
}

func TestRunEmptyPairList(t *testing.T) {
	m := NewManager(testGuard(t), &fakeMerger{fn: func(context.Context, mkvmerge.Request) error {
		return nil
	}}, Options{}, nil)
	batch, err := m.Run(context.Background(), t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(batch.Results) != 0 {
		t.Errorf("results = %d", len(batch.Results))
	}
}
