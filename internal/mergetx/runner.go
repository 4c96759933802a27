package mergetx

import (
	"context"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"subfast/internal/logging"
	"subfast/internal/matcher"
	"subfast/internal/services"
)

// lockFileName guards a working directory against overlapping embed
// runs. Transactions move files around; two concurrent runs over the
// same directory would corrupt each other's backups.
const lockFileName = ".subfast.lock"

// Run executes the matched pairs sequentially. Per-pair failures are
// recovered and the batch continues; a missing merge tool aborts the
// remainder since no pair can succeed without it.
func (m *Manager) Run(ctx context.Context, dir string, pairs []matcher.Pair) (BatchResult, error) {
	batch := BatchResult{RunID: uuid.New().String()}
	if len(pairs) == 0 {
		return batch, nil
	}

	lock := flock.New(filepath.Join(dir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return batch, services.Wrap(services.ErrFileSystem, "batch", "lock", dir, err)
	}
	if !locked {
		return batch, services.Wrap(services.ErrFileSystem, "batch", "lock",
			"another run is already processing "+dir, nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	logger := m.logger.With(logging.String(logging.FieldRunID, batch.RunID))
	logger.Info("embed run started",
		logging.String("directory", dir),
		logging.Int("pairs", len(pairs)))

	for _, pair := range pairs {
		result := m.Execute(ctx, pair)
		batch.Results = append(batch.Results, result)
		if result.Committed() {
			batch.Succeeded++
		} else {
			batch.Failed++
		}
		if !result.State.Terminal() {
			logger.Warn("transaction did not settle cleanly",
				logging.String(logging.FieldTransactionID, result.TransactionID),
				logging.String("state", string(result.State)))
		}
		if result.Err != nil && services.Fatal(result.Err) {
			logger.Error("aborting run", logging.Error(result.Err))
			return batch, result.Err
		}
		if err := ctx.Err(); err != nil {
			return batch, services.Wrap(services.ErrValidation, "batch", "run", "canceled", err)
		}
	}

	logger.Info("embed run finished",
		logging.Int("succeeded", batch.Succeeded),
		logging.Int("failed", batch.Failed))
	return batch, nil
}
