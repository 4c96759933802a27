package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDependencyMissing means the merge tool is absent. Fatal for the run:
	// no pair can proceed without it.
	ErrDependencyMissing = errors.New("dependency missing")
	// ErrInsufficientSpace means the target volume cannot hold the merged
	// output. Per-pair: the pair is skipped and the batch continues.
	ErrInsufficientSpace = errors.New("insufficient space")
	// ErrMergeTool means the merge tool exited non-zero. Per-pair.
	ErrMergeTool = errors.New("merge tool failure")
	// ErrMergeTimeout means the merge tool exceeded its deadline. Per-pair,
	// treated like ErrMergeTool.
	ErrMergeTimeout = errors.New("merge timeout")
	// ErrFileSystem covers permission or lock issues during backup or rename.
	// Per-pair; pre-transaction state is preserved.
	ErrFileSystem = errors.New("filesystem error")
	// ErrValidation marks invalid inputs to an operation.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration. Fatal for the run.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes workflow context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether the error invalidates the whole batch rather than a
// single pair.
func Fatal(err error) bool {
	return errors.Is(err, ErrDependencyMissing) || errors.Is(err, ErrConfiguration)
}

// Kind returns a stable name for the error's classification, for report
// records and structured logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDependencyMissing):
		return "DependencyMissing"
	case errors.Is(err, ErrInsufficientSpace):
		return "InsufficientSpace"
	case errors.Is(err, ErrMergeTimeout):
		return "MergeTimeout"
	case errors.Is(err, ErrMergeTool):
		return "MergeToolFailure"
	case errors.Is(err, ErrFileSystem):
		return "FileSystemError"
	case errors.Is(err, ErrConfiguration):
		return "ConfigurationError"
	default:
		return "ValidationError"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
