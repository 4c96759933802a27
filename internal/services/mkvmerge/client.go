package mkvmerge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"subfast/internal/logging"
	"subfast/internal/services"
)

// DefaultCommand is the binary probed when no explicit path is configured.
const DefaultCommand = "mkvmerge"

// Timeout bounds, in seconds. Small inputs get a five minute floor,
// large ones scale up to a thirty minute ceiling.
const (
	timeoutFloorSeconds   = 300
	timeoutCeilingSeconds = 1800
	timeoutPerGiBSeconds  = 120
)

// commandRunner executes the merge tool. Tests inject their own.
type commandRunner func(ctx context.Context, name string, args ...string) error

// Request describes one merge invocation: embed a subtitle file as a
// soft track in a video container, writing to a separate output path.
type Request struct {
	VideoPath    string
	SubtitlePath string
	OutputPath   string
	// LanguageCode is the ISO 639-2 track language. Empty leaves the
	// track untagged.
	LanguageCode string
	DefaultTrack bool
	// InputBytes is the combined size of video and subtitle, used to
	// scale the invocation timeout.
	InputBytes int64
}

// Client invokes mkvmerge to embed subtitle tracks.
type Client struct {
	binary string
	run    commandRunner
	logger *slog.Logger
}

// NewClient constructs a merge client for the given binary path.
func NewClient(binary string, logger *slog.Logger) *Client {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultCommand
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		binary: binary,
		run:    defaultCommandRunner,
		logger: logging.NewComponentLogger(logger, "mkvmerge"),
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (c *Client) WithCommandRunner(r commandRunner) {
	if c != nil && r != nil {
		c.run = r
	}
}

// Merge runs the merge tool, producing req.OutputPath. On failure the
// output file is removed; the inputs are never touched. The invocation
// is bounded by Timeout(req.InputBytes).
func (c *Client) Merge(ctx context.Context, req Request) error {
	if strings.TrimSpace(req.VideoPath) == "" {
		return services.Wrap(services.ErrValidation, "merge", "invoke", "video path is required", nil)
	}
	if strings.TrimSpace(req.SubtitlePath) == "" {
		return services.Wrap(services.ErrValidation, "merge", "invoke", "subtitle path is required", nil)
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return services.Wrap(services.ErrValidation, "merge", "invoke", "output path is required", nil)
	}

	timeout := Timeout(req.InputBytes)
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := buildArgs(req)
	c.logger.Debug("executing merge tool",
		logging.String("video", req.VideoPath),
		logging.String("subtitle", req.SubtitlePath),
		logging.String("language", req.LanguageCode),
		logging.Duration("timeout", timeout),
	)

	if err := c.run(runCtx, c.binary, args...); err != nil {
		_ = os.Remove(req.OutputPath)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return services.Wrap(services.ErrMergeTimeout, "merge", "invoke",
				fmt.Sprintf("exceeded %s", timeout), err)
		}
		return services.Wrap(services.ErrMergeTool, "merge", "invoke", req.VideoPath, err)
	}

	if _, err := os.Stat(req.OutputPath); err != nil {
		return services.Wrap(services.ErrMergeTool, "merge", "invoke", "tool produced no output", err)
	}
	return nil
}

// Timeout scales the merge deadline with the combined input size.
func Timeout(inputBytes int64) time.Duration {
	const gib = 1 << 30
	sizeGiB := float64(inputBytes) / float64(gib)
	seconds := timeoutFloorSeconds + timeoutPerGiBSeconds*sizeGiB
	if seconds < timeoutFloorSeconds {
		seconds = timeoutFloorSeconds
	}
	if seconds > timeoutCeilingSeconds {
		seconds = timeoutCeilingSeconds
	}
	return time.Duration(seconds * float64(time.Second))
}

// buildArgs constructs the mkvmerge argument list. The video keeps all
// of its tracks; the subtitle is appended as one new track.
func buildArgs(req Request) []string {
	args := []string{"-o", req.OutputPath, req.VideoPath}
	if req.LanguageCode != "" {
		args = append(args, "--language", "0:"+req.LanguageCode)
	}
	if req.DefaultTrack {
		args = append(args, "--default-track", "0:yes")
	} else {
		args = append(args, "--default-track", "0:no")
	}
	args = append(args, req.SubtitlePath)
	return args
}

// defaultCommandRunner executes the merge tool and folds its output
// into the returned error for diagnostics.
func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ctxErr, err)
		}
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
