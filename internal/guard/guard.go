package guard

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/sys/unix"

	"subfast/internal/logging"
	"subfast/internal/services"
)

// spaceHeadroom pads the required free space: the merged output is
// roughly the input sizes combined, plus container overhead.
const spaceHeadroom = 1.1

// statfsFunc allows tests to stub filesystem stats.
type statfsFunc func(path string) (total uint64, free uint64, err error)

// lookPathFunc allows tests to stub binary resolution.
type lookPathFunc func(file string) (string, error)

// versionFunc allows tests to stub the tool version probe.
type versionFunc func(ctx context.Context, path string) (string, error)

// Tool describes a resolved merge-tool binary.
type Tool struct {
	Path    string
	Version string
}

// Guard performs preflight checks before a merge transaction runs:
// merge-tool presence and free space on the volume hosting a path.
// Tool probe results are cached for the lifetime of the Guard, which
// callers scope to one batch run.
type Guard struct {
	statfs   statfsFunc
	lookPath lookPathFunc
	version  versionFunc
	logger   *slog.Logger

	mu    sync.Mutex
	tools map[string]toolProbe
}

type toolProbe struct {
	tool Tool
	err  error
}

// Option adjusts a Guard, primarily so tests can stub the probes.
type Option func(*Guard)

// WithStatfs overrides filesystem stat collection.
func WithStatfs(fn func(path string) (total, free uint64, err error)) Option {
	return func(g *Guard) {
		if fn != nil {
			g.statfs = fn
		}
	}
}

// WithLookPath overrides binary resolution.
func WithLookPath(fn func(file string) (string, error)) Option {
	return func(g *Guard) {
		if fn != nil {
			g.lookPath = fn
		}
	}
}

// WithVersionProbe overrides the tool version probe.
func WithVersionProbe(fn func(ctx context.Context, path string) (string, error)) Option {
	return func(g *Guard) {
		if fn != nil {
			g.version = fn
		}
	}
}

func New(logger *slog.Logger, opts ...Option) *Guard {
	if logger == nil {
		logger = logging.NewNop()
	}
	g := &Guard{
		statfs:   realStatfs,
		lookPath: exec.LookPath,
		version:  probeVersion,
		logger:   logging.NewComponentLogger(logger, "guard"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// MergeTool resolves the merge-tool binary and captures its version
// line. The result, success or failure, is cached so a batch checks
// the tool at most once per command.
func (g *Guard) MergeTool(ctx context.Context, command string) (Tool, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		command = "mkvmerge"
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.tools == nil {
		g.tools = make(map[string]toolProbe)
	}
	if probe, ok := g.tools[command]; ok {
		return probe.tool, probe.err
	}

	probe := g.probeTool(ctx, command)
	g.tools[command] = probe
	return probe.tool, probe.err
}

func (g *Guard) probeTool(ctx context.Context, command string) toolProbe {
	path, err := g.lookPath(command)
	if err != nil {
		return toolProbe{err: services.Wrap(services.ErrDependencyMissing, "guard", "merge-tool", "binary "+command+" not found", err)}
	}
	version, err := g.version(ctx, path)
	if err != nil {
		return toolProbe{err: services.Wrap(services.ErrDependencyMissing, "guard", "merge-tool", "binary "+path+" not executable", err)}
	}
	g.logger.Debug("merge tool resolved",
		logging.String("path", path),
		logging.String("version", version))
	return toolProbe{tool: Tool{Path: path, Version: version}}
}

// FreeSpace returns the free bytes on the volume hosting path.
func (g *Guard) FreeSpace(path string) (uint64, error) {
	_, free, err := g.statfs(path)
	if err != nil {
		return 0, services.Wrap(services.ErrFileSystem, "guard", "statfs", path, err)
	}
	return free, nil
}

// CheckSpace verifies the volume hosting path has room for the merged
// output of the given combined input size.
func (g *Guard) CheckSpace(path string, inputBytes int64) error {
	free, err := g.FreeSpace(path)
	if err != nil {
		return err
	}
	required := RequiredSpace(inputBytes)
	if free < required {
		return services.Wrap(services.ErrInsufficientSpace, "guard", "space",
			formatSpace(required, free), nil)
	}
	return nil
}

// RequiredSpace applies the headroom factor to a combined input size.
func RequiredSpace(inputBytes int64) uint64 {
	if inputBytes <= 0 {
		return 0
	}
	return uint64(float64(inputBytes) * spaceHeadroom)
}

func formatSpace(required, free uint64) string {
	const mib = 1024 * 1024
	return fmt.Sprintf("need %d MiB, have %d MiB", required/mib, free/mib)
}

func probeVersion(ctx context.Context, path string) (string, error) {
	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(string(out))
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	return line, nil
}

func realStatfs(path string) (uint64, uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0, err
	}
	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bavail * uint64(stat.Bsize)
	return total, free, nil
}
