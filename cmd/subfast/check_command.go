package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"subfast/internal/guard"
	"subfast/internal/services"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [directory]",
		Short: "Verify the merge tool and free space before an embed run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			dir, err := workingDirectory(args)
			if err != nil {
				return err
			}

			g := guard.New(logger)
			rows := make([][]string, 0, 4)

			tool, toolErr := g.MergeTool(cmd.Context(), toolCommand(cfg.Embedding.MkvmergePath))
			if toolErr != nil {
				rows = append(rows, []string{"merge tool", "missing", toolErr.Error()})
			} else {
				rows = append(rows, []string{"merge tool", "ok", tool.Path})
				rows = append(rows, []string{"version", "ok", tool.Version})
			}

			free, spaceErr := g.FreeSpace(dir)
			if spaceErr != nil {
				rows = append(rows, []string{"free space", "error", spaceErr.Error()})
			} else {
				rows = append(rows, []string{"free space", "ok", fmt.Sprintf("%.1f GiB", float64(free)/float64(1<<30))})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderCheckTable(rows))

			if toolErr != nil && errors.Is(toolErr, services.ErrDependencyMissing) {
				return errors.New("merge tool is not available")
			}
			return spaceErr
		},
	}
}
