package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"subfast/internal/guard"
	"subfast/internal/logging"
	"subfast/internal/matcher"
	"subfast/internal/media"
	"subfast/internal/mergetx"
	"subfast/internal/pattern"
	"subfast/internal/report"
	"subfast/internal/services"
	"subfast/internal/services/mkvmerge"
)

func newEmbedCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embed [directory]",
		Short: "Embed matched subtitles into their MKV videos",
		Long: "Embed runs each matched pair through a rollback-safe merge " +
			"transaction: the merge tool writes to a temporary file, the " +
			"originals move into a backups directory, and the merged video " +
			"takes the original's name. A failure at any step leaves the " +
			"directory exactly as it was.",
		Args: cobra.MaximumNArgs(1),
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

			videos, subtitles, err := media.Scan(dir, cfg.General.VideoExtensions, cfg.General.SubtitleExtensions)
			if err != nil {
				return err
			}

			// Only MKV containers accept the soft-track merge.
			mkvVideos := videos[:0:0]
			for _, v := range videos {
				if v.Extension == "mkv" {
					mkvVideos = append(mkvVideos, v)
				}
			}
			if skipped := len(videos) - len(mkvVideos); skipped > 0 {
				logger.Info("skipping non-MKV videos", logging.Int("count", skipped))
			}

			out := cmd.OutOrStdout()
			if len(mkvVideos) == 0 || len(subtitles) == 0 {
				fmt.Fprintln(out, "Nothing to embed: need at least one MKV video and one subtitle.")
				holdConsole(cfg)
				return nil
			}

			m := matcher.New(pattern.NewExtractor(), matcher.Options{
				StrictMovieMatch: cfg.Embedding.StrictMovieMatch,
			}, logger)
			result := m.Match(mkvVideos, subtitles)
			if len(result.Matched) == 0 {
				fmt.Fprintln(out, "No video/subtitle pairs found.")
				holdConsole(cfg)
				return nil
			}

			g := guard.New(logger)
			client := mkvmerge.NewClient(cfg.Embedding.MkvmergePath, logger)
			manager := mergetx.NewManager(g, client, mergetx.Options{
				ToolCommand:  toolCommand(cfg.Embedding.MkvmergePath),
				LanguageCode: cfg.Embedding.LanguageCode,
				DefaultTrack: cfg.Embedding.DefaultTrack,
			}, logger)

			batch, runErr := manager.Run(cmd.Context(), dir, result.Matched)

			records := make([]report.Record, 0, len(batch.Results))
			for _, txResult := range batch.Results {
				records = append(records, report.FromTransaction(txResult))
			}
			for _, video := range result.UnmatchedVideos {
				records = append(records, report.UnmatchedVideo(video.Name))
			}
			for _, sub := range result.UnmatchedSubtitles {
				records = append(records, report.UnmatchedSubtitle(sub.Name))
			}
			for _, conflict := range result.Conflicts {
				records = append(records, report.FromConflict(conflict))
			}

			fmt.Fprintln(out, report.RenderEmbedTable(records))
			fmt.Fprintln(out, report.RenderSummary(report.Summarize(records)))

			if cfg.Embedding.Report {
				csvPath := filepath.Join(dir, report.EmbedReportFile)
				if err := report.WriteEmbedCSV(csvPath, records); err != nil {
					logger.Warn("csv export failed", logging.Error(err))
				} else {
					fmt.Fprintf(out, "Report written to %s\n", csvPath)
				}
			}

			holdConsole(cfg)

			if runErr != nil && services.Fatal(runErr) {
				return runErr
			}
			switch {
			case runErr != nil:
				return runErr
			case batch.AllFailed():
				return &exitCodeError{code: exitCompleteFailure, message: "all merge transactions failed"}
			case batch.Failed > 0:
				return &exitCodeError{
					code:    exitPartialFailure,
					message: fmt.Sprintf("%d of %d merge transactions failed", batch.Failed, len(batch.Results)),
				}
			default:
				return nil
			}
		},
	}
	return cmd
}

func toolCommand(configured string) string {
	if configured != "" {
		return configured
	}
	return mkvmerge.DefaultCommand
}
