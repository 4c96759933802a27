package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"subfast/internal/logging"
	"subfast/internal/matcher"
	"subfast/internal/media"
	"subfast/internal/pattern"
	"subfast/internal/rename"
	"subfast/internal/report"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var suffixFlag string

	cmd := &cobra.Command{
		Use:   "rename [directory]",
		Short: "Rename subtitles to match their videos",
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

			suffix := cfg.Renaming.LanguageSuffix
			if cmd.Flags().Changed("suffix") {
				suffix = suffixFlag
			}

			videos, subtitles, err := media.Scan(dir, cfg.General.VideoExtensions, cfg.General.SubtitleExtensions)
			if err != nil {
				return err
			}
			logger.Info("scan complete",
				logging.String("directory", dir),
				logging.Int("videos", len(videos)),
				logging.Int("subtitles", len(subtitles)))

			out := cmd.OutOrStdout()
			if len(videos) == 0 || len(subtitles) == 0 {
				fmt.Fprintln(out, "Nothing to rename: need at least one video and one subtitle.")
				holdConsole(cfg)
				return nil
			}

			m := matcher.New(pattern.NewExtractor(), matcher.Options{}, logger)
			result := m.Match(videos, subtitles)

			renamer := rename.New(suffix, logger)
			records := make([]report.Record, 0, len(result.Matched))
			for _, pair := range result.Matched {
				action, err := renamer.Rename(pair)
				if err != nil {
					records = append(records, report.ApplyPair(report.FailedRename(action, err), pair))
					continue
				}
				records = append(records, report.ApplyPair(report.FromRename(action), pair))
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

			fmt.Fprintln(out, report.RenderRenameTable(records))
			fmt.Fprintln(out, report.RenderSummary(report.Summarize(records)))

			if cfg.Renaming.Report {
				csvPath := filepath.Join(dir, report.RenameReportFile)
				if err := report.WriteRenameCSV(csvPath, records); err != nil {
					logger.Warn("csv export failed", logging.Error(err))
				} else {
					fmt.Fprintf(out, "Report written to %s\n", csvPath)
				}
			}

			holdConsole(cfg)
			return nil
		},
	}

	cmd.Flags().StringVar(&suffixFlag, "suffix", "", "Language suffix inserted before the subtitle extension")
	return cmd
}
