package report

import (
	"encoding/csv"
	"os"
	"time"

	"subfast/internal/services"
)

// WriteRenameCSV exports rename records in the long-standing report
// layout so existing spreadsheets keep working.
func WriteRenameCSV(path string, records []Record) error {
	return writeCSV(path, []string{
		"Original Filename", "New Filename", "Status", "Episode", "Timestamp",
	}, records, func(r Record) []string {
		return []string{
			r.SubjectName(),
			r.NewName,
			string(r.Status),
			orNA(r.EpisodeLabel),
			r.Timestamp.Format(time.RFC3339),
		}
	})
}

// WriteEmbedCSV exports embed records with per-pair timing and errors.
func WriteEmbedCSV(path string, records []Record) error {
	return writeCSV(path, []string{
		"Original Video", "Original Subtitle", "Language Code", "Status",
		"Error Message", "Timestamp", "Execution Time (s)",
	}, records, func(r Record) []string {
		return []string{
			r.VideoName,
			r.SubtitleName,
			orNA(r.Language),
			string(r.Status),
			r.ErrorText,
			r.Timestamp.Format(time.RFC3339),
			FormatElapsed(r.Elapsed),
		}
	})
}

func writeCSV(path string, header []string, records []Record, row func(Record) []string) error {
	if len(records) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return services.Wrap(services.ErrFileSystem, "report", "csv", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return services.Wrap(services.ErrFileSystem, "report", "csv", path, err)
	}
	for _, rec := range records {
		if err := w.Write(row(rec)); err != nil {
			return services.Wrap(services.ErrFileSystem, "report", "csv", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return services.Wrap(services.ErrFileSystem, "report", "csv", path, err)
	}
	return nil
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
