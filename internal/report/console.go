package report

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// RenderRenameTable renders rename records for the console.
func RenderRenameTable(records []Record) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.SubjectName(),
			r.NewName,
			orNA(r.EpisodeLabel),
			string(r.Status),
		})
	}
	return renderTable(
		[]string{"File", "New Name", "Episode", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
	)
}

// RenderEmbedTable renders embed records for the console.
func RenderEmbedTable(records []Record) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		detail := r.ErrorKind
		if detail == "" {
			detail = FormatElapsed(r.Elapsed)
		}
		rows = append(rows, []string{
			r.SubtitleName,
			r.VideoName,
			orNA(r.EpisodeLabel),
			orNA(r.Language),
			string(r.Status),
			detail,
		})
	}
	return renderTable(
		[]string{"Subtitle", "Video", "Episode", "Language", "Status", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	)
}

// RenderSummary renders the run footer.
func RenderSummary(s Summary) string {
	rows := [][]string{
		{"Processed", fmt.Sprintf("%d", s.Total)},
		{"Succeeded", fmt.Sprintf("%d", s.Succeeded)},
		{"Failed", fmt.Sprintf("%d", s.Failed)},
		{"Unmatched", fmt.Sprintf("%d", s.Unmatched)},
		{"Conflicts", fmt.Sprintf("%d", s.Conflicts)},
	}
	return renderTable(
		[]string{"Metric", "Count"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	)
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
