// Package tablefmt renders dataset tables for terminals and files.
package tablefmt

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	FormatTable    = "table"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// Missing is how an absent value is printed.
const Missing = "NA"

// Render writes columns and rows to w in the given format.
func Render(w io.Writer, format string, columns []string, rows [][]string) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	t.AppendHeader(header)

	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, c := range r {
			row[i] = c
		}
		t.AppendRow(row)
	}

	switch format {
	case FormatTable, "":
		t.Render()
	case FormatCSV:
		t.RenderCSV()
	case FormatMarkdown:
		t.RenderMarkdown()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}
