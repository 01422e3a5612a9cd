// Package render converts batch report rows into human-readable or
// machine-parseable output. Each format is a separate function; the top-level
// Render dispatcher selects based on the format string.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/coastwatch/seawindow/internal/report"
)

// Format constants matching --format flag values.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Render writes rows to w in the specified format.
func Render(w io.Writer, rows []report.Row, format string) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, rows)
	case FormatCSV:
		return renderCSV(w, rows)
	case FormatTable, "":
		return renderTable(w, rows)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderJSON(w io.Writer, rows []report.Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func renderCSV(w io.Writer, rows []report.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"slug", "label", "family", "expert"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Slug, r.Label, r.Family, r.Expert}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderTable(w io.Writer, rows []report.Row) error {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"SPOT", "FAMILY", "EXPERT"})
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)

	for _, r := range rows {
		tw.Append([]string{r.Label, r.Family, r.Expert})
	}
	tw.Render()
	return nil
}
