package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/tabledata/internal/table"
)

// Output formats for commands that print data.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func validOutput(s string) error {
	switch s {
	case outputTable, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unknown output %q: use table, json or yaml", s)
}

// printFrame writes up to limit rows of f (all rows when limit <= 0).
func printFrame(w io.Writer, f *table.Frame, limit int, output string) error {
	rows := f.Rows
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	switch output {
	case outputJSON, outputYAML:
		records := make([]map[string]any, len(rows))
		for i, row := range rows {
			rec := make(map[string]any, len(f.Columns))
			for j, c := range f.Columns {
				rec[c] = plainCell(row[j])
			}
			records[i] = rec
		}
		if output == outputJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	}

	tbl := tablewriter.NewTable(w)
	header := make([]any, len(f.Columns))
	for i, c := range f.Columns {
		header[i] = c
	}
	tbl.Header(header...)

	for _, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = table.FormatCell(v)
		}
		if err := tbl.Append(cells...); err != nil {
			return err
		}
	}
	if err := tbl.Render(); err != nil {
		return err
	}

	total := len(f.Rows)
	if len(rows) < total {
		fmt.Fprintf(w, "(%d of %d rows)\n", len(rows), total)
	}
	return nil
}

// plainCell keeps values encodable by encoding/json.
func plainCell(v any) any {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return table.FormatCell(f)
	}
	return v
}
