package codec

import (
	"fmt"
	"strconv"

	"github.com/JonMunkholm/tabledata/internal/table"
)

// ParseOptions are the reader options shared by the text and spreadsheet
// decoders.
type ParseOptions struct {
	// SkipRows drops this many leading records before the header.
	SkipRows int

	// NoHeader treats the first record as data and names columns "0", "1", ...
	NoHeader bool

	// UseCols keeps only the named columns, in the given order.
	UseCols []string
}

// buildFrame turns raw records into a frame according to opts. parse converts
// each raw cell; it receives the record and column position so spreadsheet
// readers can consult cell types.
func buildFrame(records [][]string, opts ParseOptions, parse func(row, col int, s string) any) (*table.Frame, error) {
	if opts.SkipRows > 0 {
		if opts.SkipRows >= len(records) {
			records = nil
		} else {
			records = records[opts.SkipRows:]
		}
	}
	rowOffset := opts.SkipRows

	var columns []string
	switch {
	case len(records) == 0:
		return nil, fmt.Errorf("empty file: no header row")
	case opts.NoHeader:
		columns = make([]string, len(records[0]))
		for i := range columns {
			columns[i] = strconv.Itoa(i)
		}
	default:
		columns = records[0]
		records = records[1:]
		rowOffset++
	}

	rows := make([][]any, len(records))
	for i, rec := range records {
		if len(rec) > len(columns) {
			return nil, fmt.Errorf("record %d: wrong number of fields: got %d, header has %d", rowOffset+i+1, len(rec), len(columns))
		}
		row := make([]any, len(columns))
		for j := range rec {
			row[j] = parse(rowOffset+i, j, rec[j])
		}
		rows[i] = row
	}

	f := &table.Frame{Columns: append([]string(nil), columns...), Rows: rows}
	if len(opts.UseCols) > 0 {
		var err error
		if f, err = selectColumns(f, opts.UseCols); err != nil {
			return nil, err
		}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func selectColumns(f *table.Frame, names []string) (*table.Frame, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		idx[i] = f.ColumnIndex(name)
		if idx[i] < 0 {
			return nil, fmt.Errorf("column not found: %q", name)
		}
	}

	out := &table.Frame{
		Columns: append([]string(nil), names...),
		Rows:    make([][]any, len(f.Rows)),
	}
	for r, row := range f.Rows {
		sel := make([]any, len(idx))
		for i, j := range idx {
			sel[i] = row[j]
		}
		out.Rows[r] = sel
	}
	return out, nil
}
