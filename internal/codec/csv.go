package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/JonMunkholm/tabledata/internal/table"
)

// CSVOptions configures DecodeCSV.
type CSVOptions struct {
	ParseOptions

	// Comma is the field separator (default ',').
	Comma rune

	// Comment, if set, marks lines to ignore.
	Comment rune

	// LazyQuotes relaxes quote handling for sloppy exports.
	LazyQuotes bool
}

// CSV is the delimited-text codec. Files carry a header row and no index
// column. Cell types are inferred on read with table.ParseCell.
type CSV struct{}

// Write implements core.Codec.
func (CSV) Write(path string, f *table.Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeCSV(out, f, ','); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Read implements core.Codec.
func (CSV) Read(path string) (*table.Frame, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	f, err := DecodeCSV(in, CSVOptions{})
	if err != nil {
		return nil, fmt.Errorf("invalid csv %s: %w", path, err)
	}
	return f, nil
}

// EncodeCSV writes f as delimited text with a header row.
func EncodeCSV(w io.Writer, f *table.Frame, comma rune) error {
	if err := f.Validate(); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if comma != 0 {
		cw.Comma = comma
	}

	if err := cw.Write(f.Columns); err != nil {
		return err
	}

	record := make([]string, len(f.Columns))
	for _, row := range f.Rows {
		for j, cell := range row {
			record[j] = table.FormatCell(cell)
		}
		if len(record) == 1 && record[0] == "" {
			// csv.Writer emits a blank line here and readers skip blank
			// lines; a quoted empty field keeps the row.
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `""`+"\n"); err != nil {
				return err
			}
			continue
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// DecodeCSV parses UTF-8 delimited text into a frame. Input containing NUL
// bytes or invalid UTF-8 is rejected; binary files are not text.
func DecodeCSV(r io.Reader, opts CSVOptions) (*table.Frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return nil, fmt.Errorf("invalid csv: NUL byte at offset %d", i)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("invalid csv: encoding error: input is not valid UTF-8")
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.Comment = opts.Comment
	cr.LazyQuotes = opts.LazyQuotes

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	return buildFrame(records, opts.ParseOptions, func(_, _ int, s string) any {
		return table.ParseCell(s)
	})
}
