package codec

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/tabledata/internal/table"
)

// Sheet is the spreadsheet codec used for both .xlsx and .xls. Workbooks are
// always written in the OOXML container; the extension is only a name.
// One sheet is written with a header row and no index column; Read returns
// the first sheet.
type Sheet struct{}

// Write implements core.Codec.
func (Sheet) Write(path string, f *table.Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeSheet(out, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Read implements core.Codec.
func (Sheet) Read(path string) (*table.Frame, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	wb, err := OpenWorkbook(in)
	if err != nil {
		return nil, fmt.Errorf("invalid spreadsheet %s: %w", path, err)
	}
	defer wb.Close()

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("invalid spreadsheet %s: workbook has no sheets", path)
	}
	return wb.Frame(sheets[0], ParseOptions{})
}

// EncodeSheet writes f as a single-sheet workbook.
func EncodeSheet(w io.Writer, f *table.Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}

	x := excelize.NewFile()
	defer x.Close()

	sheet := x.GetSheetName(0)

	header := make([]any, len(f.Columns))
	for i, c := range f.Columns {
		header[i] = c
	}
	if err := x.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range f.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			if fv, ok := v.(float64); ok && (math.IsNaN(fv) || math.IsInf(fv, 0)) {
				v = nil
			}
			values[j] = v
		}
		if err := x.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	_, err := x.WriteTo(w)
	return err
}

// Workbook is an opened spreadsheet.
type Workbook struct {
	file *excelize.File
}

// OpenWorkbook reads a workbook from r.
func OpenWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	return &Workbook{file: f}, nil
}

// Close releases the workbook.
func (wb *Workbook) Close() error {
	return wb.file.Close()
}

// Sheets returns the sheet names in workbook order.
func (wb *Workbook) Sheets() []string {
	return wb.file.GetSheetList()
}

// SheetAt returns the name of the sheet at index i.
func (wb *Workbook) SheetAt(i int) (string, error) {
	sheets := wb.Sheets()
	if i < 0 || i >= len(sheets) {
		return "", fmt.Errorf("sheet not found: index %d (workbook has %d sheets)", i, len(sheets))
	}
	return sheets[i], nil
}

// Frame reads one sheet into a frame. Numeric cells are inferred with
// table.ParseCell, boolean cells become bool and text cells stay strings.
func (wb *Workbook) Frame(sheet string, opts ParseOptions) (*table.Frame, error) {
	idx, err := wb.file.GetSheetIndex(sheet)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, fmt.Errorf("sheet not found: %q", sheet)
	}

	rows, err := wb.file.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	return buildFrame(rows, opts, func(row, col int, s string) any {
		if s == "" {
			return nil
		}
		name, err := excelize.CoordinatesToCellName(col+1, row+1)
		if err != nil {
			return table.ParseCell(s)
		}
		typ, err := wb.file.GetCellType(sheet, name)
		if err != nil {
			return table.ParseCell(s)
		}
		switch typ {
		case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
			return s
		case excelize.CellTypeBool:
			return s == "TRUE" || s == "1"
		default:
			return table.ParseCell(s)
		}
	})
}
