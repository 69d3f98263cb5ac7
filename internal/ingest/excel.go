package ingest

import (
	"fmt"
	"io"
	"os"

	"github.com/JonMunkholm/tabledata/internal/codec"
	"github.com/JonMunkholm/tabledata/internal/table"
)

// Sheet selects one worksheet by name or by position.
type Sheet struct {
	name   string
	index  int
	byName bool
}

// SheetName selects a worksheet by name.
func SheetName(name string) Sheet {
	return Sheet{name: name, byName: true}
}

// SheetIndex selects a worksheet by zero-based position.
func SheetIndex(i int) Sheet {
	return Sheet{index: i}
}

// FirstSheet is SheetIndex(0).
var FirstSheet = SheetIndex(0)

func (s Sheet) String() string {
	if s.byName {
		return s.name
	}
	return fmt.Sprintf("#%d", s.index)
}

func (s Sheet) resolve(wb *codec.Workbook) (string, error) {
	if s.byName {
		return s.name, nil
	}
	return wb.SheetAt(s.index)
}

// ReadExcel reads one worksheet of a workbook. Failures are returned as a
// *ReadError.
func ReadExcel(path string, sheet Sheet, opts ...Option) (*table.Frame, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, excelError(path, err)
	}
	defer in.Close()

	f, err := readExcelSheet(in, sheet, buildOptions(opts))
	if err != nil {
		return nil, excelError(path, err)
	}
	return f, nil
}

// ReadExcelSheets reads several worksheets keyed by sheet name. A nil sheets
// slice reads every sheet in the workbook.
func ReadExcelSheets(path string, sheets []Sheet, opts ...Option) (map[string]*table.Frame, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, excelError(path, err)
	}
	defer in.Close()

	out, err := readExcelSheets(in, sheets, buildOptions(opts))
	if err != nil {
		return nil, excelError(path, err)
	}
	return out, nil
}

func readExcelSheet(r io.Reader, sheet Sheet, o options) (*table.Frame, error) {
	wb, err := codec.OpenWorkbook(r)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	name, err := sheet.resolve(wb)
	if err != nil {
		return nil, err
	}
	return wb.Frame(name, o.parse)
}

func readExcelSheets(r io.Reader, sheets []Sheet, o options) (map[string]*table.Frame, error) {
	wb, err := codec.OpenWorkbook(r)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	var names []string
	if sheets == nil {
		names = wb.Sheets()
	} else {
		for _, s := range sheets {
			name, err := s.resolve(wb)
			if err != nil {
				return nil, err
			}
			names = append(names, name)
		}
	}

	out := make(map[string]*table.Frame, len(names))
	for _, name := range names {
		f, err := wb.Frame(name, o.parse)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		out[name] = f
	}
	return out, nil
}
