package ingest

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/JonMunkholm/tabledata/internal/table"
)

// FileType is a readable external file type, named by its extension.
type FileType string

const (
	TypeCSV  FileType = "csv"
	TypeTSV  FileType = "tsv"
	TypeXLSX FileType = "xlsx"
	TypeXLS  FileType = "xls"
)

// ErrUnsupportedType is returned for file names with no readable extension.
var ErrUnsupportedType = errors.New("unsupported file type")

// AcceptedTypes are the file types offered to upload forms.
var AcceptedTypes = []FileType{TypeXLSX, TypeXLS, TypeCSV}

// DetectType returns the file type implied by name's extension.
func DetectType(name string) (FileType, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch t := FileType(ext); t {
	case TypeCSV, TypeTSV, TypeXLSX, TypeXLS:
		return t, nil
	}
	return "", fmt.Errorf("%w %q: accepted %v", ErrUnsupportedType, filepath.Ext(name), AcceptedTypes)
}

// Accepted reports whether t is one of AcceptedTypes.
func (t FileType) Accepted() bool {
	return slices.Contains(AcceptedTypes, t)
}

// IsSpreadsheet reports whether t is read with the workbook reader.
func (t FileType) IsSpreadsheet() bool {
	return t == TypeXLSX || t == TypeXLS
}

// ReadFile reads path with the reader matching its extension. Workbooks
// return their first sheet.
func ReadFile(path string, opts ...Option) (*table.Frame, error) {
	typ, err := DetectType(path)
	if err != nil {
		return nil, err
	}
	if typ.IsSpreadsheet() {
		return ReadExcel(path, FirstSheet, opts...)
	}
	return ReadCSV(path, withTypeDefaults(typ, opts)...)
}

// ReadReader reads an uploaded stream. name is the client file name and
// selects the reader the same way ReadFile does.
func ReadReader(name string, r io.Reader, opts ...Option) (*table.Frame, error) {
	typ, err := DetectType(name)
	if err != nil {
		return nil, err
	}

	if typ.IsSpreadsheet() {
		f, err := readExcelSheet(r, FirstSheet, buildOptions(opts))
		if err != nil {
			return nil, excelError(name, err)
		}
		return f, nil
	}

	f, err := decodeCSV(r, buildOptions(withTypeDefaults(typ, opts)))
	if err != nil {
		return nil, csvError(name, err)
	}
	return f, nil
}

// withTypeDefaults puts the file type's defaults ahead of the caller's
// options so explicit options still win.
func withTypeDefaults(typ FileType, opts []Option) []Option {
	if typ != TypeTSV {
		return opts
	}
	return append([]Option{WithSeparator('\t')}, opts...)
}
