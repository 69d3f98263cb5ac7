package core

import "strings"

// Format is an on-disk encoding for persisted tables. The set is closed:
// only the constants below are accepted by the Manager.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatXLS    Format = "xls"
	FormatPickle Format = "pickle"
)

// DefaultFormat is used by SaveDefault and LoadDefault.
const DefaultFormat = FormatCSV

var supportedFormats = []Format{FormatCSV, FormatXLSX, FormatXLS, FormatPickle}

// Formats returns the supported formats in their canonical order.
func Formats() []Format {
	return append([]Format(nil), supportedFormats...)
}

// ParseFormat converts s to a Format. Matching is case-insensitive and
// ignores a leading dot, so ".XLSX" is accepted.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	if !f.Valid() {
		return "", &FormatError{Value: s}
	}
	return f, nil
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	for _, s := range supportedFormats {
		if f == s {
			return true
		}
	}
	return false
}

// Ext returns the file extension for f, including the leading dot.
func (f Format) Ext() string {
	return "." + string(f)
}

func (f Format) String() string {
	return string(f)
}
