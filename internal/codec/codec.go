// Package codec implements the on-disk encodings for table.Frame:
//
//   - csv:    delimited text with a header row (CSV)
//   - xlsx:   OOXML workbook, one sheet (Sheet)
//   - xls:    same writer and reader as xlsx
//   - pickle: exact binary snapshot (Binary)
//
// Frames returns the full codec table expected by core.NewManager.
package codec

import (
	"github.com/JonMunkholm/tabledata/internal/core"
	"github.com/JonMunkholm/tabledata/internal/table"
)

// Compile-time checks.
var (
	_ core.Codec[*table.Frame] = CSV{}
	_ core.Codec[*table.Frame] = Sheet{}
	_ core.Codec[*table.Frame] = Binary{}
)

// Frames returns a codec for every supported format.
func Frames() core.Codecs[*table.Frame] {
	return core.Codecs[*table.Frame]{
		core.FormatCSV:    CSV{},
		core.FormatXLSX:   Sheet{},
		core.FormatXLS:    Sheet{},
		core.FormatPickle: Binary{},
	}
}

// NewManager is a convenience for core.NewManager with Frames.
func NewManager(baseDir string) (*core.Manager[*table.Frame], error) {
	return core.NewManager(baseDir, Frames())
}

// NewSession is a convenience for core.NewSession with Frames.
func NewSession(baseDir string) (*core.Session[*table.Frame], error) {
	return core.NewSession(baseDir, Frames())
}
