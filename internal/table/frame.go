// Package table provides the in-memory tabular value produced by the
// ingestion readers and consumed by the persistence codecs.
//
// A Frame is a header row of column names plus a list of rows. Cells are
// restricted to a small closed set of Go types so every codec can round-trip
// them:
//
//   - nil      (missing value)
//   - bool
//   - int64
//   - float64
//   - string
//
// The core store and persistence manager never look inside a Frame; they only
// call Validate.
package table

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidFrame is the base error for frames that fail Validate.
var ErrInvalidFrame = errors.New("invalid frame")

// Frame is a rows x named-columns table.
type Frame struct {
	Columns []string
	Rows    [][]any
}

// New builds a frame from columns and rows, normalising Go numeric cell types
// (int, int32, float32, ...) to int64 and float64. The result is validated.
func New(columns []string, rows [][]any) (*Frame, error) {
	f := &Frame{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]any, len(rows)),
	}
	for i, row := range rows {
		out := make([]any, len(row))
		for j, cell := range row {
			out[j] = normalize(cell)
		}
		f.Rows[i] = out
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// MustNew is like New but panics on error. Intended for tests and literals.
func MustNew(columns []string, rows [][]any) *Frame {
	f, err := New(columns, rows)
	if err != nil {
		panic(err)
	}
	return f
}

// Validate reports whether f is a usable table: non-nil, unique non-empty
// column names, rectangular rows and supported cell types.
func (f *Frame) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: frame is nil", ErrInvalidFrame)
	}

	seen := make(map[string]bool, len(f.Columns))
	for i, c := range f.Columns {
		if c == "" {
			return fmt.Errorf("%w: column %d has no name", ErrInvalidFrame, i)
		}
		if seen[c] {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidFrame, c)
		}
		seen[c] = true
	}

	for i, row := range f.Rows {
		if len(row) != len(f.Columns) {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidFrame, i, len(row), len(f.Columns))
		}
		for j, cell := range row {
			if KindOf(cell) == KindInvalid {
				return fmt.Errorf("%w: row %d column %q has unsupported type %T", ErrInvalidFrame, i, f.Columns[j], cell)
			}
		}
	}
	return nil
}

// Shape returns the number of rows and columns.
func (f *Frame) Shape() (rows, cols int) {
	if f == nil {
		return 0, 0
	}
	return len(f.Rows), len(f.Columns)
}

// ColumnIndex returns the position of the named column, or -1.
func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns a copy of the named column's cells.
func (f *Frame) Column(name string) ([]any, bool) {
	idx := f.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]any, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = row[idx]
	}
	return out, true
}

// Dtypes infers one Kind per column. Nil cells are ignored; a column with
// no values is KindNull, a column with more than one kind is KindMixed.
func (f *Frame) Dtypes() []Kind {
	kinds := make([]Kind, len(f.Columns))
	for j := range f.Columns {
		k := KindNull
		for _, row := range f.Rows {
			ck := KindOf(row[j])
			if ck == KindNull {
				continue
			}
			if k == KindNull {
				k = ck
			} else if k != ck {
				k = KindMixed
				break
			}
		}
		kinds[j] = k
	}
	return kinds
}

// Equal reports whether f and other have the same columns and identical cells,
// including cell types.
func (f *Frame) Equal(other *Frame) bool {
	return f.compare(other, func(a, b any) bool {
		if KindOf(a) != KindOf(b) {
			return false
		}
		if fa, ok := a.(float64); ok {
			fb := b.(float64)
			return fa == fb || (math.IsNaN(fa) && math.IsNaN(fb))
		}
		return a == b
	})
}

// EqualValues reports whether f and other have the same shape, columns and
// cell values, treating int64 and float64 cells with the same numeric value
// as equal. Text and spreadsheet encodings are compared this way.
func (f *Frame) EqualValues(other *Frame) bool {
	return f.compare(other, func(a, b any) bool {
		na, aNum := number(a)
		nb, bNum := number(b)
		if aNum && bNum {
			return na == nb || (math.IsNaN(na) && math.IsNaN(nb))
		}
		return a == b
	})
}

func (f *Frame) compare(other *Frame, eq func(a, b any) bool) bool {
	if f == nil || other == nil {
		return f == other
	}
	if len(f.Columns) != len(other.Columns) || len(f.Rows) != len(other.Rows) {
		return false
	}
	for i := range f.Columns {
		if f.Columns[i] != other.Columns[i] {
			return false
		}
	}
	for i := range f.Rows {
		if len(f.Rows[i]) != len(other.Rows[i]) {
			return false
		}
		for j := range f.Rows[i] {
			if !eq(f.Rows[i][j], other.Rows[i][j]) {
				return false
			}
		}
	}
	return true
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
