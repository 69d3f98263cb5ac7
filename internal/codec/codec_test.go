package codec

import (
	"bufio"
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/tabledata/internal/core"
	"github.com/JonMunkholm/tabledata/internal/table"
)

func widgets() *table.Frame {
	return table.MustNew([]string{"name", "qty"}, [][]any{
		{"bolt", 3},
		{"nut", 5},
		{"washer", 8},
	})
}

func mixed() *table.Frame {
	return table.MustNew([]string{"id", "price", "label", "active", "note"}, [][]any{
		{1, 9.5, "alpha", true, nil},
		{2, 3.0, "beta", false, "n/a"},
		{3, -0.25, "007", true, ""},
	})
}

func TestRoundTrip_AllFormats(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	for _, f := range core.Formats() {
		t.Run(string(f), func(t *testing.T) {
			src := widgets()

			path, err := m.Save("widgets", src, f)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(m.BaseDir(), "widgets."+string(f)), path)

			got, err := m.Load("widgets", f)
			require.NoError(t, err)

			rows, cols := got.Shape()
			assert.Equal(t, 3, rows)
			assert.Equal(t, 2, cols)
			assert.True(t, src.EqualValues(got), "cells differ: %v", got.Rows)
		})
	}
}

func TestRoundTrip_PickleKeepsTypes(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	src := mixed()
	src.Rows[0][1] = math.NaN()

	_, err = m.Save("mixed", src, core.FormatPickle)
	require.NoError(t, err)

	got, err := m.Load("mixed", core.FormatPickle)
	require.NoError(t, err)
	assert.True(t, src.Equal(got), "binary round-trip changed cells: %v", got.Rows)
	assert.Equal(t, src.Dtypes(), got.Dtypes())
}

// Text encodings normalise: integral floats keep their decimal point in CSV,
// empty strings come back as missing values.
func TestRoundTrip_CSVNormalization(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = m.Save("mixed", mixed(), core.FormatCSV)
	require.NoError(t, err)

	got, err := m.Load("mixed", core.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, []table.Kind{table.KindInt, table.KindFloat, table.KindMixed, table.KindBool, table.KindString}, got.Dtypes())
	assert.Equal(t, 3.0, got.Rows[1][1])
	assert.Equal(t, int64(7), got.Rows[2][2], "numeric-looking text is re-inferred")
	assert.Nil(t, got.Rows[2][4], "empty string reads back as missing")
}

func TestRoundTrip_SheetKeepsTextCells(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = m.Save("mixed", mixed(), core.FormatXLSX)
	require.NoError(t, err)

	got, err := m.Load("mixed", core.FormatXLSX)
	require.NoError(t, err)

	assert.Equal(t, "007", got.Rows[2][2], "text cells stay text")
	assert.Equal(t, true, got.Rows[0][3])
	assert.Equal(t, 9.5, got.Rows[0][1])
	assert.Nil(t, got.Rows[0][4])
}

func TestScenario_WidgetsCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tmp_test")
	m, err := NewManager(dir)
	require.NoError(t, err)
	require.DirExists(t, dir)

	path, err := m.Save("widgets", widgets(), core.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "widgets.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 4, "1 header + 3 data rows")
	assert.Equal(t, "name,qty", lines[0])

	got, err := m.Load("widgets", core.FormatCSV)
	require.NoError(t, err)
	assert.True(t, widgets().Equal(got), "integer column reads back as int64")
}

func TestScenario_PickleLoadedAsCSV(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = m.Save("x", widgets(), core.FormatPickle)
	require.NoError(t, err)

	// Put the pickle bytes where the csv reader will look.
	data, err := os.ReadFile(filepath.Join(m.BaseDir(), "x.pickle"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(m.BaseDir(), "x.csv"), data, 0o644))

	_, err = m.Load("x", core.FormatCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid csv")
	assert.False(t, errors.Is(err, core.ErrNotFound))
}

func TestLoadCSVAsPickle(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = m.Save("x", widgets(), core.FormatCSV)
	require.NoError(t, err)
	require.NoError(t, os.Rename(filepath.Join(m.BaseDir(), "x.csv"), filepath.Join(m.BaseDir(), "x.pickle")))

	_, err = m.Load("x", core.FormatPickle)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pickle")
}

func TestListFiles_TwoSaves(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = m.Save("a", widgets(), core.FormatCSV)
	require.NoError(t, err)
	_, err = m.Save("b", widgets(), core.FormatXLSX)
	require.NoError(t, err)

	files, err := m.ListFiles()
	require.NoError(t, err)
	sort.Strings(files)
	assert.Equal(t, []string{"a.csv", "b.xlsx"}, files)
}

func TestSaveRejectsInvalidFrame(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	bad := &table.Frame{Columns: []string{"a", "b"}, Rows: [][]any{{int64(1)}}}
	for _, f := range core.Formats() {
		_, err := m.Save("bad", bad, f)
		assert.ErrorIs(t, err, table.ErrInvalidFrame, "format %s", f)
	}
}

func TestDecodeCSV_Options(t *testing.T) {
	input := "# exported\nmeta line\nid;name;score\n1;ann;2.5\n2;bob\n"

	f, err := DecodeCSV(strings.NewReader(input), CSVOptions{
		ParseOptions: ParseOptions{SkipRows: 1, UseCols: []string{"name", "id"}},
		Comma:        ';',
		Comment:      '#',
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "id"}, f.Columns)
	assert.Equal(t, [][]any{{"ann", int64(1)}, {"bob", int64(2)}}, f.Rows)
}

func TestDecodeCSV_NoHeader(t *testing.T) {
	f, err := DecodeCSV(strings.NewReader("1,2\n3,4\n"), CSVOptions{
		ParseOptions: ParseOptions{NoHeader: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, f.Columns)
	assert.Len(t, f.Rows, 2)
}

func TestDecodeCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  CSVOptions
		want  string
	}{
		{"empty", "", CSVOptions{}, "empty file"},
		{"too many fields", "a,b\n1,2,3\n", CSVOptions{}, "wrong number of fields"},
		{"nul byte", "a\n\x00\n", CSVOptions{}, "NUL byte"},
		{"invalid utf8", "a\n\xff\n", CSVOptions{}, "not valid UTF-8"},
		{"duplicate header", "a,a\n1,2\n", CSVOptions{}, "duplicate column"},
		{"missing usecol", "a\n1\n", CSVOptions{ParseOptions: ParseOptions{UseCols: []string{"z"}}}, "column not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCSV(strings.NewReader(tt.input), tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecodeCSV_ShortRowsPadded(t *testing.T) {
	f, err := DecodeCSV(strings.NewReader("a,b,c\n1\n"), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(1), nil, nil}}, f.Rows)
}

func TestEncodeCSV_Separator(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, widgets(), '\t'))
	assert.Equal(t, "name\tqty\nbolt\t3\nnut\t5\nwasher\t8\n", buf.String())
}

func TestBinary_RejectsForeignBytes(t *testing.T) {
	_, err := DecodeBinary(strings.NewReader("name,qty\nbolt,3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")

	_, err = DecodeBinary(strings.NewReader(""))
	require.Error(t, err)
}

func TestBinary_Version(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeBinary(&buf, widgets()))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, binaryMagic))
	data[len(binaryMagic)] = 99

	_, err := DecodeBinary(bufio.NewReader(bytes.NewReader(data)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version 99")
}

func TestWorkbook_Sheets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeSheet(&buf, widgets()))

	wb, err := OpenWorkbook(&buf)
	require.NoError(t, err)
	defer wb.Close()

	sheets := wb.Sheets()
	require.Len(t, sheets, 1)

	name, err := wb.SheetAt(0)
	require.NoError(t, err)
	assert.Equal(t, sheets[0], name)

	_, err = wb.SheetAt(3)
	assert.ErrorContains(t, err, "sheet not found")

	_, err = wb.Frame("Nope", ParseOptions{})
	assert.ErrorContains(t, err, "sheet not found")
}

func TestRoundTrip_SingleColumnMissingCell(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	src := table.MustNew([]string{"a"}, [][]any{{1}, {nil}, {3}})

	for _, f := range core.Formats() {
		t.Run(string(f), func(t *testing.T) {
			_, err := m.Save("single", src, f)
			require.NoError(t, err)

			got, err := m.Load("single", f)
			require.NoError(t, err)

			rows, _ := got.Shape()
			assert.Equal(t, 3, rows, "missing cell must not drop its row")
			assert.True(t, src.EqualValues(got), "cells differ: %v", got.Rows)
		})
	}
}

func TestEncodeCSV_SingleColumnEmptyCellQuoted(t *testing.T) {
	var buf bytes.Buffer
	f := table.MustNew([]string{"a"}, [][]any{{1}, {nil}, {""}, {3}})
	require.NoError(t, EncodeCSV(&buf, f, ','))
	assert.Equal(t, "a\n1\n\"\"\n\"\"\n3\n", buf.String())

	got, err := DecodeCSV(&buf, CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(1)}, {nil}, {nil}, {int64(3)}}, got.Rows)
}

// Frames without columns are valid tables, but only the binary form can
// carry them: text and spreadsheet files need a header row.
func TestRoundTrip_NoColumns(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	empty := &table.Frame{Columns: []string{}, Rows: [][]any{}}

	for _, f := range core.Formats() {
		t.Run(string(f), func(t *testing.T) {
			_, err := m.Save("nocols", empty, f)
			require.NoError(t, err)

			got, err := m.Load("nocols", f)
			if f == core.FormatPickle {
				require.NoError(t, err)
				assert.True(t, empty.Equal(got))
				return
			}
			assert.ErrorContains(t, err, "empty file")
		})
	}
}

// Workbook readers drop trailing rows with no values; delimited text keeps
// them.
func TestRoundTrip_TrailingEmptyRows(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	src := table.MustNew([]string{"id", "label"}, [][]any{
		{1, "x"},
		{nil, nil},
		{2, "y"},
		{nil, nil},
		{nil, nil},
	})

	for _, f := range []core.Format{core.FormatXLSX, core.FormatXLS} {
		t.Run(string(f), func(t *testing.T) {
			_, err := m.Save("trailing", src, f)
			require.NoError(t, err)

			got, err := m.Load("trailing", f)
			require.NoError(t, err)
			assert.Equal(t, [][]any{{int64(1), "x"}, {nil, nil}, {int64(2), "y"}}, got.Rows)
		})
	}

	t.Run("csv", func(t *testing.T) {
		_, err := m.Save("trailing", src, core.FormatCSV)
		require.NoError(t, err)

		got, err := m.Load("trailing", core.FormatCSV)
		require.NoError(t, err)
		assert.True(t, src.EqualValues(got), "cells differ: %v", got.Rows)
	})
}
