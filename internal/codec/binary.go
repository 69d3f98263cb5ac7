package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	msgpack "github.com/hashicorp/go-msgpack/v2/codec"

	"github.com/JonMunkholm/tabledata/internal/table"
)

// Binary is the "pickle" codec: an exact binary snapshot of a frame. Unlike
// the text and spreadsheet codecs it keeps every cell's type, so a frame read
// back is Equal to the one written.
//
// Layout: the 7-byte magic "\x00TBLPKL", one version byte, then a msgpack
// encoded binaryFrame.
type Binary struct{}

var binaryMagic = []byte("\x00TBLPKL")

const binaryVersion byte = 1

// cell kinds on disk; stable across releases.
const (
	cellNull uint8 = iota
	cellBool
	cellInt
	cellFloat
	cellString
)

type binaryCell struct {
	K uint8   `codec:"k"`
	B bool    `codec:"b,omitempty"`
	I int64   `codec:"i,omitempty"`
	F float64 `codec:"f"`
	S string  `codec:"s,omitempty"`
}

type binaryFrame struct {
	Columns []string       `codec:"columns"`
	Rows    [][]binaryCell `codec:"rows"`
}

func msgpackHandle() *msgpack.MsgpackHandle {
	h := &msgpack.MsgpackHandle{}
	h.WriteExt = true
	return h
}

// Write implements core.Codec.
func (Binary) Write(path string, f *table.Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeBinary(out, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Read implements core.Codec.
func (Binary) Read(path string) (*table.Frame, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	f, err := DecodeBinary(bufio.NewReader(in))
	if err != nil {
		return nil, fmt.Errorf("invalid pickle %s: %w", path, err)
	}
	return f, nil
}

// EncodeBinary writes the binary form of f.
func EncodeBinary(w io.Writer, f *table.Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}

	bf := binaryFrame{
		Columns: f.Columns,
		Rows:    make([][]binaryCell, len(f.Rows)),
	}
	for i, row := range f.Rows {
		cells := make([]binaryCell, len(row))
		for j, v := range row {
			cells[j] = toBinaryCell(v)
		}
		bf.Rows[i] = cells
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(binaryMagic); err != nil {
		return err
	}
	if err := bw.WriteByte(binaryVersion); err != nil {
		return err
	}
	if err := msgpack.NewEncoder(bw, msgpackHandle()).Encode(&bf); err != nil {
		return err
	}
	return bw.Flush()
}

// DecodeBinary reads a frame written by EncodeBinary.
func DecodeBinary(r io.Reader) (*table.Frame, error) {
	head := make([]byte, len(binaryMagic)+1)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if !bytes.Equal(head[:len(binaryMagic)], binaryMagic) {
		return nil, fmt.Errorf("missing binary table header")
	}
	if v := head[len(binaryMagic)]; v != binaryVersion {
		return nil, fmt.Errorf("unknown binary table version %d", v)
	}

	var bf binaryFrame
	if err := msgpack.NewDecoder(r, msgpackHandle()).Decode(&bf); err != nil {
		return nil, err
	}

	f := &table.Frame{
		Columns: bf.Columns,
		Rows:    make([][]any, len(bf.Rows)),
	}
	if f.Columns == nil {
		f.Columns = []string{}
	}
	for i, cells := range bf.Rows {
		row := make([]any, len(cells))
		for j, c := range cells {
			v, err := fromBinaryCell(c)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i, j, err)
			}
			row[j] = v
		}
		f.Rows[i] = row
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func toBinaryCell(v any) binaryCell {
	switch c := v.(type) {
	case bool:
		return binaryCell{K: cellBool, B: c}
	case int64:
		return binaryCell{K: cellInt, I: c}
	case float64:
		return binaryCell{K: cellFloat, F: c}
	case string:
		return binaryCell{K: cellString, S: c}
	default:
		return binaryCell{K: cellNull}
	}
}

func fromBinaryCell(c binaryCell) (any, error) {
	switch c.K {
	case cellNull:
		return nil, nil
	case cellBool:
		return c.B, nil
	case cellInt:
		return c.I, nil
	case cellFloat:
		return c.F, nil
	case cellString:
		return c.S, nil
	default:
		return nil, fmt.Errorf("unknown cell kind %d", c.K)
	}
}
