package ingest

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/JonMunkholm/tabledata/internal/codec"
	"github.com/JonMunkholm/tabledata/internal/table"
)

// ReadCSV reads a delimited text file into a frame. The default is UTF-8 with
// ',' as separator; a leading byte order mark is skipped. Every failure is
// returned as a *ReadError.
func ReadCSV(path string, opts ...Option) (*table.Frame, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, csvError(path, err)
	}
	defer in.Close()

	f, err := decodeCSV(in, buildOptions(opts))
	if err != nil {
		return nil, csvError(path, err)
	}
	return f, nil
}

func decodeCSV(r io.Reader, o options) (*table.Frame, error) {
	r, err := decodeText(r, o.encoding)
	if err != nil {
		return nil, err
	}

	return codec.DecodeCSV(r, codec.CSVOptions{
		ParseOptions: o.parse,
		Comma:        o.separator,
		Comment:      o.comment,
		LazyQuotes:   o.lazyQuotes,
	})
}

// decodeText converts r from the named encoding to UTF-8. UTF-8 input is
// passed through untouched so invalid bytes are reported rather than
// replaced.
func decodeText(r io.Reader, name string) (io.Reader, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}

	canonical, _ := htmlindex.Name(enc)
	if canonical == "utf-8" {
		return NewBOMSkippingReader(r), nil
	}
	return NewBOMSkippingReader(transform.NewReader(r, enc.NewDecoder())), nil
}
