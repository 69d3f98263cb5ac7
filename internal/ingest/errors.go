package ingest

import "fmt"

// ReadError wraps any failure raised while reading an external file. Source
// is the reader that failed ("CSV" or "Excel").
type ReadError struct {
	Source string
	Path   string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s file: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func csvError(path string, err error) error {
	return &ReadError{Source: "CSV", Path: path, Err: err}
}

func excelError(path string, err error) error {
	return &ReadError{Source: "Excel", Path: path, Err: err}
}
