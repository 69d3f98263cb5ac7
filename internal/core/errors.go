package core

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Sentinel errors for the store and persistence manager. Use errors.Is to
// test for them; the concrete errors below carry the details.
var (
	// ErrInvalidTable is returned by Store.Add for values that are not a
	// usable table.
	ErrInvalidTable = errors.New("invalid table")

	// ErrUnsupportedFormat is returned for format values outside Formats().
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidKey is returned for keys that cannot name a file in the base
	// directory.
	ErrInvalidKey = errors.New("invalid key")

	// ErrNotFound is returned by Manager.Load when no file exists for the
	// key and format.
	ErrNotFound = errors.New("file not found")
)

// FormatError reports an unsupported format value together with the
// supported set.
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	names := make([]string, len(supportedFormats))
	for i, f := range supportedFormats {
		names[i] = string(f)
	}
	return fmt.Sprintf("unsupported format: %q. Supported = [%s]", e.Value, strings.Join(names, ", "))
}

// Is makes errors.Is(err, ErrUnsupportedFormat) true.
func (e *FormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// NotFoundError reports the resolved path that Manager.Load expected.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: [%s] does not exist", e.Path)
}

// Is makes errors.Is match both ErrNotFound and fs.ErrNotExist.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound || target == fs.ErrNotExist
}
