package core

// persistence.go implements durable save/load of tables under a base
// directory.
//
// Every persisted table is addressed by (key, format) and lives at
//
//	<base_dir>/<key>.<format>
//
// The encoding for each format is supplied by a Codec. The Manager owns the
// path layout, format validation and the existence check; codecs own the
// bytes. Codec errors are returned unchanged.

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultBaseDir is used when NewManager is given an empty directory.
const DefaultBaseDir = "data"

// Codec writes and reads one table encoding.
type Codec[T any] interface {
	Write(path string, t T) error
	Read(path string) (T, error)
}

// CodecFuncs adapts a writer/reader function pair to Codec.
type CodecFuncs[T any] struct {
	WriteFunc func(path string, t T) error
	ReadFunc  func(path string) (T, error)
}

// Write implements Codec.
func (c CodecFuncs[T]) Write(path string, t T) error { return c.WriteFunc(path, t) }

// Read implements Codec.
func (c CodecFuncs[T]) Read(path string) (T, error) { return c.ReadFunc(path) }

// Codecs maps every supported format to its codec.
type Codecs[T any] map[Format]Codec[T]

// validate checks that every supported format has a codec.
func (c Codecs[T]) validate() error {
	var missing []string
	for _, f := range supportedFormats {
		if c[f] == nil {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("no codec registered for format(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// Manager persists tables of type T under a base directory.
type Manager[T Table] struct {
	baseDir string
	codecs  Codecs[T]
}

// NewManager creates a manager rooted at baseDir, creating the directory and
// any parents if missing. An existing directory is not an error.
// codecs must provide a codec for every format in Formats().
func NewManager[T Table](baseDir string, codecs Codecs[T]) (*Manager[T], error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if err := codecs.validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create base directory %s: %w", baseDir, err)
	}

	table := make(Codecs[T], len(codecs))
	for f, c := range codecs {
		table[f] = c
	}

	return &Manager[T]{
		baseDir: baseDir,
		codecs:  table,
	}, nil
}

// BaseDir returns the directory the manager reads and writes.
func (m *Manager[T]) BaseDir() string {
	return m.baseDir
}

// Path returns <base_dir>/<key>.<format> after validating both parts.
func (m *Manager[T]) Path(key string, format Format) (string, error) {
	if !format.Valid() {
		return "", &FormatError{Value: string(format)}
	}
	if err := validateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(m.baseDir, key+format.Ext()), nil
}

// Save writes t as <key>.<format>, overwriting any existing file, and returns
// the path written. An unsupported format fails before any file is touched.
func (m *Manager[T]) Save(key string, t T, format Format) (string, error) {
	path, err := m.Path(key, format)
	if err != nil {
		return "", err
	}

	if err := m.codecs[format].Write(path, t); err != nil {
		return "", err
	}

	slog.Debug("table saved", "key", key, "format", format, "path", path)
	return path, nil
}

// SaveDefault saves t in DefaultFormat.
func (m *Manager[T]) SaveDefault(key string, t T) (string, error) {
	return m.Save(key, t, DefaultFormat)
}

// Load reads <key>.<format> back into a table.
// Returns a *NotFoundError naming the path if the file does not exist.
// The format is validated the same way as in Save, but the file contents are
// trusted: loading a file with the wrong format fails inside the codec.
func (m *Manager[T]) Load(key string, format Format) (T, error) {
	var zero T

	path, err := m.Path(key, format)
	if err != nil {
		return zero, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return zero, &NotFoundError{Path: path}
		}
		return zero, err
	}
	if !info.Mode().IsRegular() {
		return zero, &NotFoundError{Path: path}
	}

	t, err := m.codecs[format].Read(path)
	if err != nil {
		return zero, err
	}

	slog.Debug("table loaded", "key", key, "format", format, "path", path)
	return t, nil
}

// LoadDefault loads key in DefaultFormat.
func (m *Manager[T]) LoadDefault(key string) (T, error) {
	return m.Load(key, DefaultFormat)
}

// Exists reports whether a file is persisted for key and format.
func (m *Manager[T]) Exists(key string, format Format) (bool, error) {
	path, err := m.Path(key, format)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// ListFiles returns the names of regular files directly under the base
// directory, including symlinks to regular files. Subdirectories are skipped
// and nothing is filtered by extension. Order follows the directory listing.
func (m *Manager[T]) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", m.baseDir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch {
		case entry.Type().IsRegular():
			files = append(files, entry.Name())
		case entry.Type()&fs.ModeSymlink != 0:
			// Follow links the way Load does; dangling links are skipped.
			info, err := os.Stat(filepath.Join(m.baseDir, entry.Name()))
			if err == nil && info.Mode().IsRegular() {
				files = append(files, entry.Name())
			}
		}
	}
	return files, nil
}

// validateKey rejects keys that would escape the base directory or produce
// an unnamed file.
func validateKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: key is empty", ErrInvalidKey)
	case key == "." || key == "..":
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidKey, key)
	case strings.ContainsRune(key, 0):
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidKey, key)
	}
	return nil
}
