package ingest

import (
	"github.com/JonMunkholm/tabledata/internal/codec"
)

const (
	DefaultEncoding  = "utf-8"
	DefaultSeparator = ','
)

type options struct {
	encoding   string
	separator  rune
	comment    rune
	lazyQuotes bool
	parse      codec.ParseOptions
}

func defaultOptions() options {
	return options{
		encoding:  DefaultEncoding,
		separator: DefaultSeparator,
	}
}

// Option configures the readers in this package. Options that do not apply
// to a reader (an encoding for a workbook, say) are ignored by it.
type Option func(*options)

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithEncoding sets the text encoding of a CSV file. Any WHATWG label is
// accepted ("utf-8", "shift_jis", "windows-1252", "latin1", ...).
func WithEncoding(name string) Option {
	return func(o *options) {
		if name != "" {
			o.encoding = name
		}
	}
}

// WithSeparator sets the CSV field separator.
func WithSeparator(sep rune) Option {
	return func(o *options) {
		if sep != 0 {
			o.separator = sep
		}
	}
}

// WithComment ignores CSV lines starting with c.
func WithComment(c rune) Option {
	return func(o *options) { o.comment = c }
}

// WithLazyQuotes tolerates stray quotes in CSV fields.
func WithLazyQuotes() Option {
	return func(o *options) { o.lazyQuotes = true }
}

// WithSkipRows drops n leading records before the header.
func WithSkipRows(n int) Option {
	return func(o *options) { o.parse.SkipRows = n }
}

// WithNoHeader treats the first record as data.
func WithNoHeader() Option {
	return func(o *options) { o.parse.NoHeader = true }
}

// WithUseCols keeps only the named columns, in that order.
func WithUseCols(names ...string) Option {
	return func(o *options) { o.parse.UseCols = append([]string(nil), names...) }
}
