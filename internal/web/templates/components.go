// Package templates holds the HTML components of the web UI.
package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/tabledata/internal/table"
)

// TableSummary is one row of the loaded-tables list.
type TableSummary struct {
	Key     string
	Rows    int
	Columns int
}

// writer collects the first write error so components read top to bottom.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) render(ctx context.Context, c templ.Component) {
	if w.err == nil {
		w.err = c.Render(ctx, w.w)
	}
}

// Page is the full document around body.
func Page(title string, body ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		w.text(title)
		w.raw(`</title></head><body><main><h1>`)
		w.text(title)
		w.raw(`</h1>`)
		for _, c := range body {
			w.render(ctx, c)
		}
		w.raw(`</main></body></html>`)
		return w.err
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<div class="alert alert-error" role="alert"><p>`)
		w.text(message)
		w.raw(`</p>`)
		if action != "" {
			w.raw(`<p class="action">`)
			w.text(action)
			w.raw(`</p>`)
		}
		w.raw(`<small>`)
		w.text(code)
		w.raw(`</small></div>`)
		return w.err
	})
}

// InfoNotice renders an informational message.
func InfoNotice(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<div class="alert alert-info" role="status">`)
		w.text(message)
		w.raw(`</div>`)
		return w.err
	})
}

// UploadForm renders the file upload widget. accept lists extensions
// without the leading dot.
func UploadForm(label string, accept []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<form id="upload" method="post" action="/api/upload" enctype="multipart/form-data"><label for="file">`)
		w.text(label)
		w.raw(`</label><input type="file" id="file" name="file" accept="`)
		for i, ext := range accept {
			if i > 0 {
				w.raw(",")
			}
			w.text("." + ext)
		}
		w.raw(`"><input type="text" name="key" placeholder="table name (optional)"><button type="submit">Upload</button></form>`)
		return w.err
	})
}

// DatasetSelect renders a selection of persisted files in dir.
func DatasetSelect(label, dir string, files []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<form id="dataset-select" method="post" action="/datasets/select" data-dir="`)
		w.text(dir)
		w.raw(`"><label for="dataset">`)
		w.text(label)
		w.raw(`</label><select id="dataset" name="file">`)
		for i, f := range files {
			w.raw(`<option value="`)
			w.text(f)
			w.raw(`"`)
			if i == 0 {
				w.raw(` selected`)
			}
			w.raw(`>`)
			w.text(f)
			w.raw(`</option>`)
		}
		w.raw(`</select><button type="submit">Select</button></form>`)
		return w.err
	})
}

// TableList renders the tables held in the session store.
func TableList(tables []TableSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		if len(tables) == 0 {
			w.raw(`<p class="empty">No tables loaded.</p>`)
			return w.err
		}
		w.raw(`<table class="tables"><thead><tr><th>Name</th><th>Rows</th><th>Columns</th></tr></thead><tbody>`)
		for _, t := range tables {
			w.raw(`<tr><td>`)
			w.text(t.Key)
			w.raw(`</td><td>`)
			w.raw(strconv.Itoa(t.Rows))
			w.raw(`</td><td>`)
			w.raw(strconv.Itoa(t.Columns))
			w.raw(`</td></tr>`)
		}
		w.raw(`</tbody></table>`)
		return w.err
	})
}

// Preview renders the header and first rows of a table. cells are already
// formatted for display.
func Preview(key string, columns []string, cells [][]string, total int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<section class="preview"><h2>`)
		w.text(key)
		w.raw(`</h2><table><thead><tr>`)
		for _, c := range columns {
			w.raw(`<th>`)
			w.text(c)
			w.raw(`</th>`)
		}
		w.raw(`</tr></thead><tbody>`)
		for _, row := range cells {
			w.raw(`<tr>`)
			for _, v := range row {
				w.raw(`<td>`)
				w.text(v)
				w.raw(`</td>`)
			}
			w.raw(`</tr>`)
		}
		w.raw(`</tbody></table><p class="count">`)
		w.text(fmt.Sprintf("Showing %d of %d rows", len(cells), total))
		w.raw(`</p></section>`)
		return w.err
	})
}

// DisplayCell formats a cell for HTML tables. Missing values render empty.
func DisplayCell(v any) string {
	if v == nil {
		return ""
	}
	return table.FormatCell(v)
}
