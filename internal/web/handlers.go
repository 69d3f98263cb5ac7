package web

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/tabledata/internal/core"
	"github.com/JonMunkholm/tabledata/internal/ingest"
	"github.com/JonMunkholm/tabledata/internal/table"
	"github.com/JonMunkholm/tabledata/internal/web/templates"
)

const (
	uploadLabel  = "Upload a data file"
	selectLabel  = "Select an existing dataset"
	defaultLimit = 50
)

// handleIndex renders the dashboard: upload form, loaded tables and the
// dataset selection widget.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	accept := make([]string, len(ingest.AcceptedTypes))
	for i, t := range ingest.AcceptedTypes {
		accept[i] = string(t)
	}

	s.mu.Lock()
	summaries := s.tableSummaries()
	s.mu.Unlock()

	s.render(w, r, http.StatusOK, templates.Page("Table data",
		templates.UploadForm(uploadLabel, accept),
		templates.TableList(summaries),
		s.datasetWidget(),
	))
}

// handleSelectForm renders only the dataset selection widget.
func (s *Server) handleSelectForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, s.datasetWidget())
}

// handleSelect resolves a selected file name to its full path. The response
// carries a null path when nothing usable was selected.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, err)
		return
	}
	name := r.PostForm.Get("file")

	var path *string
	if name != "" {
		files, err := s.session.Manager.ListFiles()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.respondError(w, r, err)
			return
		}
		for _, f := range files {
			if f == name {
				full := filepath.Join(s.session.Manager.BaseDir(), f)
				path = &full
				break
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]*string{"path": path})
}

// datasetWidget lists the persisted files, or explains why there is nothing
// to select.
func (s *Server) datasetWidget() templ.Component {
	dir := s.session.Manager.BaseDir()

	files, err := s.session.Manager.ListFiles()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return templates.InfoNotice(fmt.Sprintf("Directory '%s' does not exist.", dir))
	case err != nil:
		msg := core.MapError(err)
		return templates.ErrorAlert(msg.Message, msg.Action, msg.Code)
	case len(files) == 0:
		return templates.InfoNotice("No saved data found.")
	}
	return templates.DatasetSelect(selectLabel, dir, files)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		s.respondError(w, r, err)
	}
}

// tableSummaries must be called with mu held.
func (s *Server) tableSummaries() []templates.TableSummary {
	keys := s.session.Store.Keys()
	out := make([]templates.TableSummary, 0, len(keys))
	for _, k := range keys {
		f, _ := s.session.Store.Get(k)
		rows, cols := f.Shape()
		out = append(out, templates.TableSummary{Key: k, Rows: rows, Columns: cols})
	}
	return out
}

// parseFormat reads ?format=, falling back to the configured default.
func (s *Server) parseFormat(r *http.Request) (core.Format, error) {
	v := r.URL.Query().Get("format")
	if v == "" {
		return s.opts.DefaultFormat, nil
	}
	return core.ParseFormat(v)
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}

// jsonCell makes a cell encodable; encoding/json rejects NaN and Inf.
func jsonCell(v any) any {
	f, ok := v.(float64)
	switch {
	case !ok:
		return v
	case math.IsNaN(f):
		return nil
	case math.IsInf(f, 0):
		return table.FormatCell(f)
	}
	return f
}
