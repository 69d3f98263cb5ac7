package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/tabledata/internal/core"
	"github.com/JonMunkholm/tabledata/internal/logging"
	"github.com/JonMunkholm/tabledata/internal/web/templates"
)

type tableDetail struct {
	Key       string   `json:"key"`
	Columns   []string `json:"columns"`
	Dtypes    []string `json:"dtypes"`
	Rows      [][]any  `json:"rows"`
	TotalRows int      `json:"total_rows"`
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	summaries := s.tableSummaries()
	s.mu.Unlock()

	type entry struct {
		Key     string `json:"key"`
		Rows    int    `json:"rows"`
		Columns int    `json:"columns"`
	}
	out := make([]entry, len(summaries))
	for i, t := range summaries {
		out[i] = entry{Key: t.Key, Rows: t.Rows, Columns: t.Columns}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tables": out})
}

// handleGetTable returns the first ?limit= rows of a stored table.
func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	limit := parseIntParam(r, "limit", defaultLimit)

	s.mu.Lock()
	f, ok := s.session.Store.Get(key)
	s.mu.Unlock()
	if !ok {
		s.respondError(w, r, &core.TableNotFoundError{Key: key})
		return
	}

	n := min(limit, len(f.Rows))
	rows := make([][]any, n)
	for i := range n {
		row := make([]any, len(f.Rows[i]))
		for j, v := range f.Rows[i] {
			row[j] = jsonCell(v)
		}
		rows[i] = row
	}

	dtypes := make([]string, len(f.Columns))
	for i, k := range f.Dtypes() {
		dtypes[i] = k.String()
	}

	writeJSON(w, http.StatusOK, tableDetail{
		Key:       key,
		Columns:   f.Columns,
		Dtypes:    dtypes,
		Rows:      rows,
		TotalRows: len(f.Rows),
	})
}

func (s *Server) handleRemoveTable(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	s.mu.Lock()
	removed := s.session.Store.Remove(key)
	s.mu.Unlock()

	logging.FromContext(r.Context()).Info("table removed", "key", key, "removed", removed)
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (s *Server) handleClearTables(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	n := s.session.Store.Len()
	s.session.Store.Clear()
	s.mu.Unlock()

	logging.FromContext(r.Context()).Info("tables cleared", "count", n)
	writeJSON(w, http.StatusOK, map[string]int{"cleared": n})
}

// handleSaveTable writes a stored table to the data directory.
func (s *Server) handleSaveTable(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	format, err := s.parseFormat(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.mu.Lock()
	path, err := s.session.Persist(key, format)
	s.mu.Unlock()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("table saved", "key", key, "format", format, "path", path)
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "format": format.String(), "path": path})
}

// handleTablePage renders an HTML preview of a stored table.
func (s *Server) handleTablePage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	limit := parseIntParam(r, "limit", defaultLimit)

	s.mu.Lock()
	f, ok := s.session.Store.Get(key)
	s.mu.Unlock()
	if !ok {
		s.respondError(w, r, &core.TableNotFoundError{Key: key})
		return
	}

	n := min(limit, len(f.Rows))
	cells := make([][]string, n)
	for i := range n {
		cells[i] = make([]string, len(f.Columns))
		for j, v := range f.Rows[i] {
			cells[i][j] = templates.DisplayCell(v)
		}
	}
	s.render(w, r, http.StatusOK, templates.Page(key, templates.Preview(key, f.Columns, cells, len(f.Rows))))
}
