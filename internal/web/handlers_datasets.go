package web

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/tabledata/internal/logging"
)

// handleListDatasets lists the files in the data directory. A missing
// directory yields an empty list.
func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	files, err := s.session.Manager.ListFiles()
	s.mu.Unlock()

	exists := true
	if errors.Is(err, fs.ErrNotExist) {
		files, err, exists = []string{}, nil, false
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"base_dir": s.session.Manager.BaseDir(),
		"exists":   exists,
		"files":    files,
	})
}

// handleLoadDataset reads a persisted file into the session store.
func (s *Server) handleLoadDataset(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	format, err := s.parseFormat(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.mu.Lock()
	frame, err := s.session.Restore(key, format)
	s.mu.Unlock()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rows, cols := frame.Shape()
	logging.FromContext(r.Context()).Info("dataset loaded", "key", key, "format", format, "rows", rows)

	writeJSON(w, http.StatusOK, map[string]any{
		"key":     key,
		"format":  format.String(),
		"rows":    rows,
		"columns": cols,
	})
}
