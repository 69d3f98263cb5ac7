package web

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/JonMunkholm/tabledata/internal/ingest"
	"github.com/JonMunkholm/tabledata/internal/logging"
)

type uploadResponse struct {
	UploadID string   `json:"upload_id"`
	Key      string   `json:"key"`
	FileName string   `json:"file_name"`
	Rows     int      `json:"rows"`
	Columns  []string `json:"columns"`
	Bytes    int64    `json:"bytes"`
}

// handleUpload parses a multipart file upload into the session store.
//
// Form fields: file (required) and key (optional, defaults to the file name
// without extension). Workbooks contribute their first sheet.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.limiter.Acquire(ctx); err != nil {
		s.respondError(w, r, err)
		return
	}
	defer s.limiter.Release()

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			err = errNoFile
		}
		s.respondError(w, r, err)
		return
	}
	defer file.Close()

	typ, err := ingest.DetectType(header.Filename)
	if err == nil && !typ.Accepted() {
		err = fmt.Errorf("%w %q: accepted %v", ingest.ErrUnsupportedType, "."+string(typ), ingest.AcceptedTypes)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	key := strings.TrimSpace(r.FormValue("key"))
	if key == "" {
		base := filepath.Base(header.Filename)
		key = strings.TrimSuffix(base, filepath.Ext(base))
	}

	uploadID := uuid.NewString()
	logger := logging.WithFields(ctx,
		"upload_id", uploadID,
		"file", header.Filename,
		"key", key,
	)
	logger.Info("upload started", "size", header.Size)

	opts := []ingest.Option{
		ingest.WithEncoding(s.opts.Encoding),
		ingest.WithSeparator(s.opts.Separator),
	}

	counter := ingest.NewCountingReader(file, header.Size)
	frame, err := ingest.ReadReader(header.Filename, counter, opts...)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.mu.Lock()
	err = s.session.Store.Add(key, frame)
	s.mu.Unlock()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rows, _ := frame.Shape()
	logger.Info("upload stored", "rows", rows, "columns", len(frame.Columns), "bytes", counter.BytesRead)

	writeJSON(w, http.StatusCreated, uploadResponse{
		UploadID: uploadID,
		Key:      key,
		FileName: header.Filename,
		Rows:     rows,
		Columns:  frame.Columns,
		Bytes:    counter.BytesRead,
	})
}

// handleUploadStatus reports upload slot usage.
func (s *Server) handleUploadStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.limiter.Status())
}
