// Package web provides the HTTP server and handlers for the table UI.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/tabledata/internal/core"
	"github.com/JonMunkholm/tabledata/internal/ingest"
	"github.com/JonMunkholm/tabledata/internal/table"
	webmw "github.com/JonMunkholm/tabledata/internal/web/middleware"
)

// Session is the state the server operates on.
type Session = core.Session[*table.Frame]

// Options configures the server. Zero values fall back to defaults.
type Options struct {
	MaxUploadSize        int64
	MaxConcurrentUploads int
	MaxUploadWait        time.Duration
	RequestTimeout       time.Duration

	// Encoding and Separator apply to uploaded CSV files.
	Encoding  string
	Separator rune

	// DefaultFormat is used by save and load requests without ?format=.
	DefaultFormat core.Format

	TrustedProxies []string
}

// DefaultMaxUploadSize is the upload limit when Options.MaxUploadSize is unset (100MB).
const DefaultMaxUploadSize = 100 * 1024 * 1024

func (o Options) withDefaults() Options {
	if o.MaxUploadSize <= 0 {
		o.MaxUploadSize = DefaultMaxUploadSize
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 60 * time.Second
	}
	if o.Encoding == "" {
		o.Encoding = ingest.DefaultEncoding
	}
	if o.Separator == 0 {
		o.Separator = ingest.DefaultSeparator
	}
	if !o.DefaultFormat.Valid() {
		o.DefaultFormat = core.DefaultFormat
	}
	return o
}

// Server is the HTTP server for the table UI.
//
// The session store is not safe for concurrent use; every handler touching
// the session holds mu.
type Server struct {
	session *Session
	opts    Options
	limiter *core.UploadLimiter

	mu     sync.Mutex
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new Server instance.
func NewServer(session *Session, opts Options) *Server {
	opts = opts.withDefaults()
	s := &Server{
		session: session,
		opts:    opts,
		limiter: core.NewUploadLimiter(opts.MaxConcurrentUploads, opts.MaxUploadWait),
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(webmw.TrustedRealIP(s.opts.TrustedProxies))
	s.router.Use(webmw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.opts.RequestTimeout))
	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Pages
	s.router.Get("/", s.handleIndex)
	s.router.Get("/tables/{key}", s.handleTablePage)
	s.router.Get("/datasets/select", s.handleSelectForm)
	s.router.Post("/datasets/select", s.handleSelect)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/upload", s.handleUpload)
		r.Get("/upload/status", s.handleUploadStatus)

		// Session store
		r.Get("/tables", s.handleListTables)
		r.Delete("/tables", s.handleClearTables)
		r.Get("/tables/{key}", s.handleGetTable)
		r.Delete("/tables/{key}", s.handleRemoveTable)
		r.Post("/tables/{key}/save", s.handleSaveTable)

		// Persisted files
		r.Get("/datasets", s.handleListDatasets)
		r.Post("/datasets/{key}/load", s.handleLoadDataset)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string, readTimeout, writeTimeout, idleTimeout time.Duration) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	slog.Info("starting server", "addr", addr, "base_dir", s.session.Manager.BaseDir())
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and waits for uploads in flight.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	return s.limiter.WaitForDrain(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v as JSON with the given status.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
