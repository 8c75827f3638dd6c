// Package server serves saved snapshots to the dashboard front end.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/princespaghetti/plfetch/internal/snapshot"
)

const (
	// LayoutISO is the timestamp layout used in the access log.
	LayoutISO = "2006-01-02T15:04:05Z07:00"

	shutdownTimeout = 5 * time.Second
)

// SnapshotReader is the part of the snapshot store the server needs.
type SnapshotReader interface {
	Read(filename string) ([]byte, error)
	Stat(filename string) (*snapshot.FileStatus, error)
}

type ctxKey struct{}

// RequestID returns the id assigned to a request by the access log middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// HTTPServer exposes snapshot files over HTTP.
type HTTPServer struct {
	server *http.Server
	store  SnapshotReader
	files  []string
	logger zerolog.Logger
}

// New creates a server on addr serving the named files (plus the manifest).
func New(addr string, store SnapshotReader, files []string, logger zerolog.Logger) *HTTPServer {
	s := &HTTPServer{
		server: &http.Server{Addr: addr, ReadHeaderTimeout: 10 * time.Second},
		store:  store,
		files:  append(append([]string{}, files...), snapshot.ManifestFile),
		logger: logger,
	}
	s.server.Handler = s.Handler()
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *HTTPServer) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", s.index).Methods(http.MethodGet, http.MethodHead)
	for _, name := range s.files {
		router.HandleFunc("/"+name, s.file(name)).Methods(http.MethodGet, http.MethodHead)
	}

	handler := s.accessLogMiddleware(router)
	handler = s.panicMiddleware(handler)
	return handler
}

// Serve blocks until the server is stopped.
func (s *HTTPServer) Serve() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("starting http server")
	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen on %s: %w", s.server.Addr, err)
	}
	return nil
}

// Addr returns the configured listen address.
func (s *HTTPServer) Addr() string {
	return s.server.Addr
}

// StopServe shuts the server down, waiting briefly for in-flight requests.
func (s *HTTPServer) StopServe() {
	s.logger.Info().Msg("stopping http server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("http server shutdown")
	}
}

// indexEntry describes one served file.
type indexEntry struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Available bool      `json:"available"`
	SizeBytes int64     `json:"size_bytes,omitempty"`
	Modified  time.Time `json:"modified"`
}

func (s *HTTPServer) index(w http.ResponseWriter, r *http.Request) {
	entries := make([]indexEntry, 0, len(s.files))
	for _, name := range s.files {
		entry := indexEntry{Name: name, URL: "/" + name}
		if st, err := s.store.Stat(name); err == nil && st.Exists {
			entry.Available = true
			entry.SizeBytes = st.SizeBytes
			entry.Modified = st.Modified
		}
		entries = append(entries, entry)
	}
	s.httpAnswer(w, entries, http.StatusOK)
}

func (s *HTTPServer) file(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := s.store.Read(name)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				s.httpError(r.Context(), w, name+" has not been fetched yet", http.StatusNotFound)
				return
			}
			s.httpError(r.Context(), w, "cannot read "+name, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		if r.Method != http.MethodHead {
			_, _ = w.Write(data)
		}
	}
}

func (s *HTTPServer) accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := context.WithValue(r.Context(), ctxKey{}, uuid.NewString())

		next.ServeHTTP(w, r.WithContext(ctx))

		s.logger.Info().
			Str("request_id", RequestID(ctx)).
			Str("remote", r.RemoteAddr).
			Str("start", start.Format(LayoutISO)).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("latency", time.Since(start)).
			Msg("request")
	})
}

func (s *HTTPServer) panicMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error().Interface("panic", err).Str("path", r.URL.Path).Msg("recovered")
				s.httpError(r.Context(), w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) httpError(ctx context.Context, w http.ResponseWriter, msg string, code int) {
	s.logger.Warn().Str("request_id", RequestID(ctx)).Int("status", code).Msg(msg)
	http.Error(w, msg, code)
}

func (s *HTTPServer) httpAnswer(w http.ResponseWriter, msg interface{}, code int) {
	jmsg, err := json.Marshal(msg)
	if err != nil {
		code = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(jmsg) //nolint:errcheck
}
