// Package server exposes the rumor trending service over HTTP.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"pjuskeby-rumors/internal/storage"
	"pjuskeby-rumors/internal/trending"

	"github.com/gorilla/mux"
)

// Options tune the server; zero values fall back to sensible defaults.
type Options struct {
	HotThreshold float64
	TopN         int
	DigestDays   int
	// OutputDir/Channel locate generated newsletters for /newsletter/latest.
	OutputDir string
	Channel   string
	// Now is the clock used for scoring; tests pin it. Defaults to time.Now.
	Now func() time.Time
}

// Server holds the handlers and their collaborators.
type Server struct {
	store storage.Store
	opts  Options
}

func New(store storage.Store, opts Options) *Server {
	if opts.HotThreshold == 0 {
		opts.HotThreshold = trending.DefaultHotThreshold
	}
	if opts.TopN <= 0 {
		opts.TopN = 5
	}
	if opts.DigestDays <= 0 {
		opts.DigestDays = 7
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{store: store, opts: opts}
}

// Router wires all routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(logMiddleware)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/rumors", s.handleListRumors).Methods(http.MethodGet)
	r.HandleFunc("/rumors/trending", s.handleTrending).Methods(http.MethodGet)
	r.HandleFunc("/rumors/{id}", s.handleGetRumor).Methods(http.MethodGet)
	r.HandleFunc("/rumors/{id}/view", s.handleView).Methods(http.MethodPost)
	r.HandleFunc("/rumors/{id}/react", s.handleReact).Methods(http.MethodPost)
	r.HandleFunc("/newsletter/digest", s.handleDigest).Methods(http.MethodGet)
	r.HandleFunc("/newsletter/latest", s.handleLatestNewsletter).Methods(http.MethodGet)
	return r
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &loggingWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lw, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", lw.status,
			"duration", time.Since(start),
		)
	})
}

type loggingWriter struct {
	http.ResponseWriter
	status int
}

func (w *loggingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("server: encode response", "err", err)
	}
}

// writeStoreError maps the storage error taxonomy onto HTTP statuses.
// Unexpected errors are logged and reported without internal detail.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case err == storage.ErrNotFound:
		writeJSON(w, http.StatusNotFound, errorBody{Error: "rumor not found"})
	case err == storage.ErrInvalidReaction:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "reactionType must be one of confirmed, debunked, shared"})
	default:
		slog.Error("server: store error", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "store unavailable"})
	}
}

type errorBody struct {
	Error string `json:"error"`
}
