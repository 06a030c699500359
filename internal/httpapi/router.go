// Package httpapi exposes a screen's task list over HTTP.
package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// NewRouter registers the task routes on a mux router and logs every request.
func NewRouter(handler *TaskHandler, logger *slog.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger(logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)

	r.HandleFunc("/tasks", handler.List).Methods(http.MethodGet)
	r.HandleFunc("/tasks", handler.Create).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id:[0-9]+}/toggle", handler.Toggle).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id:[0-9]+}", handler.Delete).Methods(http.MethodDelete)

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger) mux.MiddlewareFunc {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}
