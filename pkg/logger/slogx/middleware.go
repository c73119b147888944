package slogx

import (
	"log/slog"
	"net/http"
	"time"
)

// Middleware logs every request start and finish with method, path,
// status and duration.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := Default()

		method := slog.String("method", r.Method)
		path := slog.String("path", r.URL.Path)
		logger.Debug(r.Context(), "start handling request", method, path)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		durAttr := slog.Duration("duration", time.Since(start))
		statusAttr := slog.Int("status", sw.status)
		if sw.status >= http.StatusInternalServerError {
			logger.Error(r.Context(), "finish with server error", method, path, statusAttr, durAttr)
		} else {
			logger.Info(r.Context(), "finish success", method, path, statusAttr, durAttr)
		}
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses working behind the middleware.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
