package httpapi

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// NewHandler returns the production handler (mux + observability middleware).
//
// Tests can still use NewMux directly to avoid noisy logs unless needed.
func NewHandler(opt Options) http.Handler {
	s := newServer(opt)
	return s.withObservability(s.mux())
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func (w *statusWriter) WriteHeader(statusCode int) {
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

// requestID keeps a caller supplied id when it is a UUID and mints one
// otherwise.
func requestID(r *http.Request) string {
	if id, err := uuid.Parse(r.Header.Get(requestIDHeader)); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

func (s *server) withObservability(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := requestID(r)
		w.Header().Set(requestIDHeader, id)

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}

		pattern := r.Pattern
		if pattern == "" {
			pattern = r.Method + " (unmatched)"
		}
		s.metrics.incRequest(pattern, status)

		// Never log the query string or the subscription path.
		if r.URL.Path != "/healthz" && r.URL.Path != "/metrics" {
			dur := time.Since(start).Round(time.Millisecond)
			log.Printf("http %s pattern=%q status=%d dur=%s bytes=%d req_id=%s", r.Method, pattern, status, dur, sw.bytes, id)
		}
	})
}
