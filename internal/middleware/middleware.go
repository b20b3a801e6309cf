package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/logger"
	"newsdesk/internal/metrics"
)

// RequestIDKey is the key used to store the request ID in the context
type RequestIDKey string

const (
	// RequestIDHeader is the header name for the request ID
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey is the context key for the request ID
	RequestIDContextKey RequestIDKey = "request_id"
)

// RequestID returns the request ID stored in ctx, or "" if there is none.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDContextKey).(string)
	return id
}

// RequestIDMiddleware adds a request ID to the request context and response headers
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			r.Header.Set(RequestIDHeader, requestID)
		}
		w.Header().Set(RequestIDHeader, requestID)
		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoggingMiddleware logs information about each request and counts it in m.
// m may be nil.
func LoggingMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create a custom response writer to capture the status code
			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.ObserveHTTP(r.Method, route, rw.statusCode)

			logger.Log.WithFields(logger.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"route":       route,
				"status":      rw.statusCode,
				"duration":    time.Since(start).String(),
				"request_id":  RequestID(r.Context()),
				"remote_addr": r.RemoteAddr,
			}).Info("Request processed")
		})
	}
}

// Chain wraps h so that request IDs are assigned before logging runs.
func Chain(h http.Handler, m *metrics.Metrics) http.Handler {
	return RequestIDMiddleware(LoggingMiddleware(m)(h))
}

// responseWriter is a custom response writer that captures the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code before writing it
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
