// Package middleware holds the http.Handler wrappers every API request
// passes through: request ids, request logging, and CORS.
//
// A middleware has the signature func(http.Handler) http.Handler: it
// receives the next handler in the chain and returns a new handler that
// does some work before and/or after calling next.ServeHTTP.
package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/feedback/internal/utils/mask"
	"github.com/google/uuid"
)

// RequestIDHeader is read from incoming requests and echoed on responses.
const RequestIDHeader = "X-Request-ID"

// maxLoggedPayload caps how much of a request body the debug log shows.
const maxLoggedPayload = 1000

type ctxKey struct{}

// Chain applies middlewares so the first one listed runs first.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// RequestIDFrom returns the id RequestID stored on ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// RequestID keeps the caller's X-Request-ID or generates a new uuid, and
// makes it available both on the response and in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (sr *statusRecorder) Unwrap() http.ResponseWriter { return sr.ResponseWriter }

// RequestLogger logs one line per request after it completes.
//
// When debug logging is enabled it also logs the first maxLoggedPayload
// bytes of the body, with any "email" value masked. The body is restored
// before the handler reads it.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			var payload []byte
			if r.Body != nil && logger.Enabled(r.Context(), slog.LevelDebug) {
				payload, _ = io.ReadAll(io.LimitReader(r.Body, maxLoggedPayload))
				r.Body = readCloser{
					Reader: io.MultiReader(bytes.NewReader(payload), r.Body),
					Closer: r.Body,
				}
			}

			sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(sr, r)

			logger.Info("request",
				slog.String("request_id", RequestIDFrom(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sr.statusCode),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			)

			if len(payload) > 0 {
				logger.Debug("request data",
					slog.String("request_id", RequestIDFrom(r.Context())),
					slog.String("query", r.URL.RawQuery),
					slog.String("payload", mask.JSONEmail(string(payload))),
				)
			}
		})
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}

// CORS allows a browser page served from origin to call the API.
// origin "*" allows any origin. Preflight OPTIONS requests are answered
// here and never reach the router.
func CORS(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
			if origin != "*" {
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
