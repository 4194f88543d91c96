// Package router wires handlers and middleware into the API's http.Handler.
package router

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/feedback/internal/http/handlers/feedback"
	"github.com/aanand-mishra/feedback/internal/http/middleware"
	"github.com/aanand-mishra/feedback/internal/storage"
)

// New returns the API handler.
//
// Route table:
//
//	POST /api/feedbacks          store a feedback entry
//	POST /api/feedback/submit    legacy alias of the above
//	GET  /api/feedbacks          list all entries
//	GET  /api/feedbacks/{id}     fetch one entry
func New(store storage.Storage, corsOrigin string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	create := feedback.New(store)
	mux.HandleFunc("POST /api/feedbacks", create)
	mux.HandleFunc("POST /api/feedback/submit", create)
	mux.HandleFunc("GET /api/feedbacks", feedback.GetList(store))
	mux.HandleFunc("GET /api/feedbacks/{id}", feedback.GetByID(store))

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.RequestLogger(logger),
		middleware.CORS(corsOrigin),
	)
}
