// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, the API client and the form can all import types
// without depending on each other.
package types

import "time"

// Feedback is one persisted feedback record.
//
// Email is stored but never sent back to API consumers, so its json tag
// is "-". The form only ever sees id, name, message and createdAt.
type Feedback struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"-"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// FeedbackRequest is the body of POST /api/feedbacks.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  controls how the field appears when encoded to JSON.
//
//  2. validate:"..." rules checked by the go-playground/validator
//     package. "notblank" (whitespace-only counts as missing) and
//     "personname" (letters and spaces only) are registered by the
//     handler package.
type FeedbackRequest struct {
	Name    string `json:"name"    validate:"notblank,personname"`
	Email   string `json:"email"   validate:"notblank,email"`
	Message string `json:"message" validate:"notblank"`
}

// FeedbackRecord is Feedback as the client receives it: the timestamp is
// kept as a string so the caller decides how to parse and normalise it.
type FeedbackRecord struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}
