// Package storage defines the Storage interface: the contract any
// database backend must satisfy to work with the feedback API.
//
// Handlers depend only on this interface, so tests can pass a fake and
// the SQLite backend can be swapped without touching the HTTP layer.
package storage

import (
	"errors"

	"github.com/aanand-mishra/feedback/internal/types"
)

// ErrNotFound is returned (wrapped) when a lookup by id matches nothing.
var ErrNotFound = errors.New("feedback not found")

// Storage is the database contract.
type Storage interface {
	// CreateFeedback inserts a new feedback record and returns it as
	// stored, including the generated id and creation time.
	CreateFeedback(name string, email string, message string) (types.Feedback, error)

	// GetFeedbackByID fetches a single record by primary key.
	// Returns an error wrapping ErrNotFound if there is no such record.
	GetFeedbackByID(id int64) (types.Feedback, error)

	// GetFeedbacks returns every record, oldest first.
	// Returns an empty slice (not nil) if there are none.
	GetFeedbacks() ([]types.Feedback, error)
}
