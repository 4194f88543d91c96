// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk: no network, no
// separate server process, nothing to install beyond the driver.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aanand-mishra/feedback/internal/config"
	"github.com/aanand-mishra/feedback/internal/storage"
	"github.com/aanand-mishra/feedback/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB, a connection pool that is safe for concurrent use.
type SQLite struct {
	Db *sql.DB

	// now stamps created_at. Tests replace it with a fixed clock.
	now func() time.Time
}

// New opens the SQLite database at cfg.StoragePath and makes sure the
// feedbacks table exists.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.StoragePath)
}

// Open is New without the config indirection; path may be ":memory:".
func Open(path string) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet; it only validates the
	// driver name. The first actual connection happens on the first query.
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: open db: %w", err)
	}

	// An in-memory database lives and dies with its connection, so the
	// pool must never hold more than one.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent: safe to run on every start.
	//
	// Schema:
	//   id         integer primary key, auto-incremented by SQLite
	//   name       submitter's name
	//   email      submitter's email; stored, never returned by the API
	//   message    free-form feedback text
	//   created_at DATETIME so the driver scans it back into time.Time
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS feedbacks (
			id         INTEGER  PRIMARY KEY AUTOINCREMENT,
			name       TEXT     NOT NULL,
			email      TEXT     NOT NULL,
			message    TEXT     NOT NULL,
			created_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.Open: create table: %w", err)
	}

	return &SQLite{Db: db, now: time.Now}, nil
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateFeedback inserts a new row into the feedbacks table and returns the
// stored record.
//
// Values go through ? placeholders, never string concatenation: the driver
// sends query and values separately so user input is never parsed as SQL.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateFeedback(name, email, message string) (types.Feedback, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO feedbacks (name, email, message, created_at) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return types.Feedback{}, fmt.Errorf("CreateFeedback: prepare: %w", err)
	}
	defer stmt.Close()

	createdAt := s.now().UTC()

	result, err := stmt.Exec(name, email, message, createdAt)
	if err != nil {
		return types.Feedback{}, fmt.Errorf("CreateFeedback: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return types.Feedback{}, fmt.Errorf("CreateFeedback: last insert id: %w", err)
	}

	return types.Feedback{
		ID:        lastID,
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: createdAt,
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetFeedbackByID fetches exactly one row matched by primary key.
//
// QueryRow does not report "no match" by itself; sql.ErrNoRows surfaces
// only when Scan is called.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetFeedbackByID(id int64) (types.Feedback, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, email, message, created_at FROM feedbacks WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Feedback{}, fmt.Errorf("GetFeedbackByID: prepare: %w", err)
	}
	defer stmt.Close()

	var feedback types.Feedback

	err = stmt.QueryRow(id).Scan(
		&feedback.ID,
		&feedback.Name,
		&feedback.Email,
		&feedback.Message,
		&feedback.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Feedback{}, fmt.Errorf("no feedback found with id %d: %w", id, storage.ErrNotFound)
		}
		return types.Feedback{}, fmt.Errorf("GetFeedbackByID: scan: %w", err)
	}

	return feedback, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetFeedbacks returns all rows, oldest first.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetFeedbacks() ([]types.Feedback, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, email, message, created_at FROM feedbacks ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetFeedbacks: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetFeedbacks: query: %w", err)
	}
	defer rows.Close()

	// Non-nil so the JSON encoding is [] rather than null.
	feedbacks := make([]types.Feedback, 0)

	for rows.Next() {
		var feedback types.Feedback

		if err := rows.Scan(
			&feedback.ID,
			&feedback.Name,
			&feedback.Email,
			&feedback.Message,
			&feedback.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("GetFeedbacks: scan row: %w", err)
		}

		feedbacks = append(feedbacks, feedback)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetFeedbacks: rows iteration: %w", err)
	}

	return feedbacks, nil
}
