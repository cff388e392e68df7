// Package guestbook is the subject for the Postgres integration lessons: a
// pgx-backed store with the full test lifecycle around it. The suite in
// postgres_test.go gates itself on TEST_POSTGRES_DSN and wipes the table
// before every test; container_test.go runs the same store against a
// database testcontainers starts just for the test.
package guestbook

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrEntryNotFound is returned when no entry exists for the given ID.
	ErrEntryNotFound = errors.New("guestbook entry not found")
	// ErrEmptyAuthor is returned when an entry is added without an author.
	ErrEmptyAuthor = errors.New("guestbook author is empty")
	// ErrEmptyMessage is returned when an entry is added without a message.
	ErrEmptyMessage = errors.New("guestbook message is empty")
)

// Entry is one guestbook entry.
type Entry struct {
	ID        int64
	Author    string
	Message   string
	CreatedAt time.Time
}

// Store defines the guestbook persistence operations.
type Store interface {
	// Add stores a new entry and returns it with ID and timestamp filled in.
	Add(ctx context.Context, author, message string) (Entry, error)

	// Get retrieves an entry by ID.
	Get(ctx context.Context, id int64) (Entry, error)

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)

	// CountByAuthor counts the entries signed by author.
	CountByAuthor(ctx context.Context, author string) (int64, error)

	// Delete removes an entry by ID.
	Delete(ctx context.Context, id int64) error

	// HealthCheck verifies the store is reachable.
	HealthCheck(ctx context.Context) error
}
