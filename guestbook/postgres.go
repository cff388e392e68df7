package guestbook

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects to the database and verifies the connection.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Pool returns the underlying pool for test lifecycle operations.
func (s *PostgresStore) Pool() *pgxpool.Pool {
	return s.pool
}

// Migrate creates the schema if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS guestbook_entries (
			id BIGSERIAL PRIMARY KEY,
			author TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Add stores a new entry.
func (s *PostgresStore) Add(ctx context.Context, author, message string) (Entry, error) {
	if strings.TrimSpace(author) == "" {
		return Entry{}, ErrEmptyAuthor
	}
	if strings.TrimSpace(message) == "" {
		return Entry{}, ErrEmptyMessage
	}

	query := `
		INSERT INTO guestbook_entries (author, message)
		VALUES ($1, $2)
		RETURNING id, author, message, created_at
	`

	var entry Entry
	err := s.pool.QueryRow(ctx, query, author, message).Scan(
		&entry.ID,
		&entry.Author,
		&entry.Message,
		&entry.CreatedAt,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to add entry: %w", err)
	}

	return entry, nil
}

// Get retrieves an entry by ID.
func (s *PostgresStore) Get(ctx context.Context, id int64) (Entry, error) {
	query := `
		SELECT id, author, message, created_at
		FROM guestbook_entries
		WHERE id = $1
	`

	var entry Entry
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&entry.ID,
		&entry.Author,
		&entry.Message,
		&entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, ErrEntryNotFound
		}
		return Entry{}, fmt.Errorf("failed to get entry: %w", err)
	}

	return entry, nil
}

// Recent returns up to limit entries, newest first. Ties on the timestamp
// break by ID so the order is stable.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, author, message, created_at
		FROM guestbook_entries
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.Author, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	return entries, nil
}

// CountByAuthor counts the entries signed by author.
func (s *PostgresStore) CountByAuthor(ctx context.Context, author string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM guestbook_entries WHERE author = $1`, author,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// Delete removes an entry by ID.
func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM guestbook_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// HealthCheck verifies the store is reachable.
func (s *PostgresStore) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
