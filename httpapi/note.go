// Package httpapi is the subject for the HTTP handler lessons: a small
// JSON notes API built on chi, with request-ID middleware and Prometheus
// metrics. The tests show httptest recorders and servers, routing URL
// params through chi, exercising middleware in isolation, and asserting
// on metrics through an injected registry.
package httpapi

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNoteNotFound is returned when no note exists for the given ID.
	ErrNoteNotFound = errors.New("note not found")
	// ErrEmptyTitle is returned when a note is created without a title.
	ErrEmptyTitle = errors.New("note title is empty")
)

// Note is a stored note.
type Note struct {
	ID        string
	Title     string
	Body      string
	CreatedAt time.Time
}

// NoteService defines the operations the HTTP handler depends on.
// Handler tests substitute a mock; the server tests use MemoryStore.
type NoteService interface {
	Create(ctx context.Context, title, body string) (Note, error)
	Get(ctx context.Context, id string) (Note, error)
	List(ctx context.Context) ([]Note, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore is a map-backed NoteService safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	notes map[string]Note
	order []string
	now   func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		notes: make(map[string]Note),
		now:   time.Now,
	}
}

// Ensure MemoryStore implements NoteService.
var _ NoteService = (*MemoryStore)(nil)

// Create stores a new note and returns it with a generated ID.
func (s *MemoryStore) Create(ctx context.Context, title, body string) (Note, error) {
	if strings.TrimSpace(title) == "" {
		return Note{}, ErrEmptyTitle
	}

	select {
	case <-ctx.Done():
		return Note{}, ctx.Err()
	default:
	}

	note := Note{
		ID:        uuid.NewString(),
		Title:     title,
		Body:      body,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes[note.ID] = note
	s.order = append(s.order, note.ID)
	return note, nil
}

// Get returns the note with the given ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return Note{}, ErrNoteNotFound
	}
	return note, nil
}

// List returns all notes in creation order.
func (s *MemoryStore) List(ctx context.Context) ([]Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]Note, 0, len(s.order))
	for _, id := range s.order {
		notes = append(notes, s.notes[id])
	}
	return notes, nil
}

// Delete removes the note with the given ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return ErrNoteNotFound
	}
	delete(s.notes, id)
	for i, stored := range s.order {
		if stored == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len reports how many notes are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}
