// Package ring provides a fixed-capacity buffer that keeps the most recent
// values, evicting the oldest on overflow. It is the subject of the array
// and slice comparison lesson in ring_test.go.
package ring

import "errors"

// Buffer errors
var (
	ErrBadCapacity = errors.New("capacity must be positive")
	ErrEmpty       = errors.New("buffer is empty")
)

// Buffer is a fixed-capacity FIFO over ints. Pushing onto a full buffer
// evicts the oldest value.
type Buffer struct {
	values []int
	start  int
	count  int
}

// New creates a Buffer holding at most capacity values.
func New(capacity int) (*Buffer, error) {
	if capacity <= 0 {
		return nil, ErrBadCapacity
	}
	return &Buffer{values: make([]int, capacity)}, nil
}

// Push appends v, evicting the oldest value if the buffer is full.
func (b *Buffer) Push(v int) {
	if b.count < len(b.values) {
		b.values[(b.start+b.count)%len(b.values)] = v
		b.count++
		return
	}
	b.values[b.start] = v
	b.start = (b.start + 1) % len(b.values)
}

// Pop removes and returns the oldest value, or ErrEmpty.
func (b *Buffer) Pop() (int, error) {
	if b.count == 0 {
		return 0, ErrEmpty
	}
	v := b.values[b.start]
	b.start = (b.start + 1) % len(b.values)
	b.count--
	return v, nil
}

// Oldest returns the oldest value without removing it, or ErrEmpty.
func (b *Buffer) Oldest() (int, error) {
	if b.count == 0 {
		return 0, ErrEmpty
	}
	return b.values[b.start], nil
}

// Len returns the number of stored values.
func (b *Buffer) Len() int {
	return b.count
}

// Cap returns the buffer's capacity.
func (b *Buffer) Cap() int {
	return len(b.values)
}

// Values returns the stored values oldest first.
func (b *Buffer) Values() []int {
	out := make([]int, b.count)
	for i := 0; i < b.count; i++ {
		out[i] = b.values[(b.start+i)%len(b.values)]
	}
	return out
}
