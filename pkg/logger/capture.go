package logger

import (
	"encoding/json"
	"strings"
	"sync"
)

// Entry is one decoded log line.
type Entry map[string]interface{}

// Message returns the entry's msg field, or "" if absent.
func (e Entry) Message() string {
	s, _ := e["msg"].(string)
	return s
}

// Level returns the entry's level field, or "" if absent.
func (e Entry) Level() string {
	s, _ := e["level"].(string)
	return s
}

// Capture is an io.Writer that decodes each log line into an Entry. Tests
// hand it to New and then assert on Entries instead of parsing raw bytes.
type Capture struct {
	mu      sync.Mutex
	entries []Entry
}

// NewCapture creates an empty Capture.
func NewCapture() *Capture {
	return &Capture{}
}

// Write decodes p as newline-separated JSON objects. Lines that do not
// decode are dropped.
func (c *Capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, line := range strings.Split(string(p), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		c.entries = append(c.entries, entry)
	}

	return len(p), nil
}

// Entries returns a copy of the decoded entries in arrival order.
func (c *Capture) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Last returns the most recent entry, or ok=false if nothing was logged.
func (c *Capture) Last() (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) == 0 {
		return nil, false
	}
	return c.entries[len(c.entries)-1], true
}

// Reset discards all captured entries.
func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}
