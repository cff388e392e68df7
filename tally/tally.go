// Package tally provides non-blocking, batched event counting. Events are
// recorded from any goroutine, accumulated in a background loop, and
// flushed to a Flusher by batch size, by timer, and on shutdown. It is the
// subject of the concurrency testing lesson in tally_test.go.
package tally

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gotestbook/gotestbook/pkg/logger"
)

// Flusher persists accumulated event counts.
type Flusher interface {
	Flush(ctx context.Context, counts map[string]int64) error
}

// Config holds configuration for the Counter.
type Config struct {
	FlushInterval time.Duration // How often to flush accumulated counts
	BatchSize     int           // Flush when this many events have accumulated
	ChannelBuffer int           // Size of the event channel buffer
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		FlushInterval: 10 * time.Second,
		BatchSize:     100,
		ChannelBuffer: 10000,
	}
}

// Counter counts named events without ever blocking the caller. When the
// channel buffer is full, events are dropped; the counter trades loss under
// extreme pressure for never stalling the hot path.
type Counter struct {
	flusher Flusher
	log     *logger.Logger
	cfg     Config

	eventChan chan string
	counts    map[string]int64
	countsMu  sync.Mutex
	pending   int64

	stopOnce sync.Once
	stopChan chan struct{}
	doneChan chan struct{}
	stopped  atomic.Bool
}

// New creates a Counter and starts its background loop. A nil log
// discards; flush failures are logged, not returned.
func New(cfg Config, flusher Flusher, log *logger.Logger) *Counter {
	def := DefaultConfig()
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = def.FlushInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.ChannelBuffer <= 0 {
		cfg.ChannelBuffer = def.ChannelBuffer
	}
	if log == nil {
		log = logger.New(io.Discard, "info")
	}

	c := &Counter{
		flusher:   flusher,
		log:       log,
		cfg:       cfg,
		eventChan: make(chan string, cfg.ChannelBuffer),
		counts:    make(map[string]int64),
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}

	go c.run()
	return c
}

// Record counts one occurrence of event. It never blocks: if the buffer is
// full the event is dropped, and after Stop it is a no-op.
func (c *Counter) Record(event string) {
	if c.stopped.Load() {
		return
	}

	select {
	case c.eventChan <- event:
	default:
	}
}

// Stop drains buffered events, performs a final flush and stops the
// background loop. It is safe to call more than once.
func (c *Counter) Stop() {
	c.stopOnce.Do(func() {
		c.stopped.Store(true)
		close(c.stopChan)
		<-c.doneChan
	})
}

// Pending returns a snapshot of counts accumulated since the last flush.
func (c *Counter) Pending() map[string]int64 {
	c.countsMu.Lock()
	defer c.countsMu.Unlock()

	result := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		result[k] = v
	}
	return result
}

// run is the main loop that accumulates events and flushes periodically.
func (c *Counter) run() {
	defer close(c.doneChan)

	ticker := time.NewTicker(c.cfg.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case event := <-c.eventChan:
			c.countsMu.Lock()
			c.counts[event]++
			c.pending++
			shouldFlush := int(c.pending) >= c.cfg.BatchSize
			c.countsMu.Unlock()

			if shouldFlush {
				c.flush()
			}

		case <-ticker.C:
			c.flush()

		case <-c.stopChan:
			c.drain()
			c.flush()
			return
		}
	}
}

// drain consumes whatever is left in the event channel.
func (c *Counter) drain() {
	for {
		select {
		case event := <-c.eventChan:
			c.countsMu.Lock()
			c.counts[event]++
			c.pending++
			c.countsMu.Unlock()
		default:
			return
		}
	}
}

// flush hands the accumulated counts to the flusher and resets.
func (c *Counter) flush() {
	c.countsMu.Lock()
	if len(c.counts) == 0 {
		c.countsMu.Unlock()
		return
	}

	// Swap maps so the lock is held only for the exchange.
	toFlush := c.counts
	c.counts = make(map[string]int64)
	c.pending = 0
	c.countsMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.flusher.Flush(ctx, toFlush); err != nil {
		c.log.Error("flush failed", "error", err.Error(), "events", len(toFlush))
	}
}
