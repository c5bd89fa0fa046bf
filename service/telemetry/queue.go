// Package telemetry provides a bounded in-memory feed the kernel publishes
// per-tick snapshots to. Publishing never blocks: when the feed is full the
// oldest entry is dropped so a slow or absent consumer cannot stall a tick.
package telemetry

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/synthbio/bioos/internal/clock"
)

// Config for the telemetry feed.
type Config struct {
	// Buffer is the maximum number of entries retained before the oldest is
	// dropped.
	Buffer int
}

// DefaultConfig returns a standard feed configuration.
func DefaultConfig() Config {
	return Config{
		Buffer: 1024,
	}
}

// Entry wraps a published payload with its wall-clock publication time.
type Entry[T any] struct {
	Payload   T
	CreatedAt time.Time
}

// Queue is a bounded single-producer feed of simulation telemetry. It is
// safe for concurrent use.
type Queue[T any] struct {
	mu      sync.Mutex
	entries chan *Entry[T]
	dropped atomic.Uint64
}

// NewQueue creates a telemetry feed.
func NewQueue[T any](config Config) *Queue[T] {
	if config.Buffer <= 0 {
		config.Buffer = DefaultConfig().Buffer
	}
	return &Queue[T]{
		entries: make(chan *Entry[T], config.Buffer),
	}
}

// Publish appends the payload without ever blocking the caller; when the
// feed is full the oldest entry is discarded first.
func (q *Queue[T]) Publish(payload T) {
	entry := &Entry[T]{Payload: payload, CreatedAt: clock.Now()}
	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		select {
		case q.entries <- entry:
			return
		default:
			select {
			case <-q.entries:
				q.dropped.Add(1)
			default:
			}
		}
	}
}

// Consume retrieves a single entry, blocking until one is available or the
// context is cancelled.
func (q *Queue[T]) Consume(ctx context.Context) (*Entry[T], error) {
	select {
	case entry := <-q.entries:
		return entry, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryConsume retrieves a single entry without blocking; ok is false when the
// feed is empty.
func (q *Queue[T]) TryConsume() (*Entry[T], bool) {
	select {
	case entry := <-q.entries:
		return entry, true
	default:
		return nil, false
	}
}

// Size returns the current number of buffered entries.
func (q *Queue[T]) Size() int {
	return len(q.entries)
}

// Dropped returns how many entries were discarded due to a full buffer.
func (q *Queue[T]) Dropped() uint64 {
	return q.dropped.Load()
}
