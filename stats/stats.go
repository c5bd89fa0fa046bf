// Package stats keeps aggregated per-tick simulation counters (live and
// terminated processes, memory usage, event queue depth, …) for an external
// logging/visualization collaborator to poll. The kernel only ever writes;
// it never blocks on or depends on a consumer.
package stats

import (
	"sync"
	"time"
)

// Snapshot is the immutable view of the kernel state after one tick.
type Snapshot struct {
	Tick             uint64  `json:"tick"`
	Time             float64 `json:"time"`
	LiveProcesses    int     `json:"liveProcesses"`
	TotalProcesses   int     `json:"totalProcesses"`
	Terminated       int     `json:"terminated"`
	MemoryUsagePct   float64 `json:"memoryUsagePct"`
	EventQueueDepth  int     `json:"eventQueueDepth"`
	EventsDispatched int     `json:"eventsDispatched"`
	HandlerFailures  uint64  `json:"handlerFailures"`
	Births           uint64  `json:"births"`
	Deaths           uint64  `json:"deaths"`
	CapturedAt       time.Time
}

// Tracker keeps the latest snapshot and cumulative lifecycle counters. It is
// safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	latest   Snapshot
	births   uint64
	deaths   uint64
	onChange func(Snapshot)
}

// New creates a tracker. The optional onChange callback is invoked with a
// copy of every recorded snapshot outside the critical section, so it can do
// slow work (JSON encoding, I/O) without blocking the kernel.
func New(onChange func(Snapshot)) *Tracker {
	return &Tracker{onChange: onChange}
}

// RecordBirth increments the cumulative birth counter.
func (t *Tracker) RecordBirth() {
	t.mu.Lock()
	t.births++
	t.mu.Unlock()
}

// RecordDeath increments the cumulative death counter.
func (t *Tracker) RecordDeath() {
	t.mu.Lock()
	t.deaths++
	t.mu.Unlock()
}

// Record stores the supplied snapshot, stamping it with the cumulative
// birth/death counters.
func (t *Tracker) Record(snapshot Snapshot) {
	t.mu.Lock()
	snapshot.Births = t.births
	snapshot.Deaths = t.deaths
	t.latest = snapshot
	callback := t.onChange
	t.mu.Unlock()

	if callback != nil {
		callback(snapshot)
	}
}

// Latest returns a copy of the most recent snapshot.
func (t *Tracker) Latest() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest
}
