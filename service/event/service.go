package event

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"
)

// Handler consumes a dispatched event. A non-nil error (or a panic) is
// isolated to the handler: it is logged and counted, never aborting the rest
// of the batch.
type Handler func(*Event) error

// Service is a chronological event queue with type-keyed subscriber dispatch.
// Emission is unordered storage; ordering is enforced at dispatch time.
type Service struct {
	mu          sync.Mutex
	queue       []*Event
	seq         uint64
	subscribers map[Type][]Handler
	failures    atomic.Uint64
}

// New creates a new event service.
func New() *Service {
	return &Service{
		subscribers: make(map[Type][]Handler),
	}
}

// Emit appends the event to the queue unconditionally, stamping it with a
// monotonic emission sequence used as the dispatch tie-break.
func (s *Service) Emit(e *Event) {
	if e == nil {
		return
	}
	s.mu.Lock()
	s.seq++
	e.seq = s.seq
	s.queue = append(s.queue, e)
	s.mu.Unlock()
}

// Subscribe appends the handler to the subscriber list of eventType.
// Handlers registered for the same type run in registration order.
func (s *Service) Subscribe(eventType Type, handler Handler) {
	if handler == nil {
		return
	}
	s.mu.Lock()
	s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	s.mu.Unlock()
}

// ProcessEvents dispatches every queued event with timestamp <= now in
// strictly non-decreasing timestamp order, ties broken by emission order.
// Due events are removed from the queue; events for types without
// subscribers are silently consumed. Events emitted by handlers during
// dispatch join the queue for the next call. Returns the number of events
// dispatched.
func (s *Service) ProcessEvents(now float64) int {
	s.mu.Lock()
	var due, pending []*Event
	for _, e := range s.queue {
		if e.Timestamp <= now {
			due = append(due, e)
		} else {
			pending = append(pending, e)
		}
	}
	s.queue = pending
	s.mu.Unlock()

	if len(due) == 0 {
		return 0
	}
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].Timestamp != due[j].Timestamp {
			return due[i].Timestamp < due[j].Timestamp
		}
		return due[i].seq < due[j].seq
	})

	for _, e := range due {
		for _, handler := range s.handlersFor(e.Type) {
			s.invoke(handler, e)
		}
	}
	return len(due)
}

func (s *Service) handlersFor(eventType Type) []Handler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribers[eventType]
}

// invoke runs a single handler, converting panics into recorded failures so
// one misbehaving subscriber cannot halt the batch.
func (s *Service) invoke(handler Handler, e *Event) {
	defer func() {
		if r := recover(); r != nil {
			s.failures.Add(1)
			log.Printf("event handler panic for %s event %s: %v", e.Type, e.ID, r)
		}
	}()
	if err := handler(e); err != nil {
		s.failures.Add(1)
		log.Printf("event handler failed for %s event %s: %v", e.Type, e.ID, err)
	}
}

// Depth returns the number of queued, not yet dispatched events.
func (s *Service) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Failures returns the cumulative count of isolated handler failures.
func (s *Service) Failures() uint64 {
	return s.failures.Load()
}

// String implements fmt.Stringer for debug logging.
func (s *Service) String() string {
	return fmt.Sprintf("event.Service{depth: %d, failures: %d}", s.Depth(), s.Failures())
}
