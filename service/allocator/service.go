package allocator

import (
	"sync"
)

// Config represents allocator service configuration.
type Config struct {
	// TotalCapacity is the fixed amount of memory units available.
	TotalCapacity float64
}

// DefaultConfig returns the default allocator configuration.
func DefaultConfig() Config {
	return Config{
		TotalCapacity: 10000.0,
	}
}

// Service tracks per-entity memory reservations. Free space is derived and
// never goes negative; an entity id holds at most one reservation.
type Service struct {
	mu          sync.RWMutex
	total       float64
	allocations map[int]float64
	free        float64
}

// New creates a new allocator service.
func New(config Config) *Service {
	total := config.TotalCapacity
	if total < 0 {
		total = 0
	}
	return &Service{
		total:       total,
		allocations: make(map[int]float64),
		free:        total,
	}
}

// Allocate reserves size units for id. It fails without mutation when the id
// already holds a reservation or the free space is insufficient.
func (s *Service) Allocate(id int, size float64) bool {
	if size < 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.allocations[id]; exists {
		return false
	}
	if size > s.free {
		return false
	}
	s.allocations[id] = size
	s.free -= size
	return true
}

// Deallocate releases the reservation held by id, restoring free space
// exactly. It fails when id holds no reservation.
func (s *Service) Deallocate(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	size, exists := s.allocations[id]
	if !exists {
		return false
	}
	delete(s.allocations, id)
	s.free += size
	return true
}

// Usage returns the used capacity as a percentage; 0 when the total capacity
// is 0.
func (s *Service) Usage() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.total == 0 {
		return 0
	}
	return (s.total - s.free) / s.total * 100
}

// Free returns the remaining free space.
func (s *Service) Free() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.free
}

// Total returns the fixed total capacity.
func (s *Service) Total() float64 {
	return s.total
}

// Allocated returns the reservation size held by id.
func (s *Service) Allocated(id int) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	size, ok := s.allocations[id]
	return size, ok
}

// Count returns the number of active reservations.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.allocations)
}
