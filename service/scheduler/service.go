// Package scheduler owns the population of simulated processes: creation,
// lookup, termination and priority-based selection.
package scheduler

import (
	"sort"
	"sync"

	"github.com/synthbio/bioos/model/organism"
)

// Config represents scheduler service configuration.
type Config struct {
	// InitialEnergy is assigned to every newly created process.
	InitialEnergy float64

	// DefaultPriority is the priority of new processes; lower schedules first.
	DefaultPriority int
}

// DefaultConfig returns the default scheduler configuration.
func DefaultConfig() Config {
	return Config{
		InitialEnergy:   100.0,
		DefaultPriority: 5,
	}
}

// Service tracks every process ever created. Terminated processes stay
// registered so pid lookups remain stable; pids are monotonic and never
// reused.
type Service struct {
	config    Config
	mu        sync.RWMutex
	processes map[int]*organism.Process
	nextPID   int
}

// New creates a new scheduler service.
func New(config Config) *Service {
	return &Service{
		config:    config,
		processes: make(map[int]*organism.Process),
	}
}

// CreateProcess registers a new ready process and returns its pid. It always
// succeeds.
func (s *Service) CreateProcess(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	pid := s.nextPID
	s.nextPID++
	s.processes[pid] = organism.NewProcess(pid, name, s.config.InitialEnergy, s.config.DefaultPriority)
	return pid
}

// Get returns the process for pid; ok is false when the pid was never issued.
func (s *Service) Get(pid int) (*organism.Process, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	process, ok := s.processes[pid]
	return process, ok
}

// Terminate marks the process terminated. It returns false when the pid is
// unknown or the process had already terminated.
func (s *Service) Terminate(pid int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	process, ok := s.processes[pid]
	if !ok {
		return false
	}
	return process.Terminate()
}

// Schedule selects the live process with the numerically lowest priority,
// ties broken by lowest pid. It returns nil when no live process exists and
// never mutates the selected process.
func (s *Service) Schedule() *organism.Process {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var selected *organism.Process
	for _, process := range s.processes {
		if !process.IsAlive() {
			continue
		}
		if selected == nil ||
			process.Priority < selected.Priority ||
			(process.Priority == selected.Priority && process.PID < selected.PID) {
			selected = process
		}
	}
	return selected
}

// PIDs returns every issued pid in ascending order. Tick iteration relies on
// this order for determinism.
func (s *Service) PIDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pids := make([]int, 0, len(s.processes))
	for pid := range s.processes {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}

// Live returns the number of non-terminated processes.
func (s *Service) Live() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.liveLocked()
}

// Terminated returns the number of terminated processes.
func (s *Service) Terminated() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.processes) - s.liveLocked()
}

func (s *Service) liveLocked() int {
	live := 0
	for _, process := range s.processes {
		if process.IsAlive() {
			live++
		}
	}
	return live
}

// Count returns the total number of processes ever created.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.processes)
}
