// Package updater runs the deterministic per-process update phase of a tick,
// optionally across a worker pool. Process updates are independent of each
// other and never touch the allocator or the event queue; termination results
// are collected and applied sequentially by the kernel after all updates
// join, preserving the tick's ordering contract.
package updater

import (
	"sync"

	"github.com/synthbio/bioos/model/organism"
)

// Config represents updater service configuration.
type Config struct {
	// WorkerCount is the number of workers updating processes; values <= 1
	// select the plain sequential path.
	WorkerCount int
}

// DefaultConfig returns the default updater configuration.
func DefaultConfig() Config {
	return Config{
		WorkerCount: 1,
	}
}

// Service applies one update pass over a set of processes.
type Service struct {
	config Config
}

// New creates a new updater service.
func New(config Config) *Service {
	return &Service{config: config}
}

// Update advances every supplied process by dt and returns the pids that
// terminated during this pass, in input (pid-ascending) order. The input
// slice must already be ordered by pid; the result order is independent of
// the worker count.
func (s *Service) Update(processes []*organism.Process, dt float64, params organism.UpdateParams) []int {
	if len(processes) == 0 {
		return nil
	}
	terminated := make([]bool, len(processes))

	if s.config.WorkerCount <= 1 || len(processes) == 1 {
		for i, process := range processes {
			terminated[i] = process.Update(dt, params)
		}
	} else {
		s.updateParallel(processes, dt, params, terminated)
	}

	var pids []int
	for i, done := range terminated {
		if done {
			pids = append(pids, processes[i].PID)
		}
	}
	return pids
}

func (s *Service) updateParallel(processes []*organism.Process, dt float64, params organism.UpdateParams, terminated []bool) {
	workers := s.config.WorkerCount
	if workers > len(processes) {
		workers = len(processes)
	}
	indexes := make(chan int, len(processes))
	for i := range processes {
		indexes <- i
	}
	close(indexes)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				terminated[i] = processes[i].Update(dt, params)
			}
		}()
	}
	wg.Wait()
}
