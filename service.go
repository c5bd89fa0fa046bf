package bioos

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/synthbio/bioos/stats"
)

// Service is the kernel facade: it assembles the scheduler, memory manager,
// event dispatcher and tick driver from one configuration.
type Service struct {
	config     *Config
	registerer prometheus.Registerer
	onSnapshot func(stats.Snapshot)
	runtime    *Runtime
}

// New creates a fully wired kernel.
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	runtime, err := newRuntime(s.config, s.registerer, s.onSnapshot)
	if err != nil {
		return nil, err
	}
	s.runtime = runtime
	return s, nil
}

// Runtime returns the tick driver.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}
