package bioos

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/synthbio/bioos/stats"
)

// Option customises the kernel facade.
type Option func(*Service)

// WithConfig replaces the whole configuration; apply it before the more
// specific options below.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithTimeStep sets the simulated seconds per tick.
func WithTimeStep(step float64) Option {
	return func(s *Service) {
		s.config.Time.Step = step
	}
}

// WithDuration sets the simulated duration Run advances through.
func WithDuration(duration float64) Option {
	return func(s *Service) {
		s.config.Time.Duration = duration
	}
}

// WithRandomSeed seeds the kernel's stochastic source for reproducible runs.
func WithRandomSeed(seed int64) Option {
	return func(s *Service) {
		s.config.Debug.RandomSeed = &seed
	}
}

// WithWorkers sets the number of goroutines in the parallel update phase;
// counts <= 1 keep the phase sequential.
func WithWorkers(count int) Option {
	return func(s *Service) {
		s.config.Updater.Workers = count
	}
}

// WithMetrics registers prometheus gauges mirroring every tick snapshot.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(s *Service) {
		s.registerer = registerer
	}
}

// WithSnapshotListener registers a callback invoked with a copy of every tick
// snapshot outside the kernel's critical section.
func WithSnapshotListener(listener func(stats.Snapshot)) Option {
	return func(s *Service) {
		s.onSnapshot = listener
	}
}
