package bioos

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/synthbio/bioos/internal/clock"
	"github.com/synthbio/bioos/model/organism"
	"github.com/synthbio/bioos/service/allocator"
	"github.com/synthbio/bioos/service/event"
	"github.com/synthbio/bioos/service/scheduler"
	"github.com/synthbio/bioos/service/telemetry"
	"github.com/synthbio/bioos/service/updater"
	"github.com/synthbio/bioos/stats"
	"github.com/synthbio/bioos/tracing"
)

// Kernel lifecycle states
const (
	stateNotStarted = "notStarted"
	stateRunning    = "running"
	stateStopped    = "stopped"
)

// Runtime is the tick driver. It owns one scheduler, one memory manager and
// one event service for its whole lifetime and advances simulated time by a
// fixed step per tick.
//
// One tick is one fully sequential pass: deterministic update phase, then
// stochastic event phase, then dispatch phase. RunTick is not safe for
// concurrent calls; Stop is observed between ticks only – a tick in progress
// always completes.
type Runtime struct {
	config    *Config
	params    organism.UpdateParams
	scheduler *scheduler.Service
	memory    *allocator.Service
	events    *event.Service
	updater   *updater.Service
	tracker   *stats.Tracker
	feed      *telemetry.Queue[stats.Snapshot]
	rng       *rand.Rand

	mu          sync.Mutex
	state       string
	currentTime float64
	tick        uint64
}

func newRuntime(config *Config, registerer prometheus.Registerer, onSnapshot func(stats.Snapshot)) (*Runtime, error) {
	var collector *stats.Collector
	if registerer != nil {
		var err error
		if collector, err = stats.NewCollector(registerer); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	tracker := stats.New(func(snapshot stats.Snapshot) {
		collector.Observe(snapshot)
		if onSnapshot != nil {
			onSnapshot(snapshot)
		}
	})

	seed := time.Now().UnixNano()
	if config.Debug.RandomSeed != nil {
		seed = *config.Debug.RandomSeed
	}

	r := &Runtime{
		config: config,
		params: organism.UpdateParams{
			EnergyCostPerTick:  config.Process.EnergyCostPerTick,
			MinEnergy:          config.Process.MinEnergy,
			ExpressionRate:     config.Biology.GeneExpressionRate,
			ExpressionMax:      config.Biology.GeneExpressionMax,
			ProteinDegradation: config.Biology.ProteinDegradationRate,
			ProteinMax:         config.Biology.ProteinConcentrationMax,
		},
		scheduler: scheduler.New(scheduler.Config{
			InitialEnergy:   config.Process.InitialEnergy,
			DefaultPriority: config.Process.DefaultPriority,
		}),
		memory:  allocator.New(allocator.Config{TotalCapacity: config.Memory.TotalCapacity}),
		events:  event.New(),
		updater: updater.New(updater.Config{WorkerCount: config.Updater.Workers}),
		tracker: tracker,
		feed:    telemetry.NewQueue[stats.Snapshot](telemetry.Config{Buffer: config.Telemetry.Buffer}),
		rng:     rand.New(rand.NewSource(seed)),
		state:   stateNotStarted,
	}
	r.subscribeHandlers()
	return r, nil
}

// CreateOrganism admits a new organism: it creates a process, attaches the
// genome and reserves the per-organism memory footprint. On allocation
// failure the process is rolled back (terminated immediately) and
// ErrResourceExhausted is returned.
func (r *Runtime) CreateOrganism(ctx context.Context, name string, genome organism.Genome) (pid int, err error) {
	_, span := tracing.StartSpan(ctx, "bioos.createOrganism")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"organism.name": name})

	if genome != nil && !genome.Validate() {
		return 0, fmt.Errorf("organism %s: %w", name, ErrInvalidGenome)
	}
	if r.scheduler.Live() >= r.config.Time.MaxProcesses {
		return 0, fmt.Errorf("organism %s: process table full: %w", name, ErrResourceExhausted)
	}

	pid = r.scheduler.CreateProcess(name)
	span.WithAttributes(map[string]string{"organism.pid": fmt.Sprintf("%d", pid)})
	process, _ := r.scheduler.Get(pid)
	process.AttachGenome(genome)

	if !r.memory.Allocate(pid, r.config.Memory.PerOrganism) {
		r.scheduler.Terminate(pid)
		return 0, fmt.Errorf("organism %s (pid %d): memory allocation failed: %w", name, pid, ErrResourceExhausted)
	}
	r.tracker.RecordBirth()
	return pid, nil
}

// RunTick advances the simulation by exactly one time step:
//
//  1. every live process is updated deterministically in pid-ascending
//     order; processes starving this tick release their memory and emit a
//     termination event,
//  2. one stochastic trial per configured event type is drawn for every
//     remaining live process,
//  3. all events due at or before the new current time are dispatched.
//
// Handlers may therefore assume every process already reflects this tick's
// deterministic update. Safe to call before Start for test determinism.
func (r *Runtime) RunTick() {
	r.mu.Lock()
	r.currentTime += r.config.Time.Step
	r.tick++
	now := r.currentTime
	tick := r.tick
	r.mu.Unlock()

	processes := r.liveProcesses()

	// Focus selection: the scheduler picks the live process that would run
	// on a real CPU this tick.
	for _, process := range processes {
		if process.State == organism.StateRunning {
			process.State = organism.StateReady
		}
	}
	if focus := r.scheduler.Schedule(); focus != nil && focus.State == organism.StateReady {
		focus.State = organism.StateRunning
	}

	// Phase 1: deterministic update.
	for _, pid := range r.updater.Update(processes, r.config.Time.Step, r.params) {
		if !r.memory.Deallocate(pid) {
			log.Printf("terminated process %d held no memory reservation", pid)
		}
		r.tracker.RecordDeath()
		r.events.Emit(event.NewEvent(now, event.TypeProcessTermination, pid))
	}

	// Phase 2: stochastic trials, one per event type per surviving process.
	for _, process := range processes {
		if !process.IsAlive() {
			continue
		}
		r.trial(r.config.Events.CellDivision, event.TypeCellDivision, process.PID, now)
		r.trial(r.config.Events.Apoptosis, event.TypeApoptosis, process.PID, now)
		r.trial(r.config.Events.Mutation, event.TypeMutation, process.PID, now)
		r.trial(r.config.Events.GeneExpression, event.TypeGeneExpression, process.PID, now)
		r.trial(r.config.Events.SignalReception, event.TypeSignalReception, process.PID, now)
	}

	// Phase 3: dispatch everything due up to and including this tick.
	dispatched := r.events.ProcessEvents(now)

	r.tracker.Record(stats.Snapshot{
		Tick:             tick,
		Time:             now,
		LiveProcesses:    r.scheduler.Live(),
		TotalProcesses:   r.scheduler.Count(),
		Terminated:       r.scheduler.Terminated(),
		MemoryUsagePct:   r.memory.Usage(),
		EventQueueDepth:  r.events.Depth(),
		EventsDispatched: dispatched,
		HandlerFailures:  r.events.Failures(),
		CapturedAt:       clock.Now(),
	})
	r.feed.Publish(r.tracker.Latest())
}

func (r *Runtime) liveProcesses() []*organism.Process {
	pids := r.scheduler.PIDs()
	processes := make([]*organism.Process, 0, len(pids))
	for _, pid := range pids {
		if process, ok := r.scheduler.Get(pid); ok && process.IsAlive() {
			processes = append(processes, process)
		}
	}
	return processes
}

func (r *Runtime) trial(probability float64, eventType event.Type, pid int, now float64) {
	if probability <= 0 {
		return
	}
	if r.rng.Float64() < probability {
		r.events.Emit(event.NewEvent(now, eventType, pid))
	}
}

// Run starts the kernel and advances it tick by tick until the configured
// duration has been simulated, Stop is called, or the context is cancelled.
// Cancellation and Stop are observed between ticks only.
func (r *Runtime) Run(ctx context.Context) (err error) {
	if err = r.Start(); err != nil {
		return err
	}
	defer r.Stop()

	ctx, span := tracing.StartSpan(ctx, "bioos.run")
	defer func() { tracing.EndSpan(span, err) }()

	totalTicks := uint64(r.config.Time.Duration/r.config.Time.Step + 0.5)
	for r.IsRunning() && r.Tick() < totalTicks {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return err
		default:
		}
		r.RunTick()
	}
	return nil
}

// Start moves the kernel into the running state. A stopped kernel cannot be
// restarted.
func (r *Runtime) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.state {
	case stateStopped:
		return fmt.Errorf("kernel already stopped")
	default:
		r.state = stateRunning
		return nil
	}
}

// Stop halts the run loop after the tick in progress completes.
func (r *Runtime) Stop() {
	r.mu.Lock()
	if r.state == stateRunning {
		r.state = stateStopped
	}
	r.mu.Unlock()
}

// IsRunning reports whether the kernel is in the running state.
func (r *Runtime) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == stateRunning
}

// CurrentTime returns the simulated time in seconds.
func (r *Runtime) CurrentTime() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentTime
}

// Tick returns the number of completed ticks.
func (r *Runtime) Tick() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tick
}

// Snapshot returns the most recent tick snapshot.
func (r *Runtime) Snapshot() stats.Snapshot {
	return r.tracker.Latest()
}

// Telemetry returns the non-blocking snapshot feed an external collaborator
// can consume.
func (r *Runtime) Telemetry() *telemetry.Queue[stats.Snapshot] {
	return r.feed
}

// Scheduler exposes the process scheduler.
func (r *Runtime) Scheduler() *scheduler.Service {
	return r.scheduler
}

// Memory exposes the biological memory manager.
func (r *Runtime) Memory() *allocator.Service {
	return r.memory
}

// Events exposes the event dispatcher, e.g. for subscribing additional
// observers.
func (r *Runtime) Events() *event.Service {
	return r.events
}

// RandomGenome authors a genome from the kernel's seeded stochastic source.
func (r *Runtime) RandomGenome(geneNames []string, sequenceLength int) organism.Genome {
	return organism.RandomGenome(r.rng, geneNames, sequenceLength)
}
