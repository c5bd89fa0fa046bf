package stats

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector mirrors snapshots into prometheus metrics so an external scraper
// can observe the kernel without touching it.
type Collector struct {
	liveProcesses   prometheus.Gauge
	terminated      prometheus.Gauge
	memoryUsagePct  prometheus.Gauge
	eventQueueDepth prometheus.Gauge
	simulationTime  prometheus.Gauge
	dispatched      prometheus.Counter
	births          prometheus.Counter
	deaths          prometheus.Counter

	lastBirths uint64
	lastDeaths uint64
}

// NewCollector creates and registers the kernel gauges with the supplied
// registerer (prometheus.DefaultRegisterer is a common choice).
func NewCollector(registerer prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		liveProcesses: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bioos", Name: "live_processes", Help: "Number of non-terminated processes.",
		}),
		terminated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bioos", Name: "terminated_processes", Help: "Number of terminated processes.",
		}),
		memoryUsagePct: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bioos", Name: "memory_usage_percent", Help: "Biological memory usage percentage.",
		}),
		eventQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bioos", Name: "event_queue_depth", Help: "Events queued and not yet dispatched.",
		}),
		simulationTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bioos", Name: "simulation_time_seconds", Help: "Current simulated time.",
		}),
		dispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bioos", Name: "events_dispatched_total", Help: "Total events dispatched to handlers.",
		}),
		births: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bioos", Name: "births_total", Help: "Total organisms created.",
		}),
		deaths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bioos", Name: "deaths_total", Help: "Total organisms terminated.",
		}),
	}
	for _, metric := range []prometheus.Collector{
		c.liveProcesses, c.terminated, c.memoryUsagePct, c.eventQueueDepth,
		c.simulationTime, c.dispatched, c.births, c.deaths,
	} {
		if err := registerer.Register(metric); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Observe mirrors one snapshot into the registered metrics.
func (c *Collector) Observe(snapshot Snapshot) {
	if c == nil {
		return
	}
	c.liveProcesses.Set(float64(snapshot.LiveProcesses))
	c.terminated.Set(float64(snapshot.Terminated))
	c.memoryUsagePct.Set(snapshot.MemoryUsagePct)
	c.eventQueueDepth.Set(float64(snapshot.EventQueueDepth))
	c.simulationTime.Set(snapshot.Time)
	c.dispatched.Add(float64(snapshot.EventsDispatched))
	// snapshots carry cumulative totals; counters take the increment
	c.births.Add(float64(snapshot.Births - c.lastBirths))
	c.deaths.Add(float64(snapshot.Deaths - c.lastDeaths))
	c.lastBirths = snapshot.Births
	c.lastDeaths = snapshot.Deaths
}
