// File: control/prometheus.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Prometheus bridge: exposes the latest published runtime stats as gauges
// and counters under the uniloop_* namespace.

package control

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements prometheus.Collector over a StatsRegistry.
type Collector struct {
	registry *StatsRegistry

	live     *prometheus.Desc
	capacity *prometheus.Desc
	spawned  *prometheus.Desc
	done     *prometheus.Desc
	polls    *prometheus.Desc
	wakes    *prometheus.Desc
	waits    *prometheus.Desc
	ioPend   *prometheus.Desc
	tmPend   *prometheus.Desc
}

// NewCollector creates a collector reading from reg.
func NewCollector(reg *StatsRegistry) *Collector {
	return &Collector{
		registry: reg,
		live: prometheus.NewDesc("uniloop_tasks_live",
			"Tasks currently held by the arena.", nil, nil),
		capacity: prometheus.NewDesc("uniloop_arena_slots",
			"Allocated arena slots, vacant included.", nil, nil),
		spawned: prometheus.NewDesc("uniloop_tasks_spawned_total",
			"Successful task insertions.", nil, nil),
		done: prometheus.NewDesc("uniloop_tasks_completed_total",
			"Tasks that finished and released their slot.", nil, nil),
		polls: prometheus.NewDesc("uniloop_task_polls_total",
			"Individual task resumptions.", nil, nil),
		wakes: prometheus.NewDesc("uniloop_wakes_total",
			"Wake deliveries that readied a waiting task.", nil, nil),
		waits: prometheus.NewDesc("uniloop_reactor_waits_total",
			"Blocking reactor waits performed by the driver.", nil, nil),
		ioPend: prometheus.NewDesc("uniloop_io_interest_pending",
			"Outstanding descriptor interest entries.", nil, nil),
		tmPend: prometheus.NewDesc("uniloop_timers_pending",
			"Outstanding timer entries.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.live
	ch <- c.capacity
	ch <- c.spawned
	ch <- c.done
	ch <- c.polls
	ch <- c.wakes
	ch <- c.waits
	ch <- c.ioPend
	ch <- c.tmPend
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s, _ := c.registry.Snapshot()
	ch <- prometheus.MustNewConstMetric(c.live, prometheus.GaugeValue, float64(s.Live))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity))
	ch <- prometheus.MustNewConstMetric(c.spawned, prometheus.CounterValue, float64(s.Spawned))
	ch <- prometheus.MustNewConstMetric(c.done, prometheus.CounterValue, float64(s.Completed))
	ch <- prometheus.MustNewConstMetric(c.polls, prometheus.CounterValue, float64(s.Polls))
	ch <- prometheus.MustNewConstMetric(c.wakes, prometheus.CounterValue, float64(s.Wakes))
	ch <- prometheus.MustNewConstMetric(c.waits, prometheus.CounterValue, float64(s.Waits))
	ch <- prometheus.MustNewConstMetric(c.ioPend, prometheus.GaugeValue, float64(s.IOPending))
	ch <- prometheus.MustNewConstMetric(c.tmPend, prometheus.GaugeValue, float64(s.TimersPending))
}
