//go:build unix

// File: control/sampler.go
// Author: momentics <momentics@gmail.com>
//
// Sampler is a runtime task publishing scheduler stats into a registry on
// a fixed cadence. Stats can only be read on the loop thread, so the
// sampling itself must be a task.

package control

import (
	"time"

	uniloop "github.com/momentics/uniloop"
)

// Sampler periodically publishes Runtime.Stats into a StatsRegistry.
// Spawn it like any other task; it never completes on its own.
type Sampler struct {
	Registry *StatsRegistry
	Interval time.Duration
}

// NewSampler creates a sampler task with the given cadence.
func NewSampler(reg *StatsRegistry, interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Sampler{Registry: reg, Interval: interval}
}

// Poll implements uniloop.Task.
func (s *Sampler) Poll(w uniloop.Waker) uniloop.Poll {
	rt := w.Runtime()
	s.Registry.Publish(rt.Stats())

	if err := rt.WakeMeUpOnTime(time.Now().Add(s.Interval), w); err != nil {
		// Registration failed; stop sampling rather than spin.
		return uniloop.Done
	}
	return uniloop.Pending
}
