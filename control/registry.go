// File: control/registry.go
// Author: momentics <momentics@gmail.com>
//
// Stats registry bridging the thread-confined runtime and concurrent
// readers. The loop thread publishes snapshots; scrapers and debug
// handlers read them under a shared lock.

package control

import (
	"sync"
	"time"

	"github.com/momentics/uniloop/api"
)

// StatsRegistry holds the latest published runtime statistics.
type StatsRegistry struct {
	mu      sync.RWMutex
	stats   api.RuntimeStats
	updated time.Time
}

// NewStatsRegistry creates an empty registry.
func NewStatsRegistry() *StatsRegistry {
	return &StatsRegistry{}
}

// Publish stores a snapshot. Called from the loop thread.
func (sr *StatsRegistry) Publish(s api.RuntimeStats) {
	sr.mu.Lock()
	sr.stats = s
	sr.updated = time.Now()
	sr.mu.Unlock()
}

// Snapshot returns the latest published stats and their publish time.
// Safe from any goroutine.
func (sr *StatsRegistry) Snapshot() (api.RuntimeStats, time.Time) {
	sr.mu.RLock()
	defer sr.mu.RUnlock()
	return sr.stats, sr.updated
}
