// Package control
// Author: momentics <momentics@gmail.com>
//
// Observability layer for the uniloop runtime: a concurrent-safe stats
// registry fed from the loop thread, a sampler task that publishes
// scheduler statistics on a fixed cadence, and a Prometheus collector
// exposing them to scrapers running on other goroutines.
package control
