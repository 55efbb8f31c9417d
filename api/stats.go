// File: api/stats.go
// Author: momentics <momentics@gmail.com>
//
// Runtime statistics snapshot exposed to monitoring adapters.

package api

// RuntimeStats is a point-in-time snapshot of scheduler activity.
// All counters are cumulative since the runtime was created or last cleared.
type RuntimeStats struct {
	// Live is the number of tasks currently held by the arena
	// (ready, waiting or running).
	Live int

	// Capacity is the number of slots the arena has allocated,
	// including vacant ones.
	Capacity int

	// Spawned counts successful task insertions.
	Spawned uint64

	// Completed counts tasks that finished and released their slot.
	Completed uint64

	// Polls counts individual task resumptions.
	Polls uint64

	// Wakes counts wake deliveries that moved a task from waiting to ready.
	Wakes uint64

	// Waits counts blocking reactor waits performed by the driver.
	Waits uint64

	// IOPending and TimersPending are the outstanding reactor interest counts.
	IOPending     int
	TimersPending int
}
