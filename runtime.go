//go:build unix

// File: runtime.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The runtime driver: composes the task arena and the readiness reactor
// into a single-threaded cooperative executor. The driver owns the only
// blocking point (the reactor wait); everything else is non-blocking.

package uniloop

import (
	"fmt"
	"time"

	"github.com/momentics/uniloop/api"
	"github.com/momentics/uniloop/arena"
	"github.com/momentics/uniloop/reactor"
)

// TaskID names a spawned task. IDs are recycled after completion; a stale
// ID only ever produces no-op wakes.
type TaskID = arena.TaskID

// NoTask is the invalid TaskID returned alongside spawn errors.
const NoTask = arena.NoTask

// extNotify is the reserved id carried by the reactor entry for the
// cross-thread notify pipe. It never names an arena slot.
const extNotify TaskID = -2

// Runtime is a single-threaded cooperative task executor with an
// integrated readiness reactor.
//
// All methods except ExternalWaker delivery are confined to the owning
// thread: the goroutine that created the runtime (or took it over) must be
// the only one calling into it. This confinement is the runtime's safety
// mechanism; a reentrancy guard turns violations into panics.
type Runtime struct {
	tasks *arena.Arena[Task]
	react *reactor.Reactor[Waker]

	tasksGuard guard
	reactGuard guard

	ext *external

	spawned   uint64
	completed uint64
	polls     uint64
	wakes     uint64
	waits     uint64
}

// New creates an idle runtime.
func New() *Runtime {
	rt := &Runtime{
		tasks:      arena.New[Task](),
		react:      reactor.New[Waker](),
		tasksGuard: guard{name: "task arena"},
		reactGuard: guard{name: "reactor"},
	}
	return rt
}

// SetTaskLimit bounds the number of task slots; Spawn beyond it fails with
// api.ErrResourceExhausted. Zero means unbounded.
func (rt *Runtime) SetTaskLimit(n int) { rt.tasks.SetLimit(n) }

// TrySpawn inserts a task in the ready state. On failure the task is
// dropped and the error returned; the runtime is unchanged.
func (rt *Runtime) TrySpawn(t Task) (TaskID, error) {
	rt.tasksGuard.enter()
	defer rt.tasksGuard.leave()
	id, err := rt.tasks.Insert(t)
	if err != nil {
		return NoTask, err
	}
	rt.spawned++
	return id, nil
}

// Spawn inserts a task in the ready state, panicking if the arena cannot
// grow.
func (rt *Runtime) Spawn(t Task) TaskID {
	id, err := rt.TrySpawn(t)
	if err != nil {
		panic(fmt.Sprintf("uniloop: failed to spawn task: %v", err))
	}
	return id
}

// Len returns the number of live tasks (ready, waiting or running).
func (rt *Runtime) Len() int {
	return rt.tasks.Len()
}

// RunUntilIdle performs one scheduling pass:
//
//  1. If the reactor holds outstanding interest, block once in its
//     multiplexed wait. This is the only blocking point.
//  2. Resume ready tasks until none remain, re-queueing each according to
//     its verdict. Tasks readied during the pass (including by other
//     tasks) run in the same pass, most recently readied first.
//
// It returns the number of still-live tasks. Callers typically loop until
// that reaches zero. Calling it with waiting tasks but an empty reactor
// returns immediately; something else must wake those tasks.
func (rt *Runtime) RunUntilIdle() (int, error) {
	rt.drainExternal()

	if rt.shouldWait() {
		rt.reactGuard.enter()
		err := rt.react.WaitAny()
		rt.reactGuard.leave()
		if err != nil {
			return rt.Len(), err
		}
		rt.waits++
		rt.rearmExternal()
	}

	for {
		rt.tasksGuard.enter()
		id, task, ok := rt.tasks.TakeAnyReady()
		rt.tasksGuard.leave()
		if !ok {
			break
		}

		rt.polls++
		verdict := task.Poll(Waker{id: id, rt: rt})

		rt.tasksGuard.enter()
		if verdict == Done {
			rt.tasks.PutBackNothing(id)
			rt.completed++
		} else {
			rt.tasks.PutBackWaiting(id, task)
		}
		rt.tasksGuard.leave()
	}

	return rt.Len(), nil
}

// WakeMeUpOnIO schedules w to fire once pfd reports readiness. One
// registration delivers at most one wake; re-register after resuming to
// wait again.
func (rt *Runtime) WakeMeUpOnIO(pfd reactor.PollFd, w Waker) error {
	rt.reactGuard.enter()
	defer rt.reactGuard.leave()
	return rt.react.RegisterIO(pfd, w)
}

// WakeMeUpOnTime schedules w to fire once at is reached. The wake may
// arrive after at, never before.
func (rt *Runtime) WakeMeUpOnTime(at time.Time, w Waker) error {
	rt.reactGuard.enter()
	defer rt.reactGuard.leave()
	return rt.react.RegisterTimer(at, w)
}

// Clear drops every task, all reactor interest and any queued external
// wakes without running or waking anyone.
func (rt *Runtime) Clear() {
	rt.tasksGuard.enter()
	rt.tasks.Clear()
	rt.tasksGuard.leave()

	rt.reactGuard.enter()
	rt.react.Clear()
	rt.reactGuard.leave()

	if rt.ext != nil {
		rt.ext.armed = false
		for {
			if _, ok := rt.ext.ring.Dequeue(); !ok {
				break
			}
		}
		rt.ext.drainPipe()
		rt.rearmExternal()
	}
}

// Stats returns a snapshot of scheduler activity. Loop-thread-only; to
// publish stats to other goroutines, sample them from a task (see
// control.Sampler).
func (rt *Runtime) Stats() api.RuntimeStats {
	io := rt.react.IOPending()
	if rt.ext != nil && rt.ext.armed {
		io--
	}
	return api.RuntimeStats{
		Live:          rt.tasks.Len(),
		Capacity:      rt.tasks.Cap(),
		Spawned:       rt.spawned,
		Completed:     rt.completed,
		Polls:         rt.polls,
		Wakes:         rt.wakes,
		Waits:         rt.waits,
		IOPending:     io,
		TimersPending: rt.react.TimersPending(),
	}
}

// wakeUpManual moves a waiting task to the ready list. No-op for ids that
// are stale, running, already ready, or out of range.
func (rt *Runtime) wakeUpManual(id TaskID) {
	rt.tasksGuard.enter()
	if rt.tasks.MarkReady(id) {
		rt.wakes++
	}
	rt.tasksGuard.leave()
}

// shouldWait decides whether the pass starts with a blocking reactor wait.
// Without external wake this is simply "the reactor is non-empty". With it,
// the always-armed notify entry must not count as interest of its own: when
// it is the only entry, waiting is useful only if a wake could still arrive
// for a live task and nothing is ready to run right now.
func (rt *Runtime) shouldWait() bool {
	if rt.ext == nil || !rt.ext.armed {
		return !rt.react.IsEmpty()
	}
	if rt.react.Size() > 1 {
		return true
	}
	return rt.tasks.Len() > 0 && !rt.tasks.HasReady()
}
