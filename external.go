//go:build unix

// File: external.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cross-thread wake delivery. Foreign goroutines cannot touch the arena, so
// an ExternalWaker publishes the TaskID into a lock-free ring and nudges a
// non-blocking pipe that is registered in the reactor under a reserved id.
// The loop thread drains both on its side of the pipe.

package uniloop

import (
	"errors"
	"fmt"
	goruntime "runtime"

	"github.com/momentics/uniloop/arena"
	"github.com/momentics/uniloop/fd"
	"github.com/momentics/uniloop/pool"
	"github.com/momentics/uniloop/reactor"
)

// extRingSize bounds how many external wakes can be in flight at once.
// Producers briefly yield when the ring is full; wakes are never dropped.
const extRingSize = 1024

type external struct {
	ring    *pool.Ring[arena.TaskID]
	notifyR fd.FD
	notifyW fd.FD
	armed   bool
}

func (e *external) drainPipe() {
	var buf [64]byte
	for {
		if _, err := e.notifyR.Read(buf[:]); err != nil {
			return
		}
	}
}

// EnableExternalWake sets up the notify pipe and wake ring so that
// ExternalWaker handles can interrupt a blocking reactor wait from other
// goroutines. Idempotent.
func (rt *Runtime) EnableExternalWake() error {
	if rt.ext != nil {
		return nil
	}
	r, w, err := fd.Pipe()
	if err != nil {
		return fmt.Errorf("uniloop: external wake: %w", err)
	}
	rt.ext = &external{
		ring:    pool.NewRing[arena.TaskID](extRingSize),
		notifyR: r,
		notifyW: w,
	}
	rt.rearmExternal()
	return nil
}

// ExternalWaker returns a handle that wakes task id from any goroutine.
// The runtime must have external wake enabled.
func (rt *Runtime) ExternalWaker(id TaskID) (ExternalWaker, error) {
	if rt.ext == nil {
		return ExternalWaker{}, errors.New("uniloop: external wake not enabled")
	}
	return ExternalWaker{id: id, ext: rt.ext}, nil
}

// Kick interrupts a blocking reactor wait without waking any task. Safe
// from any goroutine; used to make the loop re-check outside state (e.g.
// a shutdown flag). The runtime must have external wake enabled.
func (rt *Runtime) Kick() error {
	if rt.ext == nil {
		return errors.New("uniloop: external wake not enabled")
	}
	rt.ext.notify()
	return nil
}

// ExternalWaker delivers wakes to one task from foreign goroutines. The
// zero value is inert.
type ExternalWaker struct {
	id  TaskID
	ext *external
}

// Wake queues the task for readiness and interrupts the loop's blocking
// wait. Like Waker.Wake, duplicate and late deliveries are harmless.
func (w ExternalWaker) Wake() {
	if w.ext == nil {
		return
	}
	for !w.ext.ring.Enqueue(w.id) {
		goruntime.Gosched()
	}
	w.ext.notify()
}

func (e *external) notify() {
	// A full pipe already guarantees a pending notification.
	_, _ = e.notifyW.Write([]byte{1})
}

// onExternalNotify runs on the loop thread when the notify pipe reports
// readable: the reactor has already removed the pipe entry, so only drain
// and mark; the driver re-arms after the wait returns.
func (rt *Runtime) onExternalNotify() {
	rt.ext.armed = false
	rt.ext.drainPipe()
	rt.drainRing()
}

// drainExternal picks up wakes delivered while the loop was outside the
// reactor wait.
func (rt *Runtime) drainExternal() {
	if rt.ext == nil {
		return
	}
	rt.drainRing()
}

func (rt *Runtime) drainRing() {
	for {
		id, ok := rt.ext.ring.Dequeue()
		if !ok {
			return
		}
		rt.wakeUpManual(id)
	}
}

// rearmExternal re-registers the notify pipe after the reactor consumed
// its entry (or after Clear dropped it).
func (rt *Runtime) rearmExternal() {
	if rt.ext == nil || rt.ext.armed {
		return
	}
	w := Waker{id: extNotify, rt: rt}
	rt.reactGuard.enter()
	err := rt.react.RegisterIO(reactor.Readable(rt.ext.notifyR.Raw()), w)
	rt.reactGuard.leave()
	if err != nil {
		// Only possible with a reactor limit set too tight to hold the
		// notify entry; surface it loudly rather than lose wakes.
		panic(fmt.Sprintf("uniloop: cannot arm external notify: %v", err))
	}
	rt.ext.armed = true
}
