//go:build unix

// File: waker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The waker bridge: a two-word capability value tying a task identifier to
// its owning runtime. Copying the value clones the capability; no wake ever
// allocates.

package uniloop

// Waker requests that a specific waiting task be moved back to the ready
// list. The zero Waker is inert.
//
// Wakers are plain values: copy them freely, drop them without ceremony.
// Several copies may be outstanding for the same task (one per registered
// descriptor interest, one per timer); delivery is at-least-once and
// duplicate or late wakes are silently ignored.
type Waker struct {
	id TaskID
	rt *Runtime
}

// Wake marks the task ready. Calling it on a task that is not waiting
// (running, already ready, completed, or never existed) does nothing.
//
// Wake is loop-thread-only; for delivery from other goroutines see
// Runtime.ExternalWaker.
func (w Waker) Wake() {
	if w.rt == nil {
		return
	}
	if w.id == extNotify {
		w.rt.onExternalNotify()
		return
	}
	w.rt.wakeUpManual(w.id)
}

// Runtime returns the scheduler this waker belongs to. Asynchronous
// helpers use it to register descriptor and timer interest on behalf of
// the task being polled.
func (w Waker) Runtime() *Runtime {
	return w.rt
}
