//go:build unix

// File: aio/inbox.go
// Author: momentics <momentics@gmail.com>
//
// In-loop mailbox for handing values between tasks on the same runtime.

package aio

import (
	"github.com/eapache/queue"

	uniloop "github.com/momentics/uniloop"
)

// Inbox is an unbounded FIFO connecting tasks on one runtime: producers
// Push, a single consumer task polls Pop. Pushing to an inbox with a
// parked consumer wakes it.
//
// Inbox is loop-thread-only, like everything else on the runtime. For
// delivery from foreign goroutines combine a thread-safe queue with
// Runtime.ExternalWaker.
type Inbox[T any] struct {
	q     *queue.Queue
	w     uniloop.Waker
	armed bool
}

// NewInbox creates an empty inbox.
func NewInbox[T any]() *Inbox[T] {
	return &Inbox[T]{q: queue.New()}
}

// Len returns the number of queued values.
func (b *Inbox[T]) Len() int {
	return b.q.Length()
}

// Push appends v and wakes the parked consumer, if any.
func (b *Inbox[T]) Push(v T) {
	b.q.Add(v)
	if b.armed {
		b.armed = false
		b.w.Wake()
	}
}

// Pop returns the oldest value, or parks the calling task until one is
// pushed. Only one consumer task may wait at a time; a second waiter
// displaces the first.
func (b *Inbox[T]) Pop(w uniloop.Waker) (v T, done bool) {
	if b.q.Length() > 0 {
		return b.q.Remove().(T), true
	}
	b.w = w
	b.armed = true
	return v, false
}
