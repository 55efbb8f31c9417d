// File: pool/ring.go
// Author: momentics <momentics@gmail.com>
//
// Lock-free fixed-capacity ring (power-of-two size) for multi-producer,
// single-consumer handoff. Each slot carries a sequence number so a
// producer's claim and its publication are separate steps; consumers never
// observe a claimed-but-unwritten slot.

package pool

import (
	"sync/atomic"
)

type ringSlot[T any] struct {
	seq uint64
	val T
}

// Ring is a bounded MPSC ring buffer. Enqueue is safe from any goroutine;
// Dequeue must only be called from the single consumer.
type Ring[T any] struct {
	slots []ringSlot[T]
	mask  uint64
	_     [64]byte // Padding for hot/cold separation
	head  uint64
	_     [64]byte
	tail  uint64
}

// NewRing allocates a ring buffer with size slots (must be power of two).
func NewRing[T any](size uint64) *Ring[T] {
	if size == 0 || (size&(size-1)) != 0 {
		panic("ring size must be power of two")
	}
	r := &Ring[T]{
		slots: make([]ringSlot[T], size),
		mask:  size - 1,
	}
	for i := range r.slots {
		r.slots[i].seq = uint64(i)
	}
	return r
}

// Enqueue adds an item; returns false if full.
func (r *Ring[T]) Enqueue(val T) bool {
	for {
		tail := atomic.LoadUint64(&r.tail)
		slot := &r.slots[tail&r.mask]
		seq := atomic.LoadUint64(&slot.seq)
		switch {
		case seq == tail:
			if atomic.CompareAndSwapUint64(&r.tail, tail, tail+1) {
				slot.val = val
				atomic.StoreUint64(&slot.seq, tail+1)
				return true
			}
		case seq < tail:
			return false // full
		}
		// Another producer claimed this slot; retry with a fresh tail.
	}
}

// Dequeue removes and returns (item, ok); ok==false if empty.
func (r *Ring[T]) Dequeue() (res T, ok bool) {
	head := r.head
	slot := &r.slots[head&r.mask]
	seq := atomic.LoadUint64(&slot.seq)
	if seq != head+1 {
		return res, false
	}
	res = slot.val
	var zero T
	slot.val = zero
	atomic.StoreUint64(&slot.seq, head+r.mask+1)
	r.head = head + 1
	return res, true
}

// Len returns the number of published items in the buffer.
func (r *Ring[T]) Len() int {
	return int(atomic.LoadUint64(&r.tail) - r.head)
}

// Cap returns logical buffer capacity.
func (r *Ring[T]) Cap() int {
	return len(r.slots)
}
