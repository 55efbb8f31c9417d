// File: arena/arena.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Indexed task storage with four-state slots (vacant, ready, waiting,
// running) and intrusive LIFO free/ready lists threaded through the slots
// themselves. All operations are O(1) except Insert when the backing slice
// must grow by one slot.

package arena

import (
	"fmt"

	"github.com/momentics/uniloop/api"
)

// TaskID names one slot in an Arena. IDs are stable for the lifetime of the
// task occupying the slot and are recycled after the task completes. A
// recycled ID may later name an unrelated task; holders of stale IDs only
// ever observe MarkReady returning false.
type TaskID int

// NoTask is the list sentinel. It is never a valid TaskID.
const NoTask TaskID = -1

type slotState uint8

const (
	stateVacant slotState = iota
	stateReady
	stateWaiting
	stateRunning
)

func (s slotState) String() string {
	switch s {
	case stateVacant:
		return "vacant"
	case stateReady:
		return "ready"
	case stateWaiting:
		return "waiting"
	case stateRunning:
		return "running"
	}
	return "invalid"
}

// slot holds one task. Exactly one interpretation of the fields is active at
// a time: value is meaningful for ready/waiting slots, next links ready and
// vacant slots into their respective lists. Running slots hold neither; the
// task has been moved out by value while it executes.
type slot[T any] struct {
	state slotState
	next  TaskID
	value T
}

// Arena is an indexed store of task slots. The zero value is not usable;
// construct with New.
type Arena[T any] struct {
	slots     []slot[T]
	freeHead  TaskID
	readyHead TaskID
	live      int
	limit     int
}

// New creates an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{
		freeHead:  NoTask,
		readyHead: NoTask,
	}
}

// SetLimit bounds the number of slots the arena may allocate. Zero or
// negative means unbounded. Lowering the limit below the current capacity
// does not shrink the arena; it only stops further growth.
func (a *Arena[T]) SetLimit(n int) {
	a.limit = n
}

// Len returns the number of live (non-vacant) slots.
func (a *Arena[T]) Len() int {
	return a.live
}

// Cap returns the total number of slots, vacant ones included.
func (a *Arena[T]) Cap() int {
	return len(a.slots)
}

// HasReady reports whether at least one task is ready to run.
func (a *Arena[T]) HasReady() bool {
	return a.readyHead != NoTask
}

// Insert places value into a vacant slot, or grows the arena by one slot if
// the free list is empty. The new slot becomes the head of the ready list.
// Returns api.ErrResourceExhausted when growth would exceed the configured
// limit; the value is dropped in that case.
func (a *Arena[T]) Insert(value T) (TaskID, error) {
	var id TaskID
	if a.freeHead != NoTask {
		id = a.freeHead
		s := &a.slots[id]
		a.freeHead = s.next
		s.state = stateReady
		s.value = value
		s.next = a.readyHead
	} else {
		if a.limit > 0 && len(a.slots) >= a.limit {
			return NoTask, fmt.Errorf("arena at capacity %d: %w", a.limit, api.ErrResourceExhausted)
		}
		id = TaskID(len(a.slots))
		a.slots = append(a.slots, slot[T]{
			state: stateReady,
			next:  a.readyHead,
			value: value,
		})
	}
	a.readyHead = id
	a.live++
	return id, nil
}

// TakeAnyReady pops the head of the ready list, marks the slot running and
// moves the task out by value. The slot stays reserved until the caller
// hands the task back through PutBackWaiting or PutBackNothing. Returns
// ok=false when no task is ready.
//
// The ready list is LIFO: the most recently readied task is returned first.
func (a *Arena[T]) TakeAnyReady() (id TaskID, value T, ok bool) {
	id = a.readyHead
	if id == NoTask {
		return NoTask, value, false
	}
	s := &a.slots[id]
	a.readyHead = s.next
	value = s.value
	var zero T
	s.value = zero
	s.state = stateRunning
	s.next = NoTask
	return id, value, true
}

// PutBackWaiting returns a running task to its slot in the waiting state.
// The slot must be running; this is the driver's contract and is always
// checked.
func (a *Arena[T]) PutBackWaiting(id TaskID, value T) {
	s := a.running(id, "PutBackWaiting")
	s.state = stateWaiting
	s.value = value
}

// PutBackNothing releases the slot of a completed running task onto the
// free list. The slot must be running.
func (a *Arena[T]) PutBackNothing(id TaskID) {
	s := a.running(id, "PutBackNothing")
	s.state = stateVacant
	s.next = a.freeHead
	a.freeHead = id
	a.live--
}

// MarkReady moves a waiting slot to the head of the ready list. It reports
// whether the transition happened: when id is out of range, vacant, already
// ready or currently running, MarkReady is a no-op returning false. This
// makes duplicate and late wake deliveries safe.
func (a *Arena[T]) MarkReady(id TaskID) bool {
	if id < 0 || int(id) >= len(a.slots) {
		return false
	}
	s := &a.slots[id]
	if s.state != stateWaiting {
		return false
	}
	s.state = stateReady
	s.next = a.readyHead
	a.readyHead = id
	return true
}

// Clear drops every task and resets the arena to empty. Slot storage is
// released so a cleared arena starts growing from scratch.
func (a *Arena[T]) Clear() {
	a.slots = nil
	a.freeHead = NoTask
	a.readyHead = NoTask
	a.live = 0
}

func (a *Arena[T]) running(id TaskID, op string) *slot[T] {
	if id < 0 || int(id) >= len(a.slots) {
		panic(fmt.Sprintf("arena: %s(%d): no such slot", op, id))
	}
	s := &a.slots[id]
	if s.state != stateRunning {
		panic(fmt.Sprintf("arena: %s(%d): slot is %s, want running", op, id, s.state))
	}
	return s
}
