//go:build unix

// File: task.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Task contract for the cooperative runtime.

package uniloop

// Poll is a task's verdict after one resumption.
type Poll uint8

const (
	// Pending means the task is not finished. It must have arranged a
	// wake (descriptor interest, timer, or a retained Waker) before
	// returning Pending, or it will never be resumed.
	Pending Poll = iota
	// Done means the task finished and its slot may be recycled.
	Done
)

func (p Poll) String() string {
	if p == Done {
		return "done"
	}
	return "pending"
}

// Task is a suspendable unit of work driven by a Runtime. Poll runs the
// task forward until it either completes or voluntarily suspends; it is
// always invoked on the runtime's owning thread and must not block.
//
// The Waker passed to Poll identifies this task for the current resumption.
// Copies of it may be handed to the reactor or retained by other tasks;
// invoking any copy after the task completed is a harmless no-op.
type Task interface {
	Poll(w Waker) Poll
}

// TaskFunc adapts a plain function to the Task interface.
type TaskFunc func(w Waker) Poll

// Poll implements Task.
func (f TaskFunc) Poll(w Waker) Poll { return f(w) }
