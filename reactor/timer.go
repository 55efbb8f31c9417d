//go:build unix

// File: reactor/timer.go
// Author: momentics <momentics@gmail.com>
//
// Deadline-ordered timer queue. A min-heap keyed on the wake instant keeps
// the soonest sleeper at the head for O(1) timeout computation.

package reactor

import "time"

// sleeper pairs a deadline with the waker to deliver once it passes.
type sleeper[W Waker] struct {
	at time.Time
	w  W
}

type sleeperHeap[W Waker] []sleeper[W]

func (h sleeperHeap[W]) Len() int           { return len(h) }
func (h sleeperHeap[W]) Less(i, j int) bool { return h[i].at.Before(h[j].at) }
func (h sleeperHeap[W]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *sleeperHeap[W]) Push(x any) {
	*h = append(*h, x.(sleeper[W]))
}

func (h *sleeperHeap[W]) Pop() any {
	old := *h
	n := len(old)
	s := old[n-1]
	old[n-1] = sleeper[W]{}
	*h = old[:n-1]
	return s
}
