//go:build unix

// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Readiness reactor: parallel interest/waker arrays for descriptor events
// plus a deadline-ordered timer queue, multiplexed into one poll(2) call.

package reactor

import (
	"container/heap"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/uniloop/api"
)

// Waker is the wake capability stored per interest entry. The type parameter
// lets callers store a concrete value type without boxing.
type Waker interface {
	Wake()
}

// Reactor multiplexes descriptor readiness and timer expiry. It is
// single-thread confined; only WaitAny blocks.
type Reactor[W Waker] struct {
	// pfds and wakers are index-aligned: wakers[i] is delivered when
	// pfds[i] reports readiness. Entries live from registration until the
	// reactor observes them ready or Clear is called.
	pfds   []unix.PollFd
	wakers []W

	sleepers sleeperHeap[W]

	limit int
}

// New creates an empty reactor.
func New[W Waker]() *Reactor[W] {
	return &Reactor[W]{}
}

// SetLimit bounds the total number of outstanding entries (descriptors plus
// timers). Zero or negative means unbounded.
func (r *Reactor[W]) SetLimit(n int) {
	r.limit = n
}

// RegisterIO records interest in pfd becoming ready and the waker to invoke
// when it does. One registration produces at most one wake; tasks that need
// to wait again must re-register after resuming.
func (r *Reactor[W]) RegisterIO(pfd PollFd, w W) error {
	if pfd.FD < 0 {
		return fmt.Errorf("reactor: register fd %d: %w", pfd.FD, api.ErrInvalidArgument)
	}
	if err := r.checkRoom(); err != nil {
		return err
	}
	r.pfds = append(r.pfds, unix.PollFd{Fd: int32(pfd.FD), Events: int16(pfd.Events)})
	r.wakers = append(r.wakers, w)
	return nil
}

// RegisterTimer records a wake to deliver once at is reached. The wake may
// be delivered after at, never before.
func (r *Reactor[W]) RegisterTimer(at time.Time, w W) error {
	if err := r.checkRoom(); err != nil {
		return err
	}
	heap.Push(&r.sleepers, sleeper[W]{at: at, w: w})
	return nil
}

// IsEmpty reports whether no descriptor interest and no timers are
// outstanding. WaitAny on an empty reactor blocks forever.
func (r *Reactor[W]) IsEmpty() bool {
	return len(r.pfds) == 0 && len(r.sleepers) == 0
}

// Size returns the number of outstanding entries of both kinds.
func (r *Reactor[W]) Size() int {
	return len(r.pfds) + len(r.sleepers)
}

// IOPending returns the number of outstanding descriptor entries.
func (r *Reactor[W]) IOPending() int {
	return len(r.pfds)
}

// TimersPending returns the number of outstanding timers.
func (r *Reactor[W]) TimersPending() int {
	return len(r.sleepers)
}

// Clear drops all outstanding interest and timers without waking anyone.
func (r *Reactor[W]) Clear() {
	r.pfds = r.pfds[:0]
	var zero W
	for i := range r.wakers {
		r.wakers[i] = zero
	}
	r.wakers = r.wakers[:0]
	r.sleepers = nil
}

// WaitAny blocks in one poll(2) call until a registered descriptor becomes
// ready or the soonest timer is due, then delivers wakes for everything that
// fired. Due timers are woken in deadline order. Ready descriptors are
// removed from the interest arrays with a swap-remove, so entry order is not
// preserved across calls.
//
// An EINTR from the OS is treated as a spurious wakeup: WaitAny returns nil
// without delivering anything.
func (r *Reactor[W]) WaitAny() error {
	n, err := unix.Poll(r.pfds, r.timeoutMs())
	if err != nil {
		if err == unix.EINTR {
			return nil
		}
		return fmt.Errorf("reactor: poll: %w", err)
	}

	r.wakeDueSleepers(time.Now())

	// Account for every descriptor the OS reported ready: exactly one
	// swap-remove plus one wake each. The parallel arrays stay aligned.
	i := 0
	for n > 0 {
		if r.pfds[i].Revents != 0 {
			w := r.wakers[i]
			r.swapRemove(i)
			w.Wake()
			n--
		} else {
			i++
		}
	}
	return nil
}

// timeoutMs converts the soonest deadline into a poll timeout. No timers
// means block indefinitely. The duration is rounded up to the next
// millisecond so poll never expires before the deadline.
func (r *Reactor[W]) timeoutMs() int {
	if len(r.sleepers) == 0 {
		return -1
	}
	d := time.Until(r.sleepers[0].at)
	if d <= 0 {
		return 0
	}
	ms, err := safeMs(d + time.Millisecond - 1)
	if err != nil {
		// Deadline too far away to express; poll for as long as we can
		// and recompute on the next pass.
		return 1 << 30
	}
	return ms
}

func (r *Reactor[W]) wakeDueSleepers(now time.Time) {
	for len(r.sleepers) > 0 {
		s := r.sleepers[0]
		if s.at.After(now) {
			break
		}
		heap.Pop(&r.sleepers)
		s.w.Wake()
	}
}

func (r *Reactor[W]) swapRemove(i int) {
	last := len(r.pfds) - 1
	r.pfds[i] = r.pfds[last]
	r.pfds = r.pfds[:last]

	r.wakers[i] = r.wakers[last]
	var zero W
	r.wakers[last] = zero
	r.wakers = r.wakers[:last]
}

func (r *Reactor[W]) checkRoom() error {
	if r.limit > 0 && r.Size() >= r.limit {
		return fmt.Errorf("reactor at capacity %d: %w", r.limit, api.ErrResourceExhausted)
	}
	return nil
}
