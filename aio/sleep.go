//go:build unix

// File: aio/sleep.go
// Author: momentics <momentics@gmail.com>
//
// Timed suspension.

package aio

import (
	"time"

	uniloop "github.com/momentics/uniloop"
)

// Sleep completes once its deadline has been reached. The wake may arrive
// after the deadline, never before.
type Sleep struct {
	At    time.Time
	armed bool
}

// After returns a Sleep completing d from now.
func After(d time.Duration) Sleep {
	return Sleep{At: time.Now().Add(d)}
}

// Poll arms the timer on first call and completes once the deadline has
// passed. A wake from another source before the deadline leaves the timer
// pending instead of completing early.
func (s *Sleep) Poll(w uniloop.Waker) (done bool, err error) {
	if !time.Now().Before(s.At) {
		return true, nil
	}
	if !s.armed {
		if err := w.Runtime().WakeMeUpOnTime(s.At, w); err != nil {
			return true, err
		}
		s.armed = true
	}
	return false, nil
}

// Reset re-arms the sleep for a new deadline so the value can be reused.
func (s *Sleep) Reset(at time.Time) {
	s.At = at
	s.armed = false
}
