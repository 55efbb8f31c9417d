//go:build unix

// File: aio/net.go
// Author: momentics <momentics@gmail.com>
//
// Socket accept operation.

package aio

import (
	"errors"

	uniloop "github.com/momentics/uniloop"
	"github.com/momentics/uniloop/api"
	"github.com/momentics/uniloop/fd"
	"github.com/momentics/uniloop/reactor"
)

// Accept completes when a connection is available on a non-blocking
// listening socket. The accepted descriptor is non-blocking. The value is
// reusable: poll it again after completion for the next connection.
type Accept struct {
	FD fd.FD
}

func (a *Accept) Poll(w uniloop.Waker) (conn fd.FD, done bool, err error) {
	conn, err = a.FD.Accept()
	if errors.Is(err, api.ErrWouldBlock) {
		if rerr := w.Runtime().WakeMeUpOnIO(reactor.Readable(a.FD.Raw()), w); rerr != nil {
			return fd.Invalid, true, rerr
		}
		return fd.Invalid, false, nil
	}
	return conn, true, err
}
