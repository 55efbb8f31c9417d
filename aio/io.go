//go:build unix

// File: aio/io.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Descriptor read/write operations. All descriptors must be in
// non-blocking mode; a blocking descriptor stalls the entire loop.

package aio

import (
	"errors"

	uniloop "github.com/momentics/uniloop"
	"github.com/momentics/uniloop/api"
	"github.com/momentics/uniloop/fd"
	"github.com/momentics/uniloop/reactor"
)

// Read completes after a single successful read into Buf. n==0 with
// done=true means end of stream.
type Read struct {
	FD  fd.FD
	Buf []byte
}

// Poll attempts the read. An already-readable descriptor completes on the
// first call without touching the reactor.
func (r *Read) Poll(w uniloop.Waker) (n int, done bool, err error) {
	n, err = r.FD.Read(r.Buf)
	if errors.Is(err, api.ErrWouldBlock) {
		if rerr := w.Runtime().WakeMeUpOnIO(reactor.Readable(r.FD.Raw()), w); rerr != nil {
			return 0, true, rerr
		}
		return 0, false, nil
	}
	return n, true, err
}

// Write completes after a single successful write from Data, which may be
// partial.
type Write struct {
	FD   fd.FD
	Data []byte
}

func (wr *Write) Poll(w uniloop.Waker) (n int, done bool, err error) {
	n, err = wr.FD.Write(wr.Data)
	if errors.Is(err, api.ErrWouldBlock) {
		if rerr := w.Runtime().WakeMeUpOnIO(reactor.Writable(wr.FD.Raw()), w); rerr != nil {
			return 0, true, rerr
		}
		return 0, false, nil
	}
	return n, true, err
}

// WriteAll completes once every byte of Data has been written. Data is
// consumed as progress is made, so a WriteAll value is single-use.
type WriteAll struct {
	FD   fd.FD
	Data []byte
}

func (wr *WriteAll) Poll(w uniloop.Waker) (done bool, err error) {
	for len(wr.Data) > 0 {
		n, werr := wr.FD.Write(wr.Data)
		if errors.Is(werr, api.ErrWouldBlock) {
			if rerr := w.Runtime().WakeMeUpOnIO(reactor.Writable(wr.FD.Raw()), w); rerr != nil {
				return true, rerr
			}
			return false, nil
		}
		if werr != nil {
			return true, werr
		}
		wr.Data = wr.Data[n:]
	}
	return true, nil
}
