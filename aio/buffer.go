//go:build unix

// File: aio/buffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Buffered reading: a growable byte buffer plus operations that fill it
// from a descriptor until a delimiter or byte count is satisfied.

package aio

import (
	"bytes"
	"errors"

	uniloop "github.com/momentics/uniloop"
	"github.com/momentics/uniloop/api"
	"github.com/momentics/uniloop/fd"
	"github.com/momentics/uniloop/reactor"
)

// ReadBuffer accumulates bytes read from a descriptor ahead of
// consumption. Data survives across operations, so bytes read past a
// delimiter are not lost.
type ReadBuffer struct {
	data []byte
}

// Pending returns the unconsumed bytes.
func (b *ReadBuffer) Pending() []byte {
	return b.data
}

// Consume removes and returns the first n pending bytes. n must not
// exceed the pending length.
func (b *ReadBuffer) Consume(n int) []byte {
	out := b.data[:n:n]
	b.data = b.data[n:]
	return out
}

// readInto performs one read appending up to batch bytes.
func (b *ReadBuffer) readInto(f fd.FD, batch int) (int, error) {
	start := len(b.data)
	b.data = append(b.data, make([]byte, batch)...)
	n, err := f.Read(b.data[start:])
	b.data = b.data[:start+max(n, 0)]
	return n, err
}

// Fill completes after one successful read appended Buf's pending data.
// n==0 means end of stream.
type Fill struct {
	FD    fd.FD
	Buf   *ReadBuffer
	Batch int
}

func (f *Fill) Poll(w uniloop.Waker) (n int, done bool, err error) {
	batch := f.Batch
	if batch <= 0 {
		batch = 512
	}
	n, err = f.Buf.readInto(f.FD, batch)
	if errors.Is(err, api.ErrWouldBlock) {
		if rerr := w.Runtime().WakeMeUpOnIO(reactor.Readable(f.FD.Raw()), w); rerr != nil {
			return 0, true, rerr
		}
		return 0, false, nil
	}
	return n, true, err
}

// ReadUntil reads the descriptor until Delim appears in the buffer, then
// completes with the bytes up to and including the delimiter. Bytes after
// the delimiter stay pending in Buf. Completes with ErrClosed if the
// stream ends before the delimiter arrives.
type ReadUntil struct {
	FD    fd.FD
	Buf   *ReadBuffer
	Delim []byte

	checked int
	batch   int
}

func (r *ReadUntil) Poll(w uniloop.Waker) (line []byte, done bool, err error) {
	if len(r.Delim) == 0 {
		return nil, true, nil
	}
	if r.batch == 0 {
		r.batch = 64
	}

	for {
		pending := r.Buf.Pending()
		if i := bytes.Index(pending[r.checked:], r.Delim); i >= 0 {
			end := r.checked + i + len(r.Delim)
			return r.Buf.Consume(end), true, nil
		}
		// No need to rescan bytes that cannot start a match.
		if n := len(pending) - len(r.Delim) + 1; n > r.checked {
			r.checked = n
		}

		n, rerr := r.Buf.readInto(r.FD, r.batch)
		if errors.Is(rerr, api.ErrWouldBlock) {
			if werr := w.Runtime().WakeMeUpOnIO(reactor.Readable(r.FD.Raw()), w); werr != nil {
				return nil, true, werr
			}
			return nil, false, nil
		}
		if rerr != nil {
			return nil, true, rerr
		}
		if n == 0 {
			return nil, true, api.ErrClosed
		}
		r.batch *= 2
	}
}

// ReadExact completes once Count bytes are pending, consuming and
// returning exactly that many. Completes with ErrClosed on a short stream.
type ReadExact struct {
	FD    fd.FD
	Buf   *ReadBuffer
	Count int
}

func (r *ReadExact) Poll(w uniloop.Waker) (data []byte, done bool, err error) {
	for {
		if len(r.Buf.Pending()) >= r.Count {
			return r.Buf.Consume(r.Count), true, nil
		}

		n, rerr := r.Buf.readInto(r.FD, r.Count-len(r.Buf.Pending()))
		if errors.Is(rerr, api.ErrWouldBlock) {
			if werr := w.Runtime().WakeMeUpOnIO(reactor.Readable(r.FD.Raw()), w); werr != nil {
				return nil, true, werr
			}
			return nil, false, nil
		}
		if rerr != nil {
			return nil, true, rerr
		}
		if n == 0 {
			return nil, true, api.ErrClosed
		}
	}
}
