//go:build unix

// File: cmd/uniloop-echo/echo.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Acceptor and per-connection echo tasks. Every connection is one task on
// the same runtime; no goroutines are involved in the data path.

package main

import (
	"errors"
	"log"

	uniloop "github.com/momentics/uniloop"
	"github.com/momentics/uniloop/aio"
	"github.com/momentics/uniloop/api"
	"github.com/momentics/uniloop/fd"
)

type acceptor struct {
	accept  aio.Accept
	bufSize int
}

func newAcceptor(listener fd.FD, bufSize int) *acceptor {
	return &acceptor{accept: aio.Accept{FD: listener}, bufSize: bufSize}
}

func (a *acceptor) Poll(w uniloop.Waker) uniloop.Poll {
	for {
		conn, done, err := a.accept.Poll(w)
		if !done {
			return uniloop.Pending
		}
		if err != nil {
			log.Printf("accept: %v", err)
			return uniloop.Done
		}
		ec := &echoConn{conn: conn, buf: make([]byte, a.bufSize)}
		if _, err := w.Runtime().TrySpawn(ec); err != nil {
			if errors.Is(err, api.ErrResourceExhausted) {
				log.Printf("connection rejected: task limit reached")
				conn.Close()
				continue
			}
			conn.Close()
			log.Printf("spawn: %v", err)
			return uniloop.Done
		}
	}
}

type echoConn struct {
	conn    fd.FD
	buf     []byte
	wr      aio.WriteAll
	writing bool
}

func (c *echoConn) Poll(w uniloop.Waker) uniloop.Poll {
	for {
		if c.writing {
			done, err := c.wr.Poll(w)
			if !done {
				return uniloop.Pending
			}
			if err != nil {
				c.conn.Close()
				return uniloop.Done
			}
			c.writing = false
		}

		rd := aio.Read{FD: c.conn, Buf: c.buf}
		n, done, err := rd.Poll(w)
		if !done {
			return uniloop.Pending
		}
		if err != nil || n == 0 {
			c.conn.Close()
			return uniloop.Done
		}
		c.wr = aio.WriteAll{FD: c.conn, Data: c.buf[:n]}
		c.writing = true
	}
}
