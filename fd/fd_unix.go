//go:build unix

// File: fd/fd_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unix descriptor wrappers. All descriptors handed to the runtime are
// expected to be in non-blocking mode; blocking descriptors stall the whole
// loop.

package fd

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/momentics/uniloop/api"
)

// FD is a raw file descriptor.
type FD int

// Invalid is the descriptor value returned alongside errors.
const Invalid FD = -1

// Raw returns the descriptor as an int for syscall use.
func (fd FD) Raw() int { return int(fd) }

// SetNonblock switches the descriptor's blocking mode.
func (fd FD) SetNonblock(nonblock bool) error {
	return unix.SetNonblock(int(fd), nonblock)
}

// Read reads into p. Returns api.ErrWouldBlock when no data is available on
// a non-blocking descriptor.
func (fd FD) Read(p []byte) (int, error) {
	n, err := unix.Read(int(fd), p)
	if err != nil {
		return 0, mapErrno("read", err)
	}
	return n, nil
}

// Write writes p. Returns api.ErrWouldBlock when the descriptor cannot
// accept data without blocking.
func (fd FD) Write(p []byte) (int, error) {
	n, err := unix.Write(int(fd), p)
	if err != nil {
		return 0, mapErrno("write", err)
	}
	return n, nil
}

// Accept accepts one pending connection on a listening socket. The accepted
// descriptor is returned in non-blocking mode. Returns api.ErrWouldBlock
// when no connection is pending.
func (fd FD) Accept() (FD, error) {
	nfd, _, err := unix.Accept(int(fd))
	if err != nil {
		return Invalid, mapErrno("accept", err)
	}
	if err := unix.SetNonblock(nfd, true); err != nil {
		unix.Close(nfd)
		return Invalid, fmt.Errorf("fd: accept: set nonblock: %w", err)
	}
	unix.CloseOnExec(nfd)
	return FD(nfd), nil
}

// Close releases the descriptor.
func (fd FD) Close() error {
	return unix.Close(int(fd))
}

// Pipe creates a non-blocking pipe pair (read end, write end).
func Pipe() (FD, FD, error) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return Invalid, Invalid, fmt.Errorf("fd: pipe: %w", err)
	}
	for _, f := range p {
		if err := unix.SetNonblock(f, true); err != nil {
			unix.Close(p[0])
			unix.Close(p[1])
			return Invalid, Invalid, fmt.Errorf("fd: pipe: set nonblock: %w", err)
		}
		unix.CloseOnExec(f)
	}
	return FD(p[0]), FD(p[1]), nil
}

// mapErrno folds would-block errnos into the shared sentinel so callers can
// branch with errors.Is.
func mapErrno(op string, err error) error {
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		return api.ErrWouldBlock
	}
	return fmt.Errorf("fd: %s: %w", op, err)
}
