//go:build unix

// File: reactor/pollfd.go
// Author: momentics <momentics@gmail.com>
//
// Descriptor interest description passed to RegisterIO.

package reactor

import (
	"time"

	"fortio.org/safecast"
	"golang.org/x/sys/unix"
)

// Interest is a poll(2) event mask.
type Interest int16

const (
	// In requests a wake when data may be read without blocking.
	In Interest = unix.POLLIN
	// Out requests a wake when data may be written without blocking.
	Out Interest = unix.POLLOUT
	// Pri requests a wake when priority data may be read.
	Pri Interest = unix.POLLPRI
)

// PollFd names a file descriptor and the readiness events waited on.
// Error and hangup conditions are always reported by the OS regardless of
// the requested mask.
type PollFd struct {
	FD     int
	Events Interest
}

// Readable describes read interest in fd.
func Readable(fd int) PollFd {
	return PollFd{FD: fd, Events: In}
}

// Writable describes write interest in fd.
func Writable(fd int) PollFd {
	return PollFd{FD: fd, Events: Out}
}

func safeMs(d time.Duration) (int, error) {
	return safecast.Conv[int](d.Milliseconds())
}
