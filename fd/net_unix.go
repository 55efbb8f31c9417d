//go:build unix

// File: fd/net_unix.go
// Author: momentics <momentics@gmail.com>
//
// Minimal IPv4 TCP socket setup for descriptors driven by the runtime.

package fd

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

// ListenTCP opens a non-blocking IPv4 TCP listener on host:port.
// An empty host listens on all interfaces.
func ListenTCP(host string, port int, backlog int) (FD, error) {
	addr := [4]byte{}
	if host != "" {
		ip := net.ParseIP(host)
		if ip == nil || ip.To4() == nil {
			return Invalid, fmt.Errorf("fd: listen: %q is not an IPv4 address", host)
		}
		copy(addr[:], ip.To4())
	}

	s, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return Invalid, fmt.Errorf("fd: socket: %w", err)
	}
	unix.CloseOnExec(s)

	if err := unix.SetsockoptInt(s, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(s)
		return Invalid, fmt.Errorf("fd: setsockopt: %w", err)
	}
	if err := unix.Bind(s, &unix.SockaddrInet4{Port: port, Addr: addr}); err != nil {
		unix.Close(s)
		return Invalid, fmt.Errorf("fd: bind %s:%d: %w", host, port, err)
	}
	if backlog <= 0 {
		backlog = unix.SOMAXCONN
	}
	if err := unix.Listen(s, backlog); err != nil {
		unix.Close(s)
		return Invalid, fmt.Errorf("fd: listen: %w", err)
	}
	if err := unix.SetNonblock(s, true); err != nil {
		unix.Close(s)
		return Invalid, fmt.Errorf("fd: listen: set nonblock: %w", err)
	}
	return FD(s), nil
}

// LocalPort returns the port a bound socket is listening on, useful when
// binding to port 0.
func (fd FD) LocalPort() (int, error) {
	sa, err := unix.Getsockname(int(fd))
	if err != nil {
		return 0, fmt.Errorf("fd: getsockname: %w", err)
	}
	in4, ok := sa.(*unix.SockaddrInet4)
	if !ok {
		return 0, fmt.Errorf("fd: getsockname: not an IPv4 socket")
	}
	return in4.Port, nil
}
