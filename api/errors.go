// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types shared across the uniloop runtime packages.

package api

import "fmt"

// Common errors used across the library.
var (
	// ErrResourceExhausted is returned when a capacity-bounded structure
	// (task arena, reactor interest set) cannot accept another entry.
	ErrResourceExhausted = fmt.Errorf("resource exhausted")

	// ErrWouldBlock is returned by non-blocking descriptor operations when
	// the operation cannot complete without waiting.
	ErrWouldBlock = fmt.Errorf("operation would block")

	// ErrClosed is returned when an operation is attempted on a closed
	// descriptor or runtime.
	ErrClosed = fmt.Errorf("closed")

	// ErrInvalidArgument is returned for out-of-range or malformed inputs.
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
