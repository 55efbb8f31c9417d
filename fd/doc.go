// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package fd wraps the raw descriptor operations the runtime's asynchronous
// helpers are built on: non-blocking reads, writes, accepts and pipes, with
// EAGAIN mapped onto api.ErrWouldBlock.
package fd
