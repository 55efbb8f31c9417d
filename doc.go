// File: doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package uniloop is a single-threaded cooperative task runtime: a
// stable-address task arena, an allocation-free waker bridge and a
// readiness reactor multiplexing descriptor polling with a timer queue
// into one blocking wait.
//
// Tasks are poll-driven state machines (see Task); many in-flight
// asynchronous operations share one thread with no preemption and no
// locks. Higher-level operations (buffered reads, write-all, accept,
// sleep) live in the aio package.
package uniloop
