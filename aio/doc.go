// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package aio provides resumable asynchronous operations built on the
// uniloop runtime: timed sleeps, non-blocking reads and writes, buffered
// delimiter reads, socket accepts and an in-loop mailbox.
//
// Each operation is a small state machine polled from inside a task. The
// convention is uniform: Poll attempts the operation, and either completes
// (done=true, with result or error) or registers a wake through the passed
// Waker and reports done=false. A pending operation must be re-polled with
// a waker for the same task.
package aio
