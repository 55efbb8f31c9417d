// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor tracks outstanding readiness interest (file descriptors)
// and timer deadlines, and resolves both through a single blocking
// multiplexed wait built on poll(2).
package reactor
