//go:build unix

// File: guard.go
// Author: momentics <momentics@gmail.com>
//
// Reentrancy guard around the runtime's thread-confined state. The runtime
// has no locks; single-thread confinement is the actual safety mechanism.
// The guard turns a confinement violation into a panic instead of silent
// state corruption, and is checked in all builds.

package uniloop

type guard struct {
	name string
	held bool
}

func (g *guard) enter() {
	if g.held {
		panic("uniloop: reentrant access to " + g.name)
	}
	g.held = true
}

func (g *guard) leave() {
	g.held = false
}
