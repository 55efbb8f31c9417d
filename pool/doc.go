// Package pool
// Author: momentics <momentics@gmail.com>
//
// Lock-free building blocks shared by the runtime. Currently holds the
// bounded ring used to hand wake requests from foreign goroutines to the
// loop thread.
package pool
