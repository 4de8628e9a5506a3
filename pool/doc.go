// Package pool
// Author: momentics <momentics@gmail.com>
//
// Buffer factories with bounded cache accounting for hioload-buf.
// One accounting core (base.go) carries the allocate/free/resize/clear/fill/
// release/transfer contract; five interchangeable caching strategies supply
// the accept/allocate/fill logic on top of it:
//
//	Heap    — never caches, heap buffers only
//	Direct  — never caches, off-heap buffers only
//	Fixed   — one size class, zero classification cost, pays memory slack
//	Binary  — power-of-two classes, worst-case fragmentation bounded at 2x
//	Map     — exact-size classes, no fragmentation, but class count grows
//	          with every distinct size the workload frees (see mapped.go)
//
// All factories are safe for concurrent use from many goroutines; counters
// are atomic fetch-and-add, and only first-time class creation in the Map
// strategy takes a lock.
package pool
