// File: api/factory.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Buffer factory and transfer contracts. A factory hands out buffers with a
// capacity of at least the requested size and may cache freed buffers up to a
// configurable memory budget. All factory methods are safe for concurrent use
// by many goroutines sharing one factory.

package api

import "github.com/momentics/hioload-buf/buffer"

// Transferable moves cached buffers between two owners in bulk. Release dumps
// every cached buffer without destroying it; Transfer attempts to absorb the
// given buffers and returns the rejected remainder. No buffer is copied or
// reallocated during the handoff.
type Transferable interface {
	// Release atomically removes and returns all cached buffers.
	Release() []*buffer.Buffer

	// Transfer offers each buffer to this owner's cache and returns the
	// subset that was denied (wrong type, wrong size, or budget exhausted).
	Transfer(elements []*buffer.Buffer) []*buffer.Buffer
}

// FactoryStats is a point-in-time snapshot of a factory's accounting.
type FactoryStats struct {
	Used        int64
	Capacity    int64
	Available   int64
	DefaultSize int
}

// StatsOf samples f. The fields are read independently, so under concurrent
// traffic the snapshot is approximate.
func StatsOf(f BufferFactory) FactoryStats {
	return FactoryStats{
		Used:        f.Size(),
		Capacity:    f.Capacity(),
		Available:   f.Available(),
		DefaultSize: f.DefaultSize(),
	}
}

// BufferFactory allocates and frees buffers, optionally caching them.
type BufferFactory interface {
	Transferable

	// Allocate returns a buffer with capacity >= size, limit == size and
	// position == 0. Contents are not guaranteed to be zeroed. A nil buffer
	// and ErrAllocationFailure are returned when memory cannot be supplied.
	Allocate(size int) (*buffer.Buffer, error)

	// AllocateDefault is Allocate with the factory's default size.
	AllocateDefault() (*buffer.Buffer, error)

	// Resize adjusts old to hold size bytes. If size fits the existing
	// capacity the same buffer is returned with its limit moved, no copy.
	// Otherwise a new buffer is allocated, bytes [0, old.Limit()) are copied
	// over, and old is freed. After a growing resize old must not be used.
	Resize(old *buffer.Buffer, size int) (*buffer.Buffer, error)

	// Free disposes a buffer, caching it when the strategy accepts it and
	// the cache budget allows. Reports whether the buffer was cached; a
	// rejected buffer is destroyed. The buffer must not be used afterwards.
	Free(b *buffer.Buffer) bool

	// Clear evicts and destroys every cached buffer and returns the number
	// of bytes freed.
	Clear() int64

	// Fill proactively populates the cache toward the memory budget and
	// returns the number of bytes added. Strategies that never cache
	// return 0.
	Fill() int64

	// Size is the number of bytes currently held in cache.
	Size() int64

	// Capacity is the maximum number of bytes the cache may hold.
	Capacity() int64

	// SetCapacity adjusts the cache memory budget.
	SetCapacity(capacity int64)

	// Available is Capacity() - Size().
	Available() int64

	// DefaultSize is the size used by AllocateDefault.
	DefaultSize() int

	// SetDefaultSize adjusts the default allocation size.
	SetDefaultSize(size int)
}
