// File: pool/base.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Accounting core shared by every caching strategy. The strategy only decides
// what to cache and how to allocate; memory accounting, the over-budget check
// on free and the release/transfer handoff live here and are identical for
// all factories.

package pool

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/buffer"
)

const (
	// DefaultMaxMemory bounds the cache of a single factory at 1 MiB unless
	// overridden with SetCapacity.
	DefaultMaxMemory = 1 << 20

	// DefaultAllocateSize is used by AllocateDefault when the strategy has no
	// better default of its own.
	DefaultAllocateSize = 1 << 9
)

// strategy is the subset of behavior each factory variant supplies.
// Implementations must be safe for concurrent invocation.
type strategy interface {
	// onAllocate produces a buffer with capacity >= size. cached reports
	// that the buffer came out of the free list rather than fresh memory.
	onAllocate(size int) (b *buffer.Buffer, cached bool, err error)

	// onCache offers a freed buffer; true means the strategy kept it.
	onCache(b *buffer.Buffer) bool

	// onFill pre-warms the cache with at most budget bytes of fresh buffers
	// and returns the number of bytes actually added.
	onFill(budget int64) int64

	// onRelease detaches and returns every cached buffer.
	onRelease() []*buffer.Buffer
}

// Factory implements api.BufferFactory on top of a strategy.
type Factory struct {
	used        atomic.Int64
	max         atomic.Int64
	defaultSize atomic.Int64
	strat       strategy
}

var _ api.BufferFactory = (*Factory)(nil)

func newFactory(s strategy, defaultSize int) *Factory {
	f := &Factory{strat: s}
	f.max.Store(DefaultMaxMemory)
	f.defaultSize.Store(int64(defaultSize))
	return f
}

// Allocate returns a buffer with capacity >= size, limit == size and
// position 0. Buffers taken from cache are uncounted from usedMemory before
// ownership passes to the caller.
func (f *Factory) Allocate(size int) (*buffer.Buffer, error) {
	if size < 0 {
		panic(fmt.Sprintf("pool: negative allocation size %d", size))
	}
	b, cached, err := f.strat.onAllocate(size)
	if err != nil {
		slog.Error("buffer allocation failed", "size", size, "err", err)
		return nil, api.NewAllocationError(size, err)
	}
	if cached {
		f.used.Add(-int64(b.Capacity()))
	}
	b.Clear()
	b.SetLimit(size)
	return b, nil
}

// AllocateDefault is Allocate with the configured default size.
func (f *Factory) AllocateDefault() (*buffer.Buffer, error) {
	return f.Allocate(f.DefaultSize())
}

// Resize gives back a buffer of limit == size holding the first
// min(size, old.Limit()) bytes of old. When size fits the existing capacity
// the same buffer is returned with only its limit moved; otherwise the data
// is migrated to a fresh allocation and old is freed. On allocation failure
// old is left untouched.
func (f *Factory) Resize(old *buffer.Buffer, size int) (*buffer.Buffer, error) {
	if size <= old.Capacity() {
		old.SetLimit(size)
		return old, nil
	}
	next, err := f.Allocate(size)
	if err != nil {
		return nil, err
	}
	n := old.Limit()
	copy(next.Bytes()[:n], old.Bytes()[:n])
	f.Free(old)
	return next, nil
}

// Free disposes a buffer. The over-budget check runs before the strategy is
// consulted, so a full cache destroys immediately regardless of strategy.
//
// The budget check and the later counter add are separate atomics: racing
// frees can overshoot maxMemory by at most one buffer capacity per
// concurrent caller. The overshoot is transient and self-correcting, since
// every later free sees the inflated counter.
func (f *Factory) Free(b *buffer.Buffer) bool {
	capacity := int64(b.Capacity())
	if f.used.Load()+capacity > f.max.Load() {
		b.Destroy()
		return false
	}
	if f.strat.onCache(b) {
		f.used.Add(capacity)
		return true
	}
	b.Destroy()
	return false
}

// Clear evicts and destroys every cached buffer, returning the bytes freed.
func (f *Factory) Clear() int64 {
	var memory int64
	for _, b := range f.strat.onRelease() {
		memory += int64(b.Capacity())
		b.Destroy()
	}
	f.used.Add(-memory)
	return memory
}

// Fill pre-warms the cache toward the memory budget and returns the bytes
// added.
func (f *Factory) Fill() int64 {
	added := f.strat.onFill(f.Available())
	f.used.Add(added)
	return added
}

// Release removes and returns every cached buffer without destroying it.
// The returned buffers no longer count against this factory's usedMemory;
// they are intended for Transfer into another factory.
func (f *Factory) Release() []*buffer.Buffer {
	released := f.strat.onRelease()
	var memory int64
	for _, b := range released {
		memory += int64(b.Capacity())
	}
	f.used.Add(-memory)
	return released
}

// Transfer offers each buffer to this factory's cache, eligibility and
// budget permitting, and returns the denied remainder. The caller keeps
// ownership of denied buffers.
func (f *Factory) Transfer(elements []*buffer.Buffer) []*buffer.Buffer {
	var denied []*buffer.Buffer
	for _, b := range elements {
		capacity := int64(b.Capacity())
		if f.used.Load()+capacity <= f.max.Load() && f.strat.onCache(b) {
			f.used.Add(capacity)
		} else {
			denied = append(denied, b)
		}
	}
	return denied
}

// Size is the number of bytes currently cached.
func (f *Factory) Size() int64 { return f.used.Load() }

// Capacity is the cache memory budget.
func (f *Factory) Capacity() int64 { return f.max.Load() }

// SetCapacity adjusts the cache memory budget.
func (f *Factory) SetCapacity(capacity int64) { f.max.Store(capacity) }

// Available is the remaining cache budget in bytes.
func (f *Factory) Available() int64 { return f.max.Load() - f.used.Load() }

// DefaultSize is the size used by AllocateDefault.
func (f *Factory) DefaultSize() int { return int(f.defaultSize.Load()) }

// SetDefaultSize adjusts the default allocation size.
func (f *Factory) SetDefaultSize(size int) {
	if size < 0 {
		panic(fmt.Sprintf("pool: negative default size %d", size))
	}
	f.defaultSize.Store(int64(size))
}
