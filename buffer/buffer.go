// File: buffer/buffer.go
// Package buffer implements the contiguous byte region handed out by the
// pool factories.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Buffer is either heap-backed (owned by the Go runtime) or direct
// (off-heap memory mapped outside the managed heap, released explicitly).
// Direct buffers avoid an extra copy on raw I/O but require Destroy to be
// called exactly once by their owning factory.

package buffer

import "fmt"

// Buffer is a contiguous byte region with a read/write cursor and a limit.
// Invariant: 0 <= position <= limit <= capacity. A buffer is exclusively
// owned by either the caller or a factory; ownership moves on Allocate/Free.
type Buffer struct {
	data   []byte // backing region, len(data) == capacity
	raw    []byte // original mapping for direct buffers, nil for heap
	pos    int
	limit  int
	direct bool
}

// NewHeap allocates a heap-backed buffer with position 0 and limit == size.
func NewHeap(size int) *Buffer {
	if size < 0 {
		panic(fmt.Sprintf("buffer: negative size %d", size))
	}
	return &Buffer{data: make([]byte, size), limit: size}
}

// NewDirect allocates an off-heap buffer with position 0 and limit == size.
// The platform backend may fail; the buffer must eventually be destroyed by
// its owner to return the mapping to the OS.
func NewDirect(size int) (*Buffer, error) {
	if size < 0 {
		panic(fmt.Sprintf("buffer: negative size %d", size))
	}
	data, raw, err := allocDirect(size)
	if err != nil {
		return nil, err
	}
	return &Buffer{data: data, raw: raw, limit: size, direct: true}, nil
}

// Wrap adopts p as a heap buffer with position 0 and limit len(p).
func Wrap(p []byte) *Buffer {
	return &Buffer{data: p, limit: len(p)}
}

// Capacity returns the size of the backing region.
func (b *Buffer) Capacity() int { return len(b.data) }

// Limit returns the current limit.
func (b *Buffer) Limit() int { return b.limit }

// SetLimit moves the limit. The position is clamped down if it would exceed
// the new limit.
func (b *Buffer) SetLimit(limit int) {
	if limit < 0 || limit > len(b.data) {
		panic(fmt.Sprintf("buffer: limit %d out of range [0,%d]", limit, len(b.data)))
	}
	b.limit = limit
	if b.pos > limit {
		b.pos = limit
	}
}

// Position returns the cursor.
func (b *Buffer) Position() int { return b.pos }

// SetPosition moves the cursor.
func (b *Buffer) SetPosition(pos int) {
	if pos < 0 || pos > b.limit {
		panic(fmt.Sprintf("buffer: position %d out of range [0,%d]", pos, b.limit))
	}
	b.pos = pos
}

// Remaining returns limit - position.
func (b *Buffer) Remaining() int { return b.limit - b.pos }

// HasRemaining reports whether at least one byte remains.
func (b *Buffer) HasRemaining() bool { return b.pos < b.limit }

// Clear resets position to 0 and limit to capacity. Contents are untouched.
func (b *Buffer) Clear() {
	b.pos = 0
	b.limit = len(b.data)
}

// Direct reports whether the buffer lives outside the managed heap.
func (b *Buffer) Direct() bool { return b.direct }

// Bytes exposes the full backing region [0, capacity). Writes through the
// returned slice are visible to every view of the buffer.
func (b *Buffer) Bytes() []byte { return b.data }

// Window returns the live region [position, limit).
func (b *Buffer) Window() []byte { return b.data[b.pos:b.limit] }

// Put copies p at the cursor and advances it. Panics if p does not fit the
// remaining window.
func (b *Buffer) Put(p []byte) {
	if len(p) > b.Remaining() {
		panic(fmt.Sprintf("buffer: put of %d bytes exceeds remaining %d", len(p), b.Remaining()))
	}
	copy(b.data[b.pos:], p)
	b.pos += len(p)
}

// Take copies up to len(p) bytes from the cursor into p, advances the cursor
// and returns the count moved.
func (b *Buffer) Take(p []byte) int {
	n := copy(p, b.data[b.pos:b.limit])
	b.pos += n
	return n
}

// Destroy releases direct memory back to the OS. Heap buffers are left to
// the garbage collector. Destroy must only be called by the owning factory;
// the buffer is unusable afterwards.
func (b *Buffer) Destroy() {
	if b.direct && b.raw != nil {
		freeDirect(b.raw)
	}
	b.data = nil
	b.raw = nil
	b.pos = 0
	b.limit = 0
}
