// File: stream/stream.go
// Package stream implements the dynamically growing buffer stream at the
// heart of hioload-buf.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Stream owns exactly one buffer taken from a factory. Bytes written but
// not yet skipped live in [0, position); the stream grows by doubling
// through the factory and shrinks logically by in-place compaction, giving
// sliding-window semantics without copying into a new buffer.
//
// A Stream carries no internal synchronization. Callers must serialize all
// access to one instance; the expected deployment is one process-wide
// factory feeding many single-goroutine streams.

package stream

import (
	"fmt"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/buffer"
)

// View is the read-side cursor a Stream can synchronize with; codec readers
// implement it.
type View interface {
	// Offset is the number of bytes the view has consumed from the front of
	// the stream's pending data.
	Offset() int
}

// Stream is a growable byte window backed by a pooled buffer.
type Stream struct {
	factory api.BufferFactory
	buf     *buffer.Buffer
}

// New allocates a stream with the factory's default buffer size.
func New(factory api.BufferFactory) (*Stream, error) {
	b, err := factory.AllocateDefault()
	if err != nil {
		return nil, err
	}
	return &Stream{factory: factory, buf: b}, nil
}

func (s *Stream) ensure() {
	if s.buf == nil {
		panic(api.ErrStreamFreed)
	}
}

// Size is the number of pending (written but not skipped) bytes.
func (s *Stream) Size() int {
	s.ensure()
	return s.buf.Position()
}

// Capacity is the total size of the underlying buffer. It changes as the
// stream expands.
func (s *Stream) Capacity() int {
	s.ensure()
	return s.buf.Capacity()
}

// Remaining is the number of bytes writable before the stream must expand.
func (s *Stream) Remaining() int {
	s.ensure()
	return s.buf.Remaining()
}

// IsEmpty reports whether the stream holds no pending bytes.
func (s *Stream) IsEmpty() bool {
	s.ensure()
	return s.buf.Position() == 0
}

// Pad guarantees space for n more bytes, expanding through the factory as
// needed. Slack between the buffer's limit and its capacity is consumed
// before any reallocation. On allocation failure the stream is left entirely
// unchanged.
func (s *Stream) Pad(n int) error {
	if n < 0 {
		panic(fmt.Sprintf("stream: negative pad %d", n))
	}
	s.ensure()
	if n <= s.buf.Remaining() {
		return nil
	}
	pos := s.buf.Position()
	required := pos + n
	next := s.buf.Capacity()
	if required > next {
		next *= 2
		if next < required {
			next = required
		}
	}
	b, err := s.factory.Resize(s.buf, next)
	if err != nil {
		return err
	}
	s.buf = b
	b.SetPosition(pos)
	return nil
}

// Grow doubles the underlying buffer immediately, without waiting for a
// write to run out of room.
func (s *Stream) Grow() error {
	s.ensure()
	pos := s.buf.Position()
	next := s.buf.Capacity() * 2
	if next == 0 {
		next = 1
	}
	b, err := s.factory.Resize(s.buf, next)
	if err != nil {
		return err
	}
	s.buf = b
	b.SetPosition(pos)
	return nil
}

// Writer reserves n bytes at the write cursor, expanding first, and returns
// the reserved region. The caller fills the region in place; the bytes count
// as written immediately.
func (s *Stream) Writer(n int) ([]byte, error) {
	if err := s.Pad(n); err != nil {
		return nil, err
	}
	pos := s.buf.Position()
	s.buf.SetPosition(pos + n)
	return s.buf.Bytes()[pos : pos+n : pos+n], nil
}

// Pending returns the frozen view [0, position) for building readers. The
// slice aliases the stream's storage: a later Skip or expansion moves the
// data out from under it, so views must be consumed before the stream is
// compacted (callers serialize access; see package comment).
func (s *Stream) Pending() []byte {
	s.ensure()
	return s.buf.Bytes()[:s.buf.Position()]
}

// Skip discards the oldest n pending bytes. Skipping everything resets the
// stream in O(1); a partial skip compacts the tail down in place.
func (s *Stream) Skip(n int) {
	s.ensure()
	if n <= 0 {
		return
	}
	pos := s.buf.Position()
	if n >= pos {
		s.buf.Clear()
		return
	}
	data := s.buf.Bytes()
	copy(data, data[n:pos])
	s.buf.Clear()
	s.buf.SetPosition(pos - n)
}

// Sync commits a view's consumption back to the stream; everything the view
// has read is skipped.
func (s *Stream) Sync(v View) {
	s.Skip(v.Offset())
}

// Clear discards all pending bytes.
func (s *Stream) Clear() {
	s.ensure()
	s.buf.Clear()
}

// Buffer exposes the current underlying buffer. The reference changes when
// the stream expands.
func (s *Stream) Buffer() *buffer.Buffer {
	s.ensure()
	return s.buf
}

// Free returns the owned buffer to its factory. Only the first call has any
// effect; any other method invoked after Free panics.
func (s *Stream) Free() {
	if s.buf != nil {
		s.factory.Free(s.buf)
		s.buf = nil
	}
}

// IsFree reports whether Free has been called.
func (s *Stream) IsFree() bool { return s.buf == nil }
