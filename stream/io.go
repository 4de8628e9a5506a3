// File: stream/io.go
// Drain and fill adapters between a Stream and the outside world.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Draining moves bytes into the stream; filling moves pending bytes out and
// skips them. Each direction comes in four shapes: non-blocking pull/push
// sources, blocking io.Reader/io.Writer, whole buffers, and raw byte ranges.

package stream

import (
	"io"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/buffer"
)

// Drain pulls from a non-blocking source until it would block or ends,
// expanding whenever the stream runs out of room. The returned count is
// valid even when err is io.EOF.
func (s *Stream) Drain(src api.PullSource) (int, error) {
	s.ensure()
	drained := 0
	for {
		if s.buf.Remaining() == 0 {
			if err := s.Pad(1); err != nil {
				return drained, err
			}
		}
		n, err := src.Pull(s.buf.Window())
		if n > 0 {
			s.buf.SetPosition(s.buf.Position() + n)
			drained += n
		}
		if err != nil {
			return drained, err
		}
		if n == 0 {
			return drained, nil
		}
	}
}

// DrainFrom reads from a blocking reader. When the reader exposes buffered
// bytes they are taken in one gulp without blocking; otherwise a single byte
// is read, blocking until it arrives.
func (s *Stream) DrainFrom(r io.Reader) (int, error) {
	s.ensure()
	if ba, ok := r.(api.ByteAvailabler); ok {
		if avail := ba.Buffered(); avail > 0 {
			if err := s.Pad(avail); err != nil {
				return 0, err
			}
			pos := s.buf.Position()
			n, err := r.Read(s.buf.Bytes()[pos : pos+avail])
			if n > 0 {
				s.buf.SetPosition(pos + n)
			}
			return n, err
		}
	}
	if err := s.Pad(1); err != nil {
		return 0, err
	}
	var one [1]byte
	for {
		n, err := r.Read(one[:])
		if n > 0 {
			pos := s.buf.Position()
			s.buf.Bytes()[pos] = one[0]
			s.buf.SetPosition(pos + 1)
			return 1, err
		}
		if err != nil {
			return 0, err
		}
	}
}

// DrainBuffer moves the remaining bytes of b into the stream, advancing b's
// position past them.
func (s *Stream) DrainBuffer(b *buffer.Buffer) (int, error) {
	s.ensure()
	n := b.Remaining()
	if n == 0 {
		return 0, nil
	}
	if err := s.Pad(n); err != nil {
		return 0, err
	}
	return buffer.Transfer(b, s.buf), nil
}

// DrainBytes copies length bytes of data starting at offset into the
// stream, clamping length to what data actually holds. An offset outside
// data, a negative length, or an empty copy yields -1.
func (s *Stream) DrainBytes(data []byte, offset, length int) (int, error) {
	s.ensure()
	if offset < 0 || length < 0 || offset >= len(data) {
		return -1, nil
	}
	n := len(data) - offset
	if length < n {
		n = length
	}
	if n == 0 {
		return -1, nil
	}
	if err := s.Pad(n); err != nil {
		return 0, err
	}
	pos := s.buf.Position()
	copy(s.buf.Bytes()[pos:], data[offset:offset+n])
	s.buf.SetPosition(pos + n)
	return n, nil
}

// Fill pushes pending bytes to a non-blocking sink until the sink would
// block, an error occurs, or the stream empties. Pushed bytes are skipped.
func (s *Stream) Fill(sink api.PushSink) (int, error) {
	s.ensure()
	pending := s.Pending()
	filled := 0
	var err error
	for filled < len(pending) {
		var n int
		n, err = sink.Push(pending[filled:])
		filled += n
		if err != nil || n == 0 {
			break
		}
	}
	s.Skip(filled)
	return filled, err
}

// FillTo writes all pending bytes to a blocking writer and skips whatever
// the writer accepted.
func (s *Stream) FillTo(w io.Writer) (int, error) {
	s.ensure()
	n, err := w.Write(s.Pending())
	s.Skip(n)
	return n, err
}

// FillBuffer moves pending bytes into b's remaining window, bounded by the
// smaller side.
func (s *Stream) FillBuffer(b *buffer.Buffer) int {
	s.ensure()
	pending := s.Pending()
	n := b.Remaining()
	if len(pending) < n {
		n = len(pending)
	}
	if n == 0 {
		return 0
	}
	b.Put(pending[:n])
	s.Skip(n)
	return n
}

// FillBytes copies pending bytes into data starting at offset, bounded by
// length, the room left in data, and the pending size. An offset outside
// data, a negative length, or an empty copy yields -1.
func (s *Stream) FillBytes(data []byte, offset, length int) int {
	s.ensure()
	if offset < 0 || length < 0 || offset >= len(data) {
		return -1
	}
	n := len(data) - offset
	if length < n {
		n = length
	}
	if p := s.buf.Position(); p < n {
		n = p
	}
	if n == 0 {
		return -1
	}
	copy(data[offset:], s.buf.Bytes()[:n])
	s.Skip(n)
	return n
}
