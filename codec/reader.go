// File: codec/reader.go
// Binary decoder over a frozen snapshot of a stream's pending bytes.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf16"

	"github.com/momentics/hioload-buf/stream"
)

// Reader decodes values from the pending bytes of a stream without
// consuming them. The first read past the end of the snapshot invalidates
// the reader permanently; every later call returns the zero value, so a
// partially received message can be decoded speculatively and retried once
// more bytes arrive. Consumption reaches the stream only through Sync.
type Reader struct {
	s     *stream.Stream
	data  []byte
	off   int
	order binary.ByteOrder
	valid bool
}

// NewReader returns a big-endian reader over the pending bytes of s.
func NewReader(s *stream.Stream) *Reader {
	return NewReaderOrder(s, binary.BigEndian)
}

// NewReaderOrder returns a reader with an explicit byte order.
func NewReaderOrder(s *stream.Stream, order binary.ByteOrder) *Reader {
	return &Reader{s: s, data: s.Pending(), order: order, valid: true}
}

// NewReaderBytes returns a detached reader over raw bytes; Sync is a no-op.
func NewReaderBytes(data []byte) *Reader {
	return &Reader{data: data, order: binary.BigEndian, valid: true}
}

// Valid reports whether every read so far stayed inside the snapshot.
func (r *Reader) Valid() bool { return r.valid }

// Offset is the number of bytes consumed so far. It implements stream.View.
func (r *Reader) Offset() int { return r.off }

// Remaining is the number of unread bytes left in the snapshot.
func (r *Reader) Remaining() int { return len(r.data) - r.off }

// Has reports whether n more bytes can be read without invalidating.
func (r *Reader) Has(n int) bool { return r.valid && r.off+n <= len(r.data) }

// Per-type probes for readers peeking at a partially received message.
func (r *Reader) HasBool() bool    { return r.Has(1) }
func (r *Reader) HasUint8() bool   { return r.Has(1) }
func (r *Reader) HasUint16() bool  { return r.Has(2) }
func (r *Reader) HasUint32() bool  { return r.Has(4) }
func (r *Reader) HasUint64() bool  { return r.Has(8) }
func (r *Reader) HasFloat32() bool { return r.Has(4) }
func (r *Reader) HasFloat64() bool { return r.Has(8) }

func (r *Reader) invalidate() { r.valid = false }

// need advances past n bytes and returns their start offset, or -1 once the
// reader is (or becomes) invalid.
func (r *Reader) need(n int) int {
	if n < 0 {
		panic(fmt.Sprintf("codec: negative read %d", n))
	}
	if !r.valid {
		return -1
	}
	if r.off+n > len(r.data) {
		r.valid = false
		return -1
	}
	at := r.off
	r.off += n
	return at
}

// Skip discards up to n unread bytes.
func (r *Reader) Skip(n int) {
	if !r.valid || n <= 0 {
		return
	}
	if rem := r.Remaining(); n > rem {
		n = rem
	}
	r.off += n
}

// Sync commits everything read so far back to the stream and re-snapshots,
// resetting the reader to the new front. Invalid readers commit nothing.
func (r *Reader) Sync() {
	if r.s == nil || !r.valid {
		return
	}
	r.s.Skip(r.off)
	r.data = r.s.Pending()
	r.off = 0
}

func (r *Reader) Bool() bool {
	at := r.need(1)
	return at >= 0 && r.data[at] != 0
}

func (r *Reader) Uint8() uint8 {
	at := r.need(1)
	if at < 0 {
		return 0
	}
	return r.data[at]
}

func (r *Reader) Int8() int8 { return int8(r.Uint8()) }

func (r *Reader) Uint16() uint16 {
	at := r.need(2)
	if at < 0 {
		return 0
	}
	return r.order.Uint16(r.data[at:])
}

func (r *Reader) Int16() int16 { return int16(r.Uint16()) }

func (r *Reader) Uint32() uint32 {
	at := r.need(4)
	if at < 0 {
		return 0
	}
	return r.order.Uint32(r.data[at:])
}

func (r *Reader) Int32() int32 { return int32(r.Uint32()) }

func (r *Reader) Uint64() uint64 {
	at := r.need(8)
	if at < 0 {
		return 0
	}
	return r.order.Uint64(r.data[at:])
}

func (r *Reader) Int64() int64 { return int64(r.Uint64()) }

func (r *Reader) Float32() float32 { return math.Float32frombits(r.Uint32()) }

func (r *Reader) Float64() float64 { return math.Float64frombits(r.Uint64()) }

// unframe reads a sequence header. It returns the element count, or -1 for
// an absent sequence or an invalid reader.
func (r *Reader) unframe() int {
	if !r.Bool() {
		return -1
	}
	n := int(r.Uint16())
	if !r.valid {
		return -1
	}
	return n
}

func (r *Reader) Bools() []bool {
	n := r.unframe()
	if n < 0 {
		return nil
	}
	at := r.need(n)
	if at < 0 {
		return nil
	}
	v := make([]bool, n)
	for i := range v {
		v[i] = r.data[at+i] != 0
	}
	return v
}

// Bytes reads a framed byte sequence into fresh storage; an absent frame
// yields nil.
func (r *Reader) Bytes() []byte {
	n := r.unframe()
	if n < 0 {
		return nil
	}
	at := r.need(n)
	if at < 0 {
		return nil
	}
	v := make([]byte, n)
	copy(v, r.data[at:])
	return v
}

// Raw copies n unframed bytes.
func (r *Reader) Raw(n int) []byte {
	at := r.need(n)
	if at < 0 {
		return nil
	}
	v := make([]byte, n)
	copy(v, r.data[at:])
	return v
}

func (r *Reader) Int16s() []int16 {
	n := r.unframe()
	if n < 0 {
		return nil
	}
	at := r.need(2 * n)
	if at < 0 {
		return nil
	}
	v := make([]int16, n)
	for i := range v {
		v[i] = int16(r.order.Uint16(r.data[at+2*i:]))
	}
	return v
}

func (r *Reader) Int32s() []int32 {
	n := r.unframe()
	if n < 0 {
		return nil
	}
	at := r.need(4 * n)
	if at < 0 {
		return nil
	}
	v := make([]int32, n)
	for i := range v {
		v[i] = int32(r.order.Uint32(r.data[at+4*i:]))
	}
	return v
}

func (r *Reader) Int64s() []int64 {
	n := r.unframe()
	if n < 0 {
		return nil
	}
	at := r.need(8 * n)
	if at < 0 {
		return nil
	}
	v := make([]int64, n)
	for i := range v {
		v[i] = int64(r.order.Uint64(r.data[at+8*i:]))
	}
	return v
}

func (r *Reader) Float32s() []float32 {
	n := r.unframe()
	if n < 0 {
		return nil
	}
	at := r.need(4 * n)
	if at < 0 {
		return nil
	}
	v := make([]float32, n)
	for i := range v {
		v[i] = math.Float32frombits(r.order.Uint32(r.data[at+4*i:]))
	}
	return v
}

func (r *Reader) Float64s() []float64 {
	n := r.unframe()
	if n < 0 {
		return nil
	}
	at := r.need(8 * n)
	if at < 0 {
		return nil
	}
	v := make([]float64, n)
	for i := range v {
		v[i] = math.Float64frombits(r.order.Uint64(r.data[at+8*i:]))
	}
	return v
}

// String reads a framed UTF-8 string; an absent frame yields "".
func (r *Reader) String() string {
	n := r.unframe()
	if n <= 0 {
		return ""
	}
	at := r.need(n)
	if at < 0 {
		return ""
	}
	return string(r.data[at : at+n])
}

// WideString reads a framed UTF-16 string.
func (r *Reader) WideString() string {
	n := r.unframe()
	if n <= 0 {
		return ""
	}
	at := r.need(2 * n)
	if at < 0 {
		return ""
	}
	units := make([]uint16, n)
	for i := range units {
		units[i] = r.order.Uint16(r.data[at+2*i:])
	}
	return string(utf16.Decode(units))
}

// Read implements io.Reader over the unread remainder of the snapshot.
func (r *Reader) Read(p []byte) (int, error) {
	if !r.valid {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.off:])
	r.off += n
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}
