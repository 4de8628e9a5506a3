// File: codec/writer.go
// Binary encoder writing straight into a stream's storage.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/momentics/hioload-buf/stream"
)

// MaxSequence is the largest element count a framed sequence can carry.
const MaxSequence = 1<<16 - 1

// Writer encodes primitives and framed sequences into a stream. The first
// expansion failure sticks: every later put becomes a no-op and Err reports
// the cause, so a burst of puts needs a single error check at the end.
type Writer struct {
	s     *stream.Stream
	order binary.ByteOrder
	err   error
}

// NewWriter returns a big-endian writer over s.
func NewWriter(s *stream.Stream) *Writer {
	return NewWriterOrder(s, binary.BigEndian)
}

// NewWriterOrder returns a writer with an explicit byte order.
func NewWriterOrder(s *stream.Stream, order binary.ByteOrder) *Writer {
	return &Writer{s: s, order: order}
}

// Err returns the first expansion failure, or nil.
func (w *Writer) Err() error { return w.err }

// Stream returns the underlying stream.
func (w *Writer) Stream() *stream.Stream { return w.s }

// reserve grabs n bytes of stream storage, or nil once the writer is dead.
func (w *Writer) reserve(n int) []byte {
	if w.err != nil {
		return nil
	}
	p, err := w.s.Writer(n)
	if err != nil {
		w.err = err
		return nil
	}
	return p
}

func (w *Writer) PutBool(v bool) {
	if p := w.reserve(1); p != nil {
		if v {
			p[0] = 1
		} else {
			p[0] = 0
		}
	}
}

func (w *Writer) PutUint8(v uint8) {
	if p := w.reserve(1); p != nil {
		p[0] = v
	}
}

func (w *Writer) PutInt8(v int8) { w.PutUint8(uint8(v)) }

func (w *Writer) PutUint16(v uint16) {
	if p := w.reserve(2); p != nil {
		w.order.PutUint16(p, v)
	}
}

func (w *Writer) PutInt16(v int16) { w.PutUint16(uint16(v)) }

func (w *Writer) PutUint32(v uint32) {
	if p := w.reserve(4); p != nil {
		w.order.PutUint32(p, v)
	}
}

func (w *Writer) PutInt32(v int32) { w.PutUint32(uint32(v)) }

func (w *Writer) PutUint64(v uint64) {
	if p := w.reserve(8); p != nil {
		w.order.PutUint64(p, v)
	}
}

func (w *Writer) PutInt64(v int64) { w.PutUint64(uint64(v)) }

// PutFloat32 writes the IEEE 754 bit pattern, preserving NaN payloads and
// signed zeros.
func (w *Writer) PutFloat32(v float32) { w.PutUint32(math.Float32bits(v)) }

func (w *Writer) PutFloat64(v float64) { w.PutUint64(math.Float64bits(v)) }

// frame writes the presence flag and element count for a sequence of n
// elements and reports whether elements should follow. n < 0 means absent.
func (w *Writer) frame(n int) bool {
	if n < 0 {
		w.PutBool(false)
		return false
	}
	if n > MaxSequence {
		panic(fmt.Sprintf("codec: sequence of %d elements exceeds %d", n, MaxSequence))
	}
	w.PutBool(true)
	w.PutUint16(uint16(n))
	return w.err == nil && n > 0
}

func seqLen[T any](v []T) int {
	if v == nil {
		return -1
	}
	return len(v)
}

func (w *Writer) PutBools(v []bool) {
	if w.frame(seqLen(v)) {
		p := w.reserve(len(v))
		for i, b := range v {
			if p == nil {
				return
			}
			if b {
				p[i] = 1
			} else {
				p[i] = 0
			}
		}
	}
}

// PutBytes writes a framed byte sequence; nil round-trips as nil.
func (w *Writer) PutBytes(v []byte) {
	if w.frame(seqLen(v)) {
		if p := w.reserve(len(v)); p != nil {
			copy(p, v)
		}
	}
}

// PutRaw appends bytes with no framing at all.
func (w *Writer) PutRaw(v []byte) {
	if len(v) == 0 {
		return
	}
	if p := w.reserve(len(v)); p != nil {
		copy(p, v)
	}
}

func (w *Writer) PutInt16s(v []int16) {
	if w.frame(seqLen(v)) {
		if p := w.reserve(2 * len(v)); p != nil {
			for i, x := range v {
				w.order.PutUint16(p[2*i:], uint16(x))
			}
		}
	}
}

func (w *Writer) PutInt32s(v []int32) {
	if w.frame(seqLen(v)) {
		if p := w.reserve(4 * len(v)); p != nil {
			for i, x := range v {
				w.order.PutUint32(p[4*i:], uint32(x))
			}
		}
	}
}

func (w *Writer) PutInt64s(v []int64) {
	if w.frame(seqLen(v)) {
		if p := w.reserve(8 * len(v)); p != nil {
			for i, x := range v {
				w.order.PutUint64(p[8*i:], uint64(x))
			}
		}
	}
}

func (w *Writer) PutFloat32s(v []float32) {
	if w.frame(seqLen(v)) {
		if p := w.reserve(4 * len(v)); p != nil {
			for i, x := range v {
				w.order.PutUint32(p[4*i:], math.Float32bits(x))
			}
		}
	}
}

func (w *Writer) PutFloat64s(v []float64) {
	if w.frame(seqLen(v)) {
		if p := w.reserve(8 * len(v)); p != nil {
			for i, x := range v {
				w.order.PutUint64(p[8*i:], math.Float64bits(x))
			}
		}
	}
}

// PutString writes a framed UTF-8 string. Strings are always present on the
// wire; an absent string frame decodes as "".
func (w *Writer) PutString(v string) {
	if len(v) > MaxSequence {
		panic(fmt.Sprintf("codec: string of %d bytes exceeds %d", len(v), MaxSequence))
	}
	w.PutBool(true)
	w.PutUint16(uint16(len(v)))
	if len(v) > 0 {
		if p := w.reserve(len(v)); p != nil {
			copy(p, v)
		}
	}
}

// PutWideString writes a string as framed UTF-16 code units for peers that
// speak two-byte characters.
func (w *Writer) PutWideString(v string) {
	units := utf16.Encode([]rune(v))
	if len(units) > MaxSequence {
		panic(fmt.Sprintf("codec: string of %d code units exceeds %d", len(units), MaxSequence))
	}
	w.PutBool(true)
	w.PutUint16(uint16(len(units)))
	if len(units) > 0 {
		if p := w.reserve(2 * len(units)); p != nil {
			for i, u := range units {
				w.order.PutUint16(p[2*i:], u)
			}
		}
	}
}

// Write implements io.Writer, appending unframed bytes. It reports the
// writer's sticky error, so encoders layered on top stop at the first
// expansion failure.
func (w *Writer) Write(p []byte) (int, error) {
	w.PutRaw(p)
	if w.err != nil {
		return 0, w.err
	}
	return len(p), nil
}
