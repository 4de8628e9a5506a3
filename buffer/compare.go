// File: buffer/compare.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Utilities for comparing and moving data between buffers without disturbing
// their cursors.

package buffer

import "bytes"

// Equal reports whether the live windows [position, limit) of a and b hold
// identical bytes. Neither cursor is moved.
func Equal(a, b *Buffer) bool {
	return bytes.Equal(a.Window(), b.Window())
}

// EqualRange compares length bytes of a starting at offsetA with length bytes
// of b starting at offsetB, ignoring both cursors. Out-of-bounds ranges
// compare unequal.
func EqualRange(a *Buffer, offsetA int, b *Buffer, offsetB, length int) bool {
	if offsetA < 0 || offsetB < 0 || length < 0 {
		return false
	}
	if offsetA+length > a.Capacity() || offsetB+length > b.Capacity() {
		return false
	}
	return bytes.Equal(a.data[offsetA:offsetA+length], b.data[offsetB:offsetB+length])
}

// Transfer moves as many bytes as fit from the source window into the
// destination window, advancing both cursors, and returns the count moved.
func Transfer(src, dst *Buffer) int {
	n := copy(dst.data[dst.pos:dst.limit], src.data[src.pos:src.limit])
	src.pos += n
	dst.pos += n
	return n
}

// FromString wraps the bytes of s in a heap buffer sized exactly to s.
func FromString(s string) *Buffer {
	return Wrap([]byte(s))
}

// String renders the live window as text.
func (b *Buffer) String() string {
	return string(b.Window())
}
