// File: buffer/buffer_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHeap(t *testing.T) {
	b := NewHeap(16)
	assert.Equal(t, 16, b.Capacity())
	assert.Equal(t, 16, b.Limit())
	assert.Equal(t, 0, b.Position())
	assert.Equal(t, 16, b.Remaining())
	assert.False(t, b.Direct())
}

func TestNewHeapNegativePanics(t *testing.T) {
	assert.Panics(t, func() { NewHeap(-1) })
}

func TestNewDirect(t *testing.T) {
	b, err := NewDirect(64)
	require.NoError(t, err)
	assert.True(t, b.Direct())
	assert.Equal(t, 64, b.Capacity())
	assert.Equal(t, 64, b.Limit())

	b.Put([]byte{1, 2, 3})
	assert.Equal(t, 3, b.Position())
	assert.Equal(t, []byte{1, 2, 3}, b.Bytes()[:3])

	b.Destroy()
	assert.Equal(t, 0, b.Capacity())
}

func TestNewDirectZero(t *testing.T) {
	b, err := NewDirect(0)
	require.NoError(t, err)
	assert.True(t, b.Direct())
	assert.Equal(t, 0, b.Capacity())
	b.Destroy()
}

func TestSetLimitClampsPosition(t *testing.T) {
	b := NewHeap(10)
	b.SetPosition(8)
	b.SetLimit(4)
	assert.Equal(t, 4, b.Limit())
	assert.Equal(t, 4, b.Position())

	assert.Panics(t, func() { b.SetLimit(11) })
	assert.Panics(t, func() { b.SetLimit(-1) })
}

func TestSetPositionBounds(t *testing.T) {
	b := NewHeap(10)
	b.SetLimit(6)
	b.SetPosition(6)
	assert.Panics(t, func() { b.SetPosition(7) })
	assert.Panics(t, func() { b.SetPosition(-1) })
}

func TestPutTake(t *testing.T) {
	b := NewHeap(8)
	b.Put([]byte("abcd"))
	assert.Equal(t, 4, b.Position())
	assert.Equal(t, 4, b.Remaining())

	assert.Panics(t, func() { b.Put(make([]byte, 5)) })

	b.SetPosition(0)
	out := make([]byte, 3)
	n := b.Take(out)
	assert.Equal(t, 3, n)
	assert.Equal(t, "abc", string(out))
	assert.Equal(t, 3, b.Position())
}

func TestClear(t *testing.T) {
	b := NewHeap(8)
	b.SetLimit(4)
	b.Put([]byte{9, 9})
	b.Clear()
	assert.Equal(t, 0, b.Position())
	assert.Equal(t, 8, b.Limit())
	// Contents survive a clear.
	assert.Equal(t, byte(9), b.Bytes()[0])
}

func TestWindow(t *testing.T) {
	b := Wrap([]byte{1, 2, 3, 4, 5})
	b.SetPosition(1)
	b.SetLimit(4)
	assert.Equal(t, []byte{2, 3, 4}, b.Window())
}

func TestEqual(t *testing.T) {
	a := FromString("hello")
	b := FromString("hello")
	c := FromString("help!")

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))

	// Equality compares windows, not full contents.
	b.SetLimit(4)
	assert.False(t, Equal(a, b))
	a.SetLimit(4)
	assert.True(t, Equal(a, b))
}

func TestEqualRange(t *testing.T) {
	a := FromString("xxabcxx")
	b := FromString("abc")

	assert.True(t, EqualRange(a, 2, b, 0, 3))
	assert.False(t, EqualRange(a, 0, b, 0, 3))

	// Out-of-bounds ranges are unequal, not a panic.
	assert.False(t, EqualRange(a, 6, b, 0, 3))
	assert.False(t, EqualRange(a, 0, b, 2, 3))
}

func TestTransfer(t *testing.T) {
	src := FromString("abcdef")
	dst := NewHeap(4)

	n := Transfer(src, dst)
	assert.Equal(t, 4, n)
	assert.Equal(t, 4, src.Position())
	assert.Equal(t, 4, dst.Position())
	assert.Equal(t, "abcd", string(dst.Bytes()))

	// Source exhausts on the second move.
	dst2 := NewHeap(4)
	assert.Equal(t, 2, Transfer(src, dst2))
	assert.Equal(t, "ef", string(dst2.Bytes()[:2]))
}

func TestString(t *testing.T) {
	b := FromString("stream")
	b.SetPosition(2)
	assert.Equal(t, "ream", b.String())
}
