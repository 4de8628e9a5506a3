// File: pool/binary_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-buf/buffer"
)

func TestLog2(t *testing.T) {
	cases := map[int]int{
		1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 7: 3, 8: 3,
		9: 4, 16: 4, 17: 5, 31: 5, 32: 5, 33: 6, 1024: 10,
	}
	for n, want := range cases {
		assert.Equal(t, want, log2(n), "log2(%d)", n)
	}
}

func TestBinaryAllocateRounding(t *testing.T) {
	f := NewBinaryFactory(3, 5) // classes 8, 16, 32

	cases := []struct {
		request  int
		capacity int
		direct   bool
	}{
		{6, 6, false},   // below range, exact heap
		{8, 8, true},    // on a class boundary
		{9, 16, true},   // rounded up
		{24, 32, true},  // rounded up to the top class
		{32, 32, true},  // top boundary
		{33, 33, false}, // above range, exact heap
	}
	for _, tc := range cases {
		b, err := f.Allocate(tc.request)
		require.NoError(t, err)
		assert.Equal(t, tc.capacity, b.Capacity(), "request %d", tc.request)
		assert.Equal(t, tc.request, b.Limit(), "request %d", tc.request)
		assert.Equal(t, tc.direct, b.Direct(), "request %d", tc.request)
		f.Free(b)
	}
	f.Clear()
}

func TestBinaryDefaultSize(t *testing.T) {
	f := NewBinaryFactory(3, 5)
	assert.Equal(t, 16, f.DefaultSize()) // class halfway between 8 and 32
}

func TestBinaryCacheEligibility(t *testing.T) {
	f := NewBinaryFactory(3, 5)

	// Heap buffers are never cached, whatever their size.
	heap, err := f.Allocate(6)
	require.NoError(t, err)
	assert.False(t, f.Free(heap))

	direct, err := f.Allocate(16)
	require.NoError(t, err)
	assert.True(t, f.Free(direct))
	assert.Equal(t, int64(16), f.Size())

	f.Clear()
}

func TestBinaryBudgetScenario(t *testing.T) {
	f := NewBinaryFactory(3, 5)
	f.SetCapacity(92)

	alloc := func(size int) *buffer.Buffer {
		b, err := f.Allocate(size)
		require.NoError(t, err)
		return b
	}

	b8 := alloc(8)
	b16a := alloc(16)
	b32 := alloc(32)
	b16b := alloc(16)
	b16c := alloc(16)
	b16d := alloc(16)

	require.True(t, f.Free(b8))
	require.True(t, f.Free(b16a))
	require.True(t, f.Free(b32))
	require.True(t, f.Free(b16b))
	require.True(t, f.Free(b16c))
	assert.Equal(t, int64(88), f.Size())

	// 88 + 16 exceeds the 92-byte budget.
	assert.False(t, f.Free(b16d))
	assert.Equal(t, int64(88), f.Size())

	// A 14-byte request pops the hottest 16-byte buffer.
	got := alloc(14)
	assert.Same(t, b16c, got)
	assert.Equal(t, 16, got.Capacity())
	assert.Equal(t, 14, got.Limit())
	assert.Equal(t, int64(72), f.Size())

	// With room reclaimed, a 16-byte free succeeds again.
	require.True(t, f.Free(got))
	assert.Equal(t, int64(88), f.Size())

	f.Clear()
}

func TestBinaryFillDistribution(t *testing.T) {
	f := NewBinaryFactory(3, 5)
	// Two generations: 8x8 + 4x16 + 2x32 per generation = 96 bytes each.
	f.SetCapacity(192)

	assert.Equal(t, int64(192), f.Fill())
	assert.Equal(t, int64(192), f.Size())

	// Every class holds the same number of bytes: 8 buffers of 8, 4 of 16,
	// 2 of 32.
	counts := map[int]int{}
	for _, b := range f.Release() {
		counts[b.Capacity()]++
		b.Destroy()
	}
	assert.Equal(t, map[int]int{8: 8, 16: 4, 32: 2}, counts)
}

func TestBinaryFillBelowGeneration(t *testing.T) {
	f := NewBinaryFactory(3, 5)
	f.SetCapacity(95) // less than one 96-byte generation
	assert.Equal(t, int64(0), f.Fill())
}

func TestBinaryInvalidPowersPanics(t *testing.T) {
	assert.Panics(t, func() { NewBinaryFactory(0, 5) })
	assert.Panics(t, func() { NewBinaryFactory(5, 3) })
	assert.Panics(t, func() { NewBinaryFactory(1, 32) })
}
