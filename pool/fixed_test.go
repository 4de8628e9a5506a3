// File: pool/fixed_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedAllocateInRange(t *testing.T) {
	f := NewFixedFactory(128, 16)

	b, err := f.Allocate(50)
	require.NoError(t, err)
	assert.Equal(t, 128, b.Capacity())
	assert.Equal(t, 50, b.Limit())
	assert.True(t, b.Direct())

	f.Free(b)
	f.Clear()
}

func TestFixedAllocateOutOfRange(t *testing.T) {
	f := NewFixedFactory(128, 16)

	small, err := f.Allocate(8)
	require.NoError(t, err)
	assert.Equal(t, 8, small.Capacity())
	assert.False(t, small.Direct())

	big, err := f.Allocate(129)
	require.NoError(t, err)
	assert.Equal(t, 129, big.Capacity())
	assert.False(t, big.Direct())

	// Neither is eligible for the cache.
	assert.False(t, f.Free(small))
	assert.False(t, f.Free(big))
	assert.Equal(t, int64(0), f.Size())
}

func TestFixedReusesLastFreed(t *testing.T) {
	f := NewFixedFactory(64, 16)

	a, err := f.Allocate(64)
	require.NoError(t, err)
	b, err := f.Allocate(64)
	require.NoError(t, err)

	require.True(t, f.Free(a))
	require.True(t, f.Free(b))

	// LIFO: the most recently freed buffer is handed out first.
	got, err := f.Allocate(20)
	require.NoError(t, err)
	assert.Same(t, b, got)

	got2, err := f.Allocate(20)
	require.NoError(t, err)
	assert.Same(t, a, got2)

	f.Free(got)
	f.Free(got2)
	f.Clear()
}

func TestFixedFill(t *testing.T) {
	f := NewFixedFactory(64, 16)
	f.SetCapacity(200)

	// 200 / 64 = 3 whole buffers.
	assert.Equal(t, int64(192), f.Fill())
	assert.Equal(t, int64(192), f.Size())
	assert.Equal(t, int64(8), f.Available())

	// A second fill has no budget left for another buffer.
	assert.Equal(t, int64(0), f.Fill())

	assert.Equal(t, int64(192), f.Clear())
}

func TestFixedInvalidBoundsPanics(t *testing.T) {
	assert.Panics(t, func() { NewFixedFactory(16, 32) })
	assert.Panics(t, func() { NewFixedFactory(16, -1) })
}
