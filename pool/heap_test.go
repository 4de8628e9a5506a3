// File: pool/heap_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapFactoryAllocates(t *testing.T) {
	f := NewHeapFactory()

	b, err := f.Allocate(100)
	require.NoError(t, err)
	assert.Equal(t, 100, b.Capacity())
	assert.Equal(t, 100, b.Limit())
	assert.False(t, b.Direct())
}

func TestHeapFactoryNeverCaches(t *testing.T) {
	f := NewHeapFactory()

	b, err := f.Allocate(100)
	require.NoError(t, err)
	assert.False(t, f.Free(b))
	assert.Equal(t, int64(0), f.Size())

	assert.Equal(t, int64(0), f.Fill())
	assert.Equal(t, int64(0), f.Clear())
	assert.Empty(t, f.Release())
}

func TestHeapFactoryZeroSize(t *testing.T) {
	f := NewHeapFactory()
	b, err := f.Allocate(0)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Capacity())
	assert.Equal(t, 0, b.Remaining())
}
