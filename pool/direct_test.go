// File: pool/direct_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectFactoryAllocates(t *testing.T) {
	f := NewDirectFactory()

	b, err := f.Allocate(256)
	require.NoError(t, err)
	assert.Equal(t, 256, b.Capacity())
	assert.Equal(t, 256, b.Limit())
	assert.True(t, b.Direct())

	f.Free(b)
}

func TestDirectFactoryNeverCaches(t *testing.T) {
	f := NewDirectFactory()

	b, err := f.Allocate(256)
	require.NoError(t, err)
	assert.False(t, f.Free(b))
	assert.Equal(t, int64(0), f.Size())
	assert.Equal(t, int64(0), f.Fill())
}
