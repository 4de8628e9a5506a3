// File: pool/mapped_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAllocateExactSize(t *testing.T) {
	f := NewMapFactory(1024, 16)

	b, err := f.Allocate(100)
	require.NoError(t, err)
	assert.Equal(t, 100, b.Capacity())
	assert.Equal(t, 100, b.Limit())
	assert.True(t, b.Direct())

	f.Free(b)
	f.Clear()
}

func TestMapAllocateOutOfRange(t *testing.T) {
	f := NewMapFactory(1024, 16)

	small, err := f.Allocate(8)
	require.NoError(t, err)
	assert.False(t, small.Direct())

	big, err := f.Allocate(2048)
	require.NoError(t, err)
	assert.False(t, big.Direct())

	assert.False(t, f.Free(small))
	assert.False(t, f.Free(big))
	assert.Equal(t, int64(0), f.Size())
}

func TestMapReusesExactClass(t *testing.T) {
	f := NewMapFactory(1024, 16)

	a, err := f.Allocate(100)
	require.NoError(t, err)
	require.True(t, f.Free(a))

	// Same size hits the class; a different in-range size does not.
	got, err := f.Allocate(100)
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.Equal(t, int64(0), f.Size())

	other, err := f.Allocate(101)
	require.NoError(t, err)
	assert.NotSame(t, a, other)
	assert.Equal(t, 101, other.Capacity())

	f.Free(got)
	f.Free(other)
	f.Clear()
}

func TestMapFillEmptyFactory(t *testing.T) {
	f := NewMapFactory(1024, 16)
	// No class has been revealed yet, so there is nothing to warm.
	assert.Equal(t, int64(0), f.Fill())
}

func TestMapFillRevealedClasses(t *testing.T) {
	f := NewMapFactory(1024, 16)
	f.SetCapacity(240)

	a, err := f.Allocate(16)
	require.NoError(t, err)
	b, err := f.Allocate(64)
	require.NoError(t, err)
	require.True(t, f.Free(a))
	require.True(t, f.Free(b))
	require.Equal(t, int64(80), f.Size())

	// 160 bytes of budget, rotated smallest class first:
	// 16, 64, 16, 64 fit; the next 16 would overflow.
	assert.Equal(t, int64(160), f.Fill())
	assert.Equal(t, int64(240), f.Size())
	assert.Equal(t, int64(0), f.Available())

	counts := map[int]int{}
	for _, buf := range f.Release() {
		counts[buf.Capacity()]++
		buf.Destroy()
	}
	assert.Equal(t, map[int]int{16: 3, 64: 3}, counts)
}

func TestMapReleaseKeepsClasses(t *testing.T) {
	f := NewMapFactory(1024, 16)
	f.SetCapacity(300)

	a, err := f.Allocate(100)
	require.NoError(t, err)
	require.True(t, f.Free(a))

	released := f.Release()
	require.Len(t, released, 1)
	assert.Equal(t, int64(0), f.Size())
	released[0].Destroy()

	// The class survives its stack being drained: fill still knows the
	// workload's sizes, and a later free lands in the same bucket.
	assert.Equal(t, int64(300), f.Fill())
	assert.Equal(t, int64(300), f.Clear())
}

func TestMapReleaseFreeRace(t *testing.T) {
	f := NewMapFactory(1024, 16)

	stop := make(chan struct{})
	releaserDone := make(chan struct{})
	go func() {
		defer close(releaserDone)
		for {
			select {
			case <-stop:
				return
			default:
			}
			for _, b := range f.Release() {
				b.Destroy()
			}
		}
	}()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				b, err := f.Allocate(100)
				if err != nil {
					t.Error(err)
					return
				}
				f.Free(b)
			}
		}()
	}
	wg.Wait()
	close(stop)
	<-releaserDone

	// Everything still cached must be reachable: after a final clear the
	// accounting returns to zero, nothing is stranded.
	f.Clear()
	assert.Equal(t, int64(0), f.Size())
}

func TestMapTransferBetweenFactories(t *testing.T) {
	src := NewMapFactory(1024, 16)
	dst := NewMapFactory(128, 16)

	sizes := []int{32, 64, 512}
	for _, size := range sizes {
		b, err := src.Allocate(size)
		require.NoError(t, err)
		require.True(t, src.Free(b))
	}

	// 512 exceeds dst's range and is denied; 32 and 64 are absorbed.
	denied := dst.Transfer(src.Release())
	require.Len(t, denied, 1)
	assert.Equal(t, 512, denied[0].Capacity())
	assert.Equal(t, int64(96), dst.Size())

	denied[0].Destroy()
	dst.Clear()
}

func TestMapInvalidBoundsPanics(t *testing.T) {
	assert.Panics(t, func() { NewMapFactory(16, 32) })
	assert.Panics(t, func() { NewMapFactory(16, -1) })
}
