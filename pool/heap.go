// File: pool/heap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "github.com/momentics/hioload-buf/buffer"

// heapStrategy allocates plain heap buffers and never caches. Useful as a
// baseline and for workloads whose buffers live long enough that pooling
// buys nothing.
type heapStrategy struct{}

// NewHeapFactory returns a factory producing heap buffers with no caching.
func NewHeapFactory() *Factory {
	return newFactory(heapStrategy{}, DefaultAllocateSize)
}

func (heapStrategy) onAllocate(size int) (*buffer.Buffer, bool, error) {
	return buffer.NewHeap(size), false, nil
}

func (heapStrategy) onCache(*buffer.Buffer) bool { return false }

func (heapStrategy) onFill(int64) int64 { return 0 }

func (heapStrategy) onRelease() []*buffer.Buffer { return nil }
