// File: pool/fixed.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single size class. Any in-range request is served by a maxSize-capacity
// off-heap buffer with the limit set to the requested size: classification
// costs nothing, the price is internal fragmentation up to maxSize-minSize
// bytes per buffer.

package pool

import (
	"fmt"

	"github.com/momentics/hioload-buf/buffer"
	"github.com/momentics/hioload-buf/internal/concurrency"
)

type fixedStrategy struct {
	maxSize int
	minSize int
	stack   concurrency.Stack[*buffer.Buffer]
}

// NewFixedFactory returns a factory pooling off-heap buffers of exactly
// maxSize capacity. Requests below minSize or above maxSize fall back to
// uncached heap buffers.
func NewFixedFactory(maxSize, minSize int) *Factory {
	if minSize < 0 || maxSize < minSize {
		panic(fmt.Sprintf("pool: invalid fixed bounds [%d,%d]", minSize, maxSize))
	}
	return newFactory(&fixedStrategy{maxSize: maxSize, minSize: minSize}, DefaultAllocateSize)
}

func (s *fixedStrategy) onAllocate(size int) (*buffer.Buffer, bool, error) {
	if size > s.maxSize || size < s.minSize {
		return buffer.NewHeap(size), false, nil
	}
	if b, ok := s.stack.Pop(); ok {
		return b, true, nil
	}
	b, err := buffer.NewDirect(s.maxSize)
	if err != nil {
		return nil, false, err
	}
	return b, false, nil
}

func (s *fixedStrategy) onCache(b *buffer.Buffer) bool {
	if b.Capacity() != s.maxSize || !b.Direct() {
		return false
	}
	s.stack.Push(b)
	return true
}

func (s *fixedStrategy) onFill(budget int64) int64 {
	if s.maxSize == 0 {
		return 0
	}
	var memory int64
	for budget-memory >= int64(s.maxSize) {
		b, err := buffer.NewDirect(s.maxSize)
		if err != nil {
			return memory
		}
		s.stack.Push(b)
		memory += int64(s.maxSize)
	}
	return memory
}

func (s *fixedStrategy) onRelease() []*buffer.Buffer {
	return s.stack.PopAll()
}
