// File: pool/binary.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Power-of-two size classes in [2^minPower, 2^maxPower]. A request is rounded
// up to the next class, so internal fragmentation never exceeds 2x. Requests
// outside the range fall back to uncached heap buffers.

package pool

import (
	"fmt"

	"github.com/momentics/hioload-buf/buffer"
	"github.com/momentics/hioload-buf/internal/concurrency"
)

type binaryStrategy struct {
	minPower int
	maxPower int
	minSize  int
	maxSize  int
	classes  []*concurrency.Stack[*buffer.Buffer]
}

// NewBinaryFactory returns a factory pooling off-heap power-of-two buffers
// with sizes 2^minPower through 2^maxPower. The default allocation size is
// the class halfway between the bounds.
func NewBinaryFactory(minPower, maxPower int) *Factory {
	if minPower < 1 || maxPower < minPower || maxPower > 31 {
		panic(fmt.Sprintf("pool: invalid binary powers [%d,%d]", minPower, maxPower))
	}
	s := &binaryStrategy{
		minPower: minPower,
		maxPower: maxPower,
		minSize:  1 << minPower,
		maxSize:  1 << maxPower,
		classes:  make([]*concurrency.Stack[*buffer.Buffer], maxPower-minPower+1),
	}
	for i := range s.classes {
		s.classes[i] = &concurrency.Stack[*buffer.Buffer]{}
	}
	return newFactory(s, 1<<((minPower+maxPower)>>1))
}

// log2 returns ceil(log2(n)), with n <= 2 mapping to 1. A size exactly on a
// class boundary resolves to that class.
func log2(n int) int {
	if n <= 2 {
		return 1
	}
	power := 2
	n--
	for n > 3 {
		n >>= 1
		power++
	}
	return power
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func (s *binaryStrategy) onAllocate(size int) (*buffer.Buffer, bool, error) {
	if size < s.minSize || size > s.maxSize {
		return buffer.NewHeap(size), false, nil
	}
	power := log2(size)
	if b, ok := s.classes[power-s.minPower].Pop(); ok {
		return b, true, nil
	}
	b, err := buffer.NewDirect(1 << power)
	if err != nil {
		return nil, false, err
	}
	return b, false, nil
}

func (s *binaryStrategy) onCache(b *buffer.Buffer) bool {
	capacity := b.Capacity()
	if !b.Direct() || !isPowerOfTwo(capacity) {
		return false
	}
	power := log2(capacity)
	if power < s.minPower || power > s.maxPower {
		return false
	}
	s.classes[power-s.minPower].Push(b)
	return true
}

// onFill adds whole generations: one buffer per class per generation, with
// per-class counts inversely proportional to class size so every class ends
// up holding the same amount of memory.
func (s *binaryStrategy) onFill(budget int64) int64 {
	classCount := int64(s.maxPower - s.minPower + 1)
	generationSize := int64(s.maxSize) * classCount
	generations := budget / generationSize
	if generations == 0 {
		return 0
	}

	var memory int64
	for p := s.minPower; p <= s.maxPower; p++ {
		count := generations << (s.maxPower - p)
		for c := int64(0); c < count; c++ {
			b, err := buffer.NewDirect(1 << p)
			if err != nil {
				return memory
			}
			s.classes[p-s.minPower].Push(b)
			memory += int64(b.Capacity())
		}
	}
	return memory
}

func (s *binaryStrategy) onRelease() []*buffer.Buffer {
	var dump []*buffer.Buffer
	for _, class := range s.classes {
		dump = append(dump, class.PopAll()...)
	}
	return dump
}
