// File: pool/mapped.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Exact-size classes keyed by capacity. No fragmentation: a request in range
// is served by a buffer of exactly that size. The trade-off is deliberate and
// must be understood by deployments: every distinct size the workload frees
// creates one more class, so an adversarial or highly varied size
// distribution grows the class map without bound. Works best when the
// application requests a known subset of sizes.

package pool

import (
	"fmt"
	"sort"
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-buf/buffer"
	"github.com/momentics/hioload-buf/internal/concurrency"
)

type mapStrategy struct {
	maxSize int
	minSize int

	// mu guards first-time class creation and the fill/release snapshots
	// only. Push and pop on an existing class are lock-free.
	mu      sync.RWMutex
	classes map[int]*concurrency.Stack[*buffer.Buffer]
}

// NewMapFactory returns a factory pooling off-heap buffers of exact sizes in
// [minSize, maxSize]. Requests outside the range fall back to uncached heap
// buffers.
func NewMapFactory(maxSize, minSize int) *Factory {
	if minSize < 0 || maxSize < minSize {
		panic(fmt.Sprintf("pool: invalid map bounds [%d,%d]", minSize, maxSize))
	}
	s := &mapStrategy{
		maxSize: maxSize,
		minSize: minSize,
		classes: make(map[int]*concurrency.Stack[*buffer.Buffer]),
	}
	return newFactory(s, DefaultAllocateSize)
}

func (s *mapStrategy) class(size int) *concurrency.Stack[*buffer.Buffer] {
	s.mu.RLock()
	st := s.classes[size]
	s.mu.RUnlock()
	return st
}

func (s *mapStrategy) onAllocate(size int) (*buffer.Buffer, bool, error) {
	if size < s.minSize || size > s.maxSize {
		return buffer.NewHeap(size), false, nil
	}
	if st := s.class(size); st != nil {
		if b, ok := st.Pop(); ok {
			return b, true, nil
		}
	}
	b, err := buffer.NewDirect(size)
	if err != nil {
		return nil, false, err
	}
	return b, false, nil
}

func (s *mapStrategy) onCache(b *buffer.Buffer) bool {
	size := b.Capacity()
	if !b.Direct() || size < s.minSize || size > s.maxSize {
		return false
	}
	st := s.class(size)
	if st == nil {
		s.mu.Lock()
		if st = s.classes[size]; st == nil {
			st = &concurrency.Stack[*buffer.Buffer]{}
			s.classes[size] = st
		}
		s.mu.Unlock()
	}
	st.Push(b)
	return true
}

// onFill pre-warms only the classes the workload has already revealed: the
// class list is snapshotted, ordered smallest first, and rotated through a
// FIFO adding one buffer per class per round until the next buffer would
// exceed the budget. A factory that has never cached anything adds nothing.
func (s *mapStrategy) onFill(budget int64) int64 {
	type classRef struct {
		size  int
		stack *concurrency.Stack[*buffer.Buffer]
	}

	s.mu.RLock()
	refs := make([]classRef, 0, len(s.classes))
	for size, st := range s.classes {
		refs = append(refs, classRef{size: size, stack: st})
	}
	s.mu.RUnlock()

	if len(refs) == 0 {
		return 0
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].size < refs[j].size })

	round := queue.New()
	for _, ref := range refs {
		round.Add(ref)
	}

	var memory int64
	for round.Length() > 0 {
		ref := round.Remove().(classRef)
		if ref.size == 0 || int64(ref.size) > budget-memory {
			continue // class no longer affordable, drop it from rotation
		}
		b, err := buffer.NewDirect(ref.size)
		if err != nil {
			return memory
		}
		ref.stack.Push(b)
		memory += int64(ref.size)
		round.Add(ref)
	}
	return memory
}

// onRelease drains every class stack but keeps the class entries in the map.
// Removing an entry would orphan its stack: a concurrent onCache holding the
// old pointer could push onto it after the drain, stranding a buffer that
// usedMemory still counts.
func (s *mapStrategy) onRelease() []*buffer.Buffer {
	s.mu.RLock()
	stacks := make([]*concurrency.Stack[*buffer.Buffer], 0, len(s.classes))
	for _, st := range s.classes {
		stacks = append(stacks, st)
	}
	s.mu.RUnlock()

	var dump []*buffer.Buffer
	for _, st := range stacks {
		dump = append(dump, st.PopAll()...)
	}
	return dump
}
