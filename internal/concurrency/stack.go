// File: internal/concurrency/stack.go
// Package concurrency provides the lock-free primitives used by the buffer
// pools.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Treiber stack over atomic pointers. LIFO order matters for the free lists:
// an Allocate directly after a Free must pop the buffer that was just pushed,
// keeping it hot in cache. PopAll detaches the whole list with one swap,
// which is what makes factory Release atomic without a lock.

package concurrency

import "sync/atomic"

type node[T any] struct {
	value T
	next  *node[T]
}

// Stack is an unbounded lock-free LIFO safe for many concurrent producers
// and consumers. The zero value is ready to use.
type Stack[T any] struct {
	head atomic.Pointer[node[T]]
}

// Push places v on top of the stack.
func (s *Stack[T]) Push(v T) {
	n := &node[T]{value: v}
	for {
		old := s.head.Load()
		n.next = old
		if s.head.CompareAndSwap(old, n) {
			return
		}
	}
}

// Pop removes and returns the most recently pushed value; ok is false when
// the stack is empty.
func (s *Stack[T]) Pop() (v T, ok bool) {
	for {
		old := s.head.Load()
		if old == nil {
			return v, false
		}
		if s.head.CompareAndSwap(old, old.next) {
			return old.value, true
		}
	}
}

// Peek returns the top value without removing it.
func (s *Stack[T]) Peek() (v T, ok bool) {
	old := s.head.Load()
	if old == nil {
		return v, false
	}
	return old.value, true
}

// PopAll detaches every value in one atomic swap and returns them in pop
// (most recent first) order.
func (s *Stack[T]) PopAll() []T {
	old := s.head.Swap(nil)
	var out []T
	for n := old; n != nil; n = n.next {
		out = append(out, n.value)
	}
	return out
}
