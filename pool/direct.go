// File: pool/direct.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "github.com/momentics/hioload-buf/buffer"

// directStrategy allocates off-heap buffers and never caches. Every Free
// returns the mapping to the OS immediately.
type directStrategy struct{}

// NewDirectFactory returns a factory producing off-heap buffers with no
// caching.
func NewDirectFactory() *Factory {
	return newFactory(directStrategy{}, DefaultAllocateSize)
}

func (directStrategy) onAllocate(size int) (*buffer.Buffer, bool, error) {
	b, err := buffer.NewDirect(size)
	if err != nil {
		return nil, false, err
	}
	return b, false, nil
}

func (directStrategy) onCache(*buffer.Buffer) bool { return false }

func (directStrategy) onFill(int64) int64 { return 0 }

func (directStrategy) onRelease() []*buffer.Buffer { return nil }
