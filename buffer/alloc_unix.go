// File: buffer/alloc_unix.go
//go:build unix

// Package buffer: off-heap allocation backend for unix-like systems.
//
// Direct buffers are anonymous private mappings obtained with mmap and
// returned to the OS with munmap, keeping bulk I/O memory out of the Go heap.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer

import "golang.org/x/sys/unix"

// allocDirect maps size bytes of anonymous memory. The full mapping is kept
// for the matching munmap; the data slice is trimmed to the requested size.
func allocDirect(size int) (data, raw []byte, err error) {
	if size == 0 {
		return []byte{}, nil, nil
	}
	raw, err = unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}
	return raw[:size], raw, nil
}

// freeDirect unmaps a region produced by allocDirect.
func freeDirect(raw []byte) {
	_ = unix.Munmap(raw)
}
