// File: buffer/alloc_stub.go
//go:build !unix && !windows

// Package buffer: fallback allocation backend for platforms without an
// off-heap path. Buffers are heap-backed but still flagged direct so pool
// acceptance rules behave identically across platforms.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer

func allocDirect(size int) (data, raw []byte, err error) {
	return make([]byte, size), nil, nil
}

func freeDirect(raw []byte) {}
