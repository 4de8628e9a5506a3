// File: buffer/alloc_windows.go
//go:build windows

// Package buffer: off-heap allocation backend for Windows.
//
// Direct buffers are committed with VirtualAlloc and released with
// VirtualFree, mirroring the unix mmap backend.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func allocDirect(size int) (data, raw []byte, err error) {
	if size == 0 {
		return []byte{}, nil, nil
	}
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_RESERVE|windows.MEM_COMMIT,
		windows.PAGE_READWRITE)
	if err != nil {
		return nil, nil, err
	}
	raw = unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	return raw, raw, nil
}

func freeDirect(raw []byte) {
	_ = windows.VirtualFree(uintptr(unsafe.Pointer(&raw[0])), 0, windows.MEM_RELEASE)
}
