// File: api/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Common error values for hioload-buf.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrAllocationFailure = fmt.Errorf("cannot allocate buffer memory")
	ErrInvalidArgument   = fmt.Errorf("invalid argument")
	ErrStreamFreed       = fmt.Errorf("stream already freed")
)

// AllocationError wraps ErrAllocationFailure with the requested size so
// callers can log or inspect how much memory the failed request asked for.
type AllocationError struct {
	Size int
	Err  error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("cannot allocate buffer of size %d: %v", e.Size, e.Err)
}

// Unwrap makes errors.Is(err, ErrAllocationFailure) hold for every
// allocation failure surfaced by a factory.
func (e *AllocationError) Unwrap() error { return ErrAllocationFailure }

// NewAllocationError builds an AllocationError for the requested size.
func NewAllocationError(size int, cause error) *AllocationError {
	return &AllocationError{Size: size, Err: cause}
}
