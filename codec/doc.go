// File: codec/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package codec provides a compact binary writer and reader over a stream.
//
// The writer appends primitives and length-framed sequences directly into a
// stream's storage; the reader decodes from a frozen snapshot of the
// stream's pending bytes and only commits consumption on Sync. Several
// readers over the same stream see identical data, and an aborted reader
// (one that runs past the end of a partially received message) leaves the
// stream untouched.
//
// Framing: nullable sequences carry a one-byte presence flag, present
// sequences a uint16 element count. Byte order defaults to big-endian and
// is fixed per writer or reader instance.
package codec
