// File: api/io.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Minimal non-blocking source/sink shapes consumed by stream drain/fill.
// Blocking collaborators use the plain io.Reader/io.Writer contracts instead;
// choosing between the two is the caller's statement about blocking behavior.

package api

// PullSource is a non-blocking byte producer. Pull copies up to len(p) bytes
// into p and returns the count. A (0, nil) result means no data is available
// right now; end of input is reported as (0, io.EOF). Pull must never block.
type PullSource interface {
	Pull(p []byte) (int, error)
}

// PushSink is a non-blocking byte consumer. Push accepts up to len(p) bytes
// from p and returns the count consumed. A (0, nil) result means the sink
// would block; the caller retries later with the unconsumed remainder.
type PushSink interface {
	Push(p []byte) (int, error)
}

// ByteAvailabler is an optional probe on blocking readers reporting how many
// bytes can be read without blocking. bufio.Reader satisfies it via Buffered.
type ByteAvailabler interface {
	Buffered() int
}
