// Package api
// Author: momentics <momentics@gmail.com>
//
// Public contracts for hioload-buf: buffer factories with bounded cache
// accounting, the bulk transfer protocol between factories, and the minimal
// source/sink shapes consumed by stream drain/fill.
//
// Implementations live in the buffer, pool, stream and codec packages; this
// package carries no behavior beyond error values.
package api
