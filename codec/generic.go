// File: codec/generic.go
// Generic encode/decode helpers for user types.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package codec

import "fmt"

// Item is a user type that knows its own wire format.
type Item interface {
	Encode(w *Writer)
	Decode(r *Reader)
}

// NoEnum is the ordinal GetEnum yields for an absent enum.
const NoEnum = -1

// PutEnum writes a present enum: a presence flag, then its uint16 ordinal.
func PutEnum[T ~int](w *Writer, v T) {
	if v < 0 || int(v) > MaxSequence {
		panic(fmt.Sprintf("codec: enum ordinal %d out of range", int(v)))
	}
	w.PutBool(true)
	w.PutUint16(uint16(v))
}

// PutEnumAbsent writes the absent enum form.
func PutEnumAbsent(w *Writer) {
	w.PutBool(false)
}

// GetEnum reads a nullable enum and checks its ordinal against the type's
// value count. An absent frame yields NoEnum with the reader still valid; an
// out-of-range ordinal invalidates the reader, the same as running off the
// end of the snapshot.
func GetEnum[T ~int](r *Reader, count int) T {
	if !r.Bool() {
		return NoEnum
	}
	ord := int(r.Uint16())
	if !r.valid {
		return NoEnum
	}
	if ord >= count {
		r.invalidate()
		return NoEnum
	}
	return T(ord)
}

// PutItem writes a nullable item: a presence flag, then the item's own
// encoding when non-nil.
func PutItem[T any, PT interface {
	*T
	Item
}](w *Writer, v PT) {
	w.PutBool(v != nil)
	if v != nil {
		v.Encode(w)
	}
}

// GetItem reads a nullable item. Absent frames and invalid readers yield
// nil.
func GetItem[T any, PT interface {
	*T
	Item
}](r *Reader) PT {
	if !r.Bool() {
		return nil
	}
	v := PT(new(T))
	v.Decode(r)
	if !r.valid {
		return nil
	}
	return v
}

// PutItems writes a framed sequence of nullable items; each element carries
// its own presence flag, so sparse slices round-trip exactly.
func PutItems[T any, PT interface {
	*T
	Item
}](w *Writer, v []PT) {
	if w.frame(seqLen(v)) {
		for _, item := range v {
			PutItem(w, item)
		}
	}
}

// GetItems reads a framed sequence of nullable items.
func GetItems[T any, PT interface {
	*T
	Item
}](r *Reader) []PT {
	n := r.unframe()
	if n < 0 {
		return nil
	}
	v := make([]PT, n)
	for i := range v {
		v[i] = GetItem[T, PT](r)
		if !r.valid {
			return nil
		}
	}
	return v
}
