package domain

import "unique"

// InternedString wraps a unique.Handle[string]. Target paths and names repeat
// heavily across the rule set and the update state, so interning keeps a
// single copy of each and makes comparisons pointer-sized.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s and returns a handle-backed value object.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	return is.h.Value()
}
