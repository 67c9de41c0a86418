package rrbvec

import "errors"

// Sentinel errors returned by bounds-checked operations. Following
// npillmayer/cords' btree/errors.go convention (errors.New("pkg: msg")),
// these are reported to the caller, never panics: spec section 7 classes
// OutOfBounds as "Reported, not fatal."
var (
	// ErrOutOfBounds is returned by Nth, Update, Peek and Pop when the
	// requested index or operation has no valid target.
	ErrOutOfBounds = errors.New("rrbvec: index out of bounds")

	// ErrInvalidRange is returned by Slice when from > to or to > count.
	ErrInvalidRange = errors.New("rrbvec: invalid slice range")
)

// TransientMisuse is the panic value raised by check_transience when a
// sealed or non-owned transient is used. Per spec section 7 this class of
// error is fatal: "the program cannot safely continue" once a transient
// may have exposed a mutation race, so this is a panic rather than an
// error return — an uncaught panic aborts the process with a non-zero
// exit code, the Go analogue of the C source's exit(1).
type TransientMisuse struct {
	Reason string
}

func (e TransientMisuse) Error() string {
	return "rrbvec: transient misuse: " + e.Reason
}
