package rrbvec

import "github.com/go-logr/logr"

// Validate walks v's structure and reports the first violation of the
// universal invariants from spec section 8 it finds, logging every
// violation it encounters along the way at V(1) before returning the
// first one as an error. It is O(n) and meant for tests and debug
// builds — never call it from a hot path.
func Validate[T any](v Vector[T], log logr.Logger) error {
	v = v.normalize()
	var first error

	report := func(err error, keysAndValues ...any) {
		log.V(1).Info(err.Error(), keysAndValues...)
		if first == nil {
			first = err
		}
	}

	if v.tail == nil || v.tail.len > width {
		report(ErrInvalidRange, "reason", "tail length out of range", "len", v.tail.len)
	}
	if v.cnt < 0 {
		report(ErrInvalidRange, "reason", "negative count", "cnt", v.cnt)
	}

	tOff := v.tailoff()
	if v.cnt-tOff != v.tail.len && v.cnt > 0 {
		report(ErrInvalidRange, "reason", "tailoff/tail length mismatch", "tailoff", tOff, "tailLen", v.tail.len, "cnt", v.cnt)
	}

	if tOff > 0 {
		validateNode[T](v.root, v.shift, tOff, report)
	}

	return first
}

func validateNode[T any](n *node[T], shift, expectCount int, report func(error, ...any)) {
	if n == nil {
		report(ErrInvalidRange, "reason", "nil node on a non-empty spine")
		return
	}
	if n.len == 0 || n.len > width {
		report(ErrInvalidRange, "reason", "node length out of range", "len", n.len, "shift", shift)
		return
	}
	if n.isRelaxed() && len(n.sizes) != n.len {
		report(ErrInvalidRange, "reason", "size table length mismatch", "sizesLen", len(n.sizes), "nodeLen", n.len)
	}

	got := subtreeCount(n, shift)
	if got != expectCount {
		report(ErrInvalidRange, "reason", "subtree count mismatch", "got", got, "want", expectCount, "shift", shift)
	}

	if shift == 0 {
		return
	}

	full := strictFullSize(shift - bits)
	prev := 0
	for i := 0; i < n.len; i++ {
		child := n.child(i)
		var childExpect int
		if n.isRelaxed() {
			childExpect = n.sizes[i] - prev
			prev = n.sizes[i]
		} else if i < n.len-1 {
			childExpect = full
		} else {
			childExpect = expectCount - i*full
		}
		validateNode[T](child, shift-bits, childExpect, report)

		if !n.isRelaxed() && i < n.len-1 && subtreeCount(child, shift-bits) != full {
			report(ErrInvalidRange, "reason", "strict node has an underfull non-last child", "index", i, "shift", shift)
		}
	}
}
