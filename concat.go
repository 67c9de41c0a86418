package rrbvec

// Concat returns a vector whose sequence is a's elements followed by b's.
// Either side may be empty, in which case the other is returned
// unchanged. This is the module with the richest algorithm in the
// package — see SPEC_FULL.md's concatenation module and spec.md §4.4.
func (a Vector[T]) Concat(b Vector[T]) Vector[T] {
	a, b = a.normalize(), b.normalize()
	if a.cnt == 0 {
		return b
	}
	if b.cnt == 0 {
		return a
	}

	// (a) Tail handling: fold a's tail into a's own tree so the whole of
	// a becomes a single tree with no separate tail. The tail may be
	// partial, so it is merged in as a one-leaf tree rather than grafted
	// by Push's bit-masked slot arithmetic. b's tail becomes the result's
	// tail untouched.
	tl, tlShift := a.root, a.shift
	if a.tailoff() == 0 {
		tl, tlShift = newPathNode(a.tail.clone()), bits
	} else if a.tail.len > 0 {
		tl, tlShift = concatTrees(a.root, a.shift, newPathNode(a.tail.clone()), bits)
	}
	tr, trShift := b.root, b.shift

	if tr.len == 0 {
		// b's tree is empty (all of b lived in its tail) — nothing to
		// merge, the result tree is just a's.
		return Vector[T]{cnt: a.cnt + b.cnt, shift: tlShift, root: tl, tail: b.tail.clone()}
	}

	// (b)+(c) Tree merge and rebalance.
	root, shift := concatTrees(tl, tlShift, tr, trShift)
	return Vector[T]{cnt: a.cnt + b.cnt, shift: shift, root: root, tail: b.tail.clone()}
}

// concatTrees merges two trees of (possibly different) height into one,
// padding the shorter side up to the taller's shift before recursing,
// and collapsing the result back down if it turns out not to need the
// full height — spec.md §4.4 (b)-(d).
func concatTrees[T any](a *node[T], shiftA int, b *node[T], shiftB int) (*node[T], int) {
	s := shiftA
	if shiftB > s {
		s = shiftB
	}
	a = padTo(a, shiftA, s)
	b = padTo(b, shiftB, s)

	merged := mergeAtLevel(a, b, s)

	var root *node[T]
	shift := s
	if len(merged) == 1 {
		root = merged[0]
	} else {
		root = packInternal(merged, s)
		shift = s + bits
	}

	// Root adjustment: collapse any unary chain left over from padding
	// or from the merge not needing the full height after all.
	for shift > bits && root.len == 1 {
		root = root.child(0)
		shift -= bits
	}
	return root, shift
}

// padTo logically pads n (a node at level from) up to level to by
// wrapping it in single-child nodes, so the merge recursion can treat
// both sides uniformly at a common level. A single-child wrapper is
// trivially strict-radix (the strict invariant only constrains children
// other than the last, and there is no "other" child here).
func padTo[T any](n *node[T], from, to int) *node[T] {
	for s := from; s < to; s += bits {
		n = newPathNode(n)
	}
	return n
}

// mergeAtLevel merges a and b — both nodes at level shift — into a
// sequence of nodes at that same level, per spec.md §4.4(b): at the
// level just above the leaves it simply concatenates the leaf children;
// otherwise it recurses into the seam (a's rightmost child merged with
// b's leftmost), splices the result between a's other children and b's
// other children, and groups that combined sequence, in order, into new
// nodes of at most width children each (packChildren). Children are not
// redistributed between nodes, so the slack near the seam is not
// bounded by the slack constant.
func mergeAtLevel[T any](a, b *node[T], shift int) []*node[T] {
	aChildren := childSlice(a)
	bChildren := childSlice(b)

	var combined []*node[T]
	if shift == bits {
		combined = make([]*node[T], 0, len(aChildren)+len(bChildren))
		combined = append(combined, aChildren...)
		combined = append(combined, bChildren...)
	} else {
		middle := mergeAtLevel(aChildren[len(aChildren)-1], bChildren[0], shift-bits)
		combined = make([]*node[T], 0, len(aChildren)-1+len(middle)+len(bChildren)-1)
		combined = append(combined, aChildren[:len(aChildren)-1]...)
		combined = append(combined, middle...)
		combined = append(combined, bChildren[1:]...)
	}

	return packChildren(combined, shift-bits)
}

// childSlice returns n's children as a slice (n.arr[:n.len] typed back
// to *node[T]).
func childSlice[T any](n *node[T]) []*node[T] {
	out := make([]*node[T], n.len)
	for i := 0; i < n.len; i++ {
		out[i] = n.child(i)
	}
	return out
}

// packChildren groups items — all nodes at level childShift — into
// chunks of at most width, and wraps each chunk into a new node at level
// childShift+bits. Because it groups whole child pointers rather than
// splitting any item, the result always has at most
// ceil(len(items)/width) nodes, which — since len(items) is at most
// 2*width-2+3 after one merge seam — never exceeds the 2*width/width+1 = 3
// bound spec.md §4.4(c) calls for.
func packChildren[T any](items []*node[T], childShift int) []*node[T] {
	var out []*node[T]
	for i := 0; i < len(items); i += width {
		end := i + width
		if end > len(items) {
			end = len(items)
		}
		out = append(out, packInternal(items[i:end], childShift))
	}
	return out
}

// packInternal builds a single internal node at level childShift+bits
// whose children are exactly children (already ≤ width of them). It
// carries a size table unless every child but the last is a perfectly
// full, strict-radix subtree of height childShift and the last child is
// strict too (it may be partial) — the same rule that lets ordinary
// pushes stay strict, applied here to a freshly merged node (spec.md
// §4.4's closing paragraph). A strict node hands its index down without
// subtracting anything, which only a strict child can resolve.
func packInternal[T any](children []*node[T], childShift int) *node[T] {
	n := &node[T]{len: len(children)}
	full := strictFullSize(childShift)

	relaxed := false
	for i, c := range children {
		if c.isRelaxed() || (i < len(children)-1 && subtreeCount(c, childShift) != full) {
			relaxed = true
			break
		}
	}

	for i, c := range children {
		n.arr[i] = c
	}
	if relaxed {
		sizes := make([]int, len(children))
		sum := 0
		for i, c := range children {
			sum += subtreeCount(c, childShift)
			sizes[i] = sum
		}
		n.sizes = sizes
	}
	return n
}

// subtreeCount returns the total element count reachable under n, a
// node at the given level (0 meaning n is itself a leaf).
func subtreeCount[T any](n *node[T], shift int) int {
	if shift == 0 {
		return n.len
	}
	if n.isRelaxed() {
		return n.sizes[n.len-1]
	}
	if n.len == 0 {
		return 0
	}
	full := strictFullSize(shift - bits)
	return (n.len-1)*full + subtreeCount(n.child(n.len-1), shift-bits)
}
