package rrbvec

// Push returns a copy of v with e appended at the end.
//
// If the tail has room, Push clones it and writes the new slot (O(1)).
// Otherwise the full tail is pushed down into the tree along the right
// spine (pushLeafInto), or — if the tree itself has no more room at its
// current height — a new, taller root is allocated first. This mirrors
// the teacher's cons. A tree whose next slot the running count cannot
// locate — a relaxed root, or a strict tree whose last leaf is partial,
// as Concat and Slice can leave it — instead gets the full tail merged
// in as a one-leaf tree via concatTrees (see SPEC_FULL.md's append / pop
// module).
func (v Vector[T]) Push(e T) Vector[T] {
	v = v.normalize()

	if v.cnt-v.tailoff() < width {
		newTail := v.tail.clone()
		newTail.arr[newTail.len] = e
		newTail.len++
		return Vector[T]{cnt: v.cnt + 1, shift: v.shift, root: v.root, tail: newTail}
	}

	if v.root.isRelaxed() || v.tailoff()&mask != 0 {
		newRoot, newShift := concatTrees(v.root, v.shift, newPathNode(v.tail.clone()), bits)
		return Vector[T]{cnt: v.cnt + 1, shift: newShift, root: newRoot, tail: newValueLeaf(e)}
	}

	newRoot, newShift := graftLeaf(v.cnt, v.shift, v.root, v.tail.clone())
	return Vector[T]{cnt: v.cnt + 1, shift: newShift, root: newRoot, tail: newValueLeaf(e)}
}

// graftLeaf relocates leaf — a full leaf that (together with root)
// already accounts for all cnt elements of its vector — into the right
// edge of the tree rooted at root (at the given shift), growing the tree
// a level if there is no room left at the current height. It returns
// the new root and shift. Push calls it only with a full, width-sized
// tail and a strict tree whose leaves are all full; the overflow test
// and pushLeafInto's slot arithmetic both count on that.
func graftLeaf[T any](cnt, shift int, root, leaf *node[T]) (*node[T], int) {
	if (cnt >> bits) > (1 << shift) {
		nr := newInternal[T]()
		nr.len = 2
		nr.arr[0] = root
		nr.arr[1] = newPath(shift, leaf)
		if root.isRelaxed() {
			// child0 holds everything except leaf (cnt-leaf.len); child1
			// (leaf, newly grafted) brings the cumulative total back up
			// to cnt. Matches rrb_transients.h's "Increasing height of
			// tree" branch for the leaf.len==width case exactly.
			nr.sizes = []int{cnt - leaf.len, cnt}
		}
		return nr, shift + bits
	}
	return pushLeafInto(cnt, shift, root, leaf), shift
}

// pushLeafInto walks the right spine of parent (a node at the given
// level, i.e. needing level/bits more descents to reach a leaf) and
// grafts leaf in at the first available slot, cloning every node on the
// path. A relaxed node always recurses into its existing rightmost child
// (size_table != NULL ⇒ child_index = len-1 in the C source); a strict
// node computes its slot by bit-masking the running count. Given a
// relaxed node one level above the leaves, it replaces that node's last
// leaf instead of adding a slot, which is why Push sends relaxed trees
// through concatTrees instead.
func pushLeafInto[T any](cnt, level int, parent, leaf *node[T]) *node[T] {
	ret := parent.clone()

	var subidx int
	if ret.isRelaxed() {
		subidx = ret.len - 1
	} else {
		subidx = ((cnt - 1) >> level) & mask
	}

	var nodeToInsert *node[T]
	if level == bits {
		nodeToInsert = leaf
	} else if child := ret.child(subidx); child != nil {
		nodeToInsert = pushLeafInto(cnt, level-bits, child, leaf)
	} else {
		nodeToInsert = newPath(level-bits, leaf)
	}

	ret.arr[subidx] = nodeToInsert
	grew := subidx >= ret.len
	if grew {
		ret.len = subidx + 1
	}
	if ret.isRelaxed() {
		if grew {
			prev := 0
			if subidx > 0 {
				prev = ret.sizes[subidx-1]
			}
			ret.sizes = append(ret.sizes, prev+leaf.len)
		} else {
			ret.sizes[subidx] += leaf.len
		}
	}
	return ret
}

// leafFor returns the leaf node holding logical index i, which must lie
// within the tree (i < tailoff()).
func (v Vector[T]) leafFor(i int) *node[T] {
	n := v.root
	for s := v.shift; s > 0; s -= bits {
		idx := n.childIndexFor(i, s)
		if n.isRelaxed() && idx > 0 {
			i -= n.sizes[idx-1]
		}
		n = n.child(idx)
	}
	return n
}

// Pop returns a copy of v without its last element, or ErrOutOfBounds if
// v is empty.
func (v Vector[T]) Pop() (Vector[T], error) {
	v = v.normalize()
	if v.cnt == 0 {
		return Vector[T]{}, ErrOutOfBounds
	}
	if v.cnt == 1 {
		return Vector[T]{}, nil
	}

	if v.cnt-v.tailoff() > 1 {
		nt := v.tail.clone()
		nt.len--
		nt.arr[nt.len] = nil
		return Vector[T]{cnt: v.cnt - 1, shift: v.shift, root: v.root, tail: nt}, nil
	}

	// Tail holds exactly one element: promote the rightmost leaf of the
	// tree into the new tail, and unwind the spine that led to it.
	promoted := v.leafFor(v.cnt - 2)
	newTail := promoted.clone()

	newRoot := v.popTail(v.shift, v.root, promoted.len)
	newShift := v.shift
	switch {
	case newRoot == nil:
		newRoot = newLeaf[T]()
		newShift = bits
	case newShift > bits && newRoot.len == 1:
		// Only one child survived at the top: collapse a level, exactly
		// as rrb.c's rrb_pop does via node_swap(&root, newroot->child[0]).
		newRoot = newRoot.child(0)
		newShift -= bits
	}

	return Vector[T]{cnt: v.cnt - 1, shift: newShift, root: newRoot, tail: newTail}, nil
}

// popTail removes the rightmost leaf from the subtree rooted at n (n is
// at the given level, using the same level convention as pushLeafInto), and
// returns the updated subtree, or nil if n had only that one leaf.
//
// Size-table bookkeeping: when a child survives but shrinks, its
// cumulative entry is decremented by the promoted leaf's length; when a
// child is removed outright, its entry simply drops out of the
// (shortened) table. rrb.c's node_pop left both as a "FIXME: patch up
// correct size here" — SPEC_FULL.md makes the decrement mandatory, and
// this is that fix.
func (v Vector[T]) popTail(level int, n *node[T], poppedLen int) *node[T] {
	// Pop always targets the rightmost leaf, so the slot to descend into
	// is always n's last child — regardless of whether n is relaxed.
	// Bit-masking the running count (as pushLeafInto does for a strict
	// node) only locates the correct slot when every child before it is
	// a perfectly full subtree, which a post-Concat relaxed tree need not
	// be; promoteRightmostLeaf (transient.go) already gets this right by
	// always using n.len-1.
	subidx := n.len - 1

	if level > bits {
		newChild := v.popTail(level-bits, n.child(subidx), poppedLen)
		if newChild == nil && subidx == 0 {
			return nil
		}
		ret := n.clone()
		if newChild == nil {
			ret.arr[subidx] = nil
			ret.len--
			if ret.isRelaxed() {
				ret.sizes = ret.sizes[:ret.len]
			}
		} else {
			ret.arr[subidx] = newChild
			if ret.isRelaxed() {
				ret.sizes[subidx] -= poppedLen
			}
		}
		return ret
	}

	// level == bits: n's children are leaves.
	if subidx == 0 {
		return nil
	}
	ret := n.clone()
	ret.arr[subidx] = nil
	ret.len--
	if ret.isRelaxed() {
		ret.sizes = ret.sizes[:ret.len]
	}
	return ret
}
