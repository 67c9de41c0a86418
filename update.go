package rrbvec

// Update returns a copy of v with the element at index i replaced by e,
// or ErrOutOfBounds if i >= Count(). Size tables are untouched: Update
// changes values, never counts.
func (v Vector[T]) Update(i int, e T) (Vector[T], error) {
	if i < 0 || i >= v.cnt {
		return Vector[T]{}, ErrOutOfBounds
	}

	to := v.tailoff()
	if i >= to {
		newTail := v.tail.clone()
		newTail.arr[i-to] = e
		return Vector[T]{cnt: v.cnt, shift: v.shift, root: v.root, tail: newTail}, nil
	}

	return Vector[T]{
		cnt:   v.cnt,
		shift: v.shift,
		root:  doUpdate(v.shift, v.root, i, e),
		tail:  v.tail,
	}, nil
}

// doUpdate clones the spine from n down to the leaf holding index i and
// writes e into the cloned leaf slot, mirroring the teacher's doAssoc
// generalized to relaxed nodes.
func doUpdate[T any](s int, n *node[T], i int, e T) *node[T] {
	ret := n.clone()
	if s == 0 {
		ret.arr[i&mask] = e
		return ret
	}
	idx := ret.childIndexFor(i, s)
	if ret.isRelaxed() && idx > 0 {
		i -= ret.sizes[idx-1]
	}
	ret.arr[idx] = doUpdate(s-bits, ret.child(idx), i, e)
	return ret
}
