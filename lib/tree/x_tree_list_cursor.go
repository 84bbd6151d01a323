package tree

// Cursor addresses one element of a TreeList, or the end position one
// behind the last element. It survives mutations of other elements,
// including merges and splits that carry its element into another list;
// a cursor of a removed element must not be used again. Cursors are
// comparable, two are equal when they address the same node.
//
// Navigation climbs the parent links of the addressed node, so a cursor
// holds no reference to its list and every move costs O(log n) at worst
// without touching the structure.
type Cursor[V any] struct {
	node *xTreeListNode[V]
}

func (c Cursor[V]) mustNode() *xTreeListNode[V] {
	if c.node == nil {
		panic("[treelist] zero value cursor")
	}
	return c.node
}

func (c Cursor[V]) mustElem() *xTreeListNode[V] {
	node := c.mustNode()
	if node.parent == nil {
		panic("[treelist] dereference of the end cursor")
	}
	return node
}

// IsNil reports whether this is the zero cursor. Structural child peeks
// return it for empty slots.
func (c Cursor[V]) IsNil() bool {
	return c.node == nil
}

// AtEnd reports whether the cursor sits on the end position of its list.
func (c Cursor[V]) AtEnd() bool {
	return c.node != nil && c.node.parent == nil
}

func (c Cursor[V]) Value() V {
	return c.mustElem().val
}

// Node exposes the read view of the addressed node, nil for the end
// position. Aggregates of the subtree below the cursor live here.
func (c Cursor[V]) Node() TreeListNode[V] {
	if c.node == nil || c.node.parent == nil {
		return nil
	}
	return c.node
}

// Next moves one element forward. Stepping from the last element lands
// on the end position; stepping from the end panics.
func (c Cursor[V]) Next() Cursor[V] {
	node := c.mustNode()
	if node.parent == nil {
		panic("[treelist] advance past the end cursor")
	}
	return Cursor[V]{node: node.succ()}
}

// Prev moves one element backward. Stepping from the end position lands
// on the last element; stepping from the first element panics.
func (c Cursor[V]) Prev() Cursor[V] {
	node := c.mustNode()
	p := node.pred()
	if p == nil {
		panic("[treelist] retreat before the first element")
	}
	return Cursor[V]{node: p}
}

// Advance moves diff positions in either direction in one O(log n)
// climb, it does not step element by element. The target must stay
// inside [0, len]; len is the end position.
func (c Cursor[V]) Advance(diff int64) Cursor[V] {
	node := c.mustNode()
	head := node.top()
	target := node.orderOf() + diff
	if target < 0 || target > head.left.Size() {
		panic("[treelist] advance out of range")
	}
	return Cursor[V]{node: node.advance(diff)}
}

// Rank returns the position of the addressed element, counted from
// zero. The end cursor reports the element count of its list.
func (c Cursor[V]) Rank() int64 {
	return c.mustNode().orderOf()
}

// Distance returns how many forward steps lead from c to other, which
// is negative when other sits before c. Both cursors must belong to the
// same list.
func (c Cursor[V]) Distance(other Cursor[V]) int64 {
	a, b := c.mustNode(), other.mustNode()
	if a.top() != b.top() {
		panic("[treelist] cursors from different tree lists")
	}
	return b.orderOf() - a.orderOf()
}

// Compare orders two cursors of the same list by position: -1 when c
// sits before other, 0 on equal positions, 1 otherwise.
func (c Cursor[V]) Compare(other Cursor[V]) int {
	d := c.Distance(other)
	if d > 0 {
		return -1
	} else if d < 0 {
		return 1
	}
	return 0
}

// SubtreeSize returns the element count of the subtree below the
// addressed node. Together with the child peeks it lets a search walk
// the tree shape directly, the way PartitionBoundAt predicates do.
func (c Cursor[V]) SubtreeSize() int64 {
	return c.mustElem().size
}

// LeftChild descends into the left child slot and returns the zero
// cursor when the slot is empty. On the end cursor it yields the root,
// which makes it a usable entry point for structural walks.
func (c Cursor[V]) LeftChild() Cursor[V] {
	return Cursor[V]{node: c.mustNode().left}
}

func (c Cursor[V]) RightChild() Cursor[V] {
	return Cursor[V]{node: c.mustNode().right}
}

// ReverseCursor walks a TreeList back to front. Like the standard
// library reverse iterator adapters elsewhere it stores the forward
// cursor one position behind the element it addresses, so the reverse
// begin wraps End and the reverse end wraps Begin.
type ReverseCursor[V any] struct {
	base Cursor[V]
}

// Base returns the wrapped forward cursor, one position behind the
// addressed element.
func (r ReverseCursor[V]) Base() Cursor[V] {
	return r.base
}

// Cursor returns the forward cursor of the addressed element.
func (r ReverseCursor[V]) Cursor() Cursor[V] {
	return r.base.Prev()
}

func (r ReverseCursor[V]) Value() V {
	return r.base.Prev().Value()
}

// Next moves one element backward in sequence order.
func (r ReverseCursor[V]) Next() ReverseCursor[V] {
	return ReverseCursor[V]{base: r.base.Prev()}
}

// Prev moves one element forward in sequence order.
func (r ReverseCursor[V]) Prev() ReverseCursor[V] {
	return ReverseCursor[V]{base: r.base.Next()}
}

func (r ReverseCursor[V]) Advance(diff int64) ReverseCursor[V] {
	return ReverseCursor[V]{base: r.base.Advance(-diff)}
}

// Rank returns the forward rank of the addressed element, -1 on the
// reverse end position.
func (r ReverseCursor[V]) Rank() int64 {
	return r.base.Rank() - 1
}

// AtEnd reports whether the reverse walk is exhausted, meaning the
// wrapped cursor reached the front of the list.
func (r ReverseCursor[V]) AtEnd() bool {
	return r.base.Rank() == 0
}
