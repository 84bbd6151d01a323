package tree

/*
mergeSubtrees concatenates two detached subtrees around the free node m,
keeping l's elements first, then m, then r's. It returns the top of the
merged subtree, which always ends up black.

The trees never get walked element by element. Both sides arrive with a
black top and a trusted blackHeight, so the taller side only needs its
spine descended to the first black node of the shorter side's height.
m replaces that spine node, adopts it and the shorter tree as children
and starts red:

	          [T]                      [T]
	          / \                      / \
	        ...  \    join by m      ...  \
	        /                        /
	  [R'] least black     ====>   <m>      + rebalance from m
	       of height bh(L)         / \
	                             [L] [R']

Only the repaired path gets touched, so a join costs O(|bh(l)-bh(r)|)
plus the usual rebalance. The element counts of the bypassed ancestors
are settled by the rebalance itself, charged with the whole carried
subtree size at once.
*/
func (tl *xTreeList[V]) mergeSubtrees(l, m, r *xTreeListNode[V]) *xTreeListNode[V] {
	if l == nil {
		m.parent, m.left, m.right = nil, nil, nil
		m.size = 1
		if r == nil {
			m.color = Black
			m.blackHeight = 1
			tl.pull(m)
			return m
		}
		m.color = Red
		m.blackHeight = 0
		r.parent = nil
		r.minimum().connectLeft(m)
		return tl.insertRebalance(m, nil, 1)
	}
	if r == nil {
		m.parent, m.left, m.right = nil, nil, nil
		m.size = 1
		m.color = Red
		m.blackHeight = 0
		l.parent = nil
		l.maximum().connectRight(m)
		return tl.insertRebalance(m, nil, 1)
	}

	if l.blackHeight == r.blackHeight {
		m.parent = nil
		m.connectLeft(l)
		m.connectRight(r)
		m.color = Black
		m.blackHeight = l.blackHeight + 1
		tl.pullSize(m)
		return m
	}

	if l.blackHeight < r.blackHeight {
		r.parent = nil
		for r.color == Red || r.blackHeight != l.blackHeight {
			r = r.left
		}
		m.replaceInParent(r)
		m.connectLeft(l)
		m.connectRight(r)
		m.color = Red
		m.blackHeight = l.blackHeight
		tl.pullSize(m)
		return tl.insertRebalance(m, nil, l.size+1)
	}

	l.parent = nil
	for l.color == Red || l.blackHeight != r.blackHeight {
		l = l.right
	}
	m.replaceInParent(l)
	m.connectLeft(l)
	m.connectRight(r)
	m.color = Red
	m.blackHeight = r.blackHeight
	tl.pullSize(m)
	return tl.insertRebalance(m, nil, r.size+1)
}

// splitSubtrees carves the attached tree apart at node: l collects the
// elements before it, r the elements after it, and with pivotRight the
// node itself leads r. The walk climbs from node to the head and folds
// each bypassed ancestor plus its far subtree into the matching side,
// which makes the whole split a sequence of O(log n) subtree joins. The
// head's child slot is left stale, the caller rewires it.
func (tl *xTreeList[V]) splitSubtrees(node *xTreeListNode[V], pivotRight bool) (l, r *xTreeListNode[V]) {
	p := node.parent
	l, r = node.left, node.right
	l.paintBlack()
	r.paintBlack()
	if pivotRight {
		r = tl.mergeSubtrees(nil, node, r)
	}

	for p != tl.head {
		isLeft := p.left == node
		node = p
		p = p.parent
		if isLeft {
			node.right.paintBlack()
			r = tl.mergeSubtrees(r, node, node.right)
		} else {
			node.left.paintBlack()
			l = tl.mergeSubtrees(node.left, node, l)
		}
	}
	return l, r
}

func (tl *xTreeList[V]) Merge(other TreeList[V]) {
	o, ok := other.(*xTreeList[V])
	if !ok {
		panic("[treelist] merge with a foreign tree list implementation")
	}
	if o == tl {
		panic("[treelist] merge a tree list with itself")
	}
	if o.head.left == nil {
		return
	}
	start := tl.stats.begin()
	if tl.head.left == nil {
		tl.head, o.head = o.head, tl.head
		tl.stats.onMerge(start)
		return
	}

	// The join needs a free pivot node; borrow the cheaper boundary
	// element, it keeps its place in the merged sequence either way.
	var pivot *xTreeListNode[V]
	if o.Len() < tl.Len() {
		pivot = o.detachNode(o.head.left.minimum())
	} else {
		pivot = tl.detachNode(tl.head.left.maximum())
	}
	tl.head.connectLeft(tl.mergeSubtrees(tl.head.left, pivot, o.head.left))
	o.head.left = nil
	tl.stats.onMerge(start)
}

func (tl *xTreeList[V]) MergePivot(other TreeList[V], pivot V) Cursor[V] {
	o, ok := other.(*xTreeList[V])
	if !ok {
		panic("[treelist] merge with a foreign tree list implementation")
	}
	if o == tl {
		panic("[treelist] merge a tree list with itself")
	}

	start := tl.stats.begin()
	m := tl.genNode(pivot)
	tl.head.connectLeft(tl.mergeSubtrees(tl.head.left, m, o.head.left))
	o.head.left = nil
	tl.stats.onMerge(start)
	return Cursor[V]{node: m}
}

func (tl *xTreeList[V]) Split(at Cursor[V]) TreeList[V] {
	node := tl.mustOwnedNode(at)
	out := tl.derive()
	if node == tl.head {
		return out
	}

	start := tl.stats.begin()
	l, r := tl.splitSubtrees(node, true)
	tl.head.connectLeft(l)
	out.head.connectLeft(r)
	tl.stats.onSplit(start)
	return out
}

func (tl *xTreeList[V]) SplitRemove(at Cursor[V]) (TreeList[V], V) {
	node := tl.mustOwnedNode(at)
	if node == tl.head {
		panic("[treelist] split remove at the end cursor")
	}

	start := tl.stats.begin()
	out := tl.derive()
	l, r := tl.splitSubtrees(node, false)
	tl.head.connectLeft(l)
	out.head.connectLeft(r)
	val := node.val
	tl.freeNode(node)
	tl.stats.onSplit(start)
	return out, val
}

// PartitionBound assumes pred answers true on some prefix of the
// sequence and false from one element on. The walk keeps the last node
// that answered false and descends by answer, no ranks involved, so it
// finishes in O(log n) predicate calls.
func (tl *xTreeList[V]) PartitionBound(pred func(val V) bool) Cursor[V] {
	now, last := tl.head.left, tl.head
	for now != nil {
		if pred(now.val) {
			now = now.right
		} else {
			last = now
			now = now.left
		}
	}
	return Cursor[V]{node: last}
}

func (tl *xTreeList[V]) PartitionBoundAt(pred func(at Cursor[V]) bool) Cursor[V] {
	now, last := tl.head.left, tl.head
	for now != nil {
		if pred(Cursor[V]{node: now}) {
			now = now.right
		} else {
			last = now
			now = now.left
		}
	}
	return Cursor[V]{node: last}
}
