package tree

// The tree list node carries the element value plus the per subtree
// bookkeeping that rank addressing and subtree concatenation rely on:
// size is the element count of the subtree rooted here and blackHeight
// is the black node count of any downward path from here to an empty
// leaf position, this node included.
//
// Every attached tree hangs below a value free sentinel head whose left
// child slot holds the root. The head is the one node with a nil parent,
// which is also how the end position of a cursor is recognized.
type xTreeListNode[V any] struct {
	parent      *xTreeListNode[V]
	left        *xTreeListNode[V]
	right       *xTreeListNode[V]
	val         V
	agg         any
	size        int64
	blackHeight uint8
	color       RBColor
}

func (node *xTreeListNode[V]) Value() V {
	return node.val
}

func (node *xTreeListNode[V]) HasValue() bool {
	return node != nil && node.parent != nil
}

func (node *xTreeListNode[V]) Color() RBColor {
	return node.color
}

func (node *xTreeListNode[V]) Size() int64 {
	if node == nil {
		return 0
	}
	return node.size
}

func (node *xTreeListNode[V]) BlackHeight() uint8 {
	if node == nil {
		return 0
	}
	return node.blackHeight
}

func (node *xTreeListNode[V]) Aggregate() any {
	if node == nil {
		return nil
	}
	return node.agg
}

func (node *xTreeListNode[V]) SetAggregate(agg any) {
	node.agg = agg
}

func (node *xTreeListNode[V]) Left() TreeListNode[V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *xTreeListNode[V]) Right() TreeListNode[V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *xTreeListNode[V]) Parent() TreeListNode[V] {
	if node == nil || node.parent == nil || node.parent.parent == nil {
		return nil
	}
	return node.parent
}

func (node *xTreeListNode[V]) isNilLeaf() bool {
	return node == nil
}

func (node *xTreeListNode[V]) isRed() bool {
	return node != nil && node.color == Red
}

func (node *xTreeListNode[V]) isBlack() bool {
	return node == nil || node.color == Black
}

// isHead reports whether this node is the sentinel of an attached tree.
// Subtree tops that balance code detaches on purpose share the nil
// parent, but those are never handed out.
func (node *xTreeListNode[V]) isHead() bool {
	return node != nil && node.parent == nil
}

func (node *xTreeListNode[V]) Direction() RBDirection {
	if node.isNilLeaf() {
		// impossible run to here
		panic( /* debug assertion */ "[treelist] nil leaf node without direction")
	}

	if node.parent == nil {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *xTreeListNode[V]) fixLink() {
	if node.left != nil {
		node.left.parent = node
	}
	if node.right != nil {
		node.right.parent = node
	}
}

// connectLeft links child into node's left slot. A nil child only clears
// the slot.
func (node *xTreeListNode[V]) connectLeft(child *xTreeListNode[V]) {
	node.left = child
	if child != nil {
		child.parent = node
	}
}

func (node *xTreeListNode[V]) connectRight(child *xTreeListNode[V]) {
	node.right = child
	if child != nil {
		child.parent = node
	}
}

// replaceInParent hangs node into the parent slot that orig occupies.
// A nil parent is fine, it means orig topped a detached subtree and node
// becomes the new top.
func (node *xTreeListNode[V]) replaceInParent(orig *xTreeListNode[V]) {
	p := orig.parent
	node.parent = p
	if p != nil {
		if p.left == orig {
			p.left = node
		} else {
			p.right = node
		}
	}
}

// recount refreshes size from the child subtree sizes.
func (node *xTreeListNode[V]) recount() {
	sz := int64(1)
	if node.left != nil {
		sz += node.left.size
	}
	if node.right != nil {
		sz += node.right.size
	}
	node.size = sz
}

// paintBlack turns a red node black and accounts the extra black level.
// Black nodes and nil subtrees pass through untouched.
func (node *xTreeListNode[V]) paintBlack() {
	if node != nil && node.color == Red {
		node.color = Black
		node.blackHeight++
	}
}

func (node *xTreeListNode[V]) minimum() *xTreeListNode[V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *xTreeListNode[V]) maximum() *xTreeListNode[V] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// top climbs to the sentinel head of the tree this node is attached to.
func (node *xTreeListNode[V]) top() *xTreeListNode[V] {
	aux := node
	for aux.parent != nil {
		aux = aux.parent
	}
	return aux
}

// The pred node of the current node is its previous node in sequence order.
// It returns nil when the current node holds the first element. Walking
// pred from the sentinel head lands on the last element.
func (node *xTreeListNode[V]) pred() *xTreeListNode[V] {
	if node.left != nil {
		return node.left.maximum()
	}

	aux := node
	// Backtrack to the first ancestor entered from its right subtree.
	for aux.parent != nil && aux.parent.left == aux {
		aux = aux.parent
	}
	return aux.parent
}

// The succ node of the current node is its next node in sequence order.
// The successor of the last element is the sentinel head, the successor
// of the head is nil.
func (node *xTreeListNode[V]) succ() *xTreeListNode[V] {
	if node.right != nil {
		return node.right.minimum()
	}

	aux := node
	// Backtrack to the first ancestor entered from its left subtree.
	for aux.parent != nil && aux.parent.right == aux {
		aux = aux.parent
	}
	return aux.parent
}

// selectNode descends to the node of the given rank inside this subtree,
// counting from zero. The rank must be below the subtree size; the walk
// sheds the left subtree plus the node itself whenever it turns right.
func (node *xTreeListNode[V]) selectNode(rank int64) *xTreeListNode[V] {
	aux := node
	for {
		if lsz := aux.left.Size(); lsz == rank {
			return aux
		} else if lsz > rank {
			aux = aux.left
		} else {
			rank -= lsz + 1
			aux = aux.right
		}
	}
}

// orderOf computes the rank of this node within its attached tree by
// counting the elements hanging left of the root walk. Applied to the
// sentinel head it yields the element count of the whole tree.
func (node *xTreeListNode[V]) orderOf() int64 {
	ans := node.left.Size()
	for aux := node; aux.parent != nil; aux = aux.parent {
		if aux.parent.right == aux {
			ans += aux.parent.left.Size() + 1
		}
	}
	return ans
}

// advance walks diff positions forward (positive) or backward (negative)
// in sequence order and returns the node found there. The caller keeps
// the target inside [0, len]; landing on len yields the sentinel head.
// It climbs out of exhausted subtrees first and only then descends, so a
// move of any distance costs O(log n).
func (node *xTreeListNode[V]) advance(diff int64) *xTreeListNode[V] {
	aux := node
	if diff < 0 {
		gap := -diff
		for aux.left.Size() < gap {
			gap -= aux.left.Size() + 1
			for aux.parent != nil && aux.parent.left == aux {
				aux = aux.parent
			}
			aux = aux.parent
			if gap == 0 {
				return aux
			}
		}
		return aux.left.selectNode(aux.left.Size() - gap)
	} else if diff > 0 {
		gap := diff
		for aux.right.Size() < gap {
			gap -= aux.right.Size() + 1
			for aux.parent != nil && aux.parent.right == aux {
				aux = aux.parent
			}
			aux = aux.parent
			if gap == 0 {
				return aux
			}
		}
		return aux.right.selectNode(gap - 1)
	}
	return aux
}
