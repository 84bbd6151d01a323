package tree

// xTreeList is the rank addressed sequence. All elements hang below the
// sentinel head as one red black tree ordered purely by position, so the
// element of rank i is the i-th node in left to right order. Subtree
// sizes stored on the nodes drive rank lookups; black heights stored on
// the nodes let merge and split line subtrees up without measuring them
// first.
type xTreeList[V any] struct {
	head      *xTreeListNode[V]
	pool      *xTreeListNodePool[V]
	aggregate TreeListAggregation[V]
	stats     *treeListStats
}

// derive builds an empty list that shares the receiver's node pool and
// aggregation hook. Split suffixes and clones start from it.
func (tl *xTreeList[V]) derive() *xTreeList[V] {
	return &xTreeList[V]{
		head:      &xTreeListNode[V]{size: 1},
		pool:      tl.pool,
		aggregate: tl.aggregate,
	}
}

func (tl *xTreeList[V]) genNode(val V) *xTreeListNode[V] {
	node := tl.pool.loadNode()
	node.val = val
	node.size = 1
	node.color = Red
	return node
}

func (tl *xTreeList[V]) freeNode(node *xTreeListNode[V]) {
	tl.pool.releaseNode(node)
}

// pull reruns the aggregation hook on one node. Subtree sizes are not
// its business, the balance code maintains them inline.
func (tl *xTreeList[V]) pull(node *xTreeListNode[V]) {
	if tl.aggregate != nil {
		tl.aggregate(node)
	}
}

// pullSize recounts the subtree size from the children and reruns the
// aggregation hook. It is the full refresh for nodes whose child links
// were just rewired.
func (tl *xTreeList[V]) pullSize(node *xTreeListNode[V]) {
	node.recount()
	tl.pull(node)
}

// pullPath reruns the aggregation hook on node and every ancestor below
// the head. Value updates ride on it; without a hook it costs nothing.
func (tl *xTreeList[V]) pullPath(node *xTreeListNode[V]) {
	if tl.aggregate == nil {
		return
	}
	for aux := node; aux != tl.head; aux = aux.parent {
		tl.aggregate(aux)
	}
}

// increaseSize grows every subtree from node up to the given head by
// delta elements and reruns the aggregation hook along the walk. It
// returns the last node visited below head; with a nil head, meaning
// the walk runs on a detached subtree, that is the subtree top.
func (tl *xTreeList[V]) increaseSize(node, head *xTreeListNode[V], delta int64) *xTreeListNode[V] {
	for {
		node.size += delta
		tl.pull(node)
		if node.parent == head {
			return node
		}
		node = node.parent
	}
}

// decreaseSize shrinks every subtree from node up to the sentinel head
// by one element.
func (tl *xTreeList[V]) decreaseSize(node *xTreeListNode[V]) {
	for ; node != tl.head; node = node.parent {
		node.size--
		tl.pull(node)
	}
}

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. (Optional) The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p4.
// Join and split over whole subtrees:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Set_operations_and_bulk_operations

/*
New node X is red by default and arrives with delta D elements already
counted into its own size. The loop settles the colors first and only
then charges D to the ancestors, so the sizes above the settle point
stay untouched until the repair knows where the subtree finally hangs.
A nil head runs the same repair on a detached subtree and hands back
whatever node ends up on top.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

im1: X sits directly below the head. Paint it black, one more black
level, done.

im2: The parent P is black. Nothing to repaint, charge D upward.

im3: Both the parent P and the uncle U are red, grandpa G is black.
(red-violation) Swap the colors of that trio, charge D to P and G, and
retry from G, which may now clash with its own parent. G keeps its
black height: it lost its own black level but both child subtrees
gained one.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im4: The parent P is red but the uncle U is black or absent.
(red-violation) X on the inner side is first lifted over P so both reds
line up; the lower node keeps its subtree counts through a recount.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im5: The aligned red pair rotates over G and the colors flip. The new
top takes G's old black height, so nothing above changes shape; the
remaining ancestors only absorb D.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (tl *xTreeList[V]) insertRebalance(node, head *xTreeListNode[V], delta int64) *xTreeListNode[V] {
	tl.pull(node)
	for {
		p := node.parent
		if /* im1 */ p == head {
			node.color = Black
			node.blackHeight++
			return node
		}
		if /* im2 */ p.isBlack() {
			return tl.increaseSize(p, head, delta)
		}

		g := p.parent
		var u *xTreeListNode[V]
		if g.left == p {
			u = g.right
		} else {
			u = g.left
		}

		if /* im3 */ u.isRed() {
			p.size += delta
			p.color = Black
			p.blackHeight++
			tl.pull(p)
			g.size += delta
			g.color = Red
			tl.pull(g)
			u.color = Black
			u.blackHeight++
			node = g
			continue
		}

		if g.left == p {
			if /* im4 */ p.right == node {
				node, p = p, node
				node.connectRight(p.left)
				p.connectLeft(node)
				tl.pullSize(node)
				tl.stats.onRotation(1)
			}
			/* im5 */
			p.replaceInParent(g)
			g.connectLeft(p.right)
			p.connectRight(g)
		} else {
			if /* im4 */ p.left == node {
				node, p = p, node
				node.connectLeft(p.right)
				p.connectRight(node)
				tl.pullSize(node)
				tl.stats.onRotation(1)
			}
			/* im5 */
			p.replaceInParent(g)
			g.connectRight(p.left)
			p.connectLeft(g)
		}
		tl.pullSize(g)
		g.color = Red
		g.blackHeight--
		tl.pullSize(p)
		p.color = Black
		p.blackHeight++
		tl.stats.onRotation(1)
		if p.parent == head {
			return p
		}
		return tl.increaseSize(p.parent, head, delta)
	}
}

/*
removeRebalance repairs the black deficit that detaching a black node
left in one child slot of P. S is the surviving child on the other
side. The subtree sizes on the walk from P to the head still count the
detached element; every branch below settles the colors first and only
then clears that phantom count on exactly the nodes that still carry
it, so sizes and shape finish consistent in one pass.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

Sin is S's child on the same side as the hole, Sout the outer one.

rm1: P is the head, the whole tree just got shorter by one black
level. Nothing to fix.

rm2: S is red, so P, Sin and Sout are black. Rotate S over P and swap
their colors. The hole keeps its depth but now has a black sibling, so
one of the closing moves below finishes the job. The rotated pair gets
recounted and then re-charged with the phantom element, because both
stay on the walk from the hole to the head.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[ ] <S>  ==========>  [P] [Sd]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [ ] [Sc]          [ ] [Sc]

rm3: P, S and both nephews are black. Painting S red settles p4
locally but leaves the whole subtree of P one black level short, so P
becomes the new hole: it sheds its phantom count and its extra black
level here, and the loop climbs on.

	  [P]             [P]
	  / \             / \
	[ ] [S]  ====>  [ ] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm4: P is red, S and both nephews black. Swapping the colors of P and
S restores p4 without touching the shape; the phantom counts clear
from P upward.

	  <P>             [P]
	  / \             / \
	[ ] [S]  ====>  [ ] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm5: The inner nephew Sin is red, Sout is black. Sin double-rotates to
the top of the trio and takes P's old color while P goes black; P's
old black level migrates to Sin. All three get recounted, ancestors
above Sin shed the phantom count.

	  {P}                    {Sin}
	  / \                    /   \
	[ ] [S]    ========>   [P]   [S]
	    / \                /     / \
	 <Sin> [Sout]        [ ]   {c} [Sout]

rm6: The outer nephew Sout is red. One rotation lifts S over P, S
takes P's old color, P and Sout go black. The subtree regains its full
black height, ancestors above S shed the phantom count.

	  {P}                   [S']
	  / \    l-rotate(P)    /  \
	[ ] [S]  ==========>  [P]  [Sout]
	    / \               / \
	 [Sc] <Sout>        [ ] [Sc]
*/
func (tl *xTreeList[V]) removeRebalance(p, s *xTreeListNode[V]) {
	if /* rm1 */ p == tl.head {
		return
	}

	for {
		if /* rm2 */ s.isRed() {
			p.color = Red
			p.blackHeight--
			s.color = Black
			s.blackHeight++
			s.replaceInParent(p)
			if p.left == s {
				p.connectLeft(s.right)
				s.connectRight(p)
				tl.pullSize(p)
				tl.pullSize(s)
				p.size++
				s.size++
				s = p.left
			} else {
				p.connectRight(s.left)
				s.connectLeft(p)
				tl.pullSize(p)
				tl.pullSize(s)
				p.size++
				s.size++
				s = p.right
			}
			tl.stats.onRotation(1)
			break
		}

		if /* rm3 */ p.isBlack() && s.left.isBlack() && s.right.isBlack() {
			s.color = Red
			s.blackHeight--
			p.size--
			p.blackHeight--
			tl.pull(p)
			nd := p
			if p = nd.parent; p == tl.head {
				return
			}
			if p.left == nd {
				s = p.right
			} else {
				s = p.left
			}
			continue
		}
		break
	}

	var sin, sout *xTreeListNode[V]
	if p.left == s {
		sin, sout = s.right, s.left
	} else {
		sin, sout = s.left, s.right
	}

	if /* rm6 */ sout.isRed() {
		sout.color = Black
		sout.blackHeight++
		if p.isBlack() {
			s.blackHeight++
			p.blackHeight--
		}
		s.color = p.color
		p.color = Black
		s.replaceInParent(p)
		if p.left == s {
			p.connectLeft(s.right)
			s.connectRight(p)
		} else {
			p.connectRight(s.left)
			s.connectLeft(p)
		}
		tl.pullSize(p)
		tl.pullSize(s)
		tl.stats.onRotation(1)
		tl.decreaseSize(s.parent)
	} else if /* rm5 */ sin.isRed() {
		if p.isBlack() {
			p.blackHeight--
			sin.blackHeight += 2
		} else {
			sin.blackHeight++
		}
		sin.color = p.color
		p.color = Black
		sin.replaceInParent(p)
		if p.left == s {
			s.connectRight(sin.left)
			p.connectLeft(sin.right)
			sin.connectRight(p)
			sin.connectLeft(s)
		} else {
			s.connectLeft(sin.right)
			p.connectRight(sin.left)
			sin.connectLeft(p)
			sin.connectRight(s)
		}
		tl.pullSize(p)
		tl.pullSize(s)
		tl.pullSize(sin)
		tl.stats.onRotation(2)
		tl.decreaseSize(sin.parent)
	} else /* rm4 */ {
		s.color = Red
		s.blackHeight--
		p.color = Black
		tl.decreaseSize(p)
	}
}

// attachNode hangs the fresh node into the empty slot next to at in
// sequence order, which is either at's own left slot or the right slot
// of at's in-order predecessor, then rebalances upward. Attaching at
// the head appends.
func (tl *xTreeList[V]) attachNode(at, node *xTreeListNode[V]) {
	if at != tl.head {
		if at.left == nil {
			at.connectLeft(node)
		} else {
			at.left.maximum().connectRight(node)
		}
	} else if tl.head.left == nil {
		tl.head.connectLeft(node)
	} else {
		tl.head.left.maximum().connectRight(node)
	}
	tl.insertRebalance(node, tl.head, 1)
}

// detachShallow unlinks a node with at most one child. The sizes on the
// walk to the head are settled here or by the triggered rebalance.
func (tl *xTreeList[V]) detachShallow(node *xTreeListNode[V]) {
	if node.isRed() {
		// A red node here never has a child, drop it in place.
		if node.parent.left == node {
			node.parent.left = nil
		} else {
			node.parent.right = nil
		}
		tl.decreaseSize(node.parent)
		return
	}

	child := node.left
	if child == nil {
		child = node.right
	}
	if child != nil {
		// The only child of a black node must be red (see conclusion).
		child.color = Black
		child.blackHeight++
		child.replaceInParent(node)
		tl.decreaseSize(child.parent)
		return
	}

	p := node.parent
	if p.left == node {
		p.left = nil
		tl.removeRebalance(p, p.right)
	} else {
		p.right = nil
		tl.removeRebalance(p, p.left)
	}
}

// detachNode removes the given node from the tree and returns it with
// its value still in place. A node with two children is replaced by its
// in-order predecessor: the predecessor node is unlinked first, then
// spliced into the target's position, links, color and counts included.
// The sequence order of all remaining elements is unchanged and their
// cursors stay valid; only the detached node's cursors die.
func (tl *xTreeList[V]) detachNode(node *xTreeListNode[V]) *xTreeListNode[V] {
	if node.left != nil && node.right != nil {
		pred := node.left.maximum()
		tl.detachShallow(pred)
		// The rebalance may have reshaped the surroundings, so splice
		// against the node's current links and counts.
		pred.left, pred.right = node.left, node.right
		pred.fixLink()
		pred.color, pred.blackHeight, pred.size = node.color, node.blackHeight, node.size
		pred.replaceInParent(node)
		// The ancestors were re-aggregated while pred was out and node
		// still in, so rerun the hook on the whole spliced path.
		tl.pullPath(pred)
		return node
	}
	tl.detachShallow(node)
	return node
}

// mustOwnedNode resolves a cursor against this list. The climb to the
// sentinel both validates ownership and rejects cursors of removed
// elements that were recycled in the meantime.
func (tl *xTreeList[V]) mustOwnedNode(at Cursor[V]) *xTreeListNode[V] {
	if at.node == nil {
		panic("[treelist] zero value cursor")
	}
	if at.node.top() != tl.head {
		panic("[treelist] cursor does not belong to this tree list")
	}
	return at.node
}

func (tl *xTreeList[V]) Len() int64 {
	return tl.head.left.Size()
}

func (tl *xTreeList[V]) IsEmpty() bool {
	return tl.head.left == nil
}

func (tl *xTreeList[V]) Root() TreeListNode[V] {
	if tl.head.left == nil {
		return nil
	}
	return tl.head.left
}

func (tl *xTreeList[V]) Front() (V, bool) {
	if tl.head.left == nil {
		var zero V
		return zero, false
	}
	return tl.head.left.minimum().val, true
}

func (tl *xTreeList[V]) Back() (V, bool) {
	if tl.head.left == nil {
		var zero V
		return zero, false
	}
	return tl.head.left.maximum().val, true
}

func (tl *xTreeList[V]) At(rank int64) V {
	if rank < 0 || rank >= tl.Len() {
		panic("[treelist] rank out of range")
	}
	return tl.head.left.selectNode(rank).val
}

func (tl *xTreeList[V]) Replace(rank int64, val V) V {
	if rank < 0 || rank >= tl.Len() {
		panic("[treelist] rank out of range")
	}
	node := tl.head.left.selectNode(rank)
	old := node.val
	node.val = val
	tl.pullPath(node)
	return old
}

func (tl *xTreeList[V]) SetValue(at Cursor[V], val V) V {
	node := tl.mustOwnedNode(at)
	if node == tl.head {
		panic("[treelist] dereference of the end cursor")
	}
	old := node.val
	node.val = val
	tl.pullPath(node)
	return old
}

func (tl *xTreeList[V]) PushFront(val V) Cursor[V] {
	node := tl.genNode(val)
	tl.attachNode(tl.head.minimum(), node)
	tl.stats.onInsert()
	return Cursor[V]{node: node}
}

func (tl *xTreeList[V]) PushBack(val V) Cursor[V] {
	node := tl.genNode(val)
	tl.attachNode(tl.head, node)
	tl.stats.onInsert()
	return Cursor[V]{node: node}
}

func (tl *xTreeList[V]) PopFront() V {
	if tl.head.left == nil {
		panic("[treelist] pop from an empty tree list")
	}
	node := tl.detachNode(tl.head.left.minimum())
	val := node.val
	tl.freeNode(node)
	tl.stats.onRemove()
	return val
}

func (tl *xTreeList[V]) PopBack() V {
	if tl.head.left == nil {
		panic("[treelist] pop from an empty tree list")
	}
	node := tl.detachNode(tl.head.left.maximum())
	val := node.val
	tl.freeNode(node)
	tl.stats.onRemove()
	return val
}

func (tl *xTreeList[V]) Insert(at Cursor[V], val V) Cursor[V] {
	anchor := tl.mustOwnedNode(at)
	node := tl.genNode(val)
	tl.attachNode(anchor, node)
	tl.stats.onInsert()
	return Cursor[V]{node: node}
}

func (tl *xTreeList[V]) InsertAt(rank int64, val V) Cursor[V] {
	size := tl.Len()
	if rank < 0 || rank > size {
		panic("[treelist] rank out of range")
	}
	anchor := tl.head
	if rank < size {
		anchor = tl.head.left.selectNode(rank)
	}
	node := tl.genNode(val)
	tl.attachNode(anchor, node)
	tl.stats.onInsert()
	return Cursor[V]{node: node}
}

func (tl *xTreeList[V]) Remove(at Cursor[V]) V {
	node := tl.mustOwnedNode(at)
	if node == tl.head {
		panic("[treelist] remove at the end cursor")
	}
	tl.detachNode(node)
	val := node.val
	tl.freeNode(node)
	tl.stats.onRemove()
	return val
}

func (tl *xTreeList[V]) RemoveAt(rank int64) V {
	if rank < 0 || rank >= tl.Len() {
		panic("[treelist] rank out of range")
	}
	node := tl.detachNode(tl.head.left.selectNode(rank))
	val := node.val
	tl.freeNode(node)
	tl.stats.onRemove()
	return val
}

func (tl *xTreeList[V]) Begin() Cursor[V] {
	return Cursor[V]{node: tl.head.minimum()}
}

func (tl *xTreeList[V]) End() Cursor[V] {
	return Cursor[V]{node: tl.head}
}

func (tl *xTreeList[V]) RBegin() ReverseCursor[V] {
	return ReverseCursor[V]{base: tl.End()}
}

func (tl *xTreeList[V]) REnd() ReverseCursor[V] {
	return ReverseCursor[V]{base: tl.Begin()}
}

func (tl *xTreeList[V]) CursorAt(rank int64) Cursor[V] {
	size := tl.Len()
	if rank < 0 || rank > size {
		panic("[treelist] rank out of range")
	}
	if rank == size {
		return tl.End()
	}
	return Cursor[V]{node: tl.head.left.selectNode(rank)}
}

// Inorder traversal to implement the DFS.
func (tl *xTreeList[V]) Foreach(action func(rank int64, color RBColor, val V) bool) {
	size := tl.Len()
	aux := tl.head.left
	if size <= 0 || aux == nil {
		return
	}

	stack := make([]*xTreeListNode[V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; !action(idx, aux.color, aux.val) {
			return
		}
		idx++
		stack = stack[:size-1]
		if aux.right != nil {
			for aux = aux.right; aux != nil; aux = aux.left {
				stack = append(stack, aux)
			}
		}
	}
}

func (tl *xTreeList[V]) ReverseForeach(action func(rank int64, color RBColor, val V) bool) {
	size := tl.Len()
	aux := tl.head.left
	if size <= 0 || aux == nil {
		return
	}

	stack := make([]*xTreeListNode[V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.right {
		stack = append(stack, aux)
	}

	idx := size - 1
	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; !action(idx, aux.color, aux.val) {
			return
		}
		idx--
		stack = stack[:size-1]
		if aux.left != nil {
			for aux = aux.left; aux != nil; aux = aux.right {
				stack = append(stack, aux)
			}
		}
	}
}

func (tl *xTreeList[V]) Clone() TreeList[V] {
	out := tl.derive()
	src := tl.head.left
	if src == nil {
		return out
	}

	dst := out.genNode(src.val)
	dst.color, dst.blackHeight, dst.size, dst.agg = src.color, src.blackHeight, src.size, src.agg
	out.head.connectLeft(dst)

	// Copy in lockstep without a stack, steering by parent links. An
	// empty child slot on the copy marks the next subtree to visit.
	s, d := src, dst
	for {
		if s.left != nil && d.left == nil {
			c := out.genNode(s.left.val)
			c.color, c.blackHeight, c.size, c.agg = s.left.color, s.left.blackHeight, s.left.size, s.left.agg
			d.connectLeft(c)
			s, d = s.left, c
		} else if s.right != nil && d.right == nil {
			c := out.genNode(s.right.val)
			c.color, c.blackHeight, c.size, c.agg = s.right.color, s.right.blackHeight, s.right.size, s.right.agg
			d.connectRight(c)
			s, d = s.right, c
		} else {
			if s == src {
				break
			}
			s, d = s.parent, d.parent
		}
	}
	return out
}

func (tl *xTreeList[V]) Swap(other TreeList[V]) {
	o, ok := other.(*xTreeList[V])
	if !ok {
		panic("[treelist] swap with a foreign tree list implementation")
	}
	if o == tl {
		return
	}
	tl.head, o.head = o.head, tl.head
	tl.aggregate, o.aggregate = o.aggregate, tl.aggregate
}

func (tl *xTreeList[V]) Release() {
	size := tl.Len()
	aux := tl.head.left
	tl.head.left = nil
	if size <= 0 || aux == nil {
		return
	}

	stack := make([]*xTreeListNode[V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		aux = stack[size-1]
		r := aux.right
		stack = stack[:size-1]
		tl.freeNode(aux)
		if r != nil {
			for aux = r; aux != nil; aux = aux.left {
				stack = append(stack, aux)
			}
		}
	}
}

type TreeListOpt[V any] func(*xTreeList[V])

// WithTreeListAggregation installs the hook that maintains per subtree
// aggregates. Without it the aggregate slots stay nil and no hook runs
// anywhere on the mutation paths.
func WithTreeListAggregation[V any](pull TreeListAggregation[V]) TreeListOpt[V] {
	return func(tl *xTreeList[V]) {
		tl.aggregate = pull
	}
}

// WithTreeListStats publishes operation counters for this list under the
// given instance name through the global OTEL meter provider.
func WithTreeListStats[V any](name string) TreeListOpt[V] {
	return func(tl *xTreeList[V]) {
		tl.stats = newTreeListStats(name)
	}
}

func NewTreeList[V any](opts ...TreeListOpt[V]) TreeList[V] {
	tl := &xTreeList[V]{
		head: &xTreeListNode[V]{size: 1},
		pool: newXTreeListNodePool[V](),
	}

	for _, o := range opts {
		o(tl)
	}
	return tl
}

// NewTreeListFromSlice bulk loads values in O(n) as an already balanced
// tree: the bottom incomplete level is painted red, everything above is
// black, the way java.util.TreeMap builds from sorted data.
func NewTreeListFromSlice[V any](values []V, opts ...TreeListOpt[V]) TreeList[V] {
	tl := NewTreeList[V](opts...).(*xTreeList[V])
	n := int64(len(values))
	if n == 0 {
		return tl
	}

	redDepth := int64(0)
	for m := n - 1; m >= 0; m = m/2 - 1 {
		redDepth++
	}
	tl.head.connectLeft(tl.buildBalanced(values, 0, n, 0, redDepth))
	return tl
}

func (tl *xTreeList[V]) buildBalanced(values []V, lo, hi, depth, redDepth int64) *xTreeListNode[V] {
	if lo >= hi {
		return nil
	}

	mid := (lo + hi) >> 1
	node := tl.genNode(values[mid])
	if depth != redDepth {
		node.color = Black
	}
	node.connectLeft(tl.buildBalanced(values, lo, mid, depth+1, redDepth))
	node.connectRight(tl.buildBalanced(values, mid+1, hi, depth+1, redDepth))
	node.size = hi - lo
	node.blackHeight = node.left.BlackHeight()
	if node.color == Black {
		node.blackHeight++
	}
	tl.pull(node)
	return node
}
