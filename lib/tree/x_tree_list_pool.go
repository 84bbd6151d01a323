package tree

import "sync"

// xTreeListNodePool recycles detached nodes. Lists derived from one
// another through Clone or Split share one pool; their nodes migrate
// across list boundaries through merges anyway.
type xTreeListNodePool[V any] struct {
	nodePool *sync.Pool
}

func newXTreeListNodePool[V any]() *xTreeListNodePool[V] {
	p := &xTreeListNodePool[V]{
		nodePool: &sync.Pool{
			New: func() any {
				return &xTreeListNode[V]{}
			},
		},
	}
	return p
}

func (p *xTreeListNodePool[V]) loadNode() *xTreeListNode[V] {
	return p.nodePool.Get().(*xTreeListNode[V])
}

// releaseNode scrubs every field so pooled nodes pin no references and
// stale cursors of removed elements fail loudly instead of walking into
// recycled structure.
func (p *xTreeListNodePool[V]) releaseNode(node *xTreeListNode[V]) {
	var zero V
	node.parent, node.left, node.right = nil, nil, nil
	node.val = zero
	node.agg = nil
	node.size = 0
	node.blackHeight = 0
	node.color = Black
	p.nodePool.Put(node)
}
