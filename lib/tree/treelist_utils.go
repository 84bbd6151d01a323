package tree

import (
	"go.uber.org/multierr"
)

type TreeListErr string

func (err TreeListErr) Error() string {
	return string(err)
}

const (
	ErrTreeListRedViolation         TreeListErr = "treelist red violation"
	ErrTreeListBlackViolation       TreeListErr = "treelist black violation"
	ErrTreeListSizeViolation        TreeListErr = "treelist size violation"
	ErrTreeListBlackHeightViolation TreeListErr = "treelist black height violation"
)

func isBlack[V any](node TreeListNode[V]) bool {
	return isNilLeaf[V](node) || node.Color() == Black
}

func isRed[V any](node TreeListNode[V]) bool {
	return !isNilLeaf[V](node) && node.Color() == Red
}

func isNilLeaf[V any](node TreeListNode[V]) bool {
	return node == nil
}

func isRoot[V any](node TreeListNode[V]) bool {
	return node != nil && node.Parent() == nil
}

func blackDepthTo[V any](target, to TreeListNode[V]) int {
	depth := 0
	for aux := target; aux != to; aux = aux.Parent() {
		if isBlack[V](aux) {
			depth++
		}
	}
	return depth
}

// treelist rule validation utilities. The checked properties are the
// classic red black tree rules plus the two per node annotations this
// package maintains on top of them, subtree sizes and black heights.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

// Inorder traversal to validate the red rule: a red node never has a
// red parent or a red child.
func RedViolationValidate[V any](tl TreeList[V]) error {
	size := tl.Len()
	var aux TreeListNode[V] = tl.Root()
	if size < 0 || aux == nil {
		return nil
	}

	stack := make([]TreeListNode[V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; !isNilLeaf[V](aux); aux = aux.Left() {
		stack = append(stack, aux)
	}

	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; isRed[V](aux) {
			if (!isRoot[V](aux.Parent()) && isRed[V](aux.Parent())) ||
				(isRed[V](aux.Left()) || isRed[V](aux.Right())) {
				return ErrTreeListRedViolation
			}
		}

		stack = stack[:size-1]
		if aux.Right() != nil {
			for aux = aux.Right(); aux != nil; aux = aux.Left() {
				stack = append(stack, aux)
			}
		}
	}
	return nil
}

// BFS traversal to load all leaves.
func bfsLeaves[V any](tl TreeList[V]) []TreeListNode[V] {
	size := tl.Len()
	var aux TreeListNode[V] = tl.Root()
	if size < 0 || isNilLeaf[V](aux) {
		return nil
	}

	leaves := make([]TreeListNode[V], 0, size>>1+1)
	stack := make([]TreeListNode[V], 0, size>>1)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, aux)

	for len(stack) > 0 {
		aux = stack[0]
		l, r := aux.Left(), aux.Right()
		if /* nil leaves, keep one */ isNilLeaf[V](l) || isNilLeaf[V](r) {
			leaves = append(leaves, aux)
		}
		if !isNilLeaf[V](l) {
			stack = append(stack, l)
		}
		if !isNilLeaf[V](r) {
			stack = append(stack, r)
		}
		stack = stack[1:]
	}
	return leaves
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [f]
			/  \
		 <c>    [h]
		 / \    /  \
	  [a] [d] [g] [j]
	  /            /
	<b>          [i]

2-3-4 tree like:

	       <c> --- [f] --- <h>
		  /  \            /    \
		 /    \          /      \
	  <b>-[a][d]      [g]  <i>-[j]

Each leaf node to root node black depth are equal.
*/
func BlackViolationValidate[V any](tl TreeList[V]) error {
	leaves := bfsLeaves[V](tl)
	if leaves == nil {
		return nil
	}

	blackDepth := blackDepthTo[V](leaves[0], tl.Root())
	for i := 1; i < len(leaves); i++ {
		if blackDepthTo[V](leaves[i], tl.Root()) != blackDepth {
			return ErrTreeListBlackViolation
		}
	}
	return nil
}

// Inorder traversal to validate the subtree sizes that rank addressing
// trusts blindly: every node must count its children plus itself.
func SizeViolationValidate[V any](tl TreeList[V]) error {
	size := tl.Len()
	var aux TreeListNode[V] = tl.Root()
	if size < 0 || aux == nil {
		return nil
	}

	stack := make([]TreeListNode[V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; !isNilLeaf[V](aux); aux = aux.Left() {
		stack = append(stack, aux)
	}

	total := int64(0)
	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		aux = stack[size-1]
		want := int64(1)
		if l := aux.Left(); l != nil {
			want += l.Size()
		}
		if r := aux.Right(); r != nil {
			want += r.Size()
		}
		if aux.Size() != want {
			return ErrTreeListSizeViolation
		}
		total++

		stack = stack[:size-1]
		if aux.Right() != nil {
			for aux = aux.Right(); aux != nil; aux = aux.Left() {
				stack = append(stack, aux)
			}
		}
	}

	if total != tl.Len() {
		return ErrTreeListSizeViolation
	}
	return nil
}

// Inorder traversal to validate the stored black heights against the
// children: both child subtrees must agree and the node adds one level
// when it is black. Merge relies on these fields instead of measuring.
func BlackHeightViolationValidate[V any](tl TreeList[V]) error {
	size := tl.Len()
	var aux TreeListNode[V] = tl.Root()
	if size < 0 || aux == nil {
		return nil
	}

	stack := make([]TreeListNode[V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; !isNilLeaf[V](aux); aux = aux.Left() {
		stack = append(stack, aux)
	}

	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		aux = stack[size-1]
		var lbh, rbh uint8
		if l := aux.Left(); l != nil {
			lbh = l.BlackHeight()
		}
		if r := aux.Right(); r != nil {
			rbh = r.BlackHeight()
		}
		if lbh != rbh {
			return ErrTreeListBlackHeightViolation
		}
		want := lbh
		if isBlack[V](aux) {
			want++
		}
		if aux.BlackHeight() != want {
			return ErrTreeListBlackHeightViolation
		}

		stack = stack[:size-1]
		if aux.Right() != nil {
			for aux = aux.Right(); aux != nil; aux = aux.Left() {
				stack = append(stack, aux)
			}
		}
	}
	return nil
}

// TreeListValidate runs every structural check and reports all broken
// properties at once.
func TreeListValidate[V any](tl TreeList[V]) error {
	return multierr.Combine(
		RedViolationValidate[V](tl),
		BlackViolationValidate[V](tl),
		SizeViolationValidate[V](tl),
		BlackHeightViolationValidate[V](tl),
	)
}
