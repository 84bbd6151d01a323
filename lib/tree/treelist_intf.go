package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// go:generate go run golang.org/x/tools/cmd/stringer@latest -type=RBColor
// Execute the command `go generate ./...` in the project root directory path.
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

// go:generate go run golang.org/x/tools/cmd/stringer@latest -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

// TreeListNode is the read view of a single tree list node. It is mainly
// useful for aggregation hooks, validators and debug dumps. The zero rank
// element of a subtree is the leftmost node of that subtree.
type TreeListNode[V any] interface {
	// HasValue reports whether this node carries an element. Only the
	// sentinel head returns false.
	HasValue() bool
	Value() V
	Color() RBColor
	// Size is the number of elements stored in the subtree rooted at
	// this node, the node itself included.
	Size() int64
	// BlackHeight is the number of black nodes on any downward path
	// from this node (inclusive) to an empty leaf position.
	BlackHeight() uint8
	// Aggregate is the user maintained summary of this node's subtree.
	// It stays nil unless the list was built with an aggregation hook.
	Aggregate() any
	SetAggregate(agg any)
	Left() TreeListNode[V]
	Right() TreeListNode[V]
	Parent() TreeListNode[V]
}

// TreeListAggregation recomputes the aggregate of node from node's value
// and the aggregates of node's children. It runs after the children are
// up to date, on every node whose subtree changed. The hook must only
// read through the TreeListNode views it is handed.
type TreeListAggregation[V any] func(node TreeListNode[V])

// TreeList is a sequence addressed by rank. Lookup, insertion and removal
// by rank or cursor run in O(log n). Split and merge relink whole subtrees
// instead of moving elements one by one.
//
// A TreeList is not safe for concurrent use. Cursors stay valid across
// mutations of other elements, including merges and splits that carry
// their element into another TreeList.
type TreeList[V any] interface {
	Len() int64
	IsEmpty() bool
	Root() TreeListNode[V]
	// Front and Back return the first and last element without removing
	// them. The second result is false for an empty list.
	Front() (V, bool)
	Back() (V, bool)
	// At returns the element of the given rank, counted from zero.
	At(rank int64) V
	// Replace stores val at the given rank and returns the old element.
	Replace(rank int64, val V) V
	// SetValue stores val at the cursor position and returns the old
	// element. It lives on the list rather than the cursor so the
	// aggregation hook can run on the changed path.
	SetValue(at Cursor[V], val V) V
	PushFront(val V) Cursor[V]
	PushBack(val V) Cursor[V]
	PopFront() V
	PopBack() V
	// Insert places val immediately before the element at, so that the
	// new element takes at's rank. Inserting at End appends.
	Insert(at Cursor[V], val V) Cursor[V]
	InsertAt(rank int64, val V) Cursor[V]
	// Remove detaches the element at and returns its value. Only
	// cursors of the removed element become invalid.
	Remove(at Cursor[V]) V
	RemoveAt(rank int64) V
	Begin() Cursor[V]
	End() Cursor[V]
	RBegin() ReverseCursor[V]
	REnd() ReverseCursor[V]
	CursorAt(rank int64) Cursor[V]
	// PartitionBound returns a cursor to the first element on which pred
	// reports false, assuming pred is true on a prefix of the sequence
	// and false on the rest. It returns End when pred holds everywhere.
	PartitionBound(pred func(val V) bool) Cursor[V]
	// PartitionBoundAt is PartitionBound with cursor access, so pred can
	// inspect subtree sizes and aggregates while it walks.
	PartitionBoundAt(pred func(at Cursor[V]) bool) Cursor[V]
	Foreach(action func(rank int64, color RBColor, val V) bool)
	ReverseForeach(action func(rank int64, color RBColor, val V) bool)
	// Clone builds an independent deep copy sharing no nodes with the
	// receiver. Elements are copied by assignment.
	Clone() TreeList[V]
	Swap(other TreeList[V])
	// Merge appends every element of other to the receiver and leaves
	// other empty. Cursors of both lists stay valid and address the
	// merged list afterwards.
	Merge(other TreeList[V])
	// MergePivot concatenates receiver, pivot and other into the
	// receiver, leaves other empty and returns a cursor to pivot.
	MergePivot(other TreeList[V], pivot V) Cursor[V]
	// Split removes the suffix starting at the element at and returns it
	// as a new TreeList. Splitting at End returns an empty list.
	Split(at Cursor[V]) TreeList[V]
	// SplitRemove splits like Split but discards the element at instead
	// of making it the head of the suffix, and returns its value.
	SplitRemove(at Cursor[V]) (TreeList[V], V)
	Release()
}

// SortedTreeList keeps its elements ordered by weight and locates them by
// binary search over subtree sizes, so ordered insertion, rank queries and
// bound lookups all run in O(log n).
type SortedTreeList[W infra.OrderedKey] interface {
	Len() int64
	IsEmpty() bool
	// Insert places w behind its equal weights and returns its cursor.
	Insert(w W) Cursor[W]
	// LowerBound returns a cursor to the first element not ordered
	// before w, or End if all elements are ordered before w.
	LowerBound(w W) Cursor[W]
	// UpperBound returns a cursor to the first element ordered strictly
	// behind w, or End if there is none.
	UpperBound(w W) Cursor[W]
	Contains(w W) bool
	// RankOf returns the number of elements ordered before w.
	RankOf(w W) int64
	At(rank int64) W
	// RemoveOne removes one element equal to w and reports whether an
	// element was removed.
	RemoveOne(w W) bool
	Foreach(action func(rank int64, w W) bool)
	// List exposes the underlying TreeList. Mutating it directly may
	// break the sorted order.
	List() TreeList[W]
}
