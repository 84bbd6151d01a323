package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// xSortedTreeList keeps its elements ordered by weight on top of a plain
// rank addressed tree list. Every ordered operation is resolved through
// one partition bound descent, so the adapter adds no bookkeeping of its
// own and the underlying list stays usable for rank access.
type xSortedTreeList[W infra.OrderedKey] struct {
	list   TreeList[W]
	isDesc bool
}

func (stl *xSortedTreeList[W]) weightCompare(w1, w2 W) int64 {
	if w1 == w2 {
		return 0
	} else if w1 < w2 {
		if !stl.isDesc {
			return -1
		}
		return 1
	} else {
		if !stl.isDesc {
			return 1
		}
		return -1
	}
}

func (stl *xSortedTreeList[W]) Len() int64 {
	return stl.list.Len()
}

func (stl *xSortedTreeList[W]) IsEmpty() bool {
	return stl.list.IsEmpty()
}

// Insert places w in front of the first element ordered strictly behind
// it. Equal weights keep their insertion order this way.
func (stl *xSortedTreeList[W]) Insert(w W) Cursor[W] {
	return stl.list.Insert(stl.UpperBound(w), w)
}

func (stl *xSortedTreeList[W]) LowerBound(w W) Cursor[W] {
	return stl.list.PartitionBound(func(val W) bool {
		return stl.weightCompare(val, w) < 0
	})
}

func (stl *xSortedTreeList[W]) UpperBound(w W) Cursor[W] {
	return stl.list.PartitionBound(func(val W) bool {
		return stl.weightCompare(val, w) <= 0
	})
}

func (stl *xSortedTreeList[W]) Contains(w W) bool {
	at := stl.LowerBound(w)
	return !at.AtEnd() && stl.weightCompare(at.Value(), w) == 0
}

func (stl *xSortedTreeList[W]) RankOf(w W) int64 {
	return stl.LowerBound(w).Rank()
}

func (stl *xSortedTreeList[W]) At(rank int64) W {
	return stl.list.At(rank)
}

func (stl *xSortedTreeList[W]) RemoveOne(w W) bool {
	at := stl.LowerBound(w)
	if at.AtEnd() || stl.weightCompare(at.Value(), w) != 0 {
		return false
	}
	stl.list.Remove(at)
	return true
}

func (stl *xSortedTreeList[W]) Foreach(action func(rank int64, w W) bool) {
	stl.list.Foreach(func(rank int64, _ RBColor, val W) bool {
		return action(rank, val)
	})
}

func (stl *xSortedTreeList[W]) List() TreeList[W] {
	return stl.list
}

type SortedTreeListOpt[W infra.OrderedKey] func(*xSortedTreeList[W])

func WithSortedTreeListDesc[W infra.OrderedKey]() SortedTreeListOpt[W] {
	return func(stl *xSortedTreeList[W]) {
		stl.isDesc = true
	}
}

func NewSortedTreeList[W infra.OrderedKey](opts ...SortedTreeListOpt[W]) SortedTreeList[W] {
	stl := &xSortedTreeList[W]{
		list:   NewTreeList[W](),
		isDesc: false,
	}

	for _, o := range opts {
		o(stl)
	}
	return stl
}
