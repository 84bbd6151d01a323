package tree

import (
	randv2 "math/rand/v2"
	"sync"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/require"

	"github.com/benz9527/xtree/lib/id"
	"github.com/benz9527/xtree/lib/xlog"
)

type checkData struct {
	color RBColor
	val   int
}

func requireTreeListSeq(t *testing.T, tl TreeList[int], expected []checkData) {
	require.Equal(t, int64(len(expected)), tl.Len())
	count := 0
	tl.Foreach(func(rank int64, color RBColor, val int) bool {
		require.Equal(t, expected[rank].color, color)
		require.Equal(t, expected[rank].val, val)
		count++
		return true
	})
	require.Equal(t, len(expected), count)
	require.NoError(t, TreeListValidate[int](tl))
}

func TestTreeListPushBack(t *testing.T) {
	tl := NewTreeList[int]()
	require.True(t, tl.IsEmpty())
	require.Equal(t, int64(0), tl.Len())

	tl.PushBack(1)
	requireTreeListSeq(t, tl, []checkData{
		{Black, 1},
	})

	tl.PushBack(2)
	requireTreeListSeq(t, tl, []checkData{
		{Black, 1}, {Red, 2},
	})

	tl.PushBack(3)
	requireTreeListSeq(t, tl, []checkData{
		{Red, 1}, {Black, 2}, {Red, 3},
	})

	tl.PushBack(4)
	requireTreeListSeq(t, tl, []checkData{
		{Black, 1}, {Black, 2}, {Black, 3}, {Red, 4},
	})

	tl.PushBack(5)
	requireTreeListSeq(t, tl, []checkData{
		{Black, 1}, {Black, 2}, {Red, 3}, {Black, 4}, {Red, 5},
	})

	require.Equal(t, 3, tl.At(2))
	front, ok := tl.Front()
	require.True(t, ok)
	require.Equal(t, 1, front)
	back, ok := tl.Back()
	require.True(t, ok)
	require.Equal(t, 5, back)

	require.Equal(t, 3, tl.RemoveAt(2))
	requireTreeListSeq(t, tl, []checkData{
		{Black, 1}, {Black, 2}, {Black, 4}, {Red, 5},
	})
}

func TestTreeListPushFront(t *testing.T) {
	tl := NewTreeList[int]()
	for _, v := range []int{5, 4, 3, 2, 1} {
		tl.PushFront(v)
		require.NoError(t, TreeListValidate[int](tl))
	}
	requireTreeListSeq(t, tl, []checkData{
		{Red, 1}, {Black, 2}, {Red, 3}, {Black, 4}, {Black, 5},
	})
}

func TestTreeListRemoveAt(t *testing.T) {
	tl := NewTreeList[int]()
	for v := 1; v <= 5; v++ {
		tl.PushBack(v)
	}

	// Remove a black leaf; the far red nephew closes the deficit.
	require.Equal(t, 1, tl.RemoveAt(0))
	requireTreeListSeq(t, tl, []checkData{
		{Black, 2}, {Red, 3}, {Black, 4}, {Black, 5},
	})

	// Remove a red leaf, no rebalance at all.
	require.Equal(t, 3, tl.RemoveAt(1))
	requireTreeListSeq(t, tl, []checkData{
		{Black, 2}, {Black, 4}, {Black, 5},
	})

	// All black around the hole; the sibling repaints red and the whole
	// tree loses one black level.
	require.Equal(t, 5, tl.RemoveAt(2))
	requireTreeListSeq(t, tl, []checkData{
		{Red, 2}, {Black, 4},
	})

	// Remove a black node with a single red child.
	require.Equal(t, 4, tl.RemoveAt(1))
	requireTreeListSeq(t, tl, []checkData{
		{Black, 2},
	})

	require.Equal(t, 2, tl.RemoveAt(0))
	require.True(t, tl.IsEmpty())
	require.Nil(t, tl.Root())

	_, ok := tl.Front()
	require.False(t, ok)
	_, ok = tl.Back()
	require.False(t, ok)
	require.Panics(t, func() {
		tl.RemoveAt(0)
	})
}

func TestTreeListTwoChildrenRemoveKeepsOtherCursors(t *testing.T) {
	tl := NewTreeList[int]()
	cursors := make([]Cursor[int], 0, 5)
	for v := 1; v <= 5; v++ {
		cursors = append(cursors, tl.PushBack(v))
	}

	// Rank 1 holds the root, which owns both children here. Its slot is
	// taken over by the in-order predecessor node, so every remaining
	// cursor keeps pointing at its own element.
	require.Equal(t, 2, tl.RemoveAt(1))
	requireTreeListSeq(t, tl, []checkData{
		{Black, 1}, {Red, 3}, {Black, 4}, {Black, 5},
	})

	require.Equal(t, 1, cursors[0].Value())
	require.Equal(t, int64(0), cursors[0].Rank())
	require.Equal(t, 3, cursors[2].Value())
	require.Equal(t, int64(1), cursors[2].Rank())
	require.Equal(t, 4, cursors[3].Value())
	require.Equal(t, int64(2), cursors[3].Rank())
	require.Equal(t, 5, cursors[4].Value())
	require.Equal(t, int64(3), cursors[4].Rank())
}

func TestTreeListInsertAt(t *testing.T) {
	tl := NewTreeList[int]()
	for v := 1; v <= 5; v++ {
		tl.PushBack(v)
	}

	at := tl.InsertAt(2, 99)
	require.Equal(t, 99, at.Value())
	require.Equal(t, int64(2), at.Rank())
	requireTreeListSeq(t, tl, []checkData{
		{Black, 1}, {Black, 2}, {Red, 99}, {Black, 3}, {Red, 4}, {Black, 5},
	})

	head := tl.InsertAt(0, 0)
	require.Equal(t, int64(0), head.Rank())
	tail := tl.InsertAt(tl.Len(), 100)
	require.Equal(t, tl.Len()-1, tail.Rank())
	require.NoError(t, TreeListValidate[int](tl))
	require.Equal(t, 0, tl.At(0))
	require.Equal(t, 100, tl.At(tl.Len()-1))

	require.Panics(t, func() {
		tl.InsertAt(-1, 7)
	})
	require.Panics(t, func() {
		tl.InsertAt(tl.Len()+1, 7)
	})
}

func TestTreeListInsertBeforeCursor(t *testing.T) {
	tl := NewTreeList[int]()
	for v := 1; v <= 5; v++ {
		tl.PushBack(v)
	}

	// Insert takes the anchor's rank; the anchor shifts one to the right.
	anchor := tl.CursorAt(2)
	at := tl.Insert(anchor, 99)
	require.Equal(t, int64(2), at.Rank())
	require.Equal(t, int64(3), anchor.Rank())
	require.Equal(t, 3, anchor.Value())

	appended := tl.Insert(tl.End(), 77)
	require.Equal(t, tl.Len()-1, appended.Rank())
	require.NoError(t, TreeListValidate[int](tl))

	foreign := NewTreeList[int]()
	foreign.PushBack(1)
	require.Panics(t, func() {
		tl.Insert(foreign.Begin(), 1)
	})
	require.Panics(t, func() {
		tl.Insert(Cursor[int]{}, 1)
	})
}

func TestTreeListRemoveByCursor(t *testing.T) {
	tl := NewTreeList[int]()
	for v := 1; v <= 8; v++ {
		tl.PushBack(v)
	}

	at := tl.CursorAt(4)
	require.Equal(t, 5, tl.Remove(at))
	require.Equal(t, int64(7), tl.Len())
	require.Equal(t, 6, tl.At(4))
	require.NoError(t, TreeListValidate[int](tl))

	require.Panics(t, func() {
		tl.Remove(tl.End())
	})
}

func TestTreeListPopFrontPopBack(t *testing.T) {
	tl := NewTreeList[int]()
	for v := 1; v <= 6; v++ {
		tl.PushBack(v)
	}
	require.Equal(t, 1, tl.PopFront())
	require.Equal(t, 6, tl.PopBack())
	require.Equal(t, int64(4), tl.Len())
	require.NoError(t, TreeListValidate[int](tl))

	for !tl.IsEmpty() {
		tl.PopFront()
	}
	require.Panics(t, func() {
		tl.PopFront()
	})
	require.Panics(t, func() {
		tl.PopBack()
	})
}

func TestTreeListReplaceAndSetValue(t *testing.T) {
	tl := NewTreeList[int]()
	for v := 1; v <= 5; v++ {
		tl.PushBack(v)
	}

	require.Equal(t, 3, tl.Replace(2, 33))
	require.Equal(t, 33, tl.At(2))

	at := tl.CursorAt(4)
	require.Equal(t, 5, tl.SetValue(at, 55))
	require.Equal(t, 55, at.Value())
	require.NoError(t, TreeListValidate[int](tl))

	require.Panics(t, func() {
		tl.Replace(5, 1)
	})
	require.Panics(t, func() {
		tl.SetValue(tl.End(), 1)
	})
}

func TestTreeListForeachDirections(t *testing.T) {
	tl := NewTreeList[int]()
	for v := 0; v < 32; v++ {
		tl.PushBack(v)
	}

	forward := make([]int, 0, 32)
	tl.Foreach(func(rank int64, color RBColor, val int) bool {
		require.Equal(t, int64(len(forward)), rank)
		forward = append(forward, val)
		return true
	})
	require.Len(t, forward, 32)

	backward := make([]int, 0, 32)
	tl.ReverseForeach(func(rank int64, color RBColor, val int) bool {
		require.Equal(t, int64(31-len(backward)), rank)
		backward = append(backward, val)
		return true
	})
	require.Len(t, backward, 32)
	for i := 0; i < 32; i++ {
		require.Equal(t, forward[i], backward[31-i])
	}

	// Early stop.
	visited := 0
	tl.Foreach(func(rank int64, color RBColor, val int) bool {
		visited++
		return rank < 4
	})
	require.Equal(t, 5, visited)
}

func TestTreeListClone(t *testing.T) {
	tl := NewTreeList[int]()
	for v := 1; v <= 33; v++ {
		tl.PushBack(v)
	}

	cloned := tl.Clone()
	require.Equal(t, tl.Len(), cloned.Len())
	require.NoError(t, TreeListValidate[int](cloned))
	for i := int64(0); i < tl.Len(); i++ {
		require.Equal(t, tl.At(i), cloned.At(i))
	}

	// Mutations on either side never leak to the other.
	cloned.RemoveAt(0)
	cloned.PushBack(-1)
	require.Equal(t, 1, tl.At(0))
	require.Equal(t, int64(33), tl.Len())
	tl.Release()
	require.Equal(t, int64(33), cloned.Len())
	require.NoError(t, TreeListValidate[int](cloned))

	empty := NewTreeList[int]().Clone()
	require.True(t, empty.IsEmpty())
}

func TestTreeListSwap(t *testing.T) {
	a := NewTreeList[int]()
	b := NewTreeList[int]()
	for v := 1; v <= 3; v++ {
		a.PushBack(v)
	}
	b.PushBack(9)

	a.Swap(b)
	require.Equal(t, int64(1), a.Len())
	require.Equal(t, 9, a.At(0))
	require.Equal(t, int64(3), b.Len())
	require.Equal(t, 1, b.At(0))

	a.Swap(a)
	require.Equal(t, int64(1), a.Len())
}

func TestTreeListRelease(t *testing.T) {
	tl := NewTreeList[int]()
	for v := 0; v < 100; v++ {
		tl.PushBack(v)
	}
	tl.Release()
	require.True(t, tl.IsEmpty())
	require.Equal(t, int64(0), tl.Len())

	// The released list stays usable.
	tl.PushBack(1)
	require.Equal(t, int64(1), tl.Len())
	require.NoError(t, TreeListValidate[int](tl))
}

func TestNewTreeListFromSlice(t *testing.T) {
	for n := 0; n <= 33; n++ {
		values := make([]int, 0, n)
		for v := 0; v < n; v++ {
			values = append(values, v)
		}
		tl := NewTreeListFromSlice[int](values)
		require.Equal(t, int64(n), tl.Len())
		require.NoError(t, TreeListValidate[int](tl), "n=%d", n)
		tl.Foreach(func(rank int64, color RBColor, val int) bool {
			require.Equal(t, values[rank], val)
			return true
		})
	}
}

// requireSubtreeSums rechecks the aggregate of every node against a
// bottom up recompute.
func requireSubtreeSums(t *testing.T, node TreeListNode[int]) int {
	if isNilLeaf[int](node) {
		return 0
	}
	want := node.Value() + requireSubtreeSums(t, node.Left()) + requireSubtreeSums(t, node.Right())
	require.Equal(t, want, node.Aggregate())
	return want
}

func TestTreeListAggregation(t *testing.T) {
	sumHook := func(node TreeListNode[int]) {
		sum := node.Value()
		if l := node.Left(); l != nil {
			sum += l.Aggregate().(int)
		}
		if r := node.Right(); r != nil {
			sum += r.Aggregate().(int)
		}
		node.SetAggregate(sum)
	}
	tl := NewTreeList[int](WithTreeListAggregation[int](sumHook))

	total := 0
	for v := 1; v <= 64; v++ {
		tl.PushBack(v)
		total += v
	}
	require.Equal(t, total, tl.Root().Aggregate())
	requireSubtreeSums(t, tl.Root())

	total += 1000 - tl.Replace(10, 1000)
	require.Equal(t, total, tl.Root().Aggregate())

	total -= tl.RemoveAt(20)
	require.Equal(t, total, tl.Root().Aggregate())
	requireSubtreeSums(t, tl.Root())

	// Removing an inner node with two children splices the predecessor
	// into its place; the hook has to settle the whole spliced path.
	rootRank := tl.End().LeftChild().Rank()
	total -= tl.RemoveAt(rootRank)
	require.Equal(t, total, tl.Root().Aggregate())
	requireSubtreeSums(t, tl.Root())

	total += 7
	tl.InsertAt(tl.Len()/2, 7)
	require.Equal(t, total, tl.Root().Aggregate())
	requireSubtreeSums(t, tl.Root())

	other := NewTreeList[int](WithTreeListAggregation[int](sumHook))
	for v := 500; v < 516; v++ {
		other.PushBack(v)
		total += v
	}
	tl.Merge(other)
	require.Equal(t, total, tl.Root().Aggregate())
	requireSubtreeSums(t, tl.Root())
	require.NoError(t, TreeListValidate[int](tl))

	suffix := tl.Split(tl.CursorAt(tl.Len() / 2))
	requireSubtreeSums(t, tl.Root())
	requireSubtreeSums(t, suffix.Root())
	require.Equal(t, total, tl.Root().Aggregate().(int)+suffix.Root().Aggregate().(int))

	cloned := tl.Clone()
	requireSubtreeSums(t, cloned.Root())
}

func TestTreeListRandomSoak(t *testing.T) {
	idGen, err := id.MonotonicNonZeroID()
	require.NoError(t, err)

	tl := NewTreeList[uint64]()
	mirror := make([]uint64, 0, 512)
	rng := randv2.New(randv2.NewPCG(7, 9))

	for round := 0; round < 2000; round++ {
		switch op := rng.IntN(10); {
		case op < 5 || len(mirror) == 0:
			rank := rng.Int64N(int64(len(mirror)) + 1)
			val := idGen.Number()
			tl.InsertAt(rank, val)
			mirror = append(mirror[:rank], append([]uint64{val}, mirror[rank:]...)...)
		case op < 8:
			rank := rng.Int64N(int64(len(mirror)))
			require.Equal(t, mirror[rank], tl.RemoveAt(rank))
			mirror = append(mirror[:rank], mirror[rank+1:]...)
		default:
			rank := rng.Int64N(int64(len(mirror)))
			require.Equal(t, mirror[rank], tl.At(rank))
		}

		if round%100 == 99 {
			require.Equal(t, int64(len(mirror)), tl.Len())
			require.NoError(t, TreeListValidate[uint64](tl))
			tl.Foreach(func(rank int64, color RBColor, val uint64) bool {
				require.Equal(t, mirror[rank], val)
				return true
			})
		}
	}
	require.NoError(t, TreeListValidate[uint64](tl))
}

func TestTreeListConcurrentSoakByAntsPool(t *testing.T) {
	logger := xlog.NewXLogger(
		xlog.WithXLoggerLevel(xlog.LogLevelError),
		xlog.WithXLoggerConsoleCore(),
	)
	pool, err := ants.NewPool(4, ants.WithLogger(xlog.NewAntsXLogger(logger)))
	require.NoError(t, err)
	defer pool.Release()

	// One list per task; a tree list is not safe for concurrent use.
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for task := 0; task < 8; task++ {
		wg.Add(1)
		seed := uint64(task)
		require.NoError(t, pool.Submit(func() {
			defer wg.Done()
			rng := randv2.New(randv2.NewPCG(seed, seed+1))
			tl := NewTreeList[uint64]()
			for v := uint64(0); v < 512; v++ {
				tl.InsertAt(rng.Int64N(tl.Len()+1), v)
			}
			if err := TreeListValidate[uint64](tl); err != nil {
				errs <- err
				return
			}
			for !tl.IsEmpty() {
				tl.RemoveAt(rng.Int64N(tl.Len()))
			}
		}))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func BenchmarkTreeListPushBack(b *testing.B) {
	tl := NewTreeList[int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tl.PushBack(i)
	}
}

func BenchmarkTreeListAt(b *testing.B) {
	tl := NewTreeList[int]()
	for i := 0; i < 4096; i++ {
		tl.PushBack(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tl.At(int64(i & 4095))
	}
}

func BenchmarkTreeListInsertAtRandom(b *testing.B) {
	rng := randv2.New(randv2.NewPCG(1, 2))
	tl := NewTreeList[int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tl.InsertAt(rng.Int64N(tl.Len()+1), i)
	}
}
