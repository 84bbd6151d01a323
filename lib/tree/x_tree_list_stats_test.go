package tree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTreeListWithStats(t *testing.T) {
	// Without a configured meter provider the counters land on the OTEL
	// noop implementation, the hot paths must not care either way.
	tl := NewTreeList[int](WithTreeListStats[int]("ut"))
	for v := 1; v <= 16; v++ {
		tl.PushBack(v)
	}
	tl.RemoveAt(3)

	other := NewTreeList[int](WithTreeListStats[int]("ut-other"))
	other.PushBack(100)
	tl.Merge(other)

	suffix := tl.Split(tl.CursorAt(8))
	require.Equal(t, int64(8), tl.Len())
	require.NoError(t, TreeListValidate[int](tl))
	require.NoError(t, TreeListValidate[int](suffix))
}

func TestDumpTreeList(t *testing.T) {
	tl := NewTreeList[int]()
	buf := &bytes.Buffer{}
	DumpTreeList[int](buf, tl)
	require.Equal(t, "x \n", buf.String())

	for v := 1; v <= 5; v++ {
		tl.PushBack(v)
	}
	buf.Reset()
	DumpTreeList[int](buf, tl)
	out := buf.String()
	require.Contains(t, out, "2,sz5,bh2,B")
	require.Contains(t, out, "3,sz1,bh0,R")
	require.Contains(t, out, "x ")
}
