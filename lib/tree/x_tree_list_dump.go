package tree

import (
	"io"

	"github.com/fatih/color"
)

var (
	dumpRedPen   = color.New(color.FgRed)
	dumpBlackPen = color.New(color.FgHiBlack)
)

// DumpTreeList writes a parenthesized preorder sketch of the whole tree
// list to w, one line in total. Every node prints as
// value,sz<size>,bh<black height>,<B|R> followed by its two subtrees in
// parentheses, an absent child prints as x. Red nodes are colorized so
// a broken rebalance stands out in test logs.
func DumpTreeList[V any](w io.Writer, tl TreeList[V]) {
	dumpTreeListNode[V](w, tl.Root())
	_, _ = io.WriteString(w, "\n")
}

func dumpTreeListNode[V any](w io.Writer, node TreeListNode[V]) {
	if isNilLeaf[V](node) {
		_, _ = io.WriteString(w, "x ")
		return
	}

	pen, label := dumpBlackPen, 'B'
	if isRed[V](node) {
		pen, label = dumpRedPen, 'R'
	}
	_, _ = pen.Fprintf(w, "%v,sz%d,bh%d,%c ", node.Value(), node.Size(), node.BlackHeight(), label)

	if !isNilLeaf[V](node.Left()) || !isNilLeaf[V](node.Right()) {
		_, _ = io.WriteString(w, "(")
		dumpTreeListNode[V](w, node.Left())
		dumpTreeListNode[V](w, node.Right())
		_, _ = io.WriteString(w, ") ")
	}
}
