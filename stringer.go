// Copyright (c) 2024 The compose-go Authors.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package compose

import (
	"fmt"
	"io"
)

// String renders a one-line summary of the composer's size, for use in
// test failure messages and ad-hoc debugging.
func (c *Composer[N]) String() string {
	return fmt.Sprintf("Composer{nodes: %d}", c.nodes.Len())
}

// PrintTree writes an ASCII rendering of the tree rooted at key to w,
// using display to render each node's payload. Children print in
// their current positional order, followed by any subcomposition slots
// the node has composed, labeled by slot.
func (c *Composer[N]) PrintTree(w io.Writer, key NodeKey, display func(N) string) {
	c.printTree(w, key, "", true, display)
}

func (c *Composer[N]) printTree(w io.Writer, key NodeKey, prefix string, isLast bool, display func(N) string) {
	entry, ok := c.nodes.Get(key)
	if !ok {
		return
	}
	branch := "├── "
	nextPrefix := prefix + "│   "
	if isLast {
		branch = "└── "
		nextPrefix = prefix + "    "
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, branch, display(entry.Data))

	children := c.nodes.Children(key)
	slots := c.subcompositionSlotKeys(key)
	total := len(children) + len(slots)
	i := 0
	for _, child := range children {
		i++
		c.printTree(w, child, nextPrefix, i == total, display)
	}
	for _, slot := range slots {
		i++
		nodeKey := c.subcompositions[key].slots[slot]
		c.printLabeledTree(w, nodeKey, nextPrefix, i == total, fmt.Sprintf("[%s] ", slot), display)
	}
}

func (c *Composer[N]) printLabeledTree(w io.Writer, key NodeKey, prefix string, isLast bool, label string, display func(N) string) {
	entry, ok := c.nodes.Get(key)
	if !ok {
		return
	}
	branch := "├── "
	nextPrefix := prefix + "│   "
	if isLast {
		branch = "└── "
		nextPrefix = prefix + "    "
	}
	fmt.Fprintf(w, "%s%s%s%s\n", prefix, branch, label, display(entry.Data))

	children := c.nodes.Children(key)
	for i, child := range children {
		c.printTree(w, child, nextPrefix, i == len(children)-1, display)
	}
}

func (c *Composer[N]) subcompositionSlotKeys(key NodeKey) []SlotId {
	entry := c.subcompositions[key]
	if entry == nil {
		return nil
	}
	return entry.order
}

// WriteDOT writes the tree rooted at key as a Graphviz DOT graph to w,
// one node per composed payload and one edge per parent/child or
// host/slot relationship, for visualizing a composition that's grown
// too large to read as ASCII.
func (c *Composer[N]) WriteDOT(w io.Writer, key NodeKey, display func(N) string) {
	fmt.Fprintln(w, "digraph compose {")
	c.writeDOTNode(w, key, display)
	fmt.Fprintln(w, "}")
}

func (c *Composer[N]) writeDOTNode(w io.Writer, key NodeKey, display func(N) string) {
	entry, ok := c.nodes.Get(key)
	if !ok {
		return
	}
	fmt.Fprintf(w, "  %q [label=%q];\n", key.String(), display(entry.Data))
	for _, child := range c.nodes.Children(key) {
		fmt.Fprintf(w, "  %q -> %q;\n", key.String(), child.String())
		c.writeDOTNode(w, child, display)
	}
	if entry := c.subcompositions[key]; entry != nil {
		for _, slot := range entry.order {
			nodeKey := entry.slots[slot]
			fmt.Fprintf(w, "  %q -> %q [label=%q, style=dashed];\n", key.String(), nodeKey.String(), slot.String())
			c.writeDOTNode(w, nodeKey, display)
		}
	}
}
