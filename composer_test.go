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

package compose_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	compose "github.com/cksac/compose-go"
)

type node struct {
	Name     string
	Count    int
	Rendered int
}

func display(n node) string {
	return n.Name
}

// Counter exercises the simplest possible loop: a single state cell
// read and written from the same scope, recomposed repeatedly.
func TestCounterRecomposesOnSet(t *testing.T) {
	r := compose.NewRecomposer(node{Name: "root"})

	var counter compose.State[int, node]
	r.Compose(func(root compose.Scope[node, node]) {
		counter = compose.UseState(root, func() int { return 0 })
		compose.Set(counter, compose.Get(root, counter))
	})
	require.Equal(t, 0, compose.GetUntracked(counter))

	compose.Set(counter, 1)
	r.Recompose()
	assert.Equal(t, 1, compose.GetUntracked(counter))

	compose.Set(counter, 1)
	r.Recompose()
	assert.Equal(t, 1, compose.GetUntracked(counter), "Set to an equal value must not mark anything dirty")
}

// Conditional expansion: a child subtree appears or disappears as a
// gate state flips, via Replace reconciliation at a fixed position.
func TestConditionalExpansion(t *testing.T) {
	r := compose.NewRecomposer(node{Name: "root"})

	var gate compose.State[bool, node]
	build := func(root compose.Scope[node, node]) {
		gate = compose.UseState(root, func() bool { return false })
		if compose.Get(root, gate) {
			compose.CreateNode(root,
				func(_ any) node { return node{Name: "expanded"} },
				func(n node, _ any) node { return n },
				func(compose.Scope[node, node]) {},
			)
		}
	}

	r.Compose(build)
	root := r.RootNode()
	assert.Empty(t, root.Children)

	// gate is read from the root scope itself, so Set marks the root
	// scope dirty and Recompose re-runs build without calling Compose
	// again.
	compose.Set(gate, true)
	r.Recompose()
	root = r.RootNode()
	require.Len(t, root.Children, 1)
	child, ok := r.Node(root.Children[0])
	require.True(t, ok)
	assert.Equal(t, "expanded", child.Data.Name)

	compose.Set(gate, false)
	r.Recompose()
	root = r.RootNode()
	assert.Empty(t, root.Children)
}

// Keyed reorder: children built from a slice keep their identity (and
// therefore their own state) across a reorder, because each iteration
// is keyed by a value carried by the item rather than its position.
func TestKeyedReorderPreservesIdentity(t *testing.T) {
	r := compose.NewRecomposer(node{Name: "root"})

	build := func(root compose.Scope[node, node], order []int) {
		for _, id := range order {
			id := id
			compose.CreateNodeKey(root, id,
				func(_ any) node { return node{Name: itoa(id), Count: id * 10} },
				func(n node, _ any) node { return n },
				func(compose.Scope[node, node]) {},
			)
		}
	}

	r.Compose(func(root compose.Scope[node, node]) { build(root, []int{1, 2, 3}) })
	root := r.RootNode()
	require.Len(t, root.Children, 3)
	firstKeyTwoNode, _ := r.Node(root.Children[1])
	require.Equal(t, "2", firstKeyTwoNode.Data.Name)
	keyTwoKey := root.Children[1]
	before := append([]compose.NodeKey(nil), root.Children...)

	r.Compose(func(root compose.Scope[node, node]) { build(root, []int{3, 2, 1}) })
	root = r.RootNode()
	require.Len(t, root.Children, 3)
	assert.Equal(t, keyTwoKey, root.Children[1], "item keyed 2 keeps its NodeKey across the reorder")
	assert.Equal(t, []compose.NodeKey{before[2], before[1], before[0]}, root.Children, "every keyed item keeps its NodeKey; only the order changes")
	reorderedMiddle, _ := r.Node(root.Children[1])
	assert.Equal(t, "2", reorderedMiddle.Data.Name)
}

// Selective recomposition: two independent state cells, each read by
// its own sibling scope, only recompose the sibling that actually
// depends on the state that changed.
func TestSelectiveRecomposition(t *testing.T) {
	r := compose.NewRecomposer(node{Name: "root"})

	var a, b compose.State[int, node]
	var aRuns, bRuns int

	r.Compose(func(root compose.Scope[node, node]) {
		a = compose.UseState(root, func() int { return 0 })
		b = compose.UseState(root, func() int { return 0 })

		compose.CreateNodeKey(root, 1,
			func(_ any) node { return node{Name: "a"} },
			func(n node, _ any) node { return n },
			func(s compose.Scope[node, node]) {
				aRuns++
				compose.Get(s, a)
			},
		)
		compose.CreateNodeKey(root, 2,
			func(_ any) node { return node{Name: "b"} },
			func(n node, _ any) node { return n },
			func(s compose.Scope[node, node]) {
				bRuns++
				compose.Get(s, b)
			},
		)
	})
	require.Equal(t, 1, aRuns)
	require.Equal(t, 1, bRuns)

	compose.Set(a, 1)
	r.Recompose()
	assert.Equal(t, 2, aRuns, "the scope reading a must re-run")
	assert.Equal(t, 1, bRuns, "the scope reading only b must not re-run")
}

// Slot replacement: a subcomposition slot whose identity changes is
// torn down and rebuilt rather than reused, and a reused slot keeps
// its own payload across the host's recompositions.
func TestSubcomposeSlotReplacement(t *testing.T) {
	r := compose.NewRecomposer(node{Name: "root"})
	slot := compose.SlotIDFromInt(1)

	var root compose.Scope[node, node]
	kind := "circle"
	build := func(s compose.Scope[node, node]) {
		root = s
		k := kind
		compose.SubcomposeSlot(s, slot,
			func(_ any) node { return node{Name: k} },
			func(n node, _ any) node { return n },
			func(compose.Scope[node, node]) {},
		)
	}

	r.Compose(build)
	got, ok := compose.SubcomposeGet(root, slot)
	require.True(t, ok)
	assert.Equal(t, "circle", got.Name)
	firstSlots := compose.SubcomposeSlots(root)
	require.Len(t, firstSlots, 1)

	// Reusing the same identity (same call site, same slot) keeps the
	// slot's node alive; the factory does not run again so the stale
	// closure-captured kind would be invisible here, but update still
	// runs, which is why update, not factory, is the right place for a
	// host that wants every recomposition to refresh the payload.
	r.Compose(build)
	got, ok = compose.SubcomposeGet(root, slot)
	require.True(t, ok)
	assert.Equal(t, "circle", got.Name)

	// A different call site under the same slot number is a different
	// identity: the old node is retired and a new one is built.
	kind = "square"
	buildDifferentSite := func(s compose.Scope[node, node]) {
		root = s
		k := kind
		compose.SubcomposeSlot(s, slot,
			func(_ any) node { return node{Name: k} },
			func(n node, _ any) node { return n },
			func(compose.Scope[node, node]) {},
		)
	}
	r.Compose(buildDifferentSite)
	got, ok = compose.SubcomposeGet(root, slot)
	require.True(t, ok)
	assert.Equal(t, "square", got.Name)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}

// Reading a State through a Scope from a different Composer is a
// programmer error, not a runtime condition a composable could
// reasonably handle, so it panics rather than returning a zero value.
func TestGetPanicsAcrossComposers(t *testing.T) {
	other := compose.NewRecomposer(node{Name: "other-root"})
	var leaked compose.State[int, node]
	other.Compose(func(s compose.Scope[node, node]) {
		leaked = compose.UseState(s, func() int { return 42 })
	})

	r := compose.NewRecomposer(node{Name: "root"})
	assert.Panics(t, func() {
		r.Compose(func(s compose.Scope[node, node]) {
			compose.Get(s, leaked)
		})
	})
}

func TestValidateReportsHealthyTreeAfterReconciliation(t *testing.T) {
	r := compose.NewRecomposer(node{Name: "root"})
	r.Compose(func(root compose.Scope[node, node]) {
		for i := 0; i < 3; i++ {
			compose.CreateNodeKey(root, i,
				func(_ any) node { return node{Name: itoa(i)} },
				func(n node, _ any) node { return n },
				func(compose.Scope[node, node]) {},
			)
		}
	})
	require.NoError(t, r.Validate())

	r.Compose(func(root compose.Scope[node, node]) {
		compose.CreateNodeKey(root, 0,
			func(_ any) node { return node{Name: "0"} },
			func(n node, _ any) node { return n },
			func(compose.Scope[node, node]) {},
		)
	})
	assert.NoError(t, r.Validate(), "dropping children via truncation must leave the arena internally consistent")
}

func TestPrintTreeRendersAllNodes(t *testing.T) {
	r := compose.NewRecomposer(node{Name: "root"})
	r.Compose(func(root compose.Scope[node, node]) {
		compose.CreateNode(root,
			func(_ any) node { return node{Name: "child"} },
			func(n node, _ any) node { return n },
			func(compose.Scope[node, node]) {},
		)
	})

	var sb strings.Builder
	r.PrintTree(&sb, display)
	out := sb.String()
	assert.Contains(t, out, "root")
	assert.Contains(t, out, "child")
}
