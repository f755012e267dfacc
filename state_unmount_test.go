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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	compose "github.com/cksac/compose-go"
)

// TestSetOnUnmountedStatePanics builds a child, captures the State
// handle UseState hands back for it, then drives a compose pass that
// no longer visits that call site at all, dropping the child and
// everything it owned. Calling Set against the stale handle afterward
// must not silently recreate a states entry for a node the arena no
// longer knows about; it is a programmer error.
func TestSetOnUnmountedStatePanics(t *testing.T) {
	r := compose.NewRecomposer(node{Name: "root"})

	var leaked compose.State[int, node]
	build := func(keep bool) func(compose.Scope[node, node]) {
		return func(root compose.Scope[node, node]) {
			if keep {
				compose.CreateNodeKey(root, 1, func(_ any) node { return node{Name: "kept"} },
					func(n node, _ any) node { return n },
					func(s compose.Scope[node, node]) {
						leaked = compose.UseState(s, func() int { return 0 })
					},
				)
			}
		}
	}

	r.Compose(build(true))

	r.Compose(build(false))
	require.NoError(t, r.Validate())

	assert.Panics(t, func() {
		compose.Set(leaked, 1)
	}, "Set on a handle whose node was unmounted must panic, not recreate a leaked states entry")

	func() {
		defer func() {
			rec := recover()
			pe, ok := rec.(*compose.ProgrammerError)
			require.True(t, ok, "expected *compose.ProgrammerError, got %T", rec)
			assert.Contains(t, pe.Error(), "unmounted")
		}()
		compose.SetFunc(leaked, func(v int) int { return v + 1 })
		t.Fatal("SetFunc must panic on an unmounted State")
	}()
}
