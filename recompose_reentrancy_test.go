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

// TestRecomposeCalledReentrantlyPanics guards against a composable
// that calls Recompose on its own Composer while a pass is already
// underway: doing so would corrupt the in-progress pass's
// child-index cursor and dirty-tracking state, so it must panic
// rather than silently misbehave.
func TestRecomposeCalledReentrantlyPanics(t *testing.T) {
	r := compose.NewRecomposer(node{Name: "root"})
	c := r.Composer()

	var counter compose.State[int, node]
	recurse := false
	r.Compose(func(root compose.Scope[node, node]) {
		counter = compose.UseState(root, func() int { return 0 })
		compose.Get(root, counter)
		if recurse {
			compose.Recompose(c)
		}
	})
	recurse = true

	compose.Set(counter, 1)

	defer func() {
		rec := recover()
		pe, ok := rec.(*compose.ProgrammerError)
		require.True(t, ok, "expected *compose.ProgrammerError, got %T", rec)
		assert.Contains(t, pe.Error(), "re-entrant")
	}()
	r.Recompose()
	t.Fatal("Recompose called from within a running pass must panic")
}
