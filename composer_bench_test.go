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

	compose "github.com/cksac/compose-go"
)

type benchNode struct {
	Name string
}

// BenchmarkComposeWideTree measures the cost of a single initial
// Compose over a flat list of siblings, the shape a long list view
// produces.
func BenchmarkComposeWideTree(b *testing.B) {
	const width = 1000
	for i := 0; i < b.N; i++ {
		r := compose.NewRecomposer(benchNode{Name: "root"}, compose.WithCapacityHint(width+1))
		r.Compose(func(root compose.Scope[benchNode, benchNode]) {
			for k := 0; k < width; k++ {
				compose.CreateNodeKey(root, k,
					func(_ any) benchNode { return benchNode{Name: "item"} },
					func(n benchNode, _ any) benchNode { return n },
					func(compose.Scope[benchNode, benchNode]) {},
				)
			}
		})
	}
}

// BenchmarkRecomposeSingleState measures the cost of recomposing after
// a single leaf's state changes in an otherwise large, untouched tree,
// the common case a reactive runtime is optimizing for.
func BenchmarkRecomposeSingleState(b *testing.B) {
	const width = 1000
	r := compose.NewRecomposer(benchNode{Name: "root"}, compose.WithCapacityHint(width+1))

	var target compose.State[int, benchNode]
	r.Compose(func(root compose.Scope[benchNode, benchNode]) {
		for k := 0; k < width; k++ {
			k := k
			compose.CreateNodeKey(root, k,
				func(_ any) benchNode { return benchNode{Name: "item"} },
				func(n benchNode, _ any) benchNode { return n },
				func(s compose.Scope[benchNode, benchNode]) {
					st := compose.UseState(s, func() int { return 0 })
					compose.Get(s, st)
					if k == width/2 {
						target = st
					}
				},
			)
		}
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		compose.SetFunc(target, func(v int) int { return v + 1 })
		r.Recompose()
	}
}
