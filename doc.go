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

// Package compose builds and maintains a tree of nodes by re-running
// plain Go functions against it, the way a retained-mode UI runtime
// keeps a tree of views in sync with a render function: a composable
// is a function that builds some of the tree, state is the only thing
// that makes re-running it ever change anything, and a recomposition
// only re-runs the composables downstream of state that actually
// changed.
//
// Identity across runs is positional: a Scope's identity is derived
// from the source line that created it plus an optional caller-supplied
// key, not from an explicit handle the caller has to keep around. Two
// composables called from the same call site resolve to the same
// Scope across recompositions unless Scope.Key or CreateNodeKey is used
// to tell them apart, which matters for anything built inside a loop.
//
// The package has no goroutines, no channels, and no background work:
// a Composer is driven entirely by explicit Compose and Recompose
// calls on whatever goroutine the caller chooses, one call at a time.
package compose
