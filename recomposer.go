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

import "io"

// Recomposer is the entry point most callers use instead of reaching
// into Composer directly: it owns a Composer for a single root payload
// type and exposes the handful of operations a host application needs
// to drive one — compose once, recompose on state change, and read the
// tree back out for rendering or debugging.
type Recomposer[N any] struct {
	c *Composer[N]
}

// NewRecomposer creates a Recomposer whose tree is rooted at root.
func NewRecomposer[N any](root N, opts ...ComposerOption) *Recomposer[N] {
	return &Recomposer[N]{c: newComposer(root, opts...)}
}

// Composer returns the underlying Composer, for callers that need
// operations Recomposer doesn't expose directly (e.g. Node for
// inspecting an arbitrary key).
func (r *Recomposer[N]) Composer() *Composer[N] {
	return r.c
}

// Compose builds the tree for the first time by running content
// against the root scope. Calling Compose again later re-runs the root
// body from scratch; unlike Recompose it skips no reused descendant,
// so each one's update and content run again too.
func (r *Recomposer[N]) Compose(content func(Scope[N, N])) {
	Compose(r.c, content)
}

// Recompose re-runs whatever composables were invalidated by state
// writes since the last Compose or Recompose call. It is a no-op if
// nothing is dirty.
func (r *Recomposer[N]) Recompose() {
	Recompose(r.c)
}

// Context returns the value last installed with SetContext.
func (r *Recomposer[N]) Context() any {
	return r.c.Context()
}

// SetContext installs the value Context returns and composables read
// via Composer.Context(). It is ordinarily set once before the first
// Compose call.
func (r *Recomposer[N]) SetContext(ctx any) {
	r.c.SetContext(ctx)
}

// WithContext runs fn against the composer's current context value
// without exposing the Composer itself, for a caller that only wants
// to read the shared context under one name rather than call Context
// and type-assert inline.
func (r *Recomposer[N]) WithContext(fn func(ctx any)) {
	fn(r.c.Context())
}

// WithContextMut runs fn against the composer's current context value
// and installs whatever fn returns as the new context, the closure
// shaped equivalent of a read-modify-write SetContext. Go has no
// borrow checker to distinguish a shared read from an exclusive write
// the way the runtime this package is modeled on does, so WithContext
// and WithContextMut differ only in whether the result is written
// back; both are plain, unsynchronized reads of c.context, consistent
// with Composer not being safe for concurrent use.
func (r *Recomposer[N]) WithContextMut(fn func(ctx any) any) {
	r.c.SetContext(fn(r.c.Context()))
}

// WithComposer runs fn against the underlying Composer, for call sites
// that want to scope their access to a closure rather than holding a
// *Composer[N] around via Composer().
func (r *Recomposer[N]) WithComposer(fn func(*Composer[N])) {
	fn(r.c)
}

// WithComposerMut is WithComposer under a different name for callers
// that want to signal intent to mutate; Go's *Composer[N] offers no
// mutable/immutable distinction to enforce the difference, so the two
// methods behave identically.
func (r *Recomposer[N]) WithComposerMut(fn func(*Composer[N])) {
	fn(r.c)
}

// Validate checks the tree's internal consistency, for tests that want
// to assert a sequence of Compose/Recompose calls never corrupted the
// arena's parent/child bookkeeping.
func (r *Recomposer[N]) Validate() error {
	return r.c.Validate()
}

// RootNodeKey returns the NodeKey backing the tree's root.
func (r *Recomposer[N]) RootNodeKey() NodeKey {
	return r.c.RootNodeKey()
}

// RootNode returns a read-only snapshot of the root node's current
// payload.
func (r *Recomposer[N]) RootNode() Node[N] {
	n, _ := r.c.Node(r.c.RootNodeKey())
	return n
}

// Node returns a read-only snapshot of the node at key.
func (r *Recomposer[N]) Node(key NodeKey) (Node[N], bool) {
	return r.c.Node(key)
}

// PrintTree writes an ASCII rendering of the whole tree to w, using
// display to render each node's payload.
func (r *Recomposer[N]) PrintTree(w io.Writer, display func(N) string) {
	r.c.PrintTree(w, r.c.RootNodeKey(), display)
}

// WriteDOT writes the whole tree as a Graphviz DOT graph to w.
func (r *Recomposer[N]) WriteDOT(w io.Writer, display func(N) string) {
	r.c.WriteDOT(w, r.c.RootNodeKey(), display)
}

// String renders a one-line summary, for test failure messages.
func (r *Recomposer[N]) String() string {
	return r.c.String()
}
