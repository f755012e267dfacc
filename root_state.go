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

// ComposeWith builds the tree for the first time, the way Compose does,
// but also seeds a single piece of root-level state and hands the
// caller's root body a State handle for it directly, rather than
// requiring the root body to call UseState itself. This is the
// idiomatic shape for a host application that drives the whole tree
// off one externally-owned value (a counter, a page index, a loaded
// document) and wants a handle to it back without threading a package
// level variable through the closure the way the tests in this module
// do for convenience.
//
// init runs the first time ComposeWith is called from a given call site
// on this Composer; a later call to ComposeWith at the same call site
// reuses the state already seeded, exactly like UseState.
//
// ComposeWith cannot be a method on Recomposer because a method cannot
// introduce a type parameter beyond its receiver's own (R here is
// independent of N); it is a free function for the same reason
// CreateNode and UseState are.
func ComposeWith[R any, N any](c *Composer[N], init func() R, content func(root Scope[N, N], state State[R, N])) State[R, N] {
	loc := callerLoc(0)
	root := RootScope(c)
	st := useStateAt[R](root, StateId{Loc: loc}, init)
	Compose(c, func(s Scope[N, N]) {
		content(s, st)
	})
	return st
}

// RecomposeWith stores newState into the root state ComposeWith
// returned, unconditionally marking it dirty, then runs Recompose.
// Unlike Set, RecomposeWith does not require R to be comparable and
// does not skip the recompose pass for an unchanged value: a host
// driving the tree from outside rarely has a cheap equality check
// available (or wants one) for its own root value, so every call is
// treated as a real change, mirroring SetFunc's unconditional-dirty
// behavior rather than Set's.
func RecomposeWith[R any, N any](st State[R, N], newState R) {
	c := st.c
	if !c.nodes.Contains(st.node) {
		panicProgrammerError("compose: RecomposeWith called on a State whose owning node has been unmounted")
	}
	c.setStateValue(st.node, st.id, newState)
	Recompose(c)
}
