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

// State is a handle to a single memoized value owned by the node it
// was created under. It is comparable and cheap to copy; the value it
// names lives in the owning Composer, not in the handle.
type State[T any, N any] struct {
	node NodeKey
	id   StateId
	c    *Composer[N]
}

// Get reads the current value and records the calling scope's node as
// a subscriber: if the state is later Set to a different value, every
// subscriber is marked dirty and re-run at the next Recompose. from
// identifies the reading scope.
func Get[T any, N any, S any](from Scope[S, N], st State[T, N]) T {
	if st.c != from.c {
		panicProgrammerError("compose: State read through a Scope from a different Composer than the one that created it")
	}
	c := st.c
	if !c.nodes.Contains(st.node) {
		panicProgrammerError("compose: Get called on a State whose owning node has been unmounted")
	}
	v := c.stateValue(st.node, st.id).(T)
	c.trackRead(from.node, stateKey{Node: st.node, ID: st.id})
	return v
}

// GetUntracked reads the current value without subscribing any scope,
// for reads that must not themselves trigger recomposition, e.g.
// diagnostic dumps or a measure pass that intentionally peeks at a
// value it does not own.
func GetUntracked[T any, N any](st State[T, N]) T {
	return st.c.stateValue(st.node, st.id).(T)
}

// Set stores v as the state's new value and marks it dirty, unless v is
// equal under == to the value already stored, in which case Set is a
// no-op: recomposition is driven by observed state changes, not by
// write volume. T must be comparable to use Set; types that aren't
// should wrap mutation in a pattern that always constructs a distinct
// value (e.g. a new slice header) when the content actually changes.
func Set[T comparable, N any](st State[T, N], v T) {
	c := st.c
	if !c.nodes.Contains(st.node) {
		panicProgrammerError("compose: Set called on a State whose owning node has been unmounted")
	}
	cur, ok := c.states[st.node][st.id]
	if ok && cur.(T) == v {
		return
	}
	c.setStateValue(st.node, st.id, v)
}

// SetFunc stores the result of applying fn to the current value,
// unconditionally marking the state dirty. Use this for types that
// aren't comparable, or when the caller already knows the value
// changed and wants to skip the equality check Set performs.
func SetFunc[T any, N any](st State[T, N], fn func(T) T) {
	c := st.c
	if !c.nodes.Contains(st.node) {
		panicProgrammerError("compose: SetFunc called on a State whose owning node has been unmounted")
	}
	cur := c.stateValue(st.node, st.id).(T)
	c.setStateValue(st.node, st.id, fn(cur))
}

// UseState returns the State handle for s's call site, running init
// once to seed the value the first time this node visits this call
// site and reusing the stored value on every later recomposition.
func UseState[T any, S any, N any](s Scope[S, N], init func() T) State[T, N] {
	loc := callerLoc(0)
	return useStateAt[T](s, StateId{Loc: loc}, init)
}

// UseStateSkip is UseState for DSL authors; see CreateNodeSkip's doc
// comment for the skip convention it shares.
func UseStateSkip[T any, S any, N any](s Scope[S, N], skip int, init func() T) State[T, N] {
	loc := callerLoc(skip)
	return useStateAt[T](s, StateId{Loc: loc}, init)
}

func useStateAt[T any, S any, N any](s Scope[S, N], id StateId, init func() T) State[T, N] {
	c := s.c
	if _, ok := c.states[s.node][id]; !ok {
		c.initStateValue(s.node, id, init())
	}
	return State[T, N]{node: s.node, id: id, c: c}
}
