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

// Scope is a handle into one position of the composition tree. S is a
// phantom type naming the payload kind mounted at this position; it
// never appears in a field, only in the type parameter, so two Scopes
// over different payload kinds are never assignable to each other even
// though they carry the same runtime representation. N is the concrete
// node payload type the whole composer works over.
//
// A Scope carries the NodeKey it currently resolves to directly, rather
// than requiring a lookup by ScopeId: two unrelated call sites that
// happen to share an identical Loc and key (the same shared helper
// function composed from several different parents, say) would
// otherwise collide in a single composer-wide identity table. Carrying
// the resolved NodeKey sidesteps that: identity is still used to decide
// Reuse vs. Replace at a given position, but never to address a node.
//
// A Scope is cheap to copy and carries no lifetime beyond the Composer
// it points into; holding one across composer mutations it didn't
// cause is a programmer error, not something the type system catches.
type Scope[S any, N any] struct {
	id   ScopeId
	node NodeKey
	c    *Composer[N]
}

// ID returns the identity this scope resolved to when it was created.
func (s Scope[S, N]) ID() ScopeId {
	return s.id
}

// Composer returns the composer this scope belongs to, for code that
// needs to drop down to composer-level operations (UseState,
// SubcomposeSlot) without threading a second parameter through every
// call.
func (s Scope[S, N]) Composer() *Composer[N] {
	return s.c
}

// Key scopes body's descendant call sites by k for the duration of the
// call, by pushing k onto the composer's key stack before invoking body
// and popping it on return (even if body panics). Without a Key call,
// sibling nodes built by the same loop body all resolve to the same
// Loc and must be told apart some other way (see CreateNodeKey's
// explicit key parameter); Key lets a caller disambiguate a whole
// subtree at once, e.g. to give every item in a list a stable identity
// derived from the item rather than its position.
func (s Scope[S, N]) Key(k int, body func()) {
	c := s.c
	c.keyStack = append(c.keyStack, k)
	defer func() {
		c.keyStack = c.keyStack[:len(c.keyStack)-1]
	}()
	body()
}

// keyStackTop returns a pointer to the top of c's key stack, or nil if
// the stack is empty, for folding into a freshly captured ScopeId.
func keyStackTop[N any](c *Composer[N]) *int {
	if len(c.keyStack) == 0 {
		return nil
	}
	return &c.keyStack[len(c.keyStack)-1]
}
