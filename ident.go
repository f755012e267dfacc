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
	"hash/fnv"

	"github.com/cksac/compose-go/internal/ident"
)

// ScopeId distinguishes sibling scopes that share a Loc via an integer
// key, combined with the composer's key stack (see foldKey). Two scopes
// with equal ScopeId are the same scope across recompositions.
type ScopeId struct {
	Loc Loc
	Key int
}

func (s ScopeId) String() string {
	return fmt.Sprintf("%v-%d", s.Loc, s.Key)
}

// StateId identifies a use_state call site. It is the Loc of that call;
// two use_state calls from the same scope at the same Loc return the
// same state handle.
type StateId struct {
	Loc Loc
}

func (s StateId) String() string {
	return s.Loc.String()
}

// NodeKey is a stable arena handle issued by the composer's node store.
// Node identity is by NodeKey, independent of ScopeId: a Replace at a
// slot retires the old NodeKey and mints a new one, even though the
// ScopeId at that slot changes right along with it.
type NodeKey = ident.NodeKey

// SlotId is a 64-bit identity supplied by the caller to address a named
// subcomposition slot.
type SlotId struct {
	raw uint64
}

// SlotIDFromInt builds a SlotId from an integer.
func SlotIDFromInt(i int64) SlotId {
	return SlotId{raw: uint64(i)}
}

// SlotIDFromRaw builds a SlotId directly from a 64-bit value.
func SlotIDFromRaw(raw uint64) SlotId {
	return SlotId{raw: raw}
}

// SlotIDFromString builds a SlotId by hashing a string with FNV-1a.
// Collisions between distinct strings are possible but vanishingly
// unlikely for realistic slot name sets; a collision inside a single
// subcomposition entry is defined behavior, not an error: the later
// registration simply wins.
func SlotIDFromString(s string) SlotId {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return SlotId{raw: h.Sum64()}
}

func (s SlotId) String() string {
	return fmt.Sprintf("slot(%d)", s.raw)
}

// asKey folds a SlotId down to the int key space ScopeId.Key uses.
func (s SlotId) asKey() int {
	return int(uint32(s.raw) ^ uint32(s.raw>>32))
}

// foldKey combines a scope's natural key with the top of the composer's
// key stack by XORing the base key against the stack top, or leaving
// the base key unchanged if the stack is empty. This is deterministic
// and stable across recompositions, since the key stack at a given call
// site depends only on the keys pushed by enclosing Key calls, never on
// execution history.
func foldKey(base int, stackTop *int) int {
	if stackTop == nil {
		return base
	}
	return base ^ *stackTop
}
