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

// subcompositionEntry tracks the named slots a host node has composed,
// independent of the host's own positional children: a layout node
// that measures several candidate children before deciding which to
// actually render keeps each candidate addressable by SlotId without
// disturbing the host's ordinary child list.
type subcompositionEntry[N any] struct {
	slots map[SlotId]NodeKey
	order []SlotId
}

// SubcomposeSlot composes (or reconciles) the named slot under host,
// independent of host's ordinary positional children. Calling it twice
// with the same slot in the same pass reconciles in place exactly like
// CreateNodeKey would for a positional child: a node already occupying
// the slot with matching identity is reused via update; one with a
// different identity is replaced, marking the old subtree for unmount.
//
// This is how a layout host runs a measure pass over several children
// before committing to which ones to actually render: each candidate
// gets its own slot, SubcomposeGet reads back whatever the content
// closure computed, and DiscardSlot drops the candidates it decides
// not to keep. A slot the host does not revisit is not unmounted on
// its own; it stays composed until DiscardSlot removes it or the host
// itself unmounts.
func SubcomposeSlot[C any, S any, N any](host Scope[S, N], slot SlotId, factory func(ctx any) N, update func(N, any) N, content func(Scope[C, N])) Scope[C, N] {
	loc := callerLoc(0)
	return subcomposeAt[C](host, slot, loc, factory, update, content)
}

// SubcomposeSlotSkip is SubcomposeSlot for DSL authors; see
// CreateNodeSkip's doc comment for the skip convention it shares.
func SubcomposeSlotSkip[C any, S any, N any](host Scope[S, N], slot SlotId, skip int, factory func(ctx any) N, update func(N, any) N, content func(Scope[C, N])) Scope[C, N] {
	loc := callerLoc(skip)
	return subcomposeAt[C](host, slot, loc, factory, update, content)
}

func subcomposeAt[C any, S any, N any](host Scope[S, N], slot SlotId, loc Loc, factory func(any) N, update func(N, any) N, content func(Scope[C, N])) Scope[C, N] {
	c := host.c
	hostKey := host.node
	childID := ScopeId{Loc: loc, Key: foldKey(slot.asKey(), keyStackTop(c))}

	entry := c.subcompositions[hostKey]
	if entry == nil {
		entry = &subcompositionEntry[N]{slots: make(map[SlotId]NodeKey)}
		c.subcompositions[hostKey] = entry
	}

	existingKey, hasSlot := entry.slots[slot]
	var nodeKey NodeKey
	switch {
	case hasSlot && c.nodeScopeID(existingKey) == childID:
		nodeKey = existingKey
		if c.recomposing {
			if _, dirty := c.dirtyScopes[nodeKey]; !dirty {
				return Scope[C, N]{id: childID, node: nodeKey, c: c}
			}
			delete(c.dirtyScopes, nodeKey)
		}
		c.clearUses(nodeKey)
		e, _ := c.nodes.Get(nodeKey)
		e.Data = update(e.Data, c.context)
		c.nodes.Set(nodeKey, e)
	case hasSlot:
		old := existingKey
		c.markSubtreeUnmount(old)

		nodeKey = c.allocNodeKey()
		c.nodes.Insert(nodeKey, hostKey, nodeEntry[N]{ScopeID: childID, Data: factory(c.context)})
		entry.slots[slot] = nodeKey
	default:
		nodeKey = c.allocNodeKey()
		c.nodes.Insert(nodeKey, hostKey, nodeEntry[N]{ScopeID: childID, Data: factory(c.context)})
		entry.slots[slot] = nodeKey
		entry.order = append(entry.order, slot)
	}

	childScope := Scope[C, N]{id: childID, node: nodeKey, c: c}
	body := func() {
		c.pushChildFrame(nodeKey, func() {
			content(childScope)
		})
	}
	c.composables[nodeKey] = body
	body()

	return childScope
}

// SubcomposeGet reads back the payload currently composed at slot under
// host without re-running its content, for a measure pass that needs
// to inspect what it just built (e.g. a computed size) before deciding
// what to do with it.
func SubcomposeGet[N any, S any](host Scope[S, N], slot SlotId) (N, bool) {
	c := host.c
	var zero N
	entry := c.subcompositions[host.node]
	if entry == nil {
		return zero, false
	}
	nodeKey, ok := entry.slots[slot]
	if !ok {
		return zero, false
	}
	e, ok := c.nodes.Get(nodeKey)
	if !ok {
		return zero, false
	}
	return e.Data, true
}

// SubcomposeSlots returns the slots currently composed under host, in
// the order they were first composed, for diagnostics and tree
// printing.
func SubcomposeSlots[N any, S any](host Scope[S, N]) []SlotId {
	c := host.c
	entry := c.subcompositions[host.node]
	if entry == nil {
		return nil
	}
	return append([]SlotId(nil), entry.order...)
}

// DiscardSlot marks the node occupying slot under host for unmount
// without replacing it, for a measure pass that tried a candidate and
// decided not to keep it. A subsequent SubcomposeSlot call with the
// same slot in the same pass is a Replace, not a resurrection: the
// discarded node is still torn down once this recomposition settles.
func DiscardSlot[N any, S any](host Scope[S, N], slot SlotId) {
	c := host.c
	entry := c.subcompositions[host.node]
	if entry == nil {
		return
	}
	nodeKey, ok := entry.slots[slot]
	if !ok {
		return
	}
	c.markSubtreeUnmount(nodeKey)
	delete(entry.slots, slot)
	for i, s := range entry.order {
		if s == slot {
			entry.order = append(entry.order[:i], entry.order[i+1:]...)
			break
		}
	}
}
