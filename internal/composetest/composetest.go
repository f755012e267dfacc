// Package composetest provides small helpers shared across the root
// package's test files, mirroring the role internal/digtest plays for
// dig's own test suite: reduce the boilerplate of standing up a fresh
// Recomposer and driving it through a compose/recompose cycle.
package composetest

import (
	"testing"

	"github.com/cksac/compose-go"
)

// Payload is a minimal node payload used by tests that don't care about
// a domain-specific tree shape, just about reconciliation mechanics.
type Payload struct {
	Name string
}

// NewRecomposer builds a Recomposer rooted at an empty Payload, failing
// the test immediately if construction panics.
func NewRecomposer(t *testing.T, opts ...compose.ComposerOption) *compose.Recomposer[Payload] {
	t.Helper()
	return compose.NewRecomposer(Payload{Name: "root"}, opts...)
}

// Names returns the Name field of every node in order, depth-first,
// for asserting on tree shape without hand-walking NodeKeys in test
// bodies.
func Names(r *compose.Recomposer[Payload]) []string {
	var out []string
	var walk func(key compose.NodeKey)
	walk = func(key compose.NodeKey) {
		n, ok := r.Node(key)
		if !ok {
			return
		}
		out = append(out, n.Data.Name)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(r.RootNodeKey())
	return out
}
