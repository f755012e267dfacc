// Package ident provides the low-level identity primitives the composer
// builds on: a stable per-call-site token (Loc) and a monotonic allocator
// for node handles (NodeKey).
package ident

import (
	"fmt"
	"runtime"

	"go.uber.org/atomic"
)

// Loc is a stable, hashable, copyable token identifying a textual call
// site. Two calls from the same source line produce an equal Loc, also
// when the compiler has inlined that line into several callers; calls
// from different lines never do, and two call sites written on one line
// share a Loc. It is the Go analogue of Rust's #[track_caller]
// Location::caller(): runtime.Caller reports the file and line of the
// caller's call instruction, which are stable for the life of the
// process. The pc field is never set by NewLoc.
type Loc struct {
	pc   uintptr
	file string
	line int
}

// NewLoc captures the call site skip frames above its own caller. Pass
// skip=0 to identify the function calling NewLoc directly; each
// additional layer of wrapping between the user's call site and NewLoc
// must add one to skip.
func NewLoc(skip int) Loc {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Loc{}
	}
	return Loc{file: file, line: line}
}

// String renders the call site as file:line, mainly for debug output.
func (l Loc) String() string {
	if l.file == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", l.file, l.line)
}

// IsZero reports whether this Loc was never captured.
func (l Loc) IsZero() bool {
	return l.file == "" && l.pc == 0
}

// NodeKey is a stable arena handle. The zero value is reserved and never
// issued by an Allocator; it is used by callers as a "no node" sentinel.
type NodeKey uint64

// String renders the key for debug output.
func (k NodeKey) String() string {
	return fmt.Sprintf("#%d", uint64(k))
}

// Allocator hands out NodeKeys that are never reused for the lifetime of
// the allocator. It is declared atomic, not because a single composition
// pass is concurrent (it never is, per the single-threaded composition
// model), but so a Composer may safely be driven from different
// goroutines across non-overlapping calls without a data race on the
// counter itself.
type Allocator struct {
	next atomic.Uint64
}

// NewAllocator returns an Allocator whose first Next() call returns 1,
// keeping 0 free as the NodeKey zero-value sentinel.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Next returns a NodeKey never before returned by this Allocator.
func (a *Allocator) Next() NodeKey {
	return NodeKey(a.next.Add(1))
}
