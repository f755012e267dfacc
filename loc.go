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

import "github.com/cksac/compose-go/internal/ident"

// Loc identifies the static source location of a call site. Two calls
// from the same textual call produce an equal Loc; two calls from
// different source lines never do, while two call sites written on one
// line share a Loc.
//
// Go has no automatic call-site propagation across wrapper functions,
// so a function that wants the identity of *its own caller* must
// capture it directly with callerLoc(0). A DSL helper that itself wraps
// CreateNode/UseState and wants identity to point
// through itself at its own caller must use the Skip-suffixed variant
// and pass 1 per layer of wrapping, the same way the standard library's
// log.Output takes an explicit calldepth for the same reason.
type Loc struct {
	inner ident.Loc
}

// callerLoc captures the call site of the function that called the
// function that called callerLoc: skip=0 identifies the caller of
// callerLoc's own direct caller (i.e. the usual case, a public function
// that calls callerLoc(0) to identify whoever called *it*). Each
// additional layer of DSL wrapping between that point and the real
// call site the caller wants to expose adds 1 to skip.
func callerLoc(skip int) Loc {
	return Loc{inner: ident.NewLoc(skip + 2)}
}

// String renders the call site as file:line.
func (l Loc) String() string {
	return l.inner.String()
}
