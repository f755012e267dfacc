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

import "fmt"

// wrappedError attaches a message to an underlying cause while keeping
// it reachable through errors.Is/errors.As, the same two-field pattern
// dig's error.go uses throughout its constructor and invoke paths.
type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}

func errWrapf(cause error, format string, args ...interface{}) error {
	return &wrappedError{msg: fmt.Sprintf(format, args...), cause: cause}
}

// rootCause unwraps err down to the innermost cause, for callers that
// want to classify a failure without walking the wrapper chain by
// hand.
func rootCause(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		next := u.Unwrap()
		if next == nil {
			return err
		}
		err = next
	}
}

// ProgrammerError is panicked, never returned as an error value, for
// conditions that indicate a bug in the caller rather than a runtime
// failure a composable could reasonably recover from: reading a State
// handle minted by one Composer against another, reading or writing a
// State after its owning node has unmounted, or calling Recompose from
// inside a running pass. Well-behaved callers never trigger these; they exist to turn
// a silent data corruption into a loud failure at the point of misuse.
type ProgrammerError struct {
	Msg string
}

func (e *ProgrammerError) Error() string {
	return e.Msg
}

func panicProgrammerError(format string, args ...interface{}) {
	panic(&ProgrammerError{Msg: fmt.Sprintf(format, args...)})
}
