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

// composerOptions holds the resolved configuration for a Composer,
// built up by applying each ComposerOption in order over a set of
// defaults.
type composerOptions struct {
	capacityHint int
}

func defaultComposerOptions() composerOptions {
	return composerOptions{capacityHint: 0}
}

// ComposerOption configures a Composer at construction, following the
// functional-options convention dig's NewContainer uses for Option.
type ComposerOption interface {
	apply(*composerOptions)
}

type composerOptionFunc func(*composerOptions)

func (f composerOptionFunc) apply(o *composerOptions) {
	f(o)
}

// WithCapacityHint presizes the composer's composable and state maps for an
// expected tree of roughly n nodes, avoiding rehashing during the
// first Compose call for trees whose rough size is known ahead of
// time. It is purely an allocation hint: an undersized or oversized
// hint changes nothing about behavior or correctness.
func WithCapacityHint(n int) ComposerOption {
	return composerOptionFunc(func(o *composerOptions) {
		if n > 0 {
			o.capacityHint = n
		}
	})
}
