// Copyright The Plat Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package source provides the byte-offset span and source-file primitives
// shared by every compiler phase: lexer, parser, resolver, checker and
// codegen all tag their output with a Span traceable back to a File.
package source

import "fmt"

// Span represents a contiguous, half-open range of byte offsets into a
// single source File. The end offset is one past the final byte covered.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span, checking that start <= end.
func NewSpan(start, end int) Span {
	if start > end {
		panic("source: invalid span")
	}

	return Span{start, end}
}

// Start returns the first byte offset covered by this span.
func (s Span) Start() int { return s.start }

// End returns one past the last byte offset covered by this span.
func (s Span) End() int { return s.end }

// Length returns the number of bytes covered by this span.
func (s Span) Length() int { return s.end - s.start }

// Join returns the smallest span enclosing both s and other.
func (s Span) Join(other Span) Span {
	start := s.start
	if other.start < start {
		start = other.start
	}

	end := s.end
	if other.end > end {
		end = other.end
	}

	return Span{start, end}
}

// String renders the span as "start..end", mainly for debugging/tests.
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.start, s.end)
}
