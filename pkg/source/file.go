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
package source

import "os"

// File is a source file held in memory as UTF-8 bytes, addressed by byte
// offset (not rune index) so that Span values line up directly with
// lexer/parser slicing.
type File struct {
	name string
	text []byte
}

// NewFile constructs a File from an in-memory byte buffer.
func NewFile(name string, text []byte) *File {
	return &File{name: name, text: text}
}

// ReadFile reads a file from disk into a File.
func ReadFile(name string) (*File, error) {
	bytes, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	return NewFile(name, bytes), nil
}

// Name returns the file's name (path, as given to NewFile/ReadFile).
func (f *File) Name() string { return f.name }

// Text returns the full contents of the file.
func (f *File) Text() []byte { return f.text }

// Slice returns the bytes covered by a span. Panics if span is out of
// bounds, which would indicate a compiler-internal bug.
func (f *File) Slice(s Span) []byte {
	return f.text[s.start:s.end]
}

// Line describes one physical line of a File.
type Line struct {
	Number int // 1-based
	Span   Span
}

// lineText returns the text of line l, excluding the trailing newline.
func (f *File) lineText(l Line) string {
	return string(f.Slice(l.Span))
}

// LineText is a convenience wrapper around lineText for external callers
// (diagnostic rendering, tests).
func (f *File) LineText(l Line) string { return f.lineText(l) }

// EnclosingLine finds the first physical line containing the start of the
// given span. If the span starts beyond the end of the file, the last line
// is returned.
func (f *File) EnclosingLine(s Span) Line {
	num := 1
	start := 0

	for i := 0; i < len(f.text); i++ {
		if i == s.start {
			return Line{num, Span{start, endOfLine(f.text, i)}}
		} else if f.text[i] == '\n' {
			num++
			start = i + 1
		}
	}

	return Line{num, Span{start, len(f.text)}}
}

func endOfLine(text []byte, from int) int {
	for i := from; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}

	return len(text)
}
