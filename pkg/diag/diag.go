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

// Package diag defines the structured diagnostic object produced by every
// fatal compiler phase (lex/syntax, module, type, codegen). Rendering
// diagnostics into caret/label output for a terminal is an external
// collaborator's job (see spec.md §1); this package only builds the
// structured value.
package diag

import (
	"fmt"

	"github.com/plat-lang/platc/pkg/source"
)

// Kind classifies which phase raised a diagnostic.
type Kind int

// The five diagnostic kinds named by spec.md §7.
const (
	KindSyntax Kind = iota
	KindModule
	KindType
	KindCodegen
	KindRuntime
)

// String renders the kind's name.
func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindModule:
		return "module"
	case KindType:
		return "type"
	case KindCodegen:
		return "codegen"
	case KindRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Severity of a diagnostic. Only Error is fatal for the enclosing
// compilation unit; Warning and Note never halt compilation.
type Severity int

// Severities, ordered from least to most urgent.
const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityError
)

// Label attaches a short message to a secondary span, e.g. "expected here"
// or "declared here".
type Label struct {
	Span    source.Span
	Message string
}

// Diagnostic is the structured error object every fatal phase produces.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Code     string
	Span     source.Span
	Message  string
	Labels   []Label
	Help     string
}

// New constructs an error-severity diagnostic.
func New(kind Kind, code string, span source.Span, message string) *Diagnostic {
	return &Diagnostic{Severity: SeverityError, Kind: kind, Code: code, Span: span, Message: message}
}

// WithLabel appends a secondary label and returns the diagnostic for
// chaining.
func (d *Diagnostic) WithLabel(span source.Span, message string) *Diagnostic {
	d.Labels = append(d.Labels, Label{span, message})
	return d
}

// WithHelp sets the help text and returns the diagnostic for chaining.
func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

// Error implements the error interface with a compact, one-line rendering;
// full label/caret rendering belongs to a collaborator.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s[%s]: %s (at %s)", d.Kind, d.Code, d.Message, d.Span)
}
