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
package ast

import "github.com/plat-lang/platc/pkg/source"

// NewExprBase is a helper for pkg/parser to stamp a span onto a freshly
// built expression node without exporting ExprBase's field.
func NewExprBase(span source.Span) ExprBase { return ExprBase{span} }

// NewStmtBase is the statement equivalent of NewExprBase.
func NewStmtBase(span source.Span) StmtBase { return StmtBase{span} }

// NewPatternBase is the pattern equivalent of NewExprBase.
func NewPatternBase(span source.Span) PatternBase { return PatternBase{span} }
