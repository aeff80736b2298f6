// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package layout

import (
	"fmt"
	"strconv"
)

// Term is a layout algebra value: a constant known at generation time
// plus a target-language expression for the type-parameter-dependent
// remainder. Terms compose by addition; Render collapses the
// expression away when it's empty.
type Term struct {
	Const int
	Expr  string
}

// IsConstant reports whether the term has no unresolved
// type-parameter-dependent part.
func (t Term) IsConstant() bool { return t.Expr == "" }

// Add combines two terms: constants sum directly, expressions
// concatenate with "+".
func (t Term) Add(o Term) Term {
	return Term{Const: t.Const + o.Const, Expr: joinExpr(t.Expr, o.Expr)}
}

// AddConst adds a plain integer to the term's constant part.
func (t Term) AddConst(n int) Term {
	return Term{Const: t.Const + n, Expr: t.Expr}
}

// Render produces the full target-language expression for this term,
// collapsing to a bare integer literal when the term is constant.
func (t Term) Render() string {
	if t.Expr == "" {
		return strconv.Itoa(t.Const)
	}
	if t.Const == 0 {
		return t.Expr
	}
	return fmt.Sprintf("%d + %s", t.Const, t.Expr)
}

func joinExpr(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " + " + b
	}
}

// maxTerm returns the pointwise maximum of two terms: a bare integer
// max when both are constant, otherwise a maxInt(...) call expression
// over their rendered forms. No package in this module defines maxInt;
// the code generators only compute layouts of monomorphized types,
// which are always constant.
func maxTerm(a, b Term) Term {
	if a.IsConstant() && b.IsConstant() {
		if a.Const > b.Const {
			return a
		}
		return b
	}
	return Term{Expr: fmt.Sprintf("maxInt(%s, %s)", a.Render(), b.Render())}
}
