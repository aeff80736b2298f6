// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package codegen

import "github.com/modrpc-org/mproto/schema"

// Env maps an in-scope type-parameter name to the concrete type
// expression it is bound to during monomorphization.
type Env map[string]*schema.TypeExpr

// SubstExpr returns a copy of e with every in-scope type-parameter
// reference replaced by its binding in env. References to names not
// in env (definitions, or a still-unbound parameter) pass through
// unchanged except for recursing into their own argument lists.
func SubstExpr(e *schema.TypeExpr, env Env) *schema.TypeExpr {
	switch e.Kind {
	case schema.PrimitiveExpr:
		return e

	case schema.BoxExpr:
		return &schema.TypeExpr{Kind: schema.BoxExpr, Elem: SubstExpr(e.Elem, env)}

	case schema.ListExpr:
		return &schema.TypeExpr{Kind: schema.ListExpr, Elem: SubstExpr(e.Elem, env)}

	case schema.OptionExpr:
		return &schema.TypeExpr{Kind: schema.OptionExpr, Elem: SubstExpr(e.Elem, env)}

	case schema.ResultExpr:
		return &schema.TypeExpr{Kind: schema.ResultExpr, Ok: SubstExpr(e.Ok, env), Err: SubstExpr(e.Err, env)}

	case schema.RefExpr:
		if e.Module == "" {
			if bound, ok := env[e.Name]; ok {
				return bound
			}
		}
		args := make([]*schema.TypeExpr, len(e.Args))
		for i, a := range e.Args {
			args[i] = SubstExpr(a, env)
		}
		return &schema.TypeExpr{Kind: schema.RefExpr, Module: e.Module, Name: e.Name, Args: args}

	default:
		return e
	}
}

func substAll(exprs []*schema.TypeExpr, env Env) []*schema.TypeExpr {
	out := make([]*schema.TypeExpr, len(exprs))
	for i, e := range exprs {
		out[i] = SubstExpr(e, env)
	}
	return out
}
