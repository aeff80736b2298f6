// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package layout

import (
	"fmt"

	"github.com/modrpc-org/mproto/schema"
)

// Engine computes BASE_LEN terms for type expressions against a
// database of definitions, per spec.md §4.1.
type Engine struct {
	db *schema.Database
}

func NewEngine(db *schema.Database) *Engine {
	return &Engine{db: db}
}

// Env maps an in-scope type-parameter name to the term representing
// its caller-supplied base length. A generic definition being
// rendered for its own (unresolved) type parameters maps each
// parameter to an abstract Term built by the caller (BaseLenOfDef
// takes such a parameter's term from the env when no argument is
// given for it). The code generators monomorphize first and pass a
// nil Env.
type Env map[string]Term

const (
	boolBaseLen   = 1
	u8BaseLen     = 1
	u16BaseLen    = 2
	u32BaseLen    = 4
	u64BaseLen    = 8
	u128BaseLen   = 16
	f32BaseLen    = 4
	f64BaseLen    = 8
	stringBaseLen = 8
	boxBaseLen    = 4
	listBaseLen   = 8
)

func primitiveBaseLen(p schema.Primitive) int {
	switch p {
	case schema.Void:
		return 0
	case schema.Bool:
		return boolBaseLen
	case schema.U8, schema.I8:
		return u8BaseLen
	case schema.U16, schema.I16:
		return u16BaseLen
	case schema.U32, schema.I32:
		return u32BaseLen
	case schema.U64, schema.I64:
		return u64BaseLen
	case schema.U128, schema.I128:
		return u128BaseLen
	case schema.F32:
		return f32BaseLen
	case schema.F64:
		return f64BaseLen
	case schema.String:
		return stringBaseLen
	default:
		panic(fmt.Sprintf("layout: unhandled primitive %v", p))
	}
}

// BaseLen computes the layout term for a type expression in env.
func (e *Engine) BaseLen(t *schema.TypeExpr, env Env) (Term, error) {
	switch t.Kind {
	case schema.PrimitiveExpr:
		return Term{Const: primitiveBaseLen(t.Primitive)}, nil

	case schema.BoxExpr:
		return Term{Const: boxBaseLen}, nil

	case schema.ListExpr:
		return Term{Const: listBaseLen}, nil

	case schema.OptionExpr:
		inner, err := e.BaseLen(t.Elem, env)
		if err != nil {
			return Term{}, err
		}
		return inner.AddConst(1), nil

	case schema.ResultExpr:
		okTerm, err := e.BaseLen(t.Ok, env)
		if err != nil {
			return Term{}, err
		}
		errTerm, err := e.BaseLen(t.Err, env)
		if err != nil {
			return Term{}, err
		}
		return maxTerm(okTerm, errTerm).AddConst(1), nil

	case schema.RefExpr:
		if t.Module == "" {
			if term, ok := env[t.Name]; ok {
				return term, nil
			}
		}
		def, _, err := e.db.ResolveRef(t)
		if err != nil {
			return Term{}, err
		}
		return e.BaseLenOfDef(def, t.Args, env)

	default:
		return Term{}, fmt.Errorf("layout: unhandled type expression kind %v", t.Kind)
	}
}

// BaseLenOfDef computes BASE_LEN(def<args...>), substituting args
// (resolved against callerEnv) for def's own type parameters before
// recurring into its body (spec.md §4.1 "nested resolution").
func (e *Engine) BaseLenOfDef(def *schema.TypeDef, args []*schema.TypeExpr, callerEnv Env) (Term, error) {
	innerEnv := make(Env, len(def.TypeParams))
	for i, param := range def.TypeParams {
		if i >= len(args) {
			term, ok := callerEnv[param]
			if !ok {
				return Term{}, fmt.Errorf("layout: no argument for type parameter %q of %q", param, def.Name)
			}
			innerEnv[param] = term
			continue
		}
		argTerm, err := e.BaseLen(args[i], callerEnv)
		if err != nil {
			return Term{}, err
		}
		innerEnv[param] = argTerm
	}

	switch def.Kind {
	case schema.StructDef:
		return e.fieldsBaseLen(def.Fields, innerEnv)

	case schema.EnumDef:
		max := Term{}
		for _, v := range def.Variants {
			vTerm, err := e.fieldsBaseLen(v.Fields, innerEnv)
			if err != nil {
				return Term{}, err
			}
			max = maxTerm(max, vTerm)
		}
		return max.AddConst(1), nil

	default:
		return Term{}, fmt.Errorf("layout: unhandled def kind %v", def.Kind)
	}
}

func (e *Engine) fieldsBaseLen(fields []schema.Field, env Env) (Term, error) {
	sum := Term{}
	for _, f := range fields {
		ft, err := e.BaseLen(f.Type, env)
		if err != nil {
			return Term{}, err
		}
		sum = sum.Add(ft)
	}
	return sum, nil
}
