// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package codegen

import (
	"fmt"
	"strings"

	"github.com/modrpc-org/mproto/schema"
)

// Instantiation is one concretely-typed rendering of a (possibly
// parametric) definition. The systems target's original inspiration
// monomorphizes generics at compile time; this generator does the
// same at schema-compile time, so every emitted Go type is concrete —
// no generated code threads Go generics or decoder-function
// parameters through user schemas. Non-parametric definitions get a
// single Instantiation with a nil Args.
type Instantiation struct {
	Def  *schema.TypeDef
	Args []*schema.TypeExpr
	// Name is the mangled type name used in generated source, equal to
	// Def.Name for non-parametric definitions.
	Name string
}

// Set is the ordered, deduplicated collection of instantiations
// reachable from a module's definitions.
type Set struct {
	order []*Instantiation
	byKey map[string]*Instantiation
}

func (s *Set) Ordered() []*Instantiation { return s.order }

func (s *Set) Lookup(def *schema.TypeDef, args []*schema.TypeExpr) (*Instantiation, bool) {
	inst, ok := s.byKey[instKey(def.Name, args)]
	return inst, ok
}

// Monomorphize walks every definition in mod, plus every concretely
// typed reference reachable from their fields (through imports too),
// and returns the set of distinct instantiations that need code
// generated for them.
func Monomorphize(mod *schema.Module, db *schema.Database) (*Set, error) {
	set := &Set{byKey: map[string]*Instantiation{}}

	var enqueue func(def *schema.TypeDef, args []*schema.TypeExpr) error
	enqueue = func(def *schema.TypeDef, args []*schema.TypeExpr) error {
		key := instKey(def.Name, args)
		if _, ok := set.byKey[key]; ok {
			return nil
		}
		inst := &Instantiation{Def: def, Args: args, Name: MangleName(def.Name, args)}
		set.byKey[key] = inst
		set.order = append(set.order, inst)

		env := make(Env, len(def.TypeParams))
		for i, p := range def.TypeParams {
			env[p] = args[i]
		}

		var walkFields func([]schema.Field) error
		walkFields = func(fields []schema.Field) error {
			for _, f := range fields {
				if err := walkExpr(SubstExpr(f.Type, env), db, enqueue); err != nil {
					return err
				}
			}
			return nil
		}

		switch def.Kind {
		case schema.StructDef:
			return walkFields(def.Fields)
		case schema.EnumDef:
			for _, v := range def.Variants {
				if err := walkFields(v.Fields); err != nil {
					return err
				}
			}
			return nil
		default:
			return fmt.Errorf("codegen: unhandled def kind %v", def.Kind)
		}
	}

	for _, def := range mod.Defs() {
		if len(def.TypeParams) == 0 {
			if err := enqueue(def, nil); err != nil {
				return nil, err
			}
		}
	}

	return set, nil
}

// walkExpr recurses through a fully-substituted type expression,
// enqueuing any reference to a parametric definition at its concrete
// argument list.
func walkExpr(e *schema.TypeExpr, db *schema.Database, enqueue func(*schema.TypeDef, []*schema.TypeExpr) error) error {
	switch e.Kind {
	case schema.PrimitiveExpr:
		return nil
	case schema.BoxExpr, schema.ListExpr, schema.OptionExpr:
		return walkExpr(e.Elem, db, enqueue)
	case schema.ResultExpr:
		if err := walkExpr(e.Ok, db, enqueue); err != nil {
			return err
		}
		return walkExpr(e.Err, db, enqueue)
	case schema.RefExpr:
		def, _, err := db.ResolveRef(e)
		if err != nil {
			return err
		}
		if len(def.TypeParams) > 0 {
			if err := enqueue(def, e.Args); err != nil {
				return err
			}
		}
		for _, a := range e.Args {
			if err := walkExpr(a, db, enqueue); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("codegen: unhandled type expression kind %v", e.Kind)
	}
}

func instKey(defName string, args []*schema.TypeExpr) string {
	var b strings.Builder
	b.WriteString(defName)
	for _, a := range args {
		b.WriteByte('<')
		b.WriteString(argKey(a))
		b.WriteByte('>')
	}
	return b.String()
}

func argKey(e *schema.TypeExpr) string {
	switch e.Kind {
	case schema.PrimitiveExpr:
		return e.Primitive.String()
	case schema.BoxExpr:
		return "box<" + argKey(e.Elem) + ">"
	case schema.ListExpr:
		return "list<" + argKey(e.Elem) + ">"
	case schema.OptionExpr:
		return "option<" + argKey(e.Elem) + ">"
	case schema.ResultExpr:
		return "result<" + argKey(e.Ok) + "," + argKey(e.Err) + ">"
	case schema.RefExpr:
		s := e.Name
		if e.Module != "" {
			s = e.Module + "." + s
		}
		for _, a := range e.Args {
			s += "<" + argKey(a) + ">"
		}
		return s
	default:
		return "?"
	}
}

// MangleName produces a readable mangled type name for a generic
// instantiation, e.g. MangleName("Pair", [U8, U32]) -> "Pair_U8_U32".
func MangleName(defName string, args []*schema.TypeExpr) string {
	if len(args) == 0 {
		return defName
	}
	name := defName
	for _, a := range args {
		name += "_" + mangleArg(a)
	}
	return name
}

func mangleArg(e *schema.TypeExpr) string {
	switch e.Kind {
	case schema.PrimitiveExpr:
		return strings.ToUpper(e.Primitive.String())
	case schema.BoxExpr:
		return "Box" + mangleArg(e.Elem)
	case schema.ListExpr:
		return "List" + mangleArg(e.Elem)
	case schema.OptionExpr:
		return "Option" + mangleArg(e.Elem)
	case schema.ResultExpr:
		return "Result" + mangleArg(e.Ok) + mangleArg(e.Err)
	case schema.RefExpr:
		n := e.Name
		for _, a := range e.Args {
			n += mangleArg(a)
		}
		return n
	default:
		return "X"
	}
}
