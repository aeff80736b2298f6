// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

// Package typescript is the scripting-language codegen target: eager
// encode/decode functions over plain TypeScript types, plus the
// partial lazy support spec.md §9 describes (per-field lazy struct
// accessors, lazy enum decode falling back to the owned path).
package typescript

import (
	"fmt"

	"github.com/modrpc-org/mproto/codegen"
	"github.com/modrpc-org/mproto/layout"
	"github.com/modrpc-org/mproto/schema"
)

type renderer struct {
	db      *schema.Database
	mono    *codegen.Set
	engine  *layout.Engine
	imports *importSet
}

func newRenderer(db *schema.Database, mono *codegen.Set, engine *layout.Engine) *renderer {
	return &renderer{db: db, mono: mono, engine: engine, imports: newImportSet()}
}

var primitiveTSType = map[schema.Primitive]string{
	schema.Void: "null", schema.Bool: "boolean",
	schema.U8: "number", schema.I8: "number",
	schema.U16: "number", schema.I16: "number",
	schema.U32: "number", schema.I32: "number",
	schema.U64: "bigint", schema.I64: "bigint",
	schema.U128: "bigint", schema.I128: "bigint",
	schema.F32: "number", schema.F64: "number",
	schema.String: "string",
}

var primitiveEncodeFn = map[schema.Primitive]string{
	schema.Bool: "encodeBool", schema.U8: "encodeUint8", schema.I8: "encodeInt8",
	schema.U16: "encodeUint16", schema.I16: "encodeInt16",
	schema.U32: "encodeUint32", schema.I32: "encodeInt32",
	schema.U64: "encodeUint64", schema.I64: "encodeInt64",
	schema.U128: "encodeUint128", schema.I128: "encodeInt128",
	schema.F32: "encodeFloat32", schema.F64: "encodeFloat64",
}

var primitiveDecodeFn = map[schema.Primitive]string{
	schema.Bool: "decodeBool", schema.U8: "decodeUint8", schema.I8: "decodeInt8",
	schema.U16: "decodeUint16", schema.I16: "decodeInt16",
	schema.U32: "decodeUint32", schema.I32: "decodeInt32",
	schema.U64: "decodeUint64", schema.I64: "decodeInt64",
	schema.U128: "decodeUint128", schema.I128: "decodeInt128",
	schema.F32: "decodeFloat32", schema.F64: "decodeFloat64",
}

// refName resolves a concrete RefExpr to its base TypeScript type
// name, registering a cross-module import if it's qualified.
func (r *renderer) refName(e *schema.TypeExpr) (string, error) {
	if e.Module != "" {
		imported, ok := r.db.Imports[e.Module]
		if !ok {
			return "", fmt.Errorf("typescript: unknown imported module %q", e.Module)
		}
		r.imports.add(e.Module, "./"+e.Module+"_"+imported.LibSuffix)
		def, ok := imported.Module.Get(e.Name)
		if !ok {
			return "", fmt.Errorf("typescript: unknown type %q in module %q", e.Name, e.Module)
		}
		if len(def.TypeParams) == 0 {
			return e.Module + "_" + e.Name, nil
		}
		return e.Module + "_" + codegen.MangleName(e.Name, e.Args), nil
	}

	def, _, err := r.db.ResolveRef(e)
	if err != nil {
		return "", err
	}
	if len(def.TypeParams) == 0 {
		return def.Name, nil
	}
	inst, ok := r.mono.Lookup(def, e.Args)
	if !ok {
		return "", fmt.Errorf("typescript: %q<%v> was not discovered during monomorphization", def.Name, e.Args)
	}
	return inst.Name, nil
}

// tsType renders e's owned TypeScript type. The scripting target has
// no heap-vs-stack distinction, so box<T> collapses to T directly
// rather than the Go target's pointer indirection.
func (r *renderer) tsType(e *schema.TypeExpr) (string, error) {
	switch e.Kind {
	case schema.PrimitiveExpr:
		return primitiveTSType[e.Primitive], nil

	case schema.BoxExpr:
		return r.tsType(e.Elem)

	case schema.ListExpr:
		elem, err := r.tsType(e.Elem)
		if err != nil {
			return "", err
		}
		return elem + "[]", nil

	case schema.OptionExpr:
		elem, err := r.tsType(e.Elem)
		if err != nil {
			return "", err
		}
		return elem + " | null", nil

	case schema.ResultExpr:
		okT, err := r.tsType(e.Ok)
		if err != nil {
			return "", err
		}
		errT, err := r.tsType(e.Err)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("rt.Result<%s, %s>", okT, errT), nil

	case schema.RefExpr:
		return r.refName(e)

	default:
		return "", fmt.Errorf("typescript: unhandled type expression kind %v", e.Kind)
	}
}
