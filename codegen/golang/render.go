// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package golang

import (
	"fmt"

	"github.com/modrpc-org/mproto/codegen"
	"github.com/modrpc-org/mproto/layout"
	"github.com/modrpc-org/mproto/schema"
)

// renderer turns concrete (already-monomorphized) type expressions
// into Go type names and encode/decode/scratch-length expressions. It
// accumulates the imports a file needs as it goes.
type renderer struct {
	db      *schema.Database
	mono    *codegen.Set
	engine  *layout.Engine
	imports *importSet
}

func newRenderer(db *schema.Database, mono *codegen.Set, engine *layout.Engine) *renderer {
	return &renderer{db: db, mono: mono, engine: engine, imports: newImportSet()}
}

var primitiveGoType = map[schema.Primitive]string{
	schema.Void: "struct{}", schema.Bool: "bool",
	schema.U8: "uint8", schema.I8: "int8",
	schema.U16: "uint16", schema.I16: "int16",
	schema.U32: "uint32", schema.I32: "int32",
	schema.U64: "uint64", schema.I64: "int64",
	schema.U128: "wire.Uint128", schema.I128: "wire.Int128",
	schema.F32: "float32", schema.F64: "float64",
	schema.String: "string",
}

var primitiveEncodeFn = map[schema.Primitive]string{
	schema.Bool: "EncodeBool", schema.U8: "EncodeUint8", schema.I8: "EncodeInt8",
	schema.U16: "EncodeUint16", schema.I16: "EncodeInt16",
	schema.U32: "EncodeUint32", schema.I32: "EncodeInt32",
	schema.U64: "EncodeUint64", schema.I64: "EncodeInt64",
	schema.U128: "EncodeUint128", schema.I128: "EncodeInt128",
	schema.F32: "EncodeFloat32", schema.F64: "EncodeFloat64",
}

var primitiveDecodeFn = map[schema.Primitive]string{
	schema.Bool: "DecodeBool", schema.U8: "DecodeUint8", schema.I8: "DecodeInt8",
	schema.U16: "DecodeUint16", schema.I16: "DecodeInt16",
	schema.U32: "DecodeUint32", schema.I32: "DecodeInt32",
	schema.U64: "DecodeUint64", schema.I64: "DecodeInt64",
	schema.U128: "DecodeUint128", schema.I128: "DecodeInt128",
	schema.F32: "DecodeFloat32", schema.F64: "DecodeFloat64",
}

// refName resolves a concrete RefExpr to its base Go type name
// (without the Lazy prefix), registering an import if it's qualified.
func (r *renderer) refName(e *schema.TypeExpr) (string, error) {
	if e.Module != "" {
		imported, ok := r.db.Imports[e.Module]
		if !ok {
			return "", fmt.Errorf("golang: unknown imported module %q", e.Module)
		}
		r.imports.add(e.Module, "github.com/modrpc-org/mproto-gen/"+e.Module+"_"+imported.LibSuffix)
		def, ok := imported.Module.Get(e.Name)
		if !ok {
			return "", fmt.Errorf("golang: unknown type %q in module %q", e.Name, e.Module)
		}
		if len(def.TypeParams) == 0 {
			return e.Module + "." + e.Name, nil
		}
		return e.Module + "." + codegen.MangleName(e.Name, e.Args), nil
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
		return "", fmt.Errorf("golang: %q<%v> was not discovered during monomorphization", def.Name, e.Args)
	}
	return inst.Name, nil
}

// goType renders e's Go type, lazy selecting the zero-copy view form.
func (r *renderer) goType(e *schema.TypeExpr, lazy bool) (string, error) {
	switch e.Kind {
	case schema.PrimitiveExpr:
		return primitiveGoType[e.Primitive], nil

	case schema.BoxExpr:
		elem, err := r.goType(e.Elem, lazy)
		if err != nil {
			return "", err
		}
		if lazy {
			return "wire.LazyBox[" + elem + "]", nil
		}
		return "*" + elem, nil

	case schema.ListExpr:
		elem, err := r.goType(e.Elem, lazy)
		if err != nil {
			return "", err
		}
		if lazy {
			return "wire.LazyList[" + elem + "]", nil
		}
		return "[]" + elem, nil

	case schema.OptionExpr:
		elem, err := r.goType(e.Elem, lazy)
		if err != nil {
			return "", err
		}
		return "*" + elem, nil

	case schema.ResultExpr:
		okT, err := r.goType(e.Ok, lazy)
		if err != nil {
			return "", err
		}
		errT, err := r.goType(e.Err, lazy)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wire.Result[%s, %s]", okT, errT), nil

	case schema.RefExpr:
		name, err := r.refName(e)
		if err != nil {
			return "", err
		}
		if lazy {
			return lazyName(name), nil
		}
		return name, nil

	default:
		return "", fmt.Errorf("golang: unhandled type expression kind %v", e.Kind)
	}
}

// lazyName inserts "Lazy" after a qualifying package prefix, if any.
func lazyName(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i+1] + "Lazy" + name[i+1:]
		}
	}
	return "Lazy" + name
}
