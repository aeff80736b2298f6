// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package schema

// Primitive enumerates the built-in scalar and string types of §3.1.
type Primitive uint8

const (
	Void Primitive = iota
	Bool
	U8
	I8
	U16
	I16
	U32
	I32
	U64
	I64
	U128
	I128
	F32
	F64
	String
)

var primitiveNames = map[Primitive]string{
	Void: "void", Bool: "bool",
	U8: "u8", I8: "i8", U16: "u16", I16: "i16",
	U32: "u32", I32: "i32", U64: "u64", I64: "i64",
	U128: "u128", I128: "i128",
	F32: "f32", F64: "f64",
	String: "string",
}

func (p Primitive) String() string {
	if s, ok := primitiveNames[p]; ok {
		return s
	}
	return "unknown"
}

// ParsePrimitive maps an IDL primitive keyword to a Primitive, or
// reports ok=false if name isn't one.
func ParsePrimitive(name string) (Primitive, bool) {
	for p, n := range primitiveNames {
		if n == name {
			return p, true
		}
	}
	return 0, false
}

// TypeExprKind discriminates the shape of a TypeExpr.
type TypeExprKind uint8

const (
	PrimitiveExpr TypeExprKind = iota
	BoxExpr
	ListExpr
	OptionExpr
	ResultExpr
	// RefExpr is a (possibly qualified) reference to a type parameter
	// or a defined type, with optional type arguments.
	RefExpr
)

// TypeExpr is a type expression per spec §3.1: either a primitive
// (including the box/list/option/result constructors) or a defined
// reference.
type TypeExpr struct {
	Kind TypeExprKind

	Primitive Primitive // valid when Kind == PrimitiveExpr

	Elem *TypeExpr // valid when Kind is Box/List/Option

	Ok, Err *TypeExpr // valid when Kind == ResultExpr

	Module string      // "" for a local reference; valid when Kind == RefExpr
	Name   string       // type-parameter name or defined-type name
	Args   []*TypeExpr // type arguments at the use site
}

// Field is a named field of a struct or enum variant.
type Field struct {
	Name string
	Type *TypeExpr
}

// Variant is one arm of an enum: either empty or a named-field record.
// Its zero-based position in Variants is its wire tag.
type Variant struct {
	Name   string
	Fields []Field
}

// DefKind discriminates a TypeDef's body shape.
type DefKind uint8

const (
	StructDef DefKind = iota
	EnumDef
)

// TypeDef is a named, possibly-parametric struct or enum definition.
type TypeDef struct {
	Name       string
	TypeParams []string
	Kind       DefKind
	Fields     []Field   // valid when Kind == StructDef
	Variants   []Variant // valid when Kind == EnumDef
}

// ParamIndex returns the zero-based index of a type-parameter name in
// TypeParams, or -1 if it isn't one.
func (d *TypeDef) ParamIndex(name string) int {
	for i, p := range d.TypeParams {
		if p == name {
			return i
		}
	}
	return -1
}
