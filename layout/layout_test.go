// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package layout

import (
	"testing"

	"github.com/modrpc-org/mproto/schema"
)

func prim(p schema.Primitive) *schema.TypeExpr {
	return &schema.TypeExpr{Kind: schema.PrimitiveExpr, Primitive: p}
}

func ref(name string, args ...*schema.TypeExpr) *schema.TypeExpr {
	return &schema.TypeExpr{Kind: schema.RefExpr, Name: name, Args: args}
}

func TestPrimitiveBaseLens(t *testing.T) {
	e := NewEngine(schema.NewDatabase(schema.NewModule("m")))
	cases := []struct {
		p    schema.Primitive
		want int
	}{
		{schema.Void, 0}, {schema.Bool, 1},
		{schema.U8, 1}, {schema.I8, 1},
		{schema.U16, 2}, {schema.I16, 2},
		{schema.U32, 4}, {schema.I32, 4},
		{schema.U64, 8}, {schema.I64, 8},
		{schema.U128, 16}, {schema.I128, 16},
		{schema.F32, 4}, {schema.F64, 8},
		{schema.String, 8},
	}
	for _, c := range cases {
		term, err := e.BaseLen(prim(c.p), nil)
		if err != nil {
			t.Fatalf("BaseLen(%v): %v", c.p, err)
		}
		if !term.IsConstant() || term.Const != c.want {
			t.Fatalf("BaseLen(%v) = %+v, want constant %d", c.p, term, c.want)
		}
	}
}

func TestContainerBaseLens(t *testing.T) {
	e := NewEngine(schema.NewDatabase(schema.NewModule("m")))

	box := &schema.TypeExpr{Kind: schema.BoxExpr, Elem: prim(schema.String)}
	if term, _ := e.BaseLen(box, nil); term.Const != 4 {
		t.Fatalf("box<string> BASE_LEN = %d, want 4", term.Const)
	}

	list := &schema.TypeExpr{Kind: schema.ListExpr, Elem: prim(schema.U8)}
	if term, _ := e.BaseLen(list, nil); term.Const != 8 {
		t.Fatalf("[u8] BASE_LEN = %d, want 8", term.Const)
	}

	option := &schema.TypeExpr{Kind: schema.OptionExpr, Elem: prim(schema.U32)}
	if term, _ := e.BaseLen(option, nil); term.Const != 5 {
		t.Fatalf("option<u32> BASE_LEN = %d, want 5", term.Const)
	}

	result := &schema.TypeExpr{Kind: schema.ResultExpr, Ok: prim(schema.U8), Err: prim(schema.I16)}
	term, err := e.BaseLen(result, nil)
	if err != nil {
		t.Fatalf("BaseLen(result): %v", err)
	}
	if term.Const != 3 { // 1 + max(1, 2)
		t.Fatalf("result<u8,i16> BASE_LEN = %d, want 3", term.Const)
	}
}

func TestStructBaseLenIsSumOfFields(t *testing.T) {
	mod := schema.NewModule("m")
	mustAdd(t, mod, &schema.TypeDef{
		Name: "Point",
		Kind: schema.StructDef,
		Fields: []schema.Field{
			{Name: "x", Type: prim(schema.F64)},
			{Name: "y", Type: prim(schema.F64)},
		},
	})
	db := schema.NewDatabase(mod)
	e := NewEngine(db)

	term, err := e.BaseLen(ref("Point"), nil)
	if err != nil {
		t.Fatalf("BaseLen(Point): %v", err)
	}
	if term.Const != 16 {
		t.Fatalf("Point BASE_LEN = %d, want 16", term.Const)
	}
}

func TestEnumBaseLenIsOnePlusMaxVariant(t *testing.T) {
	mod := schema.NewModule("m")
	mustAdd(t, mod, &schema.TypeDef{
		Name: "Shape",
		Kind: schema.EnumDef,
		Variants: []schema.Variant{
			{Name: "Empty"},
			{Name: "Circle", Fields: []schema.Field{{Name: "radius", Type: prim(schema.F32)}}},
			{Name: "Rect", Fields: []schema.Field{
				{Name: "w", Type: prim(schema.F32)},
				{Name: "h", Type: prim(schema.F32)},
			}},
		},
	})
	db := schema.NewDatabase(mod)
	e := NewEngine(db)

	term, err := e.BaseLen(ref("Shape"), nil)
	if err != nil {
		t.Fatalf("BaseLen(Shape): %v", err)
	}
	// max variant is Rect at 8 bytes; 1 (tag) + 8 = 9.
	if term.Const != 9 {
		t.Fatalf("Shape BASE_LEN = %d, want 9", term.Const)
	}
}

// TestNestedGenericResolution is the fixture spec.md §4.1 calls out
// explicitly: Foo<u64> where Foo<T>{Bar<T>}, Bar<T>{Baz<T>,u8},
// Baz<T>{T,u32} must have BASE_LEN 8+1+4 = 13.
func TestNestedGenericResolution(t *testing.T) {
	mod := schema.NewModule("m")
	mustAdd(t, mod, &schema.TypeDef{
		Name: "Baz", TypeParams: []string{"T"}, Kind: schema.StructDef,
		Fields: []schema.Field{
			{Name: "value", Type: ref("T")},
			{Name: "tag", Type: prim(schema.U32)},
		},
	})
	mustAdd(t, mod, &schema.TypeDef{
		Name: "Bar", TypeParams: []string{"T"}, Kind: schema.StructDef,
		Fields: []schema.Field{
			{Name: "baz", Type: ref("Baz", ref("T"))},
			{Name: "extra", Type: prim(schema.U8)},
		},
	})
	mustAdd(t, mod, &schema.TypeDef{
		Name: "Foo", TypeParams: []string{"T"}, Kind: schema.StructDef,
		Fields: []schema.Field{
			{Name: "bar", Type: ref("Bar", ref("T"))},
		},
	})
	db := schema.NewDatabase(mod)
	e := NewEngine(db)

	term, err := e.BaseLen(ref("Foo", prim(schema.U64)), nil)
	if err != nil {
		t.Fatalf("BaseLen(Foo<u64>): %v", err)
	}
	if !term.IsConstant() || term.Const != 13 {
		t.Fatalf("Foo<u64> BASE_LEN = %+v, want constant 13", term)
	}
}

func TestUnresolvedTypeParamYieldsExpression(t *testing.T) {
	mod := schema.NewModule("m")
	mustAdd(t, mod, &schema.TypeDef{
		Name: "Wrapper", TypeParams: []string{"T"}, Kind: schema.StructDef,
		Fields: []schema.Field{
			{Name: "value", Type: ref("T")},
			{Name: "tag", Type: prim(schema.U8)},
		},
	})
	db := schema.NewDatabase(mod)
	e := NewEngine(db)

	def, _ := mod.Get("Wrapper")
	env := Env{"T": Term{Expr: "enc.BaseLen()"}}
	term, err := e.BaseLenOfDef(def, nil, env)
	if err != nil {
		t.Fatalf("BaseLenOfDef: %v", err)
	}
	if term.IsConstant() {
		t.Fatalf("expected a non-constant term, got %+v", term)
	}
	if got, want := term.Render(), "1 + enc.BaseLen()"; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestUnknownTypeErrors(t *testing.T) {
	db := schema.NewDatabase(schema.NewModule("m"))
	e := NewEngine(db)
	if _, err := e.BaseLen(ref("Missing"), nil); err == nil {
		t.Fatal("expected an error resolving an unknown type")
	}
}

func mustAdd(t *testing.T, mod *schema.Module, def *schema.TypeDef) {
	t.Helper()
	if err := mod.Add(def); err != nil {
		t.Fatalf("Add(%q): %v", def.Name, err)
	}
}
