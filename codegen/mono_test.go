// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package codegen

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

func TestMonomorphizeNonParametricDefsAreRoots(t *testing.T) {
	mod := schema.NewModule("m")
	mustAdd(t, mod, &schema.TypeDef{
		Name: "Point", Kind: schema.StructDef,
		Fields: []schema.Field{{Name: "x", Type: prim(schema.F64)}},
	})
	db := schema.NewDatabase(mod)

	set, err := Monomorphize(mod, db)
	if err != nil {
		t.Fatalf("Monomorphize: %v", err)
	}
	if len(set.Ordered()) != 1 || set.Ordered()[0].Name != "Point" {
		t.Fatalf("got %+v, want exactly one Point instantiation", set.Ordered())
	}
}

func TestMonomorphizeDiscoversGenericUse(t *testing.T) {
	mod := schema.NewModule("m")
	mustAdd(t, mod, &schema.TypeDef{
		Name: "Pair", TypeParams: []string{"A", "B"}, Kind: schema.StructDef,
		Fields: []schema.Field{
			{Name: "first", Type: ref("A")},
			{Name: "second", Type: ref("B")},
		},
	})
	mustAdd(t, mod, &schema.TypeDef{
		Name: "Point", Kind: schema.StructDef,
		Fields: []schema.Field{{Name: "coords", Type: ref("Pair", prim(schema.U32), prim(schema.U32))}},
	})
	db := schema.NewDatabase(mod)

	set, err := Monomorphize(mod, db)
	if err != nil {
		t.Fatalf("Monomorphize: %v", err)
	}

	pairDef, _ := mod.Get("Pair")
	inst, ok := set.Lookup(pairDef, []*schema.TypeExpr{prim(schema.U32), prim(schema.U32)})
	if !ok {
		t.Fatal("expected Pair<u32,u32> to be discovered via Point's field")
	}
	if inst.Name != "Pair_U32_U32" {
		t.Fatalf("mangled name = %q, want Pair_U32_U32", inst.Name)
	}
}

func TestMonomorphizeDedupesRepeatedInstantiation(t *testing.T) {
	mod := schema.NewModule("m")
	mustAdd(t, mod, &schema.TypeDef{
		Name: "Box1", TypeParams: []string{"T"}, Kind: schema.StructDef,
		Fields: []schema.Field{{Name: "v", Type: ref("T")}},
	})
	mustAdd(t, mod, &schema.TypeDef{
		Name: "Holder", Kind: schema.StructDef,
		Fields: []schema.Field{
			{Name: "a", Type: ref("Box1", prim(schema.U8))},
			{Name: "b", Type: ref("Box1", prim(schema.U8))},
		},
	})
	db := schema.NewDatabase(mod)

	set, err := Monomorphize(mod, db)
	if err != nil {
		t.Fatalf("Monomorphize: %v", err)
	}

	count := 0
	for _, inst := range set.Ordered() {
		if inst.Name == "Box1_U8" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("Box1_U8 appeared %d times, want 1", count)
	}
}

func TestSubstExprReplacesParamReferences(t *testing.T) {
	env := Env{"T": prim(schema.U64)}
	e := &schema.TypeExpr{Kind: schema.OptionExpr, Elem: ref("T")}
	got := SubstExpr(e, env)
	if got.Kind != schema.OptionExpr || got.Elem.Kind != schema.PrimitiveExpr || got.Elem.Primitive != schema.U64 {
		t.Fatalf("SubstExpr produced %+v", got)
	}
}

func mustAdd(t *testing.T, mod *schema.Module, def *schema.TypeDef) {
	t.Helper()
	if err := mod.Add(def); err != nil {
		t.Fatalf("Add(%q): %v", def.Name, err)
	}
}
