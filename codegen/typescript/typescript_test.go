// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package typescript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modrpc-org/mproto/codegen"
	"github.com/modrpc-org/mproto/schema"
)

func prim(p schema.Primitive) *schema.TypeExpr {
	return &schema.TypeExpr{Kind: schema.PrimitiveExpr, Primitive: p}
}

func mustAdd(t *testing.T, mod *schema.Module, def *schema.TypeDef) {
	t.Helper()
	require.NoError(t, mod.Add(def))
}

func TestGenerateStructInterfaceAndCodecs(t *testing.T) {
	mod := schema.NewModule("pkg")
	mustAdd(t, mod, &schema.TypeDef{
		Name: "Point", Kind: schema.StructDef,
		Fields: []schema.Field{
			{Name: "x", Type: prim(schema.F64)},
			{Name: "label", Type: prim(schema.String)},
		},
	})
	db := schema.NewDatabase(mod)
	gen := codegen.NewGenerator()
	gen.Register(New())

	out, err := gen.Generate("ts", mod, db, codegen.WithPackageName("pkg"))
	require.NoError(t, err)
	require.Contains(t, out, "index.ts")
	require.Contains(t, out, "runtime.ts")

	src := string(out["index.ts"])
	assert.Contains(t, src, "export interface Point {")
	assert.Contains(t, src, "x: number;")
	assert.Contains(t, src, "label: string;")
	assert.Contains(t, src, "export const baseLenPoint = 16;")
	assert.Contains(t, src, "export function encodePoint(c: rt.EncodeCursor, v: Point): void")
	assert.Contains(t, src, "export function decodePoint(c: rt.DecodeCursor): Point")
	assert.Contains(t, src, "export class LazyPoint")
}

func TestGenerateEnumTaggedUnion(t *testing.T) {
	mod := schema.NewModule("pkg")
	mustAdd(t, mod, &schema.TypeDef{
		Name: "Shape", Kind: schema.EnumDef,
		Variants: []schema.Variant{
			{Name: "circle", Fields: []schema.Field{{Name: "radius", Type: prim(schema.F64)}}},
			{Name: "point"},
		},
	})
	db := schema.NewDatabase(mod)
	gen := codegen.NewGenerator()
	gen.Register(New())

	out, err := gen.Generate("ts", mod, db, codegen.WithPackageName("pkg"))
	require.NoError(t, err)

	src := string(out["index.ts"])
	assert.Contains(t, src, "export type Shape =")
	assert.Contains(t, src, `{ tag: "circle"; radius: number }`)
	assert.Contains(t, src, `{ tag: "point" }`)
	assert.Contains(t, src, "export const baseLenShape = 1 + 8;")
	assert.Contains(t, src, "export class LazyShape")
	assert.Contains(t, src, `throw new rt.DecodeError("invalid enum tag", tagPos);`)
}

func TestGeneratePackageModeScaffolding(t *testing.T) {
	mod := schema.NewModule("pkg")
	mustAdd(t, mod, &schema.TypeDef{
		Name: "Empty", Kind: schema.StructDef,
	})
	db := schema.NewDatabase(mod)
	gen := codegen.NewGenerator()
	gen.Register(New())

	out, err := gen.Generate("ts", mod, db, codegen.WithPackageName("pkg"), codegen.WithPackageMode())
	require.NoError(t, err)
	assert.Contains(t, out, "pkg/index.ts")
	assert.Contains(t, out, "pkg/runtime.ts")
	assert.Contains(t, out, "pkg/package.json")
	assert.Contains(t, string(out["pkg/package.json"]), `"name": "pkg"`)
}
