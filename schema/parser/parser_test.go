// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modrpc-org/mproto/schema"
)

func TestParseSimpleStruct(t *testing.T) {
	mod, err := Parse("geo", `
		struct Point {
			x: f64,
			y: f64,
		}
	`)
	require.NoError(t, err)

	def, ok := mod.Get("Point")
	require.True(t, ok)
	assert.Equal(t, schema.StructDef, def.Kind)
	require.Len(t, def.Fields, 2)
	assert.Equal(t, "x", def.Fields[0].Name)
	assert.Equal(t, schema.PrimitiveExpr, def.Fields[0].Type.Kind)
	assert.Equal(t, schema.F64, def.Fields[0].Type.Primitive)
}

func TestParseEnumWithEmptyAndFieldedVariants(t *testing.T) {
	mod, err := Parse("app", `
		enum Shape {
			Empty,
			Circle { radius: f32 },
			Rect { w: f32, h: f32 }
		}
	`)
	require.NoError(t, err)

	def, ok := mod.Get("Shape")
	require.True(t, ok)
	assert.Equal(t, schema.EnumDef, def.Kind)
	require.Len(t, def.Variants, 3)
	assert.Equal(t, "Empty", def.Variants[0].Name)
	assert.Empty(t, def.Variants[0].Fields)
	assert.Equal(t, "Circle", def.Variants[1].Name)
	require.Len(t, def.Variants[1].Fields, 1)
	assert.Equal(t, "radius", def.Variants[1].Fields[0].Name)
}

func TestParseTypeParamsAndNestedGenerics(t *testing.T) {
	mod, err := Parse("app", `
		struct Baz<T> {
			value: T,
			tag: u32,
		}
		struct Bar<T> {
			inner: Baz<T>,
			extra: u8,
		}
		struct Foo<T> {
			bar: Bar<T>,
		}
	`)
	require.NoError(t, err)

	fooDef, ok := mod.Get("Foo")
	require.True(t, ok)
	assert.Equal(t, []string{"T"}, fooDef.TypeParams)
	require.Len(t, fooDef.Fields, 1)
	assert.Equal(t, schema.RefExpr, fooDef.Fields[0].Type.Kind)
	assert.Equal(t, "Bar", fooDef.Fields[0].Type.Name)
	require.Len(t, fooDef.Fields[0].Type.Args, 1)
	assert.Equal(t, "T", fooDef.Fields[0].Type.Args[0].Name)
}

func TestParseContainerTypes(t *testing.T) {
	mod, err := Parse("app", `
		struct Wrapper {
			boxed: box<string>,
			list: [u8],
			maybe: option<u32>,
			either: result<u8, i16>,
		}
	`)
	require.NoError(t, err)

	def, ok := mod.Get("Wrapper")
	require.True(t, ok)
	require.Len(t, def.Fields, 4)

	assert.Equal(t, schema.BoxExpr, def.Fields[0].Type.Kind)
	assert.Equal(t, schema.String, def.Fields[0].Type.Elem.Primitive)

	assert.Equal(t, schema.ListExpr, def.Fields[1].Type.Kind)
	assert.Equal(t, schema.U8, def.Fields[1].Type.Elem.Primitive)

	assert.Equal(t, schema.OptionExpr, def.Fields[2].Type.Kind)
	assert.Equal(t, schema.U32, def.Fields[2].Type.Elem.Primitive)

	assert.Equal(t, schema.ResultExpr, def.Fields[3].Type.Kind)
	assert.Equal(t, schema.U8, def.Fields[3].Type.Ok.Primitive)
	assert.Equal(t, schema.I16, def.Fields[3].Type.Err.Primitive)
}

func TestParseQualifiedReference(t *testing.T) {
	mod, err := Parse("app", `
		struct Session {
			location: geo.Point,
		}
	`)
	require.NoError(t, err)

	def, _ := mod.Get("Session")
	ref := def.Fields[0].Type
	assert.Equal(t, schema.RefExpr, ref.Kind)
	assert.Equal(t, "geo", ref.Module)
	assert.Equal(t, "Point", ref.Name)
}

func TestParseStripsLineComments(t *testing.T) {
	mod, err := Parse("app", `
		// this whole line should vanish
		struct Point {
			x: f64, // trailing comment
			y: f64,
		}
	`)
	require.NoError(t, err)
	_, ok := mod.Get("Point")
	assert.True(t, ok)
}

func TestParseTrailingCommasAllowed(t *testing.T) {
	_, err := Parse("app", `struct Point<T,> { x: T, }`)
	assert.NoError(t, err)
}

func TestParseSyntaxErrorReportsOffset(t *testing.T) {
	_, err := Parse("app", `struct Point { x f64 }`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)
	assert.Contains(t, err.Error(), "at offset 17")
}

func TestParseDuplicateTypeNameRejected(t *testing.T) {
	_, err := Parse("app", `
		struct Point { x: f64 }
		struct Point { y: f64 }
	`)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrDuplicateTypeName)
}
