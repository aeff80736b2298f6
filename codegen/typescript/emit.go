// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package typescript

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/modrpc-org/mproto/codegen"
	"github.com/modrpc-org/mproto/schema"
)

// exportName capitalizes a schema field name for use as a lazy
// accessor method name (getRadius style getters aren't this corpus's
// convention; a capitalized bare method name matches the Go target's
// accessor naming instead).
func exportName(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func buildEnv(def *schema.TypeDef, args []*schema.TypeExpr) codegen.Env {
	env := make(codegen.Env, len(def.TypeParams))
	for i, p := range def.TypeParams {
		env[p] = args[i]
	}
	return env
}

type structField struct {
	Name     string // TS property name (camelCase-preserving, schema's own spelling)
	Concrete *schema.TypeExpr
	Offset   int
}

func (r *renderer) resolveStructFields(def *schema.TypeDef, env codegen.Env) ([]structField, error) {
	fields := make([]structField, len(def.Fields))
	offset := 0
	for i, f := range def.Fields {
		concrete := codegen.SubstExpr(f.Type, env)
		term, err := r.engine.BaseLen(concrete, nil)
		if err != nil {
			return nil, err
		}
		fields[i] = structField{Name: f.Name, Concrete: concrete, Offset: offset}
		offset += term.Const
	}
	return fields, nil
}

// emitInstantiation renders one concrete struct or enum instantiation
// as a TypeScript interface/type plus its encode/decode/scratchLen
// functions and (for structs) a lazy view class.
func (r *renderer) emitInstantiation(inst *codegen.Instantiation) (string, error) {
	switch inst.Def.Kind {
	case schema.StructDef:
		return r.emitStruct(inst)
	case schema.EnumDef:
		return r.emitEnum(inst)
	default:
		return "", fmt.Errorf("typescript: unhandled def kind %v", inst.Def.Kind)
	}
}

func (r *renderer) emitStruct(inst *codegen.Instantiation) (string, error) {
	def := inst.Def
	env := buildEnv(def, inst.Args)
	fields, err := r.resolveStructFields(def, env)
	if err != nil {
		return "", err
	}
	baseLenTerm, err := r.engine.BaseLenOfDef(def, inst.Args, nil)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	fmt.Fprintf(&b, "export interface %s {\n", inst.Name)
	for _, f := range fields {
		t, err := r.tsType(f.Concrete)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "  %s: %s;\n", f.Name, t)
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "export const baseLen%s = %s;\n\n", inst.Name, baseLenTerm.Render())

	fmt.Fprintf(&b, "export function scratchLen%s(v: %s): number {\n  let total = 0;\n", inst.Name, inst.Name)
	for _, f := range fields {
		expr, err := r.scratchLenExpr(f.Concrete, "v."+f.Name)
		if err != nil {
			return "", err
		}
		if expr != "0" {
			fmt.Fprintf(&b, "  total += %s;\n", expr)
		}
	}
	b.WriteString("  return total;\n}\n\n")

	fmt.Fprintf(&b, "export function encode%s(c: rt.EncodeCursor, v: %s): void {\n", inst.Name, inst.Name)
	for _, f := range fields {
		stmt, err := r.encodeStmt(f.Concrete, "v."+f.Name)
		if err != nil {
			return "", err
		}
		if stmt != "" {
			fmt.Fprintf(&b, "  %s\n", stmt)
		}
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "export function decode%s(c: rt.DecodeCursor): %s {\n  return {\n", inst.Name, inst.Name)
	for _, f := range fields {
		expr, err := r.decodeExpr(f.Concrete)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "    %s: %s,\n", f.Name, expr)
	}
	b.WriteString("  };\n}\n\n")

	lazy, err := r.emitLazyStruct(inst, fields, baseLenTerm.Render())
	if err != nil {
		return "", err
	}
	b.WriteString(lazy)

	return b.String(), nil
}

// emitLazyStruct renders a Lazy<Name> class holding only a buffer
// reference and an offset: each field is a method that decodes just
// that field's bytes on access, per spec.md §4.7-§4.8's per-field
// offset-sum approach, adapted to TypeScript's lack of generic
// zero-copy view types for nested box/list (those decode eagerly even
// from a lazy accessor — the "partial lazy support" spec.md §9 and
// SPEC_FULL.md §2 describe for this target).
func (r *renderer) emitLazyStruct(inst *codegen.Instantiation, fields []structField, baseLenExpr string) (string, error) {
	lazyName := "Lazy" + inst.Name
	var b strings.Builder

	fmt.Fprintf(&b, "export class %s {\n", lazyName)
	b.WriteString("  private constructor(private buf: Uint8Array, private offset: number) {}\n\n")
	fmt.Fprintf(&b, "  static decode(c: rt.DecodeCursor): %s {\n", lazyName)
	fmt.Fprintf(&b, "    const offset = c.offsetValue();\n    c.base(%s);\n    return new %s(c.buffer(), offset);\n  }\n\n", baseLenExpr, lazyName)

	for _, f := range fields {
		t, err := r.tsType(f.Concrete)
		if err != nil {
			return "", err
		}
		decodeExpr, err := r.decodeExpr(f.Concrete)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "  %s(): %s {\n", exportName(f.Name), t)
		fmt.Fprintf(&b, "    const c = rt.DecodeCursor.atOffset(this.buf, this.offset + %d);\n", f.Offset)
		fmt.Fprintf(&b, "    return %s;\n  }\n\n", decodeExpr)
	}

	fmt.Fprintf(&b, "  toOwned(): %s {\n    return decode%s(rt.DecodeCursor.atOffset(this.buf, this.offset));\n  }\n", inst.Name, inst.Name)
	b.WriteString("}\n\n")

	return b.String(), nil
}
