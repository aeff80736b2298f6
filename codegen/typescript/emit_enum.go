// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package typescript

import (
	"fmt"
	"strings"

	"github.com/modrpc-org/mproto/codegen"
	"github.com/modrpc-org/mproto/schema"
)

type enumVariant struct {
	Name    string // schema spelling, used as the discriminant's literal value
	Fields  []structField
	BaseLen int
	Tag     int
}

func (r *renderer) resolveEnumVariants(def *schema.TypeDef, env codegen.Env) ([]enumVariant, int, error) {
	variants := make([]enumVariant, len(def.Variants))
	maxLen := 0
	for i, v := range def.Variants {
		offset := 0
		fields := make([]structField, len(v.Fields))
		for j, f := range v.Fields {
			concrete := codegen.SubstExpr(f.Type, env)
			term, err := r.engine.BaseLen(concrete, nil)
			if err != nil {
				return nil, 0, err
			}
			fields[j] = structField{Name: f.Name, Concrete: concrete, Offset: offset}
			offset += term.Const
		}
		variants[i] = enumVariant{Name: v.Name, Fields: fields, BaseLen: offset, Tag: i}
		if offset > maxLen {
			maxLen = offset
		}
	}
	return variants, maxLen, nil
}

// emitEnum renders an enum as a tagged union: a discriminated
// TypeScript union type keyed by a `tag` string literal field, one
// arm per variant, which is the idiomatic TS sum-type shape (unlike
// the Go target's always-allocated Tag-plus-every-field struct, TS
// unions narrow naturally on the `tag` field without needing that
// workaround).
func (r *renderer) emitEnum(inst *codegen.Instantiation) (string, error) {
	def := inst.Def
	env := buildEnv(def, inst.Args)
	variants, maxLen, err := r.resolveEnumVariants(def, env)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	fmt.Fprintf(&b, "export type %s =\n", inst.Name)
	for i, v := range variants {
		sep := " |"
		if i == len(variants)-1 {
			sep = ";"
		}
		if len(v.Fields) == 0 {
			fmt.Fprintf(&b, "  { tag: %q }%s\n", v.Name, sep)
			continue
		}
		b.WriteString("  { tag: " + fmt.Sprintf("%q", v.Name))
		for _, f := range v.Fields {
			t, err := r.tsType(f.Concrete)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "; %s: %s", f.Name, t)
		}
		fmt.Fprintf(&b, " }%s\n", sep)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "export const baseLen%s = 1 + %d;\n\n", inst.Name, maxLen)

	fmt.Fprintf(&b, "export function scratchLen%s(v: %s): number {\n  switch (v.tag) {\n", inst.Name, inst.Name)
	for _, v := range variants {
		fmt.Fprintf(&b, "    case %q: {\n      let total = 0;\n", v.Name)
		for _, f := range v.Fields {
			expr, err := r.scratchLenExpr(f.Concrete, "v."+f.Name)
			if err != nil {
				return "", err
			}
			if expr != "0" {
				fmt.Fprintf(&b, "      total += %s;\n", expr)
			}
		}
		b.WriteString("      return total;\n    }\n")
	}
	b.WriteString("  }\n}\n\n")

	if err := r.emitEnumEncode(&b, inst, variants, maxLen); err != nil {
		return "", err
	}
	if err := r.emitEnumDecode(&b, inst, variants, maxLen); err != nil {
		return "", err
	}

	// Lazy enum decode falls back to the owned path and wraps the
	// result (Open Question #1's stated, acknowledged limitation for
	// the scripting target: no per-field deferred accessors here).
	lazyName := "Lazy" + inst.Name
	fmt.Fprintf(&b, "export class %s {\n", lazyName)
	b.WriteString("  private constructor(private value: " + inst.Name + ") {}\n\n")
	fmt.Fprintf(&b, "  static decode(c: rt.DecodeCursor): %s {\n    return new %s(decode%s(c));\n  }\n\n", lazyName, lazyName, inst.Name)
	fmt.Fprintf(&b, "  toOwned(): %s {\n    return this.value;\n  }\n}\n\n", inst.Name)

	return b.String(), nil
}

func (r *renderer) emitEnumEncode(b *strings.Builder, inst *codegen.Instantiation, variants []enumVariant, maxLen int) error {
	fmt.Fprintf(b, "export function encode%s(c: rt.EncodeCursor, v: %s): void {\n  switch (v.tag) {\n", inst.Name, inst.Name)
	for i, variant := range variants {
		fmt.Fprintf(b, "    case %q: {\n      rt.encodeUint8(c, %d);\n", variant.Name, i)
		for _, f := range variant.Fields {
			stmt, err := r.encodeStmt(f.Concrete, "v."+f.Name)
			if err != nil {
				return err
			}
			if stmt != "" {
				fmt.Fprintf(b, "      %s\n", stmt)
			}
		}
		if pad := maxLen - variant.BaseLen; pad > 0 {
			fmt.Fprintf(b, "      c.base(%d).fill(0);\n", pad)
		}
		b.WriteString("      break;\n    }\n")
	}
	b.WriteString("  }\n}\n\n")
	return nil
}

func (r *renderer) emitEnumDecode(b *strings.Builder, inst *codegen.Instantiation, variants []enumVariant, maxLen int) error {
	fmt.Fprintf(b, "export function decode%s(c: rt.DecodeCursor): %s {\n", inst.Name, inst.Name)
	b.WriteString("  const tagPos = c.offsetValue();\n  const tag = rt.decodeUint8(c);\n  switch (tag) {\n")
	for _, variant := range variants {
		fmt.Fprintf(b, "    case %d: {\n", variant.Tag)
		assigns := make([]string, 0, len(variant.Fields))
		for _, f := range variant.Fields {
			expr, err := r.decodeExpr(f.Concrete)
			if err != nil {
				return err
			}
			assigns = append(assigns, fmt.Sprintf("%s: %s", f.Name, expr))
		}
		if pad := maxLen - variant.BaseLen; pad > 0 {
			fmt.Fprintf(b, "      const v: %s = { tag: %q%s };\n      c.advance(%d);\n      return v;\n", inst.Name, variant.Name, prependComma(assigns), pad)
		} else {
			fmt.Fprintf(b, "      return { tag: %q%s };\n", variant.Name, prependComma(assigns))
		}
		b.WriteString("    }\n")
	}
	fmt.Fprintf(b, "    default:\n      throw new rt.DecodeError(\"invalid enum tag\", tagPos);\n  }\n}\n\n")
	return nil
}

func prependComma(assigns []string) string {
	if len(assigns) == 0 {
		return ""
	}
	return ", " + strings.Join(assigns, ", ")
}
