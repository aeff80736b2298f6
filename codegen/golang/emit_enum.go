// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package golang

import (
	"fmt"
	"strings"

	"github.com/modrpc-org/mproto/codegen"
	"github.com/modrpc-org/mproto/schema"
)

type enumVariant struct {
	Name     string // schema name of the variant
	GoName   string // exported Go identifier
	Fields   []structField
	BaseLen  int
	TagValue int
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
			fields[j] = structField{GoName: exportName(f.Name), Concrete: concrete, Offset: offset}
			offset += term.Const
		}
		variants[i] = enumVariant{Name: v.Name, GoName: exportName(v.Name), Fields: fields, BaseLen: offset, TagValue: i}
		if offset > maxLen {
			maxLen = offset
		}
	}
	return variants, maxLen, nil
}

func (r *renderer) emitEnum(inst *Instantiation, opts *codegen.Options) (string, error) {
	def := inst.Def
	env := buildEnv(def, inst.Args)
	variants, maxLen, err := r.resolveEnumVariants(def, env)
	if err != nil {
		return "", err
	}

	tagType := inst.Name + "Tag"
	var b strings.Builder

	fmt.Fprintf(&b, "type %s uint8\n\nconst (\n", tagType)
	for i, v := range variants {
		if i == 0 {
			fmt.Fprintf(&b, "\t%s%s %s = iota\n", inst.Name, v.GoName, tagType)
		} else {
			fmt.Fprintf(&b, "\t%s%s\n", inst.Name, v.GoName)
		}
	}
	b.WriteString(")\n\n")

	fmt.Fprintf(&b, "type %s struct {\n\tTag %s\n", inst.Name, tagType)
	for _, v := range variants {
		if len(v.Fields) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\t%s %s%s\n", v.GoName, inst.Name, v.GoName)
	}
	b.WriteString("}\n\n")

	for _, v := range variants {
		if len(v.Fields) == 0 {
			continue
		}
		fmt.Fprintf(&b, "type %s%s struct {\n", inst.Name, v.GoName)
		for _, f := range v.Fields {
			t, err := r.goType(f.Concrete, false)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "\t%s %s\n", f.GoName, t)
		}
		b.WriteString("}\n\n")
	}

	fmt.Fprintf(&b, "func (v %s) BaseLen() int { return 1 + %d }\n\n", inst.Name, maxLen)

	fmt.Fprintf(&b, "func (v %s) ScratchLen() int {\n\tswitch v.Tag {\n", inst.Name)
	for _, v := range variants {
		fmt.Fprintf(&b, "\tcase %s%s:\n\t\ttotal := 0\n", inst.Name, v.GoName)
		for _, f := range v.Fields {
			expr, err := r.scratchLenExpr(f.Concrete, "v."+v.GoName+"."+f.GoName)
			if err != nil {
				return "", err
			}
			if expr != "0" {
				fmt.Fprintf(&b, "\t\ttotal += %s\n", expr)
			}
		}
		b.WriteString("\t\treturn total\n")
	}
	b.WriteString("\tdefault:\n\t\treturn 0\n\t}\n}\n\n")

	if err := r.emitEnumEncode(&b, inst, variants, maxLen); err != nil {
		return "", err
	}
	if err := r.emitEnumDecode(&b, inst, variants, maxLen); err != nil {
		return "", err
	}
	lazy, err := r.emitLazyEnum(inst, variants, maxLen)
	if err != nil {
		return "", err
	}
	b.WriteString(lazy)

	return b.String(), nil
}

func (r *renderer) emitEnumEncode(b *strings.Builder, inst *Instantiation, variants []enumVariant, maxLen int) error {
	fmt.Fprintf(b, "func (v %s) EncodeOn(c *wire.EncodeCursor) {\n\ttag := c.Base(1)\n\ttag[0] = byte(v.Tag)\n\tswitch v.Tag {\n", inst.Name)
	for _, variant := range variants {
		fmt.Fprintf(b, "\tcase %s%s:\n", inst.Name, variant.GoName)
		for _, f := range variant.Fields {
			stmt, err := r.encodeStmt(f.Concrete, "v."+variant.GoName+"."+f.GoName)
			if err != nil {
				return err
			}
			if stmt != "" {
				fmt.Fprintf(b, "\t\t%s\n", stmt)
			}
		}
		if pad := maxLen - variant.BaseLen; pad > 0 {
			fmt.Fprintf(b, "\t\tclear(c.Base(%d))\n", pad)
		}
	}
	b.WriteString("\t}\n}\n\n")
	return nil
}

func (r *renderer) emitEnumDecode(b *strings.Builder, inst *Instantiation, variants []enumVariant, maxLen int) error {
	fmt.Fprintf(b, "func Decode%s(c *wire.DecodeCursor) (%s, error) {\n", inst.Name, inst.Name)
	b.WriteString("\tvar zero " + inst.Name + "\n\ttagPos := c.Offset()\n\ttagByte, err := c.Base(1)\n\tif err != nil {\n\t\treturn zero, err\n\t}\n\tswitch tagByte[0] {\n")
	for _, variant := range variants {
		fmt.Fprintf(b, "\tcase %d:\n", variant.TagValue)
		for _, f := range variant.Fields {
			expr, err := r.decodeExpr(f.Concrete)
			if err != nil {
				return err
			}
			fmt.Fprintf(b, "\t\t%s, err := %s\n\t\tif err != nil {\n\t\t\treturn zero, err\n\t\t}\n", fieldVar(f.GoName), expr)
		}
		if pad := maxLen - variant.BaseLen; pad > 0 {
			fmt.Fprintf(b, "\t\tc.Advance(%d)\n", pad)
		}
		b.WriteString("\t\treturn " + inst.Name + "{\n\t\t\tTag: " + inst.Name + variant.GoName + ",\n")
		if len(variant.Fields) > 0 {
			fmt.Fprintf(b, "\t\t\t%s: %s%s{\n", variant.GoName, inst.Name, variant.GoName)
			for _, f := range variant.Fields {
				fmt.Fprintf(b, "\t\t\t\t%s: %s,\n", f.GoName, fieldVar(f.GoName))
			}
			b.WriteString("\t\t\t},\n")
		}
		b.WriteString("\t\t}, nil\n")
	}
	b.WriteString("\tdefault:\n\t\treturn zero, wire.NewDecodeError(wire.ErrInvalidEnum, tagPos)\n\t}\n}\n\n")
	return nil
}

func (r *renderer) emitLazyEnum(inst *Instantiation, variants []enumVariant, maxLen int) (string, error) {
	lazyName := "Lazy" + inst.Name
	var b strings.Builder

	fmt.Fprintf(&b, "// %s mirrors %s but decodes each field of the active\n// variant into its lazy form; per spec it does not expose\n// per-field accessors without decoding the whole active variant.\n", lazyName, inst.Name)
	fmt.Fprintf(&b, "type %s struct {\n\tbuf    []byte\n\toffset int\n\tTag    %sTag\n", lazyName, inst.Name)
	for _, v := range variants {
		if len(v.Fields) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\t%s Lazy%s%s\n", v.GoName, inst.Name, v.GoName)
	}
	b.WriteString("}\n\n")

	for _, v := range variants {
		if len(v.Fields) == 0 {
			continue
		}
		fmt.Fprintf(&b, "type Lazy%s%s struct {\n", inst.Name, v.GoName)
		for _, f := range v.Fields {
			t, err := r.goType(f.Concrete, true)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "\t%s %s\n", f.GoName, t)
		}
		b.WriteString("}\n\n")
	}

	fmt.Fprintf(&b, "func DecodeLazy%s(c *wire.DecodeCursor) (%s, error) {\n", inst.Name, lazyName)
	b.WriteString("\ttagPos := c.Offset()\n\ttagByte, err := c.Base(1)\n\tif err != nil {\n\t\treturn " + lazyName + "{}, err\n\t}\n\tswitch tagByte[0] {\n")
	for _, variant := range variants {
		fmt.Fprintf(&b, "\tcase %d:\n", variant.TagValue)
		for _, f := range variant.Fields {
			expr, err := r.decodeLazyExpr(f.Concrete)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "\t\t%s, err := %s\n\t\tif err != nil {\n\t\t\treturn %s{}, err\n\t\t}\n", fieldVar(f.GoName), expr, lazyName)
		}
		if pad := maxLen - variant.BaseLen; pad > 0 {
			fmt.Fprintf(&b, "\t\tc.Advance(%d)\n", pad)
		}
		b.WriteString("\t\treturn " + lazyName + "{\n\t\t\tbuf: c.Buffer(),\n\t\t\toffset: tagPos,\n\t\t\tTag: " + inst.Name + variant.GoName + ",\n")
		if len(variant.Fields) > 0 {
			fmt.Fprintf(&b, "\t\t\t%s: Lazy%s%s{\n", variant.GoName, inst.Name, variant.GoName)
			for _, f := range variant.Fields {
				fmt.Fprintf(&b, "\t\t\t\t%s: %s,\n", f.GoName, fieldVar(f.GoName))
			}
			b.WriteString("\t\t\t},\n")
		}
		b.WriteString("\t\t}, nil\n")
	}
	b.WriteString("\tdefault:\n\t\treturn " + lazyName + "{}, wire.NewDecodeError(wire.ErrInvalidEnum, tagPos)\n\t}\n}\n\n")

	fmt.Fprintf(&b, "func (v %s) ToOwned() (%s, error) {\n\treturn Decode%s(wire.AtOffset(v.buf, v.offset))\n}\n\n", lazyName, inst.Name, inst.Name)
	fmt.Fprintf(&b, "func (v %s) BaseLen() int { return 1 + %d }\n\n", lazyName, maxLen)
	fmt.Fprintf(&b, "func (v %s) ScratchLen() int {\n\towned, err := v.ToOwned()\n\tif err != nil {\n\t\treturn 0\n\t}\n\treturn owned.ScratchLen()\n}\n\n", lazyName)
	fmt.Fprintf(&b, "func (v %s) EncodeOn(c *wire.EncodeCursor) {\n\towned, err := v.ToOwned()\n\tif err == nil {\n\t\towned.EncodeOn(c)\n\t}\n}\n\n", lazyName)
	fmt.Fprintf(&b, "func (v %s) Equal(other %s) bool {\n\ta, errA := v.ToOwned()\n\tb, errB := other.ToOwned()\n\tif errA != nil || errB != nil {\n\t\treturn false\n\t}\n\treturn reflect.DeepEqual(a, b)\n}\n\n", lazyName, lazyName)

	return b.String(), nil
}
