// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package golang

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/modrpc-org/mproto/codegen"
	"github.com/modrpc-org/mproto/schema"
)

// exportName capitalizes a schema identifier's first rune so it's a
// Go-exported field or function name.
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

// emitInstantiation renders one concrete struct or enum instantiation
// per spec.md §4.9's per-definition emission steps (owned type, lazy
// view, conversion, and the shared Encodable witness).
func (r *renderer) emitInstantiation(inst *Instantiation, opts *codegen.Options) (string, error) {
	switch inst.Def.Kind {
	case schema.StructDef:
		return r.emitStruct(inst, opts)
	case schema.EnumDef:
		return r.emitEnum(inst, opts)
	default:
		return "", fmt.Errorf("golang: unhandled def kind %v", inst.Def.Kind)
	}
}

type structField struct {
	GoName   string
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
		fields[i] = structField{GoName: exportName(f.Name), Concrete: concrete, Offset: offset}
		offset += term.Const
	}
	return fields, nil
}

func (r *renderer) emitStruct(inst *Instantiation, opts *codegen.Options) (string, error) {
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

	fmt.Fprintf(&b, "type %s struct {\n", inst.Name)
	for i, f := range fields {
		goType, err := r.goType(f.Concrete, false)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\t%s %s\n", f.GoName, goType)
	}
	b.WriteString("}\n\n")

	heapGate := r.heapGateComment(def, opts)

	fmt.Fprintf(&b, "%sfunc (v %s) BaseLen() int { return %s }\n\n", heapGate, inst.Name, baseLenTerm.Render())

	b.WriteString(heapGate)
	fmt.Fprintf(&b, "func (v %s) ScratchLen() int {\n\ttotal := 0\n", inst.Name)
	for _, f := range fields {
		expr, err := r.scratchLenExpr(f.Concrete, "v."+f.GoName)
		if err != nil {
			return "", err
		}
		if expr != "0" {
			fmt.Fprintf(&b, "\ttotal += %s\n", expr)
		}
	}
	b.WriteString("\treturn total\n}\n\n")

	b.WriteString(heapGate)
	fmt.Fprintf(&b, "func (v %s) EncodeOn(c *wire.EncodeCursor) {\n", inst.Name)
	for _, f := range fields {
		stmt, err := r.encodeStmt(f.Concrete, "v."+f.GoName)
		if err != nil {
			return "", err
		}
		if stmt != "" {
			fmt.Fprintf(&b, "\t%s\n", stmt)
		}
	}
	b.WriteString("}\n\n")

	b.WriteString(heapGate)
	fmt.Fprintf(&b, "func Decode%s(c *wire.DecodeCursor) (%s, error) {\n\tvar zero %s\n", inst.Name, inst.Name, inst.Name)
	for _, f := range fields {
		expr, err := r.decodeExpr(f.Concrete)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\t%s, err := %s\n\tif err != nil {\n\t\treturn zero, err\n\t}\n", fieldVar(f.GoName), expr)
	}
	b.WriteString("\treturn " + inst.Name + "{\n")
	for _, f := range fields {
		fmt.Fprintf(&b, "\t\t%s: %s,\n", f.GoName, fieldVar(f.GoName))
	}
	b.WriteString("\t}, nil\n}\n\n")

	lazy, err := r.emitLazyStruct(inst, fields, baseLenTerm.Render())
	if err != nil {
		return "", err
	}
	b.WriteString(lazy)

	return b.String(), nil
}

func (r *renderer) emitLazyStruct(inst *Instantiation, fields []structField, baseLenExpr string) (string, error) {
	lazyName := "Lazy" + inst.Name
	var b strings.Builder

	fmt.Fprintf(&b, "// %s is a zero-copy view over %s: it holds only a buffer\n// reference and an offset, and decodes fields on demand.\n", lazyName, inst.Name)
	fmt.Fprintf(&b, "type %s struct {\n\tbuf    []byte\n\toffset int\n}\n\n", lazyName)

	fmt.Fprintf(&b, "func DecodeLazy%s(c *wire.DecodeCursor) (%s, error) {\n", inst.Name, lazyName)
	fmt.Fprintf(&b, "\toffset := c.Offset()\n\tif _, err := c.Base(%s); err != nil {\n\t\treturn %s{}, err\n\t}\n", baseLenExpr, lazyName)
	fmt.Fprintf(&b, "\treturn %s{buf: c.Buffer(), offset: offset}, nil\n}\n\n", lazyName)

	for _, f := range fields {
		lazyType, err := r.goType(f.Concrete, true)
		if err != nil {
			return "", err
		}
		decodeExpr, err := r.decodeLazyExpr(f.Concrete)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "func (v %s) %s() (%s, error) {\n", lazyName, f.GoName, lazyType)
		fmt.Fprintf(&b, "\tc := wire.AtOffset(v.buf, v.offset+%d)\n\treturn %s\n}\n\n", f.Offset, decodeExpr)
	}

	fmt.Fprintf(&b, "func (v %s) ToOwned() (%s, error) {\n\treturn Decode%s(wire.AtOffset(v.buf, v.offset))\n}\n\n", lazyName, inst.Name, inst.Name)
	fmt.Fprintf(&b, "func (v %s) BaseLen() int { return %s }\n\n", lazyName, baseLenExpr)
	fmt.Fprintf(&b, "func (v %s) ScratchLen() int {\n\towned, err := v.ToOwned()\n\tif err != nil {\n\t\treturn 0\n\t}\n\treturn owned.ScratchLen()\n}\n\n", lazyName)
	fmt.Fprintf(&b, "func (v %s) EncodeOn(c *wire.EncodeCursor) {\n\towned, err := v.ToOwned()\n\tif err == nil {\n\t\towned.EncodeOn(c)\n\t}\n}\n\n", lazyName)

	// Equal compares through the owned form, per the lazy-equality
	// decision on field-decode failure: a decode failure on either
	// side compares unequal rather than panicking.
	fmt.Fprintf(&b, "func (v %s) Equal(other %s) bool {\n", lazyName, lazyName)
	b.WriteString("\ta, errA := v.ToOwned()\n\tb, errB := other.ToOwned()\n\tif errA != nil || errB != nil {\n\t\treturn false\n\t}\n\treturn reflect.DeepEqual(a, b)\n}\n\n")

	return b.String(), nil
}

func fieldVar(goName string) string {
	r := []rune(goName)
	r[0] = unicode.ToLower(r[0])
	return "f" + string(r)
}

// heapGateComment returns a build-tag-style comment line gating a
// heap-allocating owned form behind the "heap available" switch
// (spec.md §4.9 point 4), or "" when the type needs no heap or the
// run has heap available.
func (r *renderer) heapGateComment(def *schema.TypeDef, opts *codegen.Options) string {
	if opts.HeapAvailable || !needsHeap(def) {
		return ""
	}
	return "//go:build mprotoheap\n\n"
}

func needsHeap(def *schema.TypeDef) bool {
	check := func(fields []schema.Field) bool {
		for _, f := range fields {
			if exprNeedsHeap(f.Type) {
				return true
			}
		}
		return false
	}
	switch def.Kind {
	case schema.StructDef:
		return check(def.Fields)
	case schema.EnumDef:
		for _, v := range def.Variants {
			if check(v.Fields) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func exprNeedsHeap(e *schema.TypeExpr) bool {
	switch e.Kind {
	case schema.PrimitiveExpr:
		return e.Primitive == schema.String
	case schema.BoxExpr, schema.ListExpr:
		return true
	case schema.OptionExpr:
		return exprNeedsHeap(e.Elem)
	case schema.ResultExpr:
		return exprNeedsHeap(e.Ok) || exprNeedsHeap(e.Err)
	default:
		return false
	}
}
