// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package parser

import (
	"fmt"

	"github.com/modrpc-org/mproto/schema"
)

// Parse turns schema source text into a named module, per the grammar
// in spec.md §6.2.
func Parse(moduleName, src string) (*schema.Module, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, mod: schema.NewModule(moduleName)}
	if err := p.parseFile(); err != nil {
		return nil, err
	}
	return p.mod, nil
}

type parser struct {
	toks []token
	pos  int
	mod  *schema.Module
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) atEOF() bool { return p.peek().kind == tokEOF }

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.peek().pos, fmt.Sprintf(format, args...))
}

func (p *parser) expectPunct(s string) error {
	t := p.peek()
	if t.kind != tokPunct || t.text != s {
		return p.errf("expected %q, got %q", s, t.text)
	}
	p.advance()
	return nil
}

func (p *parser) expectIdent() (string, error) {
	t := p.peek()
	if t.kind != tokIdent {
		return "", p.errf("expected identifier, got %q", t.text)
	}
	p.advance()
	return t.text, nil
}

func (p *parser) isPunct(s string) bool {
	t := p.peek()
	return t.kind == tokPunct && t.text == s
}

func (p *parser) isKeyword(s string) bool {
	t := p.peek()
	return t.kind == tokIdent && t.text == s
}

func (p *parser) parseFile() error {
	for !p.atEOF() {
		def, err := p.parseTypeDef()
		if err != nil {
			return err
		}
		if err := p.mod.Add(def); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseTypeDef() (*schema.TypeDef, error) {
	switch {
	case p.isKeyword("struct"):
		return p.parseStruct()
	case p.isKeyword("enum"):
		return p.parseEnum()
	default:
		return nil, p.errf("expected 'struct' or 'enum', got %q", p.peek().text)
	}
}

func (p *parser) parseStruct() (*schema.TypeDef, error) {
	p.advance() // 'struct'
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	params, err := p.parseOptionalTypeParams()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	fields, err := p.parseFields()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return &schema.TypeDef{Name: name, TypeParams: params, Kind: schema.StructDef, Fields: fields}, nil
}

func (p *parser) parseEnum() (*schema.TypeDef, error) {
	p.advance() // 'enum'
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	params, err := p.parseOptionalTypeParams()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	variants, err := p.parseVariants()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return &schema.TypeDef{Name: name, TypeParams: params, Kind: schema.EnumDef, Variants: variants}, nil
}

func (p *parser) parseOptionalTypeParams() ([]string, error) {
	if !p.isPunct("<") {
		return nil, nil
	}
	p.advance()
	var params []string
	for {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		params = append(params, name)
		if p.isPunct(",") {
			p.advance()
			if p.isPunct(">") {
				break
			}
			continue
		}
		break
	}
	if err := p.expectPunct(">"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *parser) parseFields() ([]schema.Field, error) {
	var fields []schema.Field
	if p.isPunct("}") {
		return fields, nil
	}
	for {
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
		if p.isPunct(",") {
			p.advance()
			if p.isPunct("}") {
				break
			}
			continue
		}
		break
	}
	return fields, nil
}

func (p *parser) parseField() (schema.Field, error) {
	name, err := p.expectIdent()
	if err != nil {
		return schema.Field{}, err
	}
	if err := p.expectPunct(":"); err != nil {
		return schema.Field{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return schema.Field{}, err
	}
	return schema.Field{Name: name, Type: typ}, nil
}

func (p *parser) parseVariants() ([]schema.Variant, error) {
	var variants []schema.Variant
	if p.isPunct("}") {
		return variants, nil
	}
	for {
		v, err := p.parseVariant()
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
		if p.isPunct(",") {
			p.advance()
			if p.isPunct("}") {
				break
			}
			continue
		}
		break
	}
	return variants, nil
}

func (p *parser) parseVariant() (schema.Variant, error) {
	name, err := p.expectIdent()
	if err != nil {
		return schema.Variant{}, err
	}
	if !p.isPunct("{") {
		return schema.Variant{Name: name}, nil
	}
	p.advance()
	fields, err := p.parseFields()
	if err != nil {
		return schema.Variant{}, err
	}
	if err := p.expectPunct("}"); err != nil {
		return schema.Variant{}, err
	}
	return schema.Variant{Name: name, Fields: fields}, nil
}

func (p *parser) parseType() (*schema.TypeExpr, error) {
	t := p.peek()

	if p.isPunct("[") {
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}
		return &schema.TypeExpr{Kind: schema.ListExpr, Elem: elem}, nil
	}

	if t.kind == tokIdent {
		switch t.text {
		case "box":
			p.advance()
			elem, err := p.parseAngledSingleton()
			if err != nil {
				return nil, err
			}
			return &schema.TypeExpr{Kind: schema.BoxExpr, Elem: elem}, nil
		case "option":
			p.advance()
			elem, err := p.parseAngledSingleton()
			if err != nil {
				return nil, err
			}
			return &schema.TypeExpr{Kind: schema.OptionExpr, Elem: elem}, nil
		case "result":
			p.advance()
			if err := p.expectPunct("<"); err != nil {
				return nil, err
			}
			ok, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(","); err != nil {
				return nil, err
			}
			errType, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(">"); err != nil {
				return nil, err
			}
			return &schema.TypeExpr{Kind: schema.ResultExpr, Ok: ok, Err: errType}, nil
		}

		if prim, ok := schema.ParsePrimitive(t.text); ok {
			p.advance()
			return &schema.TypeExpr{Kind: schema.PrimitiveExpr, Primitive: prim}, nil
		}

		return p.parseQualidentType()
	}

	return nil, p.errf("expected a type, got %q", t.text)
}

// parseAngledSingleton parses "< type >" for box<T> and option<T>.
func (p *parser) parseAngledSingleton() (*schema.TypeExpr, error) {
	if err := p.expectPunct("<"); err != nil {
		return nil, err
	}
	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(">"); err != nil {
		return nil, err
	}
	return elem, nil
}

func (p *parser) parseQualidentType() (*schema.TypeExpr, error) {
	first, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	moduleName := ""
	name := first
	if p.isPunct(".") {
		p.advance()
		name, err = p.expectIdent()
		if err != nil {
			return nil, err
		}
		moduleName = first
	}

	var args []*schema.TypeExpr
	if p.isPunct("<") {
		p.advance()
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.isPunct(",") {
				p.advance()
				if p.isPunct(">") {
					break
				}
				continue
			}
			break
		}
		if err := p.expectPunct(">"); err != nil {
			return nil, err
		}
	}

	return &schema.TypeExpr{Kind: schema.RefExpr, Module: moduleName, Name: name, Args: args}, nil
}
