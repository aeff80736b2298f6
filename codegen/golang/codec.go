// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package golang

import (
	"fmt"

	"github.com/modrpc-org/mproto/schema"
)

// encodeStmt returns a Go statement that encodes valueExpr (an owned
// value of e's type) onto cursor c.
func (r *renderer) encodeStmt(e *schema.TypeExpr, valueExpr string) (string, error) {
	switch e.Kind {
	case schema.PrimitiveExpr:
		if e.Primitive == schema.Void {
			return "", nil
		}
		if e.Primitive == schema.String {
			return fmt.Sprintf("wire.EncodeString(c, %s)", valueExpr), nil
		}
		return fmt.Sprintf("wire.%s(c, %s)", primitiveEncodeFn[e.Primitive], valueExpr), nil

	case schema.BoxExpr:
		elemBaseLen, err := r.baseLenExpr(e.Elem)
		if err != nil {
			return "", err
		}
		encodeElem, err := r.encodeClosure(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wire.EncodeBox(c, %s, %s, %s)", valueExpr, elemBaseLen, encodeElem), nil

	case schema.ListExpr:
		elemBaseLen, err := r.baseLenExpr(e.Elem)
		if err != nil {
			return "", err
		}
		encodeElem, err := r.encodeClosure(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wire.EncodeList(c, %s, %s, %s)", valueExpr, elemBaseLen, encodeElem), nil

	case schema.OptionExpr:
		elemBaseLen, err := r.baseLenExpr(e.Elem)
		if err != nil {
			return "", err
		}
		encodeElem, err := r.encodeClosure(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wire.EncodeOption(c, %s, %s, %s)", valueExpr, elemBaseLen, encodeElem), nil

	case schema.ResultExpr:
		okBaseLen, err := r.baseLenExpr(e.Ok)
		if err != nil {
			return "", err
		}
		errBaseLen, err := r.baseLenExpr(e.Err)
		if err != nil {
			return "", err
		}
		encodeOk, err := r.encodeClosure(e.Ok)
		if err != nil {
			return "", err
		}
		encodeErr, err := r.encodeClosure(e.Err)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wire.EncodeResult(c, %s, %s, %s, %s, %s)", valueExpr, okBaseLen, errBaseLen, encodeOk, encodeErr), nil

	case schema.RefExpr:
		return fmt.Sprintf("(%s).EncodeOn(c)", valueExpr), nil

	default:
		return "", fmt.Errorf("golang: unhandled type expression kind %v", e.Kind)
	}
}

// encodeClosure returns a `func(*wire.EncodeCursor, T) { ... }` value
// usable as a generic helper's encode callback.
func (r *renderer) encodeClosure(e *schema.TypeExpr) (string, error) {
	t, err := r.goType(e, false)
	if err != nil {
		return "", err
	}
	stmt, err := r.encodeStmt(e, "v")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("func(c *wire.EncodeCursor, v %s) { %s }", t, stmt), nil
}

// decodeExpr returns a Go expression of type `(T, error)` that
// decodes e's owned form from cursor c.
func (r *renderer) decodeExpr(e *schema.TypeExpr) (string, error) {
	switch e.Kind {
	case schema.PrimitiveExpr:
		if e.Primitive == schema.Void {
			return "struct{}{}, error(nil)", nil
		}
		if e.Primitive == schema.String {
			return "wire.DecodeString(c)", nil
		}
		return fmt.Sprintf("wire.%s(c)", primitiveDecodeFn[e.Primitive]), nil

	case schema.BoxExpr:
		decodeElem, err := r.decodeClosure(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wire.DecodeBox(c, %s)", decodeElem), nil

	case schema.ListExpr:
		elemBaseLen, err := r.baseLenExpr(e.Elem)
		if err != nil {
			return "", err
		}
		decodeElem, err := r.decodeClosure(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wire.DecodeList(c, %s, %s)", elemBaseLen, decodeElem), nil

	case schema.OptionExpr:
		elemBaseLen, err := r.baseLenExpr(e.Elem)
		if err != nil {
			return "", err
		}
		decodeElem, err := r.decodeClosure(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wire.DecodeOption(c, %s, %s)", elemBaseLen, decodeElem), nil

	case schema.ResultExpr:
		okBaseLen, err := r.baseLenExpr(e.Ok)
		if err != nil {
			return "", err
		}
		errBaseLen, err := r.baseLenExpr(e.Err)
		if err != nil {
			return "", err
		}
		decodeOk, err := r.decodeClosure(e.Ok)
		if err != nil {
			return "", err
		}
		decodeErr, err := r.decodeClosure(e.Err)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wire.DecodeResult(c, %s, %s, %s, %s)", okBaseLen, errBaseLen, decodeOk, decodeErr), nil

	case schema.RefExpr:
		name, err := r.refName(e)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Decode%s(c)", name), nil

	default:
		return "", fmt.Errorf("golang: unhandled type expression kind %v", e.Kind)
	}
}

func (r *renderer) decodeClosure(e *schema.TypeExpr) (string, error) {
	t, err := r.goType(e, false)
	if err != nil {
		return "", err
	}
	expr, err := r.decodeExpr(e)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("func(c *wire.DecodeCursor) (%s, error) { return %s }", t, expr), nil
}

// decodeLazyExpr mirrors decodeExpr but for the zero-copy view form.
func (r *renderer) decodeLazyExpr(e *schema.TypeExpr) (string, error) {
	switch e.Kind {
	case schema.PrimitiveExpr:
		if e.Primitive == schema.String {
			return "wire.DecodeLazyString(c)", nil
		}
		return r.decodeExpr(e)

	case schema.BoxExpr:
		decodeElem, err := r.decodeLazyClosure(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wire.DecodeLazyBox(c, %s)", decodeElem), nil

	case schema.ListExpr:
		elemBaseLen, err := r.baseLenExpr(e.Elem)
		if err != nil {
			return "", err
		}
		decodeElem, err := r.decodeLazyClosure(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wire.DecodeLazyList(c, %s, %s)", elemBaseLen, decodeElem), nil

	case schema.OptionExpr:
		elemBaseLen, err := r.baseLenExpr(e.Elem)
		if err != nil {
			return "", err
		}
		decodeElem, err := r.decodeLazyClosure(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wire.DecodeOption(c, %s, %s)", elemBaseLen, decodeElem), nil

	case schema.ResultExpr:
		okBaseLen, err := r.baseLenExpr(e.Ok)
		if err != nil {
			return "", err
		}
		errBaseLen, err := r.baseLenExpr(e.Err)
		if err != nil {
			return "", err
		}
		decodeOk, err := r.decodeLazyClosure(e.Ok)
		if err != nil {
			return "", err
		}
		decodeErr, err := r.decodeLazyClosure(e.Err)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wire.DecodeResult(c, %s, %s, %s, %s)", okBaseLen, errBaseLen, decodeOk, decodeErr), nil

	case schema.RefExpr:
		name, err := r.refName(e)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("DecodeLazy%s(c)", name), nil

	default:
		return "", fmt.Errorf("golang: unhandled type expression kind %v", e.Kind)
	}
}

func (r *renderer) decodeLazyClosure(e *schema.TypeExpr) (string, error) {
	t, err := r.goType(e, true)
	if err != nil {
		return "", err
	}
	expr, err := r.decodeLazyExpr(e)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("func(c *wire.DecodeCursor) (%s, error) { return %s }", t, expr), nil
}

// scratchLenExpr returns a Go expression computing the scratch bytes
// valueExpr needs beyond its base region.
func (r *renderer) scratchLenExpr(e *schema.TypeExpr, valueExpr string) (string, error) {
	switch e.Kind {
	case schema.PrimitiveExpr:
		if e.Primitive == schema.String {
			return fmt.Sprintf("wire.StringScratchLen(%s)", valueExpr), nil
		}
		return "0", nil

	case schema.BoxExpr:
		elemScratch, err := r.scratchLenExpr(e.Elem, "*"+valueExpr)
		if err != nil {
			return "", err
		}
		elemBaseLen, err := r.baseLenExpr(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s + %s", elemBaseLen, elemScratch), nil

	case schema.ListExpr:
		elemBaseLen, err := r.baseLenExpr(e.Elem)
		if err != nil {
			return "", err
		}
		elemsScratch, err := r.listElemsScratchLenExpr(e.Elem, valueExpr)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wire.ListScratchLen(len(%s), %s, %s)", valueExpr, elemBaseLen, elemsScratch), nil

	case schema.OptionExpr:
		inner, err := r.scratchLenExpr(e.Elem, "*"+valueExpr)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wire.OptionScratchLen(%s, func() int { return %s })", valueExpr, inner), nil

	case schema.ResultExpr:
		okScratch, err := r.scratchLenExpr(e.Ok, valueExpr+".Ok")
		if err != nil {
			return "", err
		}
		errScratch, err := r.scratchLenExpr(e.Err, valueExpr+".Err")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wire.ResultScratchLen(%s.IsOk, func() int { return %s }, func() int { return %s })", valueExpr, okScratch, errScratch), nil

	case schema.RefExpr:
		return fmt.Sprintf("(%s).ScratchLen()", valueExpr), nil

	default:
		return "", fmt.Errorf("golang: unhandled type expression kind %v", e.Kind)
	}
}

func (r *renderer) listElemsScratchLenExpr(elem *schema.TypeExpr, listExpr string) (string, error) {
	if isScratchFree(elem) {
		return "0", nil
	}
	itemScratch, err := r.scratchLenExpr(elem, "item")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("wire.SumScratchLen(%s, func(item %s) int { return %s })", listExpr, mustGoType(r, elem, false), itemScratch), nil
}

func mustGoType(r *renderer, e *schema.TypeExpr, lazy bool) string {
	t, err := r.goType(e, lazy)
	if err != nil {
		return "any"
	}
	return t
}

// isScratchFree reports whether every value of e's type always has
// zero scratch length, letting generated code skip an element loop.
func isScratchFree(e *schema.TypeExpr) bool {
	switch e.Kind {
	case schema.PrimitiveExpr:
		return e.Primitive != schema.String
	default:
		return false
	}
}

// baseLenExpr renders e's BASE_LEN as a Go expression; concrete after
// monomorphization, so this always collapses to an integer literal.
func (r *renderer) baseLenExpr(e *schema.TypeExpr) (string, error) {
	term, err := r.engine.BaseLen(e, nil)
	if err != nil {
		return "", err
	}
	return term.Render(), nil
}
