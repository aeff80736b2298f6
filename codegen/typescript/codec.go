// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package typescript

import (
	"fmt"

	"github.com/modrpc-org/mproto/schema"
)

// encodeStmt returns a TypeScript statement encoding valueExpr (an
// owned value of e's type) onto cursor c.
func (r *renderer) encodeStmt(e *schema.TypeExpr, valueExpr string) (string, error) {
	switch e.Kind {
	case schema.PrimitiveExpr:
		if e.Primitive == schema.Void {
			return "", nil
		}
		if e.Primitive == schema.String {
			return fmt.Sprintf("rt.encodeString(c, %s);", valueExpr), nil
		}
		return fmt.Sprintf("rt.%s(c, %s);", primitiveEncodeFn[e.Primitive], valueExpr), nil

	case schema.BoxExpr:
		elemBaseLen, err := r.baseLenExpr(e.Elem)
		if err != nil {
			return "", err
		}
		encodeElem, err := r.encodeClosure(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("rt.encodeBox(c, %s, %s, %s);", valueExpr, elemBaseLen, encodeElem), nil

	case schema.ListExpr:
		elemBaseLen, err := r.baseLenExpr(e.Elem)
		if err != nil {
			return "", err
		}
		encodeElem, err := r.encodeClosure(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("rt.encodeList(c, %s, %s, %s);", valueExpr, elemBaseLen, encodeElem), nil

	case schema.OptionExpr:
		elemBaseLen, err := r.baseLenExpr(e.Elem)
		if err != nil {
			return "", err
		}
		encodeElem, err := r.encodeClosure(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("rt.encodeOption(c, %s, %s, %s);", valueExpr, elemBaseLen, encodeElem), nil

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
		return fmt.Sprintf("rt.encodeResult(c, %s, %s, %s, %s, %s);", valueExpr, okBaseLen, errBaseLen, encodeOk, encodeErr), nil

	case schema.RefExpr:
		name, err := r.refName(e)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("encode%s(c, %s);", name, valueExpr), nil

	default:
		return "", fmt.Errorf("typescript: unhandled type expression kind %v", e.Kind)
	}
}

func (r *renderer) encodeClosure(e *schema.TypeExpr) (string, error) {
	t, err := r.tsType(e)
	if err != nil {
		return "", err
	}
	stmt, err := r.encodeStmt(e, "v")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(c: rt.EncodeCursor, v: %s) => { %s }", t, stmt), nil
}

// decodeExpr returns a TypeScript expression of type T decoding e's
// owned form from cursor c.
func (r *renderer) decodeExpr(e *schema.TypeExpr) (string, error) {
	switch e.Kind {
	case schema.PrimitiveExpr:
		if e.Primitive == schema.Void {
			return "null", nil
		}
		if e.Primitive == schema.String {
			return "rt.decodeString(c)", nil
		}
		return fmt.Sprintf("rt.%s(c)", primitiveDecodeFn[e.Primitive]), nil

	case schema.BoxExpr:
		decodeElem, err := r.decodeClosure(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("rt.decodeBox(c, %s)", decodeElem), nil

	case schema.ListExpr:
		elemBaseLen, err := r.baseLenExpr(e.Elem)
		if err != nil {
			return "", err
		}
		decodeElem, err := r.decodeClosure(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("rt.decodeList(c, %s, %s)", elemBaseLen, decodeElem), nil

	case schema.OptionExpr:
		elemBaseLen, err := r.baseLenExpr(e.Elem)
		if err != nil {
			return "", err
		}
		decodeElem, err := r.decodeClosure(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("rt.decodeOption(c, %s, %s)", elemBaseLen, decodeElem), nil

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
		return fmt.Sprintf("rt.decodeResult(c, %s, %s, %s, %s)", okBaseLen, errBaseLen, decodeOk, decodeErr), nil

	case schema.RefExpr:
		name, err := r.refName(e)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("decode%s(c)", name), nil

	default:
		return "", fmt.Errorf("typescript: unhandled type expression kind %v", e.Kind)
	}
}

func (r *renderer) decodeClosure(e *schema.TypeExpr) (string, error) {
	expr, err := r.decodeExpr(e)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(c: rt.DecodeCursor) => %s", expr), nil
}

// scratchLenExpr returns a TypeScript expression computing the
// scratch bytes valueExpr needs beyond its base region.
func (r *renderer) scratchLenExpr(e *schema.TypeExpr, valueExpr string) (string, error) {
	switch e.Kind {
	case schema.PrimitiveExpr:
		if e.Primitive == schema.String {
			return fmt.Sprintf("rt.stringScratchLen(%s)", valueExpr), nil
		}
		return "0", nil

	case schema.BoxExpr:
		elemScratch, err := r.scratchLenExpr(e.Elem, valueExpr)
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
		return fmt.Sprintf("rt.listScratchLen(%s.length, %s, %s)", valueExpr, elemBaseLen, elemsScratch), nil

	case schema.OptionExpr:
		inner, err := r.scratchLenExpr(e.Elem, valueExpr)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("rt.optionScratchLen(%s, () => %s)", valueExpr, inner), nil

	case schema.ResultExpr:
		okScratch, err := r.scratchLenExpr(e.Ok, valueExpr+".value")
		if err != nil {
			return "", err
		}
		errScratch, err := r.scratchLenExpr(e.Err, valueExpr+".error")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("rt.resultScratchLen(%s.ok, () => %s, () => %s)", valueExpr, okScratch, errScratch), nil

	case schema.RefExpr:
		name, err := r.refName(e)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("scratchLen%s(%s)", name, valueExpr), nil

	default:
		return "", fmt.Errorf("typescript: unhandled type expression kind %v", e.Kind)
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
	return fmt.Sprintf("rt.sumScratchLen(%s, (item) => %s)", listExpr, itemScratch), nil
}

func isScratchFree(e *schema.TypeExpr) bool {
	switch e.Kind {
	case schema.PrimitiveExpr:
		return e.Primitive != schema.String
	default:
		return false
	}
}

// baseLenExpr renders e's BASE_LEN; concrete after monomorphization,
// so this always collapses to an integer literal.
func (r *renderer) baseLenExpr(e *schema.TypeExpr) (string, error) {
	term, err := r.engine.BaseLen(e, nil)
	if err != nil {
		return "", err
	}
	return term.Render(), nil
}
