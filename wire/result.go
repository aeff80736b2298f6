// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package wire

// Result is the owned form of result<O, E>: exactly one of Ok/Err is
// meaningful, selected by IsOk.
type Result[O, E any] struct {
	IsOk bool
	Ok   O
	Err  E
}

func OkResult[O, E any](v O) Result[O, E]  { return Result[O, E]{IsOk: true, Ok: v} }
func ErrResult[O, E any](v E) Result[O, E] { return Result[O, E]{IsOk: false, Err: v} }

// EncodeResult writes the tag byte, the active variant, then zero
// pads up to the shared base length 1+max(okBaseLen, errBaseLen).
func EncodeResult[O, E any](c *EncodeCursor, v Result[O, E], okBaseLen, errBaseLen int, encodeOk func(*EncodeCursor, O), encodeErr func(*EncodeCursor, E)) {
	shared := okBaseLen
	if errBaseLen > shared {
		shared = errBaseLen
	}
	tag := c.Base(1)
	if v.IsOk {
		tag[0] = 0
		encodeOk(c, v.Ok)
		if pad := shared - okBaseLen; pad > 0 {
			clear(c.Base(pad))
		}
		return
	}
	tag[0] = 1
	encodeErr(c, v.Err)
	if pad := shared - errBaseLen; pad > 0 {
		clear(c.Base(pad))
	}
}

// DecodeResult reads the tag byte, decodes the active variant, then
// advances over the shared-base padding. Tag values other than 0/1
// fail decode.
func DecodeResult[O, E any](c *DecodeCursor, okBaseLen, errBaseLen int, decodeOk func(*DecodeCursor) (O, error), decodeErr func(*DecodeCursor) (E, error)) (Result[O, E], error) {
	shared := okBaseLen
	if errBaseLen > shared {
		shared = errBaseLen
	}
	tagPos := c.Offset()
	tagByte, err := c.Base(1)
	if err != nil {
		return Result[O, E]{}, err
	}
	switch tagByte[0] {
	case 0:
		v, err := decodeOk(c)
		if err != nil {
			return Result[O, E]{}, err
		}
		c.Advance(shared - okBaseLen)
		return OkResult[O, E](v), nil
	case 1:
		v, err := decodeErr(c)
		if err != nil {
			return Result[O, E]{}, err
		}
		c.Advance(shared - errBaseLen)
		return ErrResult[O, E](v), nil
	default:
		return Result[O, E]{}, NewDecodeError(ErrInvalidResult, tagPos)
	}
}
