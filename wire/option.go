// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package wire

// EncodeOption writes an option<T>'s tag byte plus BASE_LEN(T) base
// bytes: the payload when v is non-nil, or zero-filled padding when
// v is nil.
func EncodeOption[T any](c *EncodeCursor, v *T, innerBaseLen int, encode func(*EncodeCursor, T)) {
	tag := c.Base(1)
	if v == nil {
		tag[0] = 0
		clear(c.Base(innerBaseLen))
		return
	}
	tag[0] = 1
	encode(c, *v)
}

// DecodeOption reads the tag byte and, on Some, decodes T from the
// following base bytes; on None, advances past the reserved padding
// without reading it. Tag values other than 0/1 fail decode.
func DecodeOption[T any](c *DecodeCursor, innerBaseLen int, decode func(*DecodeCursor) (T, error)) (*T, error) {
	tagPos := c.Offset()
	tagByte, err := c.Base(1)
	if err != nil {
		return nil, err
	}
	switch tagByte[0] {
	case 0:
		c.Advance(innerBaseLen)
		return nil, nil
	case 1:
		v, err := decode(c)
		if err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, NewDecodeError(ErrInvalidOption, tagPos)
	}
}
