// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package wire

import (
	"encoding/binary"
	"math"
)

// Base lengths of the primitive types, per spec §4.1.
const (
	VoidBaseLen    = 0
	BoolBaseLen    = 1
	U8BaseLen      = 1
	U16BaseLen     = 2
	U32BaseLen     = 4
	U64BaseLen     = 8
	U128BaseLen    = 16
	F32BaseLen     = 4
	F64BaseLen     = 8
	StringBaseLen  = 8
	BoxBaseLen     = 4
	ListBaseLen    = 8
)

func EncodeBool(c *EncodeCursor, v bool) {
	b := c.Base(1)
	if v {
		b[0] = 1
	} else {
		b[0] = 0
	}
}

func DecodeBool(c *DecodeCursor) (bool, error) {
	b, err := c.Base(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, NewDecodeError(ErrInvalidBool, c.Offset()-1)
	}
}

func EncodeUint8(c *EncodeCursor, v uint8) { c.Base(1)[0] = v }

func DecodeUint8(c *DecodeCursor) (uint8, error) {
	b, err := c.Base(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func EncodeUint16(c *EncodeCursor, v uint16) { binary.LittleEndian.PutUint16(c.Base(2), v) }

func DecodeUint16(c *DecodeCursor) (uint16, error) {
	b, err := c.Base(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func EncodeUint32(c *EncodeCursor, v uint32) { binary.LittleEndian.PutUint32(c.Base(4), v) }

func DecodeUint32(c *DecodeCursor) (uint32, error) {
	b, err := c.Base(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func EncodeUint64(c *EncodeCursor, v uint64) { binary.LittleEndian.PutUint64(c.Base(8), v) }

func DecodeUint64(c *DecodeCursor) (uint64, error) {
	b, err := c.Base(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func EncodeInt8(c *EncodeCursor, v int8)   { EncodeUint8(c, uint8(v)) }
func DecodeInt8(c *DecodeCursor) (int8, error) {
	v, err := DecodeUint8(c)
	return int8(v), err
}

func EncodeInt16(c *EncodeCursor, v int16) { EncodeUint16(c, uint16(v)) }
func DecodeInt16(c *DecodeCursor) (int16, error) {
	v, err := DecodeUint16(c)
	return int16(v), err
}

func EncodeInt32(c *EncodeCursor, v int32) { EncodeUint32(c, uint32(v)) }
func DecodeInt32(c *DecodeCursor) (int32, error) {
	v, err := DecodeUint32(c)
	return int32(v), err
}

func EncodeInt64(c *EncodeCursor, v int64) { EncodeUint64(c, uint64(v)) }
func DecodeInt64(c *DecodeCursor) (int64, error) {
	v, err := DecodeUint64(c)
	return int64(v), err
}

func EncodeFloat32(c *EncodeCursor, v float32) { EncodeUint32(c, math.Float32bits(v)) }
func DecodeFloat32(c *DecodeCursor) (float32, error) {
	v, err := DecodeUint32(c)
	return math.Float32frombits(v), err
}

func EncodeFloat64(c *EncodeCursor, v float64) { EncodeUint64(c, math.Float64bits(v)) }
func DecodeFloat64(c *DecodeCursor) (float64, error) {
	v, err := DecodeUint64(c)
	return math.Float64frombits(v), err
}
