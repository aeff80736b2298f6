// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package wire

import "math/big"

// Uint128 and Int128 exist because Go has no native 128-bit integer.
// Both are little-endian 16-byte scalars, credited 16 bytes of base
// length by the layout engine exactly like any other fixed-width
// primitive (spec §9, Open Question #3).
type Uint128 [16]byte

type Int128 [16]byte

// BigInt converts a Uint128 to an unsigned math/big.Int.
func (u Uint128) BigInt() *big.Int {
	be := reverse16(u)
	return new(big.Int).SetBytes(be[:])
}

// Uint128FromBigInt converts a non-negative math/big.Int into a
// Uint128. It panics if v does not fit in 128 bits.
func Uint128FromBigInt(v *big.Int) Uint128 {
	var be [16]byte
	v.FillBytes(be[:])
	return reverse16(be)
}

// BigInt converts an Int128 to a signed math/big.Int using two's
// complement semantics.
func (i Int128) BigInt() *big.Int {
	be := reverse16([16]byte(i))
	magnitude := new(big.Int).SetBytes(be[:])
	if be[0]&0x80 == 0 {
		return magnitude
	}
	modulus := new(big.Int).Lsh(big.NewInt(1), 128)
	return magnitude.Sub(magnitude, modulus)
}

// Int128FromBigInt converts a math/big.Int into an Int128 two's
// complement representation. v is not range-checked: a value outside
// the signed 128-bit range either panics or is stored wrapped.
func Int128FromBigInt(v *big.Int) Int128 {
	if v.Sign() >= 0 {
		return Int128(Uint128FromBigInt(v))
	}
	modulus := new(big.Int).Lsh(big.NewInt(1), 128)
	wrapped := new(big.Int).Add(v, modulus)
	return Int128(Uint128FromBigInt(wrapped))
}

func reverse16(b [16]byte) [16]byte {
	var out [16]byte
	for i := range b {
		out[i] = b[15-i]
	}
	return out
}

func EncodeUint128(c *EncodeCursor, v Uint128) { copy(c.Base(16), v[:]) }

func DecodeUint128(c *DecodeCursor) (Uint128, error) {
	b, err := c.Base(16)
	if err != nil {
		return Uint128{}, err
	}
	var v Uint128
	copy(v[:], b)
	return v, nil
}

func EncodeInt128(c *EncodeCursor, v Int128) { copy(c.Base(16), v[:]) }

func DecodeInt128(c *DecodeCursor) (Int128, error) {
	b, err := c.Base(16)
	if err != nil {
		return Int128{}, err
	}
	var v Int128
	copy(v[:], b)
	return v, nil
}
