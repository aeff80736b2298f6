// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package wire

import (
	"math/big"
	"testing"
)

func TestUint128RoundTrip(t *testing.T) {
	want := new(big.Int)
	want.SetString("340282366920938463463374607431768211455", 10) // 2^128-1
	u := Uint128FromBigInt(want)

	buf := make([]byte, U128BaseLen)
	c := NewEncodeCursor(buf, U128BaseLen)
	EncodeUint128(c, u)

	for _, b := range buf {
		if b != 0xff {
			t.Fatalf("buf = % x, want all 0xff", buf)
		}
	}

	dc := NewDecodeCursor(buf)
	got, err := DecodeUint128(dc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.BigInt().Cmp(want) != 0 {
		t.Fatalf("got %s, want %s", got.BigInt(), want)
	}
}

func TestInt128Negative(t *testing.T) {
	want := big.NewInt(-12345)
	i := Int128FromBigInt(want)
	buf := make([]byte, U128BaseLen)
	c := NewEncodeCursor(buf, U128BaseLen)
	EncodeInt128(c, i)

	dc := NewDecodeCursor(buf)
	got, err := DecodeInt128(dc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.BigInt().Cmp(want) != 0 {
		t.Fatalf("got %s, want %s", got.BigInt(), want)
	}
}

// a minimal hand-written struct{x: box<u32>, y: [u32]} exercising
// nested InnerInScratch the way generated struct codecs will.
type boxedListStruct struct {
	X uint32
	Y []uint32
}

func (s boxedListStruct) BaseLen() int { return BoxBaseLen + ListBaseLen }

func (s boxedListStruct) ScratchLen() int {
	return U32BaseLen + ListScratchLen(len(s.Y), U32BaseLen, 0)
}

func (s boxedListStruct) EncodeOn(c *EncodeCursor) {
	px := s.X
	EncodeBox(c, &px, U32BaseLen, EncodeUint32)
	EncodeList(c, s.Y, U32BaseLen, EncodeUint32)
}

func decodeBoxedListStruct(c *DecodeCursor) (boxedListStruct, error) {
	var s boxedListStruct
	x, err := DecodeBox(c, DecodeUint32)
	if err != nil {
		return s, err
	}
	s.X = *x
	y, err := DecodeList(c, U32BaseLen, DecodeUint32)
	if err != nil {
		return s, err
	}
	s.Y = y
	return s, nil
}

var _ Encodable = boxedListStruct{}

func TestNestedBoxAndListRoundTrip(t *testing.T) {
	v := boxedListStruct{X: 42, Y: []uint32{1, 2, 3}}
	buf := EncodeToBytes(v)

	if want := v.BaseLen() + v.ScratchLen(); len(buf) != want {
		t.Fatalf("encoded len = %d, want %d", len(buf), want)
	}

	dc := NewDecodeCursor(buf)
	got, err := decodeBoxedListStruct(dc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.X != v.X || len(got.Y) != len(v.Y) {
		t.Fatalf("got %+v, want %+v", got, v)
	}
	for i := range v.Y {
		if got.Y[i] != v.Y[i] {
			t.Fatalf("Y[%d] = %d, want %d", i, got.Y[i], v.Y[i])
		}
	}
}

func TestLazyListIndexing(t *testing.T) {
	buf := make([]byte, ListBaseLen+3*U32BaseLen)
	c := NewEncodeCursor(buf, ListBaseLen)
	EncodeList(c, []uint32{10, 20, 30}, U32BaseLen, EncodeUint32)

	dc := NewDecodeCursor(buf)
	lazy, err := DecodeLazyList(dc, U32BaseLen, DecodeUint32)
	if err != nil {
		t.Fatalf("decode lazy: %v", err)
	}
	if lazy.Len() != 3 {
		t.Fatalf("len = %d, want 3", lazy.Len())
	}
	// fetch out of order to prove random access doesn't require full decode
	v2, err := lazy.Get(2)
	if err != nil || v2 != 30 {
		t.Fatalf("Get(2) = %d, %v", v2, err)
	}
	v0, err := lazy.Get(0)
	if err != nil || v0 != 10 {
		t.Fatalf("Get(0) = %d, %v", v0, err)
	}
	if _, err := lazy.Get(3); err == nil {
		t.Fatalf("expected out-of-range error")
	}

	owned, err := lazy.ToOwned()
	if err != nil || len(owned) != 3 || owned[1] != 20 {
		t.Fatalf("ToOwned = %v, %v", owned, err)
	}
}

func TestLazyBoxRoundTrip(t *testing.T) {
	buf := make([]byte, BoxBaseLen+U32BaseLen)
	c := NewEncodeCursor(buf, BoxBaseLen)
	px := uint32(99)
	EncodeBox(c, &px, U32BaseLen, EncodeUint32)

	dc := NewDecodeCursor(buf)
	lazy, err := DecodeLazyBox(dc, DecodeUint32)
	if err != nil {
		t.Fatalf("decode lazy box: %v", err)
	}
	got, err := lazy.Get()
	if err != nil || got != 99 {
		t.Fatalf("Get() = %d, %v", got, err)
	}
}

func TestLazyStringView(t *testing.T) {
	buf := make([]byte, StringBaseLen+2)
	c := NewEncodeCursor(buf, StringBaseLen)
	EncodeString(c, "hi")

	dc := NewDecodeCursor(buf)
	ls, err := DecodeLazyString(dc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ls.Len() != 2 {
		t.Fatalf("len = %d, want 2", ls.Len())
	}
	s, err := ls.String()
	if err != nil || s != "hi" {
		t.Fatalf("String() = %q, %v", s, err)
	}
}

func TestLazyBufGet(t *testing.T) {
	buf := make([]byte, U32BaseLen)
	c := NewEncodeCursor(buf, U32BaseLen)
	EncodeUint32(c, 7)

	lb := NewLazyBuf(buf, 0, DecodeUint32)
	v, err := lb.Get()
	if err != nil || v != 7 {
		t.Fatalf("Get() = %d, %v", v, err)
	}
}
