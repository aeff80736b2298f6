// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package wire

import (
	"bytes"
	"testing"
)

// TestScenarioUint32 is concrete scenario #1 from the spec.
func TestScenarioUint32(t *testing.T) {
	buf := make([]byte, U32BaseLen)
	c := NewEncodeCursor(buf, U32BaseLen)
	EncodeUint32(c, 0x01020304)

	want := []byte{0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(buf, want) {
		t.Fatalf("base = % x, want % x", buf, want)
	}

	dc := NewDecodeCursor(buf)
	got, err := DecodeUint32(dc)
	if err != nil || got != 0x01020304 {
		t.Fatalf("decode = %#x, %v", got, err)
	}
}

// TestScenarioOption is concrete scenario #2.
func TestScenarioOption(t *testing.T) {
	baseLen := 1 + U32BaseLen

	some := uint32(7)
	buf := make([]byte, baseLen)
	c := NewEncodeCursor(buf, baseLen)
	EncodeOption(c, &some, U32BaseLen, EncodeUint32)
	if want := []byte{0x01, 0x07, 0x00, 0x00, 0x00}; !bytes.Equal(buf, want) {
		t.Fatalf("Some base = % x, want % x", buf, want)
	}

	buf2 := make([]byte, baseLen)
	c2 := NewEncodeCursor(buf2, baseLen)
	EncodeOption[uint32](c2, nil, U32BaseLen, EncodeUint32)
	if want := []byte{0x00, 0x00, 0x00, 0x00, 0x00}; !bytes.Equal(buf2, want) {
		t.Fatalf("None base = % x, want % x", buf2, want)
	}

	dc := NewDecodeCursor(buf)
	got, err := DecodeOption(dc, U32BaseLen, DecodeUint32)
	if err != nil || got == nil || *got != 7 {
		t.Fatalf("decode Some = %v, %v", got, err)
	}

	dc2 := NewDecodeCursor(buf2)
	got2, err := DecodeOption(dc2, U32BaseLen, DecodeUint32)
	if err != nil || got2 != nil {
		t.Fatalf("decode None = %v, %v", got2, err)
	}
}

// TestScenarioString is concrete scenario #3.
func TestScenarioString(t *testing.T) {
	buf := make([]byte, 10)
	c := NewEncodeCursor(buf, StringBaseLen)
	EncodeString(c, "hi")

	if want := []byte{0x02, 0, 0, 0}; !bytes.Equal(buf[0:4], want) {
		t.Fatalf("len = % x, want % x", buf[0:4], want)
	}
	if want := []byte{0x08, 0, 0, 0}; !bytes.Equal(buf[4:8], want) {
		t.Fatalf("scratch offset = % x, want % x", buf[4:8], want)
	}
	if want := []byte("hi"); !bytes.Equal(buf[8:10], want) {
		t.Fatalf("payload = % x, want % x", buf[8:10], want)
	}
	if c.EncodedLen() != 10 {
		t.Fatalf("encoded len = %d, want 10", c.EncodedLen())
	}

	dc := NewDecodeCursor(buf)
	got, err := DecodeString(dc)
	if err != nil || got != "hi" {
		t.Fatalf("decode = %q, %v", got, err)
	}
}

// TestScenarioList is concrete scenario #4.
func TestScenarioList(t *testing.T) {
	buf := make([]byte, 10)
	c := NewEncodeCursor(buf, ListBaseLen)
	EncodeList(c, []uint8{0xAA, 0xBB}, U8BaseLen, EncodeUint8)

	if want := []byte{0x02, 0, 0, 0, 0x08, 0, 0, 0, 0xAA, 0xBB}; !bytes.Equal(buf, want) {
		t.Fatalf("buf = % x, want % x", buf, want)
	}
	if c.EncodedLen() != 10 {
		t.Fatalf("encoded len = %d, want 10", c.EncodedLen())
	}

	dc := NewDecodeCursor(buf)
	got, err := DecodeList(dc, U8BaseLen, DecodeUint8)
	if err != nil || !bytes.Equal(got, []byte{0xAA, 0xBB}) {
		t.Fatalf("decode = % x, %v", got, err)
	}
}

// TestScenarioResult is concrete scenario #5.
func TestScenarioResult(t *testing.T) {
	baseLen := 1 + 2 // max(u8=1, i16=2)
	buf := make([]byte, baseLen)
	c := NewEncodeCursor(buf, baseLen)
	EncodeResult(c, ErrResult[uint8, int16](-12345), U8BaseLen, U16BaseLen, EncodeUint8, EncodeInt16)

	if want := []byte{0x01, 0xC7, 0xCF}; !bytes.Equal(buf, want) {
		t.Fatalf("buf = % x, want % x", buf, want)
	}
	if c.EncodedLen() != 3 {
		t.Fatalf("encoded len = %d, want 3", c.EncodedLen())
	}

	dc := NewDecodeCursor(buf)
	got, err := DecodeResult(dc, U8BaseLen, U16BaseLen, DecodeUint8, DecodeInt16)
	if err != nil || got.IsOk || got.Err != -12345 {
		t.Fatalf("decode = %+v, %v", got, err)
	}
}
