// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package wire

import "unicode/utf8"

// EncodeString writes a string's (length, scratch-offset) base pair
// and its UTF-8 bytes into scratch.
func EncodeString(c *EncodeCursor, s string) {
	EncodeUint32(c, uint32(len(s)))
	copy(c.Scratch(len(s)), s)
}

// StringScratchLen is the number of scratch bytes a string of this
// length needs.
func StringScratchLen(s string) int {
	return len(s)
}

// DecodeString reads and validates a string eagerly, allocating a new
// Go string from the scratch bytes.
func DecodeString(c *DecodeCursor) (string, error) {
	n, err := DecodeUint32(c)
	if err != nil {
		return "", err
	}
	b, err := c.Scratch(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", NewDecodeError(ErrInvalidUTF8, c.Offset()-4)
	}
	return string(b), nil
}

// LazyString is a zero-copy view over a string's scratch bytes. It
// holds only the slice and never allocates until String is called.
type LazyString struct {
	data []byte
}

// DecodeLazyString reads the (length, scratch-offset) base pair and
// derives the backing slice without copying or validating it yet.
func DecodeLazyString(c *DecodeCursor) (LazyString, error) {
	n, err := DecodeUint32(c)
	if err != nil {
		return LazyString{}, err
	}
	b, err := c.Scratch(int(n))
	if err != nil {
		return LazyString{}, err
	}
	return LazyString{data: b}, nil
}

// Bytes returns the raw payload without a UTF-8 check or copy.
func (l LazyString) Bytes() []byte {
	return l.data
}

// Len returns the payload length in bytes.
func (l LazyString) Len() int {
	return len(l.data)
}

// String validates the payload as UTF-8 and materializes a Go string,
// which necessarily copies (string conversion from []byte always
// does) — this is the one place a lazy accessor is allowed to copy,
// since the caller asked to materialize the value.
func (l LazyString) String() (string, error) {
	if !utf8.Valid(l.data) {
		return "", NewDecodeError(ErrInvalidUTF8, 0)
	}
	return string(l.data), nil
}

func (l LazyString) ToOwned() (string, error) {
	return l.String()
}
