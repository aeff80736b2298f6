// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package wire

import "encoding/binary"

// EncodeList writes a [T]'s (length, scratch-offset) base pair, then
// each element's base encoding contiguously in scratch, followed by
// each element's own scratch (handled by InnerInScratch continuing
// the outer cursor's scratch region across all elements).
func EncodeList[T any](c *EncodeCursor, items []T, elemBaseLen int, encode func(*EncodeCursor, T)) {
	EncodeUint32(c, uint32(len(items)))
	c.InnerInScratch(len(items)*elemBaseLen, func(inner *EncodeCursor) {
		for _, item := range items {
			encode(inner, item)
		}
	})
}

// ListScratchLen is the scratch this list needs beyond its own base
// pair: the elements' base encodings plus their own scratch usage.
func ListScratchLen(n, elemBaseLen, elemsScratchLen int) int {
	return n*elemBaseLen + elemsScratchLen
}

// DecodeList eagerly materializes every element into a new slice.
func DecodeList[T any](c *DecodeCursor, elemBaseLen int, decode func(*DecodeCursor) (T, error)) ([]T, error) {
	n, err := DecodeUint32(c)
	if err != nil {
		return nil, err
	}
	var result []T
	err = c.InnerInScratch(func(inner *DecodeCursor) error {
		result = make([]T, n)
		for i := range result {
			v, err := decode(inner)
			if err != nil {
				return err
			}
			result[i] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LazyList is a zero-copy view over a [T]'s elements. Get computes the
// i-th element's offset algebraically (scratch_offset + i*elemBaseLen)
// instead of decoding the whole list.
type LazyList[T any] struct {
	buf         []byte
	dataOffset  int
	length      int
	elemBaseLen int
	decode      func(*DecodeCursor) (T, error)
}

func DecodeLazyList[T any](c *DecodeCursor, elemBaseLen int, decode func(*DecodeCursor) (T, error)) (LazyList[T], error) {
	lenBytes, err := c.Base(4)
	if err != nil {
		return LazyList[T]{}, err
	}
	n := binary.LittleEndian.Uint32(lenBytes)

	ptr, err := c.readPointer()
	if err != nil {
		return LazyList[T]{}, err
	}
	if ptr > len(c.buf) {
		return LazyList[T]{}, NewDecodeError(ErrOffsetRange, c.Offset())
	}

	return LazyList[T]{
		buf:         c.buf,
		dataOffset:  ptr,
		length:      int(n),
		elemBaseLen: elemBaseLen,
		decode:      decode,
	}, nil
}

// Len returns the list's element count.
func (l LazyList[T]) Len() int {
	return l.length
}

// Get decodes the i-th element on demand without touching the others.
func (l LazyList[T]) Get(i int) (T, error) {
	var zero T
	if i < 0 || i >= l.length {
		return zero, NewDecodeError(ErrIndexRange, i)
	}
	off := l.dataOffset + i*l.elemBaseLen
	return l.decode(AtOffset(l.buf, off))
}

// ToOwned materializes every element into a new slice.
func (l LazyList[T]) ToOwned() ([]T, error) {
	result := make([]T, l.length)
	for i := range result {
		v, err := l.Get(i)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}
