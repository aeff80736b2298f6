// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package wire

// EncodeBox writes a box<T>'s single u32 pointer and the pointee's own
// base+scratch region, via InnerInScratch.
func EncodeBox[T any](c *EncodeCursor, v *T, baseLen int, encode func(*EncodeCursor, T)) {
	c.InnerInScratch(baseLen, func(inner *EncodeCursor) {
		encode(inner, *v)
	})
}

// DecodeBox follows a box<T> pointer eagerly, returning an owned *T.
func DecodeBox[T any](c *DecodeCursor, decode func(*DecodeCursor) (T, error)) (*T, error) {
	var result T
	var decodeErr error
	if err := c.InnerInScratch(func(inner *DecodeCursor) error {
		result, decodeErr = decode(inner)
		return decodeErr
	}); err != nil {
		return nil, err
	}
	return &result, nil
}

// LazyBox is a zero-copy view over a box<T>'s pointee: it records the
// buffer and the absolute pointee offset, and only decodes on Get.
type LazyBox[T any] struct {
	buf    []byte
	offset int
	decode func(*DecodeCursor) (T, error)
}

func DecodeLazyBox[T any](c *DecodeCursor, decode func(*DecodeCursor) (T, error)) (LazyBox[T], error) {
	ptr, err := c.readPointer()
	if err != nil {
		return LazyBox[T]{}, err
	}
	if ptr > len(c.buf) {
		return LazyBox[T]{}, NewDecodeError(ErrOffsetRange, c.Offset())
	}
	return LazyBox[T]{buf: c.buf, offset: ptr, decode: decode}, nil
}

// Get decodes the pointee on demand.
func (b LazyBox[T]) Get() (T, error) {
	return b.decode(AtOffset(b.buf, b.offset))
}

func (b LazyBox[T]) ToOwned() (*T, error) {
	v, err := b.Get()
	if err != nil {
		return nil, err
	}
	return &v, nil
}
