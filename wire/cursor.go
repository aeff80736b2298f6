// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package wire

import "encoding/binary"

// EncodeCursor writes a single value's base region and scratch region
// into one caller-supplied buffer. The buffer must already be sized to
// the value's full encoded length (base length + scratch length) —
// encode never grows the buffer and never allocates on its own.
//
// basePos walks the base region from 0; scratchOffset walks the
// scratch region starting right after the base region and only ever
// grows, so scratch allocations never overlap.
type EncodeCursor struct {
	buf           []byte
	basePos       int
	baseLen       int
	scratchOffset int
}

// NewEncodeCursor splits buf at baseLen: the prefix is the base region
// for the value being encoded, the suffix is its scratch region.
func NewEncodeCursor(buf []byte, baseLen int) *EncodeCursor {
	return &EncodeCursor{
		buf:           buf,
		baseLen:       baseLen,
		scratchOffset: baseLen,
	}
}

// Base returns the next n bytes of the base region and advances past
// them. Slicing past the base region is a programmer error — the
// caller must size buf from EncodedLen before encoding.
func (c *EncodeCursor) Base(n int) []byte {
	if c.basePos+n > c.baseLen {
		panic("wire: encode cursor base region exhausted")
	}
	b := c.buf[c.basePos : c.basePos+n]
	c.basePos += n
	return b
}

// Scratch writes the current scratch offset as a little-endian u32
// into the next 4 base bytes, then returns n fresh scratch bytes.
func (c *EncodeCursor) Scratch(n int) []byte {
	ptr := c.Base(4)
	binary.LittleEndian.PutUint32(ptr, uint32(c.scratchOffset))
	start := c.scratchOffset
	c.scratchOffset += n
	return c.buf[start : start+n]
}

// InnerInScratch allocates baseN scratch bytes as a fresh "inner base"
// region, writes a pointer to it into the outer base, and runs f with
// a cursor whose base is that region and whose scratch continues the
// outer cursor's scratch. The outer cursor adopts the inner cursor's
// advanced scratch position on return.
func (c *EncodeCursor) InnerInScratch(baseN int, f func(inner *EncodeCursor)) {
	ptr := c.Base(4)
	binary.LittleEndian.PutUint32(ptr, uint32(c.scratchOffset))
	innerStart := c.scratchOffset
	c.scratchOffset += baseN

	inner := &EncodeCursor{
		buf:           c.buf,
		baseLen:       innerStart + baseN,
		basePos:       innerStart,
		scratchOffset: c.scratchOffset,
	}
	f(inner)
	c.scratchOffset = inner.scratchOffset
}

// EncodedLen returns the total number of bytes used so far, i.e. the
// current scratch offset.
func (c *EncodeCursor) EncodedLen() int {
	return c.scratchOffset
}

// DecodeCursor is the read-only dual of EncodeCursor: a buffer slice
// plus a movable offset.
type DecodeCursor struct {
	buf    []byte
	offset int
}

// NewDecodeCursor positions a cursor at the start of buf.
func NewDecodeCursor(buf []byte) *DecodeCursor {
	return &DecodeCursor{buf: buf}
}

// AtOffset positions a cursor at an already-known absolute offset into
// buf, used to dereference scratch pointers (box payloads, list
// elements, lazy-view field access).
func AtOffset(buf []byte, offset int) *DecodeCursor {
	return &DecodeCursor{buf: buf, offset: offset}
}

// Offset returns the cursor's current byte position.
func (c *DecodeCursor) Offset() int {
	return c.offset
}

// Buffer returns the full backing buffer the cursor was created from.
func (c *DecodeCursor) Buffer() []byte {
	return c.buf
}

// Base returns the next n bytes and advances past them, or a
// *DecodeError if doing so would read past the end of the buffer.
func (c *DecodeCursor) Base(n int) ([]byte, error) {
	if n < 0 || c.offset+n > len(c.buf) || c.offset+n < c.offset {
		return nil, NewDecodeError(ErrUnexpectedEOF, c.offset)
	}
	b := c.buf[c.offset : c.offset+n]
	c.offset += n
	return b, nil
}

// Scratch reads a little-endian u32 from the next 4 base bytes, uses
// it as an absolute offset into the buffer, and returns n bytes from
// there. The cursor's own offset only advances past the 4-byte
// pointer.
func (c *DecodeCursor) Scratch(n int) ([]byte, error) {
	abs, err := c.readPointer()
	if err != nil {
		return nil, err
	}
	return sliceAt(c.buf, abs, n)
}

// InnerInScratch reads the 4-byte pointer like Scratch, but installs a
// fresh cursor at the decoded offset and invokes f with it instead of
// returning a raw slice.
func (c *DecodeCursor) InnerInScratch(f func(inner *DecodeCursor) error) error {
	abs, err := c.readPointer()
	if err != nil {
		return err
	}
	if abs > len(c.buf) {
		return NewDecodeError(ErrOffsetRange, c.offset)
	}
	inner := AtOffset(c.buf, abs)
	return f(inner)
}

// Advance skips n bytes of the base region without reading them, used
// to step over enum/result padding.
func (c *DecodeCursor) Advance(n int) {
	c.offset += n
}

func (c *DecodeCursor) readPointer() (int, error) {
	ptr, err := c.Base(4)
	if err != nil {
		return 0, err
	}
	return int(binary.LittleEndian.Uint32(ptr)), nil
}

func sliceAt(buf []byte, offset, n int) ([]byte, error) {
	if offset < 0 || n < 0 || offset+n > len(buf) || offset+n < offset {
		return nil, NewDecodeError(ErrOffsetRange, offset)
	}
	return buf[offset : offset+n], nil
}
