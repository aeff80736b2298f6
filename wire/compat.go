// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package wire

// Encodable is implemented by both the owned and the lazy generated
// form of every schema type. Two types are "Compatible" (spec §4.10)
// exactly when they both implement Encodable for the same wire
// schema — Go's structural interface satisfaction is the witness, so
// there is no separate Compatible relation to declare: a generic
// encode API that only needs Encodable already accepts an owned
// value, a lazy view, or anything else a caller builds that produces
// the same bytes.
type Encodable interface {
	// BaseLen is the value's BASE_LEN in bytes.
	BaseLen() int
	// ScratchLen is the extra bytes the value needs beyond its base.
	ScratchLen() int
	// EncodeOn writes the value's base and scratch onto c.
	EncodeOn(c *EncodeCursor)
}

// EncodeToBytes allocates a buffer sized exactly to v's encoded
// length and encodes v into it — the "convenience helper" spec §5
// allows encode to allocate for.
func EncodeToBytes(v Encodable) []byte {
	buf := make([]byte, v.BaseLen()+v.ScratchLen())
	c := NewEncodeCursor(buf, v.BaseLen())
	v.EncodeOn(c)
	return buf
}
