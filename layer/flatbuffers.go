// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package layer

import (
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"
)

// safeFlatBuffersInteraction runs a function that interacts with
// FlatBuffers, trapping any panic that occurs and converting it to a
// normal Go error.
//
// FlatBuffers' Go code does not use standard Go error handling, so any
// attempt to read malformed FlatBuffers data may trigger a panic.
func safeFlatBuffersInteraction(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: flatbuffers: %v", r)
		}
	}()
	err = f()
	return
}

// sizePrefixedTable returns the bytes of a size-prefixed root
// FlatBuffers table found at offset zero of buf, size prefix included.
// Trailing bytes beyond the prefixed size are excluded.
func sizePrefixedTable(buf []byte) ([]byte, error) {
	if len(buf) < flatbuffers.SizeUint32+flatbuffers.SizeUOffsetT {
		return nil, fmtErr("buffer too small for a size-prefixed FlatBuffers table (Len=%d)", len(buf))
	}
	size := flatbuffers.GetUint32(buf)
	if uint64(size) > uint64(len(buf)-flatbuffers.SizeUint32) {
		return nil, fmtErr("FlatBuffers table buffer is smaller than the size prefix (Len=%d, size=%d)", len(buf), size)
	}
	return buf[0 : flatbuffers.SizeUint32+int(size)], nil
}
