// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

import (
	"encoding/binary"
	"math"
)

// Integer is the set of fixed-width integer kinds the raw codec can
// widen or narrow between. Platform-native int/uint are included
// because the wire always widens them to 64 bits (see WriteInt,
// WriteUint).
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// putUint writes v big-endian into b, which must be 1, 2, 4, or 8
// bytes wide (the widths writeFixed ever asks for).
func putUint(b []byte, v uint64) {
	switch len(b) {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.BigEndian.PutUint16(b, uint16(v))
	case 4:
		binary.BigEndian.PutUint32(b, uint32(v))
	case 8:
		binary.BigEndian.PutUint64(b, v)
	}
}

// getUint is putUint's inverse.
func getUint(b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.BigEndian.Uint16(b))
	case 4:
		return uint64(binary.BigEndian.Uint32(b))
	case 8:
		return binary.BigEndian.Uint64(b)
	default:
		return 0
	}
}

// float32 and float64 are bit-cast to same-width unsigned integers and
// written big-endian, the same convention as the integer codecs. The
// source this format is derived from wrote the host's in-memory bit
// pattern unchanged, which is endian-inconsistent with its own integer
// encoding on little-endian hosts; this package normalizes instead (see
// SPEC_FULL.md's open-question decisions).
func float32ToBits(f float32) uint32 { return math.Float32bits(f) }
func bitsToFloat32(b uint32) float32 { return math.Float32frombits(b) }
func float64ToBits(f float64) uint64 { return math.Float64bits(f) }
func bitsToFloat64(b uint64) float64 { return math.Float64frombits(b) }
