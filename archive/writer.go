// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

import (
	"fmt"
	"io"
)

// Writer assigns identities to strings and references, dedupes them,
// and emits a value graph to an underlying byte sink. A Writer is
// built for one archive and one root value; its intern tables are not
// meant to be reused across archives, and it is not safe for
// concurrent use.
type Writer struct {
	sink io.Writer

	stringIDs map[string]int64
	objectIDs map[any]int64

	userInfo any
}

// NewWriter returns a Writer that emits to sink.
func NewWriter(sink io.Writer) *Writer {
	return &Writer{
		sink:      sink,
		stringIDs: make(map[string]int64),
		objectIDs: make(map[any]int64),
	}
}

// WithUserInfo attaches an opaque side value to the Writer, retrievable
// by codecs via UserInfo. It is not part of the wire format.
func (w *Writer) WithUserInfo(v any) *Writer {
	w.userInfo = v
	return w
}

// UserInfo returns the side value attached with WithUserInfo, if any.
func (w *Writer) UserInfo() any { return w.userInfo }

// WriteRawBytes writes b to the sink unchanged. It is the primitive
// every other Write method is built from.
func (w *Writer) WriteRawBytes(b []byte) error {
	n, err := w.sink.Write(b)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if n != len(b) {
		return fmt.Errorf("%w: wrote %d of %d bytes", ErrWriteFailed, n, len(b))
	}
	return nil
}

func (w *Writer) writeFixed(v uint64, width int) error {
	var buf [8]byte
	b := buf[:width]
	putUint(b, v)
	return w.WriteRawBytes(b)
}

// WriteInt8, WriteInt16, WriteInt32 and WriteInt64 write the
// big-endian two's-complement image of v at its own width.
func (w *Writer) WriteInt8(v int8) error   { return w.writeFixed(uint64(uint8(v)), 1) }
func (w *Writer) WriteInt16(v int16) error { return w.writeFixed(uint64(uint16(v)), 2) }
func (w *Writer) WriteInt32(v int32) error { return w.writeFixed(uint64(uint32(v)), 4) }
func (w *Writer) WriteInt64(v int64) error { return w.writeFixed(uint64(v), 8) }

// WriteUint8, WriteUint16, WriteUint32 and WriteUint64 write the
// big-endian image of v at its own width.
func (w *Writer) WriteUint8(v uint8) error   { return w.writeFixed(uint64(v), 1) }
func (w *Writer) WriteUint16(v uint16) error { return w.writeFixed(uint64(v), 2) }
func (w *Writer) WriteUint32(v uint32) error { return w.writeFixed(uint64(v), 4) }
func (w *Writer) WriteUint64(v uint64) error { return w.writeFixed(v, 8) }

// WriteInt and WriteUint write platform-native int/uint, always
// widened to 64 bits on the wire.
func (w *Writer) WriteInt(v int) error   { return w.WriteInt64(int64(v)) }
func (w *Writer) WriteUint(v uint) error { return w.WriteUint64(uint64(v)) }

// WriteFloat32 and WriteFloat64 write the IEEE-754 bit pattern of v,
// bit-cast to an unsigned integer of the same width and written
// big-endian.
func (w *Writer) WriteFloat32(v float32) error { return w.WriteUint32(float32ToBits(v)) }
func (w *Writer) WriteFloat64(v float64) error { return w.WriteUint64(float64ToBits(v)) }

// WriteBool writes one byte: 1 for true, 0 for false.
func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.WriteUint8(1)
	}
	return w.WriteUint8(0)
}

// WriteBytes writes a length-prefixed byte blob: an i64-be length
// followed by the raw bytes.
func (w *Writer) WriteBytes(b []byte) error {
	if err := w.WriteInt64(int64(len(b))); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	return w.WriteRawBytes(b)
}

// WriteString interns s: the first time a given string content is
// written it is assigned the next id and its UTF-8 bytes follow the
// id; every later occurrence of the same content writes only the id.
func (w *Writer) WriteString(s string) error {
	if id, ok := w.stringIDs[s]; ok {
		return w.WriteInt64(id)
	}
	id := int64(len(w.stringIDs))
	w.stringIDs[s] = id
	if err := w.WriteInt64(id); err != nil {
		return err
	}
	return w.WriteBytes([]byte(s))
}

// Record is implemented by reference types that participate in the
// identity-preserving reference path: types with heap identity whose
// sharing must survive a round trip. ArchiveEncode should write the
// type's fields in schema order; it is invoked by WriteReference only
// for the first occurrence of a given reference.
type Record interface {
	ArchiveEncode(w *Writer) error
}

// WriteReference interns ref by heap identity: the first time a given
// pointer is written it is assigned the next id, the id is emitted,
// and then ref.ArchiveEncode writes its fields; every later occurrence
// of the same pointer writes only the id. ref must not be nil; wrap
// optional references with Optional.
func WriteReference[U any, T interface {
	*U
	Record
}](w *Writer, ref T) error {
	key := any(ref)
	if id, ok := w.objectIDs[key]; ok {
		return w.WriteInt64(id)
	}
	id := int64(len(w.objectIDs))
	w.objectIDs[key] = id
	if err := w.WriteInt64(id); err != nil {
		return err
	}
	return ref.ArchiveEncode(w)
}

// WriteRoot emits the archive header (encodingVersion, then
// userVersion) followed by value encoded through codec. This is the
// entry point for a top-level archive; nested values are written
// through the Codec values composed into a Schema or a collection
// codec, not through WriteRoot again.
func WriteRoot[T any](w *Writer, value T, userVersion int64, codec Codec[T]) error {
	if err := w.WriteInt64(encodingVersion); err != nil {
		return err
	}
	if err := w.WriteInt64(userVersion); err != nil {
		return err
	}
	return codec.Encode(w, value)
}
