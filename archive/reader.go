// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Reader performs two-phase materialization of references and mirrors
// a Writer's intern tables so that repeated ids resolve to the same
// Go value. A Reader is built for one archive and one root value and
// is not safe for concurrent use.
type Reader struct {
	source io.Reader

	strings map[int64]string
	objects map[int64]any

	userVersion int64
	userInfo    any
}

// NewReader returns a Reader that consumes from source.
func NewReader(source io.Reader) *Reader {
	return &Reader{
		source:  source,
		strings: make(map[int64]string),
		objects: make(map[int64]any),
	}
}

// WithUserInfo attaches an opaque side value to the Reader, retrievable
// by codecs via UserInfo. It is not part of the wire format.
func (r *Reader) WithUserInfo(v any) *Reader {
	r.userInfo = v
	return r
}

// UserInfo returns the side value attached with WithUserInfo, if any.
func (r *Reader) UserInfo() any { return r.userInfo }

// UserVersion returns the user_version header field, valid once
// ReadRoot has read the header.
func (r *Reader) UserVersion() int64 { return r.userVersion }

// ReadRawBytes reads exactly n bytes or fails with ErrReadFailed.
func (r *Reader) ReadRawBytes(n int64) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.source, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	return buf, nil
}

func (r *Reader) readFixed(width int) (uint64, error) {
	b, err := r.ReadRawBytes(int64(width))
	if err != nil {
		return 0, err
	}
	return getUint(b), nil
}

// ReadInt8, ReadInt16, ReadInt32 and ReadInt64 read the big-endian
// two's-complement image of a value at its own width.
func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.readFixed(1)
	return int8(uint8(v)), err
}
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.readFixed(2)
	return int16(uint16(v)), err
}
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.readFixed(4)
	return int32(uint32(v)), err
}
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.readFixed(8)
	return int64(v), err
}

// ReadUint8, ReadUint16, ReadUint32 and ReadUint64 read the big-endian
// image of a value at its own width.
func (r *Reader) ReadUint8() (uint8, error) {
	v, err := r.readFixed(1)
	return uint8(v), err
}
func (r *Reader) ReadUint16() (uint16, error) {
	v, err := r.readFixed(2)
	return uint16(v), err
}
func (r *Reader) ReadUint32() (uint32, error) {
	v, err := r.readFixed(4)
	return uint32(v), err
}
func (r *Reader) ReadUint64() (uint64, error) {
	return r.readFixed(8)
}

// ReadInt and ReadUint read platform-native int/uint, always widened
// to 64 bits on the wire.
func (r *Reader) ReadInt() (int, error) {
	v, err := r.ReadInt64()
	return int(v), err
}
func (r *Reader) ReadUint() (uint, error) {
	v, err := r.ReadUint64()
	return uint(v), err
}

// ReadFloat32 and ReadFloat64 read the IEEE-754 bit pattern of a
// value, big-endian, and bit-cast it back to a float.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return bitsToFloat32(v), err
}
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return bitsToFloat64(v), err
}

// ReadBool reads one byte: any non-zero value is true.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadUint8()
	return v != 0, err
}

// ReadBytes reads a length-prefixed byte blob written by Writer.WriteBytes.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative blob length %d", ErrReadFailed, n)
	}
	return r.ReadRawBytes(n)
}

// ReadString reads a string written by Writer.WriteString: an id,
// followed by its UTF-8 payload only on the id's first occurrence in
// the stream. Later occurrences resolve to the same decoded string
// without reading further bytes.
func (r *Reader) ReadString() (string, error) {
	id, err := r.ReadInt64()
	if err != nil {
		return "", err
	}
	if s, ok := r.strings[id]; ok {
		return s, nil
	}
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: string id %d is not valid UTF-8", ErrReadFailed, id)
	}
	s := string(b)
	r.strings[id] = s
	return s, nil
}

// Awakener is an optional hook for reference types: Awake runs once,
// after ArchiveDecode has fully populated the instance. It is the
// natural place to validate or derive fields that depend on the whole
// decoded value rather than a single field.
type Awakener interface {
	Awake()
}

// Decoder is implemented by reference types that participate in the
// identity-preserving reference path. ArchiveDecode should read the
// type's fields in the same order ArchiveEncode wrote them.
type Decoder interface {
	ArchiveDecode(r *Reader) error
}

// ReadReference reads a reference written by WriteReference. The slot
// for a new id is registered in the Reader's object table *before*
// ArchiveDecode runs, so a cycle that reaches the same id mid-decode
// observes the same, still-populating, instance rather than
// recursing. U is the reference's underlying struct type; T is its
// pointer type, which must implement Decoder (and may implement
// Awakener).
func ReadReference[U any, T interface {
	*U
	Decoder
}](r *Reader) (T, error) {
	var zero T
	id, err := r.ReadInt64()
	if err != nil {
		return zero, err
	}
	if existing, ok := r.objects[id]; ok {
		t, ok := existing.(T)
		if !ok {
			return zero, fmt.Errorf("%w: object id %d decoded at a different type", ErrReadFailed, id)
		}
		return t, nil
	}
	obj := new(U)
	var t T = obj
	r.objects[id] = t
	if err := t.ArchiveDecode(r); err != nil {
		return zero, err
	}
	if awakener, ok := any(t).(Awakener); ok {
		awakener.Awake()
	}
	return t, nil
}

// ReadRoot validates the archive header (failing with
// ErrIncompatibleArchiver if encodingVersion is not 1), stashes
// user_version for UserVersion, and decodes one value of T through
// codec.
func ReadRoot[T any](r *Reader, codec Codec[T]) (T, error) {
	var zero T
	version, err := r.ReadInt64()
	if err != nil {
		return zero, err
	}
	if version != encodingVersion {
		return zero, fmt.Errorf("%w: got version %d, want %d", ErrIncompatibleArchiver, version, encodingVersion)
	}
	userVersion, err := r.ReadInt64()
	if err != nil {
		return zero, err
	}
	r.userVersion = userVersion
	return codec.Decode(r)
}

// PeekHeader reads only an archive's 16-byte header — encodingVersion
// and user_version — without touching the body. It does not consume
// from source beyond those two fields, so source cannot generally be
// reused afterward unless it is a seekable stream rewound by the
// caller.
func PeekHeader(source io.Reader) (encVersion, userVersion int64, err error) {
	r := NewReader(source)
	encVersion, err = r.ReadInt64()
	if err != nil {
		return 0, 0, err
	}
	userVersion, err = r.ReadInt64()
	if err != nil {
		return 0, 0, err
	}
	return encVersion, userVersion, nil
}
