// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

import "bytes"

// Codec bundles the encode/decode pair for one static type T: the
// "per-type encode/decode contract" of §4.2. Codec selection is always
// resolved at the call site (it is a Go type parameter, not a runtime
// tag), so there is no dynamic dispatch beyond the closures each Codec
// already carries — an Int32 codec "is" a plain-value codec, a String
// codec "is" the intern-path codec, and a Reference codec "is" the
// heap-identity codec, simply by which functions it closes over.
type Codec[T any] struct {
	Encode func(w *Writer, v T) error
	Decode func(r *Reader) (T, error)
}

// Scalar builds a Codec for any fixed-width integer, float, or bool
// type from its raw Write/Read pair. It is the generic home for every
// row in §4.2's built-in codec table except string, reference, and the
// collection types below.
func Scalar[T any](encode func(*Writer, T) error, decode func(*Reader) (T, error)) Codec[T] {
	return Codec[T]{Encode: encode, Decode: decode}
}

var (
	Int8    = Scalar[int8]((*Writer).WriteInt8, (*Reader).ReadInt8)
	Int16   = Scalar[int16]((*Writer).WriteInt16, (*Reader).ReadInt16)
	Int32   = Scalar[int32]((*Writer).WriteInt32, (*Reader).ReadInt32)
	Int64   = Scalar[int64]((*Writer).WriteInt64, (*Reader).ReadInt64)
	Uint8   = Scalar[uint8]((*Writer).WriteUint8, (*Reader).ReadUint8)
	Uint16  = Scalar[uint16]((*Writer).WriteUint16, (*Reader).ReadUint16)
	Uint32  = Scalar[uint32]((*Writer).WriteUint32, (*Reader).ReadUint32)
	Uint64  = Scalar[uint64]((*Writer).WriteUint64, (*Reader).ReadUint64)
	Int     = Scalar[int]((*Writer).WriteInt, (*Reader).ReadInt)
	Uint    = Scalar[uint]((*Writer).WriteUint, (*Reader).ReadUint)
	Float32 = Scalar[float32]((*Writer).WriteFloat32, (*Reader).ReadFloat32)
	Float64 = Scalar[float64]((*Writer).WriteFloat64, (*Reader).ReadFloat64)
	Bool    = Scalar[bool]((*Writer).WriteBool, (*Reader).ReadBool)
	String  = Scalar[string]((*Writer).WriteString, (*Reader).ReadString)
	Bytes   = Scalar[[]byte]((*Writer).WriteBytes, (*Reader).ReadBytes)
)

// Reference builds the Codec for a reference type: a pointer type T
// (over underlying struct U) with heap identity that must be
// interned and cycle-safe. See WriteReference and ReadReference.
func Reference[U any, T interface {
	*U
	Record
	Decoder
}]() Codec[T] {
	return Codec[T]{
		Encode: func(w *Writer, v T) error { return WriteReference[U, T](w, v) },
		Decode: func(r *Reader) (T, error) { return ReadReference[U, T](r) },
	}
}

// Sequence builds the Codec for an ordered sequence of T: a length,
// then that many encodings of T in order.
func Sequence[T any](elem Codec[T]) Codec[[]T] {
	return Codec[[]T]{
		Encode: func(w *Writer, v []T) error { return WriteSequence(w, v, elem.Encode) },
		Decode: func(r *Reader) ([]T, error) { return ReadSequence(r, elem.Decode) },
	}
}

// WriteSequence writes len(v) as a native int, then encode over each
// element in order.
func WriteSequence[T any](w *Writer, v []T, encode func(*Writer, T) error) error {
	if err := w.WriteInt64(int64(len(v))); err != nil {
		return err
	}
	for _, e := range v {
		if err := encode(w, e); err != nil {
			return err
		}
	}
	return nil
}

// ReadSequence reads a length then that many elements via decode.
func ReadSequence[T any](r *Reader, decode func(*Reader) (T, error)) ([]T, error) {
	n, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ErrReadFailed
	}
	out := make([]T, 0, n)
	for i := int64(0); i < n; i++ {
		v, err := decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Set builds the Codec for an unordered set of T, represented on the
// wire identically to Sequence: the contract is that the set of
// elements round-trips, not their emission order.
func Set[T comparable](elem Codec[T]) Codec[map[T]struct{}] {
	return Codec[map[T]struct{}]{
		Encode: func(w *Writer, v map[T]struct{}) error {
			items := make([]T, 0, len(v))
			for k := range v {
				items = append(items, k)
			}
			return WriteSequence(w, items, elem.Encode)
		},
		Decode: func(r *Reader) (map[T]struct{}, error) {
			items, err := ReadSequence(r, elem.Decode)
			if err != nil {
				return nil, err
			}
			out := make(map[T]struct{}, len(items))
			for _, k := range items {
				out[k] = struct{}{}
			}
			return out, nil
		},
	}
}

// Map builds the Codec for a mapping from K to V: the key sequence,
// then the value sequence, as two parallel arrays zipped back together
// on decode. Both sequences are derived from one snapshot slice of the
// map taken in a single range pass, so the two sequences are always
// index-aligned regardless of how Go orders map iteration.
func Map[K comparable, V any](key Codec[K], val Codec[V]) Codec[map[K]V] {
	return Codec[map[K]V]{
		Encode: func(w *Writer, v map[K]V) error {
			keys := make([]K, 0, len(v))
			vals := make([]V, 0, len(v))
			for k, val := range v {
				keys = append(keys, k)
				vals = append(vals, val)
			}
			if err := WriteSequence(w, keys, key.Encode); err != nil {
				return err
			}
			return WriteSequence(w, vals, val.Encode)
		},
		Decode: func(r *Reader) (map[K]V, error) {
			keys, err := ReadSequence(r, key.Decode)
			if err != nil {
				return nil, err
			}
			vals, err := ReadSequence(r, val.Decode)
			if err != nil {
				return nil, err
			}
			if len(keys) != len(vals) {
				return nil, ErrReadFailed
			}
			out := make(map[K]V, len(keys))
			for i, k := range keys {
				out[k] = vals[i]
			}
			return out, nil
		},
	}
}

// Optional builds the Codec for an optional T: one bool tag, and if
// true the T payload. A nil *T encodes as false; encoding a non-nil
// pointer dereferences it.
func Optional[T any](elem Codec[T]) Codec[*T] {
	return Codec[*T]{
		Encode: func(w *Writer, v *T) error {
			if v == nil {
				return w.WriteBool(false)
			}
			if err := w.WriteBool(true); err != nil {
				return err
			}
			return elem.Encode(w, *v)
		},
		Decode: func(r *Reader) (*T, error) {
			present, err := r.ReadBool()
			if err != nil {
				return nil, err
			}
			if !present {
				return nil, nil
			}
			v, err := elem.Decode(r)
			if err != nil {
				return nil, err
			}
			return &v, nil
		},
	}
}

// Tag builds the Codec for a tagged-union type represented by an
// archivable int64 discriminant: it delegates to the int64 scalar
// codec and rejects, on decode, any value valid does not recognize as
// a variant.
func Tag[T ~int64](valid func(T) bool) Codec[T] {
	return Codec[T]{
		Encode: func(w *Writer, v T) error { return w.WriteInt64(int64(v)) },
		Decode: func(r *Reader) (T, error) {
			n, err := r.ReadInt64()
			if err != nil {
				return 0, err
			}
			v := T(n)
			if !valid(v) {
				return 0, ErrReadFailed
			}
			return v, nil
		},
	}
}

// EncodeToBytes encodes value as the root of a new archive, tagged
// with userVersion, and returns the complete wire bytes.
func EncodeToBytes[T any](value T, userVersion int64, codec Codec[T]) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := WriteRoot(w, value, userVersion, codec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeFromBytes decodes data as a complete archive, returning the
// root value and the header's user_version.
func DecodeFromBytes[T any](data []byte, codec Codec[T]) (value T, userVersion int64, err error) {
	r := NewReader(bytes.NewReader(data))
	value, err = ReadRoot(r, codec)
	return value, r.UserVersion(), err
}
