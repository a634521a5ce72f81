// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

// Field binds one field of a record type R to a Codec for its
// declared value type F, plus a get/set pair projecting that field
// out of and into an R. A Schema is simply an ordered slice of Fields
// for some R; the slice's order and each Field's F is the record's
// wire contract (§4.3) — change either and old archives stop decoding
// correctly.
type Field[R any, F any] struct {
	codec Codec[F]
	get   func(*R) F
	set   func(*R, F)
}

// NewField builds one field descriptor: get projects the field's
// current value out of r, set stores a decoded value back into r, and
// codec is the field's own Codec (Int64, String, Reference[...](),
// Sequence(...), Map(...), Optional(...), Tag[...](...), or another
// record's Schema wrapped with Embed).
func NewField[R any, F any](codec Codec[F], get func(*R) F, set func(*R, F)) Field[R, F] {
	return Field[R, F]{codec: codec, get: get, set: set}
}

func (f Field[R, F]) encode(v *R, w *Writer) error {
	return f.codec.Encode(w, f.get(v))
}

func (f Field[R, F]) decode(v *R, r *Reader) error {
	val, err := f.codec.Decode(r)
	if err != nil {
		return err
	}
	f.set(v, val)
	return nil
}

// FieldCodec erases a Field's value type so heterogeneous fields can
// sit together in one Schema slice; Field itself already implements
// it, so callers never construct one directly.
type FieldCodec[R any] interface {
	encode(v *R, w *Writer) error
	decode(v *R, r *Reader) error
}

// Schema is the ordered list of field descriptors for a record type R:
// encode walks it field by field in order, and decode walks the same
// order to fill a freshly default-constructed R.
type Schema[R any] []FieldCodec[R]

// Encode writes every field of v, in schema order.
func (s Schema[R]) Encode(v *R, w *Writer) error {
	for _, f := range s {
		if err := f.encode(v, w); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads every field of v, in schema order, overwriting
// whatever v currently holds. v is normally a freshly
// default-constructed value (see ReadReference).
func (s Schema[R]) Decode(v *R, r *Reader) error {
	for _, f := range s {
		if err := f.decode(v, r); err != nil {
			return err
		}
	}
	return nil
}

// Embed builds a Codec for a plain (non-reference) record type R from
// its Schema, so a record-valued field — one with value semantics, not
// heap identity — can nest inside another record's Schema or inside a
// Sequence/Optional/Map without going through the reference path.
func Embed[R any](schema Schema[R]) Codec[R] {
	return Codec[R]{
		Encode: func(w *Writer, v R) error { return schema.Encode(&v, w) },
		Decode: func(r *Reader) (R, error) {
			var v R
			err := schema.Decode(&v, r)
			return v, err
		},
	}
}
