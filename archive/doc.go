// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package archive implements an identity-preserving binary archiving
// engine: it serializes object and value graphs into a compact stream
// and reconstructs them faithfully, including shared references and
// cycles.
//
// A Writer assigns each distinct string and each distinct reference an
// id the first time it is seen and emits the id alone on every later
// occurrence. A Reader mirrors the same table so that decoding a
// repeated id returns the same Go value rather than a fresh copy. A
// reference type is decoded in two phases: a zero-value instance is
// constructed and registered under its id before its fields are
// decoded, which is what lets a cycle through that reference resolve
// to the same, still-populating, instance (see ReadReference).
//
// The wire format has no self-description: the caller supplies the
// root type as a Codec, and reader and writer must agree on it ahead
// of time. There is no framing between fields, no compression, and no
// schema migration; a field list (a Schema) defines a type's wire
// shape, and changing its order or types breaks compatibility with
// previously written archives.
//
/*
Layout of one archive:

	header: encodingVersion:i64-be  user_version:i64-be
	body:   <root value, per its Codec>

Atomic field encodings:

	iN-be / uN-be    N/8 bytes, big-endian
	f32 / f64        4/8 bytes, IEEE-754 bit pattern, big-endian
	bool             1 byte, 0 false / 1 true
	native int/uint  always i64-be / u64-be
	string           id:i64-be, then on first occurrence: length:i64-be, length UTF-8 bytes
	reference        id:i64-be, then on first occurrence: the type's field sequence
	sequence<T>      length:i64-be, then length encodings of T
	mapping<K,V>     sequence<K>, then sequence<V>, snapshotted from one pass
	optional<T>      bool, then (if true) T

encodingVersion must be 1; any other value is ErrIncompatibleArchiver.
user_version is opaque to the engine and is handed back to the caller
through Reader.UserVersion.
*/
package archive
