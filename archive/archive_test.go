// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1 (spec §8): encode_to_bytes(42_u32, user_version=0).
func TestEncodeToBytesScalarScenario(t *testing.T) {
	data, err := EncodeToBytes(uint32(42), 0, Uint32)
	require.NoError(t, err)
	want := []byte{
		0, 0, 0, 0, 0, 0, 0, 1, // encodingVersion = 1
		0, 0, 0, 0, 0, 0, 0, 0, // user_version = 0
		0, 0, 0, 0x2A, // uint32 42, big-endian
	}
	assert.Equal(t, want, data)

	got, userVersion, err := DecodeFromBytes(data, Uint32)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), got)
	assert.Equal(t, int64(0), userVersion)
}

// P5: endianness is big-endian regardless of host.
func TestUint32Endianness(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteUint32(0x01020304))
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf.Bytes())
}

// P2: a repeated string interns once; P6: sequences carry a length prefix.
func TestStringInterningScenario(t *testing.T) {
	seq := Sequence(String)
	values := []string{"hi", "hi", "hi"}
	data, err := EncodeToBytes(values, 0, seq)
	require.NoError(t, err)

	// Exactly one occurrence of the payload bytes "hi" (0x68, 0x69) following
	// an i64-be length field of 2, i.e. the 10-byte run {0,0,0,0,0,0,0,2,'h','i'}
	// should appear once.
	needle := []byte{0, 0, 0, 0, 0, 0, 0, 2, 'h', 'i'}
	assert.Equal(t, 1, bytes.Count(data, needle))

	got, _, err := DecodeFromBytes(data, seq)
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

// Scenario 3: a plain record round-trips through its Schema.
type point struct {
	X int32
	Y int32
}

func pointSchema() Schema[point] {
	return Schema[point]{
		NewField(Int32, func(p *point) int32 { return p.X }, func(p *point, v int32) { p.X = v }),
		NewField(Int32, func(p *point) int32 { return p.Y }, func(p *point, v int32) { p.Y = v }),
	}
}

func TestRecordRoundTrip(t *testing.T) {
	codec := Embed(pointSchema())
	p := point{X: 1, Y: -1}
	data, err := EncodeToBytes(p, 0, codec)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 1, 0xFF, 0xFF, 0xFF, 0xFF}, data[16:])

	got, _, err := DecodeFromBytes(data, codec)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

// Scenario 4 / P3: a self-cycle round-trips to the same Go pointer.
type node struct {
	Name string
	Next *node
}

func (n *node) ArchiveEncode(w *Writer) error {
	return nodeSchema().Encode(n, w)
}
func (n *node) ArchiveDecode(r *Reader) error {
	return nodeSchema().Decode(n, r)
}

func nodeSchema() Schema[node] {
	nextCodec := Optional(Reference[node, *node]())
	return Schema[node]{
		NewField(String, func(n *node) string { return n.Name }, func(n *node, v string) { n.Name = v }),
		NewField(nextCodec,
			func(n *node) **node {
				if n.Next == nil {
					return nil
				}
				return &n.Next
			},
			func(n *node, v **node) {
				n.Next = nil
				if v != nil {
					n.Next = *v
				}
			}),
	}
}

func TestSelfCycle(t *testing.T) {
	codec := Reference[node, *node]()
	n := &node{Name: "self"}
	n.Next = n

	data, err := EncodeToBytes(n, 0, codec)
	require.NoError(t, err)

	got, _, err := DecodeFromBytes(data, codec)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Same(t, got, got.Next, "decoded.Next must be the same instance as decoded")
}

func TestMutualCycle(t *testing.T) {
	codec := Reference[node, *node]()
	a := &node{Name: "a"}
	b := &node{Name: "b"}
	a.Next = b
	b.Next = a

	data, err := EncodeToBytes(a, 0, codec)
	require.NoError(t, err)

	gotA, _, err := DecodeFromBytes(data, codec)
	require.NoError(t, err)
	require.NotNil(t, gotA)
	require.NotNil(t, gotA.Next)
	assert.Equal(t, "b", gotA.Next.Name)
	assert.Same(t, gotA, gotA.Next.Next, "cycle must resolve back to the same decoded a")
}

// Identity preservation for references shared without a cycle: two
// fields pointing at the same node decode to the same Go pointer.
func TestSharedReferenceIdentity(t *testing.T) {
	type pair struct {
		First  *node
		Second *node
	}
	shared := &node{Name: "shared"}
	p := pair{First: shared, Second: shared}
	refCodec := Reference[node, *node]()
	schema := Schema[pair]{
		NewField(refCodec, func(p *pair) *node { return p.First }, func(p *pair, v *node) { p.First = v }),
		NewField(refCodec, func(p *pair) *node { return p.Second }, func(p *pair, v *node) { p.Second = v }),
	}
	codec := Embed(schema)

	data, err := EncodeToBytes(p, 0, codec)
	require.NoError(t, err)
	got, _, err := DecodeFromBytes(data, codec)
	require.NoError(t, err)
	assert.Same(t, got.First, got.Second)
}

// Scenario 5: a mapping round-trips under set-of-pairs equality.
func TestMapRoundTrip(t *testing.T) {
	codec := Map(String, Int64)
	m := map[string]int64{"a": 1, "b": 2}
	data, err := EncodeToBytes(m, 0, codec)
	require.NoError(t, err)
	got, _, err := DecodeFromBytes(data, codec)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

// Scenario 6 / P7: optional<string> None and Some("x") wire shapes.
func TestOptionalStringWireShape(t *testing.T) {
	codec := Optional(String)
	data, err := EncodeToBytes[*string](nil, 0, codec)
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, data[16:])

	s := "x"
	data, err = EncodeToBytes(&s, 0, codec)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 'x'}, data[16:])
}

// P4: version gate.
func TestIncompatibleArchiverVersion(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteInt64(2)) // wrong encodingVersion
	require.NoError(t, w.WriteInt64(7)) // user_version, arbitrary
	require.NoError(t, w.WriteInt32(0))

	_, _, err := DecodeFromBytes(buf.Bytes(), Int32)
	require.ErrorIs(t, err, ErrIncompatibleArchiver)
}

func TestUserVersionRoundTrips(t *testing.T) {
	_, userVersion, err := DecodeFromBytes(mustEncode(t, int32(5), 99, Int32), Int32)
	require.NoError(t, err)
	assert.Equal(t, int64(99), userVersion)
}

func mustEncode[T any](t *testing.T, v T, userVersion int64, codec Codec[T]) []byte {
	t.Helper()
	data, err := EncodeToBytes(v, userVersion, codec)
	require.NoError(t, err)
	return data
}

// ReadFailed on a short read and on invalid UTF-8.
func TestReadFailedShortRead(t *testing.T) {
	_, _, err := DecodeFromBytes([]byte{0, 0, 0, 0, 0, 0, 0, 1}, Int32)
	require.ErrorIs(t, err, ErrReadFailed)
}

func TestReadFailedInvalidUTF8(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteInt64(encodingVersion))
	require.NoError(t, w.WriteInt64(0))
	require.NoError(t, w.WriteInt64(0))                    // string id 0, first occurrence
	require.NoError(t, w.WriteBytes([]byte{0xff, 0xfe})) // invalid UTF-8 payload

	_, _, err := DecodeFromBytes(buf.Bytes(), String)
	require.ErrorIs(t, err, ErrReadFailed)
}

// WriteFailed on a sink that accepts fewer bytes than requested.
type shortWriter struct{ n int }

func (s *shortWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return len(p) - 1, nil
}

func TestWriteFailedShortWrite(t *testing.T) {
	w := NewWriter(&shortWriter{})
	err := w.WriteInt64(1)
	require.ErrorIs(t, err, ErrWriteFailed)
}

// Awake runs once, after fields are populated.
type awakeNode struct {
	Value   int64
	awoken  bool
	awakeAt int64
}

func (n *awakeNode) ArchiveEncode(w *Writer) error { return w.WriteInt64(n.Value) }
func (n *awakeNode) ArchiveDecode(r *Reader) error {
	v, err := r.ReadInt64()
	if err != nil {
		return err
	}
	n.Value = v
	return nil
}
func (n *awakeNode) Awake() {
	n.awoken = true
	n.awakeAt = n.Value
}

func TestAwakeRunsAfterDecode(t *testing.T) {
	codec := Reference[awakeNode, *awakeNode]()
	data, err := EncodeToBytes(&awakeNode{Value: 42}, 0, codec)
	require.NoError(t, err)
	got, _, err := DecodeFromBytes(data, codec)
	require.NoError(t, err)
	assert.True(t, got.awoken)
	assert.Equal(t, int64(42), got.awakeAt)
}

// Tagged union: decode rejects a discriminant no variant claims.
type status int64

const (
	statusActive status = 1
	statusClosed status = 2
)

func statusCodec() Codec[status] {
	return Tag[status](func(v status) bool { return v == statusActive || v == statusClosed })
}

func TestTagRejectsUnknownVariant(t *testing.T) {
	codec := statusCodec()
	data, err := EncodeToBytes(status(99), 0, codec)
	require.NoError(t, err)
	_, _, err = DecodeFromBytes(data, codec)
	require.ErrorIs(t, err, ErrReadFailed)
}

func TestTagRoundTrip(t *testing.T) {
	codec := statusCodec()
	data, err := EncodeToBytes(statusActive, 0, codec)
	require.NoError(t, err)
	got, _, err := DecodeFromBytes(data, codec)
	require.NoError(t, err)
	assert.Equal(t, statusActive, got)
}

func TestSetRoundTrip(t *testing.T) {
	codec := Set(Int64)
	s := map[int64]struct{}{1: {}, 2: {}, 3: {}}
	data, err := EncodeToBytes(s, 0, codec)
	require.NoError(t, err)
	got, _, err := DecodeFromBytes(data, codec)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestFloatRoundTrip(t *testing.T) {
	codec := Float64
	data, err := EncodeToBytes(3.5, 0, codec)
	require.NoError(t, err)
	got, _, err := DecodeFromBytes(data, codec)
	require.NoError(t, err)
	assert.Equal(t, 3.5, got)
}

func TestPeekHeader(t *testing.T) {
	data := mustEncode(t, int32(1), 42, Int32)
	ver, userVersion, err := PeekHeader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, int64(1), ver)
	assert.Equal(t, int64(42), userVersion)
}
