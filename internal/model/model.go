// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model holds the demo object graph that cmd/archivist
// archives and restores: a small package catalog whose entries can
// depend on each other, including cyclically.
package model

import "github.com/solidcoredata/archivist/archive"

// Status is a tagged union backed by an archivable int64 discriminant
// (spec §4.2's "tagged-union type whose representation is an
// archivable scalar").
type Status int64

const (
	StatusUnknown    Status = 0
	StatusActive     Status = 1
	StatusDeprecated Status = 2
)

func (s Status) valid() bool {
	switch s {
	case StatusUnknown, StatusActive, StatusDeprecated:
		return true
	default:
		return false
	}
}

func statusCodec() archive.Codec[Status] {
	return archive.Tag[Status](Status.valid)
}

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusDeprecated:
		return "deprecated"
	default:
		return "unknown"
	}
}

// Package is a reference type: it has heap identity, and two packages
// may legitimately require one another (a cycle), which the archive
// package must preserve rather than recurse into forever.
type Package struct {
	Name     string
	Status   Status
	Requires []*Package
}

// ArchiveEncode implements archive.Record.
func (p *Package) ArchiveEncode(w *archive.Writer) error {
	return packageSchema().Encode(p, w)
}

// ArchiveDecode implements archive.Decoder.
func (p *Package) ArchiveDecode(r *archive.Reader) error {
	return packageSchema().Decode(p, r)
}

func packageCodec() archive.Codec[*Package] {
	return archive.Reference[Package, *Package]()
}

func packageSchema() archive.Schema[Package] {
	requiresCodec := archive.Sequence(packageCodec())
	return archive.Schema[Package]{
		archive.NewField(archive.String, func(p *Package) string { return p.Name }, func(p *Package, v string) { p.Name = v }),
		archive.NewField(statusCodec(), func(p *Package) Status { return p.Status }, func(p *Package, v Status) { p.Status = v }),
		archive.NewField(requiresCodec, func(p *Package) []*Package { return p.Requires }, func(p *Package, v []*Package) { p.Requires = v }),
	}
}

// Catalog is a plain (value-typed) root record: a titled collection of
// packages keyed by name. Packages reachable from more than one entry
// — including from within Requires — decode to the same *Package.
type Catalog struct {
	Title    string
	Packages map[string]*Package
}

// Schema is the Catalog wire contract; order and types here must never
// change without also changing archives already written with it.
func Schema() archive.Schema[Catalog] {
	packagesCodec := archive.Map(archive.String, packageCodec())
	return archive.Schema[Catalog]{
		archive.NewField(archive.String, func(c *Catalog) string { return c.Title }, func(c *Catalog, v string) { c.Title = v }),
		archive.NewField(packagesCodec, func(c *Catalog) map[string]*Package { return c.Packages }, func(c *Catalog, v map[string]*Package) { c.Packages = v }),
	}
}

// Codec is the Codec for a Catalog root value, for use with
// archive.EncodeToBytes / archive.DecodeFromBytes or archive.WriteRoot
// / archive.ReadRoot directly against a file.
func Codec() archive.Codec[Catalog] {
	return archive.Embed(Schema())
}
