// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package textcatalog converts between model.Catalog and a small
// human-editable text format, so cmd/archivist has something readable
// to archive and restore. It is not part of the wire format the
// archive package defines; it exists only at the CLI's edges.
//
// Format, one declaration per line:
//
//	title <catalog title>
//	package <name> <status> [requires,comma,separated]
//
// A package's requires may name a package declared earlier or later in
// the file (including itself), so the format can express the cyclic
// dependency graphs the archive package is built to preserve.
package textcatalog

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/solidcoredata/archivist/internal/model"
)

var statusByName = map[string]model.Status{
	"unknown":    model.StatusUnknown,
	"active":     model.StatusActive,
	"deprecated": model.StatusDeprecated,
}

// Parse reads the text format from r into a Catalog. Requires
// referring to packages declared later in the file are resolved in a
// second pass, once every named package exists.
func Parse(r io.Reader) (model.Catalog, error) {
	cat := model.Catalog{Packages: map[string]*model.Package{}}
	requires := map[string][]string{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "title":
			cat.Title = strings.TrimSpace(strings.TrimPrefix(line, "title"))
		case "package":
			if len(fields) < 3 {
				return model.Catalog{}, fmt.Errorf("textcatalog: line %d: want \"package name status [requires]\"", lineNo)
			}
			name, statusName := fields[1], fields[2]
			status, ok := statusByName[statusName]
			if !ok {
				return model.Catalog{}, fmt.Errorf("textcatalog: line %d: unknown status %q", lineNo, statusName)
			}
			cat.Packages[name] = &model.Package{Name: name, Status: status}
			if len(fields) >= 4 {
				requires[name] = strings.Split(fields[3], ",")
			}
		default:
			return model.Catalog{}, fmt.Errorf("textcatalog: line %d: unknown directive %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return model.Catalog{}, fmt.Errorf("textcatalog: %w", err)
	}

	for name, reqNames := range requires {
		pkg := cat.Packages[name]
		for _, reqName := range reqNames {
			dep, ok := cat.Packages[reqName]
			if !ok {
				return model.Catalog{}, fmt.Errorf("textcatalog: package %q requires unknown package %q", name, reqName)
			}
			pkg.Requires = append(pkg.Requires, dep)
		}
	}
	return cat, nil
}

// Write renders a Catalog back to the text format, with packages
// sorted by name for a deterministic, diffable output.
func Write(w io.Writer, cat model.Catalog) error {
	if _, err := fmt.Fprintf(w, "title %s\n", cat.Title); err != nil {
		return err
	}
	names := make([]string, 0, len(cat.Packages))
	for name := range cat.Packages {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		pkg := cat.Packages[name]
		reqNames := make([]string, len(pkg.Requires))
		for i, req := range pkg.Requires {
			reqNames[i] = req.Name
		}
		line := fmt.Sprintf("package %s %s", pkg.Name, pkg.Status)
		if len(reqNames) > 0 {
			line += " " + strings.Join(reqNames, ",")
		}
		line += "\n"
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
